package models

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type QueryRequest struct {
	// Pointer so that a missing field is rejected while "" is accepted.
	Question *string `json:"question" binding:"required" example:"Show me the top 10 vendors"`
}

type QueryResponse struct {
	SQL     string   `json:"sql"`
	Results []Record `json:"results"`
	Message string   `json:"message"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// Record is one result row keyed by column name. Keys keep the column order
// of the result set when serialised.
type Record = *orderedmap.OrderedMap[string, interface{}]

// NewRecord pairs columns with values in order.
func NewRecord(columns []string, values []interface{}) Record {
	r := orderedmap.New[string, interface{}]()
	for i, col := range columns {
		var val interface{}
		if i < len(values) {
			val = values[i]
		}
		r.Set(col, val)
	}
	return r
}

type ResultSet struct {
	Columns []string `json:"columns"`
	Records []Record `json:"records"`
}

// HistoryEntry is one answered question, as kept in the history store.
type HistoryEntry struct {
	ID        string `json:"id"`
	Question  string `json:"question"`
	Rule      string `json:"rule"`
	SQL       string `json:"sql"`
	RowCount  int    `json:"row_count"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp"`
}
