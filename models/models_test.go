package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordKeepsColumnOrder(t *testing.T) {
	r := NewRecord(
		[]string{"vendor_name", "total_spend", "category"},
		[]interface{}{"Acme", 1250.5, nil},
	)

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"vendor_name":"Acme","total_spend":1250.5,"category":null}`, string(b))
}

func TestRecordEscapesKeysAndTimes(t *testing.T) {
	ts := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	r := NewRecord([]string{`a"b`, "due_date"}, []interface{}{1, ts})

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"a\"b":1,"due_date":"2024-03-01T00:00:00Z"}`, string(b))
}

func TestRecordMissingValuesAreNull(t *testing.T) {
	r := NewRecord([]string{"month", "revenue"}, []interface{}{"Jan 2024"})

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"month":"Jan 2024","revenue":null}`, string(b))
	assert.Equal(t, 2, r.Len())
}

func TestRecordEmpty(t *testing.T) {
	b, err := json.Marshal(QueryResponse{SQL: "SELECT 1;", Results: []Record{}, Message: "Found 0 results"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"sql":"SELECT 1;","results":[],"message":"Found 0 results"}`, string(b))
}
