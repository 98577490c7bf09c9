package handlers

import (
	"context"

	"go.uber.org/zap"

	"invoiceqa/cache"
	"invoiceqa/models"
)

// @title           Invoice Question API
// @version         1.0
// @description     Answers a fixed set of natural-language questions about invoices by running hand-written SQL templates against PostgreSQL.

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8000
// @BasePath  /

// @schemes   http https

// Answerer turns a question into a query response.
type Answerer interface {
	Answer(ctx context.Context, question string) (*models.QueryResponse, error)
	Ping(ctx context.Context) error
}

// HistoryReader lists recently answered questions.
type HistoryReader interface {
	Recent(limit int) ([]models.HistoryEntry, error)
}

type Handlers struct {
	queries    Answerer
	history    HistoryReader
	readyCache *cache.Cache
	logger     *zap.Logger
}

// New builds the handler set. history may be nil when the history store is
// disabled.
func New(queries Answerer, history HistoryReader, readyCache *cache.Cache, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		queries:    queries,
		history:    history,
		readyCache: readyCache,
		logger:     logger,
	}
}
