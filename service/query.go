package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"invoiceqa/classifier"
	"invoiceqa/models"
)

// HistoryRecorder stores answered questions. Failures never affect the answer.
type HistoryRecorder interface {
	Record(entry models.HistoryEntry) (models.HistoryEntry, error)
}

// QueryService answers a question: classify, execute, wrap.
type QueryService struct {
	executor Executor
	history  HistoryRecorder
	logger   *zap.Logger
}

// NewQueryService wires the pipeline. history may be nil.
func NewQueryService(executor Executor, history HistoryRecorder, logger *zap.Logger) *QueryService {
	if executor == nil {
		executor = Unconfigured()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueryService{
		executor: executor,
		history:  history,
		logger:   logger,
	}
}

// Answer returns the records for question. The SQL in the response is the
// exact statement that was executed.
func (s *QueryService) Answer(ctx context.Context, question string) (*models.QueryResponse, error) {
	match := classifier.Resolve(question)
	s.logger.Debug("question classified",
		zap.String("question", question),
		zap.String("rule", match.Rule))

	result, err := s.executor.Execute(ctx, match.SQL)
	if err != nil {
		s.record(question, match, 0, err)
		return nil, err
	}

	s.record(question, match, len(result.Records), nil)

	return &models.QueryResponse{
		SQL:     match.SQL,
		Results: result.Records,
		Message: fmt.Sprintf("Found %d results", len(result.Records)),
	}, nil
}

// Ping reports whether the store is reachable.
func (s *QueryService) Ping(ctx context.Context) error {
	return s.executor.Ping(ctx)
}

func (s *QueryService) record(question string, match classifier.Match, rows int, execErr error) {
	if s.history == nil {
		return
	}
	entry := models.HistoryEntry{
		Question: question,
		Rule:     match.Rule,
		SQL:      match.SQL,
		RowCount: rows,
	}
	if execErr != nil {
		entry.Error = execErr.Error()
	}
	if _, err := s.history.Record(entry); err != nil {
		s.logger.Warn("failed to record question history", zap.Error(err))
	}
}
