package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"invoiceqa/config"
	"invoiceqa/models"
	"invoiceqa/validation"

	_ "github.com/lib/pq"
)

var (
	ErrDatabaseNotConfigured = errors.New("DATABASE_URL not configured")
	ErrNotReadOnly           = errors.New("statement is not read-only")
	ErrExecution             = errors.New("query execution failed")
)

// executionError reports the driver's own message and matches ErrExecution.
type executionError struct {
	err error
}

func (e *executionError) Error() string { return e.err.Error() }

func (e *executionError) Unwrap() []error { return []error{ErrExecution, e.err} }

// Executor runs a single read-only statement against the invoice store.
type Executor interface {
	Execute(ctx context.Context, query string) (*models.ResultSet, error)
	Ping(ctx context.Context) error
}

type PostgresService struct {
	db *sql.DB
}

func NewPostgresService(cfg config.DatabaseConfig) (*PostgresService, error) {
	if cfg.URL == "" {
		return nil, ErrDatabaseNotConfigured
	}

	// lib/pq accepts both postgres:// URLs and key=value strings.
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL connection: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	db.SetConnMaxLifetime(5 * time.Minute)

	return &PostgresService{db: db}, nil
}

func (s *PostgresService) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Execute runs query on a connection dedicated to this call. The connection
// goes back to the pool whether or not the query succeeds.
func (s *PostgresService) Execute(ctx context.Context, query string) (*models.ResultSet, error) {
	if s == nil || s.db == nil {
		return nil, ErrDatabaseNotConfigured
	}
	if !validation.IsReadOnlyStatement(query) {
		return nil, ErrNotReadOnly
	}

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, &executionError{err: err}
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, &executionError{err: err}
	}
	defer rows.Close()

	result, err := scanRecords(rows)
	if err != nil {
		return nil, &executionError{err: err}
	}
	return result, nil
}

func (s *PostgresService) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return ErrDatabaseNotConfigured
	}
	return s.db.PingContext(ctx)
}

// Unconfigured returns an Executor for a process started without
// DATABASE_URL. Every call fails with ErrDatabaseNotConfigured.
func Unconfigured() Executor {
	return (*PostgresService)(nil)
}

type rowSource interface {
	Columns() ([]string, error)
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// scanRecords maps every row to a Record keyed by the result set's own column
// names.
func scanRecords(rows rowSource) (*models.ResultSet, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	records := []models.Record{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}

		for i, val := range values {
			values[i] = normalizeValue(val)
		}

		records = append(records, models.NewRecord(columns, values))
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &models.ResultSet{Columns: columns, Records: records}, nil
}

// normalizeValue turns driver values into JSON-friendly scalars. lib/pq hands
// NUMERIC back as text bytes. NaN and Infinity stay text since JSON has no
// number for them.
func normalizeValue(val interface{}) interface{} {
	b, ok := val.([]byte)
	if !ok {
		return val
	}
	s := string(b)
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return s
}
