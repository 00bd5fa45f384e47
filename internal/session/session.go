// Package session holds the working dataset for one run. All aggregation
// reads go against an immutable snapshot; uploads build a fresh snapshot
// through the loader and swap it in under a lock, so readers never observe
// a half-merged dataset.
package session

import (
	"errors"
	"sync"

	"finsight/pnl-csv/internal/loader"
	"finsight/pnl-csv/internal/logging"
	"finsight/pnl-csv/internal/models"
	"finsight/pnl-csv/internal/table"
	"finsight/pnl-csv/internal/upload"
)

// Session owns the current transaction and budget tables and the canonical
// dataset built from them. One writer at a time; snapshot reads are cheap.
type Session struct {
	mu     sync.RWMutex
	loader *loader.Loader
	logger logging.Logger

	transactions *table.Table
	budget       *table.Table
	dataset      *models.Dataset
}

// New creates an empty session around the given loader.
func New(l *loader.Loader, logger logging.Logger) *Session {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Session{loader: l, logger: logger}
}

// Load replaces the session contents with freshly read source tables.
// budget may be nil.
func (s *Session) Load(transactions, budget *table.Table) error {
	dataset, err := s.loader.Load(transactions, budget)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = transactions
	s.budget = budget
	s.dataset = dataset
	return nil
}

// Current returns the current dataset snapshot. The snapshot is never
// mutated after the swap; callers may hold it across an upload.
func (s *Session) Current() *models.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset
}

// ApplyTransactions normalizes an uploaded transaction table against the
// current schema, merges it per mode and swaps in the rebuilt dataset.
// On any error the previous snapshot stays current.
func (s *Session) ApplyTransactions(uploaded *table.Table, mode upload.Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	normalized := upload.Normalize(uploaded, s.templateColumns(s.transactions), s.logger)
	merged, err := s.merge(s.transactions, normalized, mode)
	if err != nil {
		return err
	}
	dataset, err := s.loader.Load(merged, s.budget)
	if err != nil {
		return err
	}
	s.transactions = merged
	s.dataset = dataset
	s.logger.Info("Applied transaction upload",
		logging.Field{Key: logging.FieldMode, Value: string(mode)},
		logging.Field{Key: logging.FieldCount, Value: merged.NumRows()})
	return nil
}

// ApplyBudget does the same for a budget table, including the budget
// header rename guesses.
func (s *Session) ApplyBudget(uploaded *table.Table, mode upload.Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.transactions == nil {
		return ErrNoTransactions
	}
	normalized := upload.NormalizeBudget(uploaded, s.templateColumns(s.budget), s.logger)
	merged, err := s.merge(s.budget, normalized, mode)
	if err != nil {
		return err
	}
	dataset, err := s.loader.Load(s.transactions, merged)
	if err != nil {
		return err
	}
	s.budget = merged
	s.dataset = dataset
	s.logger.Info("Applied budget upload",
		logging.Field{Key: logging.FieldMode, Value: string(mode)},
		logging.Field{Key: logging.FieldCount, Value: merged.NumRows()})
	return nil
}

// templateColumns picks the schema an upload is projected onto: the
// existing table when there is one, else nil so the upload defines the
// schema itself.
func (s *Session) templateColumns(existing *table.Table) []string {
	if existing != nil {
		return existing.Headers
	}
	return nil
}

// merge treats an upload into an empty slot as a replace regardless of the
// requested mode.
func (s *Session) merge(existing, incoming *table.Table, mode upload.Mode) (*table.Table, error) {
	if existing == nil {
		return upload.Merge(table.New(incoming.Headers), incoming, upload.ModeReplace)
	}
	return upload.Merge(existing, incoming, mode)
}

// ErrNoTransactions is returned when a budget upload arrives before any
// transaction data has been loaded.
var ErrNoTransactions = errors.New("no transactions loaded: load transactions before applying a budget")
