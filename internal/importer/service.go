package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/MrJamesThe3rd/vipledger/internal/encoding"
	"github.com/MrJamesThe3rd/vipledger/internal/importer/sheet"
	"github.com/MrJamesThe3rd/vipledger/internal/ledger"
)

//go:generate mockgen -source=service.go -destination=recorder_mock.go -package=importer
type Recorder interface {
	AddIncome(ctx context.Context, params ledger.IncomeParams) (ledger.Income, error)
	AddExpense(ctx context.Context, params ledger.ExpenseParams) (ledger.Expense, error)
	AddAdvance(ctx context.Context, params ledger.AdvanceParams) (ledger.Advance, error)
}

type Service struct {
	recorder Recorder
	logger   *slog.Logger
}

func NewService(recorder Recorder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{recorder: recorder, logger: logger}
}

// Parse decodes r to UTF-8 and converts every data row into record parameters.
// Rows that cannot be converted are reported in Batch.Skipped.
func (s *Service) Parse(kind Kind, r io.Reader) (*Batch, error) {
	utf8Reader, charset, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	rows, err := sheet.New(kind.requiredColumns()...).Parse(utf8Reader)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", kind, err)
	}

	batch := &Batch{Kind: kind, Charset: charset}

	for _, row := range rows {
		if err := batch.add(kind, row); err != nil {
			batch.Skipped = append(batch.Skipped, Skipped{Line: row.Line, Reason: err.Error()})
		}
	}

	return batch, nil
}

// Result reports the outcome of Apply.
type Result struct {
	Imported int       `json:"imported"`
	Skipped  []Skipped `json:"skipped"`
}

// Apply adds every record in the batch. Records the store rejects are added to the
// skipped list. A persistence failure stops the import; records already added stay in
// memory.
func (s *Service) Apply(ctx context.Context, batch *Batch) (*Result, error) {
	result := &Result{Skipped: append([]Skipped{}, batch.Skipped...)}

	record := func(i int, err error) error {
		switch {
		case err == nil:
			result.Imported++
			return nil
		case errors.Is(err, ledger.ErrPersist):
			result.Imported++
			return err
		default:
			result.Skipped = append(result.Skipped, Skipped{Line: batch.line(i), Reason: err.Error()})
			return nil
		}
	}

	for i, p := range batch.Incomes {
		if _, err := s.recorder.AddIncome(ctx, p); record(i, err) != nil {
			return result, fmt.Errorf("import incomes: %w", err)
		}
	}

	for i, p := range batch.Expenses {
		if _, err := s.recorder.AddExpense(ctx, p); record(i, err) != nil {
			return result, fmt.Errorf("import expenses: %w", err)
		}
	}

	for i, p := range batch.Advances {
		if _, err := s.recorder.AddAdvance(ctx, p); record(i, err) != nil {
			return result, fmt.Errorf("import advances: %w", err)
		}
	}

	s.logger.Info("import applied", "kind", batch.Kind, "imported", result.Imported, "skipped", len(result.Skipped))

	return result, nil
}

func (s *Service) Import(ctx context.Context, kind Kind, r io.Reader) (*Result, error) {
	batch, err := s.Parse(kind, r)
	if err != nil {
		return nil, err
	}

	return s.Apply(ctx, batch)
}
