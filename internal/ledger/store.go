package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// Store owns the in-memory data set and synchronises it with a Slot.
// Reads return copies; callers never share memory with the store.
type Store struct {
	mu sync.RWMutex

	slot         Slot
	data         Data
	dirty        bool
	writeThrough bool

	newID  func() string
	today  func() Date
	logger *slog.Logger
}

type Option func(*Store)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithWriteThrough persists the whole data set after every successful mutation.
func WithWriteThrough(enabled bool) Option {
	return func(s *Store) { s.writeThrough = enabled }
}

func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

func WithClock(today func() Date) Option {
	return func(s *Store) { s.today = today }
}

// NewStore returns a store holding the default data set. Call Load to read the slot.
func NewStore(slot Slot, opts ...Option) *Store {
	s := &Store{
		slot:   slot,
		data:   DefaultData(),
		newID:  NewID,
		today:  Today,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Load replaces the in-memory state with the slot's contents. An empty slot yields the
// default data set. A read or decode failure also yields the default data set and
// returns an error wrapping ErrLoad; the store stays usable.
func (s *Store) Load(ctx context.Context) error {
	payload, err := s.slot.Read(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.dirty = false

	switch {
	case errors.Is(err, ErrSlotEmpty):
		s.data = DefaultData()
		return nil
	case err != nil:
		s.data = DefaultData()
		s.logger.Warn("falling back to default data", "reason", "read failed", "error", err)

		return fmt.Errorf("%w: %w", ErrLoad, err)
	}

	data, err := DecodeData(payload)
	if err != nil {
		s.data = DefaultData()
		s.logger.Warn("falling back to default data", "reason", "decode failed", "error", err)

		return fmt.Errorf("%w: %w", ErrLoad, err)
	}

	s.data = data

	return nil
}

// Save writes the whole data set to the slot and clears the dirty flag. On failure the
// in-memory state and the dirty flag are left as they were.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.persist(ctx)
}

func (s *Store) persist(ctx context.Context) error {
	payload, err := s.data.Encode()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}

	if err := s.slot.Write(ctx, payload); err != nil {
		s.logger.Error("failed to persist data", "error", err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}

	s.dirty = false

	return nil
}

// commit marks the state dirty after a mutation and writes it through when enabled.
// A failed write-through keeps the mutation and leaves the state dirty.
func (s *Store) commit(ctx context.Context) error {
	s.dirty = true

	if !s.writeThrough {
		return nil
	}

	return s.persist(ctx)
}

// Dirty reports whether there are changes not yet written to the slot.
func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.dirty
}

// Snapshot returns a deep copy of the whole data set.
func (s *Store) Snapshot() Data {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.data.Clone()
}

type identified interface {
	RecordID() string
}

func indexOf[T identified](items []T, id string) int {
	return slices.IndexFunc(items, func(item T) bool { return item.RecordID() == id })
}

func lookup[T identified](items []T, id string) (T, bool) {
	if i := indexOf(items, id); i >= 0 {
		return items[i], true
	}

	var zero T

	return zero, false
}

func (s *Store) freshID(taken func(id string) bool) string {
	for {
		if id := s.newID(); !taken(id) {
			return id
		}
	}
}

func takenIn[T identified](items []T) func(string) bool {
	return func(id string) bool { return indexOf(items, id) >= 0 }
}

func (s *Store) Incomes() []Income {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.data.Incomes)
}

func (s *Store) Income(id string) (Income, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lookup(s.data.Incomes, id)
}

func (s *Store) AddIncome(ctx context.Context, params IncomeParams) (Income, error) {
	income := Income{
		Amount:      params.Amount,
		Description: params.Description,
		Category:    params.Category,
		Date:        params.Date,
	}
	if err := income.validate(); err != nil {
		return Income{}, fmt.Errorf("add income: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	income.ID = s.freshID(takenIn(s.data.Incomes))
	s.data.Incomes = append(s.data.Incomes, income)

	return income, s.commit(ctx)
}

// UpdateIncome applies patch to the income with the given id. Unknown ids are ignored.
func (s *Store) UpdateIncome(ctx context.Context, id string, patch IncomePatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.data.Incomes, id)
	if i < 0 {
		return nil
	}

	updated := patch.apply(s.data.Incomes[i])
	if err := updated.validate(); err != nil {
		return fmt.Errorf("update income: %w", err)
	}

	s.data.Incomes[i] = updated

	return s.commit(ctx)
}

func (s *Store) DeleteIncome(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.data.Incomes, id)
	if i < 0 {
		return nil
	}

	s.data.Incomes = slices.Delete(s.data.Incomes, i, i+1)

	return s.commit(ctx)
}

func (s *Store) Expenses() []Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.data.Expenses)
}

func (s *Store) Expense(id string) (Expense, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lookup(s.data.Expenses, id)
}

func (s *Store) AddExpense(ctx context.Context, params ExpenseParams) (Expense, error) {
	expense := Expense{
		Amount:      params.Amount,
		Description: params.Description,
		Category:    params.Category,
		Date:        params.Date,
	}
	if err := expense.validate(); err != nil {
		return Expense{}, fmt.Errorf("add expense: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	expense.ID = s.freshID(takenIn(s.data.Expenses))
	s.data.Expenses = append(s.data.Expenses, expense)

	return expense, s.commit(ctx)
}

func (s *Store) UpdateExpense(ctx context.Context, id string, patch ExpensePatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.data.Expenses, id)
	if i < 0 {
		return nil
	}

	updated := patch.apply(s.data.Expenses[i])
	if err := updated.validate(); err != nil {
		return fmt.Errorf("update expense: %w", err)
	}

	s.data.Expenses[i] = updated

	return s.commit(ctx)
}

func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.data.Expenses, id)
	if i < 0 {
		return nil
	}

	s.data.Expenses = slices.Delete(s.data.Expenses, i, i+1)

	return s.commit(ctx)
}

func (s *Store) Advances() []Advance {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.data.Advances)
}

func (s *Store) Advance(id string) (Advance, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lookup(s.data.Advances, id)
}

func (s *Store) AddAdvance(ctx context.Context, params AdvanceParams) (Advance, error) {
	advance := Advance{
		Name:        params.Name,
		Amount:      params.Amount,
		Description: params.Description,
		PaymentType: params.PaymentType,
		Date:        params.Date,
	}
	if err := advance.validate(); err != nil {
		return Advance{}, fmt.Errorf("add advance: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	advance.ID = s.freshID(takenIn(s.data.Advances))
	s.data.Advances = append(s.data.Advances, advance)

	return advance, s.commit(ctx)
}

func (s *Store) UpdateAdvance(ctx context.Context, id string, patch AdvancePatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.data.Advances, id)
	if i < 0 {
		return nil
	}

	updated := patch.apply(s.data.Advances[i])
	if err := updated.validate(); err != nil {
		return fmt.Errorf("update advance: %w", err)
	}

	s.data.Advances[i] = updated

	return s.commit(ctx)
}

func (s *Store) DeleteAdvance(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.data.Advances, id)
	if i < 0 {
		return nil
	}

	s.data.Advances = slices.Delete(s.data.Advances, i, i+1)

	return s.commit(ctx)
}

func (s *Store) Debts() []Debt {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.data.Debts)
}

func (s *Store) Debt(id string) (Debt, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lookup(s.data.Debts, id)
}

func (s *Store) AddDebt(ctx context.Context, params DebtParams) (Debt, error) {
	debt := Debt{
		ClientName:  params.ClientName,
		Amount:      params.Amount,
		Description: params.Description,
		DueDate:     params.DueDate,
		UpdatedDate: params.UpdatedDate,
	}
	if err := debt.validate(); err != nil {
		return Debt{}, fmt.Errorf("add debt: %w", err)
	}

	if debt.UpdatedDate.IsZero() {
		debt.UpdatedDate = s.today()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	debt.ID = s.freshID(takenIn(s.data.Debts))
	s.data.Debts = append(s.data.Debts, debt)

	return debt, s.commit(ctx)
}

// UpdateDebt applies patch and stamps UpdatedDate with today's date unless the patch sets it.
func (s *Store) UpdateDebt(ctx context.Context, id string, patch DebtPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.data.Debts, id)
	if i < 0 {
		return nil
	}

	updated := patch.apply(s.data.Debts[i])
	if err := updated.validate(); err != nil {
		return fmt.Errorf("update debt: %w", err)
	}

	if patch.UpdatedDate == nil {
		updated.UpdatedDate = s.today()
	}

	s.data.Debts[i] = updated

	return s.commit(ctx)
}

func (s *Store) DeleteDebt(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.data.Debts, id)
	if i < 0 {
		return nil
	}

	s.data.Debts = slices.Delete(s.data.Debts, i, i+1)

	return s.commit(ctx)
}
