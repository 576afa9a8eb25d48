package ledger_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/vipledger/internal/ledger"
)

type memorySlot struct {
	payload []byte
}

func (m *memorySlot) Read(context.Context) ([]byte, error) {
	if m.payload == nil {
		return nil, ledger.ErrSlotEmpty
	}

	return m.payload, nil
}

func (m *memorySlot) Write(_ context.Context, payload []byte) error {
	m.payload = append([]byte(nil), payload...)
	return nil
}

func sequentialIDs() func() string {
	n := 0

	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func fixedToday() ledger.Date {
	return ledger.NewDate(2025, time.March, 10)
}

func newStore(t *testing.T, slot ledger.Slot, opts ...ledger.Option) *ledger.Store {
	t.Helper()

	opts = append([]ledger.Option{ledger.WithIDGenerator(sequentialIDs()), ledger.WithClock(fixedToday)}, opts...)

	return ledger.NewStore(slot, opts...)
}

func TestStore_AddIncome(t *testing.T) {
	type testCase struct {
		name    string
		params  ledger.IncomeParams
		wantErr error
	}

	valid := ledger.IncomeParams{
		Amount:      100,
		Description: "Register",
		Category:    ledger.IncomeDailySummary,
		Date:        ledger.NewDate(2025, time.January, 5),
	}

	tests := []testCase{
		{name: "Success", params: valid},
		{
			name: "ZeroAmount",
			params: func() ledger.IncomeParams {
				p := valid
				p.Amount = 0
				return p
			}(),
		},
		{
			name: "NegativeAmount",
			params: func() ledger.IncomeParams {
				p := valid
				p.Amount = -1
				return p
			}(),
			wantErr: ledger.ErrInvalidAmount,
		},
		{
			name: "MissingDescription",
			params: func() ledger.IncomeParams {
				p := valid
				p.Description = "  "
				return p
			}(),
			wantErr: ledger.ErrEmptyDescription,
		},
		{
			name: "UnknownCategory",
			params: func() ledger.IncomeParams {
				p := valid
				p.Category = "Weekly Summary"
				return p
			}(),
			wantErr: ledger.ErrInvalidCategory,
		},
		{
			name: "MissingDate",
			params: func() ledger.IncomeParams {
				p := valid
				p.Date = ledger.Date{}
				return p
			}(),
			wantErr: ledger.ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(t, &memorySlot{})

			got, err := store.AddIncome(context.Background(), tt.params)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, store.Incomes())
				assert.False(t, store.Dirty())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "id-1", got.ID)
			assert.Equal(t, []ledger.Income{got}, store.Incomes())
			assert.True(t, store.Dirty())
		})
	}
}

func TestStore_AddThenDeleteRestoresContent(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, &memorySlot{})

	_, err := store.AddExpense(ctx, ledger.ExpenseParams{
		Amount: 80, Description: "Paper", Category: ledger.ExpenseOffice, Date: ledger.NewDate(2025, time.January, 3),
	})
	require.NoError(t, err)

	before := store.Snapshot()

	added, err := store.AddExpense(ctx, ledger.ExpenseParams{
		Amount: 20, Description: "Ads", Category: ledger.ExpenseMarketingAdvertising, Date: ledger.NewDate(2025, time.January, 4),
	})
	require.NoError(t, err)

	require.NoError(t, store.DeleteExpense(ctx, added.ID))
	assert.Equal(t, before, store.Snapshot())
}

func TestStore_IDsAreUnique(t *testing.T) {
	ids := []string{"dup", "dup", "dup", "fresh"}
	next := 0

	store := ledger.NewStore(&memorySlot{}, ledger.WithIDGenerator(func() string {
		id := ids[next]
		next++
		return id
	}))

	params := ledger.AdvanceParams{
		Name: "Tzach", Amount: 50, PaymentType: ledger.PaymentCash, Date: ledger.NewDate(2025, time.May, 1),
	}

	first, err := store.AddAdvance(context.Background(), params)
	require.NoError(t, err)

	second, err := store.AddAdvance(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, "dup", first.ID)
	assert.Equal(t, "fresh", second.ID)
}

func TestStore_UpdateIncome(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, &memorySlot{})

	added, err := store.AddIncome(ctx, ledger.IncomeParams{
		Amount: 100, Description: "Register", Category: ledger.IncomeDailySummary, Date: ledger.NewDate(2025, time.January, 5),
	})
	require.NoError(t, err)

	t.Run("PartialUpdateKeepsIDAndOtherFields", func(t *testing.T) {
		err := store.UpdateIncome(ctx, added.ID, ledger.IncomePatch{Amount: new(250.0)})
		require.NoError(t, err)

		got, ok := store.Income(added.ID)
		require.True(t, ok)
		assert.Equal(t, added.ID, got.ID)
		assert.Equal(t, 250.0, got.Amount)
		assert.Equal(t, added.Description, got.Description)
		assert.Equal(t, added.Date, got.Date)
	})

	t.Run("InvalidPatchIsRejected", func(t *testing.T) {
		err := store.UpdateIncome(ctx, added.ID, ledger.IncomePatch{Amount: new(-3.0)})
		require.ErrorIs(t, err, ledger.ErrInvalidAmount)

		got, _ := store.Income(added.ID)
		assert.Equal(t, 250.0, got.Amount)
	})

	t.Run("UnknownIDIsNoop", func(t *testing.T) {
		before := store.Snapshot()

		require.NoError(t, store.UpdateIncome(ctx, "missing", ledger.IncomePatch{Amount: new(1.0)}))
		require.NoError(t, store.DeleteIncome(ctx, "missing"))
		assert.Equal(t, before, store.Snapshot())
	})
}

func TestStore_Debts(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, &memorySlot{})

	debt, err := store.AddDebt(ctx, ledger.DebtParams{
		ClientName: "Garage", Amount: 400, DueDate: ledger.NewDate(2025, time.April, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, fixedToday(), debt.UpdatedDate)

	stamped := ledger.NewDate(2024, time.December, 1)
	require.NoError(t, store.UpdateDebt(ctx, debt.ID, ledger.DebtPatch{UpdatedDate: &stamped}))

	got, _ := store.Debt(debt.ID)
	assert.Equal(t, stamped, got.UpdatedDate)

	require.NoError(t, store.UpdateDebt(ctx, debt.ID, ledger.DebtPatch{Amount: new(300.0)}))

	got, _ = store.Debt(debt.ID)
	assert.Equal(t, 300.0, got.Amount)
	assert.Equal(t, fixedToday(), got.UpdatedDate)

	_, err = store.AddDebt(ctx, ledger.DebtParams{Amount: 10})
	require.ErrorIs(t, err, ledger.ErrEmptyName)
}

func TestStore_AddEmployeeSalaryMergesByDate(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, &memorySlot{})
	day := ledger.NewDate(2025, time.January, 1)

	first, err := store.AddEmployeeSalary(ctx, ledger.SalaryParams{Date: day, Employees: map[string]float64{"A": 10}})
	require.NoError(t, err)

	merged, err := store.AddEmployeeSalary(ctx, ledger.SalaryParams{Date: day, Employees: map[string]float64{"B": 20}})
	require.NoError(t, err)

	assert.Equal(t, first.ID, merged.ID)

	records := store.EmployeeSalaries()
	require.Len(t, records, 1)
	assert.Equal(t, map[string]float64{"A": 10, "B": 20}, records[0].Employees)

	_, err = store.AddEmployeeSalary(ctx, ledger.SalaryParams{Date: day, Employees: map[string]float64{"A": 15}})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"A": 15, "B": 20}, store.EmployeeSalaries()[0].Employees)

	_, err = store.AddEmployeeSalary(ctx, ledger.SalaryParams{Date: day})
	require.ErrorIs(t, err, ledger.ErrNoSalaries)
}

func TestStore_UpdateEmployeeSalary(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, &memorySlot{})

	jan, err := store.AddEmployeeSalary(ctx, ledger.SalaryParams{
		Date: ledger.NewDate(2025, time.January, 1), Employees: map[string]float64{"Avi": 100},
	})
	require.NoError(t, err)

	feb, err := store.AddEmployeeSalary(ctx, ledger.SalaryParams{
		Date: ledger.NewDate(2025, time.February, 1), Employees: map[string]float64{"Avi": 200},
	})
	require.NoError(t, err)

	err = store.UpdateEmployeeSalary(ctx, feb.ID, ledger.SalaryPatch{Date: &jan.Date})
	require.ErrorIs(t, err, ledger.ErrSalaryDateTaken)

	err = store.UpdateEmployeeSalary(ctx, feb.ID, ledger.SalaryPatch{Employees: map[string]float64{"Mai": 50}})
	require.NoError(t, err)

	got, ok := store.EmployeeSalary(feb.ID)
	require.True(t, ok)
	assert.Equal(t, map[string]float64{"Mai": 50}, got.Employees)
}

func TestStore_Employees(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, &memorySlot{})

	assert.Equal(t, ledger.DefaultEmployees, store.Employees())

	require.NoError(t, store.AddEmployee(ctx, "Dana"))
	require.ErrorIs(t, store.AddEmployee(ctx, "Dana"), ledger.ErrEmployeeExists)
	require.NoError(t, store.AddEmployee(ctx, "dana"))
	require.ErrorIs(t, store.AddEmployee(ctx, " "), ledger.ErrEmptyName)

	assert.Equal(t, append(append([]string{}, ledger.DefaultEmployees...), "Dana", "dana"), store.Employees())
}

func TestStore_AddEmployeeKeepsNameAsGiven(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, &memorySlot{})

	require.NoError(t, store.AddEmployee(ctx, "Avi "))
	require.ErrorIs(t, store.AddEmployee(ctx, "Avi "), ledger.ErrEmployeeExists)

	roster := store.Employees()
	assert.Contains(t, roster, "Avi")
	assert.Equal(t, "Avi ", roster[len(roster)-1])
}

func TestStore_DeleteEmployeeCascades(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, &memorySlot{})

	_, err := store.AddEmployeeSalary(ctx, ledger.SalaryParams{
		Date: ledger.NewDate(2025, time.January, 1), Employees: map[string]float64{"Avi": 100, "Mai": 50},
	})
	require.NoError(t, err)

	_, err = store.AddEmployeeSalary(ctx, ledger.SalaryParams{
		Date: ledger.NewDate(2025, time.January, 8), Employees: map[string]float64{"Avi": 70},
	})
	require.NoError(t, err)

	_, err = store.AddEmployeeSalary(ctx, ledger.SalaryParams{
		Date: ledger.NewDate(2025, time.January, 15), Employees: map[string]float64{"Mai": 30},
	})
	require.NoError(t, err)

	require.NoError(t, store.DeleteEmployee(ctx, "Avi"))

	assert.NotContains(t, store.Employees(), "Avi")

	records := store.EmployeeSalaries()
	require.Len(t, records, 2)
	assert.Equal(t, map[string]float64{"Mai": 50}, records[0].Employees)
	assert.Equal(t, map[string]float64{"Mai": 30}, records[1].Employees)
}

func TestStore_SaveThenLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	slot := &memorySlot{}
	store := newStore(t, slot)

	_, err := store.AddIncome(ctx, ledger.IncomeParams{
		Amount: 100, Description: "Register", Category: ledger.IncomeDailySummary, Date: ledger.NewDate(2025, time.January, 5),
	})
	require.NoError(t, err)
	_, err = store.AddExpense(ctx, ledger.ExpenseParams{
		Amount: 80.5, Description: "Paper", Category: ledger.ExpenseOffice, Date: ledger.NewDate(2025, time.January, 6),
	})
	require.NoError(t, err)
	_, err = store.AddAdvance(ctx, ledger.AdvanceParams{
		Name: "Roi", Amount: 300, PaymentType: ledger.PaymentBankTransfer, Date: ledger.NewDate(2025, time.January, 7),
	})
	require.NoError(t, err)
	_, err = store.AddEmployeeSalary(ctx, ledger.SalaryParams{
		Date: ledger.NewDate(2025, time.January, 8), Employees: map[string]float64{"Meir": 1200},
	})
	require.NoError(t, err)
	_, err = store.AddDebt(ctx, ledger.DebtParams{ClientName: "Garage", Amount: 400})
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx))
	assert.False(t, store.Dirty())

	reloaded := ledger.NewStore(slot)
	require.NoError(t, reloaded.Load(ctx))

	assert.Equal(t, store.Snapshot(), reloaded.Snapshot())
}

func TestStore_Load(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *ledger.MockSlot)
		wantErr   bool
		want      ledger.Data
	}

	tests := []testCase{
		{
			name: "EmptySlot",
			setupMock: func(m *ledger.MockSlot) {
				m.EXPECT().Read(gomock.Any()).Return(nil, ledger.ErrSlotEmpty)
			},
			want: ledger.DefaultData(),
		},
		{
			name: "ReadError",
			setupMock: func(m *ledger.MockSlot) {
				m.EXPECT().Read(gomock.Any()).Return(nil, errors.New("disk gone"))
			},
			wantErr: true,
			want:    ledger.DefaultData(),
		},
		{
			name: "CorruptDocument",
			setupMock: func(m *ledger.MockSlot) {
				m.EXPECT().Read(gomock.Any()).Return([]byte("{not json"), nil)
			},
			wantErr: true,
			want:    ledger.DefaultData(),
		},
		{
			name: "MissingKeysDefaultToEmpty",
			setupMock: func(m *ledger.MockSlot) {
				m.EXPECT().Read(gomock.Any()).Return([]byte(`{"employees":["Avi"]}`), nil)
			},
			want: ledger.Data{
				Incomes:          []ledger.Income{},
				Expenses:         []ledger.Expense{},
				Advances:         []ledger.Advance{},
				EmployeeSalaries: []ledger.EmployeeSalary{},
				Debts:            []ledger.Debt{},
				Employees:        []string{"Avi"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			slot := ledger.NewMockSlot(ctrl)
			tt.setupMock(slot)

			store := ledger.NewStore(slot)
			err := store.Load(context.Background())

			if tt.wantErr {
				require.ErrorIs(t, err, ledger.ErrLoad)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tt.want, store.Snapshot())
			assert.False(t, store.Dirty())
		})
	}
}

func TestStore_SaveFailureKeepsState(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	slot := ledger.NewMockSlot(ctrl)
	slot.EXPECT().Write(gomock.Any(), gomock.Any()).Return(errors.New("quota exceeded"))

	store := newStore(t, slot)

	_, err := store.AddEmployeeSalary(ctx, ledger.SalaryParams{
		Date: ledger.NewDate(2025, time.January, 1), Employees: map[string]float64{"Avi": 1},
	})
	require.NoError(t, err)

	before := store.Snapshot()

	require.ErrorIs(t, store.Save(ctx), ledger.ErrPersist)
	assert.True(t, store.Dirty())
	assert.Equal(t, before, store.Snapshot())
}

func TestStore_WriteThrough(t *testing.T) {
	ctx := context.Background()

	t.Run("PersistsEveryMutation", func(t *testing.T) {
		slot := &memorySlot{}
		store := newStore(t, slot, ledger.WithWriteThrough(true))

		require.NoError(t, store.AddEmployee(ctx, "Dana"))
		assert.False(t, store.Dirty())

		data, err := ledger.DecodeData(slot.payload)
		require.NoError(t, err)
		assert.Contains(t, data.Employees, "Dana")
	})

	t.Run("FailureKeepsMutationAndDirtyFlag", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		slot := ledger.NewMockSlot(ctrl)
		slot.EXPECT().Write(gomock.Any(), gomock.Any()).Return(errors.New("offline"))

		store := newStore(t, slot, ledger.WithWriteThrough(true))

		err := store.AddEmployee(ctx, "Dana")
		require.ErrorIs(t, err, ledger.ErrPersist)
		assert.Contains(t, store.Employees(), "Dana")
		assert.True(t, store.Dirty())
	})
}
