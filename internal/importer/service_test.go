package importer_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/vipledger/internal/importer"
	"github.com/MrJamesThe3rd/vipledger/internal/ledger"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseKind(t *testing.T) {
	kind, err := importer.ParseKind(" Expenses ")
	require.NoError(t, err)
	assert.Equal(t, importer.KindExpenses, kind)

	_, err = importer.ParseKind("salaries")
	assert.ErrorIs(t, err, importer.ErrUnknownKind)
}

func TestService_Parse(t *testing.T) {
	type testCase struct {
		name        string
		kind        importer.Kind
		csvContent  string
		wantLen     int
		wantSkipped int
		verify      func(t *testing.T, b *importer.Batch)
	}

	tests := []testCase{
		{
			name:       "Incomes",
			kind:       importer.KindIncomes,
			csvContent: "date,amount,description,category\n2025-01-05,\"1,250\",Register,daily summary\n05/01/2025,300,,\n",
			wantLen:    2,
			verify: func(t *testing.T, b *importer.Batch) {
				assert.Equal(t, ledger.IncomeParams{
					Amount: 1250, Description: "Register", Category: ledger.IncomeDailySummary, Date: ledger.NewDate(2025, time.January, 5),
				}, b.Incomes[0])
				assert.Equal(t, "Daily Summary", b.Incomes[1].Description)
			},
		},
		{
			name:        "ExpensesRequireKnownCategory",
			kind:        importer.KindExpenses,
			csvContent:  "date;amount;description;category\n2025-01-05;80;Paper;Office Expenses\n2025-01-06;10;Snacks;Food\n",
			wantLen:     1,
			wantSkipped: 1,
			verify: func(t *testing.T, b *importer.Batch) {
				assert.Equal(t, ledger.ExpenseOffice, b.Expenses[0].Category)
				assert.Equal(t, 3, b.Skipped[0].Line)
			},
		},
		{
			name:       "SemicolonFileWithCommaDecimals",
			kind:       importer.KindExpenses,
			csvContent: "date;amount;description;category\n2025-01-05;12,50;Paper;Office Expenses\n2025-01-06;1.234,56;Flyers;Office Expenses\n",
			wantLen:    2,
			verify: func(t *testing.T, b *importer.Batch) {
				assert.InDelta(t, 12.5, b.Expenses[0].Amount, 1e-9)
				assert.InDelta(t, 1234.56, b.Expenses[1].Amount, 1e-9)
			},
		},
		{
			name:        "Advances",
			kind:        importer.KindAdvances,
			csvContent:  "name,amount,payment type,date\nTzach,500,bank transfer,2025-03-01\nBen,abc,Cash,2025-03-02\n",
			wantLen:     1,
			wantSkipped: 1,
			verify: func(t *testing.T, b *importer.Batch) {
				assert.Equal(t, "Tzach", b.Advances[0].Name)
				assert.Equal(t, ledger.PaymentBankTransfer, b.Advances[0].PaymentType)
			},
		},
		{
			name:       "AdvancesWithoutNameColumn",
			kind:       importer.KindAdvances,
			csvContent: "amount,date\n500,2025-03-01\n",
			wantLen:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := importer.NewService(nil, discardLogger())

			got, err := svc.Parse(tt.kind, strings.NewReader(tt.csvContent))
			require.NoError(t, err)

			assert.Equal(t, tt.wantLen, got.Len())
			assert.Len(t, got.Skipped, tt.wantSkipped)
			assert.Equal(t, "UTF-8", got.Charset)

			if tt.verify != nil {
				tt.verify(t, got)
			}
		})
	}
}

func TestService_Apply(t *testing.T) {
	batch := &importer.Batch{
		Kind: importer.KindIncomes,
		Incomes: []ledger.IncomeParams{
			{Amount: 1, Description: "a", Category: ledger.IncomeDailySummary, Date: ledger.NewDate(2025, 1, 1)},
			{Amount: 2, Description: "b", Category: ledger.IncomeDailySummary, Date: ledger.NewDate(2025, 1, 2)},
			{Amount: 3, Description: "c", Category: ledger.IncomeDailySummary, Date: ledger.NewDate(2025, 1, 3)},
		},
	}

	type testCase struct {
		name         string
		setupMock    func(m *importer.MockRecorder)
		wantImported int
		wantSkipped  int
		wantErr      error
	}

	tests := []testCase{
		{
			name: "AllAdded",
			setupMock: func(m *importer.MockRecorder) {
				m.EXPECT().AddIncome(gomock.Any(), gomock.Any()).Return(ledger.Income{}, nil).Times(3)
			},
			wantImported: 3,
		},
		{
			name: "RejectedRecordIsSkipped",
			setupMock: func(m *importer.MockRecorder) {
				gomock.InOrder(
					m.EXPECT().AddIncome(gomock.Any(), batch.Incomes[0]).Return(ledger.Income{}, nil),
					m.EXPECT().AddIncome(gomock.Any(), batch.Incomes[1]).Return(ledger.Income{}, ledger.ErrInvalidAmount),
					m.EXPECT().AddIncome(gomock.Any(), batch.Incomes[2]).Return(ledger.Income{}, nil),
				)
			},
			wantImported: 2,
			wantSkipped:  1,
		},
		{
			name: "PersistFailureStops",
			setupMock: func(m *importer.MockRecorder) {
				m.EXPECT().AddIncome(gomock.Any(), gomock.Any()).
					Return(ledger.Income{}, errors.Join(ledger.ErrPersist, errors.New("disk full")))
			},
			wantImported: 1,
			wantErr:      ledger.ErrPersist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			rec := importer.NewMockRecorder(ctrl)
			tt.setupMock(rec)

			svc := importer.NewService(rec, discardLogger())
			got, err := svc.Apply(context.Background(), batch)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tt.wantImported, got.Imported)
			assert.Len(t, got.Skipped, tt.wantSkipped)
		})
	}
}

func TestService_ImportIntoStore(t *testing.T) {
	ctx := context.Background()
	store := ledger.NewStore(nopSlot{})
	svc := importer.NewService(store, discardLogger())

	result, err := svc.Import(ctx, importer.KindExpenses, strings.NewReader(
		"date,amount,description,category\n2025-01-05,80,Paper,Office Expenses\n",
	))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)

	expenses := store.Expenses()
	require.Len(t, expenses, 1)
	assert.Equal(t, "Paper", expenses[0].Description)
	assert.True(t, store.Dirty())
}

type nopSlot struct{}

func (nopSlot) Read(context.Context) ([]byte, error) { return nil, ledger.ErrSlotEmpty }
func (nopSlot) Write(context.Context, []byte) error  { return nil }
