package export_test

import (
	"archive/zip"
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/vipledger/internal/export"
	"github.com/MrJamesThe3rd/vipledger/internal/importer"
	"github.com/MrJamesThe3rd/vipledger/internal/ledger"
	"github.com/MrJamesThe3rd/vipledger/internal/period"
)

type staticSource struct {
	data ledger.Data
}

func (s staticSource) Snapshot() ledger.Data {
	return s.data.Clone()
}

func sampleData() ledger.Data {
	data := ledger.DefaultData()
	data.Employees = []string{"Avi", "Mai"}
	data.Incomes = []ledger.Income{
		{ID: "i1", Amount: 100, Description: "Register", Category: ledger.IncomeDailySummary, Date: ledger.NewDate(2025, time.January, 5)},
		{ID: "i2", Amount: 250.5, Description: "Close, late", Category: ledger.IncomeMonthlySummary, Date: ledger.NewDate(2025, time.January, 31)},
		{ID: "i3", Amount: 999, Description: "Feb", Category: ledger.IncomeDailySummary, Date: ledger.NewDate(2025, time.February, 1)},
	}
	data.Expenses = []ledger.Expense{
		{ID: "e1", Amount: 80, Description: "Paper", Category: ledger.ExpenseOffice, Date: ledger.NewDate(2025, time.January, 6)},
	}
	data.EmployeeSalaries = []ledger.EmployeeSalary{
		{ID: "s1", Date: ledger.NewDate(2025, time.January, 8), Employees: map[string]float64{"Mai": 40, "Avi": 1200}},
	}
	data.Debts = []ledger.Debt{{ID: "d1", ClientName: "Garage", Amount: 1500}}

	return data
}

func fileByName(t *testing.T, files []export.File, name string) string {
	t.Helper()

	for _, f := range files {
		if f.Name == name {
			return string(f.Content)
		}
	}

	t.Fatalf("file %s not exported", name)

	return ""
}

func TestService_Files(t *testing.T) {
	svc := export.NewService(staticSource{data: sampleData()}, "VIP Ledger")

	files, err := svc.Files(period.NewMonth(time.January, 2025))
	require.NoError(t, err)
	require.Len(t, files, 5)

	assert.Equal(t,
		"date,amount,description,category\n"+
			"2025-01-31,250.5,\"Close, late\",Monthly Summary\n"+
			"2025-01-05,100,Register,Daily Summary\n",
		fileByName(t, files, "incomes.csv"))

	assert.Equal(t,
		"date,name,amount\n"+
			"2025-01-08,Avi,1200\n"+
			"2025-01-08,Mai,40\n",
		fileByName(t, files, "salaries.csv"))

	assert.Equal(t, "date,name,amount,description,payment type\n", fileByName(t, files, "advances.csv"))
}

func TestService_GenerateSummary(t *testing.T) {
	svc := export.NewService(staticSource{data: sampleData()}, "VIP Ledger")

	got := svc.GenerateSummary(period.Summarize(sampleData(), period.NewMonth(time.January, 2025)))

	expected := `VIP Ledger - January 2025

Total income:      ₪351
Total expenses:    ₪80
Total advances:    ₪0
Total salaries:    ₪1,240
Outstanding debts: ₪1,500

Expenses by category
* Office Expenses | ₪80

Salaries by employee
* Avi | ₪1,200
* Mai | ₪40
`
	assert.Equal(t, expected, got)
	assert.Equal(t, expected, svc.MonthSummary(period.NewMonth(time.January, 2025)))
}

func TestService_WriteArchive(t *testing.T) {
	svc := export.NewService(staticSource{data: sampleData()}, "VIP Ledger")
	m := period.NewMonth(time.January, 2025)

	var buf bytes.Buffer
	require.NoError(t, svc.WriteArchive(&buf, m))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}

	assert.Equal(t, []string{
		"vip-2025-01/incomes.csv",
		"vip-2025-01/expenses.csv",
		"vip-2025-01/advances.csv",
		"vip-2025-01/salaries.csv",
		"vip-2025-01/summary.txt",
	}, names)
	assert.Equal(t, "vip-2025-01.zip", export.ArchiveName(m))
}

func TestService_Export(t *testing.T) {
	svc := export.NewService(staticSource{data: sampleData()}, "VIP Ledger")
	dir := t.TempDir()

	paths, err := svc.Export(period.NewMonth(time.January, 2025), dir)
	require.NoError(t, err)
	require.Len(t, paths, 5)

	b, err := os.ReadFile(filepath.Join(dir, "vip-2025-01", "expenses.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "2025-01-06,80,Paper,Office Expenses")
}

func TestExportedCSVImportsBack(t *testing.T) {
	svc := export.NewService(staticSource{data: sampleData()}, "VIP Ledger")

	files, err := svc.Files(period.NewMonth(time.January, 2025))
	require.NoError(t, err)

	imp := importer.NewService(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	batch, err := imp.Parse(importer.KindIncomes, bytes.NewReader([]byte(fileByName(t, files, "incomes.csv"))))
	require.NoError(t, err)
	require.Empty(t, batch.Skipped)
	require.Len(t, batch.Incomes, 2)
	assert.Equal(t, ledger.IncomeParams{
		Amount: 250.5, Description: "Close, late", Category: ledger.IncomeMonthlySummary, Date: ledger.NewDate(2025, time.January, 31),
	}, batch.Incomes[0])
}
