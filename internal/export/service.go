package export

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/MrJamesThe3rd/vipledger/internal/ledger"
	"github.com/MrJamesThe3rd/vipledger/internal/period"
)

// Source provides the data set to export.
type Source interface {
	Snapshot() ledger.Data
}

// Service writes a month of records as CSV files plus a plain-text summary.
type Service struct {
	source  Source
	appName string
}

func NewService(source Source, appName string) *Service {
	return &Service{source: source, appName: appName}
}

// File is one exported document.
type File struct {
	Name    string
	Content []byte
}

// Files renders the month's exports. Column headers match what the importer accepts.
func (s *Service) Files(m period.Month) ([]File, error) {
	data := s.source.Snapshot()

	incomes := period.FilterByMonth(data.Incomes, m.Month, m.Year)
	expenses := period.FilterByMonth(data.Expenses, m.Month, m.Year)
	advances := period.FilterByMonth(data.Advances, m.Month, m.Year)
	salaries := period.FilterByMonth(data.EmployeeSalaries, m.Month, m.Year)

	period.SortByDateDesc(incomes)
	period.SortByDateDesc(expenses)
	period.SortByDateDesc(advances)
	period.SortByDateDesc(salaries)

	var files []File

	add := func(name string, header []string, rows [][]string) error {
		b, err := renderCSV(header, rows)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", name, err)
		}

		files = append(files, File{Name: name, Content: b})

		return nil
	}

	incomeRows := make([][]string, 0, len(incomes))
	for _, i := range incomes {
		incomeRows = append(incomeRows, []string{i.Date.String(), formatAmount(i.Amount), i.Description, string(i.Category)})
	}

	if err := add("incomes.csv", []string{"date", "amount", "description", "category"}, incomeRows); err != nil {
		return nil, err
	}

	expenseRows := make([][]string, 0, len(expenses))
	for _, e := range expenses {
		expenseRows = append(expenseRows, []string{e.Date.String(), formatAmount(e.Amount), e.Description, string(e.Category)})
	}

	if err := add("expenses.csv", []string{"date", "amount", "description", "category"}, expenseRows); err != nil {
		return nil, err
	}

	advanceRows := make([][]string, 0, len(advances))
	for _, a := range advances {
		advanceRows = append(advanceRows, []string{a.Date.String(), a.Name, formatAmount(a.Amount), a.Description, string(a.PaymentType)})
	}

	if err := add("advances.csv", []string{"date", "name", "amount", "description", "payment type"}, advanceRows); err != nil {
		return nil, err
	}

	var salaryRows [][]string
	for _, rec := range salaries {
		for _, name := range slices.Sorted(maps.Keys(rec.Employees)) {
			salaryRows = append(salaryRows, []string{rec.Date.String(), name, formatAmount(rec.Employees[name])})
		}
	}

	if err := add("salaries.csv", []string{"date", "name", "amount"}, salaryRows); err != nil {
		return nil, err
	}

	files = append(files, File{
		Name:    "summary.txt",
		Content: []byte(s.GenerateSummary(period.Summarize(data, m))),
	})

	return files, nil
}

// Export writes the month's files into outputDir and returns their paths.
func (s *Service) Export(m period.Month, outputDir string) ([]string, error) {
	files, err := s.Files(m)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(outputDir, archiveBase(m))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	paths := make([]string, 0, len(files))

	for _, f := range files {
		path := filepath.Join(dir, f.Name)
		if err := os.WriteFile(path, f.Content, 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", f.Name, err)
		}

		paths = append(paths, path)
	}

	return paths, nil
}

// WriteArchive streams the month's files as a zip archive.
func (s *Service) WriteArchive(w io.Writer, m period.Month) error {
	files, err := s.Files(m)
	if err != nil {
		return err
	}

	zw := zip.NewWriter(w)

	for _, f := range files {
		fw, err := zw.Create(archiveBase(m) + "/" + f.Name)
		if err != nil {
			return fmt.Errorf("adding %s: %w", f.Name, err)
		}

		if _, err := fw.Write(f.Content); err != nil {
			return fmt.Errorf("writing %s: %w", f.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}

	return nil
}

// ArchiveName is the download file name for a month's archive.
func ArchiveName(m period.Month) string {
	return archiveBase(m) + ".zip"
}

func archiveBase(m period.Month) string {
	return fmt.Sprintf("vip-%04d-%02d", m.Year, int(m.Month))
}

// MonthSummary renders the summary text for m from the current data.
func (s *Service) MonthSummary(m period.Month) string {
	return s.GenerateSummary(period.Summarize(s.source.Snapshot(), m))
}

// GenerateSummary creates a plain-text report of the month's totals.
func (s *Service) GenerateSummary(sum period.Summary) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s - %s\n\n", s.appName, period.FormatMonthYear(sum.Month))
	fmt.Fprintf(&sb, "Total income:      %s\n", period.FormatCurrency(sum.TotalIncome))
	fmt.Fprintf(&sb, "Total expenses:    %s\n", period.FormatCurrency(sum.TotalExpenses))
	fmt.Fprintf(&sb, "Total advances:    %s\n", period.FormatCurrency(sum.TotalAdvances))
	fmt.Fprintf(&sb, "Total salaries:    %s\n", period.FormatCurrency(sum.TotalSalaries))
	fmt.Fprintf(&sb, "Outstanding debts: %s\n", period.FormatCurrency(sum.TotalDebts))

	if len(sum.Categories) > 0 {
		sb.WriteString("\nExpenses by category\n")

		for _, c := range sum.Categories {
			fmt.Fprintf(&sb, "* %s | %s\n", c.Category, period.FormatCurrency(c.Amount))
		}
	}

	if len(sum.Employees) > 0 {
		sb.WriteString("\nSalaries by employee\n")

		for _, e := range sum.Employees {
			fmt.Fprintf(&sb, "* %s | %s\n", e.Name, period.FormatCurrency(e.Amount))
		}
	}

	return sb.String()
}

func renderCSV(header []string, rows [][]string) ([]byte, error) {
	var sb strings.Builder

	w := csv.NewWriter(&sb)
	if err := w.Write(header); err != nil {
		return nil, err
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}

	return []byte(sb.String()), nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
