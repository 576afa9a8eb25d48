package ledger

import (
	"errors"
	"maps"
	"math"
	"slices"
	"strings"
)

var (
	ErrInvalidAmount      = errors.New("amount must be a non-negative number")
	ErrInvalidDate        = errors.New("date is required")
	ErrEmptyDescription   = errors.New("description is required")
	ErrInvalidCategory    = errors.New("unknown category")
	ErrInvalidPaymentType = errors.New("unknown payment type")
	ErrEmptyName          = errors.New("name is required")
	ErrEmployeeExists     = errors.New("employee already exists")
	ErrNoSalaries         = errors.New("salary record has no employees")
	ErrSalaryDateTaken    = errors.New("a salary record already exists for that date")

	// ErrSlotEmpty is returned by a Slot when nothing has been written under its key yet.
	ErrSlotEmpty = errors.New("slot is empty")
	// ErrLoad marks a failed load; the store has fallen back to the default state.
	ErrLoad = errors.New("load financial data")
	// ErrPersist marks a failed durable write; in-memory state is unaffected.
	ErrPersist = errors.New("persist financial data")
)

// IncomeCategory classifies an income record.
type IncomeCategory string

const (
	IncomeDailySummary   IncomeCategory = "Daily Summary"
	IncomeMonthlySummary IncomeCategory = "Monthly Summary"
)

func IncomeCategories() []IncomeCategory {
	return []IncomeCategory{IncomeDailySummary, IncomeMonthlySummary}
}

func (c IncomeCategory) Valid() bool {
	switch c {
	case IncomeDailySummary, IncomeMonthlySummary:
		return true
	default:
		return false
	}
}

// ExpenseCategory classifies an expense record. The set is closed.
type ExpenseCategory string

const (
	ExpenseSalaries                  ExpenseCategory = "Salaries"
	ExpenseCustomerRepairRefunds     ExpenseCategory = "Refunds for Customer Repairs"
	ExpenseMaterialsEquipmentRepairs ExpenseCategory = "Materials, Equipment, and Repairs"
	ExpenseMarketingAdvertising      ExpenseCategory = "Marketing and Advertising Expenses"
	ExpenseUnnecessary               ExpenseCategory = "Unnecessary Expenses"
	ExpenseOffice                    ExpenseCategory = "Office Expenses"
)

func ExpenseCategories() []ExpenseCategory {
	return []ExpenseCategory{
		ExpenseSalaries,
		ExpenseCustomerRepairRefunds,
		ExpenseMaterialsEquipmentRepairs,
		ExpenseMarketingAdvertising,
		ExpenseUnnecessary,
		ExpenseOffice,
	}
}

func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseSalaries,
		ExpenseCustomerRepairRefunds,
		ExpenseMaterialsEquipmentRepairs,
		ExpenseMarketingAdvertising,
		ExpenseUnnecessary,
		ExpenseOffice:
		return true
	default:
		return false
	}
}

// PaymentType is how an advance was paid out.
type PaymentType string

const (
	PaymentCheck        PaymentType = "Check"
	PaymentCash         PaymentType = "Cash"
	PaymentCredit       PaymentType = "Credit"
	PaymentBankTransfer PaymentType = "Bank Transfer"
)

func PaymentTypes() []PaymentType {
	return []PaymentType{PaymentCheck, PaymentCash, PaymentCredit, PaymentBankTransfer}
}

func (p PaymentType) Valid() bool {
	switch p {
	case PaymentCheck, PaymentCash, PaymentCredit, PaymentBankTransfer:
		return true
	default:
		return false
	}
}

// AdvanceNames are the names offered as suggestions when recording an advance.
// Advance.Name is free text and is not checked against this list.
var AdvanceNames = []string{"Tzach", "Ben", "Roi", "Orel"}

// DefaultEmployees is the roster used for a fresh or unreadable data set.
var DefaultEmployees = []string{"Shelo", "Avi", "Shaked", "Meir", "Mai", "Yaakov"}

type Income struct {
	ID          string         `json:"id"`
	Amount      float64        `json:"amount"`
	Description string         `json:"description"`
	Category    IncomeCategory `json:"category"`
	Date        Date           `json:"date"`
}

type Expense struct {
	ID          string          `json:"id"`
	Amount      float64         `json:"amount"`
	Description string          `json:"description"`
	Category    ExpenseCategory `json:"category"`
	Date        Date            `json:"date"`
}

type Advance struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Amount      float64     `json:"amount"`
	Description string      `json:"description"`
	PaymentType PaymentType `json:"paymentType"`
	Date        Date        `json:"date"`
}

// EmployeeSalary holds every salary paid on a single date, keyed by employee name.
type EmployeeSalary struct {
	ID        string             `json:"id"`
	Date      Date               `json:"date"`
	Employees map[string]float64 `json:"employees"`
}

// Debt is an outstanding client balance. A debt is settled by deleting it.
type Debt struct {
	ID          string  `json:"id"`
	ClientName  string  `json:"clientName"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	DueDate     Date    `json:"dueDate"`
	UpdatedDate Date    `json:"updatedDate"`
}

func (i Income) RecordID() string         { return i.ID }
func (i Income) RecordDate() Date         { return i.Date }
func (i Income) RecordAmount() float64    { return i.Amount }
func (e Expense) RecordID() string        { return e.ID }
func (e Expense) RecordDate() Date        { return e.Date }
func (e Expense) RecordAmount() float64   { return e.Amount }
func (a Advance) RecordID() string        { return a.ID }
func (a Advance) RecordDate() Date        { return a.Date }
func (a Advance) RecordAmount() float64   { return a.Amount }
func (s EmployeeSalary) RecordID() string { return s.ID }
func (s EmployeeSalary) RecordDate() Date { return s.Date }
func (d Debt) RecordID() string           { return d.ID }
func (d Debt) RecordAmount() float64      { return d.Amount }

// RecordAmount sums every employee's amount. Names are summed in sorted order so the
// float result does not depend on map iteration.
func (s EmployeeSalary) RecordAmount() float64 {
	var total float64
	for _, name := range slices.Sorted(maps.Keys(s.Employees)) {
		total += s.Employees[name]
	}

	return total
}

// SearchText returns the fields a free-text search matches against.
func (i Income) SearchText() []string {
	return []string{i.Description, string(i.Category)}
}

func (e Expense) SearchText() []string {
	return []string{e.Description, string(e.Category)}
}

func (a Advance) SearchText() []string {
	return []string{a.Name, a.Description, string(a.PaymentType)}
}

func (s EmployeeSalary) clone() EmployeeSalary {
	s.Employees = maps.Clone(s.Employees)
	if s.Employees == nil {
		s.Employees = map[string]float64{}
	}

	return s
}

func validAmount(v float64) bool {
	return v >= 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
