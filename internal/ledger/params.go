package ledger

import (
	"fmt"
	"strings"
)

type IncomeParams struct {
	Amount      float64
	Description string
	Category    IncomeCategory
	Date        Date
}

type ExpenseParams struct {
	Amount      float64
	Description string
	Category    ExpenseCategory
	Date        Date
}

type AdvanceParams struct {
	Name        string
	Amount      float64
	Description string
	PaymentType PaymentType
	Date        Date
}

type SalaryParams struct {
	Date      Date
	Employees map[string]float64
}

// DebtParams creates a debt. A zero UpdatedDate is stamped with today's date.
type DebtParams struct {
	ClientName  string
	Amount      float64
	Description string
	DueDate     Date
	UpdatedDate Date
}

// Patches carry only the fields to change; nil fields are left as they are.

type IncomePatch struct {
	Amount      *float64
	Description *string
	Category    *IncomeCategory
	Date        *Date
}

type ExpensePatch struct {
	Amount      *float64
	Description *string
	Category    *ExpenseCategory
	Date        *Date
}

type AdvancePatch struct {
	Name        *string
	Amount      *float64
	Description *string
	PaymentType *PaymentType
	Date        *Date
}

// SalaryPatch replaces the date and/or the whole employee mapping of a salary record.
type SalaryPatch struct {
	Date      *Date
	Employees map[string]float64
}

type DebtPatch struct {
	ClientName  *string
	Amount      *float64
	Description *string
	DueDate     *Date
	UpdatedDate *Date
}

func (i Income) validate() error {
	switch {
	case !validAmount(i.Amount):
		return ErrInvalidAmount
	case blank(i.Description):
		return ErrEmptyDescription
	case !i.Category.Valid():
		return fmt.Errorf("income category %q: %w", i.Category, ErrInvalidCategory)
	case i.Date.IsZero():
		return ErrInvalidDate
	}

	return nil
}

func (e Expense) validate() error {
	switch {
	case !validAmount(e.Amount):
		return ErrInvalidAmount
	case blank(e.Description):
		return ErrEmptyDescription
	case !e.Category.Valid():
		return fmt.Errorf("expense category %q: %w", e.Category, ErrInvalidCategory)
	case e.Date.IsZero():
		return ErrInvalidDate
	}

	return nil
}

func (a Advance) validate() error {
	switch {
	case blank(a.Name):
		return ErrEmptyName
	case !validAmount(a.Amount):
		return ErrInvalidAmount
	case !a.PaymentType.Valid():
		return fmt.Errorf("payment type %q: %w", a.PaymentType, ErrInvalidPaymentType)
	case a.Date.IsZero():
		return ErrInvalidDate
	}

	return nil
}

func (s EmployeeSalary) validate() error {
	if s.Date.IsZero() {
		return ErrInvalidDate
	}

	return validateSalaries(s.Employees)
}

func validateSalaries(employees map[string]float64) error {
	if len(employees) == 0 {
		return ErrNoSalaries
	}

	for name, amount := range employees {
		if blank(name) {
			return ErrEmptyName
		}

		if !validAmount(amount) {
			return fmt.Errorf("salary for %s: %w", name, ErrInvalidAmount)
		}
	}

	return nil
}

func (d Debt) validate() error {
	switch {
	case blank(d.ClientName):
		return ErrEmptyName
	case !validAmount(d.Amount):
		return ErrInvalidAmount
	}

	return nil
}

func (p IncomePatch) apply(i Income) Income {
	if p.Amount != nil {
		i.Amount = *p.Amount
	}
	if p.Description != nil {
		i.Description = *p.Description
	}
	if p.Category != nil {
		i.Category = *p.Category
	}
	if p.Date != nil {
		i.Date = *p.Date
	}

	return i
}

func (p ExpensePatch) apply(e Expense) Expense {
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Date != nil {
		e.Date = *p.Date
	}

	return e
}

func (p AdvancePatch) apply(a Advance) Advance {
	if p.Name != nil {
		a.Name = strings.TrimSpace(*p.Name)
	}
	if p.Amount != nil {
		a.Amount = *p.Amount
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.PaymentType != nil {
		a.PaymentType = *p.PaymentType
	}
	if p.Date != nil {
		a.Date = *p.Date
	}

	return a
}

func (p SalaryPatch) apply(s EmployeeSalary) EmployeeSalary {
	s = s.clone()
	if p.Date != nil {
		s.Date = *p.Date
	}
	if p.Employees != nil {
		s.Employees = make(map[string]float64, len(p.Employees))
		for name, amount := range p.Employees {
			s.Employees[name] = amount
		}
	}

	return s
}

func (p DebtPatch) apply(d Debt) Debt {
	if p.ClientName != nil {
		d.ClientName = strings.TrimSpace(*p.ClientName)
	}
	if p.Amount != nil {
		d.Amount = *p.Amount
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.DueDate != nil {
		d.DueDate = *p.DueDate
	}
	if p.UpdatedDate != nil {
		d.UpdatedDate = *p.UpdatedDate
	}

	return d
}
