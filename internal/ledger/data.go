package ledger

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Data is the whole persisted data set. It is always read and written as one document.
type Data struct {
	Incomes          []Income         `json:"incomes"`
	Expenses         []Expense        `json:"expenses"`
	Advances         []Advance        `json:"advances"`
	EmployeeSalaries []EmployeeSalary `json:"employeeSalaries"`
	Debts            []Debt           `json:"debts"`
	Employees        []string         `json:"employees"`
}

// DefaultData is the state of a fresh installation: no records and the default roster.
func DefaultData() Data {
	return Data{
		Incomes:          []Income{},
		Expenses:         []Expense{},
		Advances:         []Advance{},
		EmployeeSalaries: []EmployeeSalary{},
		Debts:            []Debt{},
		Employees:        slices.Clone(DefaultEmployees),
	}
}

// Clone returns a deep copy.
func (d Data) Clone() Data {
	out := Data{
		Incomes:          slices.Clone(d.Incomes),
		Expenses:         slices.Clone(d.Expenses),
		Advances:         slices.Clone(d.Advances),
		EmployeeSalaries: make([]EmployeeSalary, 0, len(d.EmployeeSalaries)),
		Debts:            slices.Clone(d.Debts),
		Employees:        slices.Clone(d.Employees),
	}

	for _, s := range d.EmployeeSalaries {
		out.EmployeeSalaries = append(out.EmployeeSalaries, s.clone())
	}

	return out.normalize()
}

func (d Data) normalize() Data {
	if d.Incomes == nil {
		d.Incomes = []Income{}
	}
	if d.Expenses == nil {
		d.Expenses = []Expense{}
	}
	if d.Advances == nil {
		d.Advances = []Advance{}
	}
	if d.EmployeeSalaries == nil {
		d.EmployeeSalaries = []EmployeeSalary{}
	}
	if d.Debts == nil {
		d.Debts = []Debt{}
	}
	if d.Employees == nil {
		d.Employees = []string{}
	}

	for i := range d.EmployeeSalaries {
		if d.EmployeeSalaries[i].Employees == nil {
			d.EmployeeSalaries[i].Employees = map[string]float64{}
		}
	}

	return d
}

// Encode serialises the data set in its canonical shape.
func (d Data) Encode() ([]byte, error) {
	b, err := json.Marshal(d.normalize())
	if err != nil {
		return nil, fmt.Errorf("encode data: %w", err)
	}

	return b, nil
}

// DecodeData parses a persisted document. Missing collections decode as empty. The roster
// may be a list of names or of {id, name} objects, and salaries may be stored either
// date-keyed under "employeeSalaries" or as flat per-employee entries under "salaries".
func DecodeData(b []byte) (Data, error) {
	var raw struct {
		Incomes          []Income         `json:"incomes"`
		Expenses         []Expense        `json:"expenses"`
		Advances         []Advance        `json:"advances"`
		EmployeeSalaries []EmployeeSalary `json:"employeeSalaries"`
		Salaries         []salaryEntry    `json:"salaries"`
		Debts            []Debt           `json:"debts"`
		Employees        []rosterEntry    `json:"employees"`
	}

	if err := json.Unmarshal(b, &raw); err != nil {
		return Data{}, fmt.Errorf("decode data: %w", err)
	}

	data := Data{
		Incomes:          raw.Incomes,
		Expenses:         raw.Expenses,
		Advances:         raw.Advances,
		EmployeeSalaries: raw.EmployeeSalaries,
		Debts:            raw.Debts,
	}

	names := make(map[string]string, len(raw.Employees))
	for _, e := range raw.Employees {
		if e.Name == "" {
			continue
		}

		data.Employees = append(data.Employees, e.Name)
		if e.ID != "" {
			names[e.ID] = e.Name
		}
	}

	if data.EmployeeSalaries == nil && len(raw.Salaries) > 0 {
		data.EmployeeSalaries = groupSalaryEntries(raw.Salaries, names)
	}

	return data.normalize(), nil
}

type rosterEntry struct {
	ID   string
	Name string
}

func (r *rosterEntry) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err == nil {
		r.Name = name
		return nil
	}

	var obj struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("decode employee: %w", err)
	}

	r.ID, r.Name = obj.ID, obj.Name

	return nil
}

type salaryEntry struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employeeId"`
	Date       Date    `json:"date"`
	Amount     float64 `json:"amount"`
}

// groupSalaryEntries folds flat entries into one record per date, in first-seen order.
func groupSalaryEntries(entries []salaryEntry, names map[string]string) []EmployeeSalary {
	var out []EmployeeSalary

	index := make(map[string]int)

	for _, e := range entries {
		name, ok := names[e.EmployeeID]
		if !ok {
			name = e.EmployeeID
		}

		key := e.Date.String()

		i, ok := index[key]
		if !ok {
			id := e.ID
			if id == "" {
				id = NewID()
			}

			out = append(out, EmployeeSalary{ID: id, Date: e.Date, Employees: map[string]float64{}})
			i = len(out) - 1
			index[key] = i
		}

		out[i].Employees[name] += e.Amount
	}

	return out
}

// Counts returns the number of records in each collection, keyed by collection name.
func (d Data) Counts() map[string]int {
	return map[string]int{
		"incomes":          len(d.Incomes),
		"expenses":         len(d.Expenses),
		"advances":         len(d.Advances),
		"employeeSalaries": len(d.EmployeeSalaries),
		"debts":            len(d.Debts),
		"employees":        len(d.Employees),
	}
}
