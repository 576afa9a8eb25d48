package ledger

import (
	"context"
	"fmt"
	"maps"
	"slices"
)

func (s *Store) EmployeeSalaries() []EmployeeSalary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]EmployeeSalary, 0, len(s.data.EmployeeSalaries))
	for _, rec := range s.data.EmployeeSalaries {
		out = append(out, rec.clone())
	}

	return out
}

func (s *Store) EmployeeSalary(id string) (EmployeeSalary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := lookup(s.data.EmployeeSalaries, id)
	if !ok {
		return EmployeeSalary{}, false
	}

	return rec.clone(), true
}

// AddEmployeeSalary records salaries paid on a date. When a record for that date already
// exists the incoming amounts are merged into it, overwriting employees present in both,
// and the merged record is returned.
func (s *Store) AddEmployeeSalary(ctx context.Context, params SalaryParams) (EmployeeSalary, error) {
	incoming := EmployeeSalary{Date: params.Date, Employees: maps.Clone(params.Employees)}
	if err := incoming.validate(); err != nil {
		return EmployeeSalary{}, fmt.Errorf("add employee salary: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.salaryIndexByDate(incoming.Date); i >= 0 {
		merged := s.data.EmployeeSalaries[i].clone()
		maps.Copy(merged.Employees, incoming.Employees)
		s.data.EmployeeSalaries[i] = merged

		return merged.clone(), s.commit(ctx)
	}

	incoming.ID = s.freshID(takenIn(s.data.EmployeeSalaries))
	s.data.EmployeeSalaries = append(s.data.EmployeeSalaries, incoming)

	return incoming.clone(), s.commit(ctx)
}

// UpdateEmployeeSalary applies patch to a salary record. Moving a record onto a date that
// already has a different record fails with ErrSalaryDateTaken.
func (s *Store) UpdateEmployeeSalary(ctx context.Context, id string, patch SalaryPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.data.EmployeeSalaries, id)
	if i < 0 {
		return nil
	}

	updated := patch.apply(s.data.EmployeeSalaries[i])
	if err := updated.validate(); err != nil {
		return fmt.Errorf("update employee salary: %w", err)
	}

	if j := s.salaryIndexByDate(updated.Date); j >= 0 && j != i {
		return fmt.Errorf("update employee salary: %w", ErrSalaryDateTaken)
	}

	s.data.EmployeeSalaries[i] = updated

	return s.commit(ctx)
}

func (s *Store) DeleteEmployeeSalary(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.data.EmployeeSalaries, id)
	if i < 0 {
		return nil
	}

	s.data.EmployeeSalaries = slices.Delete(s.data.EmployeeSalaries, i, i+1)

	return s.commit(ctx)
}

func (s *Store) salaryIndexByDate(d Date) int {
	return slices.IndexFunc(s.data.EmployeeSalaries, func(rec EmployeeSalary) bool {
		return rec.Date.SameDay(d)
	})
}

// Employees returns the roster in insertion order.
func (s *Store) Employees() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.data.Employees)
}

// AddEmployee appends name to the roster as given. Names are compared exactly, so "avi",
// "Avi " and "Avi" are different employees.
func (s *Store) AddEmployee(ctx context.Context, name string) error {
	if blank(name) {
		return fmt.Errorf("add employee: %w", ErrEmptyName)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.data.Employees, name) {
		return fmt.Errorf("add employee %q: %w", name, ErrEmployeeExists)
	}

	s.data.Employees = append(s.data.Employees, name)

	return s.commit(ctx)
}

// DeleteEmployee removes name from the roster and drops its amount from every salary
// record. Records left with no employees are removed, so the number of salary records
// can shrink.
func (s *Store) DeleteEmployee(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.Index(s.data.Employees, name)
	salaried := slices.ContainsFunc(s.data.EmployeeSalaries, func(rec EmployeeSalary) bool {
		_, ok := rec.Employees[name]
		return ok
	})

	if i < 0 && !salaried {
		return nil
	}

	if i >= 0 {
		s.data.Employees = slices.Delete(s.data.Employees, i, i+1)
	}

	kept := s.data.EmployeeSalaries[:0]
	for _, rec := range s.data.EmployeeSalaries {
		if _, ok := rec.Employees[name]; ok {
			rec = rec.clone()
			delete(rec.Employees, name)

			if len(rec.Employees) == 0 {
				continue
			}
		}

		kept = append(kept, rec)
	}

	clear(s.data.EmployeeSalaries[len(kept):])
	s.data.EmployeeSalaries = kept

	return s.commit(ctx)
}
