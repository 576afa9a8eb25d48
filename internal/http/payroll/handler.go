// Package payroll serves salary records and the employee roster.
package payroll

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/vipledger/internal/http/render"
	"github.com/MrJamesThe3rd/vipledger/internal/ledger"
	"github.com/MrJamesThe3rd/vipledger/internal/period"
)

type Handler struct {
	store *ledger.Store
}

func NewHandler(store *ledger.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Salaries(r chi.Router) {
	r.Get("/", h.listSalaries)
	r.Post("/", h.createSalary)
	r.Get("/{id}", h.getSalary)
	r.Patch("/{id}", h.updateSalary)
	r.Delete("/{id}", h.deleteSalary)
}

func (h *Handler) Employees(r chi.Router) {
	r.Get("/", h.listEmployees)
	r.Post("/", h.createEmployee)
	r.Delete("/{name}", h.deleteEmployee)
	r.Get("/{name}/total", h.employeeTotal)
}

type createSalaryRequest struct {
	Date      ledger.Date              `json:"date"`
	Employees map[string]render.Amount `json:"employees" validate:"required,min=1"`
}

type updateSalaryRequest struct {
	Date      *ledger.Date             `json:"date"`
	Employees map[string]render.Amount `json:"employees" validate:"omitempty,min=1"`
}

type createEmployeeRequest struct {
	Name string `json:"name" validate:"required"`
}

type employeeTotalResponse struct {
	Name  string  `json:"name"`
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

func amounts(in map[string]render.Amount) map[string]float64 {
	if in == nil {
		return nil
	}

	out := make(map[string]float64, len(in))
	for name, v := range in {
		out[name] = float64(v)
	}

	return out
}

func (h *Handler) listSalaries(w http.ResponseWriter, r *http.Request) {
	salaries := h.store.EmployeeSalaries()

	if render.HasMonth(r) {
		m, err := render.Month(r)
		if err != nil {
			render.Error(w, err)
			return
		}

		salaries = period.FilterByMonth(salaries, m.Month, m.Year)
	}

	period.SortByDateDesc(salaries)
	render.JSON(w, http.StatusOK, salaries)
}

func (h *Handler) createSalary(w http.ResponseWriter, r *http.Request) {
	var req createSalaryRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, err)
		return
	}

	salary, err := h.store.AddEmployeeSalary(r.Context(), ledger.SalaryParams{
		Date:      req.Date,
		Employees: amounts(req.Employees),
	})
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusCreated, salary)
}

func (h *Handler) getSalary(w http.ResponseWriter, r *http.Request) {
	salary, ok := h.salary(w, r)
	if !ok {
		return
	}

	render.JSON(w, http.StatusOK, salary)
}

func (h *Handler) updateSalary(w http.ResponseWriter, r *http.Request) {
	salary, ok := h.salary(w, r)
	if !ok {
		return
	}

	var req updateSalaryRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, err)
		return
	}

	err := h.store.UpdateEmployeeSalary(r.Context(), salary.ID, ledger.SalaryPatch{
		Date:      req.Date,
		Employees: amounts(req.Employees),
	})
	if err != nil {
		render.Error(w, err)
		return
	}

	salary, _ = h.store.EmployeeSalary(salary.ID)
	render.JSON(w, http.StatusOK, salary)
}

func (h *Handler) deleteSalary(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteEmployeeSalary(r.Context(), chi.URLParam(r, "id")); err != nil {
		render.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) salary(w http.ResponseWriter, r *http.Request) (ledger.EmployeeSalary, bool) {
	id := chi.URLParam(r, "id")

	salary, ok := h.store.EmployeeSalary(id)
	if !ok {
		render.Error(w, fmt.Errorf("%w: salary %s", render.ErrNotFound, id))
	}

	return salary, ok
}

func (h *Handler) listEmployees(w http.ResponseWriter, _ *http.Request) {
	render.JSON(w, http.StatusOK, h.store.Employees())
}

func (h *Handler) createEmployee(w http.ResponseWriter, r *http.Request) {
	var req createEmployeeRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, err)
		return
	}

	if err := h.store.AddEmployee(r.Context(), req.Name); err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusCreated, h.store.Employees())
}

func (h *Handler) deleteEmployee(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		render.Error(w, fmt.Errorf("%w: %w", render.ErrBadRequest, err))
		return
	}

	if err := h.store.DeleteEmployee(r.Context(), name); err != nil {
		render.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) employeeTotal(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		render.Error(w, fmt.Errorf("%w: %w", render.ErrBadRequest, err))
		return
	}

	m, err := render.Month(r)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, employeeTotalResponse{
		Name:  name,
		Month: m.String(),
		Total: period.EmployeeMonthlyTotal(h.store.EmployeeSalaries(), name, m.Month, m.Year),
	})
}
