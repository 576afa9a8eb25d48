package records

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/vipledger/internal/http/render"
	"github.com/MrJamesThe3rd/vipledger/internal/ledger"
)

func (h *Handler) Expenses(r chi.Router) {
	r.Get("/", h.listExpenses)
	r.Post("/", h.createExpense)
	r.Get("/{id}", h.getExpense)
	r.Patch("/{id}", h.updateExpense)
	r.Delete("/{id}", h.deleteExpense)
}

type createExpenseRequest struct {
	Amount      *render.Amount         `json:"amount" validate:"required,gte=0"`
	Description string                 `json:"description" validate:"required"`
	Category    ledger.ExpenseCategory `json:"category" validate:"required"`
	Date        ledger.Date            `json:"date"`
}

type updateExpenseRequest struct {
	Amount      *render.Amount          `json:"amount" validate:"omitempty,gte=0"`
	Description *string                 `json:"description"`
	Category    *ledger.ExpenseCategory `json:"category"`
	Date        *ledger.Date            `json:"date"`
}

func (h *Handler) listExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := listing(r, h.store.Expenses())
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, expenses)
}

func (h *Handler) createExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, err)
		return
	}

	expense, err := h.store.AddExpense(r.Context(), ledger.ExpenseParams{
		Amount:      float64(*req.Amount),
		Description: req.Description,
		Category:    req.Category,
		Date:        req.Date,
	})
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusCreated, expense)
}

func (h *Handler) getExpense(w http.ResponseWriter, r *http.Request) {
	expense, ok := find(w, r, h.store.Expense, "expense")
	if !ok {
		return
	}

	render.JSON(w, http.StatusOK, expense)
}

func (h *Handler) updateExpense(w http.ResponseWriter, r *http.Request) {
	expense, ok := find(w, r, h.store.Expense, "expense")
	if !ok {
		return
	}

	var req updateExpenseRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, err)
		return
	}

	err := h.store.UpdateExpense(r.Context(), expense.ID, ledger.ExpensePatch{
		Amount:      req.Amount.Ptr(),
		Description: req.Description,
		Category:    req.Category,
		Date:        req.Date,
	})
	if err != nil {
		render.Error(w, err)
		return
	}

	expense, _ = h.store.Expense(expense.ID)
	render.JSON(w, http.StatusOK, expense)
}

func (h *Handler) deleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteExpense(r.Context(), chi.URLParam(r, "id")); err != nil {
		render.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
