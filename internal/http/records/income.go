package records

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/vipledger/internal/http/render"
	"github.com/MrJamesThe3rd/vipledger/internal/ledger"
)

func (h *Handler) Incomes(r chi.Router) {
	r.Get("/", h.listIncomes)
	r.Post("/", h.createIncome)
	r.Get("/{id}", h.getIncome)
	r.Patch("/{id}", h.updateIncome)
	r.Delete("/{id}", h.deleteIncome)
}

type createIncomeRequest struct {
	Amount      *render.Amount        `json:"amount" validate:"required,gte=0"`
	Description string                `json:"description" validate:"required"`
	Category    ledger.IncomeCategory `json:"category" validate:"required"`
	Date        ledger.Date           `json:"date"`
}

type updateIncomeRequest struct {
	Amount      *render.Amount         `json:"amount" validate:"omitempty,gte=0"`
	Description *string                `json:"description"`
	Category    *ledger.IncomeCategory `json:"category"`
	Date        *ledger.Date           `json:"date"`
}

func (h *Handler) listIncomes(w http.ResponseWriter, r *http.Request) {
	incomes, err := listing(r, h.store.Incomes())
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, incomes)
}

func (h *Handler) createIncome(w http.ResponseWriter, r *http.Request) {
	var req createIncomeRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, err)
		return
	}

	income, err := h.store.AddIncome(r.Context(), ledger.IncomeParams{
		Amount:      float64(*req.Amount),
		Description: req.Description,
		Category:    req.Category,
		Date:        req.Date,
	})
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusCreated, income)
}

func (h *Handler) getIncome(w http.ResponseWriter, r *http.Request) {
	income, ok := find(w, r, h.store.Income, "income")
	if !ok {
		return
	}

	render.JSON(w, http.StatusOK, income)
}

func (h *Handler) updateIncome(w http.ResponseWriter, r *http.Request) {
	income, ok := find(w, r, h.store.Income, "income")
	if !ok {
		return
	}

	var req updateIncomeRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, err)
		return
	}

	err := h.store.UpdateIncome(r.Context(), income.ID, ledger.IncomePatch{
		Amount:      req.Amount.Ptr(),
		Description: req.Description,
		Category:    req.Category,
		Date:        req.Date,
	})
	if err != nil {
		render.Error(w, err)
		return
	}

	income, _ = h.store.Income(income.ID)
	render.JSON(w, http.StatusOK, income)
}

func (h *Handler) deleteIncome(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteIncome(r.Context(), chi.URLParam(r, "id")); err != nil {
		render.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
