package records

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/vipledger/internal/http/render"
	"github.com/MrJamesThe3rd/vipledger/internal/ledger"
	"github.com/MrJamesThe3rd/vipledger/internal/period"
)

func (h *Handler) Debts(r chi.Router) {
	r.Get("/", h.listDebts)
	r.Post("/", h.createDebt)
	r.Get("/{id}", h.getDebt)
	r.Patch("/{id}", h.updateDebt)
	r.Delete("/{id}", h.deleteDebt)
}

type createDebtRequest struct {
	ClientName  string         `json:"clientName" validate:"required"`
	Amount      *render.Amount `json:"amount" validate:"required,gte=0"`
	Description string         `json:"description"`
	DueDate     ledger.Date    `json:"dueDate"`
}

type updateDebtRequest struct {
	ClientName  *string        `json:"clientName"`
	Amount      *render.Amount `json:"amount" validate:"omitempty,gte=0"`
	Description *string        `json:"description"`
	DueDate     *ledger.Date   `json:"dueDate"`
}

type debtListResponse struct {
	Debts []ledger.Debt `json:"debts"`
	Total float64       `json:"total"`
}

func (h *Handler) listDebts(w http.ResponseWriter, _ *http.Request) {
	debts := h.store.Debts()

	render.JSON(w, http.StatusOK, debtListResponse{
		Debts: debts,
		Total: period.TotalDebts(debts),
	})
}

func (h *Handler) createDebt(w http.ResponseWriter, r *http.Request) {
	var req createDebtRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, err)
		return
	}

	debt, err := h.store.AddDebt(r.Context(), ledger.DebtParams{
		ClientName:  req.ClientName,
		Amount:      float64(*req.Amount),
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusCreated, debt)
}

func (h *Handler) getDebt(w http.ResponseWriter, r *http.Request) {
	debt, ok := find(w, r, h.store.Debt, "debt")
	if !ok {
		return
	}

	render.JSON(w, http.StatusOK, debt)
}

func (h *Handler) updateDebt(w http.ResponseWriter, r *http.Request) {
	debt, ok := find(w, r, h.store.Debt, "debt")
	if !ok {
		return
	}

	var req updateDebtRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, err)
		return
	}

	err := h.store.UpdateDebt(r.Context(), debt.ID, ledger.DebtPatch{
		ClientName:  req.ClientName,
		Amount:      req.Amount.Ptr(),
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		render.Error(w, err)
		return
	}

	debt, _ = h.store.Debt(debt.ID)
	render.JSON(w, http.StatusOK, debt)
}

func (h *Handler) deleteDebt(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteDebt(r.Context(), chi.URLParam(r, "id")); err != nil {
		render.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
