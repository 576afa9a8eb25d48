package records

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/vipledger/internal/http/render"
	"github.com/MrJamesThe3rd/vipledger/internal/ledger"
)

func (h *Handler) Advances(r chi.Router) {
	r.Get("/", h.listAdvances)
	r.Post("/", h.createAdvance)
	r.Get("/names", h.advanceNames)
	r.Get("/{id}", h.getAdvance)
	r.Patch("/{id}", h.updateAdvance)
	r.Delete("/{id}", h.deleteAdvance)
}

type createAdvanceRequest struct {
	Name        string             `json:"name" validate:"required"`
	Amount      *render.Amount     `json:"amount" validate:"required,gte=0"`
	Description string             `json:"description"`
	PaymentType ledger.PaymentType `json:"paymentType" validate:"required"`
	Date        ledger.Date        `json:"date"`
}

type updateAdvanceRequest struct {
	Name        *string             `json:"name"`
	Amount      *render.Amount      `json:"amount" validate:"omitempty,gte=0"`
	Description *string             `json:"description"`
	PaymentType *ledger.PaymentType `json:"paymentType"`
	Date        *ledger.Date        `json:"date"`
}

func (h *Handler) listAdvances(w http.ResponseWriter, r *http.Request) {
	advances, err := listing(r, h.store.Advances())
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, advances)
}

func (h *Handler) advanceNames(w http.ResponseWriter, _ *http.Request) {
	render.JSON(w, http.StatusOK, ledger.AdvanceNames)
}

func (h *Handler) createAdvance(w http.ResponseWriter, r *http.Request) {
	var req createAdvanceRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, err)
		return
	}

	advance, err := h.store.AddAdvance(r.Context(), ledger.AdvanceParams{
		Name:        req.Name,
		Amount:      float64(*req.Amount),
		Description: req.Description,
		PaymentType: req.PaymentType,
		Date:        req.Date,
	})
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusCreated, advance)
}

func (h *Handler) getAdvance(w http.ResponseWriter, r *http.Request) {
	advance, ok := find(w, r, h.store.Advance, "advance")
	if !ok {
		return
	}

	render.JSON(w, http.StatusOK, advance)
}

func (h *Handler) updateAdvance(w http.ResponseWriter, r *http.Request) {
	advance, ok := find(w, r, h.store.Advance, "advance")
	if !ok {
		return
	}

	var req updateAdvanceRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, err)
		return
	}

	err := h.store.UpdateAdvance(r.Context(), advance.ID, ledger.AdvancePatch{
		Name:        req.Name,
		Amount:      req.Amount.Ptr(),
		Description: req.Description,
		PaymentType: req.PaymentType,
		Date:        req.Date,
	})
	if err != nil {
		render.Error(w, err)
		return
	}

	advance, _ = h.store.Advance(advance.ID)
	render.JSON(w, http.StatusOK, advance)
}

func (h *Handler) deleteAdvance(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteAdvance(r.Context(), chi.URLParam(r, "id")); err != nil {
		render.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
