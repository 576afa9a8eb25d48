// Package dashboard serves the monthly summary.
package dashboard

import (
	"net/http"

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

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.summary)
	r.Get("/years", h.years)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	m, err := render.Month(r)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, period.Summarize(h.store.Snapshot(), m))
}

func (h *Handler) years(w http.ResponseWriter, _ *http.Request) {
	render.JSON(w, http.StatusOK, period.YearChoices(period.CurrentMonth().Year))
}
