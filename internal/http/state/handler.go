// Package state exposes saving, reloading and the unsaved-changes flag.
package state

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/vipledger/internal/http/render"
	"github.com/MrJamesThe3rd/vipledger/internal/ledger"
)

type Handler struct {
	store  *ledger.Store
	logger *slog.Logger
}

func NewHandler(store *ledger.Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.status)
	r.Post("/save", h.save)
	r.Post("/load", h.load)
}

type statusResponse struct {
	Dirty  bool           `json:"dirty"`
	Counts map[string]int `json:"counts"`
}

func (h *Handler) status(w http.ResponseWriter, _ *http.Request) {
	render.JSON(w, http.StatusOK, statusResponse{
		Dirty:  h.store.Dirty(),
		Counts: h.store.Snapshot().Counts(),
	})
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Save(r.Context()); err != nil {
		render.Error(w, err)
		return
	}

	h.status(w, r)
}

// load discards in-memory state and rereads the slot. An unreadable slot resets to defaults
// and is reported in the log, not as a failed request.
func (h *Handler) load(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Load(r.Context()); err != nil {
		if !errors.Is(err, ledger.ErrLoad) {
			render.Error(w, err)
			return
		}

		h.logger.Warn("stored data unreadable, defaults loaded", "error", err)
	}

	h.status(w, r)
}
