// Package records serves CRUD over incomes, expenses, advances and debts.
package records

import (
	"fmt"
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

// listing narrows records to ?month=&year= when given and to ?q= search matches, newest first.
func listing[T period.Searchable](r *http.Request, records []T) ([]T, error) {
	if render.HasMonth(r) {
		m, err := render.Month(r)
		if err != nil {
			return nil, err
		}

		records = period.FilterByMonth(records, m.Month, m.Year)
	}

	return period.Search(records, r.URL.Query().Get("q")), nil
}

// find writes a 404 and reports false when id is unknown.
func find[T any](w http.ResponseWriter, r *http.Request, get func(string) (T, bool), kind string) (T, bool) {
	id := chi.URLParam(r, "id")

	v, ok := get(id)
	if !ok {
		render.Error(w, fmt.Errorf("%w: %s %s", render.ErrNotFound, kind, id))
	}

	return v, ok
}
