// Package render holds the request decoding and response writing shared by the API handlers.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/MrJamesThe3rd/vipledger/internal/importer"
	"github.com/MrJamesThe3rd/vipledger/internal/ledger"
	"github.com/MrJamesThe3rd/vipledger/internal/period"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Decode reads a JSON body into v and validates its struct tags.
func Decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}

	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}

	return nil
}

var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("not found")
)

// Error maps err onto a status code and writes it as plain text.
func Error(w http.ResponseWriter, err error) {
	status := StatusOf(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
	}

	http.Error(w, err.Error(), status)
}

func StatusOf(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrInvalidDate),
		errors.Is(err, ledger.ErrEmptyDescription),
		errors.Is(err, ledger.ErrInvalidCategory),
		errors.Is(err, ledger.ErrInvalidPaymentType),
		errors.Is(err, ledger.ErrEmptyName),
		errors.Is(err, ledger.ErrNoSalaries),
		errors.Is(err, importer.ErrUnknownKind):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrEmployeeExists),
		errors.Is(err, ledger.ErrSalaryDateTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Month reads ?month=1..12&year=YYYY, defaulting each missing value to the current month.
func Month(r *http.Request) (period.Month, error) {
	m := period.CurrentMonth()
	q := r.URL.Query()

	if s := q.Get("month"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 12 {
			return period.Month{}, fmt.Errorf("%w: month must be between 1 and 12", ErrBadRequest)
		}

		m.Month = time.Month(n)
	}

	if s := q.Get("year"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return period.Month{}, fmt.Errorf("%w: invalid year", ErrBadRequest)
		}

		m.Year = n
	}

	return m, nil
}

// HasMonth reports whether the request narrows a listing to a month.
func HasMonth(r *http.Request) bool {
	q := r.URL.Query()
	return q.Has("month") || q.Has("year")
}
