// Package session logs the dashboard in and out and guards the rest of the API.
package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/vipledger/internal/auth"
	"github.com/MrJamesThe3rd/vipledger/internal/http/render"
)

type Handler struct {
	gate   *auth.Gate
	secure bool
}

// NewHandler issues cookies through gate. secure marks the cookie HTTPS-only.
func NewHandler(gate *auth.Gate, secure bool) *Handler {
	return &Handler{gate: gate, secure: secure}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.login)
	r.Delete("/", h.logout)
}

type loginRequest struct {
	Password string `json:"password" validate:"required"`
	Remember bool   `json:"remember"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, err)
		return
	}

	marker, err := h.gate.Login(req.Password, req.Remember)
	if err != nil {
		if errors.Is(err, auth.ErrWrongPassword) {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		render.Error(w, err)

		return
	}

	cookie := h.cookie(marker.Token)
	if marker.Remember {
		cookie.Expires = marker.ExpiresAt
	}

	http.SetCookie(w, cookie)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) logout(w http.ResponseWriter, _ *http.Request) {
	cookie := h.cookie("")
	cookie.MaxAge = -1
	cookie.Expires = time.Unix(0, 0)

	http.SetCookie(w, cookie)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) cookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     auth.MarkerKey,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Require rejects requests that do not carry a valid session marker cookie.
func (h *Handler) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(auth.MarkerKey)
		if err != nil || h.gate.Verify(c.Value) != nil {
			http.Error(w, "login required", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
