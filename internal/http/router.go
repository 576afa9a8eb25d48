package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	"github.com/MrJamesThe3rd/vipledger/internal/http/dashboard"
	"github.com/MrJamesThe3rd/vipledger/internal/http/payroll"
	"github.com/MrJamesThe3rd/vipledger/internal/http/records"
	"github.com/MrJamesThe3rd/vipledger/internal/http/session"
	"github.com/MrJamesThe3rd/vipledger/internal/http/state"
	"github.com/MrJamesThe3rd/vipledger/internal/http/transfer"
	"github.com/MrJamesThe3rd/vipledger/internal/observability"
)

type Options struct {
	AllowedOrigins []string
	// LoginRate caps login attempts per client IP per minute. Zero disables the limit.
	LoginRate  int
	Production bool
	Metrics    *observability.Metrics
}

type Handlers struct {
	Session   *session.Handler
	Records   *records.Handler
	Payroll   *payroll.Handler
	Dashboard *dashboard.Handler
	Transfer  *transfer.Handler
	State     *state.Handler
}

func New(h Handlers, opts Options) http.Handler {
	router := chi.NewRouter()

	headers := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLRedirect:        opts.Production,
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
	})

	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(opts.Metrics.Middleware)
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := headers.Process(w, r); err != nil {
				slog.Warn("secure headers blocked request", "error", err)
				return
			}

			next.ServeHTTP(w, r)
		})
	})
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Handle("/metrics", opts.Metrics.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/session", func(r chi.Router) {
			if opts.LoginRate > 0 {
				r.Use(httprate.Limit(opts.LoginRate, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
			}

			h.Session.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.Session.Require)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))

				r.Route("/incomes", h.Records.Incomes)
				r.Route("/expenses", h.Records.Expenses)
				r.Route("/advances", h.Records.Advances)
				r.Route("/debts", h.Records.Debts)
				r.Route("/salaries", h.Payroll.Salaries)
				r.Route("/employees", h.Payroll.Employees)
				r.Route("/state", h.State.Routes)
			})

			r.Route("/dashboard", h.Dashboard.Routes)
			r.Route("/import", h.Transfer.ImportRoutes)
			r.Route("/export", h.Transfer.ExportRoutes)
		})
	})

	return router
}
