package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/rodainahassan/gatehouse/internal/infrastructure/http/handlers"
	"github.com/rodainahassan/gatehouse/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AuthHandler    *handlers.AuthHandler
	AccountHandler *handlers.AccountHandler
	HealthHandler  *handlers.HealthHandler
	RequireSession func(http.Handler) http.Handler // valid bearer token required
	RequireGuest   func(http.Handler) http.Handler // any bearer token rejected
	Log            zerolog.Logger
	Secure         func(http.Handler) http.Handler
	CORS           func(http.Handler) http.Handler
	IPRateLimit    func(http.Handler) http.Handler
	Metrics        bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.CORS != nil {
		r.Use(cfg.CORS)
	}
	r.Use(chimid.AllowContentType("application/json"))
	if cfg.IPRateLimit != nil {
		r.Use(cfg.IPRateLimit)
	}

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/auth", func(r chi.Router) {
		// Verification links may be opened from a logged-in browser, so
		// this route carries neither gate.
		r.Patch("/verifyAccount/{verificationToken}", cfg.AuthHandler.VerifyAccount)

		// Guest-only routes: a present bearer token rejects the request.
		r.Group(func(r chi.Router) {
			if cfg.RequireGuest != nil {
				r.Use(cfg.RequireGuest)
			}
			r.Post("/signup", cfg.AuthHandler.Signup)
			r.Post("/login", cfg.AuthHandler.Login)
			r.Patch("/forgotPassword", cfg.AuthHandler.ForgotPassword)
			r.Get("/checkResetPasswordToken/{resetToken}", cfg.AuthHandler.CheckResetToken)
			r.Patch("/resetPassword/{accountID}/{resetToken}", cfg.AuthHandler.ResetPassword)
		})

		// Session-gated routes.
		if cfg.RequireSession != nil {
			r.Group(func(r chi.Router) {
				r.Use(cfg.RequireSession)
				r.Patch("/changePassword", cfg.AuthHandler.ChangePassword)
			})
		}
	})

	if cfg.AccountHandler != nil && cfg.RequireSession != nil {
		r.Route("/accounts", func(r chi.Router) {
			r.Use(cfg.RequireSession)
			r.Get("/me", cfg.AccountHandler.Me)
		})
	}

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
