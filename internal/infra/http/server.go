package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Spok95/salon-bot/internal/api"
)

type Server struct {
	srv *http.Server
}

// New собирает роутер: вебхук, API для Web App, health и метрики.
func New(addr string, log *slog.Logger, a *api.API, webhook http.Handler, exposeMetrics bool) *Server {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	if exposeMetrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Handle("/webhook", webhook)

	r.Post("/users/auth", a.Auth)
	r.Get("/users/me", a.Me)
	r.Get("/user/me/appointments", a.MyAppointments)
	r.Get("/user/me/reviews", a.MyReviews)

	r.Get("/masters", a.Masters)
	r.Get("/services", a.Services)
	r.Get("/slots", a.Slots)

	r.Post("/appointments", a.CreateAppointment)
	r.Post("/appointments/{id}/confirm", a.ConfirmAppointment)
	r.Post("/appointments/{id}/complete", a.CompleteAppointment)
	r.Post("/appointments/{id}/cancel", a.CancelAppointment)

	r.Get("/admin/appointments/export", a.ExportAppointments)

	return &Server{srv: &http.Server{Addr: addr, Handler: r}}
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start).String(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
