package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/augcode13-glitch/paapimg/internal/auth"
	"github.com/augcode13-glitch/paapimg/internal/core/ports"
	"github.com/augcode13-glitch/paapimg/internal/feed"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig собирает всё, что нужно для маршрутов API
type RouterConfig struct {
	Handler        *FeedHandler
	Registry       *feed.Registry
	Verifier       *auth.Verifier
	Users          ports.UserStorage
	RequestTimeout time.Duration
	Logger         *slog.Logger
}

// NewRouter возвращает chi-роутер со всеми маршрутами приложения
func NewRouter(cfg RouterConfig) http.Handler {
	h := cfg.Handler

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(cfg.Logger))
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	r.Get("/healthz", h.Healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/cache/refill", h.RefillCache)

		r.Group(func(r chi.Router) {
			r.Use(SessionMiddleware(cfg.Registry, cfg.Logger))
			r.Use(AuthMiddleware(cfg.Verifier, cfg.Users, cfg.Logger))

			r.Get("/feed", h.GetFeed)
			r.Post("/feed/search", h.SetSearchTerm)
			r.Post("/feed/tab", h.SetTab)
			r.Post("/feed/next", h.NextPage)

			r.Get("/favorites", h.ListFavorites)
			r.Post("/favorites/toggle", h.ToggleFavorite)
		})
	})

	return r
}
