package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/engantonycastro-rd/painel-monitoramento-tenis/docs"
	"github.com/engantonycastro-rd/painel-monitoramento-tenis/internal/aggregate"
	"github.com/engantonycastro-rd/painel-monitoramento-tenis/internal/api/handler"
	"github.com/engantonycastro-rd/painel-monitoramento-tenis/internal/config"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(agg *aggregate.Aggregator, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(RequestLogger(logger))
	r.Use(Recoverer(logger))
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Request-Id"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled && cfg.RateLimitRequests > 0 && cfg.RateLimitWindow > 0 {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	h := handler.New(agg)

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.HealthCheck)

		// Matches
		r.Get("/live-matches", h.GetLiveMatches)
		r.Get("/match-details/{matchID}", h.GetMatchDetails)
		r.Get("/match-stats/{matchID}", h.GetMatchStats)
		r.Get("/match-history/{matchID}", h.GetMatchHistory)
		r.Get("/match-h2h/{matchID}", h.GetMatchHeadToHead)

		// Players
		r.Get("/player-history/{playerRef}", h.GetPlayerHistory)
		r.Get("/h2h/{player1Ref}/{player2Ref}", h.GetHeadToHead)
		r.Get("/player-news/{playerRef}", h.GetPlayerNews)
	})

	return r
}
