package server

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/prism-ai/prism/internal/config"
	"github.com/prism-ai/prism/internal/mcp"
	"github.com/prism-ai/prism/internal/review"
	"github.com/prism-ai/prism/internal/server/handler"
)

// NewRouter creates and configures a new HTTP router with middleware and API routes.
func NewRouter(cfg *config.Config, reviews *review.Service, adapter *mcp.Service, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Configure middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Session-Id"},
		MaxAge:         300,
	}))

	healthHandler := handler.NewHealthHandler(cfg)
	r.Get("/health", healthHandler.Handle)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		reviewHandler := handler.NewReviewHandler(reviews, logger)
		r.Route("/review", func(r chi.Router) {
			r.Get("/models", reviewHandler.GetModels)
			r.Post("/analyze", reviewHandler.Analyze)
			r.Get("/history", reviewHandler.GetHistory)
			r.Delete("/history", reviewHandler.ClearHistory)
		})

		mcpHandler := handler.NewMCPHandler(adapter, logger)
		r.Route("/mcp", func(r chi.Router) {
			r.Get("/discovery", mcpHandler.Discovery)
			r.Post("/tools/list", mcpHandler.ListTools)
			r.Post("/tools/call", mcpHandler.CallTool)
			r.Post("/resources/list", mcpHandler.ListResources)
			r.Post("/resources/read", mcpHandler.ReadResource)
			r.Post("/prompts/list", mcpHandler.ListPrompts)
			r.Post("/prompts/get", mcpHandler.GetPrompt)
		})
	})

	return r
}
