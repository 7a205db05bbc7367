package app

import (
	"net/http"
	"time"

	"utmequiz/internal/app/observability"
	"utmequiz/internal/catalog"
	"utmequiz/internal/question"
	"utmequiz/internal/report"
	"utmequiz/internal/validation"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NewRouter wires the preview server: the validation API over the question
// directory plus the generated site served from the output directory.
func NewRouter(cfg Config, cat *catalog.Catalog, log *zap.Logger) http.Handler {
	if cat == nil {
		cat = catalog.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}

	collector := observability.NewCollector(log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(collector.Middleware)

	parser := question.NewParser(cat, cfg.ExpectedQuestions)
	validator := validation.NewValidator(parser, cfg.MaxFileBytes, log)

	parseHandler := question.NewHandler(parser, cfg.MaxParseBodyBytes)
	reportHandler := report.NewHandler(validator, cfg.QuesttDir, cat.Clusters(), collector, log)
	parseLimiter := NewIPRateLimiter(cfg.ParseRateLimitMin, time.Minute)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	r.Get("/metrics", collector.MetricsHandler)

	r.Route("/api/v1", func(api chi.Router) {
		api.Get("/report", reportHandler.Summary)
		api.Get("/report.xlsx", reportHandler.ExportXLSX)
		api.Get("/clusters", reportHandler.Clusters)

		api.Group(func(limited chi.Router) {
			limited.Use(RateLimitMiddleware(parseLimiter))
			limited.Post("/parse", parseHandler.Parse)
		})
	})

	r.Handle("/*", http.FileServer(http.Dir(cfg.OutputDir)))

	return r
}
