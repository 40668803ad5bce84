package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/api/handlers"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/api/middleware"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/auth"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/cache"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/config"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/db"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/job"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/settings"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/storage"
)

// maxJSONBody caps JSON request bodies; subtitle uploads use their own limit
const maxJSONBody = 4 << 20

func NewRouter(cfg *config.Config, database *db.Database, jwtService *auth.JWTService,
	store *settings.Store, queue *job.Queue, workspace, library *storage.Workspace,
	resultCache *cache.Cache) *chi.Mux {

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(middleware.CORSHandler(cfg.CORSOrigins)))

	// Handlers
	authHandler := handlers.NewAuthHandler(database, jwtService)
	subtitleHandler := handlers.NewSubtitleHandler(workspace)
	analysisHandler := handlers.NewAnalysisHandler(store, resultCache, workspace, database)
	batchHandler := handlers.NewBatchHandler(queue, store)
	translateHandler := handlers.NewTranslateHandler(queue, store, workspace)
	themesHandler := handlers.NewThemesHandler(database)
	languagesHandler := handlers.NewLanguagesHandler(store, workspace)
	settingsHandler := handlers.NewSettingsHandler(store)
	jobHandler := handlers.NewJobHandler(queue)
	filesHandler := handlers.NewFilesHandler(workspace)
	mediaHandler := handlers.NewMediaHandler(library, workspace)

	// Login attempts are rate limited per IP
	loginLimiter := middleware.NewRateLimiter(10, time.Minute)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok"}`))
		})

		// Auth (public)
		r.Group(func(r chi.Router) {
			r.Use(loginLimiter.Handler)
			r.Use(middleware.MaxBodySize(maxJSONBody))
			r.Post("/auth/login", authHandler.Login)
			r.Post("/auth/setup", authHandler.Setup)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(jwtService))

			// Auth
			r.Get("/auth/me", authHandler.Me)

			// Subtitles
			r.Post("/subtitles", subtitleHandler.Upload)
			r.Group(func(r chi.Router) {
				r.Use(middleware.MaxBodySize(maxJSONBody))

				r.Post("/subtitles/parse", subtitleHandler.Parse)
				r.Post("/subtitles/inspect", subtitleHandler.Inspect)
				r.Post("/subtitles/optimize", subtitleHandler.Optimize)
				r.Post("/subtitles/convert", subtitleHandler.Convert)

				// Analysis pipeline
				r.Post("/analyze", analysisHandler.Analyze)
				r.Post("/export", analysisHandler.Export)
				r.Post("/batch", batchHandler.Submit)
				r.Post("/translate", translateHandler.Submit)

				// Languages
				r.Post("/languages/detect", languagesHandler.Detect)

				// Media
				r.Post("/media/extract/*", mediaHandler.Extract)
			})
			r.Get("/subtitles/stats", subtitleHandler.Stats)

			// Languages
			r.Get("/languages", languagesHandler.List)

			// Themes
			r.Get("/themes", themesHandler.List)
			r.Get("/themes/{name}", themesHandler.Get)

			// Settings
			r.Get("/settings", settingsHandler.GetSettings)

			// Jobs
			r.Get("/jobs", jobHandler.ListJobs)
			r.Get("/jobs/{id}", jobHandler.GetJob)
			r.Delete("/jobs/{id}", jobHandler.CancelJob)
			r.Post("/jobs/{id}/retry", jobHandler.RetryJob)

			// Files
			r.Get("/files/tree", filesHandler.GetTree)
			r.Get("/files/tree/*", filesHandler.GetTree)
			r.Get("/files/content/*", filesHandler.GetContent)
			r.Get("/files/search", filesHandler.Search)

			// Media
			r.Get("/media/probe/*", mediaHandler.Probe)

			// Admin-only mutations
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole("admin"))
				r.Use(middleware.MaxBodySize(maxJSONBody))

				r.Put("/settings", settingsHandler.UpdateSettings)
				r.Put("/themes/{name}", themesHandler.Save)
				r.Delete("/themes/{name}", themesHandler.Delete)
				r.Delete("/files/*", filesHandler.Delete)
			})
		})
	})

	return r
}
