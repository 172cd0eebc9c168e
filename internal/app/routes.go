package app

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/reportgen/core/internal/middleware"
	"github.com/reportgen/core/internal/modules/auth"
	"github.com/reportgen/core/internal/modules/render"
	"github.com/reportgen/core/internal/modules/report"
	"github.com/reportgen/core/internal/modules/retrieval"
	pkgredis "github.com/reportgen/core/internal/pkg/redis"
	"github.com/reportgen/core/internal/pkg/response"
)

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	db := a.db
	authMW := middleware.Auth(db)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	appInfo := gin.H{
		"name":    "reportgen-core",
		"version": "1.0.0",
		"docs":    "/api/v1",
	}

	// Rate limiting and idempotence run on every route (requires Redis).
	r.Use(middleware.RateLimit(rc.Raw()))
	r.Use(middleware.Idempotence(rc.Raw()))

	r.GET("/", func(c *gin.Context) { c.PureJSON(http.StatusOK, appInfo) })
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"uptime_ms": a.uptime().Milliseconds(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuth(db))

	// Auth & user accounts
	auth.NewHandler(auth.NewService(db)).RegisterRoutes(api, authMW)

	// Report synthesis, artifacts and vector stores
	registry := retrieval.NewRegistry(a.cfg.DataDir(), a.buildEmbedder())
	renderer := render.New(a.cfg.ReportsDir())
	reportSvc := report.NewService(a.cfg.AI, report.NewMemoryStore(), registry, a.logger)
	report.NewHandler(db, reportSvc, renderer, registry).RegisterRoutes(api, authMW)
}

// buildEmbedder picks the OpenAI embeddings API when an enabled openai-style
// provider carries an API key, and the deterministic local embedder otherwise.
func (a *App) buildEmbedder() retrieval.Embedder {
	for _, p := range a.cfg.AI.Providers {
		if !p.Enabled || strings.TrimSpace(p.APIKey) == "" {
			continue
		}
		t := strings.ToLower(strings.TrimSpace(p.Type))
		if t == "anthropic" {
			continue
		}
		return retrieval.NewOpenAIEmbedder(p.APIKey, p.Endpoint, a.cfg.AI.EmbeddingModel)
	}
	return retrieval.HashedEmbedder{}
}
