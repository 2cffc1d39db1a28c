// Package server assembles the HTTP API: routes, middleware and the
// services behind them.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"zenvor/internal/config"
	"zenvor/internal/domain/chat"
	"zenvor/internal/domain/demo"
	"zenvor/internal/domain/lead"
	"zenvor/internal/middleware"
	"zenvor/internal/pkg/response"
	"zenvor/internal/pkg/telemetry"
)

// Deps are the collaborators the router is built from. Completer may be
// nil, in which case the chat routes are not mounted.
type Deps struct {
	Config    *config.Config
	DB        *gorm.DB
	Log       *zap.Logger
	Metrics   *telemetry.IntakeMetrics
	Completer chat.Completer
}

// NewRouter wires repositories, services and handlers onto a gin engine.
func NewRouter(d Deps) *gin.Engine {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	cfg := d.Config

	if config.IsProdLike(cfg.AppEnv) {
		gin.SetMode(gin.ReleaseMode)
	}

	leadHandler := lead.NewHandler(lead.NewService(lead.NewRepository(d.DB), log, d.Metrics))
	demoHandler := demo.NewHandler(demo.NewService(demo.NewRepository(d.DB), log, d.Metrics))

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.ErrorLogger(log),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := d.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			response.Error(c, http.StatusServiceUnavailable, "UNAVAILABLE", "Database unreachable")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		// public
		lead.RegisterPublicRoutes(v1, leadHandler)
		demo.RegisterPublicRoutes(v1, demoHandler)

		if d.Completer != nil {
			chatService := chat.NewService(d.Completer, log)
			chat.RegisterRoutes(v1,
				chat.NewHandler(chatService, log),
				chat.NewWSHandler(chatService, log, cfg.CORSAllowedOrigins),
			)
		}

		// triage
		admin := v1.Group("/admin")
		admin.Use(middleware.AdminToken(cfg.AdminToken, log))
		{
			lead.RegisterAdminRoutes(admin, leadHandler)
			demo.RegisterAdminRoutes(admin, demoHandler)
		}
	}

	return r
}

// NewCompleter builds the chat backend selected in cfg. It returns nil
// when chat is not configured.
func NewCompleter(ctx context.Context, cfg config.ChatConfig) (chat.Completer, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	switch cfg.Provider {
	case config.ProviderGemini:
		return chat.NewGeminiCompleter(ctx, cfg.APIKey, cfg.Model, cfg.MaxTokens, cfg.BaseURL)
	case config.ProviderAnthropic:
		var opts []option.RequestOption
		if cfg.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.BaseURL))
		}
		return chat.NewAnthropicCompleter(cfg.APIKey, cfg.Model, cfg.MaxTokens, opts...), nil
	}
	return nil, fmt.Errorf("unknown chat provider %q", cfg.Provider)
}
