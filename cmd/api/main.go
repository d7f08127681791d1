package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pedroriq/sissuporte/internal/cache"
	"github.com/pedroriq/sissuporte/internal/config"
	dbpkg "github.com/pedroriq/sissuporte/internal/db"
	"github.com/pedroriq/sissuporte/internal/logger"
	"github.com/pedroriq/sissuporte/internal/middleware"
	"github.com/pedroriq/sissuporte/internal/monitoring"
	"github.com/pedroriq/sissuporte/internal/routes"
	"github.com/pedroriq/sissuporte/internal/storage"
)

func main() {

	cfg := config.Load()
	log := logger.New(cfg.Env)

	// schema + seed rodam aqui, antes de aceitar tráfego
	db := dbpkg.NewDB(cfg, log)

	deps := routes.Deps{}

	if cfg.StorageConfigured() {
		deps.Uploader = storage.NewS3Storage(cfg)
	} else {
		log.Warn().Msg("storage not configured, tickets will be saved without prints")
	}

	if cfg.RedisAddr != "" {
		c, err := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, dashboard cache disabled")
		} else {
			deps.Cache = c
			defer c.Close()
		}
	}

	monitoring.Register()

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.PrometheusMetrics())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(monitoring.Handler()))

	routes.RegisterRoutes(r, db, cfg, log, deps)

	log.Info().Str("addr", cfg.Addr()).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
