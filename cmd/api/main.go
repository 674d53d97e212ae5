package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"blotto-backtest/internal/api/handlers"
	"blotto-backtest/internal/api/middleware"
	"blotto-backtest/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	settings, err := config.LoadServer()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid server configuration")
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if settings.Production() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if wd, err := os.Getwd(); err == nil {
		log.Info().Str("wd", wd).Msg("working directory")
	}
	if _, err := os.Stat(settings.PoolPath); err != nil && !strings.HasPrefix(settings.PoolPath, "http") {
		// Not fatal: requests can still carry an inline pool.
		log.Warn().Err(err).Str("pool", settings.PoolPath).Msg("server pool not found")
	}

	router := gin.New()
	router.Use(middleware.CORS(settings.CORSOrigins))
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	pools := handlers.NewPoolSource(settings)
	estimateHandler := handlers.NewEstimateHandler(pools)
	selectHandler := handlers.NewSelectHandler(pools)
	poolHandler := handlers.NewPoolHandler(pools)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/score", handlers.ScoreMatch)
		api.POST("/estimate", estimateHandler.RunEstimate)
		api.POST("/select", selectHandler.SelectBest)

		api.GET("/generators", handlers.ListGenerators)
		api.GET("/pool", poolHandler.DescribePool)
	}

	staticDir := settings.StaticDir
	if _, err := os.Stat(staticDir); err == nil {
		router.Static("/assets", filepath.Join(staticDir, "assets"))
		router.StaticFile("/favicon.ico", filepath.Join(staticDir, "favicon.ico"))

		// Serve index.html for all non-API routes (SPA routing)
		router.NoRoute(func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/api") {
				c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
				return
			}
			c.File(filepath.Join(staticDir, "index.html"))
		})
		log.Info().Str("dir", staticDir).Msg("serving static files")
	} else {
		log.Info().Str("dir", staticDir).Msg("static directory not found, skipping static file serving")
	}

	addr := fmt.Sprintf(":%s", settings.Port)
	log.Info().Str("addr", addr).Str("pool", settings.PoolPath).Int64("max_work", settings.MaxWork).Msg("starting API server")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
