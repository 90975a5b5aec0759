package main

import (
	"context"
	"net"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	setupLogging(cfg)

	store, err := openStore(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("could not open store")
	}
	defer store.Close()
	log.Info().Str("driver", cfg.StoreDriver).Msg("store ready")

	if cfg.AIAPIKey == "" {
		log.Warn().Msg("AI_API_KEY not set, AI endpoints will return fallback content")
	}

	h := newHandler(store, newChatClient(cfg.AIBaseURL, cfg.AIAPIKey, cfg.AIModel), newDailyHub())

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	router.SetTrustedProxies(nil)
	h.registerRoutes(router)

	addr := net.JoinHostPort(cfg.BindAddr, cfg.Port)
	log.Info().Str("addr", addr).Msg("starting nutriai api")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
