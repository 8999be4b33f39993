package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"salepoint/internal/catalog"
	"salepoint/internal/config"
	"salepoint/internal/gateway"
	"salepoint/internal/logger"
	"salepoint/internal/session"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	gw := gateway.NewHTTP(cfg.APIBaseURL, cfg.HTTPTimeout, cfg.SearchRatePerSec, cfg.SearchBurst)

	sess, err := session.New(cfg, gw, func(term string, products []catalog.Product) {
		logger.L().Info("catalog results",
			zap.String("term", term),
			zap.Int("count", len(products)),
		)
	})
	if err != nil {
		logger.L().Fatal("failed to start checkout session", zap.Error(err))
	}
	defer sess.Close()

	logger.L().Info("checkout session ready",
		zap.String("session_id", sess.ID()),
		zap.String("api", cfg.APIBaseURL),
	)

	// Warm the catalog with an empty-term query so the operator sees the
	// full product list on open.
	ctx := context.Background()
	if err := sess.Search(ctx, ""); err != nil {
		logger.L().Warn("initial catalog query failed", zap.Error(err))
	}
	time.Sleep(cfg.SearchDebounce + cfg.HTTPTimeout)
}
