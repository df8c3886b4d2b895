package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bounce-labs/daily-claim/internal/api"
	"github.com/bounce-labs/daily-claim/internal/cache"
	"github.com/bounce-labs/daily-claim/internal/claim"
	"github.com/bounce-labs/daily-claim/internal/config"
	"github.com/bounce-labs/daily-claim/internal/reward"
	"github.com/bounce-labs/daily-claim/internal/wallet"
	"github.com/bounce-labs/daily-claim/pkg/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting Daily Claim Server",
		zap.String("network", cfg.Network),
		zap.String("port", cfg.Port),
	)

	// Initialize Redis
	logger.Info("Connecting to Redis...")
	redis, err := cache.NewRedisClient(cfg.RedisURL)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redis.Close()
	logger.Info("Connected to Redis")

	// Initialize wallet gateway. A missing provider URL is not fatal: the
	// claim flow reports provider_absent instead.
	var provider wallet.Provider
	if cfg.ProviderRPCURL != "" {
		provider = wallet.NewRPCProvider(cfg.ProviderRPCURL)
		logger.Info("Wallet provider configured",
			zap.String("contract", cfg.ContractAddress),
			zap.Int("decimals", cfg.TokenDecimals),
		)
	} else {
		logger.Warn("No wallet provider configured; claims will fail with provider_absent")
	}
	gateway := wallet.NewGateway(provider, common.HexToAddress(cfg.ContractAddress), cfg.TokenDecimals)

	// Initialize reward policy
	rewards, err := reward.NewRandomPolicy(cfg.RewardMin, cfg.RewardMax)
	if err != nil {
		logger.Fatal("Invalid reward configuration", zap.Error(err))
	}
	logger.Info("Reward policy initialized",
		zap.Int64("min", cfg.RewardMin),
		zap.Int64("max", cfg.RewardMax),
	)

	// Create claim engine and adopt any persisted window
	engine := claim.NewEngine(
		gateway,
		rewards,
		redis,
		logger,
		time.Duration(cfg.WindowHours)*time.Hour,
		time.Duration(cfg.ConfirmDisplaySeconds)*time.Second,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	engine.Restore(ctx)

	// Watch the wallet session for account/chain changes
	go gateway.WatchSession(ctx, time.Duration(cfg.SessionPollSeconds)*time.Second, func(session wallet.Session) {
		if session.ReloadRequired {
			logger.Warn("Wallet chain changed; restart required",
				zap.String("chain_id", session.ChainID),
			)
			return
		}
		logger.Info("Wallet account changed",
			zap.String("account", session.Account.Hex()),
		)
	})

	// Create API handler
	handler := api.NewHandler(cfg, logger, redis, engine)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:               "Daily Claim API",
		DisableStartupMessage: false,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Setup routes
	api.SetupRoutes(app, handler)

	// Start server in goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		logger.Info("Server starting", zap.String("addr", addr))
		if err := app.Listen(addr); err != nil {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}

	logger.Info("Server stopped")
}
