package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bounce-labs/daily-claim/internal/cache"
	"github.com/bounce-labs/daily-claim/internal/claim"
	"github.com/bounce-labs/daily-claim/internal/config"
	"github.com/bounce-labs/daily-claim/internal/countdown"
	"github.com/bounce-labs/daily-claim/internal/models"
	"github.com/bounce-labs/daily-claim/pkg/utils"
)

// Handler contains dependencies for API handlers
type Handler struct {
	config *config.Config
	logger *zap.Logger
	redis  *cache.RedisClient
	engine *claim.Engine
}

// NewHandler creates a new API handler
func NewHandler(
	cfg *config.Config,
	logger *zap.Logger,
	redis *cache.RedisClient,
	engine *claim.Engine,
) *Handler {
	return &Handler{
		config: cfg,
		logger: logger,
		redis:  redis,
		engine: engine,
	}
}

// Claim starts a claim attempt. The call is fire-and-forget: it acknowledges
// immediately and progress is observed through GetDisplayState.
func (h *Handler) Claim(c *fiber.Ctx) error {
	err := h.engine.Claim(c.Context())

	switch {
	case errors.Is(err, claim.ErrNotEligible):
		state := h.engine.DisplayState()
		next := state.WindowEndsAt
		return c.Status(fiber.StatusConflict).JSON(models.ErrorResponse{
			Error:         fmt.Sprintf("Not eligible yet. Next claim in %s.", state.RemainingTime),
			Kind:          "not_eligible",
			NextClaimTime: &next,
		})
	case errors.Is(err, claim.ErrAlreadyInProgress):
		return c.Status(fiber.StatusConflict).JSON(models.ErrorResponse{
			Error: "A claim attempt is already in progress.",
			Kind:  "already_in_progress",
		})
	case err != nil:
		h.logger.Error("Failed to start claim attempt", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: "Failed to start claim attempt",
		})
	}

	return c.Status(fiber.StatusAccepted).JSON(models.ClaimResponse{
		Accepted: true,
		State:    h.displayState(),
	})
}

// GetDisplayState returns the current presentation snapshot of the claim flow.
func (h *Handler) GetDisplayState(c *fiber.Ctx) error {
	return c.JSON(h.displayState())
}

// ResetClaim abandons the current attempt, recovering from an external
// wallet prompt that was dismissed without a callback.
func (h *Handler) ResetClaim(c *fiber.Ctx) error {
	h.engine.Reset()
	h.logger.Info("Claim state reset", zap.String("ip", c.IP()))
	return c.JSON(h.displayState())
}

// AcknowledgeFailure clears a displayed failure so the user can retry.
func (h *Handler) AcknowledgeFailure(c *fiber.Ctx) error {
	h.engine.Acknowledge()
	return c.JSON(h.displayState())
}

// GetStatus returns the claim status of an address.
func (h *Handler) GetStatus(c *fiber.Ctx) error {
	ctx := context.Background()

	address := c.Params("address")
	if err := utils.ValidateAddress(address); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: fmt.Sprintf("Invalid address: %s", err.Error()),
		})
	}
	address = utils.NormalizeAddress(address)

	endsAt, err := h.redis.Window(ctx, address)
	if err != nil {
		h.logger.Error("Failed to load claim window", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: "Failed to check status",
		})
	}

	response := models.StatusResponse{
		Address:  address,
		CanClaim: endsAt.IsZero(),
	}
	if !endsAt.IsZero() {
		response.NextClaimTime = &endsAt
		response.RemainingTime = countdown.Format(time.Until(endsAt))
	}

	if record, err := h.redis.LastClaim(ctx, address); err != nil {
		h.logger.Error("Failed to load last claim", zap.Error(err))
	} else if record != nil {
		response.LastClaim = &models.LastClaim{
			Amount:      record.Amount,
			TxHash:      record.TxHash,
			ExplorerURL: h.config.GetExplorerURL(record.TxHash),
			ClaimedAt:   record.ClaimedAt,
		}
	}

	return c.JSON(response)
}

// GetInfo returns information about the claim service.
func (h *Handler) GetInfo(c *fiber.Ctx) error {
	return c.JSON(models.InfoResponse{
		Network: h.config.Network,
		Token: models.TokenInfo{
			Symbol:   h.config.TokenSymbol,
			Contract: h.config.ContractAddress,
			Decimals: h.config.TokenDecimals,
		},
		Reward: models.RewardInfo{
			Min: h.config.RewardMin,
			Max: h.config.RewardMax,
		},
		Window: models.WindowInfo{
			Hours: h.config.WindowHours,
		},
	})
}

// Health returns the health status of the API.
func (h *Handler) Health(c *fiber.Ctx) error {
	ctx := context.Background()

	if err := h.redis.Ping(ctx); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(models.ErrorResponse{
			Error: "Redis unavailable",
		})
	}

	return c.JSON(models.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().Unix(),
	})
}

func (h *Handler) displayState() models.DisplayState {
	state := h.engine.DisplayState()

	response := models.DisplayState{
		RemainingTime:     state.RemainingTime,
		Status:            string(state.Status),
		RewardAmount:      state.RewardAmount,
		TxHash:            state.TxHash,
		ErrorKind:         state.ErrorKind,
		Eligible:          state.Eligible,
		ProviderAvailable: state.ProviderAvailable,
		WindowEndsAt:      state.WindowEndsAt,
	}
	if state.TxHash != "" {
		response.ExplorerURL = h.config.GetExplorerURL(state.TxHash)
	}
	return response
}
