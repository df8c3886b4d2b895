package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port     string
	LogLevel string
	Network  string

	// Wallet / token contract
	ProviderRPCURL  string // empty means no wallet provider is available
	ContractAddress string
	TokenSymbol     string
	TokenDecimals   int

	// Redis
	RedisURL string

	// Claim settings
	WindowHours           int
	RewardMin             int64
	RewardMax             int64
	ConfirmDisplaySeconds int
	SessionPollSeconds    int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	config := &Config{
		// Server defaults
		Port:     getEnv("PORT", "3000"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Network:  getEnv("NETWORK", "sepolia"),

		// Wallet provider is optional: without one the claim flow reports
		// provider_absent instead of refusing to start.
		ProviderRPCURL:  getEnv("PROVIDER_RPC_URL", ""),
		ContractAddress: getEnv("TOKEN_CONTRACT_ADDRESS", ""),
		TokenSymbol:     getEnv("TOKEN_SYMBOL", "BNCE"),
		TokenDecimals:   getEnvAsInt("TOKEN_DECIMALS", 18),

		// Redis (required)
		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),

		// Claim settings
		WindowHours:           getEnvAsInt("CLAIM_WINDOW_HOURS", 24),
		RewardMin:             getEnvAsInt64("REWARD_MIN", 20),
		RewardMax:             getEnvAsInt64("REWARD_MAX", 50),
		ConfirmDisplaySeconds: getEnvAsInt("CONFIRM_DISPLAY_SECONDS", 3),
		SessionPollSeconds:    getEnvAsInt("SESSION_POLL_SECONDS", 5),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks if all required configuration is present and coherent
func (c *Config) Validate() error {
	if c.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}
	if c.ProviderRPCURL != "" && c.ContractAddress == "" {
		return fmt.Errorf("TOKEN_CONTRACT_ADDRESS is required when PROVIDER_RPC_URL is set")
	}
	if c.ContractAddress != "" && !common.IsHexAddress(c.ContractAddress) {
		return fmt.Errorf("TOKEN_CONTRACT_ADDRESS is not a valid address: %s", c.ContractAddress)
	}
	if c.WindowHours <= 0 {
		return fmt.Errorf("CLAIM_WINDOW_HOURS must be positive")
	}
	if c.RewardMin <= 0 || c.RewardMax < c.RewardMin {
		return fmt.Errorf("invalid reward range: min=%d max=%d", c.RewardMin, c.RewardMax)
	}
	if c.TokenDecimals < 0 || c.TokenDecimals > 36 {
		return fmt.Errorf("TOKEN_DECIMALS out of range: %d", c.TokenDecimals)
	}
	return nil
}

// GetExplorerURL returns the block explorer URL for the configured network
func (c *Config) GetExplorerURL(txHash string) string {
	if c.Network == "mainnet" {
		return fmt.Sprintf("https://etherscan.io/tx/%s", txHash)
	}
	return fmt.Sprintf("https://%s.etherscan.io/tx/%s", c.Network, txHash)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
