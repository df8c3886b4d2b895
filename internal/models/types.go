package models

import "time"

// ClaimResponse acknowledges an accepted claim attempt.
type ClaimResponse struct {
	Accepted bool         `json:"accepted"`
	State    DisplayState `json:"state"`
}

// DisplayState is the presentation snapshot of the claim flow.
type DisplayState struct {
	RemainingTime     string    `json:"remaining_time"`
	Status            string    `json:"status"`
	RewardAmount      *int64    `json:"reward_amount,omitempty"`
	TxHash            string    `json:"tx_hash,omitempty"`
	ExplorerURL       string    `json:"explorer_url,omitempty"`
	ErrorKind         string    `json:"error_kind,omitempty"`
	Eligible          bool      `json:"eligible"`
	ProviderAvailable bool      `json:"provider_available"`
	WindowEndsAt      time.Time `json:"window_ends_at"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error         string     `json:"error"`
	Kind          string     `json:"kind,omitempty"`
	NextClaimTime *time.Time `json:"next_claim_time,omitempty"`
}

// StatusResponse represents the claim status of an address
type StatusResponse struct {
	Address       string     `json:"address"`
	CanClaim      bool       `json:"can_claim"`
	NextClaimTime *time.Time `json:"next_claim_time,omitempty"`
	RemainingTime string     `json:"remaining_time,omitempty"`
	LastClaim     *LastClaim `json:"last_claim,omitempty"`
}

// LastClaim describes the most recent confirmed claim for an address
type LastClaim struct {
	Amount      int64     `json:"amount"`
	TxHash      string    `json:"tx_hash"`
	ExplorerURL string    `json:"explorer_url"`
	ClaimedAt   time.Time `json:"claimed_at"`
}

// InfoResponse represents information about the claim service
type InfoResponse struct {
	Network string     `json:"network"`
	Token   TokenInfo  `json:"token"`
	Reward  RewardInfo `json:"reward"`
	Window  WindowInfo `json:"window"`
}

// TokenInfo describes the incentive token contract
type TokenInfo struct {
	Symbol   string `json:"symbol"`
	Contract string `json:"contract"`
	Decimals int    `json:"decimals"`
}

// RewardInfo describes the reward range per claim
type RewardInfo struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// WindowInfo describes the claim window
type WindowInfo struct {
	Hours int `json:"hours"`
}

// HealthResponse represents the health status of the API
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}
