package wallet

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Session is the externally-owned wallet session as last observed.
// It is written only by the Gateway; everyone else reads a copy.
type Session struct {
	Connected      bool
	Account        common.Address
	ChainID        string
	ReloadRequired bool
}

// Receipt is the confirmation record for a mined transaction.
type Receipt struct {
	TxHash      string `json:"transactionHash"`
	BlockNumber string `json:"blockNumber"`
	Status      string `json:"status"`
}

// Gateway abstracts the wallet provider and the token contract's mint entry point.
type Gateway struct {
	provider     Provider
	contract     common.Address
	decimals     int
	pollInterval time.Duration

	mu      sync.RWMutex
	session Session
}

// NewGateway creates a gateway for the given provider and token contract.
// A nil provider models the no-wallet-installed environment: Available
// reports false and every operation fails with ErrProviderAbsent.
func NewGateway(provider Provider, contract common.Address, decimals int) *Gateway {
	return &Gateway{
		provider:     provider,
		contract:     contract,
		decimals:     decimals,
		pollInterval: 2 * time.Second,
	}
}

// Available reports whether a wallet provider is present. No side effect.
func (g *Gateway) Available() bool {
	return g.provider != nil
}

// Session returns a copy of the last observed wallet session.
func (g *Gateway) Session() Session {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.session
}

// Connect requests account access, which may surface a prompt the
// application does not control.
func (g *Gateway) Connect(ctx context.Context) (Session, error) {
	if g.provider == nil {
		return Session{}, ErrProviderAbsent
	}

	accounts, err := g.requestAccounts(ctx, "eth_requestAccounts")
	if err != nil {
		return Session{}, err
	}
	if len(accounts) == 0 {
		return Session{}, fmt.Errorf("%w: provider returned no accounts", ErrNetworkError)
	}

	chainID, err := g.requestString(ctx, "eth_chainId")
	if err != nil {
		return Session{}, err
	}

	g.mu.Lock()
	g.session.Connected = true
	g.session.Account = accounts[0]
	g.session.ChainID = chainID
	session := g.session
	g.mu.Unlock()

	return session, nil
}

// CurrentAccount checks existing authorization without prompting.
// Used as the non-intrusive poll on initial load.
func (g *Gateway) CurrentAccount(ctx context.Context) (common.Address, bool, error) {
	if g.provider == nil {
		return common.Address{}, false, ErrProviderAbsent
	}

	accounts, err := g.requestAccounts(ctx, "eth_accounts")
	if err != nil {
		return common.Address{}, false, err
	}
	if len(accounts) == 0 {
		return common.Address{}, false, nil
	}
	return accounts[0], true, nil
}

// Mint submits a mint transaction for the given recipient and whole-token
// amount (scaled by the token's decimals) and returns the transaction hash.
// The submission is never retried: a mint whose outcome is unknown must not
// risk a duplicate grant.
func (g *Gateway) Mint(ctx context.Context, recipient common.Address, amount int64) (string, error) {
	if g.provider == nil {
		return "", ErrProviderAbsent
	}
	if amount <= 0 {
		return "", fmt.Errorf("mint amount must be positive, got %d", amount)
	}

	tx := map[string]string{
		"from": recipient.Hex(),
		"to":   g.contract.Hex(),
		"data": hexutil.Encode(mintCalldata(recipient, ToBaseUnits(amount, g.decimals))),
	}

	result, err := g.provider.Request(ctx, "eth_sendTransaction", tx)
	if err != nil {
		return "", err
	}

	var txHash string
	if err := json.Unmarshal(result, &txHash); err != nil {
		return "", fmt.Errorf("invalid transaction hash response: %w", err)
	}
	return txHash, nil
}

// WaitMined polls for the transaction receipt until it is available or the
// context is cancelled. A receipt with status 0 is a revert.
func (g *Gateway) WaitMined(ctx context.Context, txHash string) (*Receipt, error) {
	if g.provider == nil {
		return nil, ErrProviderAbsent
	}

	ticker := time.NewTicker(g.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: waiting for receipt: %v", ErrNetworkError, ctx.Err())
		case <-ticker.C:
			result, err := g.provider.Request(ctx, "eth_getTransactionReceipt", txHash)
			if err != nil {
				if kind := Kind(err); kind == "network_error" {
					continue // transient, keep polling
				}
				return nil, err
			}
			if string(result) == "null" || len(result) == 0 {
				continue // not mined yet
			}

			var receipt Receipt
			if err := json.Unmarshal(result, &receipt); err != nil {
				return nil, fmt.Errorf("invalid receipt response: %w", err)
			}
			if receipt.Status == "0x0" {
				return nil, fmt.Errorf("%w: tx %s", ErrTransactionReverted, txHash)
			}
			return &receipt, nil
		}
	}
}

// WatchSession polls account and chain identity until the context ends,
// keeping the cached session current. A chain change invalidates any cached
// context, so it flips ReloadRequired rather than patching in place.
func (g *Gateway) WatchSession(ctx context.Context, interval time.Duration, onChange func(Session)) {
	if g.provider == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			account, ok, err := g.CurrentAccount(ctx)
			if err != nil {
				continue
			}
			chainID, err := g.requestString(ctx, "eth_chainId")
			if err != nil {
				continue
			}

			g.mu.Lock()
			changed := false
			if g.session.Connected && account != g.session.Account {
				g.session.Account = account
				g.session.Connected = ok
				changed = true
			}
			if g.session.ChainID != "" && chainID != g.session.ChainID {
				g.session.ChainID = chainID
				g.session.ReloadRequired = true
				changed = true
			}
			session := g.session
			g.mu.Unlock()

			if changed && onChange != nil {
				onChange(session)
			}
		}
	}
}

func (g *Gateway) requestAccounts(ctx context.Context, method string) ([]common.Address, error) {
	result, err := g.provider.Request(ctx, method)
	if err != nil {
		return nil, err
	}

	var raw []string
	if err := json.Unmarshal(result, &raw); err != nil {
		return nil, fmt.Errorf("invalid accounts response: %w", err)
	}

	accounts := make([]common.Address, 0, len(raw))
	for _, a := range raw {
		if !common.IsHexAddress(a) {
			return nil, fmt.Errorf("invalid account address from provider: %s", a)
		}
		accounts = append(accounts, common.HexToAddress(a))
	}
	return accounts, nil
}

func (g *Gateway) requestString(ctx context.Context, method string) (string, error) {
	result, err := g.provider.Request(ctx, method)
	if err != nil {
		return "", err
	}
	var value string
	if err := json.Unmarshal(result, &value); err != nil {
		return "", fmt.Errorf("invalid %s response: %w", method, err)
	}
	return value, nil
}

// mintCalldata ABI-encodes a mint(address,uint256) call.
func mintCalldata(recipient common.Address, amount *big.Int) []byte {
	selector := crypto.Keccak256([]byte("mint(address,uint256)"))[:4]

	data := make([]byte, 0, 4+64)
	data = append(data, selector...)
	data = append(data, common.LeftPadBytes(recipient.Bytes(), 32)...)
	data = append(data, common.LeftPadBytes(amount.Bytes(), 32)...)
	return data
}

// ToBaseUnits converts a whole-token amount to the token's smallest unit.
func ToBaseUnits(amount int64, decimals int) *big.Int {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	return new(big.Int).Mul(big.NewInt(amount), scale)
}

// FromBaseUnits converts base units back to a whole-token amount.
func FromBaseUnits(units *big.Int, decimals int) float64 {
	scale := new(big.Float).SetInt(new(big.Int).Exp(
		big.NewInt(10),
		big.NewInt(int64(decimals)),
		nil,
	))

	amount := new(big.Float).Quo(new(big.Float).SetInt(units), scale)
	result, _ := amount.Float64()
	return result
}
