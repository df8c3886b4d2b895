package wallet

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
)

// Provider is the JSON-RPC boundary to an external wallet/signer.
// Implementations must not retry state-changing methods on their own.
type Provider interface {
	Request(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error)
}

// EIP-1193 provider error code for a user-declined prompt.
const codeUserRejected = 4001

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int64         `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

// RPCProvider speaks JSON-RPC over HTTP to a wallet provider endpoint.
// Safe for concurrent use; the claim flow and the session watcher share one.
type RPCProvider struct {
	url    string
	client *resty.Client
	nextID atomic.Int64
}

// NewRPCProvider creates a provider for the given endpoint URL.
func NewRPCProvider(url string) *RPCProvider {
	client := resty.New()
	client.SetTimeout(2 * time.Minute) // wallet prompts can sit open for a while
	client.SetHeader("Content-Type", "application/json")

	return &RPCProvider{
		url:    url,
		client: client,
	}
}

// Request performs a single JSON-RPC call. Transport failures are reported
// as ErrNetworkError; provider errors keep their code and message.
func (p *RPCProvider) Request(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error) {
	id := p.nextID.Add(1)
	if params == nil {
		params = []interface{}{}
	}

	var response rpcResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(rpcRequest{
			JSONRPC: "2.0",
			ID:      id,
			Method:  method,
			Params:  params,
		}).
		SetResult(&response).
		Post(p.url)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNetworkError, method, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: %s: HTTP %d", ErrNetworkError, method, resp.StatusCode())
	}

	if response.Error != nil {
		return nil, classifyRPCError(method, response.Error)
	}

	return response.Result, nil
}

func classifyRPCError(method string, rpcErr *rpcError) error {
	if rpcErr.Code == codeUserRejected {
		return fmt.Errorf("%w: %s", ErrUserRejected, method)
	}
	if strings.Contains(strings.ToLower(rpcErr.Message), "revert") {
		return fmt.Errorf("%w: %s: %s", ErrTransactionReverted, method, rpcErr.Message)
	}
	return fmt.Errorf("provider error: %s: [%d] %s", method, rpcErr.Code, rpcErr.Message)
}
