package wallet

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testAccount  = common.HexToAddress("0x86A5B482eA2f9d157a88E2494269FC9A885Fa0b1")
	testContract = common.HexToAddress("0x1111111111111111111111111111111111111111")
)

type fakeProvider struct {
	mu      sync.Mutex
	calls   []string
	params  [][]interface{}
	handler func(method string, params []interface{}) (json.RawMessage, error)
}

func (p *fakeProvider) Request(_ context.Context, method string, params ...interface{}) (json.RawMessage, error) {
	p.mu.Lock()
	p.calls = append(p.calls, method)
	p.params = append(p.params, params)
	p.mu.Unlock()
	return p.handler(method, params)
}

func mustJSON(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func TestGatewayAvailable(t *testing.T) {
	assert.False(t, NewGateway(nil, testContract, 18).Available())
	assert.True(t, NewGateway(&fakeProvider{}, testContract, 18).Available())
}

func TestConnectPopulatesSession(t *testing.T) {
	provider := &fakeProvider{}
	provider.handler = func(method string, _ []interface{}) (json.RawMessage, error) {
		switch method {
		case "eth_requestAccounts":
			return mustJSON(t, []string{testAccount.Hex()}), nil
		case "eth_chainId":
			return mustJSON(t, "0xaa36a7"), nil
		}
		return nil, fmt.Errorf("unexpected method %s", method)
	}

	g := NewGateway(provider, testContract, 18)

	session, err := g.Connect(context.Background())
	require.NoError(t, err)

	assert.True(t, session.Connected)
	assert.Equal(t, testAccount, session.Account)
	assert.Equal(t, "0xaa36a7", session.ChainID)
	assert.Equal(t, session, g.Session())
	assert.Equal(t, []string{"eth_requestAccounts", "eth_chainId"}, provider.calls)
}

func TestConnectUserRejected(t *testing.T) {
	provider := &fakeProvider{}
	provider.handler = func(method string, _ []interface{}) (json.RawMessage, error) {
		return nil, classifyRPCError(method, &rpcError{Code: 4001, Message: "User rejected the request."})
	}

	g := NewGateway(provider, testContract, 18)

	_, err := g.Connect(context.Background())
	assert.ErrorIs(t, err, ErrUserRejected)
	assert.Equal(t, "user_rejected", Kind(err))
	assert.False(t, g.Session().Connected)
}

func TestConnectProviderAbsent(t *testing.T) {
	g := NewGateway(nil, testContract, 18)

	_, err := g.Connect(context.Background())
	assert.ErrorIs(t, err, ErrProviderAbsent)

	_, _, err = g.CurrentAccount(context.Background())
	assert.ErrorIs(t, err, ErrProviderAbsent)

	_, err = g.Mint(context.Background(), testAccount, 30)
	assert.ErrorIs(t, err, ErrProviderAbsent)
}

func TestCurrentAccountWithoutAuthorization(t *testing.T) {
	provider := &fakeProvider{}
	provider.handler = func(method string, _ []interface{}) (json.RawMessage, error) {
		require.Equal(t, "eth_accounts", method) // never the prompting variant
		return mustJSON(t, []string{}), nil
	}

	g := NewGateway(provider, testContract, 18)

	_, ok, err := g.CurrentAccount(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMintBuildsCalldata(t *testing.T) {
	provider := &fakeProvider{}
	provider.handler = func(method string, params []interface{}) (json.RawMessage, error) {
		require.Equal(t, "eth_sendTransaction", method)
		return mustJSON(t, "0xdeadbeef"), nil
	}

	g := NewGateway(provider, testContract, 18)

	txHash, err := g.Mint(context.Background(), testAccount, 42)
	require.NoError(t, err)
	assert.Equal(t, "0xdeadbeef", txHash)

	require.Len(t, provider.params, 1)
	tx, ok := provider.params[0][0].(map[string]string)
	require.True(t, ok)

	assert.Equal(t, testAccount.Hex(), tx["from"])
	assert.Equal(t, testContract.Hex(), tx["to"])

	// mint(address,uint256) with the amount scaled to 18 decimals.
	selector := crypto.Keccak256([]byte("mint(address,uint256)"))[:4]
	expected := append([]byte{}, selector...)
	expected = append(expected, common.LeftPadBytes(testAccount.Bytes(), 32)...)
	expected = append(expected, common.LeftPadBytes(ToBaseUnits(42, 18).Bytes(), 32)...)
	assert.Equal(t, hexutil.Encode(expected), tx["data"])
}

func TestMintRejectsNonPositiveAmount(t *testing.T) {
	g := NewGateway(&fakeProvider{}, testContract, 18)

	_, err := g.Mint(context.Background(), testAccount, 0)
	assert.Error(t, err)

	_, err = g.Mint(context.Background(), testAccount, -5)
	assert.Error(t, err)
}

func TestWaitMinedPollsUntilReceipt(t *testing.T) {
	var polls int
	provider := &fakeProvider{}
	provider.handler = func(method string, _ []interface{}) (json.RawMessage, error) {
		require.Equal(t, "eth_getTransactionReceipt", method)
		polls++
		if polls < 3 {
			return json.RawMessage("null"), nil
		}
		return mustJSON(t, Receipt{TxHash: "0xdeadbeef", BlockNumber: "0x10", Status: "0x1"}), nil
	}

	g := NewGateway(provider, testContract, 18)
	g.pollInterval = 5 * time.Millisecond

	receipt, err := g.WaitMined(context.Background(), "0xdeadbeef")
	require.NoError(t, err)
	assert.Equal(t, "0xdeadbeef", receipt.TxHash)
	assert.Equal(t, 3, polls)
}

func TestWaitMinedReverted(t *testing.T) {
	provider := &fakeProvider{}
	provider.handler = func(_ string, _ []interface{}) (json.RawMessage, error) {
		return mustJSON(t, Receipt{TxHash: "0xdeadbeef", Status: "0x0"}), nil
	}

	g := NewGateway(provider, testContract, 18)
	g.pollInterval = 5 * time.Millisecond

	_, err := g.WaitMined(context.Background(), "0xdeadbeef")
	assert.ErrorIs(t, err, ErrTransactionReverted)
	assert.Equal(t, "transaction_reverted", Kind(err))
}

func TestWaitMinedContextCancelled(t *testing.T) {
	provider := &fakeProvider{}
	provider.handler = func(_ string, _ []interface{}) (json.RawMessage, error) {
		return json.RawMessage("null"), nil
	}

	g := NewGateway(provider, testContract, 18)
	g.pollInterval = 5 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := g.WaitMined(ctx, "0xdeadbeef")
	assert.ErrorIs(t, err, ErrNetworkError)
}

func TestClassifyRPCError(t *testing.T) {
	tests := []struct {
		name string
		code int
		msg  string
		want string
	}{
		{"user rejected", 4001, "User rejected the request.", "user_rejected"},
		{"revert", -32000, "execution reverted: mint cap exceeded", "transaction_reverted"},
		{"other provider error", -32601, "method not found", "provider_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyRPCError("eth_sendTransaction", &rpcError{Code: tt.code, Message: tt.msg})
			assert.Equal(t, tt.want, Kind(err))
		})
	}
}

func TestBaseUnitConversion(t *testing.T) {
	units := ToBaseUnits(42, 18)

	expected, _ := new(big.Int).SetString("42000000000000000000", 10)
	assert.Equal(t, 0, units.Cmp(expected))

	assert.InDelta(t, 42.0, FromBaseUnits(units, 18), 1e-9)

	// Zero decimals passes through untouched.
	assert.Equal(t, int64(42), ToBaseUnits(42, 0).Int64())
}

func TestWatchSessionFlagsChainChange(t *testing.T) {
	var mu sync.Mutex
	chainID := "0xaa36a7"

	provider := &fakeProvider{}
	provider.handler = func(method string, _ []interface{}) (json.RawMessage, error) {
		switch method {
		case "eth_requestAccounts", "eth_accounts":
			return mustJSON(t, []string{testAccount.Hex()}), nil
		case "eth_chainId":
			mu.Lock()
			defer mu.Unlock()
			return mustJSON(t, chainID), nil
		}
		return nil, fmt.Errorf("unexpected method %s", method)
	}

	g := NewGateway(provider, testContract, 18)

	_, err := g.Connect(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan Session, 1)
	go g.WatchSession(ctx, 5*time.Millisecond, func(s Session) {
		select {
		case changes <- s:
		default:
		}
	})

	mu.Lock()
	chainID = "0x1" // provider switched networks underneath us
	mu.Unlock()

	select {
	case session := <-changes:
		assert.True(t, session.ReloadRequired)
		assert.Equal(t, "0x1", session.ChainID)
	case <-time.After(time.Second):
		t.Fatal("expected a session change notification")
	}

	assert.True(t, g.Session().ReloadRequired)
}
