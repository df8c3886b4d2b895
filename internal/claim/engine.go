// Package claim implements the daily incentive claim flow: a state machine
// driving eligibility check, wallet mint, confirmation, and cool-down.
package claim

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/bounce-labs/daily-claim/internal/countdown"
	"github.com/bounce-labs/daily-claim/internal/reward"
	"github.com/bounce-labs/daily-claim/internal/wallet"
)

// Status is the observable state of the current claim attempt.
type Status string

const (
	StatusIdle           Status = "idle"
	StatusAwaitingWallet Status = "awaiting_wallet"
	StatusSubmitted      Status = "submitted"
	StatusConfirmed      Status = "confirmed"
	StatusFailed         Status = "failed"
)

// Errors returned synchronously by Claim. Neither changes any state.
var (
	ErrNotEligible       = errors.New("claim window has not expired")
	ErrAlreadyInProgress = errors.New("claim attempt already in progress")
)

// Gateway is the wallet boundary the engine drives. Satisfied by
// *wallet.Gateway; substituted with a fake in tests.
type Gateway interface {
	Available() bool
	CurrentAccount(ctx context.Context) (common.Address, bool, error)
	Connect(ctx context.Context) (wallet.Session, error)
	Mint(ctx context.Context, recipient common.Address, amount int64) (string, error)
	WaitMined(ctx context.Context, txHash string) (*wallet.Receipt, error)
}

// DisplayState is everything the presentation layer needs to render the flow.
type DisplayState struct {
	RemainingTime     string
	Status            Status
	RewardAmount      *int64
	TxHash            string
	ErrorKind         string
	Eligible          bool
	ProviderAvailable bool
	WindowEndsAt      time.Time
}

// attempt is the in-flight claim. Owned exclusively by the engine; state
// helpers compare attempt identity so an abandoned attempt can never write
// back into a newer one.
type attempt struct {
	id        string
	reward    int64
	recipient common.Address
	txHash    string
	errKind   string
	startedAt time.Time
	cancel    context.CancelFunc
}

// Engine orchestrates claim attempts. The status field doubles as the
// at-most-one-attempt-in-flight guard; no other locking is needed.
type Engine struct {
	gateway Gateway
	rewards reward.Policy
	store   WindowStore
	logger  *zap.Logger
	now     func() time.Time

	windowDuration time.Duration
	confirmDisplay time.Duration

	mu      sync.Mutex
	status  Status
	window  Window
	attempt *attempt

	inFlight sync.WaitGroup
}

// NewEngine creates a claim engine. The first window opens immediately, one
// full duration out. store may be nil for a purely in-memory flow.
func NewEngine(
	gateway Gateway,
	rewards reward.Policy,
	store WindowStore,
	logger *zap.Logger,
	windowDuration time.Duration,
	confirmDisplay time.Duration,
) *Engine {
	e := &Engine{
		gateway:        gateway,
		rewards:        rewards,
		store:          store,
		logger:         logger,
		now:            time.Now,
		windowDuration: windowDuration,
		confirmDisplay: confirmDisplay,
		status:         StatusIdle,
	}
	e.window = NewWindow(e.now(), windowDuration)
	return e
}

// Restore adopts a persisted claim window for the already-authorized account,
// found through the non-intrusive account poll. Called once at startup; a
// restart must not reset an active cooldown.
func (e *Engine) Restore(ctx context.Context) {
	if e.store == nil || !e.gateway.Available() {
		return
	}

	account, ok, err := e.gateway.CurrentAccount(ctx)
	if err != nil || !ok {
		return
	}

	endsAt, err := e.store.Window(ctx, account.Hex())
	if err != nil {
		e.logger.Warn("Failed to load persisted claim window", zap.Error(err))
		return
	}
	if endsAt.IsZero() {
		return
	}

	e.mu.Lock()
	e.window = Window{EndsAt: endsAt, Duration: e.windowDuration}
	e.mu.Unlock()

	e.logger.Info("Restored claim window",
		zap.String("account", account.Hex()),
		zap.Time("window_ends_at", endsAt),
	)
}

// Claim starts a claim attempt. It returns ErrNotEligible while the window
// is still open and ErrAlreadyInProgress while another attempt is in flight;
// both are no-ops. On nil return the attempt proceeds in the background and
// progress is observed through DisplayState.
func (e *Engine) Claim(ctx context.Context) error {
	e.mu.Lock()

	if e.status == StatusAwaitingWallet || e.status == StatusSubmitted {
		e.mu.Unlock()
		return ErrAlreadyInProgress
	}
	if !e.window.Expired(e.now()) {
		e.mu.Unlock()
		return ErrNotEligible
	}

	// The attempt outlives the caller's context but stays cancellable so an
	// abandoned attempt does not poll the wallet forever.
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	// Reward is generated at claim time, never before.
	a := &attempt{
		id:        newAttemptID(),
		reward:    e.rewards.Amount(),
		startedAt: e.now(),
		cancel:    cancel,
	}
	e.status = StatusAwaitingWallet
	e.attempt = a
	e.mu.Unlock()

	e.logger.Info("Claim attempt started",
		zap.String("attempt_id", a.id),
		zap.Int64("reward", a.reward),
	)

	e.inFlight.Add(1)
	go e.run(runCtx, a)
	return nil
}

// run walks one attempt through the wallet: resolve account, mint, confirm.
func (e *Engine) run(ctx context.Context, a *attempt) {
	defer e.inFlight.Done()
	defer a.cancel()

	if !e.gateway.Available() {
		e.fail(a, wallet.ErrProviderAbsent)
		return
	}

	// Recipient is resolved fresh per attempt; a new wallet session could
	// have changed accounts since the last claim.
	recipient, ok, err := e.gateway.CurrentAccount(ctx)
	if err != nil {
		e.fail(a, err)
		return
	}
	if !ok {
		session, err := e.gateway.Connect(ctx)
		if err != nil {
			e.fail(a, err)
			return
		}
		recipient = session.Account
	}

	if !e.transition(a, StatusAwaitingWallet, func() { a.recipient = recipient }) {
		return
	}

	txHash, err := e.gateway.Mint(ctx, recipient, a.reward)
	if err != nil {
		e.fail(a, err)
		return
	}
	if !e.transition(a, StatusSubmitted, func() { a.txHash = txHash }) {
		return
	}

	e.logger.Info("Mint submitted",
		zap.String("attempt_id", a.id),
		zap.String("recipient", recipient.Hex()),
		zap.String("tx_hash", txHash),
	)

	receipt, err := e.gateway.WaitMined(ctx, txHash)
	if err != nil {
		e.fail(a, err)
		return
	}

	e.confirm(a, receipt)
}

// confirm records the receipt, opens the next window, and schedules the drop
// back to the at-rest cooldown display.
func (e *Engine) confirm(a *attempt, receipt *wallet.Receipt) {
	now := e.now()

	e.mu.Lock()
	if e.attempt != a {
		e.mu.Unlock()
		return
	}
	e.status = StatusConfirmed
	e.window = NewWindow(now, e.windowDuration)
	endsAt := e.window.EndsAt
	e.mu.Unlock()

	e.logger.Info("Claim confirmed",
		zap.String("attempt_id", a.id),
		zap.String("recipient", a.recipient.Hex()),
		zap.Int64("reward", a.reward),
		zap.String("tx_hash", receipt.TxHash),
		zap.Time("window_ends_at", endsAt),
	)

	if e.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := e.store.SaveWindow(ctx, a.recipient.Hex(), endsAt); err != nil {
			e.logger.Error("Failed to persist claim window", zap.Error(err))
		}
		if err := e.store.RecordClaim(ctx, a.recipient.Hex(), a.reward, a.txHash, now); err != nil {
			e.logger.Error("Failed to record claim", zap.Error(err))
		}
	}

	time.AfterFunc(e.confirmDisplay, func() { e.settle(a) })
}

// settle returns a displayed confirmation to the at-rest cooldown state.
func (e *Engine) settle(a *attempt) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.attempt != a || e.status != StatusConfirmed {
		return
	}
	e.status = StatusIdle
	e.attempt = nil
}

// fail maps a gateway error onto the attempt. A user rejection silently
// returns to idle; every other kind parks in failed until acknowledged.
// The window is never touched: no reward was granted, retry stays open.
func (e *Engine) fail(a *attempt, err error) {
	kind := wallet.Kind(err)

	e.mu.Lock()
	if e.attempt != a {
		e.mu.Unlock()
		return
	}
	if errors.Is(err, wallet.ErrUserRejected) {
		e.status = StatusIdle
		e.attempt = nil
	} else {
		e.status = StatusFailed
		a.errKind = kind
	}
	e.mu.Unlock()

	e.logger.Warn("Claim attempt failed",
		zap.String("attempt_id", a.id),
		zap.String("kind", kind),
		zap.Error(err),
	)
}

// transition applies a status change only if the attempt is still current.
func (e *Engine) transition(a *attempt, status Status, apply func()) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.attempt != a {
		return false
	}
	e.status = status
	if apply != nil {
		apply()
	}
	return true
}

// Acknowledge clears a displayed failure and returns to idle.
func (e *Engine) Acknowledge() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status == StatusFailed {
		e.status = StatusIdle
		e.attempt = nil
	}
}

// Reset abandons any current attempt and returns to idle. This is the manual
// escape hatch for a wallet prompt dismissed without a callback; the
// abandoned attempt can no longer transition, so its mint (if any) is never
// duplicated. The claim window itself is untouched.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	// Cancelling wakes a goroutine parked in the wallet so it can exit.
	if e.attempt != nil {
		e.attempt.cancel()
	}
	e.status = StatusIdle
	e.attempt = nil
}

// DisplayState derives the presentation snapshot. Eligibility comes from the
// same window deadline the countdown formats, so the two cannot drift apart.
func (e *Engine) DisplayState() DisplayState {
	now := e.now()

	e.mu.Lock()
	defer e.mu.Unlock()

	state := DisplayState{
		RemainingTime:     countdown.Format(e.window.Remaining(now)),
		Status:            e.status,
		Eligible:          e.status == StatusIdle && e.window.Expired(now),
		ProviderAvailable: e.gateway.Available(),
		WindowEndsAt:      e.window.EndsAt,
	}
	if e.attempt != nil {
		amount := e.attempt.reward
		state.RewardAmount = &amount
		state.TxHash = e.attempt.txHash
		state.ErrorKind = e.attempt.errKind
	}
	return state
}

func newAttemptID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "attempt"
	}
	return hex.EncodeToString(buf)
}
