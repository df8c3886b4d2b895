package wallet

import "errors"

// Failure kinds surfaced across the gateway boundary. The claim engine
// classifies with errors.Is, the API reports the string kind.
var (
	// ErrProviderAbsent means no wallet provider is configured or reachable.
	ErrProviderAbsent = errors.New("wallet provider absent")

	// ErrUserRejected means the user declined a wallet prompt (EIP-1193 code 4001).
	ErrUserRejected = errors.New("user rejected wallet request")

	// ErrTransactionReverted means the mint transaction was mined but reverted on-chain.
	ErrTransactionReverted = errors.New("transaction reverted")

	// ErrNetworkError covers transport and provider-side failures.
	ErrNetworkError = errors.New("wallet network error")
)

// Kind returns the stable string identifier for a gateway failure.
// Unclassified errors map to "provider_error"; nil maps to an empty string.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrProviderAbsent):
		return "provider_absent"
	case errors.Is(err, ErrUserRejected):
		return "user_rejected"
	case errors.Is(err, ErrTransactionReverted):
		return "transaction_reverted"
	case errors.Is(err, ErrNetworkError):
		return "network_error"
	default:
		return "provider_error"
	}
}
