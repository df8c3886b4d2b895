package ui

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	"github.com/bounce-labs/daily-claim/internal/models"
)

var (
	// Colors
	cyan   = color.New(color.FgCyan).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()

	// Symbols
	checkMark = green("✓")
	xMark     = red("✗")
	arrow     = cyan("→")
)

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Printf("%s %s\n", checkMark, message)
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Printf("%s %s\n", xMark, red(message))
}

// PrintInfo prints an info message
func PrintInfo(message string) {
	fmt.Printf("%s %s\n", arrow, message)
}

// NewSpinner creates a new spinner with a message
func NewSpinner(message string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond)
	s.Suffix = " " + message
	return s
}

// PrintDisplayState renders the claim flow state
func PrintDisplayState(state *models.DisplayState) {
	switch state.Status {
	case "idle":
		if state.Eligible {
			PrintSuccess("Daily tokens available! Run 'daily-claim claim' to claim.")
		} else {
			PrintInfo(fmt.Sprintf("On cooldown. Resets in %s", bold(state.RemainingTime)))
		}
	case "awaiting_wallet":
		PrintInfo(yellow("Waiting for the wallet to approve the claim..."))
	case "submitted":
		if state.TxHash != "" {
			PrintInfo(fmt.Sprintf("Mint submitted: %s", state.TxHash))
		} else {
			PrintInfo("Mint submitted, waiting for confirmation...")
		}
	case "confirmed":
		if state.RewardAmount != nil {
			PrintSuccess(fmt.Sprintf("Claimed %s tokens!", bold(fmt.Sprintf("%d", *state.RewardAmount))))
		} else {
			PrintSuccess("Claim confirmed!")
		}
		if state.ExplorerURL != "" {
			PrintInfo(fmt.Sprintf("Explorer: %s", state.ExplorerURL))
		}
	case "failed":
		PrintError(fmt.Sprintf("Claim failed: %s", failureMessage(state.ErrorKind)))
	}

	if !state.ProviderAvailable {
		PrintError("No wallet provider detected. Install a wallet to claim tokens.")
	}
}

// PrintCountdownLine rewrites the current line with the remaining time
func PrintCountdownLine(remaining string, expired bool) {
	if expired {
		fmt.Printf("\r%s Window expired — tokens available now          \n", checkMark)
		return
	}
	fmt.Printf("\r%s Next claim in %s ", arrow, bold(remaining))
}

// PrintStatus renders an address status
func PrintStatus(status *models.StatusResponse) {
	fmt.Printf("\n%s %s\n\n", bold("Address:"), status.Address)

	if status.CanClaim {
		PrintSuccess("Eligible to claim now")
	} else {
		PrintInfo(fmt.Sprintf("On cooldown. Next claim in %s", bold(status.RemainingTime)))
	}

	if status.LastClaim != nil {
		fmt.Println()
		fmt.Printf("%s\n", bold("Last claim:"))
		fmt.Printf("  Amount:   %d tokens\n", status.LastClaim.Amount)
		fmt.Printf("  Tx:       %s\n", status.LastClaim.TxHash)
		fmt.Printf("  Explorer: %s\n", status.LastClaim.ExplorerURL)
		fmt.Printf("  At:       %s\n", status.LastClaim.ClaimedAt.Format(time.RFC1123))
	}
}

// PrintServiceInfo renders claim service information
func PrintServiceInfo(info *models.InfoResponse) {
	fmt.Printf("\n%s\n\n", bold("Daily Claim Service"))
	fmt.Printf("  Network:   %s\n", info.Network)
	fmt.Printf("  Token:     %s (%d decimals)\n", info.Token.Symbol, info.Token.Decimals)
	fmt.Printf("  Contract:  %s\n", info.Token.Contract)
	fmt.Printf("  Reward:    %d-%d tokens per claim\n", info.Reward.Min, info.Reward.Max)
	fmt.Printf("  Window:    every %d hours\n", info.Window.Hours)
	fmt.Println()
}

func failureMessage(kind string) string {
	switch kind {
	case "provider_absent":
		return "no wallet provider found — install one and try again"
	case "user_rejected":
		return "request rejected in the wallet"
	case "transaction_reverted":
		return "the mint transaction reverted on-chain"
	case "network_error":
		return "network error talking to the wallet provider"
	default:
		return "wallet provider error"
	}
}
