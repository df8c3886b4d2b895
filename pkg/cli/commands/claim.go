package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bounce-labs/daily-claim/pkg/cli"
	"github.com/bounce-labs/daily-claim/pkg/cli/ui"
)

var claimCmd = &cobra.Command{
	Use:   "claim",
	Short: "Claim today's incentive tokens",
	Long: `Start a daily claim attempt and follow it to completion.

The claim service asks the wallet to mint the reward to the connected
account. The wallet may prompt for approval; if the prompt is dismissed
without responding, use 'daily-claim reset' to recover.`,
	Args: cobra.NoArgs,
	RunE: runClaim,
}

func runClaim(cmd *cobra.Command, args []string) error {
	client := cli.NewAPIClient(apiURL)

	response, err := client.Claim()
	if err != nil {
		ui.PrintError(err.Error())
		return nil
	}

	if jsonOut {
		out, _ := json.MarshalIndent(response, "", "  ")
		fmt.Println(string(out))
		return nil
	}

	s := ui.NewSpinner("Waiting for the wallet...")
	s.Start()

	// Follow the attempt until it settles one way or the other.
	deadline := time.Now().Add(5 * time.Minute)
	for time.Now().Before(deadline) {
		time.Sleep(time.Second)

		state, err := client.GetDisplayState()
		if err != nil {
			s.Stop()
			ui.PrintError(err.Error())
			return nil
		}

		switch state.Status {
		case "confirmed", "failed", "idle":
			s.Stop()
			ui.PrintDisplayState(state)
			return nil
		case "submitted":
			s.Suffix = " Mint submitted, waiting for confirmation..."
		}
	}

	s.Stop()
	ui.PrintError("Timed out waiting for the claim to settle. Run 'daily-claim reset' if the wallet prompt was dismissed.")
	return nil
}
