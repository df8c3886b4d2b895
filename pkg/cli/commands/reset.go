package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bounce-labs/daily-claim/pkg/cli"
	"github.com/bounce-labs/daily-claim/pkg/cli/ui"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Abandon a stuck claim attempt",
	Long: `Abandon the current claim attempt and return the flow to idle.

Use this when a wallet prompt was dismissed without responding and the
claim is stuck waiting. The claim window is not affected.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func runReset(cmd *cobra.Command, args []string) error {
	client := cli.NewAPIClient(apiURL)

	state, err := client.ResetClaim()
	if err != nil {
		ui.PrintError(err.Error())
		return nil
	}

	if jsonOut {
		out, _ := json.MarshalIndent(state, "", "  ")
		fmt.Println(string(out))
		return nil
	}

	ui.PrintSuccess("Claim state reset")
	ui.PrintDisplayState(state)
	return nil
}
