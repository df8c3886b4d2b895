package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bounce-labs/daily-claim/pkg/cli"
	"github.com/bounce-labs/daily-claim/pkg/cli/ui"
	"github.com/bounce-labs/daily-claim/pkg/utils"
)

var statusCmd = &cobra.Command{
	Use:   "status <ADDRESS>",
	Short: "Check the claim cooldown for an address",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	address := args[0]
	if err := utils.ValidateAddress(address); err != nil {
		ui.PrintError(fmt.Sprintf("Invalid address: %s", err.Error()))
		return nil
	}

	client := cli.NewAPIClient(apiURL)

	status, err := client.GetStatus(address)
	if err != nil {
		ui.PrintError(err.Error())
		return nil
	}

	if jsonOut {
		out, _ := json.MarshalIndent(status, "", "  ")
		fmt.Println(string(out))
		return nil
	}

	ui.PrintStatus(status)
	return nil
}
