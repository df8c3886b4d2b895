package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bounce-labs/daily-claim/pkg/cli"
	"github.com/bounce-labs/daily-claim/pkg/cli/ui"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "View claim service information",
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	client := cli.NewAPIClient(apiURL)

	info, err := client.GetInfo()
	if err != nil {
		ui.PrintError(err.Error())
		return nil
	}

	if jsonOut {
		out, _ := json.MarshalIndent(info, "", "  ")
		fmt.Println(string(out))
		return nil
	}

	ui.PrintServiceInfo(info)
	return nil
}
