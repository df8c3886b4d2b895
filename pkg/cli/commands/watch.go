package commands

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/bounce-labs/daily-claim/internal/countdown"
	"github.com/bounce-labs/daily-claim/pkg/cli"
	"github.com/bounce-labs/daily-claim/pkg/cli/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live countdown to the next claim",
	Long: `Render a live countdown to the end of the current claim window.

The deadline is fetched once; the countdown runs locally against it so the
display ticks every second without polling the API.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	client := cli.NewAPIClient(apiURL)

	state, err := client.GetDisplayState()
	if err != nil {
		ui.PrintError(err.Error())
		return nil
	}

	if state.Eligible {
		ui.PrintDisplayState(state)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	endsAt := state.WindowEndsAt
	clock := countdown.New(time.Second)
	clock.Watch(ctx, func() time.Time { return endsAt }, func(remaining string, expired bool) {
		ui.PrintCountdownLine(remaining, expired)
		if expired {
			stop()
		}
	})

	return nil
}
