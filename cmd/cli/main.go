package main

import "github.com/bounce-labs/daily-claim/pkg/cli/commands"

func main() {
	commands.Execute()
}
