package main

import (
	"os"

	"clientdesk/cmd/clientdesk/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
