package main

import (
	"os"

	"github.com/wonny/lmed/cmd/lmed/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
