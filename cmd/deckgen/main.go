package main

import (
	"os"

	"deckgen/cmd/deckgen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
