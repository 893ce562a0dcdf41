package cmd

import (
	"fmt"
	"path/filepath"

	"deckgen/internal/app"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// printResult reports one variant generation on the terminal.
//
//	⚡ wrote inputs/rc-a050-h000-r000.i (1012 lines)
//	· skipped rc-a050-h000-r000.i (already exists)
func printResult(res *app.Result) {
	name := filepath.Base(res.OutputPath)
	if res.Skipped {
		fmt.Printf("%s· skipped %s (already exists)%s\n", colorGray, name, colorReset)
	} else {
		fmt.Printf("%s⚡ wrote%s %s (%d lines)\n", colorBold, colorReset, res.OutputPath, res.Lines)
	}
	for _, d := range res.Diagnostics {
		fmt.Printf("%s! %s%s\n", colorYellow, d, colorReset)
	}
}
