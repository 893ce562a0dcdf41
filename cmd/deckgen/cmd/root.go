package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"deckgen/internal/app"
	"deckgen/internal/facility"
)

// configFlag overrides the default facility config file location.
var configFlag string

var rootCmd = &cobra.Command{
	Use:           "deckgen",
	Short:         "deckgen — variant simulation-deck generator",
	Long:          "Generates variant input decks for the criticality simulator: rod positions, material densities, and temperature libraries.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// projectRoot returns the project root (cwd by default).
func projectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	return dir
}

// loadFacility reads the facility config, defaulting to deckgen.yaml in
// the project root. A missing file means defaults.
func loadFacility() (facility.Config, error) {
	path := configFlag
	if path == "" {
		path = filepath.Join(projectRoot(), "deckgen.yaml")
	}
	return facility.Load(path)
}

// workspace resolves the project paths for a facility config and ensures
// the directory structure exists.
func workspace(cfg facility.Config) (*app.Paths, error) {
	paths := app.NewPaths(projectRoot(), cfg.InputsDir, cfg.OutputsDir)
	if err := paths.EnsureDirs(); err != nil {
		return nil, fmt.Errorf("create project dirs: %w", err)
	}
	return paths, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "facility config file (default deckgen.yaml)")

	rootCmd.AddCommand(rodsCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(densityCmd)
	rootCmd.AddCommand(tempCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(keffCmd)
	rootCmd.AddCommand(ledgerCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(wipeCmd)
}
