package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"deckgen/internal/adapters/mcnp"
	"deckgen/internal/ports"
)

var tasksFlag int

var runCmd = &cobra.Command{
	Use:   "run <input-deck>...",
	Short: "Run the simulator on generated variant decks",
	Long: "Invokes the configured simulator executable on each input deck, writing output files\n" +
		"to the outputs directory. A deck whose output already exists is skipped.",
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVar(&tasksFlag, "tasks", 0, "simulator worker processes (default from facility config)")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadFacility()
	if err != nil {
		return err
	}
	paths, err := workspace(cfg)
	if err != nil {
		return err
	}

	tasks := tasksFlag
	if tasks <= 0 {
		tasks = cfg.Tasks
	}

	var runner ports.Runner = mcnp.NewRunner(cfg.Simulator)
	for _, input := range args {
		skipped, err := runner.Run(cmd.Context(), input, paths.OutputsDir, tasks)
		if err != nil {
			return err
		}
		name := filepath.Base(input)
		if skipped {
			fmt.Printf("%s· skipped %s (output exists)%s\n", colorGray, name, colorReset)
		} else {
			fmt.Printf("%s⚡ ran%s %s → %s\n", colorBold, colorReset, name, mcnp.OutputFileFor(input))
		}
	}
	return nil
}
