package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"deckgen/internal/app"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration",
	Long:  "Shows the resolved facility configuration and project paths.",
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadFacility()
	if err != nil {
		return err
	}
	paths := app.NewPaths(projectRoot(), cfg.InputsDir, cfg.OutputsDir)

	fmt.Printf("%s⚡ deckgen config%s\n", colorBold, colorReset)
	fmt.Printf("  Module:      %s\n", cfg.Module)
	fmt.Printf("  Base deck:   %s\n", cfg.BaseDeck)
	fmt.Printf("  Inputs:      %s\n", paths.InputsDir)
	fmt.Printf("  Outputs:     %s\n", paths.OutputsDir)
	fmt.Printf("  Ledger:      %s\n", paths.DB)
	fmt.Printf("  Simulator:   %s (tasks %d)\n", cfg.Simulator, cfg.Tasks)
	fmt.Printf("  Calibration: %.2f cm/%%, %g MeV/K, rod prefix %q, water material %d\n",
		cfg.CmPerPercent, cfg.MevPerKelvin, cfg.RodSurfacePrefix, cfg.WaterMaterial)
	return nil
}
