package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"deckgen/internal/app"
	"deckgen/internal/domain/deck"
	"deckgen/internal/ports"
)

var (
	safeFlag int
	shimFlag int
	regFlag  int
	baseFlag string
)

var rodsCmd = &cobra.Command{
	Use:   "rods",
	Short: "Generate one rod-position variant",
	Long:  "Derives a variant deck with the safe, shim, and reg rods at the given percent-withdrawn positions. Skips generation when the derived deck already exists.",
	RunE:  runRods,
}

func init() {
	rodsCmd.Flags().IntVar(&safeFlag, "safe", 0, "safe rod percent withdrawn [0-100]")
	rodsCmd.Flags().IntVar(&shimFlag, "shim", 0, "shim rod percent withdrawn [0-100]")
	rodsCmd.Flags().IntVar(&regFlag, "reg", 0, "reg rod percent withdrawn [0-100]")
	rodsCmd.Flags().StringVar(&baseFlag, "base", "", "base deck (default from facility config)")
}

// baseDeckPath resolves the base deck from the --base flag or config.
func baseDeckPath(cfgBase string) string {
	if baseFlag != "" {
		return baseFlag
	}
	return filepath.Join(projectRoot(), cfgBase)
}

func runRods(cmd *cobra.Command, args []string) error {
	cfg, err := loadFacility()
	if err != nil {
		return err
	}
	paths, err := workspace(cfg)
	if err != nil {
		return err
	}

	heights := deck.RodHeights{Safe: safeFlag, Shim: shimFlag, Reg: regFlag}
	if err := heights.Validate(); err != nil {
		return err
	}

	gen := &app.Generator{Module: cfg.Module, InputsDir: paths.InputsDir}
	res, err := gen.Generate(baseDeckPath(cfg.BaseDeck), deck.NewRodHeightEditor(heights, cfg.Calibration()))
	if err != nil {
		return err
	}
	printResult(res)

	ledger, err := openLedger(paths)
	if err != nil {
		return err
	}
	defer ledger.Close()

	spec := fmt.Sprintf("safe=%d shim=%d reg=%d", heights.Safe, heights.Shim, heights.Reg)
	return recordVariant(ledger, res, ports.KindRodHeight, spec)
}
