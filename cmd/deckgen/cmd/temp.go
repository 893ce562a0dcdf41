package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"deckgen/internal/app"
	"deckgen/internal/domain/deck"
	"deckgen/internal/ports"
)

var tempMatFlags []string

var tempCmd = &cobra.Command{
	Use:   "temp",
	Short: "Generate a temperature variant",
	Long: "Derives a variant deck with the given materials at new temperatures (Kelvin): cell cards\n" +
		"gain tmp= attributes, core water cells are retagged, and material cards switch to the\n" +
		"nearest supported temperature library of each nuclide family.",
	RunE: runTemp,
}

func init() {
	tempCmd.Flags().StringArrayVar(&tempMatFlags, "mat", nil, "temperature target, id=kelvin, repeatable (e.g. --mat 102=350)")
	tempCmd.Flags().StringVar(&baseFlag, "base", "", "base deck (default from facility config)")
}

func runTemp(cmd *cobra.Command, args []string) error {
	cfg, err := loadFacility()
	if err != nil {
		return err
	}
	paths, err := workspace(cfg)
	if err != nil {
		return err
	}

	ids, vals, err := parseMatTargets(tempMatFlags)
	if err != nil {
		return err
	}
	spec := make(deck.TemperatureSpec, len(ids))
	for i := range ids {
		spec[i] = deck.TemperatureTarget{Material: ids[i], Kelvin: vals[i]}
	}

	gen := &app.Generator{Module: cfg.Module, InputsDir: paths.InputsDir}
	res, err := gen.Generate(baseDeckPath(cfg.BaseDeck), deck.NewTemperatureEditor(spec, cfg.Calibration()))
	if err != nil {
		return err
	}
	printResult(res)

	ledger, err := openLedger(paths)
	if err != nil {
		return err
	}
	defer ledger.Close()
	return recordVariant(ledger, res, ports.KindTemperature, strings.Join(tempMatFlags, " "))
}
