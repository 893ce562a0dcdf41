package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"deckgen/internal/app"
	"deckgen/internal/domain/deck"
	"deckgen/internal/ports"
)

// matFlags collects repeated --mat id=value pairs in declaration order.
var matFlags []string

var densityCmd = &cobra.Command{
	Use:   "density",
	Short: "Generate a material-density variant",
	Long: "Derives a variant deck with the given materials set to new mass densities (g/cm³).\n" +
		"Each affected cell card is preceded by its original, commented out.",
	RunE: runDensity,
}

func init() {
	densityCmd.Flags().StringArrayVar(&matFlags, "mat", nil, "material target, id=density, repeatable (e.g. --mat 102=0.95)")
	densityCmd.Flags().StringVar(&baseFlag, "base", "", "base deck (default from facility config)")
}

// parseMatTargets parses repeated id=value pairs, preserving order.
func parseMatTargets(flags []string) ([]int, []float64, error) {
	if len(flags) == 0 {
		return nil, nil, fmt.Errorf("at least one --mat id=value target required")
	}
	ids := make([]int, 0, len(flags))
	vals := make([]float64, 0, len(flags))
	for _, f := range flags {
		id, val, ok := strings.Cut(f, "=")
		if !ok {
			return nil, nil, fmt.Errorf("target %q: want id=value", f)
		}
		matID, err := strconv.Atoi(strings.TrimSpace(id))
		if err != nil {
			return nil, nil, fmt.Errorf("target %q: %w", f, err)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil, nil, fmt.Errorf("target %q: %w", f, err)
		}
		ids = append(ids, matID)
		vals = append(vals, v)
	}
	return ids, vals, nil
}

func runDensity(cmd *cobra.Command, args []string) error {
	cfg, err := loadFacility()
	if err != nil {
		return err
	}
	paths, err := workspace(cfg)
	if err != nil {
		return err
	}

	ids, vals, err := parseMatTargets(matFlags)
	if err != nil {
		return err
	}
	spec := make(deck.DensitySpec, len(ids))
	for i := range ids {
		if vals[i] <= 0 {
			return fmt.Errorf("material %d: density must be a positive magnitude, got %v", ids[i], vals[i])
		}
		spec[i] = deck.DensityTarget{Material: ids[i], Density: vals[i]}
	}

	gen := &app.Generator{Module: cfg.Module, InputsDir: paths.InputsDir}
	res, err := gen.Generate(baseDeckPath(cfg.BaseDeck), deck.NewDensityEditor(spec))
	if err != nil {
		return err
	}
	printResult(res)

	ledger, err := openLedger(paths)
	if err != nil {
		return err
	}
	defer ledger.Close()
	return recordVariant(ledger, res, ports.KindDensity, strings.Join(matFlags, " "))
}
