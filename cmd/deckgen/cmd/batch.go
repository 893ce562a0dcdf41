package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"deckgen/internal/app"
	"deckgen/internal/ports"
)

var (
	safesFlag   string
	shimsFlag   string
	regsFlag    string
	workersFlag int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Generate a grid of rod-position variants",
	Long: "Expands per-rod position lists (comma lists or from:to:step ranges) into their cartesian\n" +
		"product and derives one variant deck per combination over a worker pool. Each combination\n" +
		"is independent, so existing variants are skipped and the rest generate in parallel.",
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVar(&safesFlag, "safes", "0", "safe rod positions, e.g. 0,50,100 or 0:100:10")
	batchCmd.Flags().StringVar(&shimsFlag, "shims", "0", "shim rod positions")
	batchCmd.Flags().StringVar(&regsFlag, "regs", "0", "reg rod positions")
	batchCmd.Flags().IntVar(&workersFlag, "workers", 4, "parallel generation workers")
	batchCmd.Flags().StringVar(&baseFlag, "base", "", "base deck (default from facility config)")
}

// parsePositions accepts "0,50,100" or "from:to:step".
func parsePositions(arg string) ([]int, error) {
	if strings.Contains(arg, ":") {
		parts := strings.Split(arg, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("range %q: want from:to:step", arg)
		}
		vals := make([]int, 3)
		for i, p := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return nil, fmt.Errorf("range %q: %w", arg, err)
			}
			vals[i] = v
		}
		return app.Range(vals[0], vals[1], vals[2]), nil
	}

	var out []int
	for _, p := range strings.Split(arg, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("positions %q: %w", arg, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadFacility()
	if err != nil {
		return err
	}
	paths, err := workspace(cfg)
	if err != nil {
		return err
	}

	safes, err := parsePositions(safesFlag)
	if err != nil {
		return err
	}
	shims, err := parsePositions(shimsFlag)
	if err != nil {
		return err
	}
	regs, err := parsePositions(regsFlag)
	if err != nil {
		return err
	}

	specs := app.RodHeightGrid(safes, shims, regs)
	gen := &app.Generator{Module: cfg.Module, InputsDir: paths.InputsDir}

	batch, err := gen.GenerateRodHeights(cmd.Context(), baseDeckPath(cfg.BaseDeck), specs, cfg.Calibration(), workersFlag)
	if err != nil {
		return err
	}

	ledger, err := openLedger(paths)
	if err != nil {
		return err
	}
	defer ledger.Close()

	for _, res := range batch.Results {
		printResult(res)
		if err := recordVariant(ledger, res, ports.KindRodHeight, ""); err != nil {
			return err
		}
	}
	fmt.Printf("%s⚡ %d generated, %d skipped%s\n", colorBold, batch.Generated, batch.Skipped, colorReset)
	return nil
}
