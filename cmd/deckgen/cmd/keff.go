package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"deckgen/internal/adapters/fsnotify"
	"deckgen/internal/adapters/mcnp"
	"deckgen/internal/app"
	"deckgen/internal/ports"
)

var watchFlag bool

var keffCmd = &cobra.Command{
	Use:   "keff [output-file]...",
	Short: "Extract criticality estimates from simulator output",
	Long: "Scans simulator output files for the criticality summary and records the estimate and\n" +
		"its uncertainty in the ledger. With --watch, waits for new output files in the outputs\n" +
		"directory and extracts each as it lands.",
	RunE: runKeff,
}

func init() {
	keffCmd.Flags().BoolVar(&watchFlag, "watch", false, "watch the outputs directory for new output files")
}

// variantNameFor maps a simulator output file back to the variant deck
// that produced it: "o_rc-a050-h000-r000.o" → "rc-a050-h000-r000.i".
func variantNameFor(outputPath string) string {
	base := filepath.Base(outputPath)
	stem := strings.TrimSuffix(strings.TrimPrefix(base, "o_"), ".o")
	return stem + ".i"
}

// newOutputWatcher constructs the fsnotify-backed outputs watcher.
func newOutputWatcher() (ports.Watcher, error) {
	return fsnotify.NewWatcher()
}

// extractAndRecord pulls the estimate out of one output file and attaches
// it to the matching ledger record when one exists.
func extractAndRecord(ledger ports.Ledger, path string) error {
	keff, keffUnc, err := mcnp.ExtractKeff(path)
	if err != nil {
		if errors.Is(err, mcnp.ErrKeffNotFound) {
			fmt.Printf("%s! %s: no criticality summary%s\n", colorYellow, filepath.Base(path), colorReset)
			return nil
		}
		return err
	}

	name := variantNameFor(path)
	fmt.Printf("%s⚡ %s%s keff %.5f ± %.5f (ρ %.4f%%)\n",
		colorBold, name, colorReset, keff, keffUnc, mcnp.Reactivity(keff))

	rec, err := ledger.Variant(name)
	if err != nil {
		return err
	}
	if rec == nil {
		// Output for a deck generated outside the ledger; report only.
		return nil
	}
	return ledger.AttachResult(name, keff, keffUnc)
}

func runKeff(cmd *cobra.Command, args []string) error {
	cfg, err := loadFacility()
	if err != nil {
		return err
	}
	paths := app.NewPaths(projectRoot(), cfg.InputsDir, cfg.OutputsDir)

	ledger, err := openLedger(paths)
	if err != nil {
		return err
	}
	defer ledger.Close()

	for _, path := range args {
		if err := extractAndRecord(ledger, path); err != nil {
			return err
		}
	}

	if !watchFlag {
		if len(args) == 0 {
			return fmt.Errorf("no output files given (or use --watch)")
		}
		return nil
	}

	watcher, err := newOutputWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Stop()

	errs := make(chan error, 1)
	if err := watcher.Watch(paths.OutputsDir, func(path string) {
		if err := extractAndRecord(ledger, path); err != nil {
			select {
			case errs <- err:
			default:
			}
		}
	}); err != nil {
		return fmt.Errorf("watch %s: %w", paths.OutputsDir, err)
	}

	fmt.Printf("%s⚡ watching %s%s (ctrl-c to stop)\n", colorBold, paths.OutputsDir, colorReset)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sig:
		return nil
	case err := <-errs:
		return err
	case <-cmd.Context().Done():
		return nil
	}
}
