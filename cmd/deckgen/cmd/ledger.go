package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"deckgen/internal/adapters/bbolt"
	"deckgen/internal/app"
	"deckgen/internal/ports"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "List generated variants and their results",
	RunE:  runLedger,
}

// openLedger opens the bbolt-backed generation ledger for a project.
func openLedger(paths *app.Paths) (ports.Ledger, error) {
	store, err := bbolt.NewStore(paths.DB)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	return store, nil
}

// recordVariant upserts one generation record into the ledger. Skipped
// generations are recorded too, but never overwrite an earlier record —
// the first generation owns the entry.
func recordVariant(ledger ports.Ledger, res *app.Result, kind, spec string) error {
	name := filepath.Base(res.OutputPath)
	if res.Skipped {
		existing, err := ledger.Variant(name)
		if err != nil {
			return err
		}
		if existing != nil {
			return nil
		}
	}
	return ledger.RecordVariant(ports.VariantRecord{
		Name:      name,
		Kind:      kind,
		Spec:      spec,
		CreatedAt: time.Now(),
		Skipped:   res.Skipped,
	})
}

func runLedger(cmd *cobra.Command, args []string) error {
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

	recs, err := ledger.Variants()
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("no variants recorded")
		return nil
	}

	fmt.Printf("%s⚡ %d variants%s\n", colorBold, len(recs), colorReset)
	for _, rec := range recs {
		result := fmt.Sprintf("%s—%s", colorGray, colorReset)
		if rec.HasResult {
			result = fmt.Sprintf("%skeff %.5f ± %.5f%s", colorGreen, rec.Keff, rec.KeffUnc, colorReset)
		}
		fmt.Printf("  %-36s %-8s %s\n", rec.Name, rec.Kind, result)
	}
	return nil
}
