package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"deckgen/internal/app"
)

var wipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete the generation ledger",
	Long:  "Removes the .deckgen ledger database. Generated variant decks and simulator outputs are left alone.",
	RunE:  runWipe,
}

func runWipe(cmd *cobra.Command, args []string) error {
	cfg, err := loadFacility()
	if err != nil {
		return err
	}
	paths := app.NewPaths(projectRoot(), cfg.InputsDir, cfg.OutputsDir)

	if err := os.Remove(paths.DB); err != nil {
		if os.IsNotExist(err) {
			fmt.Println("no ledger to wipe")
			return nil
		}
		return fmt.Errorf("remove ledger: %w", err)
	}
	fmt.Printf("%s⚡ wiped%s %s\n", colorBold, colorReset, paths.DB)
	return nil
}
