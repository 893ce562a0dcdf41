package app

import (
	"os"
	"path/filepath"
)

// Paths holds all resolved filesystem paths for a deckgen project
// directory. All fields are pre-computed strings.
type Paths struct {
	Root string // .deckgen/
	DB   string // .deckgen/deckgen.db

	InputsDir  string // <project>/inputs/   generated variant decks
	OutputsDir string // <project>/outputs/  simulator output files
}

// NewPaths constructs all resolved paths from a project root directory.
// inputsDir and outputsDir are the configured directory names from
// facility config, resolved relative to the project root.
func NewPaths(projectRoot, inputsDir, outputsDir string) *Paths {
	root := filepath.Join(projectRoot, ".deckgen")
	return &Paths{
		Root:       root,
		DB:         filepath.Join(root, "deckgen.db"),
		InputsDir:  filepath.Join(projectRoot, inputsDir),
		OutputsDir: filepath.Join(projectRoot, outputsDir),
	}
}

// EnsureDirs creates the directory structure if missing.
func (p *Paths) EnsureDirs() error {
	for _, dir := range []string{p.Root, p.InputsDir, p.OutputsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
