//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// docsDir holds Textile sources converted by the Convert target.
const docsDir = "docs"

// Convert builds the CLI and converts every Textile file under docs/ into
// docs/bbcode/, skipping files unchanged since the last run.
func Convert() error {
	mg.Deps(Build)

	if _, err := os.Stat(docsDir); os.IsNotExist(err) {
		fmt.Printf("[convert] No %s/ directory; nothing to convert.\n", docsDir)
		return nil
	}
	return sh.RunV(filepath.Join(binDir, binName), "convert",
		"--batch", docsDir, "--output-dir", filepath.Join(docsDir, "bbcode"))
}
