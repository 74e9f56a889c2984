// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/pdiddy/textile2bbcode/pkg/types"
)

// DiscoverDocuments walks dir for Textile inputs, matched by the configured
// extensions, and pairs each with its output path. Outputs mirror the input
// tree under cfg.OutputDir, or sit next to their inputs when it is empty.
// Hidden directories and the output directory itself are not descended
// into. Documents come back in lexical order of their input paths.
func DiscoverDocuments(dir string, cfg types.ConversionConfig) ([]types.Document, error) {
	exts := cfg.Extensions
	if len(exts) == 0 {
		exts = types.DefaultExtensions
	}
	outExt := cfg.OutputExt()

	var skipDir string
	if cfg.OutputDir != "" {
		skipDir = historyKey(cfg.OutputDir)
	}

	var docs []types.Document
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && (strings.HasPrefix(d.Name(), ".") || historyKey(path) == skipDir) {
				return filepath.SkipDir
			}
			return nil
		}
		if !hasExt(path, exts) {
			return nil
		}

		out := replaceExt(path, outExt)
		if cfg.OutputDir != "" {
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return err
			}
			out = filepath.Join(cfg.OutputDir, replaceExt(rel, outExt))
		}
		if SamePath(out, path) {
			return nil
		}

		docs = append(docs, NewDocument(path, out))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	return docs, nil
}

func hasExt(path string, exts []string) bool {
	ext := filepath.Ext(path)
	for _, e := range exts {
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}
