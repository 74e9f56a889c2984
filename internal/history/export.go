// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/textile2bbcode/pkg/types"
)

const exportLimit = 100000

// ExportYAML writes the history matching opts to path as a YAML list.
func (s *Store) ExportYAML(ctx context.Context, path string, opts ListOptions) error {
	records, err := s.exportRecords(ctx, opts)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return writeExport(path, data)
}

// ExportJSON writes the history matching opts to path as a JSON array.
func (s *Store) ExportJSON(ctx context.Context, path string, opts ListOptions) error {
	records, err := s.exportRecords(ctx, opts)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return writeExport(path, data)
}

func (s *Store) exportRecords(ctx context.Context, opts ListOptions) ([]types.ConversionRecord, error) {
	if opts.Limit <= 0 {
		opts.Limit = exportLimit
	}
	records, err := s.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	if records == nil {
		records = []types.ConversionRecord{}
	}
	return records, nil
}

func writeExport(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
