// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs Textile-to-BBCode conversion over files: it resolves
// where each output goes, converts single files or whole directory trees,
// and consults the conversion history to skip inputs that have not changed.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/textile2bbcode/internal/history"
	"github.com/pdiddy/textile2bbcode/pkg/types"
)

// Converter transforms Textile text into BBCode. textile.Converter is the
// production implementation.
type Converter interface {
	Convert(text string) string
}

// History remembers earlier conversions. *history.Store implements it.
type History interface {
	Lookup(ctx context.Context, inputPath string) (types.ConversionRecord, bool, error)
	Record(ctx context.Context, rec types.ConversionRecord) error
}

// Options controls how documents are converted.
type Options struct {
	// History, when non-nil, is consulted before and updated after each
	// conversion.
	History History

	// Force converts even when the history reports the input unchanged.
	Force bool
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of documents processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any document failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ResolveOutputPath decides where the BBCode for input goes. An explicit
// output path wins; textExt forces its extension to ".txt". Without an
// explicit path, textExt derives a ".txt" sibling of input. Otherwise the
// result is "" and the caller writes to standard output.
func ResolveOutputPath(input, output string, textExt bool) string {
	switch {
	case output != "" && textExt:
		return replaceExt(output, types.ExtText)
	case output != "":
		return output
	case textExt && input != "":
		return replaceExt(input, types.ExtText)
	default:
		return ""
	}
}

// NewDocument builds a Document for inputPath, with its ID taken from the
// file name.
func NewDocument(inputPath, outputPath string) types.Document {
	return types.Document{
		ID:         strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath)),
		InputPath:  inputPath,
		OutputPath: outputPath,
	}
}

// ConvertReader converts everything read from r and writes the BBCode to w.
func ConvertReader(c Converter, r io.Reader, w io.Writer) error {
	input, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	if _, err := io.WriteString(w, c.Convert(string(input))); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// ConvertFile converts the file at inputPath and writes the BBCode to w.
func ConvertFile(c Converter, inputPath string, w io.Writer) error {
	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", inputPath, err)
	}
	defer f.Close()
	return ConvertReader(c, f, w)
}

// ConvertDocument converts doc.InputPath into doc.OutputPath, creating the
// output directory when needed, and prints one status line to w. The input
// is skipped when the history holds a successful conversion of identical
// bytes to the same output and that output still exists.
func ConvertDocument(ctx context.Context, c Converter, doc types.Document, opts Options, w io.Writer) types.ConversionStatus {
	if doc.OutputPath == "" {
		fmt.Fprintf(w, "failed:  %s (no output path)\n", doc.ID)
		return types.ConversionFailed
	}

	data, err := os.ReadFile(doc.InputPath)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", doc.ID, err)
		return types.ConversionFailed
	}

	rec := types.ConversionRecord{
		InputPath:  historyKey(doc.InputPath),
		OutputPath: historyKey(doc.OutputPath),
		Checksum:   history.Checksum(data),
		InputBytes: len(data),
	}

	if opts.History != nil && !opts.Force && unchanged(ctx, opts.History, rec, doc.OutputPath, w) {
		fmt.Fprintf(w, "skipped: %s (unchanged)\n", doc.ID)
		return types.ConversionNone
	}

	status := types.ConversionConverted
	if err := writeOutput(c, doc.OutputPath, data, &rec); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", doc.ID, err)
		status = types.ConversionFailed
	} else {
		fmt.Fprintf(w, "converted: %s\n", doc.ID)
	}

	if opts.History != nil {
		rec.Status = status
		if err := opts.History.Record(ctx, rec); err != nil {
			fmt.Fprintf(w, "warning: %v\n", err)
		}
	}
	return status
}

// ConvertBatch converts each document in turn, printing per-file status and
// a summary to w. It stops early when ctx is cancelled.
func ConvertBatch(ctx context.Context, c Converter, docs []types.Document, opts Options, w io.Writer) (BatchResult, error) {
	var result BatchResult
	for _, doc := range docs {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		switch ConvertDocument(ctx, c, doc, opts, w) {
		case types.ConversionConverted:
			result.Converted++
		case types.ConversionNone:
			result.Skipped++
		case types.ConversionFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result, nil
}

func unchanged(ctx context.Context, h History, rec types.ConversionRecord, outputPath string, w io.Writer) bool {
	prev, found, err := h.Lookup(ctx, rec.InputPath)
	if err != nil {
		fmt.Fprintf(w, "warning: %v\n", err)
		return false
	}
	if !found || prev.Status != types.ConversionConverted {
		return false
	}
	if prev.Checksum != rec.Checksum || prev.OutputPath != rec.OutputPath {
		return false
	}
	_, err = os.Stat(outputPath)
	return err == nil
}

func writeOutput(c Converter, outputPath string, input []byte, rec *types.ConversionRecord) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	out := c.Convert(string(input))
	if err := os.WriteFile(outputPath, []byte(out), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	rec.OutputBytes = len(out)
	return nil
}

// historyKey returns the absolute form of path so records do not depend on
// the working directory of the run that wrote them.
func historyKey(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

// SamePath reports whether a and b name the same file path once made
// absolute. Callers use it to refuse writing an output over its input.
func SamePath(a, b string) bool {
	return historyKey(a) == historyKey(b)
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
