// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/textile2bbcode/internal/history"
	"github.com/pdiddy/textile2bbcode/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the conversion history (list, export)",
	Long: `History shows what earlier convert runs recorded in the local SQLite
history: which inputs were converted, where the output went, and whether the
conversion succeeded.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded conversions, newest first",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(loadConfig().History)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(cmd.Context(), listOptsFromFlags(cmd))
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistoryOutput(cmd.OutOrStdout(), records, jsonOutput)
}

func formatHistoryOutput(w io.Writer, records []types.ConversionRecord, jsonOutput bool) error {
	if jsonOutput {
		if records == nil {
			records = []types.ConversionRecord{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-20s  %-9s  %-40s  %s\n", "Converted", "Status", "Input", "Output")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for _, r := range records {
		fmt.Fprintf(w, "%-20s  %-9s  %-40s  %s\n",
			r.ConvertedAt.Local().Format(time.DateTime), r.Status, shorten(r.InputPath, 40), r.OutputPath)
	}

	fmt.Fprintf(w, "\n%d records\n", len(records))
	return nil
}

// shorten keeps the tail of s, which for paths is the informative part.
func shorten(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n+3:]
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the conversion history to YAML or JSON",
	RunE:  runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	store, err := history.NewStore(loadConfig().History)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := listOptsFromFlags(cmd)

	switch format {
	case "yaml", "":
		if out == "" {
			out = "history.yaml"
		}
		err = store.ExportYAML(cmd.Context(), out, opts)
	case "json":
		if out == "" {
			out = "history.json"
		}
		err = store.ExportJSON(cmd.Context(), out, opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", out)
	return nil
}

// --- shared helpers ---

func listOptsFromFlags(cmd *cobra.Command) history.ListOptions {
	status, _ := cmd.Flags().GetString("status")
	limit, _ := cmd.Flags().GetInt("limit")
	return history.ListOptions{
		Status: types.ConversionStatus(status),
		Limit:  limit,
	}
}

func init() {
	for _, c := range []*cobra.Command{historyListCmd, historyExportCmd} {
		c.Flags().String("status", "", "filter by status: converted or failed")
		c.Flags().Int("limit", 0, "maximum records (0 = default)")
	}
	historyListCmd.Flags().Bool("json", false, "output records as JSON")

	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	historyExportCmd.Flags().String("out", "", "export file (default history.yaml or history.json)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyExportCmd)

	rootCmd.AddCommand(historyCmd)
}
