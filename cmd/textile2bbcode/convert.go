package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/textile2bbcode/internal/convert"
	"github.com/pdiddy/textile2bbcode/internal/history"
	"github.com/pdiddy/textile2bbcode/internal/textile"
	"github.com/pdiddy/textile2bbcode/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [input]",
	Short: "Convert Textile files to BBCode",
	Long: `Convert reads a Textile file (or standard input when none is given)
and writes BBCode to standard output, to the path given with --output, or
next to the input with a .txt extension when --txt is set. --txt also
replaces the extension of an explicit --output path with .txt. An output
path that would overwrite its own input is refused.

With --batch DIR every .textile file under DIR is converted. Outputs go next
to their inputs, or mirror the tree under --output-dir. Files whose content
has not changed since their last conversion are skipped unless --force is
given.

Whenever output goes to a file, the conversion is recorded in the history
database (.textile2bbcode/history.db by default, see --history-db), which is
created on first use. Pass --no-history to neither read nor write it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	convertCmd.Flags().Bool("txt", false, "save the result as a .txt file (also forces .txt on --output)")
	convertCmd.Flags().String("batch", "", "convert every Textile file under this directory")
	convertCmd.Flags().String("output-dir", "", "batch output directory (default: next to each input)")
	convertCmd.Flags().Bool("force", false, "convert even when the history says the input is unchanged")
	convertCmd.Flags().Bool("no-history", false, "do not read or write the conversion history")

	_ = viper.BindPFlag("conversion.text_ext", convertCmd.Flags().Lookup("txt"))
	_ = viper.BindPFlag("conversion.output_dir", convertCmd.Flags().Lookup("output-dir"))
	_ = viper.BindPFlag("conversion.force", convertCmd.Flags().Lookup("force"))

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	conv := textile.Converter{}

	batchDir, _ := cmd.Flags().GetString("batch")
	if batchDir != "" {
		if len(args) > 0 {
			return fmt.Errorf("--batch converts a directory; do not also pass an input file")
		}
		return runBatch(cmd, conv, batchDir, cfg)
	}

	if outputDir, _ := cmd.Flags().GetString("output-dir"); outputDir != "" {
		return fmt.Errorf("--output-dir applies only to --batch; use --output for a single file")
	}

	output, _ := cmd.Flags().GetString("output")
	var input string
	if len(args) > 0 {
		input = args[0]
	}
	outPath := convert.ResolveOutputPath(input, output, cfg.Conversion.TextExt)

	if input == "" {
		if !stdinPiped(cmd) {
			return fmt.Errorf("provide an input file or pipe Textile on stdin")
		}
		if cfg.Conversion.TextExt && output == "" {
			return fmt.Errorf("--txt with standard input needs --output")
		}
		if outPath == "" {
			return convert.ConvertReader(conv, cmd.InOrStdin(), cmd.OutOrStdout())
		}
		return convertStdinToFile(conv, cmd.InOrStdin(), outPath)
	}

	if outPath == "" {
		return convert.ConvertFile(conv, input, cmd.OutOrStdout())
	}
	if convert.SamePath(input, outPath) {
		return fmt.Errorf("output %s would overwrite the input", outPath)
	}

	opts, closeHistory, err := conversionOptions(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeHistory()

	// An explicitly named file is always rewritten; history only records it.
	opts.Force = true
	status := convert.ConvertDocument(cmd.Context(), conv, convert.NewDocument(input, outPath), opts, cmd.ErrOrStderr())
	if status == types.ConversionFailed {
		return fmt.Errorf("converting %s failed", input)
	}
	return nil
}

func runBatch(cmd *cobra.Command, conv convert.Converter, dir string, cfg types.Config) error {
	docs, err := convert.DiscoverDocuments(dir, cfg.Conversion)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No Textile files found in %s.\n", dir)
		return nil
	}

	opts, closeHistory, err := conversionOptions(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeHistory()

	result, err := convert.ConvertBatch(cmd.Context(), conv, docs, opts, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return nil
}

// conversionOptions opens the history store unless --no-history is set. The
// returned func closes it.
func conversionOptions(cmd *cobra.Command, cfg types.Config) (convert.Options, func(), error) {
	opts := convert.Options{Force: cfg.Conversion.Force}

	noHistory, _ := cmd.Flags().GetBool("no-history")
	if noHistory {
		return opts, func() {}, nil
	}

	store, err := history.NewStore(cfg.History)
	if err != nil {
		return opts, nil, fmt.Errorf("opening history: %w", err)
	}
	opts.History = store
	return opts, func() { store.Close() }, nil
}

func convertStdinToFile(conv convert.Converter, r io.Reader, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	if err := convert.ConvertReader(conv, r, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// stdinPiped reports whether the command's input carries data rather than
// an interactive terminal.
func stdinPiped(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		return true
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice == 0
}
