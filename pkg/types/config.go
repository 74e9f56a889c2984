package types

const (
	// ExtBBCode is the default extension for converted files.
	ExtBBCode = ".bbcode"
	// ExtText is the extension forced by the save-as-text option.
	ExtText = ".txt"
)

// DefaultExtensions lists the input suffixes picked up by batch conversion.
var DefaultExtensions = []string{".textile"}

// ConversionConfig holds settings for the file conversion stage.
type ConversionConfig struct {
	// OutputDir receives batch output, mirroring the input tree. Empty writes
	// each output next to its input.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// TextExt forces the ".txt" extension on output files.
	TextExt bool `json:"text_ext" yaml:"text_ext"`

	// Force converts inputs even when the history says they are unchanged.
	Force bool `json:"force" yaml:"force"`

	// Extensions lists the input file suffixes batch mode converts
	// (default ".textile").
	Extensions []string `json:"extensions" yaml:"extensions"`
}

// OutputExt returns the extension given to converted files.
func (c ConversionConfig) OutputExt() string {
	if c.TextExt {
		return ExtText
	}
	return ExtBBCode
}

// HistoryConfig holds settings for the conversion history database.
type HistoryConfig struct {
	// DBPath is the SQLite database file (default ".textile2bbcode/history.db").
	DBPath string `json:"db_path" yaml:"db_path"`

	// MaxResults is the default number of records listed (default 50).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// Config groups the settings read from textile2bbcode.yaml.
type Config struct {
	Conversion ConversionConfig `json:"conversion" yaml:"conversion"`
	History    HistoryConfig    `json:"history" yaml:"history"`
}
