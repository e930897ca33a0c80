// Package config provides configuration management for the leapseed CLI.
package config

// Config holds all CLI configuration options.
type Config struct {
	// InputDir is scanned for delimited-text files
	InputDir string `koanf:"input_dir"`
	// OutputDir receives one record artifact per input file
	OutputDir string `koanf:"output_dir"`
	// SchemaPath is the consolidated schema document
	SchemaPath string `koanf:"schema_path"`
	// Exclude skips input files whose name contains it (case-insensitive)
	Exclude string `koanf:"exclude"`
	// Delimiter is a single character, or "tab"
	Delimiter string `koanf:"delimiter"`
	// Format is the record artifact encoding: json or yaml
	Format          string `koanf:"format"`
	Workers         int    `koanf:"workers"`
	ContinueOnError bool   `koanf:"continue_on_error"`
	// StatePath is the run ledger database; empty disables the ledger
	StatePath    string `koanf:"state_path"`
	Verbose      bool   `koanf:"verbose"`
	OutputFormat string `koanf:"output"`

	// ProjectRoot anchors relative paths. It is not read from the file.
	ProjectRoot string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultInputDir   = "data/csv"
	DefaultOutputDir  = "data/json"
	DefaultSchemaPath = "data/models.prisma"
	DefaultDelimiter  = ","
	DefaultFormat     = "json"
	DefaultWorkers    = 4
	DefaultStateFile  = ".leapseed/state.db"
	DefaultOutput     = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)

// Config file names, in lookup order.
const (
	ConfigFileName    = "leapseed.yaml"
	ConfigFileNameAlt = "leapseed.yml"
)

// EnvPrefix prefixes environment variable overrides (LEAPSEED_INPUT_DIR).
const EnvPrefix = "LEAPSEED_"
