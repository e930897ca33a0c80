// Package engine runs the CSV-to-schema pipeline: it lists input files,
// infers a model for each, writes typed record artifacts and assembles the
// consolidated schema document.
package engine

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/leapstack-labs/leapseed/internal/state"
)

// Format is the encoding of record artifacts.
type Format string

// Supported record formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatYAML:
		return Format(s), nil
	case "":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown record format %q (want json or yaml)", s)
	}
}

const (
	defaultWorkers  = 4
	defaultDebounce = 250 * time.Millisecond
)

// Config holds engine configuration.
type Config struct {
	// InputDir is the directory scanned for delimited-text files
	InputDir string
	// OutputDir receives one record artifact per input file
	OutputDir string
	// SchemaPath is the consolidated schema document
	SchemaPath string
	// Exclude skips files whose name contains it, ignoring case
	Exclude string
	// Delimiter separates fields; zero means ','
	Delimiter rune
	// Format selects the record artifact encoding
	Format Format
	// Workers bounds how many files are processed at once
	Workers int
	// ContinueOnError keeps going past per-file failures and reports them
	// together instead of stopping at the first one
	ContinueOnError bool
	// DryRun computes everything but writes nothing
	DryRun bool
	// WatchDebounce is the quiet period before a watched change triggers a run
	WatchDebounce time.Duration
	// Store records run history (optional)
	Store state.Store
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// Engine orchestrates pipeline runs.
type Engine struct {
	cfg    Config
	store  state.Store
	logger *slog.Logger

	mu sync.Mutex
	// written holds the absolute paths of every file a run has written
	written map[string]bool
}

// New creates an engine, applying defaults for unset fields.
func New(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if cfg.InputDir == "" {
		return nil, fmt.Errorf("input directory is required")
	}
	if !cfg.DryRun && (cfg.OutputDir == "" || cfg.SchemaPath == "") {
		return nil, fmt.Errorf("output directory and schema path are required")
	}

	format, err := ParseFormat(string(cfg.Format))
	if err != nil {
		return nil, err
	}
	cfg.Format = format

	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.Delimiter == 0 {
		cfg.Delimiter = ','
	}
	if cfg.WatchDebounce <= 0 {
		cfg.WatchDebounce = defaultDebounce
	}

	logger.Debug("initializing engine",
		"input_dir", cfg.InputDir,
		"output_dir", cfg.OutputDir,
		"workers", cfg.Workers,
		"format", cfg.Format)

	return &Engine{cfg: cfg, store: cfg.Store, logger: logger, written: make(map[string]bool)}, nil
}

// Config returns the effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Close releases the run ledger, if any.
func (e *Engine) Close() error {
	if e.store != nil {
		return e.store.Close()
	}
	return nil
}
