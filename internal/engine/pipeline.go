package engine

// pipeline.go - per-file inference and the ordered run loop

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leapseed/internal/naming"
	"github.com/leapstack-labs/leapseed/internal/source"
	"github.com/leapstack-labs/leapseed/pkg/coerce"
	"github.com/leapstack-labs/leapseed/pkg/core"
	"github.com/leapstack-labs/leapseed/pkg/infer"
	"github.com/leapstack-labs/leapseed/pkg/prisma"
)

// FileResult is the outcome of processing one input file.
type FileResult struct {
	Source    source.File
	Model     core.Model
	Decisions []core.ColumnDecision
	Records   []core.Record
	// Schema is the rendered model block
	Schema string
	// OutputPath is where the records were (or would be) written
	OutputPath string
	// SHA256 is the digest of the encoded records
	SHA256   string
	Duration time.Duration
	// Err is set for files skipped under ContinueOnError
	Err error

	// data is the encoded artifact, held until all workers finish
	data []byte
}

// RunResult summarizes a pipeline run.
type RunResult struct {
	// RunID is the ledger ID, empty without a store
	RunID string
	// Files are in processing order
	Files []*FileResult
	// Schema is the full schema document
	Schema     string
	SchemaPath string
	Duration   time.Duration
}

// Failed returns the files that failed under ContinueOnError.
func (r *RunResult) Failed() []*FileResult {
	var failed []*FileResult
	for _, f := range r.Files {
		if f.Err != nil {
			failed = append(failed, f)
		}
	}
	return failed
}

// Models returns the models of successfully processed files.
func (r *RunResult) Models() []core.Model {
	var models []core.Model
	for _, f := range r.Files {
		if f.Err == nil {
			models = append(models, f.Model)
		}
	}
	return models
}

// Run processes every eligible input file and writes the record artifacts
// and the schema document. Files are processed concurrently but the schema
// document always follows file-name order.
func (e *Engine) Run(ctx context.Context) (*RunResult, error) {
	start := time.Now()

	runID, err := e.beginRun()
	if err != nil {
		return nil, err
	}

	result, err := e.run(ctx, runID)
	e.endRun(runID, err)
	if result != nil {
		result.Duration = time.Since(start)
	}
	return result, err
}

func (e *Engine) run(ctx context.Context, runID string) (*RunResult, error) {
	files, err := e.InputFiles()
	if err != nil {
		return nil, err
	}
	e.logger.Info("discovered input files", "count", len(files), "input_dir", e.cfg.InputDir)

	if !e.cfg.DryRun {
		if err := e.prepareOutputs(); err != nil {
			return nil, err
		}
	}

	results := make([]*FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)
	for i, f := range files {
		g.Go(func() error {
			res, err := e.processAndEncode(gctx, f)
			if err == nil {
				results[i] = res
				return nil
			}
			if !e.cfg.ContinueOnError {
				return err
			}
			e.logger.Warn("skipping file", "file", f.Name, "error", err)
			results[i] = &FileResult{Source: f, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Artifacts are written in file order so that when two files share a
	// model name the later file's records are the ones left on disk.
	if err := e.writeArtifacts(runID, results); err != nil {
		return nil, err
	}

	result := &RunResult{RunID: runID, Files: results, SchemaPath: e.cfg.SchemaPath}
	result.Schema = assembleSchema(results)

	if !e.cfg.DryRun {
		if err := writeFile(e.cfg.SchemaPath, []byte(result.Schema)); err != nil {
			return nil, err
		}
		e.markWritten(e.cfg.SchemaPath)
		e.logger.Info("wrote schema document", "path", e.cfg.SchemaPath, "models", len(result.Models()))
	}

	var errs []error
	for _, f := range result.Failed() {
		errs = append(errs, fmt.Errorf("%s: %w", f.Source.Name, f.Err))
	}
	return result, errors.Join(errs...)
}

// writeArtifacts writes the encoded records of every successful file, in
// slice order, and records each one in the ledger.
func (e *Engine) writeArtifacts(runID string, results []*FileResult) error {
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		if !e.cfg.DryRun {
			if err := writeFile(res.OutputPath, res.data); err != nil {
				if !e.cfg.ContinueOnError {
					return err
				}
				e.logger.Warn("skipping file", "file", res.Source.Name, "error", err)
				res.Err = err
				continue
			}
			e.markWritten(res.OutputPath)
		}
		res.data = nil
		if err := e.recordArtifact(runID, res); err != nil {
			return err
		}
	}
	return nil
}

// assembleSchema renders the document for the successful files in file order.
func assembleSchema(results []*FileResult) string {
	models := make([]core.Model, 0, len(results))
	for _, r := range results {
		if r.Err == nil {
			models = append(models, r.Model)
		}
	}
	return prisma.RenderDocument(models)
}

func (e *Engine) prepareOutputs() error {
	if err := os.MkdirAll(e.cfg.OutputDir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if dir := filepath.Dir(e.cfg.SchemaPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create schema directory: %w", err)
		}
	}
	return nil
}

// processAndEncode runs ProcessFile and encodes the records. Nothing is
// written here.
func (e *Engine) processAndEncode(ctx context.Context, f source.File) (*FileResult, error) {
	res, err := e.ProcessFile(ctx, f)
	if err != nil {
		return nil, err
	}

	data, err := e.encodeRecords(res.Records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode records for %s: %w", f.Name, err)
	}
	sum := sha256.Sum256(data)
	res.SHA256 = hex.EncodeToString(sum[:])
	res.data = data

	e.logger.Info("processed file",
		"file", f.Name,
		"model", res.Model.Name,
		"columns", len(res.Model.Columns),
		"rows", len(res.Records),
		"duration", res.Duration)
	return res, nil
}

// ProcessFile reads one file and infers its model, records and schema
// block. It writes nothing.
func (e *Engine) ProcessFile(ctx context.Context, f source.File) (*FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	table, err := source.ReadFile(f.Path, source.ReadOptions{Delimiter: e.cfg.Delimiter})
	if err != nil {
		return nil, err
	}

	model := BuildModel(f.Name, table)
	raws := NormalizeRows(table)
	decisions := infer.ClassifyModel(model)

	res := &FileResult{
		Source:     f,
		Model:      model,
		Decisions:  decisions,
		Records:    coerce.Rows(raws, decisions),
		Schema:     prisma.RenderDecisions(model.Name, decisions),
		OutputPath: e.outputPath(model.Name),
	}
	res.Duration = time.Since(start)
	return res, nil
}

// BuildModel names the model after the file and takes its columns from the
// normalized keys of the first row. A table without rows has no columns.
func BuildModel(fileName string, table *source.Table) core.Model {
	model := core.Model{Name: naming.ModelName(fileName), Columns: []string{}}
	seen := make(map[string]bool)
	for _, key := range table.Keys() {
		col := naming.Camel(key)
		if seen[col] {
			continue
		}
		seen[col] = true
		model.Columns = append(model.Columns, col)
	}
	return model
}

// NormalizeRows renames every row's keys to camel case. When two headers
// normalize to the same name, the later header wins.
func NormalizeRows(table *source.Table) []core.RawRow {
	normalized := make([]string, len(table.Header))
	for i, h := range table.Header {
		normalized[i] = naming.Camel(h)
	}

	raws := make([]core.RawRow, len(table.Rows))
	for i, row := range table.Rows {
		raw := make(core.RawRow, len(row))
		for j, h := range table.Header {
			if v, ok := row[h]; ok {
				raw[normalized[j]] = v
			}
		}
		raws[i] = raw
	}
	return raws
}

func (e *Engine) outputPath(model string) string {
	return filepath.Join(e.cfg.OutputDir, model+"."+string(e.cfg.Format))
}

func (e *Engine) encodeRecords(records []core.Record) ([]byte, error) {
	if records == nil {
		records = []core.Record{}
	}
	switch e.cfg.Format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return json.Marshal(records)
	}
}

// writeFile creates or truncates path.
func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
