package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/leapstack-labs/leapseed/internal/cli/output"
	"github.com/leapstack-labs/leapseed/internal/engine"
	"github.com/spf13/cobra"
)

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	var (
		watch  bool
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate record files and the schema from CSV files",
		Long: `Read every CSV file in the input directory, infer a model from its
column names, write the typed records of each file to the output directory
and write one Prisma schema describing all models.

Column rules, first match wins:
  id          Int @id @default(autoincrement())
  isXxx       Boolean
  xxxId       Int with a relation to the plural of Xxx
  anything    String

Output adapts to environment:
  - Terminal: Styled, colored output
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # Generate from data/csv into data/json and data/models.prisma
  leapseed generate

  # Preview the schema without writing anything
  leapseed generate --dry-run

  # Regenerate whenever a CSV file changes
  leapseed generate --watch

  # Skip files containing "draft" and keep going past broken files
  leapseed generate --exclude draft --continue-on-error`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, watch, dryRun)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Regenerate when input files change")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the schema without writing files")

	return cmd
}

func runGenerate(cmd *cobra.Command, watch, dryRun bool) error {
	cc, cleanup, err := NewCommandContext(cmd, engineOptions{dryRun: dryRun})
	if err != nil {
		return err
	}
	defer cleanup()

	if err := cc.Cfg.ValidateDirectories(); err != nil {
		return err
	}

	r := cc.Renderer
	ctx := cmd.Context()

	if !watch {
		res, err := cc.Engine.Run(ctx)
		if res != nil {
			if rerr := renderGenerate(r, res, dryRun); rerr != nil {
				return rerr
			}
		}
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if r.EffectiveMode() == output.ModeText {
		r.Muted(fmt.Sprintf("Watching %s (Ctrl+C to stop)", cc.Cfg.InputDir))
	}
	return cc.Engine.Watch(ctx, func(res *engine.RunResult, err error) {
		if res != nil {
			_ = renderGenerate(r, res, dryRun)
		}
		if err != nil && !isCanceled(ctx) {
			r.Error(err.Error())
		}
	})
}

func isCanceled(ctx context.Context) bool {
	return ctx.Err() != nil
}

// renderGenerate prints a run result in the renderer's mode.
func renderGenerate(r *output.Renderer, res *engine.RunResult, dryRun bool) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(generateOutput(res, dryRun))
	case output.ModeMarkdown:
		generateMarkdown(r, res, dryRun)
	default:
		generateText(r, res, dryRun)
	}
	return nil
}

func generateOutput(res *engine.RunResult, dryRun bool) output.GenerateOutput {
	out := output.GenerateOutput{
		RunID:      res.RunID,
		DryRun:     dryRun,
		SchemaPath: res.SchemaPath,
		Files:      make([]output.FileSummary, 0, len(res.Files)),
	}
	if dryRun {
		out.Schema = res.Schema
	}
	for _, f := range res.Files {
		out.Files = append(out.Files, fileSummary(f))
	}
	out.Summary = summarize(res)
	return out
}

func fileSummary(f *engine.FileResult) output.FileSummary {
	fs := output.FileSummary{
		Source:     f.Source.Name,
		DurationMS: f.Duration.Milliseconds(),
	}
	if f.Err != nil {
		fs.Error = f.Err.Error()
		return fs
	}
	fs.Model = f.Model.Name
	fs.OutputPath = f.OutputPath
	fs.Rows = len(f.Records)
	fs.Columns = len(f.Model.Columns)
	fs.SHA256 = f.SHA256
	return fs
}

func summarize(res *engine.RunResult) output.Summary {
	failed := len(res.Failed())
	return output.Summary{
		Total:      len(res.Files),
		Succeeded:  len(res.Files) - failed,
		Failed:     failed,
		DurationMS: res.Duration.Milliseconds(),
	}
}

func generateText(r *output.Renderer, res *engine.RunResult, dryRun bool) {
	if dryRun {
		r.Header(1, "Schema (dry run)")
		r.Println("")
		r.Printf("%s", res.Schema)
		return
	}

	r.Header(1, "Generated")
	for _, f := range res.Files {
		if f.Err != nil {
			r.StatusLine(f.Source.Name, "failed", f.Err.Error())
			continue
		}
		r.StatusLine(f.Source.Name, "success",
			fmt.Sprintf("%s (%d rows) -> %s", f.Model.Name, len(f.Records), filepath.Base(f.OutputPath)))
	}

	r.Println("")
	s := summarize(res)
	if s.Failed > 0 {
		r.Warning(fmt.Sprintf("%d of %d files failed", s.Failed, s.Total))
	} else {
		r.Success(fmt.Sprintf("%d models written to %s in %s", s.Succeeded, res.SchemaPath, res.Duration.Round(time.Millisecond)))
	}
}

func generateMarkdown(r *output.Renderer, res *engine.RunResult, dryRun bool) {
	title := "Generated"
	if dryRun {
		title = "Generated (dry run)"
	}
	r.Println(output.FormatHeader(1, title))
	r.Println("")

	for _, f := range res.Files {
		r.Println(output.FormatHeader(2, f.Source.Name))
		if f.Err != nil {
			r.Println(output.FormatKeyValue("Error", f.Err.Error()))
			r.Println("")
			continue
		}
		r.Println(output.FormatKeyValue("Model", f.Model.Name))
		r.Println(output.FormatKeyValue("Rows", fmt.Sprintf("%d", len(f.Records))))
		r.Println(output.FormatKeyValue("Columns", strings.Join(f.Model.Columns, ", ")))
		if !dryRun {
			r.Println(output.FormatKeyValue("Output", f.OutputPath))
		}
		r.Println("")
	}

	if dryRun {
		r.Println(output.FormatCodeBlock("prisma", res.Schema))
		r.Println("")
	} else {
		r.Println(output.FormatKeyValue("Schema", res.SchemaPath))
	}
	s := summarize(res)
	r.Printf("**Total Files:** %d (%d failed)\n", s.Total, s.Failed)
}
