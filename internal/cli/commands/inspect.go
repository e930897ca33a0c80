package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/leapseed/internal/cli/output"
	"github.com/leapstack-labs/leapseed/internal/engine"
	"github.com/leapstack-labs/leapseed/internal/source"
	"github.com/leapstack-labs/leapseed/pkg/core"
	"github.com/leapstack-labs/leapseed/pkg/infer"
	"github.com/spf13/cobra"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [file...]",
		Short: "Show the inferred model of CSV files",
		Long: `Show how each column of a CSV file is classified and the schema
block it produces. Nothing is written.

Without arguments, every file in the input directory is inspected.`,
		Example: `  # Inspect all input files
  leapseed inspect

  # Inspect one file as JSON
  leapseed inspect data/csv/posts.csv -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args)
		},
	}
	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	cc, cleanup, err := NewCommandContext(cmd, engineOptions{dryRun: true})
	if err != nil {
		return err
	}
	defer cleanup()

	var files []source.File
	if len(args) == 0 {
		files, err = cc.Engine.InputFiles()
		if err != nil {
			return err
		}
	} else {
		for _, arg := range args {
			files = append(files, source.File{Name: filepath.Base(arg), Path: arg})
		}
	}

	results := make([]*engine.FileResult, 0, len(files))
	for _, f := range files {
		res, err := cc.Engine.ProcessFile(cmd.Context(), f)
		if err != nil {
			return err
		}
		results = append(results, res)
	}

	r := cc.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(inspectOutput(results))
	case output.ModeMarkdown:
		inspectMarkdown(r, results)
	default:
		inspectText(r, results)
	}
	return nil
}

func inspectOutput(results []*engine.FileResult) output.InspectOutput {
	out := output.InspectOutput{
		Rules:  infer.Rules(),
		Models: make([]output.ModelInfo, 0, len(results)),
	}
	for _, res := range results {
		info := output.ModelInfo{
			Source:  res.Source.Name,
			Model:   res.Model.Name,
			Rows:    len(res.Records),
			Columns: make([]output.ColumnInfo, 0, len(res.Decisions)),
			Schema:  res.Schema,
		}
		for _, d := range res.Decisions {
			info.Columns = append(info.Columns, output.ColumnInfo{
				Name:       d.Name,
				Type:       d.Type.String(),
				PrismaType: d.Type.PrismaType(),
				PrimaryKey: d.PrimaryKey,
				Relation:   relationText(d),
				Rule:       d.Rule,
			})
		}
		out.Models = append(out.Models, info)
	}
	return out
}

func relationText(d core.ColumnDecision) string {
	if d.Relation == nil {
		return ""
	}
	return fmt.Sprintf("%s -> %s.%s", d.Relation.Field, d.Relation.TargetModel, d.Relation.References)
}

func decisionRows(decisions []core.ColumnDecision) [][]string {
	rows := make([][]string, 0, len(decisions))
	for _, d := range decisions {
		rows = append(rows, []string{d.Name, d.Type.PrismaType(), d.Rule, relationText(d)})
	}
	return rows
}

var decisionHeader = []string{"Column", "Type", "Rule", "Relation"}

func ruleOrder() string {
	return strings.Join(infer.Rules(), ", ")
}

func inspectText(r *output.Renderer, results []*engine.FileResult) {
	if len(results) == 0 {
		r.Muted("No input files found")
		return
	}
	r.Muted("Rule order: " + ruleOrder())
	r.Println("")
	for i, res := range results {
		if i > 0 {
			r.Println("")
		}
		r.Header(1, fmt.Sprintf("%s (%s, %d rows)", res.Model.Name, res.Source.Name, len(res.Records)))
		r.Table(decisionHeader, decisionRows(res.Decisions))
		r.Println("")
		r.Printf("%s", res.Schema)
	}
}

func inspectMarkdown(r *output.Renderer, results []*engine.FileResult) {
	r.Println(output.FormatHeader(1, fmt.Sprintf("Models (%d total)", len(results))))
	r.Println("")
	r.Println(output.FormatKeyValue("Rule order", ruleOrder()))
	r.Println("")
	for _, res := range results {
		r.Println(output.FormatHeader(2, res.Model.Name))
		r.Println(output.FormatKeyValue("File", res.Source.Name))
		r.Println(output.FormatKeyValue("Rows", fmt.Sprintf("%d", len(res.Records))))
		r.Println("")
		r.Table(decisionHeader, decisionRows(res.Decisions))
		r.Println("")
		r.Println(output.FormatCodeBlock("prisma", res.Schema))
		r.Println("")
	}
}
