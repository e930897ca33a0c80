package commands

import (
	"fmt"
	"time"

	"github.com/leapstack-labs/leapseed/internal/cli/output"
	"github.com/leapstack-labs/leapseed/pkg/core"
	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recent generate runs",
		Long: `List recent generate runs from the run ledger. Given a run ID, show
the artifacts that run wrote.`,
		Example: `  # Last 10 runs
  leapseed history

  # Artifacts of one run
  leapseed history 3f2c9a1e-...`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, args, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of runs to show")
	return cmd
}

func runHistory(cmd *cobra.Command, args []string, limit int) error {
	cc, err := NewCommandContextWithoutEngine(cmd)
	if err != nil {
		return err
	}
	if cc.Cfg.StatePath == "" {
		return fmt.Errorf("run ledger is disabled (state_path is empty)")
	}

	store, err := openStore(cc.Cfg.StatePath, cc.Logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var runs []*core.Run
	if len(args) == 1 {
		run, err := store.GetRun(args[0])
		if err != nil {
			return err
		}
		runs = []*core.Run{run}
	} else {
		runs, err = store.ListRuns(limit)
		if err != nil {
			return err
		}
	}

	infos := make([]output.RunInfo, 0, len(runs))
	for _, run := range runs {
		info := runInfo(run)
		if len(args) == 1 {
			artifacts, err := store.GetArtifacts(run.ID)
			if err != nil {
				return err
			}
			for _, a := range artifacts {
				info.Artifacts = append(info.Artifacts, output.ArtifactInfo{
					Source:     a.SourcePath,
					Model:      a.Model,
					OutputPath: a.OutputPath,
					Rows:       a.Rows,
					Columns:    a.Columns,
					SHA256:     a.SHA256,
				})
			}
		}
		infos = append(infos, info)
	}

	r := cc.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(output.HistoryOutput{Runs: infos})
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Run History"))
		r.Println("")
	default:
		r.Header(1, "Run History")
	}

	if len(infos) == 0 {
		r.Println("No runs recorded in " + cc.Cfg.StatePath)
		return nil
	}

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, []string{info.ID, info.Status, info.StartedAt, info.InputDir, info.Error})
	}
	r.Table([]string{"Run", "Status", "Started", "Input", "Error"}, rows)

	if len(args) == 1 {
		r.Println("")
		arows := make([][]string, 0, len(infos[0].Artifacts))
		for _, a := range infos[0].Artifacts {
			arows = append(arows, []string{a.Source, a.Model, fmt.Sprintf("%d", a.Rows), fmt.Sprintf("%d", a.Columns), shortHash(a.SHA256)})
		}
		r.Table([]string{"Source", "Model", "Rows", "Columns", "SHA256"}, arows)
	}
	return nil
}

func runInfo(run *core.Run) output.RunInfo {
	info := output.RunInfo{
		ID:        run.ID,
		InputDir:  run.InputDir,
		Status:    string(run.Status),
		StartedAt: run.StartedAt.Format(time.RFC3339),
		Error:     run.Error,
	}
	if run.CompletedAt != nil {
		info.CompletedAt = run.CompletedAt.Format(time.RFC3339)
	}
	return info
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
