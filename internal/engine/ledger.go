package engine

import "github.com/leapstack-labs/leapseed/pkg/core"

func (e *Engine) beginRun() (string, error) {
	if e.store == nil || e.cfg.DryRun {
		return "", nil
	}
	run, err := e.store.CreateRun(e.cfg.InputDir)
	if err != nil {
		return "", err
	}
	e.logger.Debug("started run", "run_id", run.ID)
	return run.ID, nil
}

func (e *Engine) endRun(runID string, runErr error) {
	if runID == "" {
		return
	}
	status, msg := core.RunStatusCompleted, ""
	if runErr != nil {
		status, msg = core.RunStatusFailed, runErr.Error()
	}
	if err := e.store.CompleteRun(runID, status, msg); err != nil {
		e.logger.Warn("failed to complete run", "run_id", runID, "error", err)
	}
}

func (e *Engine) recordArtifact(runID string, res *FileResult) error {
	if runID == "" {
		return nil
	}
	return e.store.RecordArtifact(&core.Artifact{
		RunID:      runID,
		SourcePath: res.Source.Path,
		Model:      res.Model.Name,
		OutputPath: res.OutputPath,
		Rows:       len(res.Records),
		Columns:    len(res.Model.Columns),
		SHA256:     res.SHA256,
	})
}
