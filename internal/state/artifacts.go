package state

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/leapseed/pkg/core"
)

// RecordArtifact stores an artifact written by a run. Recording the same
// source twice for a run replaces the earlier entry.
func (s *SQLiteStore) RecordArtifact(a *core.Artifact) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	s.logger.Debug("recording artifact",
		slog.String("run_id", a.RunID),
		slog.String("model", a.Model),
		slog.Int("rows", a.Rows))

	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO artifacts
		 (run_id, source_path, model, output_path, rows, columns, sha256)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.RunID, a.SourcePath, a.Model, a.OutputPath, a.Rows, a.Columns, a.SHA256,
	)
	if err != nil {
		return fmt.Errorf("failed to record artifact: %w", err)
	}
	return nil
}

// GetArtifacts returns the artifacts of a run ordered by source path.
func (s *SQLiteStore) GetArtifacts(runID string) ([]*core.Artifact, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.Query(
		`SELECT run_id, source_path, model, output_path, rows, columns, sha256
		 FROM artifacts WHERE run_id = ? ORDER BY source_path`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get artifacts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var artifacts []*core.Artifact
	for rows.Next() {
		var a core.Artifact
		if err := rows.Scan(&a.RunID, &a.SourcePath, &a.Model, &a.OutputPath, &a.Rows, &a.Columns, &a.SHA256); err != nil {
			return nil, fmt.Errorf("failed to scan artifact: %w", err)
		}
		artifacts = append(artifacts, &a)
	}
	return artifacts, rows.Err()
}
