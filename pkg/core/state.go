package core

import "time"

// RunStatus is the lifecycle state of a pipeline run.
type RunStatus string

// Run status constants.
const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run is one invocation of the pipeline.
type Run struct {
	ID          string     `json:"id"`
	InputDir    string     `json:"input_dir"`
	Status      RunStatus  `json:"status"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// Artifact is a record artifact written during a run.
type Artifact struct {
	RunID      string `json:"run_id"`
	SourcePath string `json:"source_path"`
	Model      string `json:"model"`
	OutputPath string `json:"output_path"`
	Rows       int    `json:"rows"`
	Columns    int    `json:"columns"`
	// SHA256 is the hex digest of the artifact bytes
	SHA256 string `json:"sha256"`
}

// Store records run history.
type Store interface {
	Open(path string) error
	Close() error
	InitSchema() error

	CreateRun(inputDir string) (*Run, error)
	GetRun(id string) (*Run, error)
	CompleteRun(id string, status RunStatus, errMsg string) error
	ListRuns(limit int) ([]*Run, error)

	RecordArtifact(a *Artifact) error
	GetArtifacts(runID string) ([]*Artifact, error)
}
