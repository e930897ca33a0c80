package output

// FileSummary describes one processed input file.
type FileSummary struct {
	Source     string `json:"source"`
	Model      string `json:"model,omitempty"`
	OutputPath string `json:"output_path,omitempty"`
	Rows       int    `json:"rows"`
	Columns    int    `json:"columns"`
	SHA256     string `json:"sha256,omitempty"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

// GenerateOutput is the JSON form of a generate run.
type GenerateOutput struct {
	RunID      string        `json:"run_id,omitempty"`
	DryRun     bool          `json:"dry_run"`
	SchemaPath string        `json:"schema_path,omitempty"`
	Schema     string        `json:"schema,omitempty"`
	Files      []FileSummary `json:"files"`
	Summary    Summary       `json:"summary"`
}

// Summary counts the outcome of a run.
type Summary struct {
	Total      int   `json:"total"`
	Succeeded  int   `json:"succeeded"`
	Failed     int   `json:"failed"`
	DurationMS int64 `json:"duration_ms"`
}

// ColumnInfo is one classified column.
type ColumnInfo struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	PrismaType string `json:"prisma_type"`
	PrimaryKey bool   `json:"primary_key,omitempty"`
	Relation   string `json:"relation,omitempty"`
	Rule       string `json:"rule"`
}

// ModelInfo is the inferred model of one input file.
type ModelInfo struct {
	Source  string       `json:"source"`
	Model   string       `json:"model"`
	Rows    int          `json:"rows"`
	Columns []ColumnInfo `json:"columns"`
	Schema  string       `json:"schema"`
}

// InspectOutput is the JSON form of inspect.
type InspectOutput struct {
	// Rules lists the column rules in the order they are tried
	Rules  []string    `json:"rules"`
	Models []ModelInfo `json:"models"`
}

// RunInfo is one ledger entry.
type RunInfo struct {
	ID          string         `json:"id"`
	InputDir    string         `json:"input_dir"`
	Status      string         `json:"status"`
	StartedAt   string         `json:"started_at"`
	CompletedAt string         `json:"completed_at,omitempty"`
	Error       string         `json:"error,omitempty"`
	Artifacts   []ArtifactInfo `json:"artifacts,omitempty"`
}

// ArtifactInfo is one artifact recorded for a run.
type ArtifactInfo struct {
	Source     string `json:"source"`
	Model      string `json:"model"`
	OutputPath string `json:"output_path"`
	Rows       int    `json:"rows"`
	Columns    int    `json:"columns"`
	SHA256     string `json:"sha256"`
}

// HistoryOutput is the JSON form of history.
type HistoryOutput struct {
	Runs []RunInfo `json:"runs"`
}
