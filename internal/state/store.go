// Package state keeps a SQLite ledger of pipeline runs and the artifacts
// each run wrote.
//
// Core types are defined in pkg/core and re-exported here via type aliases.
package state

import (
	"github.com/leapstack-labs/leapseed/pkg/core"
)

type (
	// Store is an alias for core.Store.
	Store = core.Store

	// RunStatus is an alias for core.RunStatus.
	RunStatus = core.RunStatus

	// Run is an alias for core.Run.
	Run = core.Run

	// Artifact is an alias for core.Artifact.
	Artifact = core.Artifact
)

// Re-exported status constants.
const (
	RunStatusRunning   = core.RunStatusRunning
	RunStatusCompleted = core.RunStatusCompleted
	RunStatusFailed    = core.RunStatusFailed
)

var _ Store = (*SQLiteStore)(nil)
