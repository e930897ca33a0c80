package state

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapseed/internal/testutil"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(testutil.NewTestLogger(t))
	require.NoError(t, store.Open(":memory:"))
	require.NoError(t, store.InitSchema())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_OpenClose(t *testing.T) {
	store := NewSQLiteStore(nil)

	require.NoError(t, store.Open(":memory:"))
	require.NoError(t, store.Close())
}

func TestSQLiteStore_InitSchema(t *testing.T) {
	store := setupTestStore(t)

	for _, table := range []string{"runs", "artifacts"} {
		rows, err := store.db.Query("SELECT 1 FROM " + table + " LIMIT 1")
		if assert.NoError(t, err, "table %s", table) {
			_ = rows.Close()
		}
	}

	version, err := store.GetMigrationVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	// Re-running migrations is a no-op.
	require.NoError(t, store.InitSchema())
}

func TestSQLiteStore_FileBacked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	store := NewSQLiteStore(nil)
	require.NoError(t, store.Open(path))
	require.NoError(t, store.InitSchema())
	run, err := store.CreateRun("data/csv")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened := NewSQLiteStore(nil)
	require.NoError(t, reopened.Open(path))
	defer reopened.Close()
	got, err := reopened.GetRun(run.ID)
	require.NoError(t, err)
	assert.Equal(t, "data/csv", got.InputDir)
}

func TestSQLiteStore_RunLifecycle(t *testing.T) {
	store := setupTestStore(t)

	run, err := store.CreateRun("data/csv")
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, RunStatusRunning, run.Status)

	require.NoError(t, store.CompleteRun(run.ID, RunStatusFailed, "boom"))

	got, err := store.GetRun(run.ID)
	require.NoError(t, err)
	assert.Equal(t, RunStatusFailed, got.Status)
	assert.Equal(t, "boom", got.Error)
	require.NotNil(t, got.CompletedAt)
	assert.WithinDuration(t, run.StartedAt, got.StartedAt, time.Millisecond)
}

func TestSQLiteStore_GetRunNotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.GetRun("missing")
	assert.ErrorContains(t, err, "run not found")

	err = store.CompleteRun("missing", RunStatusCompleted, "")
	assert.ErrorContains(t, err, "run not found")
}

func TestSQLiteStore_ListRuns(t *testing.T) {
	store := setupTestStore(t)

	var ids []string
	for i := 0; i < 3; i++ {
		run, err := store.CreateRun("in")
		require.NoError(t, err)
		ids = append(ids, run.ID)
		time.Sleep(2 * time.Millisecond)
	}

	runs, err := store.ListRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, ids[2], runs[0].ID)
	assert.Equal(t, ids[1], runs[1].ID)
	assert.Nil(t, runs[0].CompletedAt)
}

func TestSQLiteStore_Artifacts(t *testing.T) {
	store := setupTestStore(t)
	run, err := store.CreateRun("in")
	require.NoError(t, err)

	users := &Artifact{RunID: run.ID, SourcePath: "in/users.csv", Model: "Users", OutputPath: "out/Users.json", Rows: 1, Columns: 4, SHA256: "aa"}
	authors := &Artifact{RunID: run.ID, SourcePath: "in/authors.csv", Model: "Authors", OutputPath: "out/Authors.json", Rows: 0, Columns: 0, SHA256: "bb"}
	require.NoError(t, store.RecordArtifact(users))
	require.NoError(t, store.RecordArtifact(authors))

	users.Rows = 2
	require.NoError(t, store.RecordArtifact(users))

	got, err := store.GetArtifacts(run.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Authors", got[0].Model)
	assert.Equal(t, *users, *got[1])

	none, err := store.GetArtifacts("other")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSQLiteStore_NotOpened(t *testing.T) {
	store := NewSQLiteStore(nil)

	_, err := store.CreateRun("in")
	assert.Error(t, err)
	_, err = store.ListRuns(1)
	assert.Error(t, err)
	assert.Error(t, store.RecordArtifact(&Artifact{}))
	assert.Error(t, store.InitSchema())
}

func TestSQLiteStore_CreateRunExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO runs").WillReturnError(errors.New("disk full"))

	store := NewSQLiteStoreWithDB(db, testutil.NewTestLogger(t))
	_, err = store.CreateRun("in")

	assert.ErrorContains(t, err, "failed to create run")
	assert.ErrorContains(t, err, "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_RecordArtifactExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT OR REPLACE INTO artifacts").WillReturnError(errors.New("locked"))

	store := NewSQLiteStoreWithDB(db, nil)
	err = store.RecordArtifact(&Artifact{RunID: "run-1", SourcePath: "in/a.csv", Model: "A", OutputPath: "out/A.json", Rows: 3, Columns: 2, SHA256: "cc"})

	assert.ErrorContains(t, err, "failed to record artifact")
	assert.NoError(t, mock.ExpectationsWereMet())
}
