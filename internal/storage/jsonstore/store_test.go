package jsonstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID    string `json:"id"`
	Score int    `json:"score"`
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	return store
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	saved := []record{{ID: "a", Score: 1}, {ID: "b", Score: 2}}
	require.NoError(t, store.Save("records", saved))

	var loaded []record
	require.NoError(t, store.Load("records", &loaded))
	assert.Equal(t, saved, loaded)
}

func TestLoadMissingDocumentLeavesValueUntouched(t *testing.T) {
	store := newTestStore(t)

	loaded := []record{{ID: "seed"}}
	require.NoError(t, store.Load("missing", &loaded))
	assert.Equal(t, []record{{ID: "seed"}}, loaded)
}

func TestSaveSnapshotsPreviousVersion(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save("records", []record{{ID: "v1"}}))
	backups, err := store.ListBackups("records")
	require.NoError(t, err)
	assert.Empty(t, backups, "first save has nothing to snapshot")

	require.NoError(t, store.Save("records", []record{{ID: "v2"}}))
	backups, err = store.ListBackups("records")
	require.NoError(t, err)
	require.Len(t, backups, 1)

	var loaded []record
	require.NoError(t, store.Load("records", &loaded))
	assert.Equal(t, "v2", loaded[0].ID)
}

func TestBackupAllAndList(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save("users", []record{{ID: "u"}}))
	require.NoError(t, store.Save("courses", []record{{ID: "c"}}))

	require.NoError(t, store.BackupAll())

	all, err := store.ListBackups("")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	users, err := store.ListBackups("users")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Contains(t, users[0], "users_")
}

func TestCleanupBackupsRemovesOnlyOldFiles(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save("users", []record{{ID: "u"}}))
	require.NoError(t, store.BackupAll())

	old := filepath.Join(store.backupDir, "users_20200101_000000.json")
	require.NoError(t, os.WriteFile(old, []byte("[]"), 0o644))
	stale := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(old, stale, stale))

	removed, err := store.CleanupBackups(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	remaining, err := store.ListBackups("users")
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestExportCopiesDocuments(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save("users", []record{{ID: "u"}}))

	dest := filepath.Join(t.TempDir(), "export")
	require.NoError(t, store.Export(dest))

	data, err := os.ReadFile(filepath.Join(dest, "users.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"u"`)
}
