package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2026, 10, 15, 9, 30, 0, 0, time.FixedZone("CEST", 2*60*60))
}

func TestJSONStore_Lifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".pagestrap", "state.json")
	store := NewJSONStore(path).WithClock(fixedClock)

	exists, err := store.Exists()
	require.NoError(t, err)
	require.False(t, exists)

	_, err = store.Load()
	require.ErrorIs(t, err, ErrNotBootstrapped)

	rec := Record{
		GHUser:     "acme",
		RepoName:   "proj",
		RepoURL:    "https://github.com/acme/proj.git",
		PagesBase:  "https://acme.github.io/proj",
		DLShSHA256: "deadbeef",
	}
	require.NoError(t, store.Save(rec))

	exists, err = store.Exists()
	require.NoError(t, err)
	require.True(t, exists)

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, "acme", loaded.GHUser)
	require.Equal(t, time.Date(2026, 10, 15, 7, 30, 0, 0, time.UTC), loaded.Timestamp)

	removed, err := store.Delete()
	require.NoError(t, err)
	require.True(t, removed)
	removed, err = store.Delete()
	require.NoError(t, err)
	require.False(t, removed)
}

func TestJSONStore_WireFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	store := NewJSONStore(path).WithClock(fixedClock)
	require.NoError(t, store.Save(Record{GHUser: "acme", RepoName: "proj"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Equal(t, "2026-10-15T07:30:00Z", raw["timestamp"])
	for _, key := range []string{"gh_user", "repo_name", "repo_url", "pages_base", "dl_sh_sha256"} {
		require.Contains(t, raw, key)
	}
	require.Len(t, raw, 6)
}

func TestJSONStore_SaveOverwritesWithoutMerging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	store := NewJSONStore(path).WithClock(fixedClock)

	require.NoError(t, store.Save(Record{GHUser: "acme", RepoName: "proj", DLShSHA256: "old"}))
	require.NoError(t, store.Save(Record{GHUser: "other", RepoName: "proj2"}))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, "other", loaded.GHUser)
	require.Empty(t, loaded.DLShSHA256, "fields from the previous record must not survive")
}

func TestJSONStore_CorruptRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewJSONStore(path).Load()
	require.ErrorContains(t, err, "decode state record")
}
