package git

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/pagestrap/internal/testutil/testutils"
)

func TestCloneOrPullClones(t *testing.T) {
	remote := testutils.SeedBareRemote(t, map[string]string{"pyproject.toml": "[project]\n"})
	dest := filepath.Join(t.TempDir(), "checkout")

	res, err := NewClient(nil).CloneOrPull(context.Background(), remote.URL, dest, "")
	require.NoError(t, err)
	require.True(t, res.Cloned)
	require.Equal(t, dest, res.Path)

	head, err := remote.Seed.Head()
	require.NoError(t, err)
	require.Equal(t, head.Hash().String(), res.Commit)
	testutils.NewFileAssertions(t, dest).Exists("pyproject.toml")
}

func TestCloneOrPullFastForwards(t *testing.T) {
	remote := testutils.SeedBareRemote(t, map[string]string{"pyproject.toml": "[project]\n"})
	dest := filepath.Join(t.TempDir(), "checkout")
	client := NewClient(nil)

	_, err := client.CloneOrPull(context.Background(), remote.URL, dest, "")
	require.NoError(t, err)

	want := remote.Commit(t, "b.txt", "b")

	res, err := client.CloneOrPull(context.Background(), remote.URL, dest, "")
	require.NoError(t, err)
	require.False(t, res.Cloned)
	require.False(t, res.UpToDate)
	require.Equal(t, want.String(), res.Commit)
	testutils.NewFileAssertions(t, dest).Contains("b.txt", "b")
}

func TestCloneOrPullAlreadyUpToDate(t *testing.T) {
	remote := testutils.SeedBareRemote(t, map[string]string{"pyproject.toml": "[project]\n"})
	dest := filepath.Join(t.TempDir(), "checkout")
	client := NewClient(nil)

	_, err := client.CloneOrPull(context.Background(), remote.URL, dest, "")
	require.NoError(t, err)

	res, err := client.CloneOrPull(context.Background(), remote.URL, dest, "")
	require.NoError(t, err)
	require.True(t, res.UpToDate)
}

func TestCloneOrPullMissingRemote(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "checkout")
	_, err := NewClient(nil).CloneOrPull(context.Background(), filepath.Join(t.TempDir(), "nope.git"), dest, "")
	require.Error(t, err)

	var opErr *OpError
	require.ErrorAs(t, err, &opErr)
	require.Equal(t, "clone", opErr.Op)
}
