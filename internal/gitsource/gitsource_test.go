package gitsource

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalPath(t *testing.T) {
	testCases := []struct {
		url      string
		expected string
		wantErr  bool
	}{
		{url: "https://github.com/conorfennell/knols.git", expected: "repos/github.com/conorfennell/knols"},
		{url: "https://gitlab.com:8443/team/notes", expected: "repos/gitlab.com/team/notes"},
		{url: "git@github.com:conorfennell/knols.git", expected: "repos/github.com/conorfennell/knols"},
		{url: "ssh://git@example.org/srv/knols.git", expected: "repos/example.org/srv/knols"},
		{url: "https://github.com/", wantErr: true},
		{url: "./notes", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.url, func(t *testing.T) {
			got, err := LocalPath("repos", tc.url)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tc.expected), got)
		})
	}
}

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote("https://github.com/conorfennell/knols.git"))
	assert.True(t, IsRemote("git@github.com:conorfennell/knols.git"))
	assert.False(t, IsRemote("notes"))
	assert.False(t, IsRemote("/home/me/notes"))
	assert.False(t, IsRemote("C:/notes"))
	assert.False(t, IsRemote("./dir@v2:old"))
}

// initRepo creates a repository with one committed markdown file and returns its path.
func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "knols.md"), []byte("Q: one\nA: 1\n"), 0o644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("knols.md")
	require.NoError(t, err)
	_, err = wt.Commit("add knols", &git.CommitOptions{
		Author: &object.Signature{Name: "knolpack", Email: "knolpack@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return dir
}

func TestSyncClonesThenPulls(t *testing.T) {
	origin := initRepo(t)
	local := filepath.Join(t.TempDir(), "checkout")

	require.NoError(t, Sync(context.Background(), origin, local))
	assert.FileExists(t, filepath.Join(local, "knols.md"))

	require.NoError(t, Sync(context.Background(), origin, local))
}
