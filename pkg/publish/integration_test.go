package publish

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/bpineau/dirpush/pkg/remote"
	"github.com/bpineau/dirpush/pkg/store/git"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found, skipping")
	}
}

func gitIn(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %s: %s", strings.Join(args, " "), out)
}

// workdir returns a local repository whose current branch is master,
// whatever the git version's default branch name.
func workdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	gitIn(t, dir, "init")
	gitIn(t, dir, "symbolic-ref", "HEAD", "refs/heads/master")
	return dir
}

func realPublisher() *Publisher {
	log, _ := test.NewNullLogger()

	runner := git.New(log, false)
	runner.Stdout = new(bytes.Buffer)
	runner.Stderr = new(bytes.Buffer)
	runner.Stdin = nil
	runner.Author = "dirpush"
	runner.Email = "dirpush@localhost"
	runner.Timeout = time.Minute

	return New(log, runner)
}

func remoteCommit(t *testing.T, bare string) *object.Commit {
	t.Helper()
	repo, err := gogit.PlainOpen(bare)
	require.NoError(t, err)

	ref, err := repo.Reference(plumbing.NewBranchReferenceName("master"), true)
	require.NoError(t, err)

	commit, err := repo.CommitObject(ref.Hash())
	require.NoError(t, err)
	return commit
}

func remoteFile(t *testing.T, commit *object.Commit, name string) (string, bool) {
	t.Helper()
	f, err := commit.File(name)
	if err != nil {
		return "", false
	}
	content, err := f.Contents()
	require.NoError(t, err)
	return content, true
}

func TestPublishWithGit(t *testing.T) {
	requireGit(t)

	bare := t.TempDir()
	gitIn(t, bare, "init", "--bare")

	ctx := context.Background()
	p := realPublisher()
	url := bare

	// first publication: the branch doesn't exist on the remote yet
	src := workdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.txt"), []byte("one"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(src, "b.txt"), []byte("two"), 0600))
	require.NoError(t, p.Publish(ctx, src, remote.FromURL(url)))

	first := remoteCommit(t, bare)
	require.True(t, strings.HasPrefix(first.Message, "Update "))
	require.Equal(t, "dirpush", first.Author.Name)
	content, ok := remoteFile(t, first, "a.txt")
	require.True(t, ok)
	require.Equal(t, "one", content)

	// second publication from the same directory: fetch, reset, commit, push
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.txt"), []byte("three"), 0600))
	require.NoError(t, os.Remove(filepath.Join(src, "b.txt")))
	require.NoError(t, p.Publish(ctx, src, remote.FromURL(url)))

	second := remoteCommit(t, bare)
	require.Equal(t, []plumbing.Hash{first.Hash}, second.ParentHashes)
	content, _ = remoteFile(t, second, "a.txt")
	require.Equal(t, "three", content)
	_, ok = remoteFile(t, second, "b.txt")
	require.False(t, ok, "deleted files should be removed from the remote")

	// a directory with unrelated history publishes on top of the remote tip
	other := workdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(other, "c.txt"), []byte("four"), 0600))
	require.NoError(t, p.Publish(ctx, other, remote.FromURL(url)))

	third := remoteCommit(t, bare)
	require.Equal(t, []plumbing.Hash{second.Hash}, third.ParentHashes)
	_, ok = remoteFile(t, third, "a.txt")
	require.False(t, ok, "the remote should reflect the published working tree only")
	content, _ = remoteFile(t, third, "c.txt")
	require.Equal(t, "four", content)

	head, err := git.Head(other)
	require.NoError(t, err)
	require.Equal(t, third.Hash.String(), head)
}

func TestPublishWithGitFetchFailure(t *testing.T) {
	requireGit(t)

	bare := t.TempDir()
	gitIn(t, bare, "init", "--bare")

	ctx := context.Background()
	p := realPublisher()

	src := workdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.txt"), []byte("one"), 0600))
	require.NoError(t, p.Publish(ctx, src, remote.FromURL(bare)))

	// a fetch refspec pointing to a missing ref makes the fetch fail,
	// after ls-remote found the branch
	gitIn(t, src, "config", "remote.origin.fetch", "+refs/heads/nonexistent:refs/remotes/origin/nonexistent")

	err := p.Publish(ctx, src, remote.FromURL(bare))
	require.ErrorIs(t, err, ErrFetchFailed)
	require.Contains(t, err.Error(), bare)
}
