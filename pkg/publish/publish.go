package publish

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/bpineau/dirpush/pkg/remote"
	"github.com/bpineau/dirpush/pkg/store/git"
)

// isoLayout mimics ISO-8601 timestamps with millisecond precision, in UTC
const isoLayout = "2006-01-02T15:04:05.000Z"

var (
	appFs = afero.NewOsFs()

	// headOf resolves the published commit, for logging purpose only
	headOf = git.Head
)

type logger interface {
	Infof(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// Publisher publishes directories to git remotes
type Publisher struct {
	Logger logger
	Git    git.Runner

	// BaseDir is used to resolve relative source directories. When empty,
	// the process working directory at call time is used.
	BaseDir string

	// Now provides the time stamped in commit messages
	Now func() time.Time

	// PushBranch is the local branch pushed to the remote. It doesn't follow
	// the remote's Branch, which is only used for lookup, fetch and reset.
	PushBranch string
}

// New instantiate a Publisher driving git through runner
func New(log logger, runner git.Runner) *Publisher {
	return &Publisher{
		Logger:     log,
		Git:        runner,
		Now:        time.Now,
		PushBranch: remote.DefaultBranch,
	}
}

// job holds the state of a single publication
type job struct {
	p       *Publisher
	dir     string
	remote  remote.Remote
	message string
}

// PublishAsync runs Publish in the background and calls onComplete exactly
// once with its result. onComplete may be nil.
func (p *Publisher) PublishAsync(ctx context.Context, sourceDir string, r remote.Remote, onComplete func(error)) {
	go func() {
		err := p.Publish(ctx, sourceDir, r)
		if onComplete != nil {
			onComplete(err)
		}
	}()
}

// Publish commits the whole content of sourceDir and pushes it to r.
func (p *Publisher) Publish(ctx context.Context, sourceDir string, r remote.Remote) error {
	j, err := p.newJob(sourceDir, r)
	if err != nil {
		return err
	}

	if err = j.initRepository(ctx); err != nil {
		return err
	}

	if err = j.configureRemote(ctx); err != nil {
		return err
	}

	exists, err := j.branchExists(ctx)
	if err != nil {
		return err
	}

	if !exists {
		return j.firstPublish(ctx)
	}

	steps := []func(context.Context) error{
		j.fetch,
		j.reset,
		j.stage,
		j.commit,
		j.push,
	}

	for _, step := range steps {
		if err = step(ctx); err != nil {
			return err
		}
	}

	return nil
}

func (p *Publisher) newJob(sourceDir string, r remote.Remote) (*job, error) {
	r = r.WithDefaults()
	if err := r.Validate(); err != nil {
		return nil, err
	}

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	message := "Update " + now().UTC().Format(isoLayout)

	dir, err := p.resolve(sourceDir)
	if err != nil {
		return nil, newError(InitFailed, "Failed to initialize a new Git repository.", err)
	}

	isDir, err := afero.IsDir(appFs, dir)
	if err != nil || !isDir {
		return nil, newError(InitFailed, "Failed to initialize a new Git repository.",
			fmt.Errorf("%s is not a directory", dir))
	}

	return &job{p: p, dir: dir, remote: r, message: message}, nil
}

func (p *Publisher) resolve(dir string) (string, error) {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir), nil
	}

	base := p.BaseDir
	if base == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("can't find local dir absolute path (broken cwd?): %v", err)
		}
		base = cwd
	}

	return filepath.Join(base, dir), nil
}

func (j *job) run(ctx context.Context, args ...string) error {
	return j.p.Git.Run(ctx, j.dir, args...)
}

func (j *job) output(ctx context.Context, args ...string) (string, error) {
	return j.p.Git.Output(ctx, j.dir, args...)
}

func (j *job) pushBranch() string {
	if j.p.PushBranch == "" {
		return remote.DefaultBranch
	}
	return j.p.PushBranch
}

func (j *job) initRepository(ctx context.Context) error {
	exists, err := afero.Exists(appFs, filepath.Join(j.dir, ".git"))
	if err != nil {
		return newError(InitFailed, "Failed to initialize a new Git repository.", err)
	}

	if exists {
		return nil
	}

	if err = j.run(ctx, "init"); err != nil {
		return newError(InitFailed, "Failed to initialize a new Git repository.", err)
	}

	return nil
}

func (j *job) configureRemote(ctx context.Context) error {
	name, url := j.remote.Name, j.remote.URL
	detail := fmt.Sprintf("Failed to configure the remote %s (%s).", name, url)

	current, err := j.output(ctx, "config", "--get", "remote."+name+".url")
	if err != nil && git.ExitCode(err) != 1 {
		// exit code 1 only means the key isn't set
		return newError(RemoteFailed, detail, err)
	}

	switch {
	case current == "":
		if err = j.run(ctx, "remote", "add", name, url); err != nil {
			return newError(RemoteFailed, detail, err)
		}
		j.p.Logger.Infof("Add a new remote %s (%s)", url, name)
	case current != url:
		if err = j.run(ctx, "remote", "set-url", name, url); err != nil {
			return newError(RemoteFailed, detail, err)
		}
		j.p.Logger.Infof("Set '%s' remote to %s", name, url)
	}

	return nil
}

func (j *job) branchExists(ctx context.Context) (bool, error) {
	out, err := j.output(ctx, "ls-remote", j.remote.Name, j.remote.Branch)
	if err != nil {
		return false, newError(LookupFailed, "Failed to query the remote repository "+j.remote.URL, err)
	}

	return out != "", nil
}

// firstPublish is the whole pipeline's tail when the remote branch is missing
func (j *job) firstPublish(ctx context.Context) error {
	j.p.Logger.Debugf("Branch %s not found on %s, publishing initial commit", j.remote.Branch, j.remote.Name)

	if err := j.run(ctx, "add", "."); err != nil {
		return newError(StageFailed, genericMessage, err)
	}

	if err := j.run(ctx, "commit", "-m", j.message); err != nil {
		return newError(CommitFailed, genericMessage, err)
	}

	if err := j.run(ctx, "push", j.remote.Name, j.pushBranch()); err != nil {
		return newError(PushFailed, genericMessage, err)
	}

	j.logHead()
	return nil
}

func (j *job) fetch(ctx context.Context) error {
	j.p.Logger.Infof("Fetching remote repository...")
	if err := j.run(ctx, "fetch", j.remote.Name); err != nil {
		return newError(FetchFailed, "Failed to fetch the remote repository "+j.remote.URL, err)
	}
	return nil
}

func (j *job) reset(ctx context.Context) error {
	ref := j.remote.TrackingRef()
	if err := j.run(ctx, "reset", "--soft", ref); err != nil {
		return newError(ResetFailed, "Failed to reset the local branch to "+ref+".", err)
	}
	return nil
}

func (j *job) stage(ctx context.Context) error {
	j.p.Logger.Infof("Adding files to staging area...")
	if err := j.run(ctx, "add", "--all", "."); err != nil {
		return newError(StageFailed, genericMessage, err)
	}
	return nil
}

func (j *job) commit(ctx context.Context) error {
	j.p.Logger.Infof("Creating a new commit...")
	if err := j.run(ctx, "commit", "-m", j.message); err != nil {
		return newError(CommitFailed, genericMessage, err)
	}
	return nil
}

func (j *job) push(ctx context.Context) error {
	j.p.Logger.Infof("Pushing to %s", j.remote.URL)
	if err := j.run(ctx, "push", j.remote.Name, j.pushBranch()); err != nil {
		return newError(PushFailed, genericMessage, err)
	}

	j.logHead()
	return nil
}

func (j *job) logHead() {
	head, err := headOf(j.dir)
	if err != nil {
		j.p.Logger.Debugf("can't resolve published commit: %v", err)
		return
	}
	j.p.Logger.Infof("Published %s to %s", head, j.remote.URL)
}
