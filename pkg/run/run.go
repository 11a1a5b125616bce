// Package run implements the main dirpush's loop, publishing once or
// starting and stopping the watch services.
package run

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bpineau/dirpush/config"
	"github.com/bpineau/dirpush/pkg/health"
	"github.com/bpineau/dirpush/pkg/publish"
	"github.com/bpineau/dirpush/pkg/store/git"
	"github.com/bpineau/dirpush/pkg/watch"
)

// Run publishes the configured directory. When an interval is configured, it
// keeps republishing changes until ctx is cancelled or a signal is received.
func Run(ctx context.Context, conf *config.DpConfig) error {
	runner := git.New(conf.Logger, conf.DryRun)
	runner.Author = conf.Author
	runner.Email = conf.Email
	runner.Timeout = conf.Timeout

	pub := publish.New(conf.Logger, runner)
	pub.BaseDir = conf.BaseDir
	pub.PushBranch = conf.PushBranch

	if conf.Interval == 0 {
		return pub.Publish(ctx, conf.LocalDir, conf.Remote)
	}

	w, err := watch.New(conf.Logger, pub, runner, conf.LocalDir, conf.Remote, conf.Interval).Start(ctx)
	if err != nil {
		return err
	}

	http, err := health.New(conf).Start()
	if err != nil {
		w.Stop()
		return err
	}

	sigterm := make(chan os.Signal, 1)
	signal.Notify(sigterm, syscall.SIGTERM)
	signal.Notify(sigterm, syscall.SIGINT)
	defer signal.Stop(sigterm)

	select {
	case <-sigterm:
	case <-ctx.Done():
	}

	w.Stop()
	http.Stop()

	return nil
}
