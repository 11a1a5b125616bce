// Package watch keeps a directory published: it republishes the directory
// content whenever the working tree changes.
package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/bpineau/dirpush/pkg/remote"
	"github.com/bpineau/dirpush/pkg/store/git"
)

// CheckInterval defines the default interval between local directory checks
var CheckInterval = 10 * time.Second

type logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type publisher interface {
	Publish(ctx context.Context, sourceDir string, r remote.Remote) error
}

// Watcher republishes a directory on changes
type Watcher struct {
	Logger    logger
	Publisher publisher
	Git       git.Runner
	Dir       string
	Remote    remote.Remote
	Interval  time.Duration

	cancel context.CancelFunc
	donech chan struct{}
}

// New instantiate a new Watcher
func New(log logger, pub publisher, runner git.Runner, dir string, r remote.Remote, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = CheckInterval
	}

	return &Watcher{
		Logger:    log,
		Publisher: pub,
		Git:       runner,
		Dir:       dir,
		Remote:    r,
		Interval:  interval,
	}
}

// Start publishes the directory, then keeps it published until Stop is called
func (w *Watcher) Start(ctx context.Context) (*Watcher, error) {
	w.Logger.Infof("Starting directory publisher")

	if err := w.Publisher.Publish(ctx, w.Dir, w.Remote); err != nil {
		return nil, fmt.Errorf("initial publication failed: %v", err)
	}

	ctx, w.cancel = context.WithCancel(ctx)
	w.donech = make(chan struct{})

	go func() {
		checkTick := time.NewTicker(w.Interval)
		defer checkTick.Stop()
		defer close(w.donech)

		for {
			select {
			case <-checkTick.C:
				w.publishChanges(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()

	return w, nil
}

// Stop stops the watcher goroutine, waiting for an ongoing publication
func (w *Watcher) Stop() {
	w.Logger.Infof("Stopping directory publisher")
	if w.cancel == nil {
		return
	}
	w.cancel()
	<-w.donech
}

func (w *Watcher) publishChanges(ctx context.Context) {
	changed, err := git.Status(ctx, w.Git, w.Dir)
	if err != nil {
		w.Logger.Errorf("%v", err)
		return
	}

	if !changed {
		return
	}

	if err = w.Publisher.Publish(ctx, w.Dir, w.Remote); err != nil {
		w.Logger.Errorf("%v", err)
	}
}
