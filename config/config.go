// Package config holds the settings shared by dirpush components.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bpineau/dirpush/pkg/remote"
)

// DpConfig is the configuration struct, passed to run.Run()
type DpConfig struct {
	// When DryRun is true, we display but don't really run git commands
	DryRun bool

	// Logger should be used to send all logs
	Logger *logrus.Logger

	// LocalDir is the directory to publish
	LocalDir string

	// BaseDir is used to resolve LocalDir when it's relative
	BaseDir string

	// Remote is where LocalDir content is pushed
	Remote remote.Remote

	// PushBranch is the local branch pushed to the remote
	PushBranch string

	// Author and Email are the facultative commit identity
	Author string
	Email  string

	// Timeout is the max duration of a single git command. 0 to disable.
	Timeout time.Duration

	// Interval between working tree checks. 0 means publish once and exit.
	Interval time.Duration

	// HealthPort is the facultative healthcheck port
	HealthPort int
}

// Init validates the configuration and fills defaults
func (c *DpConfig) Init() error {
	c.Remote = c.Remote.WithDefaults()
	if err := c.Remote.Validate(); err != nil {
		return fmt.Errorf("invalid remote: %v", err)
	}

	if c.LocalDir == "" {
		c.LocalDir = "."
	}

	if c.PushBranch == "" {
		c.PushBranch = remote.DefaultBranch
	}

	if c.BaseDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("can't find current directory (broken cwd?): %v", err)
		}
		c.BaseDir = cwd
	}

	if c.Logger != nil {
		c.Logger.Debugf("Publishing %s to %s", c.LocalDir, c.Remote)
	}

	return nil
}
