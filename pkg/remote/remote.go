// Package remote describes the git remote a directory is published to.
package remote

import (
	"errors"
	"fmt"
)

const (
	// DefaultName is the remote name used when none is given
	DefaultName = "origin"

	// DefaultBranch is the branch name used when none is given
	DefaultBranch = "master"
)

// ErrMissingURL is returned when a remote has no url
var ErrMissingURL = errors.New("remote url is required")

// Remote is a named git endpoint plus the branch we publish to
type Remote struct {
	Name   string
	URL    string
	Branch string
}

// FromURL returns the remote used when only an url is known
func FromURL(url string) Remote {
	return Remote{Name: DefaultName, URL: url, Branch: DefaultBranch}
}

// WithDefaults fills the empty name and branch
func (r Remote) WithDefaults() Remote {
	if r.Name == "" {
		r.Name = DefaultName
	}
	if r.Branch == "" {
		r.Branch = DefaultBranch
	}
	return r
}

// Validate ensures the remote can be used
func (r Remote) Validate() error {
	if r.URL == "" {
		return ErrMissingURL
	}
	return nil
}

// TrackingRef is the remote-tracking ref for the target branch (eg. "origin/master")
func (r Remote) TrackingRef() string {
	return r.Name + "/" + r.Branch
}

func (r Remote) String() string {
	return fmt.Sprintf("%s (%s, branch %s)", r.URL, r.Name, r.Branch)
}
