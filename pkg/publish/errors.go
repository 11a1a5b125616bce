package publish

import (
	"errors"
	"fmt"
)

// Kind identifies the pipeline step that failed
type Kind int

const (
	// InitFailed means the local repository couldn't be initialized
	InitFailed Kind = iota + 1
	// RemoteFailed means the remote couldn't be added or updated
	RemoteFailed
	// LookupFailed means the remote couldn't be queried for the target branch
	LookupFailed
	// FetchFailed means git fetch failed
	FetchFailed
	// ResetFailed means the soft reset to the remote branch failed
	ResetFailed
	// StageFailed means git add failed
	StageFailed
	// CommitFailed means git commit failed
	CommitFailed
	// PushFailed means git push failed
	PushFailed
)

// Sentinel errors, one per Kind, for use with errors.Is
var (
	ErrInitFailed   = errors.New("init failed")
	ErrRemoteFailed = errors.New("remote configuration failed")
	ErrLookupFailed = errors.New("remote lookup failed")
	ErrFetchFailed  = errors.New("fetch failed")
	ErrResetFailed  = errors.New("reset failed")
	ErrStageFailed  = errors.New("stage failed")
	ErrCommitFailed = errors.New("commit failed")
	ErrPushFailed   = errors.New("push failed")
)

var sentinels = map[Kind]error{
	InitFailed:   ErrInitFailed,
	RemoteFailed: ErrRemoteFailed,
	LookupFailed: ErrLookupFailed,
	FetchFailed:  ErrFetchFailed,
	ResetFailed:  ErrResetFailed,
	StageFailed:  ErrStageFailed,
	CommitFailed: ErrCommitFailed,
	PushFailed:   ErrPushFailed,
}

// genericMessage is reported for stage, commit and push failures
const genericMessage = "Failed to push the contents."

func (k Kind) String() string {
	if err, ok := sentinels[k]; ok {
		return err.Error()
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is a failed publication. Detail is the human readable message,
// Err the underlying git failure, if any.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	detail := e.Detail
	if detail == "" {
		detail = genericMessage
	}
	if e.Err == nil {
		return detail
	}
	return fmt.Sprintf("%s: %v", detail, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel error of the same Kind
func (e *Error) Is(target error) bool {
	return target != nil && sentinels[e.Kind] == target
}

func newError(kind Kind, detail string, err error) *Error {
	return &Error{Kind: kind, Detail: detail, Err: err}
}
