// Package git runs the git command on behalf of the publisher, either
// streaming its output to the terminal or capturing it for inspection.
//
// It requires the git command in $PATH, since the pure Go git implementations
// aren't up to the task (see go-git issues #793 and #785 for instance). go-git
// is only used for read-only lookups in the local repository.
package git
