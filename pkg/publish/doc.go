// Package publish pushes the content of a local directory to a remote git
// repository as a single commit.
//
// The local repository and its remote are created when missing. When the
// target branch already exists on the remote, the local branch is soft-reset
// on top of it first, so the new commit records the whole working tree as a
// change over what was previously published.
//
// Steps run strictly one after another, and the first failing step aborts the
// publication. Nothing is rolled back: a repository initialized or a remote
// added before the failure stays in place.
package publish
