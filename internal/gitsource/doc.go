// SPDX-License-Identifier: MPL-2.0

// Package gitsource reads release inputs out of git repositories: the
// resolved release tag, the set of registered submodule paths, and tracked-tree
// snapshots written as tar entries. It works on the committed state of each
// repository (HEAD), never on the working directory, so snapshots are
// independent of local edits and untracked files.
package gitsource
