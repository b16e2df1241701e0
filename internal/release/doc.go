// SPDX-License-Identifier: MPL-2.0

// Package release drives the source-archive assembly pipeline: resolve the
// release tag, enumerate submodules, snapshot every repository into one tar
// container, embed the tag metadata, prune excluded subtrees, and compress
// the result into the distributable artifact. The pipeline is strictly
// linear; any step failure aborts the run and removes partial output, so an
// artifact file on disk is always complete and valid.
package release
