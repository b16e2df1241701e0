// SPDX-License-Identifier: MPL-2.0

// Package archive owns the on-disk artifact container: an append-only tar
// stream backed by a single file, a structural pruner that rewrites the
// stream without a set of excluded paths, and the final gzip packaging step.
package archive
