// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Prune rewrites the tar archive at src into dst, dropping every entry whose
// path relative to prefix exactly matches one of excluded, or lies beneath an
// excluded directory path. All other entries are copied through in order.
//
// This is a structural rewrite, not an extraction-time filter: tooling that
// inspects dst sees the excluded entries truly absent. Tar streams do not
// support in-place deletion, hence the copy.
func Prune(src, dst, prefix string, excluded []string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening archive %s: %w", src, err)
	}
	defer func() { _ = in.Close() }() // read-only input

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating pruned archive %s: %w", dst, err)
	}

	tr := tar.NewReader(in)
	tw := tar.NewWriter(out)

	for {
		hdr, nextErr := tr.Next()
		if errors.Is(nextErr, io.EOF) {
			break
		}
		if nextErr != nil {
			_ = out.Close()
			return fmt.Errorf("reading archive entry: %w", nextErr)
		}

		if isExcluded(strings.TrimPrefix(hdr.Name, prefix), excluded) {
			continue
		}

		if err := tw.WriteHeader(hdr); err != nil {
			_ = out.Close()
			return fmt.Errorf("writing entry %s: %w", hdr.Name, err)
		}
		if _, err := io.Copy(tw, tr); err != nil {
			_ = out.Close()
			return fmt.Errorf("copying entry %s: %w", hdr.Name, err)
		}
	}

	if err := tw.Close(); err != nil {
		_ = out.Close()
		return fmt.Errorf("finalizing pruned archive %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing pruned archive %s: %w", dst, err)
	}
	return nil
}

// isExcluded reports whether the prefix-relative path rel is one of the
// excluded paths or a descendant of an excluded directory path. Matching is
// exact-path, not pattern-based.
func isExcluded(rel string, excluded []string) bool {
	for _, ex := range excluded {
		if rel == ex || strings.HasPrefix(rel, ex+"/") {
			return true
		}
	}
	return false
}
