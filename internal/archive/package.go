// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
)

// Compress gzips the archive at src into dst. The content is not transformed
// in any other way, and the gzip header is left at its zero value (no name,
// zero mtime) so that identical inputs compress to identical outputs.
func Compress(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening archive %s: %w", src, err)
	}
	defer func() { _ = in.Close() }() // read-only input

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	zw := gzip.NewWriter(out)
	if _, err := io.Copy(zw, in); err != nil {
		_ = zw.Close()
		_ = out.Close()
		return fmt.Errorf("compressing %s: %w", src, err)
	}

	if err := zw.Close(); err != nil {
		_ = out.Close()
		return fmt.Errorf("finalizing %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dst, err)
	}
	return nil
}
