// SPDX-License-Identifier: MPL-2.0

package gitsource

import (
	"archive/tar"
	"fmt"
	"io"
	"time"

	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// WriteSnapshot writes the tracked file tree at HEAD into tw, one entry per
// tracked file, with every entry path placed directly under prefix (prefix
// must end in "/"). Untracked and ignored files never appear because the walk
// reads the commit tree, not the working directory. Gitlink entries, which
// mark nested repositories, are skipped; their content is snapshotted
// separately from their own checkout.
//
// Entries carry the HEAD committer time and root/root ownership so that two
// runs over the same commit produce byte-identical output.
func (r *Repository) WriteSnapshot(tw *tar.Writer, prefix string) error {
	commit, err := r.headCommit()
	if err != nil {
		return err
	}

	tree, err := commit.Tree()
	if err != nil {
		return fmt.Errorf("resolving HEAD tree for %s: %w", r.path, err)
	}
	mtime := commit.Committer.When.UTC()

	files := tree.Files()
	defer files.Close()

	return files.ForEach(func(f *object.File) error {
		return writeFileEntry(tw, prefix, f, mtime)
	})
}

// writeFileEntry appends a single tracked file as a tar entry.
func writeFileEntry(tw *tar.Writer, prefix string, f *object.File, mtime time.Time) error {
	if f.Mode == filemode.Submodule {
		return nil
	}

	hdr := &tar.Header{
		Name:    prefix + f.Name,
		ModTime: mtime,
		Uname:   "root",
		Gname:   "root",
	}

	if f.Mode == filemode.Symlink {
		// The blob content of a symlink entry is its target path.
		target, err := f.Contents()
		if err != nil {
			return fmt.Errorf("reading symlink %s: %w", f.Name, err)
		}
		hdr.Typeflag = tar.TypeSymlink
		hdr.Linkname = target
		if err := tw.WriteHeader(hdr); err != nil {
			return fmt.Errorf("writing entry %s: %w", hdr.Name, err)
		}
		return nil
	}

	hdr.Typeflag = tar.TypeReg
	hdr.Size = f.Blob.Size
	if f.Mode == filemode.Executable {
		hdr.Mode = 0o755
	} else {
		hdr.Mode = 0o644
	}

	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("writing entry %s: %w", hdr.Name, err)
	}

	reader, err := f.Blob.Reader()
	if err != nil {
		return fmt.Errorf("reading blob for %s: %w", f.Name, err)
	}
	defer func() { _ = reader.Close() }() // read-only blob reader

	if _, err := io.Copy(tw, reader); err != nil {
		return fmt.Errorf("writing content of %s: %w", hdr.Name, err)
	}
	return nil
}
