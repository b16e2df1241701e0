// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"archive/tar"
	"fmt"
	"os"
	"time"
)

// Container is an append-only ordered sequence of tar entries backed by a
// single output file. Entries already written are never reordered or
// rewritten; the only later mutation is the wholesale rewrite done by Prune.
// There is exactly one writer at a time.
type Container struct {
	path string
	f    *os.File
	tw   *tar.Writer
}

// Create opens a new empty container at path, truncating any existing file.
func Create(path string) (*Container, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("creating archive %s: %w", path, err)
	}
	return &Container{path: path, f: f, tw: tar.NewWriter(f)}, nil
}

// Path returns the file the container is backed by.
func (c *Container) Path() string {
	return c.path
}

// Writer exposes the underlying tar writer for streaming appends. Appends
// from different sources form one flat entry list, not nested archives.
func (c *Container) Writer() *tar.Writer {
	return c.tw
}

// AddFile appends a regular file entry with the given content.
func (c *Container) AddFile(name string, content []byte, mtime time.Time) error {
	hdr := &tar.Header{
		Typeflag: tar.TypeReg,
		Name:     name,
		Size:     int64(len(content)),
		Mode:     0o644,
		ModTime:  mtime,
		Uname:    "root",
		Gname:    "root",
	}
	if err := c.tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("writing entry %s: %w", name, err)
	}
	if _, err := c.tw.Write(content); err != nil {
		return fmt.Errorf("writing content of %s: %w", name, err)
	}
	return nil
}

// Close finalizes the tar stream and closes the backing file. The container
// must not be used afterwards.
func (c *Container) Close() error {
	if err := c.tw.Close(); err != nil {
		_ = c.f.Close()
		return fmt.Errorf("finalizing archive %s: %w", c.path, err)
	}
	if err := c.f.Close(); err != nil {
		return fmt.Errorf("closing archive %s: %w", c.path, err)
	}
	return nil
}
