// SPDX-License-Identifier: MPL-2.0

package release

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"srcpack-cli/internal/archive"
	"srcpack-cli/internal/gitsource"
)

// metadataFileName is the file embedded under the archive prefix that carries
// the resolved release tag, verbatim.
const metadataFileName = ".tag"

type (
	// Options configures a pipeline run. All fields except Logger are
	// required; TagOverride may be empty to let the repository decide.
	Options struct {
		// RootDir is the root repository checkout.
		RootDir string

		// OutputDir is the directory the artifact is written to.
		OutputDir string

		// Project is the base name used for the artifact file and the
		// archive prefix.
		Project string

		// TagOverride, when non-empty, short-circuits tag resolution.
		TagOverride string

		// Scheduled marks an unattended (nightly) run, which uses the fixed
		// tag-independent artifact name.
		Scheduled bool

		// Logger receives step-by-step progress. Nil discards all output.
		Logger *log.Logger
	}

	// Result describes a completed run.
	Result struct {
		// Tag is the resolved release tag.
		Tag string

		// Prefix is the single top-level directory of the artifact,
		// including the trailing slash.
		Prefix string

		// ArtifactPath is the final .tar.gz file.
		ArtifactPath string

		// Submodules holds the enumerated submodule paths in processing
		// order.
		Submodules []string
	}

	// Pipeline assembles one source archive per Run call. The container is
	// an explicit owned resource passed through the steps; no state is
	// shared between runs.
	Pipeline struct {
		opts   Options
		logger *log.Logger

		// enumerate is a seam so tests can supply submodule listings
		// without a git binary.
		enumerate func(ctx context.Context, rootPath string) ([]string, error)
	}
)

// New creates a Pipeline for the given options.
func New(opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Pipeline{
		opts:      opts,
		logger:    logger,
		enumerate: gitsource.EnumerateSubmodules,
	}
}

// Run executes the pipeline: Resolve -> Enumerate -> Snapshot(root) ->
// Snapshot(each submodule) -> AppendMetadata -> Prune -> Compress. Any step
// failure aborts the run with a StepError and removes whatever output files
// were written so far.
func (p *Pipeline) Run(ctx context.Context) (_ *Result, err error) {
	if err := p.opts.validate(); err != nil {
		return nil, err
	}

	root, err := gitsource.Open(p.opts.RootDir)
	if err != nil {
		return nil, stepErr(StepResolveTag, err)
	}

	resolution, err := root.ResolveTag(p.opts.TagOverride)
	if err != nil {
		return nil, stepErr(StepResolveTag, err)
	}
	tag := resolution.Tag
	p.logger.Info("resolved release tag", "tag", tag, "source", resolution.Source)

	base := ArtifactBaseName(p.opts.Project, tag, p.opts.Scheduled)
	tarPath := filepath.Join(p.opts.OutputDir, base+".tar")
	prunedPath := tarPath + ".pruned"
	artifactPath := filepath.Join(p.opts.OutputDir, base+".tar.gz")

	// The artifact name is owned exclusively by this run; reruns start from
	// a clean slate.
	for _, stale := range []string{tarPath, prunedPath, artifactPath} {
		if err := removeIfPresent(stale); err != nil {
			return nil, stepErr(StepAssemble, err)
		}
	}

	// A failed run must leave no partial output: an artifact file on disk is
	// either absent or fully valid.
	defer func() {
		if err != nil {
			_ = removeIfPresent(tarPath)
			_ = removeIfPresent(prunedPath)
			_ = removeIfPresent(artifactPath)
		}
	}()

	submodules, err := p.enumerate(ctx, p.opts.RootDir)
	if err != nil {
		return nil, stepErr(StepEnumerateSubmodules, err)
	}
	p.logger.Info("enumerated submodules", "count", len(submodules))

	prefix := Prefix(p.opts.Project, tag)

	container, err := archive.Create(tarPath)
	if err != nil {
		return nil, stepErr(StepAssemble, err)
	}
	if err = p.assemble(container, root, submodules, prefix, tag); err != nil {
		_ = container.Close()
		return nil, err
	}
	if err = container.Close(); err != nil {
		return nil, stepErr(StepAssemble, err)
	}

	if err = archive.Prune(tarPath, prunedPath, prefix, excludedPaths); err != nil {
		return nil, stepErr(StepPrune, err)
	}
	if err = os.Rename(prunedPath, tarPath); err != nil {
		return nil, stepErr(StepPrune, fmt.Errorf("replacing archive with pruned copy: %w", err))
	}
	p.logger.Debug("pruned excluded paths", "count", len(excludedPaths))

	if err = archive.Compress(tarPath, artifactPath); err != nil {
		return nil, stepErr(StepPackage, err)
	}
	if err = removeIfPresent(tarPath); err != nil {
		return nil, stepErr(StepPackage, err)
	}
	p.logger.Info("wrote artifact", "path", artifactPath)

	return &Result{
		Tag:          tag,
		Prefix:       prefix,
		ArtifactPath: artifactPath,
		Submodules:   submodules,
	}, nil
}

// assemble appends the root snapshot, each submodule snapshot in enumeration
// order, and the metadata entry to the container. The appends form one flat
// entry list under a single prefix.
func (p *Pipeline) assemble(container *archive.Container, root *gitsource.Repository, submodules []string, prefix, tag string) error {
	p.logger.Debug("snapshotting root repository", "path", root.Path())
	if err := root.WriteSnapshot(container.Writer(), prefix); err != nil {
		return stepErr(StepSnapshot, fmt.Errorf("root repository: %w", err))
	}

	for _, sub := range submodules {
		repo, err := gitsource.Open(filepath.Join(p.opts.RootDir, filepath.FromSlash(sub)))
		if err != nil {
			return stepErr(StepSnapshot, fmt.Errorf("submodule %s: %w", sub, err))
		}
		p.logger.Debug("snapshotting submodule", "path", sub)
		if err := repo.WriteSnapshot(container.Writer(), prefix+sub+"/"); err != nil {
			return stepErr(StepSnapshot, fmt.Errorf("submodule %s: %w", sub, err))
		}
	}

	// Metadata mtime reuses the root HEAD time so reruns over the same
	// commit stay byte-identical.
	mtime, err := root.HeadTimestamp()
	if err != nil {
		return stepErr(StepAssemble, err)
	}
	if err := container.AddFile(prefix+metadataFileName, []byte(tag), mtime); err != nil {
		return stepErr(StepAssemble, err)
	}
	return nil
}

// validate checks that required options are present before any step runs.
func (o *Options) validate() error {
	if o.RootDir == "" {
		return errors.New("release: root directory must not be empty")
	}
	if o.OutputDir == "" {
		return errors.New("release: output directory must not be empty")
	}
	if o.Project == "" {
		return errors.New("release: project name must not be empty")
	}
	return nil
}

// removeIfPresent deletes path, treating a missing file as success.
func removeIfPresent(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}
