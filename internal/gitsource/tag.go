// SPDX-License-Identifier: MPL-2.0

package gitsource

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// releaseTagPrefix selects which tags count as release tags. Release tags are
// date-stamped (e.g. "20240101-0101"), so anything starting with "20" is a
// candidate; semver-style tags like "v1.2.3" are ignored.
const releaseTagPrefix = "20"

// shortHashLen matches the default abbreviated object name length git uses
// for %h.
const shortHashLen = 7

type (
	// TagSource identifies which link of the resolution chain produced a tag.
	TagSource int

	// TagResolution is the outcome of resolving the release tag for a run.
	// The tag is immutable once resolved; every later step (artifact naming,
	// archive prefix, embedded metadata) uses this exact value.
	TagResolution struct {
		Tag    string
		Source TagSource
	}
)

const (
	// TagSourceOverride means the tag was supplied explicitly by the caller.
	TagSourceOverride TagSource = iota
	// TagSourceRepository means the tag was found on a commit reachable
	// from HEAD.
	TagSourceRepository
	// TagSourceSynthesized means the tag was built from the current time and
	// the abbreviated HEAD commit hash.
	TagSourceSynthesized
)

// String returns a short human-readable name for the tag source.
func (s TagSource) String() string {
	switch s {
	case TagSourceOverride:
		return "override"
	case TagSourceRepository:
		return "repository"
	case TagSourceSynthesized:
		return "synthesized"
	}
	return fmt.Sprintf("TagSource(%d)", int(s))
}

//nolint:gochecknoglobals // Test seam for time.Now().
var timeNow = time.Now

// ResolveTag determines the release tag for the repository using a fixed
// priority chain: an explicit override, then the nearest release tag reachable
// from HEAD, then a synthesized "<timestamp>-<short-hash>" fallback. The
// result is never empty; the only failure mode is a repository with no
// commits, where even the fallback cannot be computed.
func (r *Repository) ResolveTag(override string) (TagResolution, error) {
	if override != "" {
		return TagResolution{Tag: override, Source: TagSourceOverride}, nil
	}

	head, err := r.headCommit()
	if err != nil {
		return TagResolution{}, err
	}

	tag, err := r.nearestReleaseTag(head)
	if err != nil {
		return TagResolution{}, err
	}
	if tag != "" {
		return TagResolution{Tag: tag, Source: TagSourceRepository}, nil
	}

	stamp := timeNow().UTC().Format("20060102-150405")
	short := head.Hash.String()[:shortHashLen]
	return TagResolution{Tag: stamp + "-" + short, Source: TagSourceSynthesized}, nil
}

// nearestReleaseTag walks history from head in committer-time order and
// returns the name of the first release tag it encounters, or "" when no
// reachable commit carries one. When several release tags point at the same
// commit the lexically greatest name wins, which for date-stamped tags is the
// most recent one.
func (r *Repository) nearestReleaseTag(head *object.Commit) (string, error) {
	tagged, err := r.releaseTagsByCommit()
	if err != nil {
		return "", err
	}
	if len(tagged) == 0 {
		return "", nil
	}

	iter := object.NewCommitIterCTime(head, nil, nil)
	defer iter.Close()

	var found string
	err = iter.ForEach(func(c *object.Commit) error {
		if names, ok := tagged[c.Hash]; ok {
			found = names[len(names)-1]
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("walking history from %s: %w", head.Hash, err)
	}
	return found, nil
}

// releaseTagsByCommit maps commit hashes to the sorted release tag names
// pointing at them. Annotated tags are dereferenced to their target commits.
func (r *Repository) releaseTagsByCommit() (map[plumbing.Hash][]string, error) {
	refs, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer refs.Close()

	tagged := make(map[plumbing.Hash][]string)
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if !strings.HasPrefix(name, releaseTagPrefix) {
			return nil
		}

		target := ref.Hash()
		if tagObj, tagErr := r.repo.TagObject(target); tagErr == nil {
			// Annotated tag; the ref points at the tag object, not the commit.
			target = tagObj.Target
		}
		tagged[target] = append(tagged[target], name)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	for _, names := range tagged {
		sort.Strings(names)
	}
	return tagged, nil
}
