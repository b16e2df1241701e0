// SPDX-License-Identifier: MPL-2.0

package release

// excludedPaths lists the prefix-relative subtrees stripped from every
// artifact: bulky test fixtures and contributed assets under third-party
// submodules, plus documentation screenshots. None of them are needed to
// build from source. The set is fixed at build time, not configurable per
// invocation, and matching is exact-path rather than pattern-based.
//
//nolint:gochecknoglobals // Compiled-in exclusion set.
var excludedPaths = []string{
	"deps/harfbuzz/harfbuzz/test",
	"deps/freetype/freetype2/tests",
	"deps/freetype/zlib/contrib",
	"docs/screenshots",
}
