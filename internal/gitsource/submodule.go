// SPDX-License-Identifier: MPL-2.0

package gitsource

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
)

// ErrMalformedSubmoduleStatus indicates a submodule listing line that does not
// match the expected porcelain grammar. A mis-parsed line would silently root
// a submodule's snapshot at the wrong path, so parsing is strict.
var ErrMalformedSubmoduleStatus = errors.New("malformed submodule status line")

//nolint:gochecknoglobals // Test seam for invoking the git binary.
var runGit = func(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, msg)
		}
		return nil, fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return stdout.Bytes(), nil
}

// EnumerateSubmodules returns the paths of the directly registered submodules
// of the repository at rootPath, relative to the root, in listing order. The
// listing order is the canonical processing order for snapshot appends.
// Submodules nested inside submodules are not enumerated.
func EnumerateSubmodules(ctx context.Context, rootPath string) ([]string, error) {
	out, err := runGit(ctx, rootPath, "submodule", "status")
	if err != nil {
		return nil, fmt.Errorf("listing submodules in %s: %w", rootPath, err)
	}
	return ParseSubmoduleStatus(bytes.NewReader(out))
}

// ParseSubmoduleStatus parses `git submodule status` porcelain output.
//
// Each non-blank line follows the grammar
//
//	[flag] object-name SP path [SP "(" describe ")"]
//
// where flag is a single status character (space, "+", "-" or "U"),
// object-name is a 40- or 64-digit hex hash, and path is either a bare path
// or a double-quoted string with C-style escapes (core.quotePath). Blank
// lines are skipped; anything else that does not match the grammar is an
// error, never a silently dropped entry.
func ParseSubmoduleStatus(r io.Reader) ([]string, error) {
	var paths []string

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		p, err := parseStatusLine(line)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading submodule listing: %w", err)
	}

	return paths, nil
}

// parseStatusLine extracts the submodule path from a single status line.
func parseStatusLine(line string) (string, error) {
	rest := line
	switch rest[0] {
	case ' ', '+', '-', 'U':
		rest = rest[1:]
	}

	name, rest, ok := strings.Cut(rest, " ")
	if !ok || !isHexObjectName(name) {
		return "", fmt.Errorf("%w: %q", ErrMalformedSubmoduleStatus, line)
	}
	if rest == "" {
		return "", fmt.Errorf("%w: missing path: %q", ErrMalformedSubmoduleStatus, line)
	}

	if rest[0] == '"' {
		return unquotePath(rest, line)
	}

	// The describe suffix, when present, is the last parenthesized group on
	// the line; paths containing " (" are emitted quoted by git.
	if strings.HasSuffix(rest, ")") {
		if i := strings.LastIndex(rest, " ("); i >= 0 {
			rest = rest[:i]
		}
	}
	if rest == "" {
		return "", fmt.Errorf("%w: missing path: %q", ErrMalformedSubmoduleStatus, line)
	}
	return rest, nil
}

// unquotePath decodes a double-quoted path at the start of rest. The escapes
// git emits (\", \\, \t, \n and 3-digit octal for non-ASCII bytes) are all
// valid Go string-literal escapes, so strconv.Unquote does the decoding.
func unquotePath(rest, line string) (string, error) {
	end := -1
	escaped := false
	for i := 1; i < len(rest); i++ {
		switch {
		case escaped:
			escaped = false
		case rest[i] == '\\':
			escaped = true
		case rest[i] == '"':
			end = i
		}
		if end >= 0 {
			break
		}
	}
	if end < 0 {
		return "", fmt.Errorf("%w: unterminated quoted path: %q", ErrMalformedSubmoduleStatus, line)
	}

	p, err := strconv.Unquote(rest[:end+1])
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrMalformedSubmoduleStatus, line, err)
	}
	if p == "" {
		return "", fmt.Errorf("%w: empty path: %q", ErrMalformedSubmoduleStatus, line)
	}
	return p, nil
}

// isHexObjectName reports whether s is a SHA-1 or SHA-256 object name.
func isHexObjectName(s string) bool {
	if len(s) != 40 && len(s) != 64 {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		default:
			return false
		}
	}
	return true
}
