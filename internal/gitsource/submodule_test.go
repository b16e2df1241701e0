// SPDX-License-Identifier: MPL-2.0

package gitsource

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"reflect"
	"strings"
	"testing"
)

const (
	testSHA1   = "a94a8fe5ccb19ba61c4c0873d391e987982fbbd3"
	testSHA256 = "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"
)

func TestParseSubmoduleStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "clean entry with describe suffix",
			input: " " + testSHA1 + " deps/harfbuzz (v8.3.0)\n",
			want:  []string{"deps/harfbuzz"},
		},
		{
			name:  "clean entry without describe",
			input: " " + testSHA1 + " deps/harfbuzz\n",
			want:  []string{"deps/harfbuzz"},
		},
		{
			name:  "modified flag",
			input: "+" + testSHA1 + " deps/freetype (VER-2-13-2-16-g123abcd)\n",
			want:  []string{"deps/freetype"},
		},
		{
			name:  "uninitialized flag",
			input: "-" + testSHA1 + " deps/zlib\n",
			want:  []string{"deps/zlib"},
		},
		{
			name:  "merge conflict flag",
			input: "U0000000000000000000000000000000000000000 deps/conflicted\n",
			want:  []string{"deps/conflicted"},
		},
		{
			name:  "sha256 object name",
			input: " " + testSHA256 + " deps/next\n",
			want:  []string{"deps/next"},
		},
		{
			name:  "unquoted path with spaces and describe",
			input: " " + testSHA1 + " deps/with space (v1.0)\n",
			want:  []string{"deps/with space"},
		},
		{
			name:  "quoted path with spaces",
			input: ` ` + testSHA1 + ` "deps/with space" (v1.0)` + "\n",
			want:  []string{"deps/with space"},
		},
		{
			name:  "quoted path with escaped quote",
			input: ` ` + testSHA1 + ` "deps/quo\"ted"` + "\n",
			want:  []string{`deps/quo"ted`},
		},
		{
			name:  "quoted path with octal escapes",
			input: ` ` + testSHA1 + ` "deps/\303\244"` + "\n",
			want:  []string{"deps/ä"},
		},
		{
			name:  "multiple entries keep listing order",
			input: " " + testSHA1 + " deps/zlib (v1.3)\n " + testSHA1 + " deps/harfbuzz (v8.3.0)\n",
			want:  []string{"deps/zlib", "deps/harfbuzz"},
		},
		{
			name:  "blank lines are skipped",
			input: "\n " + testSHA1 + " deps/harfbuzz\n\n   \n",
			want:  []string{"deps/harfbuzz"},
		},
		{
			name:  "empty listing",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseSubmoduleStatus(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ParseSubmoduleStatus() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSubmoduleStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseSubmoduleStatus_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "free text", input: "fatal: not a git repository\n"},
		{name: "short object name", input: " abc123 deps/x\n"},
		{name: "missing path", input: " " + testSHA1 + "\n"},
		{name: "unterminated quote", input: ` ` + testSHA1 + ` "deps/x` + "\n"},
		{name: "empty quoted path", input: ` ` + testSHA1 + ` ""` + "\n"},
		{name: "uppercase hex", input: " " + strings.ToUpper(testSHA1) + " deps/x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseSubmoduleStatus(strings.NewReader(tt.input))
			if !errors.Is(err, ErrMalformedSubmoduleStatus) {
				t.Errorf("ParseSubmoduleStatus() error = %v, want ErrMalformedSubmoduleStatus", err)
			}
		})
	}
}

func TestEnumerateSubmodules(t *testing.T) {
	// Not parallel: replaces the runGit seam.
	orig := runGit
	t.Cleanup(func() { runGit = orig })

	var gotDir string
	var gotArgs []string
	runGit = func(_ context.Context, dir string, args ...string) ([]byte, error) {
		gotDir = dir
		gotArgs = args
		return []byte(" " + testSHA1 + " deps/zlib (v1.3)\n " + testSHA1 + " deps/harfbuzz\n"), nil
	}

	paths, err := EnumerateSubmodules(context.Background(), "/src/project")
	if err != nil {
		t.Fatalf("EnumerateSubmodules() error = %v", err)
	}

	want := []string{"deps/zlib", "deps/harfbuzz"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("EnumerateSubmodules() = %v, want %v", paths, want)
	}
	if gotDir != "/src/project" {
		t.Errorf("runGit dir = %q, want %q", gotDir, "/src/project")
	}
	if !reflect.DeepEqual(gotArgs, []string{"submodule", "status"}) {
		t.Errorf("runGit args = %v, want [submodule status]", gotArgs)
	}
}

func TestEnumerateSubmodules_ListingError(t *testing.T) {
	// Not parallel: replaces the runGit seam.
	orig := runGit
	t.Cleanup(func() { runGit = orig })

	listErr := fmt.Errorf("git submodule status: exit status 128")
	runGit = func(_ context.Context, _ string, _ ...string) ([]byte, error) {
		return nil, listErr
	}

	_, err := EnumerateSubmodules(context.Background(), "/src/project")
	if !errors.Is(err, listErr) {
		t.Errorf("EnumerateSubmodules() error = %v, want wrapped listing error", err)
	}
}

func TestEnumerateSubmodules_RealGitOutsideRepo(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}

	_, err := EnumerateSubmodules(context.Background(), t.TempDir())
	if err == nil {
		t.Fatal("EnumerateSubmodules() expected error outside a repository")
	}
}
