// SPDX-License-Identifier: MPL-2.0

package release

import "testing"

func TestArtifactBaseName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		project   string
		tag       string
		scheduled bool
		want      string
	}{
		{
			name:    "tagged release",
			project: "srcpack",
			tag:     "20260830-120000",
			want:    "srcpack-20260830-120000-src",
		},
		{
			name:      "scheduled run ignores the tag",
			project:   "srcpack",
			tag:       "20260830-120000",
			scheduled: true,
			want:      "srcpack-nightly-src",
		},
		{
			name:      "scheduled name is stable across tags",
			project:   "srcpack",
			tag:       "20270101-000000",
			scheduled: true,
			want:      "srcpack-nightly-src",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ArtifactBaseName(tt.project, tt.tag, tt.scheduled); got != tt.want {
				t.Errorf("ArtifactBaseName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrefix(t *testing.T) {
	t.Parallel()

	got := Prefix("srcpack", "20260830-120000")
	want := "srcpack-20260830-120000/"
	if got != want {
		t.Errorf("Prefix() = %q, want %q", got, want)
	}
}
