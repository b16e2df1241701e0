// SPDX-License-Identifier: MPL-2.0

package release

// ArtifactBaseName returns the artifact file name without the ".tar.gz"
// extension. Scheduled (nightly) runs use a fixed, tag-independent name so
// that repeated unattended builds overwrite one well-known artifact; all
// other runs embed the resolved tag.
func ArtifactBaseName(project, tag string, scheduled bool) string {
	if scheduled {
		return project + "-nightly-src"
	}
	return project + "-" + tag + "-src"
}

// Prefix returns the single top-level directory under which every entry of
// the artifact lives. The prefix is always tag-qualified, including for
// scheduled runs: only the artifact file name is tag-independent.
func Prefix(project, tag string) string {
	return project + "-" + tag + "/"
}
