/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package version

import "testing"

func setVars(t *testing.T, v, commit, tag, dirty string) {
	t.Helper()
	old := [4]string{Version, GitCommit, GitTag, GitDirty}
	Version, GitCommit, GitTag, GitDirty = v, commit, tag, dirty
	t.Cleanup(func() {
		Version, GitCommit, GitTag, GitDirty = old[0], old[1], old[2], old[3]
	})
}

func TestGet(t *testing.T) {
	tests := []struct {
		name                      string
		version, commit, tag, dir string
		want                      string
	}{
		{"ldflags version", "v1.2.3", "unknown", "unknown", "", "v1.2.3"},
		{"tag and commit", "dev", "abcdef0123456", "v0.4.0", "", "v0.4.0-abcdef0"},
		{"dirty tree", "dev", "abcdef0123456", "v0.4.0", "dirty", "v0.4.0-abcdef0-dirty"},
		{"tag already has commit", "dev", "abcdef0", "v0.4.0-abcdef0", "", "v0.4.0-abcdef0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setVars(t, tt.version, tt.commit, tt.tag, tt.dir)
			if got := Get(); got != tt.want {
				t.Errorf("Get() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFull(t *testing.T) {
	setVars(t, "v1.0.0", "0123456789", "unknown", "")
	if got, want := Full(), "v1.0.0 (commit: 0123456789)"; got != want {
		t.Errorf("Full() = %q, want %q", got, want)
	}
}

func TestInfo(t *testing.T) {
	setVars(t, "v1.0.0", "unknown", "unknown", "")
	info := Info()
	if info["version"] != "v1.0.0" {
		t.Errorf("version = %q", info["version"])
	}
	if info["goVersion"] == "" || info["platform"] == "" {
		t.Errorf("missing runtime fields: %v", info)
	}
}
