package build_test

import (
	"testing"

	"github.com/rohmanhakim/mauvaise-langue/internal/build"
)

func TestFullVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		commit  string
		want    string
	}{
		{
			name:    "default values",
			version: "dev",
			commit:  "none",
			want:    "dev+none",
		},
		{
			name:    "version with commit",
			version: "1.0.0",
			commit:  "abc123",
			want:    "1.0.0+abc123",
		},
		{
			name:    "version with empty commit",
			version: "1.0.0",
			commit:  "",
			want:    "1.0.0+",
		},
	}

	origVersion, origCommit := build.Version, build.Commit
	t.Cleanup(func() {
		build.Version, build.Commit = origVersion, origCommit
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			build.Version = tt.version
			build.Commit = tt.commit

			got := build.FullVersion()
			if got != tt.want {
				t.Errorf("FullVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserAgent(t *testing.T) {
	orig := build.Version
	t.Cleanup(func() { build.Version = orig })

	build.Version = "1.2.3"
	if got := build.UserAgent(); got != "mauvaise-langue/1.2.3" {
		t.Errorf("UserAgent() = %q, want %q", got, "mauvaise-langue/1.2.3")
	}
}
