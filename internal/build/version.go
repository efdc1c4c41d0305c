package build

// Stamped at link time:
//
//	go build -ldflags "-X github.com/rohmanhakim/mauvaise-langue/internal/build.Version=1.0.0"
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

const productName = "mauvaise-langue"

// FullVersion returns the version string with commit hash appended.
// Format: "Version+Commit" (e.g., "1.0.0+abc123")
func FullVersion() string {
	return Version + "+" + Commit
}

// UserAgent is the default User-Agent sent to the wiki.
func UserAgent() string {
	return productName + "/" + Version
}
