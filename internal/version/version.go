// Package version holds the tool identity embedded in hub metadata and
// shown by `svetlio version`.
package version

// Version is the current release. Overridable at build time via
// -ldflags "-X github.com/SPartenev/ai-svetlio-pro/internal/version.Version=...".
var Version = "2.1.0"
