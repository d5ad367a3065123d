package common

// BuildInfo carries version metadata surfaced in startup logs. Build holds
// fixed literal values; as a struct variable it cannot be set with
// -ldflags -X.
type BuildInfo struct {
	Name    string
	Version string
	Commit  string
}

// Build is the process-wide build identity.
var Build = BuildInfo{
	Name:    "tylewm",
	Version: "dev",
	Commit:  "none",
}

// Summary renders a single-line identifier for startup log lines.
func (b BuildInfo) Summary() string {
	return b.Name + " " + b.Version + " (" + b.Commit + ")"
}
