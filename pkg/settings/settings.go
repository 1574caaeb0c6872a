// Package settings provides build metadata, run configuration, and
// context helpers shared by the colkit CLI and its internal packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "colkit"

// VersionInformation is populated at build time via ldflags.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Output formats understood by the CLI.
const (
	OutputYAML     = "yaml"
	OutputJSON     = "json"
	OutputTOML     = "toml"
	OutputText     = "text"
	OutputMarkdown = "markdown"
	OutputHTML     = "html"
)

// Run holds the settings of a single CLI invocation.
type Run struct {
	MinLogLevel int8
	ConfigFile  string
	NoColor     bool
	Interactive bool
	Width       int
	Output      string
}

// NewCliParams returns the defaults used before flags and config are applied.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		NoColor:     false,
		Output:      OutputText,
	}
}

// LogLevel maps the --debug flag onto a zap level: -1 (debug) or 0 (info).
func LogLevel(debug bool) int8 {
	if debug {
		return -1
	}
	return 0
}
