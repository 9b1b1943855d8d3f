// Package version reports the version of fonative and what the binary was
// built for.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/kusumi/fileobj/pkg/native"
)

// Version represents the current version of fonative.
type Version struct {
	Major    string
	Minor    string
	Patch    string
	Metadata string
	// Build is the source revision. When empty it is taken from the VCS
	// stamp of the go command.
	Build string
}

// FonativeVersion is the current version of fonative.
var FonativeVersion = Version{Major: "0", Minor: "1", Patch: "0"}

// Semver returns MAJOR.MINOR.PATCH, followed by -METADATA if any.
func (v Version) Semver() string {
	s := v.Major + "." + v.Minor + "." + v.Patch
	if v.Metadata != "" {
		s += "-" + v.Metadata
	}
	return s
}

func (v Version) String() string {
	return fmt.Sprintf("Version: %s\nBuild: %s\nPlatform: %s", v.Semver(), v.revision(), Platform())
}

func (v Version) revision() string {
	if v.Build != "" {
		return v.Build
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	var rev string
	var dirty bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			rev = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	if rev == "" {
		return "unknown"
	}
	if dirty {
		rev += "-dirty"
	}
	return rev
}

// Platform describes the target and the native layers compiled in, for
// example "linux/amd64 (blkdev, ptrace, 8 byte words)".
func Platform() string {
	d := native.Describe()
	var layers []string
	if d.BlockDevice.Query {
		layers = append(layers, "blkdev")
	}
	switch {
	case d.Trace.WordAccess:
		layers = append(layers, "ptrace", fmt.Sprintf("%d byte words", d.WordSize))
	case d.Trace.Control:
		layers = append(layers, "ptrace control only")
	}
	if len(layers) == 0 {
		layers = append(layers, "no native support")
	}
	return fmt.Sprintf("%s/%s (%s)", runtime.GOOS, runtime.GOARCH, strings.Join(layers, ", "))
}

var buildInfo = func() string {
	return ""
}

// BuildInfo returns the Go version followed by the modules linked in.
func BuildInfo() string {
	return fmt.Sprintf("%s\n%s", runtime.Version(), buildInfo())
}
