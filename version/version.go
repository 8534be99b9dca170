// Package version reports the contractkit release and the VCS state the binary was built from.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"time"
)

// Release details. Each may be pinned through -ldflags "-X"; VCS fields left empty are filled from the build info
// the Go toolchain embeds.
var (
	Version    = "1.0.0"
	Commit     = ""
	CommitTime = ""
	Modified   = ""
)

// shortCommitLength is the number of revision characters shown in short version strings.
const shortCommitLength = 7

// Info describes a contractkit build.
type Info struct {
	Version    string
	Commit     string
	CommitTime string
	Modified   bool
	GoVersion  string
	Platform   string
}

func init() {
	applyBuildSettings(debug.ReadBuildInfo())
}

// applyBuildSettings copies the embedded VCS settings into the release details which were not pinned at link time.
func applyBuildSettings(info *debug.BuildInfo, ok bool) {
	if !ok {
		return
	}
	targets := map[string]*string{
		"vcs.revision": &Commit,
		"vcs.time":     &CommitTime,
		"vcs.modified": &Modified,
	}
	for _, setting := range info.Settings {
		if target, found := targets[setting.Key]; found && *target == "" {
			*target = setting.Value
		}
	}
}

// GetInfo returns the build description of the running binary.
func GetInfo() Info {
	return Info{
		Version:    Version,
		Commit:     Commit,
		CommitTime: CommitTime,
		Modified:   Modified == "true",
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Revision returns the abbreviated commit, suffixed with "-dirty" for builds of a modified tree. It is empty when
// no commit is known.
func (i Info) Revision() string {
	if i.Commit == "" {
		return ""
	}
	revision := i.Commit
	if len(revision) > shortCommitLength {
		revision = revision[:shortCommitLength]
	}
	if i.Modified {
		revision += "-dirty"
	}
	return revision
}

// BuildTime renders the commit time in UTC, or "unknown" when it is not recorded.
func (i Info) BuildTime() string {
	if i.CommitTime == "" {
		return "unknown"
	}
	t, err := time.Parse(time.RFC3339, i.CommitTime)
	if err != nil {
		return i.CommitTime
	}
	return t.UTC().Format("2006-01-02 15:04:05 MST")
}

// Short returns the version with its build metadata, as in 1.0.0+0123456-dirty.
func (i Info) Short() string {
	if revision := i.Revision(); revision != "" {
		return i.Version + "+" + revision
	}
	return i.Version
}

// String returns the multi-line report printed by the version command.
func (i Info) String() string {
	lines := []string{"contractkit version " + i.Version}
	if revision := i.Revision(); revision != "" {
		lines = append(lines, fmt.Sprintf("  commit:   %s", revision))
	}
	if i.CommitTime != "" {
		lines = append(lines, fmt.Sprintf("  built:    %s", i.BuildTime()))
	}
	lines = append(lines, fmt.Sprintf("  go:       %s", i.GoVersion))
	if i.Platform != "" {
		lines = append(lines, fmt.Sprintf("  platform: %s", i.Platform))
	}
	return strings.Join(lines, "\n") + "\n"
}
