// Package version reports build metadata for the loanbook binary.
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
	"time"
)

// Set with -ldflags "-X git.sr.ht/~jakintosh/loanbook/internal/version.rawVersion=v1.0.0".
var (
	rawVersion = "dev"
	rawCommit  = ""
	rawDate    = ""
)

const unknown = "unknown"

type Info struct {
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
}

// String renders the one-line form printed by "loanbook version".
func (i Info) String() string {
	return fmt.Sprintf("loanbook %s (commit %s, built %s, %s)", i.Version, i.Commit, i.BuildDate, i.GoVersion)
}

var (
	infoOnce sync.Once
	info     Info
)

// Get returns the link-time metadata, completed from the embedded build info.
func Get() Info {
	infoOnce.Do(func() {
		bi, _ := debug.ReadBuildInfo()
		info = resolve(rawVersion, rawCommit, rawDate, bi)
	})
	return info
}

func resolve(version, commit, date string, bi *debug.BuildInfo) Info {
	i := Info{
		Version:   strings.TrimSpace(version),
		Commit:    strings.TrimSpace(commit),
		BuildDate: strings.TrimSpace(date),
	}

	if bi != nil {
		i.GoVersion = bi.GoVersion
		if isDevVersion(i.Version) && strings.HasPrefix(bi.Main.Version, "v") {
			i.Version = bi.Main.Version
		}
		if i.Commit == "" {
			if rev := setting(bi.Settings, "vcs.revision"); rev != "" {
				i.Commit = shorten(rev)
				if setting(bi.Settings, "vcs.modified") == "true" {
					i.Commit += "-dirty"
				}
			}
		}
		if i.BuildDate == "" {
			if t := setting(bi.Settings, "vcs.time"); t != "" {
				if parsed, err := time.Parse(time.RFC3339, t); err == nil {
					t = parsed.UTC().Format(time.DateOnly)
				}
				i.BuildDate = t
			}
		}
	}

	if isDevVersion(i.Version) {
		i.Version = "dev"
	}
	for _, field := range []*string{&i.Commit, &i.BuildDate, &i.GoVersion} {
		if *field == "" {
			*field = unknown
		}
	}
	return i
}

func setting(settings []debug.BuildSetting, key string) string {
	for _, s := range settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}

func isDevVersion(v string) bool {
	return v == "" || v == "dev" || v == "(devel)"
}

func shorten(commit string) string {
	const shortLen = 12
	if len(commit) <= shortLen {
		return commit
	}
	return commit[:shortLen]
}
