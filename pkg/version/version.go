package version

import (
	"github.com/carlmjohnson/versioninfo"
	"golang.org/x/mod/semver"
)

/* injected */

var release string

/* ** */

type GitInfo struct {
	Commit string `json:"commit"`
	Dirty  bool   `json:"dirty"`
}

type Info struct {
	Release string  `json:"release"`
	Git     GitInfo `json:"git"`
}

// IsRelease reports whether the build carries a semantic version tag
// rather than a development placeholder.
func (i Info) IsRelease() bool {
	return semver.IsValid(i.Release) && semver.Prerelease(i.Release) == ""
}

func Get() *Info {
	r := release

	if r == "" {
		r = "unknown"
	}

	return &Info{
		Release: r,
		Git: GitInfo{
			Commit: versioninfo.Revision,
			Dirty:  versioninfo.DirtyBuild,
		},
	}
}
