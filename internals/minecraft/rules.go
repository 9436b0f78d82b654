package minecraft

import "runtime"

// Rule is a rule that can be applied to an argument or library.
// It can be used to determine if the argument or library should be applied to a specific OS.
type Rule struct {
	Action   string          `json:"action"`
	OS       OS              `json:"os"`
	Features map[string]bool `json:"features"`
}

// OS defines the feature of an OS that can be used in a [Rule] to determine if it should be applied.
type OS struct {
	Name string `json:"name"`
	// Version of the os (can be a regex string)
	Version string `json:"version"`
	// Arch of the system
	Arch string `json:"arch"`
}

// Platform is an os / arch pair in Go notation (runtime.GOOS, runtime.GOARCH)
type Platform struct {
	OS   string
	Arch string
}

// CurrentPlatform returns the platform this binary runs on
func CurrentPlatform() Platform {
	return Platform{OS: runtime.GOOS, Arch: runtime.GOARCH}
}

// Rules is a list of rules guarding one argument or library
type Rules []Rule

// AllowedOn returns true if every rule applies for the given platform.
// An empty rule list always applies.
func (rs Rules) AllowedOn(p Platform) bool {
	for _, r := range rs {
		if !r.appliesFor(p.OS, p.Arch) {
			return false
		}
	}
	return true
}

func (r Rule) appliesFor(os string, arch string) bool {
	if os == "darwin" {
		os = "osx"
	}

	if arch == "amd64" || arch == "x86_64" {
		arch = "x64"
	}

	if arch == "386" || arch == "i386" {
		arch = "x86"
	}

	if arch == "arm" {
		arch = "arm32"
	}

	// note: we don't know how other platforms are named

	// feature gated rules (demo mode, custom resolution …) are never enabled
	if len(r.Features) != 0 {
		return false
	}

	if r.Action == "allow" {
		// check name
		if r.OS.Name != "" && r.OS.Name != os {
			return false
		}

		// TODO: check version (regex), we deny it for now
		if r.OS.Version != "" {
			return false
		}

		// check arch
		if r.OS.Arch != "" && r.OS.Arch != arch {
			return false
		}

		// allow block matches os (or is empty)
		return true
	}
	if r.Action == "disallow" {
		// check name
		if r.OS.Name != "" && r.OS.Name == os {
			return false
		}

		// check arch
		if r.OS.Arch != "" && r.OS.Arch == arch {
			return false
		}

		// disallow block does not match os (or is empty)
		return true
	}

	// unknown action
	return true
}
