// Package java finds the java runtime used to launch the game.
// Runtimes are installed by the setup into one directory per family:
//
//	<installRoot>/adoptopenjre8/<release>/bin/java
//	<installRoot>/adoptopenjre16/<release>/bin/java
package java

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/minepkg/openlauncher/internals/logging"
	"github.com/minepkg/openlauncher/internals/merrors"
	"golang.org/x/exp/slices"
)

const (
	// LegacyFamily is the java 8 runtime family used before 1.17
	LegacyFamily = "adoptopenjre8"
	// ModernFamily is the java 16 runtime family
	ModernFamily = "adoptopenjre16"
)

var firstModernVersion = semver.MustParse("1.17.0")

// Java is one installed java runtime
type Java struct {
	dir string
}

// Dir returns the root directory of this runtime
func (j *Java) Dir() string {
	return j.dir
}

// Bin returns the path to the java executable
func (j *Java) Bin() string {
	bin := "bin/java"
	switch runtime.GOOS {
	case "windows":
		bin = "bin/java.exe"
	case "darwin": // macOS
		// mac archives ship a bundle, only use it if there is one
		if _, err := os.Stat(filepath.Join(j.dir, "Contents/Home/bin/java")); err == nil {
			bin = "Contents/Home/bin/java"
		}
	}

	return filepath.Join(j.dir, filepath.FromSlash(bin))
}

// Family returns the runtime family directory name
func Family(useLegacy bool) string {
	if useLegacy {
		return LegacyFamily
	}
	return ModernFamily
}

// Locate returns the runtime in the family directory below installRoot.
// If the family contains multiple releases, the lexicographically smallest one is used.
func Locate(installRoot string, useLegacy bool) (*Java, error) {
	familyDir, err := filepath.Abs(filepath.Join(installRoot, Family(useLegacy)))
	if err != nil {
		return nil, &merrors.IOError{Op: "resolve runtime dir", Path: installRoot, Err: err}
	}

	entries, err := os.ReadDir(familyDir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, &merrors.RuntimeNotFoundError{Dir: familyDir, Reason: "directory does not exist"}
	case err != nil:
		return nil, &merrors.IOError{Op: "read runtime dir", Path: familyDir, Err: err}
	}

	releases := make([]string, 0, len(entries))
	for _, e := range entries {
		// leftovers of interrupted extractions
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if !e.IsDir() && !isDirLink(filepath.Join(familyDir, e.Name()), e) {
			continue
		}
		releases = append(releases, e.Name())
	}
	if len(releases) == 0 {
		return nil, &merrors.RuntimeNotFoundError{Dir: familyDir, Reason: "directory is empty"}
	}

	slices.Sort(releases)
	if len(releases) > 1 {
		logging.Log.Debugw("multiple java runtimes found", "family", familyDir, "using", releases[0], "found", releases)
	}

	return &Java{dir: filepath.Join(familyDir, releases[0])}, nil
}

// isDirLink is true for symlinks pointing to a directory
func isDirLink(path string, e fs.DirEntry) bool {
	if e.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// LocateRuntime returns the absolute path of the java executable for the given family.
// It does not check that the executable exists, only that a release directory does.
func LocateRuntime(installRoot string, useLegacy bool) (string, error) {
	j, err := Locate(installRoot, useLegacy)
	if err != nil {
		return "", err
	}
	logging.Log.Debugw("using java runtime", "dir", j.Dir())
	return j.Bin(), nil
}

// WantsLegacy returns true if the given minecraft version needs the java 8 family.
// Versions that are not semver (snapshots like 21w37a) use the modern family.
func WantsLegacy(version string) bool {
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	// 1.17 pre-releases already require java 16
	core, err := v.SetPrerelease("")
	if err != nil {
		return v.LessThan(firstModernVersion)
	}
	return core.LessThan(firstModernVersion)
}
