package minecraft

import (
	"path/filepath"
	"runtime"
	"strings"

	"github.com/minepkg/openlauncher/internals/merrors"
)

// Libraries as a collection of minecraft libs
type Libraries []Library

// RequiredOn returns only the libraries needed on platform p (matching rules).
// Order is preserved, it decides class loading precedence.
func (l Libraries) RequiredOn(p Platform) Libraries {
	required := make(Libraries, 0, len(l))

	for _, lib := range l {
		// did some rules not apply? skip this library
		if !lib.Rules.AllowedOn(p) {
			continue
		}

		// skip natives only entries not available for this platform
		if len(lib.Natives) != 0 && !lib.hasArtifact() {
			if _, ok := lib.Natives[mojangOS(p.OS)]; !ok {
				continue
			}
		}

		required = append(required, lib)
	}

	return required
}

// Library is a minecraft library
type Library struct {
	// Name is the maven coordinate: group:artifact:version[:classifier]
	Name      string `json:"name"`
	Downloads struct {
		Artifact Artifact `json:"artifact"`
		// Classifiers is a list of additional artifacts.
		// It is used to download native libraries.
		// The `Natives` field is used to determine which classifier to use.
		// This field is no longer used after 1.19
		Classifiers map[string]Artifact `json:"classifiers"`
	} `json:"downloads,omitempty"`
	// Rules is a list of rules that determine whether this library should be included.
	// If no rules are specified, the library is included by default.
	Rules Rules `json:"rules"`
	// Natives is a map of OS names to native classifier names.
	// This field is no longer used after 1.19
	Natives map[string]string `json:"natives"`
}

// hasArtifact is true if the entry ships a main jar next to its natives
func (l *Library) hasArtifact() bool {
	return l.Downloads.Artifact.Path != "" || l.Downloads.Artifact.URL != ""
}

// Filepaths returns the jars of this library relative to the libraries dir.
// Entries with natives for p return the main artifact (if there is one) followed by the native classifier.
func (l *Library) Filepaths(p Platform) ([]string, error) {
	nativeID := l.Natives[mojangOS(p.OS)]
	if nativeID == "" {
		main, err := l.artifactPath()
		if err != nil {
			return nil, err
		}
		return []string{main}, nil
	}

	var paths []string
	if l.hasArtifact() {
		main, err := l.artifactPath()
		if err != nil {
			return nil, err
		}
		paths = append(paths, main)
	}

	nativeID = strings.ReplaceAll(nativeID, "${arch}", archBits(p.Arch))
	if native, ok := l.Downloads.Classifiers[nativeID]; ok && native.Path != "" {
		return append(paths, filepath.FromSlash(native.Path)), nil
	}
	native, err := mavenPath(l.Name, nativeID)
	if err != nil {
		return nil, err
	}
	return append(paths, native), nil
}

func (l *Library) artifactPath() (string, error) {
	if libPath := l.Downloads.Artifact.Path; libPath != "" {
		return filepath.FromSlash(libPath), nil
	}
	return mavenPath(l.Name, "")
}

// mavenPath turns group:artifact:version[:classifier] into
// group/as/dirs/artifact/version/artifact-version[-classifier].jar
func mavenPath(name string, classifier string) (string, error) {
	grouped := strings.Split(name, ":")
	if len(grouped) < 3 {
		return "", &merrors.LibraryError{Name: name, Reason: "expected group:artifact:version"}
	}
	for _, segment := range grouped {
		if segment == "" {
			return "", &merrors.LibraryError{Name: name, Reason: "empty coordinate segment"}
		}
	}

	basePath := filepath.Join(strings.Split(grouped[0], ".")...)
	artifactID, version := grouped[1], grouped[2]
	if classifier == "" && len(grouped) > 3 {
		classifier = grouped[3]
	}

	file := artifactID + "-" + version
	if classifier != "" {
		file += "-" + classifier
	}
	return filepath.Join(basePath, artifactID, version, file+".jar"), nil
}

// ResolveClasspath returns the paths of all required libraries below <root>/libraries,
// joined in manifest order with the classpath separator of the current platform.
// It does not check if the files exist.
func ResolveClasspath(root string, m *VersionManifest) (string, error) {
	paths, err := resolveLibraryPaths(root, m, CurrentPlatform())
	if err != nil {
		return "", err
	}
	return strings.Join(paths, cpSeparator()), nil
}

func resolveLibraryPaths(root string, m *VersionManifest, p Platform) ([]string, error) {
	libDir := filepath.Join(root, "libraries")
	libs := m.Libraries.RequiredOn(p)

	paths := make([]string, 0, len(libs))
	for _, lib := range libs {
		libPaths, err := lib.Filepaths(p)
		if err != nil {
			return nil, err
		}
		for _, libPath := range libPaths {
			paths = append(paths, filepath.Join(libDir, libPath))
		}
	}
	return paths, nil
}

func cpSeparator() string {
	if runtime.GOOS == "windows" {
		return ";"
	}
	return ":"
}

// mojangOS maps Go os names to the ones used in manifests
func mojangOS(goos string) string {
	if goos == "darwin" {
		return "osx"
	}
	return goos
}

func archBits(goarch string) string {
	switch goarch {
	case "386", "arm":
		return "32"
	}
	return "64"
}
