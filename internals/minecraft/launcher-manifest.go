package minecraft

import (
	"encoding/json"
	"os"

	"github.com/minepkg/openlauncher/internals/merrors"
)

// VersionManifest is a version.json manifest that is used to launch minecraft instances.
// It comes in two shapes: legacy manifests carry a single MinecraftArguments template,
// modern manifests carry rule lists in Arguments.
type VersionManifest struct {
	// ID is the version id ("1.16.5", "1.8.9" …)
	ID string `json:"id"`
	// MinecraftArguments are used before 1.13
	MinecraftArguments string `json:"minecraftArguments"`
	// Arguments is the new (complicated) system
	Arguments *Arguments `json:"arguments,omitempty"`
	Libraries Libraries  `json:"libraries"`
	// Type is release, snapshot, old_beta …
	Type      string `json:"type"`
	MainClass string `json:"mainClass"`
	// Assets is the asset index id
	Assets     string `json:"assets"`
	AssetIndex struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	} `json:"assetIndex"`
}

// Arguments holds the modern game and jvm rule lists
type Arguments struct {
	Game []Argument `json:"game"`
	JVM  []Argument `json:"jvm"`
}

// Argument is one entry of a modern argument list. Plain strings in the json
// become an Argument without rules.
type Argument struct {
	// Value is the actual argument
	Value stringSlice `json:"value"`
	Rules Rules       `json:"rules"`
}

// UnmarshalJSON is needed because an argument sometimes is a string
func (a *Argument) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '{' {
		// alias to avoid recursion
		type plain Argument
		var p plain
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*a = Argument(p)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	a.Value = stringSlice{str}
	a.Rules = nil
	return nil
}

// IsLegacy returns true if this manifest uses the old single template argument format
func (m *VersionManifest) IsLegacy() bool {
	return m.MinecraftArguments != ""
}

// AssetIndexID returns the asset index id. Older manifests only set "assets",
// some third party ones only "assetIndex.id"
func (m *VersionManifest) AssetIndexID() string {
	if m.Assets != "" {
		return m.Assets
	}
	return m.AssetIndex.ID
}

// Validate checks that all fields required to launch are set
func (m *VersionManifest) Validate() error {
	return m.validate("")
}

func (m *VersionManifest) validate(path string) error {
	switch {
	case m.MainClass == "":
		return &merrors.ManifestError{Path: path, Field: "mainClass"}
	case m.AssetIndexID() == "":
		return &merrors.ManifestError{Path: path, Field: "assets"}
	}
	return nil
}

// ReadManifest reads and validates the manifest at path.
// Missing files are IO errors, broken json and missing fields are manifest errors.
func ReadManifest(path string) (*VersionManifest, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, &merrors.IOError{Op: "read manifest", Path: path, Err: err}
	}

	man := &VersionManifest{}
	if err := json.Unmarshal(buf, man); err != nil {
		return nil, &merrors.ManifestError{Path: path, Field: "(json)", Err: err}
	}

	if err := man.validate(path); err != nil {
		return nil, err
	}
	return man, nil
}
