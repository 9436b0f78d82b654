package minecraft

import (
	"fmt"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/minepkg/openlauncher/internals/logging"
)

// Substitutions are the values available to `${token}` placeholders in launch arguments
type Substitutions struct {
	VersionName string
	// VersionType is release, snapshot …
	VersionType   string
	AssetsIndexID string

	GameDir    string
	AssetsDir  string
	NativesDir string
	LibraryDir string
	Classpath  string

	// Username is the player name
	Username string
	// UUID, AccessToken and UserType come from authentication and stay empty in offline launches
	UUID        string
	AccessToken string
	UserType    string

	LauncherName    string
	LauncherVersion string
}

// tokens returns the placeholder names with their values
func (s *Substitutions) tokens() map[string]string {
	return map[string]string{
		"auth_player_name":  s.Username,
		"auth_uuid":         s.UUID,
		"auth_access_token": s.AccessToken,
		// legacy manifests
		"auth_session": s.AccessToken,
		"user_type":    s.UserType,
		// user_properties is always an empty json object
		"user_properties":     "{}",
		"version_name":        s.VersionName,
		"version_type":        s.VersionType,
		"game_directory":      s.GameDir,
		"assets_root":         s.AssetsDir,
		"game_assets":         s.AssetsDir,
		"assets_index_name":   s.AssetsIndexID,
		"natives_directory":   s.NativesDir,
		"library_directory":   s.LibraryDir,
		"classpath":           s.Classpath,
		"classpath_separator": cpSeparator(),
		"launcher_name":       s.LauncherName,
		"launcher_version":    s.LauncherVersion,
	}
}

// replacer builds a string replacer for all known `${token}`s.
// When quote is set, every value is shell quoted so it stays a single token.
func (s *Substitutions) replacer(quote bool) *strings.Replacer {
	tokens := s.tokens()
	replacerArgs := make([]string, 0, len(tokens)*2)
	for k, v := range tokens {
		if quote {
			v = shellescape.Quote(v)
		}
		replacerArgs = append(replacerArgs, "${"+k+"}", v)
	}
	return strings.NewReplacer(replacerArgs...)
}

// GenerateArguments returns the game arguments of the manifest with all known
// placeholders substituted. Unknown placeholders are kept as they are.
//
// Legacy manifests have their template substituted in place. For modern manifests
// all game arguments whose rules allow the current platform are emitted in manifest order.
// Every substituted value is quoted where needed, so it always stays one token of the command line.
func GenerateArguments(m *VersionManifest, s *Substitutions) (string, error) {
	return generateArgumentsFor(m, s, CurrentPlatform())
}

func generateArgumentsFor(m *VersionManifest, s *Substitutions, p Platform) (string, error) {
	if err := m.Validate(); err != nil {
		return "", err
	}

	if m.IsLegacy() {
		logging.Log.Debugw("using legacy minecraftArguments", "version", m.ID)
		return s.replacer(true).Replace(m.MinecraftArguments), nil
	}

	if m.Arguments == nil {
		return "", nil
	}
	return strings.Join(modernArguments(m.Arguments.Game, s, p), " "), nil
}

// GenerateModernJVMArguments returns the manifest's own jvm arguments (modern manifests only).
// Classpath arguments are left out, the launcher adds its own.
func GenerateModernJVMArguments(m *VersionManifest, s *Substitutions) []string {
	if m.Arguments == nil {
		return nil
	}
	return modernArguments(withoutClasspath(m.Arguments.JVM), s, CurrentPlatform())
}

func modernArguments(list []Argument, s *Substitutions, p Platform) []string {
	replacer := s.replacer(false)

	args := make([]string, 0, len(list))
	for _, arg := range list {
		// skip here rules do not apply
		if !arg.Rules.AllowedOn(p) {
			continue
		}
		for _, v := range arg.Value {
			replaced := replacer.Replace(v)
			if strings.Contains(replaced, "${") {
				logging.Log.Warnw("found unresolvable variable in launch args", "arg", replaced)
			}
			args = append(args, shellescape.Quote(replaced))
		}
	}
	return args
}

// withoutClasspath drops "-cp ${classpath}" pairs
func withoutClasspath(list []Argument) []Argument {
	filtered := make([]Argument, 0, len(list))
	skipNext := false
	for _, arg := range list {
		if skipNext {
			skipNext = false
			continue
		}
		if len(arg.Value) == 1 && (arg.Value[0] == "-cp" || arg.Value[0] == "-classpath") {
			skipNext = true
			continue
		}
		if len(arg.Value) == 1 && arg.Value[0] == "${classpath}" {
			continue
		}
		filtered = append(filtered, arg)
	}
	return filtered
}

// GenerateJVMArguments returns the heap size flag followed by extraFlags verbatim.
// maxMemoryMiB is expected to be positive, it is not validated.
func GenerateJVMArguments(maxMemoryMiB int, extraFlags string) string {
	heap := fmt.Sprintf("-Xmx%dM", maxMemoryMiB)
	if extraFlags == "" {
		return heap
	}
	return heap + " " + extraFlags
}
