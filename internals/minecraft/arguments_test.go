package minecraft

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/minepkg/openlauncher/internals/merrors"
)

func steve() *Substitutions {
	return &Substitutions{
		VersionName:   "1.18.2",
		VersionType:   "release",
		AssetsIndexID: "1.18",
		GameDir:       "/games/mc",
		AssetsDir:     "/games/mc/assets",
		Username:      "Steve",
	}
}

func TestGenerateArguments_legacy(t *testing.T) {
	tests := []struct {
		name     string
		template string
		subs     func(s *Substitutions)
		want     string
	}{
		{
			name:     "all known tokens",
			template: "--username ${auth_player_name} --version ${version_name} --gameDir ${game_directory} --assetsDir ${assets_root} --assetIndex ${assets_index_name} --versionType ${version_type}",
			want:     "--username Steve --version 1.18.2 --gameDir /games/mc --assetsDir /games/mc/assets --assetIndex 1.18 --versionType release",
		},
		{
			name:     "user properties are an empty object",
			template: "--userProperties ${user_properties}",
			want:     "--userProperties '{}'",
		},
		{
			name:     "unknown placeholders pass through",
			template: "--username ${auth_player_name} --tweakClass ${some_tweak} ${}",
			want:     "--username Steve --tweakClass ${some_tweak} ${}",
		},
		{
			name:     "missing auth stays a single empty token",
			template: "--uuid ${auth_uuid} --accessToken ${auth_access_token} --session ${auth_session} --userType ${user_type}",
			want:     "--uuid '' --accessToken '' --session '' --userType ''",
		},
		{
			name:     "auth tokens",
			template: "--uuid ${auth_uuid} --accessToken ${auth_access_token} --userType ${user_type}",
			subs: func(s *Substitutions) {
				s.UUID = "069a79f444e94726a5befca90e38aaf5"
				s.AccessToken = "token"
				s.UserType = "msa"
			},
			want: "--uuid 069a79f444e94726a5befca90e38aaf5 --accessToken token --userType msa",
		},
		{
			name:     "values with spaces are quoted",
			template: "--gameDir ${game_directory}",
			subs: func(s *Substitutions) {
				s.GameDir = "/home/steve/my games"
			},
			want: "--gameDir '/home/steve/my games'",
		},
		{
			name:     "old templates use game_assets",
			template: "${auth_player_name} ${auth_session} --gameDir ${game_directory} --assetsDir ${game_assets}",
			want:     "Steve '' --gameDir /games/mc --assetsDir /games/mc/assets",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := steve()
			if tt.subs != nil {
				tt.subs(s)
			}
			m := &VersionManifest{MinecraftArguments: tt.template, MainClass: "Main", Assets: "1.18"}
			got, err := GenerateArguments(m, s)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("GenerateArguments() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

const modernManifest = `{
	"id": "1.18.2",
	"mainClass": "net.minecraft.client.main.Main",
	"assetIndex": {"id": "1.18"},
	"arguments": {
		"game": [
			"--username", "${auth_player_name}",
			"--version", "${version_name}",
			{"rules": [{"action": "allow", "features": {"is_demo_user": true}}], "value": "--demo"},
			{"rules": [{"action": "allow", "os": {"name": "windows"}}], "value": ["--win", "yes"]},
			{"rules": [{"action": "allow", "os": {"name": "linux"}}], "value": ["--linux", "yes"]},
			"--assetIndex", "${assets_index_name}"
		],
		"jvm": [
			{"rules": [{"action": "allow", "os": {"name": "osx"}}], "value": ["-XstartOnFirstThread"]},
			"-Djava.library.path=${natives_directory}",
			"-cp",
			"${classpath}",
			"-Dminecraft.launcher.brand=${launcher_name}"
		]
	},
	"libraries": []
}`

func TestGenerateArguments_modern(t *testing.T) {
	m := &VersionManifest{}
	if err := json.Unmarshal([]byte(modernManifest), m); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		platform Platform
		want     string
	}{
		{
			name:     "linux",
			platform: Platform{OS: "linux", Arch: "amd64"},
			want:     "--username Steve --version 1.18.2 --linux yes --assetIndex 1.18",
		},
		{
			name:     "windows",
			platform: Platform{OS: "windows", Arch: "amd64"},
			want:     "--username Steve --version 1.18.2 --win yes --assetIndex 1.18",
		},
		{
			name:     "mac gets no os specific args",
			platform: Platform{OS: "darwin", Arch: "arm64"},
			want:     "--username Steve --version 1.18.2 --assetIndex 1.18",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := generateArgumentsFor(m, steve(), tt.platform)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("generateArgumentsFor() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestGenerateArguments_modernQuotesWholeTokens(t *testing.T) {
	m := &VersionManifest{
		MainClass: "Main",
		Assets:    "5",
		Arguments: &Arguments{Game: []Argument{
			{Value: stringSlice{"--gameDir"}},
			{Value: stringSlice{"${game_directory}"}},
			{Value: stringSlice{"--accessToken"}},
			{Value: stringSlice{"${auth_access_token}"}},
		}},
	}
	s := steve()
	s.GameDir = "C:\\Users\\Steve\\App Data"

	got, err := GenerateArguments(m, s)
	if err != nil {
		t.Fatal(err)
	}
	want := `--gameDir 'C:\Users\Steve\App Data' --accessToken ''`
	if got != want {
		t.Errorf("GenerateArguments() = %s, want %s", got, want)
	}
}

func TestGenerateArguments_noArguments(t *testing.T) {
	m := &VersionManifest{MainClass: "Main", Assets: "5"}
	got, err := GenerateArguments(m, steve())
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("expected no arguments, got %q", got)
	}
}

func TestGenerateArguments_missingFields(t *testing.T) {
	tests := []struct {
		name      string
		manifest  *VersionManifest
		wantField string
	}{
		{
			name:      "main class",
			manifest:  &VersionManifest{Assets: "5", MinecraftArguments: "--username ${auth_player_name}"},
			wantField: "mainClass",
		},
		{
			name:      "asset index",
			manifest:  &VersionManifest{MainClass: "Main"},
			wantField: "assets",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateArguments(tt.manifest, steve())
			var manErr *merrors.ManifestError
			if !errors.As(err, &manErr) {
				t.Fatalf("expected a ManifestError, got %v", err)
			}
			if manErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", manErr.Field, tt.wantField)
			}
			if merrors.KindOf(err) != merrors.KindConfiguration {
				t.Errorf("KindOf() = %s, want configuration", merrors.KindOf(err))
			}
		})
	}
}

func TestModernJVMArguments(t *testing.T) {
	m := &VersionManifest{}
	if err := json.Unmarshal([]byte(modernManifest), m); err != nil {
		t.Fatal(err)
	}
	s := steve()
	s.NativesDir = "/games/mc/natives"
	s.LauncherName = "openlauncher"

	got := modernArguments(withoutClasspath(m.Arguments.JVM), s, Platform{OS: "darwin", Arch: "arm64"})
	want := []string{
		"-XstartOnFirstThread",
		"-Djava.library.path=/games/mc/natives",
		"-Dminecraft.launcher.brand=openlauncher",
	}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("modernArguments() = %v, want %v", got, want)
	}

	if GenerateModernJVMArguments(&VersionManifest{MinecraftArguments: "x"}, s) != nil {
		t.Error("legacy manifests should not have jvm arguments")
	}
}

func TestGenerateJVMArguments(t *testing.T) {
	tests := []struct {
		mem   int
		extra string
		want  string
	}{
		{2048, "", "-Xmx2048M"},
		{512, "-XX:+UseG1GC -Dfoo=bar", "-Xmx512M -XX:+UseG1GC -Dfoo=bar"},
	}
	for _, tt := range tests {
		if got := GenerateJVMArguments(tt.mem, tt.extra); got != tt.want {
			t.Errorf("GenerateJVMArguments(%d, %q) = %q, want %q", tt.mem, tt.extra, got, tt.want)
		}
	}
}
