package launcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/minepkg/openlauncher/internals/auth"
	"github.com/minepkg/openlauncher/internals/config"
	"github.com/minepkg/openlauncher/internals/java"
	"github.com/minepkg/openlauncher/internals/merrors"
	"github.com/minepkg/openlauncher/internals/minecraft"
	"github.com/pkg/errors"
)

// JavaFamily selects the runtime family
type JavaFamily uint8

const (
	// JavaAuto uses the legacy family for versions before 1.17
	JavaAuto JavaFamily = iota
	JavaLegacy
	JavaModern
)

// LaunchOptions are the per launch parameters
type LaunchOptions struct {
	Version string
	// MaxMemoryMiB is the max heap size. 0 uses a heuristic based on the system memory
	MaxMemoryMiB int
	// ExtraJVMArgs are appended to the heap flag verbatim
	ExtraJVMArgs string
	JavaFamily   JavaFamily
	// Java overwrites the runtime executable. Skips the runtime lookup
	Java string
	// VersionType defaults to "release"
	VersionType string
	// Username is used when no auth capability is present
	Username string
	// Env is added to the environment of the game process
	Env []string
}

// command is an assembled launch command
type command struct {
	line string
	// secret is the access token, it is redacted from logs
	secret string
}

func (c *command) redacted() string {
	if c.secret == "" || c.secret == "0" {
		return c.line
	}
	return strings.ReplaceAll(c.line, c.secret, "<access token>")
}

// BuildCommand returns the launch command for opts without starting it.
// All tweaks are applied.
func (l *Launcher) BuildCommand(ctx context.Context, opts LaunchOptions) (string, error) {
	if !l.isSetUp {
		return "", merrors.ErrNotSetUp
	}
	cmd, err := l.buildCommand(ctx, &opts)
	if err != nil {
		return "", err
	}
	return cmd.line, nil
}

func (l *Launcher) versionDir(version string) string {
	return filepath.Join(l.cfg.Root, "versions", version)
}

func (l *Launcher) buildCommand(ctx context.Context, opts *LaunchOptions) (*command, error) {
	if opts.Version == "" {
		return nil, &merrors.ConfigError{Reason: "no version to launch"}
	}

	// always read fresh, the setup might have changed it
	manifestPath := filepath.Join(l.versionDir(opts.Version), opts.Version+".json")
	man, err := minecraft.ReadManifest(manifestPath)
	if err != nil {
		return nil, err
	}

	creds, err := l.credentials(ctx, opts)
	if err != nil {
		return nil, err
	}

	libs, err := minecraft.ResolveClasspath(l.cfg.Root, man)
	if err != nil {
		return nil, err
	}
	mainJar := filepath.Join(l.versionDir(opts.Version), opts.Version+"-"+l.cfg.JarName+".jar")
	classpath := mainJar
	if libs != "" {
		classpath += string(os.PathListSeparator) + libs
	}

	mem := opts.MaxMemoryMiB
	if mem <= 0 {
		mem = config.DefaultMemoryMiB(0)
	}

	versionType := opts.VersionType
	if versionType == "" {
		versionType = "release"
	}

	subs := &minecraft.Substitutions{
		VersionName:     opts.Version,
		VersionType:     versionType,
		AssetsIndexID:   man.AssetIndexID(),
		GameDir:         l.cfg.Root,
		AssetsDir:       filepath.Join(l.cfg.Root, "assets"),
		NativesDir:      filepath.Join(l.versionDir(opts.Version), "natives"),
		LibraryDir:      filepath.Join(l.cfg.Root, "libraries"),
		Classpath:       classpath,
		Username:        creds.Username,
		UUID:            creds.UUID,
		AccessToken:     creds.AccessToken,
		UserType:        creds.UserType,
		LauncherName:    l.cfg.LauncherName,
		LauncherVersion: l.cfg.LauncherVersion,
	}

	gameArgs, err := minecraft.GenerateArguments(man, subs)
	if err != nil {
		return nil, err
	}

	javaBin, err := l.javaBin(opts)
	if err != nil {
		return nil, err
	}

	parts := []string{
		shellescape.Quote(javaBin),
		minecraft.GenerateJVMArguments(mem, opts.ExtraJVMArgs),
	}
	parts = append(parts, minecraft.GenerateModernJVMArguments(man, subs)...)
	parts = append(parts, "-classpath", shellescape.Quote(classpath), shellescape.Quote(man.MainClass))
	if l.cfg.Mode == ModeServer {
		parts = append(parts, "nogui")
	}
	if gameArgs != "" {
		parts = append(parts, gameArgs)
	}

	line := strings.Join(parts, " ")
	for _, tweak := range l.cfg.Tweaks {
		line = tweak(line)
	}

	return &command{line: line, secret: creds.AccessToken}, nil
}

// credentials logs in if an auth capability is present. Without one only the username is set.
func (l *Launcher) credentials(ctx context.Context, opts *LaunchOptions) (*auth.Credentials, error) {
	provider, ok := l.cfg.Auth.Provider()
	if !ok {
		return &auth.Credentials{Username: opts.Username}, nil
	}

	creds, err := provider.Login(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "login failed")
	}
	return creds, nil
}

func (l *Launcher) javaBin(opts *LaunchOptions) (string, error) {
	if opts.Java != "" {
		return opts.Java, nil
	}

	var legacy bool
	switch opts.JavaFamily {
	case JavaLegacy:
		legacy = true
	case JavaModern:
		legacy = false
	default:
		legacy = java.WantsLegacy(opts.Version)
	}
	return java.LocateRuntime(l.cfg.RuntimeRoot, legacy)
}
