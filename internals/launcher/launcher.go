package launcher

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/minepkg/openlauncher/internals/auth"
	"github.com/minepkg/openlauncher/internals/logging"
	"github.com/minepkg/openlauncher/internals/merrors"
	"github.com/minepkg/openlauncher/internals/tasks"
	"github.com/pkg/errors"
)

// Mode is client or server
type Mode uint8

const (
	ModeClient Mode = iota
	ModeServer
)

func (m Mode) String() string {
	if m == ModeServer {
		return "server"
	}
	return "client"
}

// Tweak transforms the final command line. Tweaks run in the order they were configured.
type Tweak func(command string) string

// SetupFunc stages everything a version needs on disk (manifest, jars, libraries, assets).
// It is provided by the caller, the launcher only runs it.
type SetupFunc func(ctx context.Context, root string, version string, mode Mode) error

// Config is used to create a Launcher
type Config struct {
	// Root is the game root. The launcher exclusively owns it while running
	Root string
	// RuntimeRoot contains the java runtime families. Defaults to <Root>/java
	RuntimeRoot string
	Mode        Mode
	Tweaks      []Tweak
	// Auth is absent for launches without login
	Auth auth.Capability
	// JarName overwrites the main jar suffix, "client" or "server" by default
	JarName string
	// Setup is the acquisition step. nil skips it
	Setup SetupFunc
	Tasks []tasks.Task

	LauncherName    string
	LauncherVersion string

	// Stdout and Stderr receive the game output (default os.Stdout and os.Stderr)
	Stdout io.Writer
	Stderr io.Writer
	// Stdin is passed to the game in server mode (default os.Stdin)
	Stdin io.Reader
}

// Launcher launches one game root. Launch only works after Setup was called once.
type Launcher struct {
	cfg     Config
	runner  *tasks.Runner
	isSetUp bool
}

// New returns a launcher that is not set up yet
func New(cfg Config) *Launcher {
	if cfg.RuntimeRoot == "" {
		cfg.RuntimeRoot = filepath.Join(cfg.Root, "java")
	}
	if cfg.JarName == "" {
		cfg.JarName = cfg.Mode.String()
	}
	if cfg.LauncherName == "" {
		cfg.LauncherName = "openlauncher"
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	if cfg.Stdin == nil {
		cfg.Stdin = os.Stdin
	}
	return &Launcher{cfg: cfg, runner: tasks.NewRunner(cfg.Tasks...)}
}

// Root returns the game root
func (l *Launcher) Root() string {
	return l.cfg.Root
}

// IsSetUp returns true after Setup succeeded once
func (l *Launcher) IsSetUp() bool {
	return l.isSetUp
}

// AddTask registers another task for following launches
func (l *Launcher) AddTask(t tasks.Task) {
	l.runner.Add(t)
}

// Setup runs the setup collaborator for version and creates the assets dir.
// It can be called again, for example after Clear.
func (l *Launcher) Setup(ctx context.Context, version string) error {
	logging.Log.Infow("setting up", "version", version, "root", l.cfg.Root, "mode", l.cfg.Mode)

	if l.cfg.Setup != nil {
		if err := l.cfg.Setup(ctx, l.cfg.Root, version, l.cfg.Mode); err != nil {
			return errors.Wrapf(err, "setup of %s failed", version)
		}
	}

	assets := filepath.Join(l.cfg.Root, "assets")
	if err := os.MkdirAll(assets, os.ModePerm); err != nil {
		return &merrors.IOError{Op: "create assets dir", Path: assets, Err: err}
	}

	l.isSetUp = true
	return nil
}

// Clear removes everything inside the root directory.
// It does not reset the setup state, call Setup again before the next launch.
func (l *Launcher) Clear() error {
	root, err := filepath.Abs(l.cfg.Root)
	if err != nil {
		return &merrors.IOError{Op: "clear", Path: l.cfg.Root, Err: err}
	}
	if l.cfg.Root == "" || root == filepath.Dir(root) {
		return &merrors.ConfigError{Reason: "refusing to clear " + root}
	}
	if home, err := os.UserHomeDir(); err == nil && root == filepath.Clean(home) {
		return &merrors.ConfigError{Reason: "refusing to clear the home directory"}
	}

	logging.Log.Infow("clearing root", "root", root)
	if err := os.RemoveAll(root); err != nil {
		return &merrors.IOError{Op: "clear", Path: root, Err: err}
	}
	if err := os.MkdirAll(root, os.ModePerm); err != nil {
		return &merrors.IOError{Op: "clear", Path: root, Err: err}
	}
	return nil
}
