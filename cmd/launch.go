package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jwalton/gchalk"
	"github.com/minepkg/openlauncher/internals/auth"
	"github.com/minepkg/openlauncher/internals/commands"
	"github.com/minepkg/openlauncher/internals/fetch"
	"github.com/minepkg/openlauncher/internals/launcher"
	"github.com/minepkg/openlauncher/internals/logging"
	"github.com/minepkg/openlauncher/internals/logparser"
	"github.com/minepkg/openlauncher/internals/merrors"
	"github.com/minepkg/openlauncher/internals/ownhttp"
	"github.com/minepkg/openlauncher/internals/tasks"
	"github.com/spf13/cobra"
)

func init() {
	runner := &launchRunner{}
	cmd := commands.New(&cobra.Command{
		Use:     "launch <version>",
		Short:   "Launch a prepared Minecraft version",
		Long:    "The version has to be staged in <root>/versions/<version> (manifest, jar and libraries).",
		Aliases: []string{"run", "start", "play"},
		Args:    cobra.ExactArgs(1),
	}, runner)

	flags := cmd.Flags()
	flags.BoolVarP(&runner.server, "server", "s", false, "Start a server instead of a client")
	flags.IntVar(&runner.ram, "ram", 0, "Max heap size in MiB (default: based on the system memory)")
	flags.StringVar(&runner.jvmArgs, "jvm-args", "", "Additional java arguments")
	flags.StringVar(&runner.username, "username", "", "Player name used when not logged in")
	flags.BoolVar(&runner.offline, "offline", false, "Use an offline account (derived uuid, no access token)")
	flags.StringVar(&runner.javaFamily, "java-family", "auto", "Java runtime family to use: auto, legacy or modern")
	flags.StringVar(&runner.java, "java", "", "Use this java executable instead of a managed runtime")
	flags.StringVar(&runner.runtimeRoot, "runtime-root", "", "Directory containing the java runtime families")
	flags.StringVar(&runner.wrapper, "wrapper", "", "Prefix the java command with this (for example gamemoderun)")
	flags.StringSliceVar(&runner.mods, "mod", nil, "Download this mod jar into <root>/mods before starting")
	flags.BoolVar(&runner.dryRun, "dry-run", false, "Only print the launch command")

	v.BindPFlag("memory", flags.Lookup("ram"))
	v.BindPFlag("jvmArgs", flags.Lookup("jvm-args"))
	v.BindPFlag("server", flags.Lookup("server"))
	v.BindPFlag("username", flags.Lookup("username"))
	v.BindPFlag("runtimeRoot", flags.Lookup("runtime-root"))

	rootCmd.AddCommand(cmd.Command)
}

type launchRunner struct {
	server      bool
	ram         int
	jvmArgs     string
	username    string
	offline     bool
	javaFamily  string
	java        string
	runtimeRoot string
	wrapper     string
	mods        []string
	dryRun      bool
}

func (l *launchRunner) RunE(cmd *cobra.Command, args []string) error {
	version := args[0]
	cfg := globalConfig

	family, err := parseJavaFamily(l.javaFamily)
	if err != nil {
		return err
	}

	mode := launcher.ModeClient
	if cfg.Server {
		mode = launcher.ModeServer
	}

	capability := auth.None()
	if l.offline {
		capability = auth.With(auth.Offline(cfg.Username))
	}

	var tweaks []launcher.Tweak
	if l.wrapper != "" {
		tweaks = append(tweaks, wrapperTweak(l.wrapper))
	}

	gameOutput := logparser.NewWatcher(os.Stdout)
	mcLauncher := launcher.New(launcher.Config{
		Root:            cfg.Root,
		RuntimeRoot:     cfg.RuntimeRoot,
		Mode:            mode,
		Tweaks:          tweaks,
		Auth:            capability,
		Setup:           localSetup,
		LauncherName:    "openlauncher",
		LauncherVersion: Version,
		Stdout:          gameOutput,
	})

	if len(l.mods) != 0 {
		fetcher := fetch.NewHTTP(ownhttp.NewWithOptions(ownhttp.Options{
			UserAgent:         "openlauncher/" + Version,
			RequestsPerSecond: cfg.Fetch.RateLimit,
			Cache:             cfg.Fetch.Cache,
		}))
		modsDir := filepath.Join(cfg.Root, "mods")
		for _, url := range l.mods {
			mcLauncher.AddTask(tasks.NewModInstall(modsDir, tasks.Release{URL: url}, modName(url), fetcher))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	spinner := NewMaybeSpinner()
	spinner.Start(fmt.Sprintf("Preparing %s", version))
	err = mcLauncher.Setup(ctx, version)
	spinner.Stop()
	if err != nil {
		return err
	}

	opts := launcher.LaunchOptions{
		Version:      version,
		MaxMemoryMiB: cfg.Memory,
		ExtraJVMArgs: cfg.JVMArgs,
		JavaFamily:   family,
		Java:         l.java,
		Username:     cfg.Username,
	}

	if l.dryRun {
		line, err := mcLauncher.BuildCommand(ctx, opts)
		if err != nil {
			return err
		}
		fmt.Println(line)
		return nil
	}

	fmt.Println("│")
	fmt.Println(
		lipgloss.JoinHorizontal(
			0.5,
			gchalk.Hex("#7a563b")("│"+"\n"+"┕"),
			commands.StyleGrass.Render(commands.Emoji("⛏  ")+"Launching Minecraft "+version),
		),
	)

	code, err := mcLauncher.Launch(ctx, opts)
	if err != nil {
		return err
	}

	// minecraft server will always return code 130 when stop was successful
	if code == 0 || code == 130 {
		fmt.Println("\nMinecraft was stopped normally")
		return nil
	}

	fmt.Println(gchalk.Red(fmt.Sprintf("\nMinecraft exited with code %d", code)))
	if errs := gameOutput.Errors(); len(errs) != 0 {
		fmt.Println(gchalk.Bold("Last errors:"))
		for _, line := range errs {
			fmt.Println("  " + gchalk.Gray(line.String()))
		}
	}
	logging.Sync()
	os.Exit(code)
	return nil
}

// localSetup only checks that the version was staged by something else
func localSetup(ctx context.Context, root string, version string, mode launcher.Mode) error {
	manifest := filepath.Join(root, "versions", version, version+".json")
	if _, err := os.Stat(manifest); err != nil {
		if os.IsNotExist(err) {
			return &merrors.ConfigError{Reason: fmt.Sprintf("version %s is not installed (%s is missing)", version, manifest)}
		}
		return &merrors.IOError{Op: "stat manifest", Path: manifest, Err: err}
	}
	return nil
}

func parseJavaFamily(s string) (launcher.JavaFamily, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return launcher.JavaAuto, nil
	case "legacy", "8":
		return launcher.JavaLegacy, nil
	case "modern", "16":
		return launcher.JavaModern, nil
	}
	return launcher.JavaAuto, &commands.CliError{
		Text:        fmt.Sprintf("unknown java family %q", s),
		Suggestions: []string{"Use auto, legacy or modern"},
	}
}

func wrapperTweak(wrapper string) launcher.Tweak {
	return func(command string) string {
		return wrapper + " " + command
	}
}

// modName is the jar name of a mod download url without query
func modName(url string) string {
	name := path.Base(strings.SplitN(url, "?", 2)[0])
	if name == "." || name == "/" {
		return "mod"
	}
	return name
}
