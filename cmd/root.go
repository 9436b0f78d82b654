package cmd

import (
	"fmt"
	"os"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/openlauncher/internals/commands"
	"github.com/minepkg/openlauncher/internals/config"
	"github.com/minepkg/openlauncher/internals/logging"
	"github.com/spf13/cobra"
)

var (
	// Version is set by main
	Version = "dev"
	// Commit is set by main
	Commit = ""
)

var (
	cfgFile       string
	disableColors bool
	v             = config.New()
	globalConfig  = &config.Config{}
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "openlauncher",
	Short: "Launches Minecraft from a prepared game root",
	Long: `openlauncher builds the java command for a Minecraft version that is
staged in the game root and runs it.`,

	Example: `
  openlauncher launch 1.19.2
  openlauncher launch 1.19.2 --server --ram 4096
  openlauncher install-mod ~/.openlauncher/mods https://example.com/mod.jar`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = Version
	if Commit != "" {
		rootCmd.Version = fmt.Sprintf("%s (%s)", Version, Commit)
	}
	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.openlauncher.toml)")
	flags.BoolVarP(&disableColors, "no-color", "", false, "disable color output")
	flags.String("root", "", "game root containing versions, libraries and assets")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-file", "", "also write logs to this file")

	v.BindPFlag("root", flags.Lookup("root"))
	v.BindPFlag("log.level", flags.Lookup("log-level"))
	v.BindPFlag("log.file", flags.Lookup("log-file"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if disableColors || os.Getenv("CI") != "" || os.Getenv("NO_COLOR") != "" {
		gchalk.SetLevel(gchalk.LevelNone)
		commands.EmojiEnabled = false
	}

	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, commands.ErrorBox(err.Error(), "Check the config file or pass a different one with --config"))
		os.Exit(1)
	}
	globalConfig = cfg

	err = logging.Init(logging.Config{
		Level: cfg.Log.Level,
		File:  cfg.Log.File,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, commands.ErrorBox(err.Error(), "Valid log levels are debug, info, warn and error"))
		os.Exit(1)
	}
	if used := v.ConfigFileUsed(); used != "" {
		logging.Log.Debugw("using config file", "file", used)
	}
}
