package cmd

import (
	"fmt"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/openlauncher/internals/commands"
	"github.com/minepkg/openlauncher/internals/launcher"
	"github.com/spf13/cobra"
)

func init() {
	runner := &clearRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "clear",
		Short: "Removes everything inside the game root",
		Args:  cobra.NoArgs,
	}, runner)

	cmd.Flags().BoolVarP(&runner.yes, "yes", "y", false, "Do not ask for confirmation")

	rootCmd.AddCommand(cmd.Command)
}

type clearRunner struct {
	yes bool
}

func (c *clearRunner) RunE(cmd *cobra.Command, args []string) error {
	root := globalConfig.Root
	if !c.yes {
		return &commands.CliError{
			Text:        "refusing to clear " + root + " without confirmation",
			Suggestions: []string{"Run again with --yes to delete everything inside " + root},
		}
	}

	if err := launcher.New(launcher.Config{Root: root}).Clear(); err != nil {
		return err
	}
	fmt.Println(commands.Emoji("🧹 ") + "Cleared " + gchalk.Bold(root))
	return nil
}
