package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"
	"github.com/jwalton/gchalk"
	"github.com/minepkg/openlauncher/internals/commands"
	"github.com/minepkg/openlauncher/internals/fetch"
	"github.com/minepkg/openlauncher/internals/ownhttp"
	"github.com/minepkg/openlauncher/internals/tasks"
	"github.com/spf13/cobra"
)

func init() {
	runner := &installModRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "install-mod <dir> <url> [name]",
		Short: "Downloads a mod jar into a directory if it does not exist yet",
		Args:  cobra.RangeArgs(2, 3),
	}, runner)

	cmd.Flags().StringVar(&runner.sha256, "sha256", "", "Expected sha256 of the jar")

	rootCmd.AddCommand(cmd.Command)
}

type installModRunner struct {
	sha256 string
}

func (i *installModRunner) RunE(cmd *cobra.Command, args []string) error {
	dir, url := args[0], args[1]
	name := modName(url)
	if len(args) == 3 {
		name = args[2]
	}

	client := ownhttp.NewWithOptions(ownhttp.Options{
		UserAgent:         "openlauncher/" + Version,
		RequestsPerSecond: globalConfig.Fetch.RateLimit,
		Cache:             globalConfig.Fetch.Cache,
	})
	install := tasks.NewModInstall(dir, tasks.Release{URL: url, Sha256: i.sha256}, name, fetch.NewHTTP(client))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	spinner := NewMaybeSpinner()
	spinner.Start("Downloading " + name)
	status, err := install.Install(ctx)
	spinner.Stop()
	if err != nil {
		return err
	}

	switch status {
	case tasks.InstallSkipped:
		fmt.Println(gchalk.Gray(install.Target() + " already exists, skipped"))
	case tasks.Installed:
		size := ""
		if info, err := os.Stat(install.Target()); err == nil {
			size = " (" + humanize.Bytes(uint64(info.Size())) + ")"
		}
		fmt.Println(commands.Emoji("✅ ") + "Installed " + gchalk.Bold(install.Target()) + size)
	}
	return nil
}
