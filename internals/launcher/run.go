package launcher

import (
	"context"
	"errors"

	"github.com/minepkg/openlauncher/internals/logging"
	"github.com/minepkg/openlauncher/internals/merrors"
	"github.com/minepkg/openlauncher/internals/process"
	"github.com/minepkg/openlauncher/internals/tasks"
)

// Launch assembles the command for opts, starts the game and blocks until it exited.
// Tasks run before the command is assembled, right before the start and after the exit.
//
// The exit code of the game is returned. A non zero exit code alone is not an error.
func (l *Launcher) Launch(ctx context.Context, opts LaunchOptions) (int, error) {
	if !l.isSetUp {
		return -1, merrors.ErrNotSetUp
	}

	pre := l.runner.PreLaunch(ctx, &tasks.PreLaunchContext{Root: l.cfg.Root, Version: opts.Version})
	if err := tasks.Err(pre); err != nil {
		return -1, err
	}

	cmd, err := l.buildCommand(ctx, &opts)
	if err != nil {
		return -1, err
	}

	launch := l.runner.Launch(ctx, &tasks.LaunchContext{Root: l.cfg.Root, Version: opts.Version, Command: cmd.line})
	if err := tasks.Err(launch); err != nil {
		return -1, err
	}

	logging.Log.Infow("launching minecraft", "version", opts.Version, "mode", l.cfg.Mode, "tasks", l.runner.Len())
	logging.Log.Debugw("launch command", "command", cmd.redacted())

	runOpts := []process.Option{
		process.WithStdout(l.cfg.Stdout),
		process.WithStderr(l.cfg.Stderr),
		process.WithDir(l.cfg.Root),
		process.WithEnv(opts.Env...),
	}
	if l.cfg.Mode == ModeServer {
		runOpts = append(runOpts, process.WithStdin(l.cfg.Stdin))
	}
	code, runErr := process.Run(ctx, cmd.line, runOpts...)
	logging.Log.Infow("minecraft stopped", "code", code)

	// post launch tasks also run if the launch was cancelled
	post := l.runner.PostLaunch(context.WithoutCancel(ctx), &tasks.PostLaunchContext{
		Root:     l.cfg.Root,
		Version:  opts.Version,
		ExitCode: code,
		Err:      runErr,
	})
	return code, errors.Join(runErr, tasks.Err(post))
}
