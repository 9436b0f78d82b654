// Package process runs the game and streams its output.
package process

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"github.com/minepkg/openlauncher/internals/logging"
	"github.com/minepkg/openlauncher/internals/merrors"
	psprocess "github.com/shirou/gopsutil/v3/process"
	"golang.org/x/sync/errgroup"
)

// Option configures Run
type Option func(*options)

type options struct {
	stdout io.Writer
	stderr io.Writer
	stdin  io.Reader
	dir    string
	env    []string
}

// WithStdout sets the writer the child's stdout is copied to (default os.Stdout)
func WithStdout(w io.Writer) Option {
	return func(o *options) { o.stdout = w }
}

// WithStderr sets the writer the child's stderr is copied to (default os.Stderr)
func WithStderr(w io.Writer) Option {
	return func(o *options) { o.stderr = w }
}

// WithStdin connects r to the child's stdin. Used for the server console.
func WithStdin(r io.Reader) Option {
	return func(o *options) { o.stdin = r }
}

// WithDir sets the working directory of the child
func WithDir(dir string) Option {
	return func(o *options) { o.dir = dir }
}

// WithEnv adds environment variables (KEY=value) to the inherited environment
func WithEnv(env ...string) Option {
	return func(o *options) { o.env = append(o.env, env...) }
}

// Run starts commandLine and blocks until it exited.
//
// Stdout and stderr are copied line by line to the configured writers by two
// goroutines. The child is only waited for after both reached EOF.
// If ctx is cancelled, the child and all of its children are killed, Run then
// returns the exit code together with the context error.
//
// A child that exits with a non zero code is not an error, the code is returned as is.
func Run(ctx context.Context, commandLine string, opts ...Option) (int, error) {
	o := &options{stdout: os.Stdout, stderr: os.Stderr}
	for _, opt := range opts {
		opt(o)
	}

	args, err := Split(commandLine)
	if err != nil {
		return -1, &merrors.SpawnError{Command: commandLine, Err: err}
	}
	if len(args) == 0 {
		return -1, &merrors.SpawnError{Command: commandLine, Err: errors.New("empty command")}
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = o.dir
	cmd.Stdin = o.stdin
	if len(o.env) != 0 {
		cmd.Env = append(os.Environ(), o.env...)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return -1, &merrors.SpawnError{Command: args[0], Err: err}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return -1, &merrors.SpawnError{Command: args[0], Err: err}
	}

	if err := cmd.Start(); err != nil {
		return -1, &merrors.SpawnError{Command: args[0], Err: err}
	}
	logging.Log.Debugw("process started", "pid", cmd.Process.Pid, "bin", args[0])

	exited := make(chan struct{})
	defer close(exited)
	go func() {
		select {
		case <-ctx.Done():
			logging.Log.Infow("stopping process", "pid", cmd.Process.Pid, "reason", ctx.Err())
			if err := killTree(int32(cmd.Process.Pid)); err != nil {
				logging.Log.Warnw("could not kill process", "pid", cmd.Process.Pid, "err", err)
			}
		case <-exited:
		}
	}()

	var drains errgroup.Group
	drains.Go(func() error { return drain("stdout", stdout, o.stdout) })
	drains.Go(func() error { return drain("stderr", stderr, o.stderr) })
	drainErr := drains.Wait()

	// both pipes are at EOF, Wait can not block on them anymore
	waitErr := cmd.Wait()
	code := cmd.ProcessState.ExitCode()

	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		waitErr = nil
	}
	if waitErr != nil {
		waitErr = &merrors.IOError{Op: "wait for " + args[0], Err: waitErr}
	}

	logging.Log.Debugw("process exited", "pid", cmd.Process.Pid, "code", code)
	return code, errors.Join(drainErr, waitErr, ctx.Err())
}

// drain copies src to dst line by line until EOF. If dst fails, the rest of
// src is still read (and discarded) so the child never blocks on a full pipe.
func drain(name string, src io.Reader, dst io.Writer) error {
	r := bufio.NewReader(src)
	var writeErr error
	for {
		line, err := r.ReadBytes('\n')
		if len(line) > 0 && writeErr == nil {
			if _, wErr := dst.Write(line); wErr != nil {
				writeErr = &merrors.IOError{Op: "write " + name, Err: wErr}
			}
		}
		if errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) {
			return writeErr
		}
		if err != nil {
			return errors.Join(writeErr, &merrors.IOError{Op: "drain " + name, Err: err})
		}
	}
}

// killTree kills the process with pid and all of its descendants
func killTree(pid int32) error {
	p, err := psprocess.NewProcess(pid)
	if err != nil {
		return err
	}
	// collect children first, they get reparented once p is gone
	children, _ := p.Children()
	err = p.Kill()
	for _, child := range children {
		killTree(child.Pid)
	}
	return err
}
