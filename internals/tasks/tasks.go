// Package tasks runs auxiliary work around a launch.
//
// A task declares the stages it takes part in by implementing any of
// PreLauncher, Launcher and PostLauncher. Stages a task does not implement
// are skipped for it.
package tasks

import (
	"context"
	"errors"

	"github.com/minepkg/openlauncher/internals/logging"
)

// Stage is one of the three points around a launch where tasks run
type Stage uint8

const (
	StagePreLaunch Stage = iota
	StageLaunch
	StagePostLaunch
)

func (s Stage) String() string {
	switch s {
	case StagePreLaunch:
		return "pre-launch"
	case StageLaunch:
		return "launch"
	case StagePostLaunch:
		return "post-launch"
	default:
		return "unknown"
	}
}

// PreLaunchContext is passed to tasks before the command is assembled
type PreLaunchContext struct {
	Root    string
	Version string
}

// LaunchContext is passed to tasks right before the game is started
type LaunchContext struct {
	Root    string
	Version string
	// Command is the final command line
	Command string
}

// PostLaunchContext is passed to tasks after the game exited
type PostLaunchContext struct {
	Root     string
	Version  string
	ExitCode int
	// Err is the error returned by the process supervisor, if any
	Err error
}

// Task is the common part of all tasks
type Task interface {
	Name() string
}

// PreLauncher runs before the launch command is assembled
type PreLauncher interface {
	Task
	PreLaunch(ctx context.Context, c *PreLaunchContext) error
}

// Launcher runs right before the game is started
type Launcher interface {
	Task
	Launch(ctx context.Context, c *LaunchContext) error
}

// PostLauncher runs after the game exited
type PostLauncher interface {
	Task
	PostLaunch(ctx context.Context, c *PostLaunchContext) error
}

// Result is the outcome of one task in one stage
type Result struct {
	Task  string
	Stage Stage
	Err   error
}

// Runner runs registered tasks in the order they were added
type Runner struct {
	tasks []Task
}

// NewRunner returns a runner for tasks
func NewRunner(tasks ...Task) *Runner {
	return &Runner{tasks: tasks}
}

// Add registers another task
func (r *Runner) Add(t Task) {
	r.tasks = append(r.tasks, t)
}

// Len returns the number of registered tasks
func (r *Runner) Len() int {
	return len(r.tasks)
}

// PreLaunch runs all PreLaunchers. Every task runs, even if an earlier one failed.
func (r *Runner) PreLaunch(ctx context.Context, c *PreLaunchContext) []Result {
	return r.run(StagePreLaunch, func(t Task) (bool, error) {
		p, ok := t.(PreLauncher)
		if !ok {
			return false, nil
		}
		return true, p.PreLaunch(ctx, c)
	})
}

// Launch runs all Launchers
func (r *Runner) Launch(ctx context.Context, c *LaunchContext) []Result {
	return r.run(StageLaunch, func(t Task) (bool, error) {
		l, ok := t.(Launcher)
		if !ok {
			return false, nil
		}
		return true, l.Launch(ctx, c)
	})
}

// PostLaunch runs all PostLaunchers
func (r *Runner) PostLaunch(ctx context.Context, c *PostLaunchContext) []Result {
	return r.run(StagePostLaunch, func(t Task) (bool, error) {
		p, ok := t.(PostLauncher)
		if !ok {
			return false, nil
		}
		return true, p.PostLaunch(ctx, c)
	})
}

func (r *Runner) run(stage Stage, call func(t Task) (bool, error)) []Result {
	var results []Result
	for _, t := range r.tasks {
		ran, err := call(t)
		if !ran {
			continue
		}
		if err != nil {
			logging.Log.Warnw("task failed", "task", t.Name(), "stage", stage, "err", err)
		} else {
			logging.Log.Debugw("task done", "task", t.Name(), "stage", stage)
		}
		results = append(results, Result{Task: t.Name(), Stage: stage, Err: err})
	}
	return results
}

// Err joins the errors of all failed results, nil if none failed
func Err(results []Result) error {
	errs := make([]error, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errors.Join(errs...)
}
