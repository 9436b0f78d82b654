// Package merrors contains the error types returned by the launcher packages.
// Every error carries a Kind so callers can decide whether a failure is a
// configuration problem, something that could not be resolved on disk,
// a process that did not start, an I/O failure or a failed asset install.
package merrors

import (
	"errors"
	"fmt"
)

// Kind classifies launcher errors
type Kind uint8

const (
	// KindUnknown is returned by KindOf for errors that are not launcher errors
	KindUnknown Kind = iota
	// KindConfiguration covers missing manifest fields and launch-before-setup
	KindConfiguration
	// KindResolution covers runtimes and libraries that could not be resolved
	KindResolution
	// KindSpawn is used when the game process could not be started
	KindSpawn
	// KindIO covers stream and file failures
	KindIO
	// KindInstall is used for failed task installs
	KindInstall
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindResolution:
		return "resolution"
	case KindSpawn:
		return "spawn"
	case KindIO:
		return "io"
	case KindInstall:
		return "install"
	default:
		return "unknown"
	}
}

// kinded is implemented by all error types in this package
type kinded interface {
	Kind() Kind
}

// KindOf returns the Kind of the first launcher error in err's chain
func KindOf(err error) Kind {
	var k kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindUnknown
}

// ErrNotSetUp is returned when launching before the setup has been run
var ErrNotSetUp = &ConfigError{Reason: "cannot launch the game since the setup has not been run yet"}

// ConfigError is a generic configuration error
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return e.Reason }

// Kind implements kinded
func (e *ConfigError) Kind() Kind { return KindConfiguration }

// ManifestError is returned when a version manifest is missing a required field
// or can not be parsed
type ManifestError struct {
	// Path of the manifest file (may be empty for in-memory manifests)
	Path string
	// Field is the json field that is missing or malformed
	Field string
	Err   error
}

func (e *ManifestError) Error() string {
	where := e.Path
	if where == "" {
		where = "version manifest"
	}
	if e.Err != nil {
		return fmt.Sprintf("malformed manifest %s: %s: %v", where, e.Field, e.Err)
	}
	return fmt.Sprintf("malformed manifest %s: missing required field %q", where, e.Field)
}

func (e *ManifestError) Unwrap() error { return e.Err }

// Kind implements kinded
func (e *ManifestError) Kind() Kind { return KindConfiguration }

// RuntimeNotFoundError is returned if no java runtime could be found in a runtime family directory
type RuntimeNotFoundError struct {
	Dir    string
	Reason string
}

func (e *RuntimeNotFoundError) Error() string {
	return fmt.Sprintf("no java runtime found in %s: %s", e.Dir, e.Reason)
}

// Kind implements kinded
func (e *RuntimeNotFoundError) Kind() Kind { return KindResolution }

// LibraryError is returned when a library entry can not be turned into a path
type LibraryError struct {
	Name   string
	Reason string
}

func (e *LibraryError) Error() string {
	return fmt.Sprintf("can not resolve library %q: %s", e.Name, e.Reason)
}

// Kind implements kinded
func (e *LibraryError) Kind() Kind { return KindResolution }

// SpawnError is returned when the game process could not be started
type SpawnError struct {
	Command string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("could not start %q: %v", e.Command, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// Kind implements kinded
func (e *SpawnError) Kind() Kind { return KindSpawn }

// IOError wraps stream and file failures
type IOError struct {
	// Op describes what was done, for example "drain stdout" or "write"
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Kind implements kinded
func (e *IOError) Kind() Kind { return KindIO }

// InstallFailedError is the result of a task that could not install its file
type InstallFailedError struct {
	URL    string
	Target string
	Err    error
}

func (e *InstallFailedError) Error() string {
	return fmt.Sprintf("installing %s to %s failed: %v", e.URL, e.Target, e.Err)
}

func (e *InstallFailedError) Unwrap() error { return e.Err }

// Kind implements kinded
func (e *InstallFailedError) Kind() Kind { return KindInstall }
