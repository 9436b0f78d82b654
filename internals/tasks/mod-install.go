package tasks

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/minepkg/openlauncher/internals/fetch"
	"github.com/minepkg/openlauncher/internals/logging"
	"github.com/minepkg/openlauncher/internals/merrors"
)

// Release describes a remote mod file
type Release struct {
	URL string
	// Sha256 is checked after fetching if set
	Sha256 string
}

// InstallStatus tells what ModInstall did
type InstallStatus uint8

const (
	// InstallSkipped means the target already existed and nothing was fetched
	InstallSkipped InstallStatus = iota
	// Installed means the file was fetched and written
	Installed
)

// ModInstall fetches a mod jar into a directory unless it is already there
type ModInstall struct {
	Dir     string
	Release Release
	// JarName is the file name, ".jar" is appended if missing
	JarName string
	Fetcher fetch.Fetcher
}

// NewModInstall returns a task installing release to <dir>/<jarName>.jar
func NewModInstall(dir string, release Release, jarName string, f fetch.Fetcher) *ModInstall {
	return &ModInstall{Dir: dir, Release: release, JarName: jarName, Fetcher: f}
}

// Name implements Task
func (m *ModInstall) Name() string {
	return "install " + filepath.Base(m.Target())
}

// Target returns the path the mod is installed to
func (m *ModInstall) Target() string {
	name := m.JarName
	if !strings.HasSuffix(name, ".jar") {
		name += ".jar"
	}
	return filepath.Join(m.Dir, name)
}

// Launch implements Launcher
func (m *ModInstall) Launch(ctx context.Context, c *LaunchContext) error {
	_, err := m.Install(ctx)
	return err
}

// Install fetches the release if the target does not exist yet.
// All failures are returned as *merrors.InstallFailedError.
func (m *ModInstall) Install(ctx context.Context) (InstallStatus, error) {
	target := m.Target()
	fail := func(err error) (InstallStatus, error) {
		return InstallSkipped, &merrors.InstallFailedError{URL: m.Release.URL, Target: target, Err: err}
	}

	_, err := os.Stat(target)
	switch {
	case err == nil:
		logging.Log.Debugw("mod already installed", "target", target)
		return InstallSkipped, nil
	case !errors.Is(err, fs.ErrNotExist):
		return fail(err)
	}

	data, err := m.Fetcher.Fetch(ctx, m.Release.URL)
	if err != nil {
		return fail(err)
	}

	if m.Release.Sha256 != "" {
		sum := sha256.Sum256(data)
		if actual := hex.EncodeToString(sum[:]); !strings.EqualFold(actual, m.Release.Sha256) {
			return fail(&fetch.ErrInvalidSha{FileName: target, ExpectedSha: m.Release.Sha256, ActualSha: actual})
		}
	}

	if _, err := fetch.WriteFileAtomic(target, bytes.NewReader(data)); err != nil {
		return fail(err)
	}
	logging.Log.Infow("mod installed", "target", target, "size", humanize.Bytes(uint64(len(data))))
	return Installed, nil
}
