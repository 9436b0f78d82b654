// Package fetch downloads remote files for launcher tasks
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dchest/uniuri"
	"github.com/dustin/go-humanize"
	"github.com/minepkg/openlauncher/internals/logging"
	"github.com/minepkg/openlauncher/internals/ownhttp"
	"github.com/pkg/errors"
)

// Fetcher fetches remote content. Retries are up to the implementation.
type Fetcher interface {
	// Fetch returns the content at url
	Fetch(ctx context.Context, url string) ([]byte, error)
	// FetchTo writes the content at url to path
	FetchTo(ctx context.Context, url string, path string) error
}

// StatusError is returned for non 200 responses
type StatusError struct {
	URL    string
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("invalid status code: %s from %s", e.Status, e.URL)
}

// ErrInvalidSha is returned when the downloaded file's sha256 sum does not match the expected one
type ErrInvalidSha struct {
	FileName    string
	ExpectedSha string
	ActualSha   string
}

func (e *ErrInvalidSha) Error() string {
	return fmt.Sprintf(
		"File corrupted: %s sha256 is invalid.\n\texpected to be \"%s\"\n\tbut actually is \"%s\"\n",
		e.FileName,
		e.ExpectedSha,
		e.ActualSha,
	)
}

// HTTP fetches using http(s)
type HTTP struct {
	Client *http.Client
}

// NewHTTP returns a HTTP fetcher using client. A nil client uses ownhttp.New()
func NewHTTP(client *http.Client) *HTTP {
	if client == nil {
		client = ownhttp.New()
	}
	return &HTTP{Client: client}
}

func (h *HTTP) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	res, err := h.Client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "error while fetching %s", url)
	}
	if res.StatusCode != http.StatusOK {
		res.Body.Close()
		return nil, &StatusError{URL: url, Status: res.Status}
	}
	return res, nil
}

// Fetch implements Fetcher
func (h *HTTP) Fetch(ctx context.Context, url string) ([]byte, error) {
	res, err := h.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	buf, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "error while reading %s", url)
	}
	logging.Log.Debugw("fetched", "url", url, "size", humanize.Bytes(uint64(len(buf))))
	return buf, nil
}

// FetchTo implements Fetcher. The target file is replaced atomically.
func (h *HTTP) FetchTo(ctx context.Context, url string, path string) error {
	res, err := h.get(ctx, url)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	n, err := WriteFileAtomic(path, res.Body)
	if err != nil {
		return err
	}
	logging.Log.Debugw("fetched", "url", url, "target", path, "size", humanize.Bytes(uint64(n)))
	return nil
}

// WriteFileAtomic writes r to a temporary file next to path and renames it into place.
// path never contains partial content. Missing parent directories are created.
func WriteFileAtomic(path string, r io.Reader) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return 0, err
	}

	tmp := path + ".tmp-" + uniuri.NewLen(8)
	dest, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return 0, err
	}
	cleanup := func() {
		dest.Close()
		os.Remove(tmp)
	}

	n, err := io.Copy(dest, r)
	if err != nil {
		cleanup()
		return n, err
	}
	if err := dest.Sync(); err != nil {
		cleanup()
		return n, err
	}
	if err := dest.Close(); err != nil {
		os.Remove(tmp)
		return n, err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return n, err
	}
	return n, nil
}
