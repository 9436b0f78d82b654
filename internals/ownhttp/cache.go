package ownhttp

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/minepkg/openlauncher/internals/logging"
)

// DefaultMaxEntrySize is the largest body the cache keeps
const DefaultMaxEntrySize = 8 << 20

// CacheTransport keeps successful GET responses in memory.
// It is advisory only: a miss just costs a round trip.
type CacheTransport struct {
	T            http.RoundTripper
	MaxEntrySize int64

	mu      sync.Mutex
	entries map[string]*cachedResponse
}

type cachedResponse struct {
	status int
	header http.Header
	body   []byte
}

func NewCacheTransport(T http.RoundTripper) *CacheTransport {
	if T == nil {
		T = http.DefaultTransport
	}
	return &CacheTransport{
		T:            T,
		MaxEntrySize: DefaultMaxEntrySize,
		entries:      make(map[string]*cachedResponse),
	}
}

func (c *CacheTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet || req.Header.Get("Range") != "" {
		return c.T.RoundTrip(req)
	}

	key := req.URL.String()
	c.mu.Lock()
	entry, ok := c.entries[key]
	c.mu.Unlock()
	if ok {
		logging.Log.Debugw("http cache hit", "url", key)
		return entry.response(req), nil
	}
	logging.Log.Debugw("http cache miss", "url", key)

	res, err := c.T.RoundTrip(req)
	if err != nil || res.StatusCode != http.StatusOK {
		return res, err
	}
	if strings.Contains(res.Header.Get("Cache-Control"), "no-store") {
		return res, nil
	}

	buf, err := io.ReadAll(io.LimitReader(res.Body, c.MaxEntrySize+1))
	if err != nil {
		res.Body.Close()
		return nil, err
	}
	if int64(len(buf)) > c.MaxEntrySize {
		// too big, hand out what we read and the rest of the stream
		res.Body = struct {
			io.Reader
			io.Closer
		}{io.MultiReader(bytes.NewReader(buf), res.Body), res.Body}
		return res, nil
	}
	res.Body.Close()

	entry = &cachedResponse{status: res.StatusCode, header: res.Header.Clone(), body: buf}
	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()

	res.Body = io.NopCloser(bytes.NewReader(buf))
	return res, nil
}

func (e *cachedResponse) response(req *http.Request) *http.Response {
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", e.status, http.StatusText(e.status)),
		StatusCode:    e.status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        e.header.Clone(),
		Body:          io.NopCloser(bytes.NewReader(e.body)),
		ContentLength: int64(len(e.body)),
		Request:       req,
	}
}
