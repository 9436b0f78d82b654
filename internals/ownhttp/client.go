package ownhttp

import (
	"net"
	"net/http"
	"time"
)

// Options configure the client returned by NewWithOptions
type Options struct {
	// UserAgent is sent with every request (default "openlauncher")
	UserAgent string
	// RequestsPerSecond limits outgoing requests, 0 disables throttling
	RequestsPerSecond float64
	// Cache enables the in memory response cache
	Cache bool
}

// baseTransport has timeouts for everything but the body. Mod downloads can be slow.
func baseTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   20 * time.Second,
		ResponseHeaderTimeout: 60 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// New returns a new http.Client with the AddHeaderTransport (setting the User-Agent header)
// and the response cache
func New() *http.Client {
	return NewWithOptions(Options{Cache: true})
}

// NewWithOptions returns a client with the transports enabled in o.
// The cache is the outermost transport, so cache hits are never throttled.
func NewWithOptions(o Options) *http.Client {
	var t http.RoundTripper = NewAddHeaderTransport(baseTransport(), o.UserAgent)
	if o.RequestsPerSecond > 0 {
		t = NewThrottleTransport(t, perSecond(o.RequestsPerSecond))
	}
	if o.Cache {
		t = NewCacheTransport(t)
	}
	return &http.Client{Transport: t}
}
