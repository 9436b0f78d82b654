package ownhttp

import (
	"net/http"

	"github.com/minepkg/openlauncher/internals/logging"
	"golang.org/x/time/rate"
)

// ThrottleTransport waits for the limiter before every request.
// Waiting is aborted when the request context is done.
type ThrottleTransport struct {
	T       http.RoundTripper
	limiter *rate.Limiter
}

func (tt *ThrottleTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if tt.limiter.Tokens() < 1 {
		logging.Log.Debugw("request throttled", "url", req.URL.String())
	}
	if err := tt.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}

	return tt.T.RoundTrip(req)
}

// NewThrottleTransport limits T with limiter (http.DefaultTransport if T is nil)
func NewThrottleTransport(T http.RoundTripper, limiter *rate.Limiter) *ThrottleTransport {
	if T == nil {
		T = http.DefaultTransport
	}
	return &ThrottleTransport{T, limiter}
}

// perSecond returns a limiter for rps requests per second that allows short bursts
func perSecond(rps float64) *rate.Limiter {
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}
