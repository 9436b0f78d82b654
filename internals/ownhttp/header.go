package ownhttp

import "net/http"

// AddHeaderTransport sets the User-Agent on requests that have none
type AddHeaderTransport struct {
	T         http.RoundTripper
	userAgent string
}

func (adt *AddHeaderTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		// RoundTrippers should not modify the request
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", adt.userAgent)
	}
	return adt.T.RoundTrip(req)
}

func NewAddHeaderTransport(T http.RoundTripper, userAgent string) *AddHeaderTransport {
	if T == nil {
		T = http.DefaultTransport
	}
	if userAgent == "" {
		userAgent = "openlauncher"
	}
	return &AddHeaderTransport{T, userAgent}
}
