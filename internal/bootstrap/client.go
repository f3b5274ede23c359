package bootstrap

import (
	"net"
	"net/http"
	"time"
)

// newHTTPClient builds the client used for every backend call.
// The jar carries the access and refresh cookies.
func newHTTPClient(timeout time.Duration, jar http.CookieJar) *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: time.Second,
	}
	return &http.Client{
		Timeout:   timeout,
		Jar:       jar,
		Transport: transport,
	}
}
