package probe

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/hakim/wifiscan/internal/models"
)

// DefaultHTTPSTargets are the reference sites fetched by the HTTPS probe
var DefaultHTTPSTargets = []string{
	"https://google.com",
	"https://example.com",
	"https://cloudflare.com",
}

// DefaultHTTPSTimeout bounds each request
const DefaultHTTPSTimeout = 5 * time.Second

// maxDrain caps how much of a response body is read before closing
const maxDrain = 64 * 1024

// HTTPSProbe checks whether a majority of reference sites are served over
// HTTPS after redirects.
type HTTPSProbe struct {
	Targets []string
	Client  *http.Client
}

// NewHTTPSProbe returns a probe with its own client. A zero timeout selects
// DefaultHTTPSTimeout.
func NewHTTPSProbe(targets []string, timeout time.Duration) *HTTPSProbe {
	if len(targets) == 0 {
		targets = DefaultHTTPSTargets
	}
	if timeout <= 0 {
		timeout = DefaultHTTPSTimeout
	}
	return &HTTPSProbe{
		Targets: targets,
		Client:  newHTTPClient(timeout),
	}
}

func newHTTPClient(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   timeout,
		KeepAlive: 15 * time.Second,
	}
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		TLSHandshakeTimeout: timeout,
		TLSClientConfig:     &tls.Config{MinVersion: tls.VersionTLS12},
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// Check fetches every target once. A failing target does not stop the others.
func (p *HTTPSProbe) Check(ctx context.Context) models.Signal {
	if len(p.Targets) == 0 {
		return models.Unknown("no https targets configured")
	}

	client := p.Client
	if client == nil {
		client = newHTTPClient(DefaultHTTPSTimeout)
	}

	secure, reached := 0, 0
	var lastErr error
	for _, target := range p.Targets {
		ok, err := fetchSecure(ctx, client, target)
		if err != nil {
			lastErr = err
			continue
		}
		reached++
		if ok {
			secure++
		}
	}

	switch {
	case secure*2 > len(p.Targets):
		return models.Pass()
	case reached == 0:
		return models.Unknown(fmt.Sprintf("no target reachable: %v", lastErr))
	default:
		return models.Fail(fmt.Sprintf("%d of %d targets served over https", secure, len(p.Targets)))
	}
}

// fetchSecure reports whether the final URL of a GET to target is https
func fetchSecure(ctx context.Context, client *http.Client, target string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return false, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrain))

	return resp.Request != nil && resp.Request.URL.Scheme == "https", nil
}
