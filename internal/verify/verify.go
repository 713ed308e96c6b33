// Package verify smoke-tests the deployed service endpoints.
//
// Probes are best-effort: a failing probe is a warning, never an error.
// The workflow always reaches the final report regardless of the outcome
// here. This is a reachability check, not a readiness gate.
package verify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/msdeploy/msdeploy/internal/config"
)

// Result reports the outcome of the post-deploy probes.
type Result struct {
	HealthOK bool
	RootOK   bool
}

// Verifier probes the service's externally exposed endpoints.
type Verifier struct {
	client *http.Client
	settle time.Duration
	port   int
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithSettleDelay overrides the pre-probe settle delay.
func WithSettleDelay(d time.Duration) Option {
	return func(v *Verifier) {
		v.settle = d
	}
}

// WithPort overrides the probed port.
func WithPort(port int) Option {
	return func(v *Verifier) {
		v.port = port
	}
}

// WithHTTPClient overrides the HTTP client used for probes.
func WithHTTPClient(client *http.Client) Option {
	return func(v *Verifier) {
		v.client = client
	}
}

// New creates a Verifier with the service's fixed port and a short
// per-probe timeout.
func New(opts ...Option) *Verifier {
	v := &Verifier{
		client: &http.Client{Timeout: 10 * time.Second},
		settle: config.DeploySettleDelay,
		port:   config.ServicePort,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify waits the settle delay, then probes the health and root endpoints
// independently. An empty ip skips probing entirely and reports both
// endpoints unreachable.
func (v *Verifier) Verify(ctx context.Context, ip string) Result {
	if ip == "" {
		log.Warn("No external IP, skipping verification")
		return Result{}
	}

	select {
	case <-ctx.Done():
		log.Warn("Verification cancelled before probing")
		return Result{}
	case <-time.After(v.settle):
	}

	return Result{
		HealthOK: v.probe(ctx, ip, "/health"),
		RootOK:   v.probe(ctx, ip, "/"),
	}
}

// probe issues a single GET and reports whether it returned 2xx.
func (v *Verifier) probe(ctx context.Context, ip, path string) bool {
	url := fmt.Sprintf("http://%s:%d%s", ip, v.port, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.WithField("url", url).WithError(err).Warn("Probe request invalid")
		return false
	}

	resp, err := v.client.Do(req)
	if err != nil {
		log.WithField("url", url).WithError(err).Warn("Probe failed")
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.WithFields(log.Fields{"url": url, "status": resp.StatusCode}).Warn("Probe returned non-2xx")
		return false
	}

	log.WithField("url", url).Info("Probe succeeded")
	return true
}
