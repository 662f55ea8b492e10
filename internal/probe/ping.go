package probe

import (
	"context"
	"time"

	"github.com/hakim/wifiscan/internal/models"
	"github.com/hakim/wifiscan/internal/platform"
	"github.com/hakim/wifiscan/internal/tools"
)

// DefaultPingHost is the reference host for the echo check
const DefaultPingHost = "google.com"

// PingProbe sends one ICMP echo through the platform ping utility
type PingProbe struct {
	commandRunner
	Spec platform.Check
}

// NewPingProbe returns a probe pinging host with the profile's syntax
func NewPingProbe(p platform.Profile, host string, run tools.RunFunc, timeout time.Duration) *PingProbe {
	if host == "" {
		host = DefaultPingHost
	}
	return &PingProbe{
		commandRunner: commandRunner{Run: run, Timeout: timeout},
		Spec:          p.Ping(host),
	}
}

// Check pings once and looks for the platform success marker
func (p *PingProbe) Check(ctx context.Context) models.Signal {
	out, err := p.output(ctx, p.Spec.Command)
	if err != nil {
		return models.Unknown(err.Error())
	}
	if !p.Spec.Matches(out) {
		return models.Fail("no echo reply")
	}
	return models.Pass()
}
