package probe

import (
	"context"
	"time"

	"github.com/hakim/wifiscan/internal/models"
	"github.com/hakim/wifiscan/internal/platform"
	"github.com/hakim/wifiscan/internal/tools"
)

// FirewallProbe reads the operating system firewall state
type FirewallProbe struct {
	commandRunner
	Spec *platform.Check
}

// NewFirewallProbe returns a probe for the profile's firewall utility
func NewFirewallProbe(p platform.Profile, run tools.RunFunc, timeout time.Duration) *FirewallProbe {
	return &FirewallProbe{
		commandRunner: commandRunner{Run: run, Timeout: timeout},
		Spec:          p.Firewall,
	}
}

// Check runs the firewall utility. A platform without one yields unknown.
func (p *FirewallProbe) Check(ctx context.Context) models.Signal {
	if p.Spec == nil {
		return models.Unknown("no firewall utility for this platform")
	}

	out, err := p.output(ctx, p.Spec.Command)
	if err != nil {
		return models.Unknown(err.Error())
	}
	if !p.Spec.Matches(out) {
		return models.Fail("firewall not reported active")
	}
	return models.Pass()
}
