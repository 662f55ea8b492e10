package probe

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	psnet "github.com/shirou/gopsutil/net"

	"github.com/hakim/wifiscan/internal/models"
	"github.com/hakim/wifiscan/internal/platform"
	"github.com/hakim/wifiscan/internal/tools"
)

// VPNProbe looks for tunnel or point-to-point interfaces in the interface
// listing utility's output.
type VPNProbe struct {
	commandRunner
	Command platform.Command

	// Interfaces enumerates interface names when the listing utility is not
	// installed. Nil disables the fallback.
	Interfaces func() ([]string, error)
}

// NewVPNProbe returns a probe for the profile's interface listing utility
func NewVPNProbe(p platform.Profile, run tools.RunFunc, timeout time.Duration) *VPNProbe {
	return &VPNProbe{
		commandRunner: commandRunner{Run: run, Timeout: timeout},
		Command:       p.Interfaces,
		Interfaces:    upInterfaces,
	}
}

// Check reports whether any interface looks like a VPN
func (p *VPNProbe) Check(ctx context.Context) models.Signal {
	out, err := p.output(ctx, p.Command)
	if err != nil {
		if !errors.Is(err, exec.ErrNotFound) || p.Interfaces == nil {
			return models.Unknown(err.Error())
		}
		names, ierr := p.Interfaces()
		if ierr != nil {
			return models.Unknown(ierr.Error())
		}
		out = strings.Join(names, "\n")
	}

	if !LooksLikeVPN(out) {
		return models.Fail("no tunnel interface")
	}
	return models.Pass()
}

// LooksLikeVPN reports whether interface listing text names a tunnel
// (tun0), point-to-point (ppp) or vpn interface.
func LooksLikeVPN(text string) bool {
	return strings.Contains(text, "tun0") ||
		strings.Contains(text, "ppp") ||
		strings.Contains(strings.ToLower(text), "vpn")
}

func upInterfaces() ([]string, error) {
	ifaces, err := psnet.Interfaces()
	if err != nil {
		return nil, err
	}

	var names []string
	for _, iface := range ifaces {
		for _, flag := range iface.Flags {
			if flag == "up" {
				names = append(names, iface.Name)
				break
			}
		}
	}
	return names, nil
}
