package probe

import (
	"bufio"
	"context"
	"strings"
	"time"

	"github.com/hakim/wifiscan/internal/models"
	"github.com/hakim/wifiscan/internal/platform"
	"github.com/hakim/wifiscan/internal/tools"
)

const ssidMarker = " SSID:"

// SSIDProbe reads the current Wi-Fi network name
type SSIDProbe struct {
	commandRunner
	Command *platform.Command
}

// NewSSIDProbe returns a probe for the profile's wireless utility
func NewSSIDProbe(p platform.Profile, run tools.RunFunc, timeout time.Duration) *SSIDProbe {
	return &SSIDProbe{
		commandRunner: commandRunner{Run: run, Timeout: timeout},
		Command:       p.Wireless,
	}
}

// Lookup returns the associated SSID, or models.UnknownSSID
func (p *SSIDProbe) Lookup(ctx context.Context) string {
	if p.Command == nil {
		return models.UnknownSSID
	}
	out, err := p.output(ctx, *p.Command)
	if err != nil {
		return models.UnknownSSID
	}
	return ParseSSID(out)
}

// ParseSSID extracts the value from the first " SSID:" line of wireless
// utility output: the text after the last ": " on that line, or after the
// marker when the line has no such separator. BSSID lines do not match.
func ParseSSID(output string) string {
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		idx := strings.Index(line, ssidMarker)
		if idx < 0 {
			continue
		}
		value := line[idx+len(ssidMarker):]
		if sep := strings.LastIndex(line, ": "); sep >= idx {
			value = line[sep+2:]
		}
		ssid := strings.TrimSpace(value)
		if ssid == "" {
			return models.UnknownSSID
		}
		return ssid
	}
	return models.UnknownSSID
}
