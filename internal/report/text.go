package report

import (
	"fmt"
	"strings"

	"github.com/hakim/wifiscan/internal/models"
)

// Format renders the human-readable report body shown to the user and
// appended to the scan log.
func Format(r *models.ScanReport) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s Network Scan Report\n", r.Risk.Icon()))
	b.WriteString(fmt.Sprintf("Wi-Fi SSID: %s\n", ssid(r.SSID)))
	b.WriteString(fmt.Sprintf("HTTPS: %s\n", r.HTTPS))
	b.WriteString(fmt.Sprintf("DNS IP: %s\n", r.DNS))
	b.WriteString(fmt.Sprintf("Firewall: %s\n", r.Firewall))
	b.WriteString(fmt.Sprintf("Ping: %s\n", r.Ping))
	b.WriteString(fmt.Sprintf("VPN Active: %s\n", r.VPN))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Risk Score: %d/%d\n", r.Score, models.MaxScore))
	b.WriteString(fmt.Sprintf("Risk Level: %s", r.Risk))

	return b.String()
}

// Reasons lists why each signal that is not true came out that way, for
// verbose output. Signals without a reason are omitted.
func Reasons(r *models.ScanReport) []string {
	var out []string
	add := func(name string, s models.Signal) {
		if !s.OK() && s.Reason != "" {
			out = append(out, fmt.Sprintf("%s: %s (%s)", name, s, s.Reason))
		}
	}
	add("HTTPS", r.HTTPS)
	if !r.DNS.Resolved && r.DNS.Reason != "" {
		out = append(out, fmt.Sprintf("DNS: %s (%s)", r.DNS, r.DNS.Reason))
	}
	add("Firewall", r.Firewall)
	add("Ping", r.Ping)
	add("VPN", r.VPN)
	return out
}

func ssid(s string) string {
	if strings.TrimSpace(s) == "" {
		return models.UnknownSSID
	}
	return s
}
