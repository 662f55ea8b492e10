package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hakim/wifiscan/internal/models"
)

func sampleReport() *models.ScanReport {
	return &models.ScanReport{
		SSID:     "Cafe Free WiFi",
		HTTPS:    models.Pass(),
		DNS:      models.Lookup{Hostname: "google.com", IP: "203.0.113.5", Resolved: true},
		Firewall: models.Unknown("sudo: a password is required"),
		Ping:     models.Fail("no echo reply"),
		VPN:      models.Pass(),
		Score:    3,
		Risk:     models.RiskCaution,
	}
}

func TestFormat(t *testing.T) {
	want := "⚠️ Network Scan Report\n" +
		"Wi-Fi SSID: Cafe Free WiFi\n" +
		"HTTPS: true\n" +
		"DNS IP: 203.0.113.5\n" +
		"Firewall: unknown\n" +
		"Ping: false\n" +
		"VPN Active: true\n" +
		"\n" +
		"Risk Score: 3/5\n" +
		"Risk Level: Caution"

	assert.Equal(t, want, Format(sampleReport()))
}

func TestFormat_Sentinels(t *testing.T) {
	r := &models.ScanReport{Risk: models.RiskDangerous}
	out := Format(r)

	assert.Contains(t, out, "❌ Network Scan Report")
	assert.Contains(t, out, "Wi-Fi SSID: Unknown")
	assert.Contains(t, out, "DNS IP: unresolved")
	assert.Contains(t, out, "HTTPS: unknown")
	assert.Contains(t, out, "Risk Score: 0/5")
}

func TestReasons(t *testing.T) {
	r := sampleReport()
	r.DNS = models.Lookup{Hostname: "google.com", Reason: "i/o timeout"}

	assert.Equal(t, []string{
		"DNS: unresolved (i/o timeout)",
		"Firewall: unknown (sudo: a password is required)",
		"Ping: false (no echo reply)",
	}, Reasons(r))
}
