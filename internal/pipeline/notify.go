package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// NotifyConfig configures where to send completion notifications.
type NotifyConfig struct {
	WebhookURL string // if empty, no notifications
	Client     *http.Client
}

// completionPayload is the JSON body posted to the webhook endpoint.
type completionPayload struct {
	RunID          string  `json:"run_id"`
	StartedAt      string  `json:"started_at"`
	Platform       string  `json:"platform"`
	SSID           string  `json:"ssid"`
	HTTPS          string  `json:"https"`
	DNSIP          string  `json:"dns_ip"`
	Firewall       string  `json:"firewall"`
	Ping           string  `json:"ping"`
	VPN            string  `json:"vpn"`
	Score          int     `json:"score"`
	RiskLevel      string  `json:"risk_level"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
}

// SendCompletion posts a JSON summary of the scan to the webhook URL.
// Returns nil if WebhookURL is empty (no-op). Non-fatal: errors are returned
// but callers should treat them as warnings.
func (n *NotifyConfig) SendCompletion(result *ScanResult) error {
	if n == nil || n.WebhookURL == "" {
		return nil
	}

	r := result.Report
	payload := completionPayload{
		RunID:          result.RunID,
		StartedAt:      r.StartedAt.Format(time.RFC3339),
		Platform:       r.Platform,
		SSID:           r.SSID,
		HTTPS:          r.HTTPS.String(),
		DNSIP:          r.DNS.String(),
		Firewall:       r.Firewall.String(),
		Ping:           r.Ping.String(),
		VPN:            r.VPN.String(),
		Score:          r.Score,
		RiskLevel:      string(r.Risk),
		ElapsedSeconds: r.Elapsed.Seconds(),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("notify: marshaling payload: %w", err)
	}

	client := n.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := client.Post(n.WebhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notify: posting to %s: %w", n.WebhookURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notify: webhook returned non-2xx status %d", resp.StatusCode)
	}

	return nil
}
