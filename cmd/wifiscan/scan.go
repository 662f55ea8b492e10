package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/hakim/wifiscan/internal/config"
	"github.com/hakim/wifiscan/internal/models"
	"github.com/hakim/wifiscan/internal/pipeline"
	"github.com/hakim/wifiscan/internal/platform"
	"github.com/hakim/wifiscan/internal/probe"
	"github.com/hakim/wifiscan/internal/report"
	"github.com/hakim/wifiscan/internal/score"
	"github.com/hakim/wifiscan/internal/storage"
	"github.com/hakim/wifiscan/internal/tools"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Analyze the current network and print its risk score",
	Long: `Run every probe once, in order: HTTPS reachability, DNS resolution, firewall
state, ping reachability, VPN detection and Wi-Fi SSID.

Probe failures never abort the scan; they only lower the score. The report is
printed color-coded by risk level and appended to the scan log:

  [YYYY-MM-DD HH:MM:SS]
  <report>
  ----------------------------------------

Examples:
  wifiscan scan
  wifiscan scan --log-file /var/log/wifi_scan_log.txt
  wifiscan scan --platform darwin --no-log
  wifiscan scan --notify-webhook https://hooks.example.com/wifi`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// ── 1. Read all flags ──────────────────────────────────────────────────
		logFile, _ := cmd.Flags().GetString("log-file")
		noLog, _ := cmd.Flags().GetBool("no-log")
		webhookURL, _ := cmd.Flags().GetString("notify-webhook")
		platformName, _ := cmd.Flags().GetString("platform")
		noColor, _ := cmd.Flags().GetBool("no-color")

		if cfg == nil {
			return fmt.Errorf("config not loaded")
		}
		if logFile == "" {
			logFile = cfg.LogFile
		}
		if webhookURL == "" {
			webhookURL = cfg.Notify.WebhookURL
		}
		if platformName == "" {
			platformName = cfg.Platform
		}
		if noColor {
			color.NoColor = true
		}

		// ── 2. Select the platform profile once ────────────────────────────────
		id := platform.Detect()
		if platformName != "" {
			id = platform.Parse(platformName)
		}
		profile := platform.Lookup(id).WithOverrides(cfg.Tools.Overrides())
		fmt.Printf("[*] Platform: %s\n", profile.ID)

		// ── 3. Build probes and run ────────────────────────────────────────────
		probes := buildProbes(cfg, profile, tools.RunTool)

		scanCfg := pipeline.ScanConfig{
			Platform: string(profile.ID),
			Scorer:   score.New(cfg.Scoring.TrustedDNSPrefixes),
			OnProbeStart: func(name string, index, total int) {
				fmt.Printf("[*] Probe %d/%d: %s...\n", index+1, total, name)
			},
			OnProbeDone: func(name string, index, total int, elapsed time.Duration) {
				fmt.Printf("[+] Probe %d/%d: %s done (%s)\n", index+1, total, name, elapsed.Round(time.Millisecond))
			},
		}
		if !noLog {
			scanCfg.Log = storage.NewLogFile(logFile)
		}

		result := pipeline.Run(cmd.Context(), probes, scanCfg)

		// ── 4. Present the report ──────────────────────────────────────────────
		fmt.Println()
		riskColor(result.Report.Risk).Println(result.Body)
		fmt.Println()

		if verbose {
			for _, reason := range report.Reasons(result.Report) {
				fmt.Printf("    %s\n", reason)
			}
		}

		switch {
		case noLog:
		case result.LogErr != nil:
			fmt.Printf("[!] Warning: could not write scan log: %v\n", result.LogErr)
		default:
			fmt.Printf("[+] Report appended to %s\n", logFile)
		}

		// ── 5. Webhook notification (non-fatal) ────────────────────────────────
		if webhookURL != "" {
			notifyCfg := pipeline.NotifyConfig{WebhookURL: webhookURL}
			if notifyErr := notifyCfg.SendCompletion(result); notifyErr != nil {
				fmt.Printf("[!] Warning: webhook notification failed: %v\n", notifyErr)
			} else {
				fmt.Printf("[+] Completion notification sent to %s\n", webhookURL)
			}
		}

		return nil
	},
}

func init() {
	scanCmd.Flags().String("log-file", "", "scan log path (default from config: wifi_scan_log.txt)")
	scanCmd.Flags().Bool("no-log", false, "do not append the report to the scan log")
	scanCmd.Flags().String("notify-webhook", "", "HTTP webhook URL to POST a scan summary to")
	scanCmd.Flags().String("platform", "", "override detected platform: windows, darwin, linux")
	scanCmd.Flags().Bool("no-color", false, "print the report without color")

	rootCmd.AddCommand(scanCmd)
}

// buildProbes wires every probe from the configuration and platform profile.
// cfg must have passed Validate.
func buildProbes(cfg *config.Config, profile platform.Profile, run tools.RunFunc) pipeline.Probes {
	cmdTimeout := config.MustTimeout(cfg.CommandTimeout)

	return pipeline.Probes{
		HTTPS:    probe.NewHTTPSProbe(cfg.HTTPS.Targets, config.MustTimeout(cfg.HTTPS.Timeout)),
		DNS:      probe.NewDNSProbe(cfg.DNS.Hostname, cfg.DNS.Server, config.MustTimeout(cfg.DNS.Timeout)),
		Firewall: probe.NewFirewallProbe(profile, run, cmdTimeout),
		Ping:     probe.NewPingProbe(profile, cfg.Ping.Host, run, cmdTimeout),
		VPN:      probe.NewVPNProbe(profile, run, cmdTimeout),
		SSID:     probe.NewSSIDProbe(profile, run, cmdTimeout),
	}
}

// riskColor returns the display color of a risk tier
func riskColor(level models.RiskLevel) *color.Color {
	switch level {
	case models.RiskVerySafe:
		return color.New(color.FgGreen, color.Bold)
	case models.RiskCaution:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}
