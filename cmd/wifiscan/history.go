package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hakim/wifiscan/internal/models"
	"github.com/hakim/wifiscan/internal/storage"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past scans from the scan log",
	Long: `Display a table of past scans read back from the flat-text scan log.

Scans are listed newest-first. Each row shows when the scan ran, the Wi-Fi
network, the score and the risk level.

Use --limit to cap the number of rows shown (default: 10).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logFile, _ := cmd.Flags().GetString("log-file")
		limit, _ := cmd.Flags().GetInt("limit")

		if logFile == "" {
			if cfg == nil {
				return fmt.Errorf("config not loaded")
			}
			logFile = cfg.LogFile
		}

		entries, err := storage.ReadLog(logFile)
		if errors.Is(err, os.ErrNotExist) {
			fmt.Printf("No scan history found in %s\n", logFile)
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", logFile, err)
		}

		if len(entries) == 0 {
			fmt.Printf("No scan history found in %s\n", logFile)
			return nil
		}

		// Newest first
		for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
			entries[i], entries[j] = entries[j], entries[i]
		}

		if limit > 0 && len(entries) > limit {
			entries = entries[:limit]
		}

		const separator = "────────────────────────────────────────────────────────────────────────"

		fmt.Printf("\nScan History (%s)\n", logFile)
		fmt.Println(separator)
		fmt.Printf("  %-3s  %-19s  %-24s  %-6s  %s\n", "#", "Scanned", "Wi-Fi SSID", "Score", "Level")
		fmt.Println(separator)

		for i, e := range entries {
			fmt.Printf("  %-3d  %-19s  %-24s  %-6s  %s\n",
				i+1,
				e.Timestamp.Format(storage.TimestampLayout),
				truncate(orDash(e.Field("Wi-Fi SSID")), 24),
				orDash(e.Field("Risk Score")),
				riskColor(models.RiskLevel(e.Field("Risk Level"))).Sprint(orDash(e.Field("Risk Level"))))
		}

		fmt.Println(separator)
		fmt.Printf("Total: %d scan(s)\n\n", len(entries))

		return nil
	},
}

// orDash returns "-" for an empty field
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	historyCmd.Flags().String("log-file", "", "scan log path (default from config: wifi_scan_log.txt)")
	historyCmd.Flags().Int("limit", 10, "Maximum number of scans to display")
	rootCmd.AddCommand(historyCmd)
}
