package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/hakim/wifiscan/internal/config"
	"github.com/hakim/wifiscan/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	verbose  bool
	logLevel string
	cfg      *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "wifiscan",
	Short: "Public Wi-Fi risk analyzer",
	Long: `WifiScan runs a handful of network diagnostics against the network you are
connected to (HTTPS reachability, DNS resolution, firewall state, VPN presence,
ping reachability and Wi-Fi SSID), combines them into a 0-5 risk score and
appends a human-readable report to a log file.

It relies on the operating system's own utilities (netsh, socketfilterfw, ufw,
ifconfig/ipconfig, airport, ping). Run 'wifiscan check' to see which ones are
available on this machine.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it
		skipConfig := map[string]bool{
			"init":    true,
			"help":    true,
			"version": true,
		}

		if skipConfig[cmd.Name()] {
			logging.Setup(pickLevel(logLevel, "info"))
			return nil
		}

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logging.Setup(pickLevel(logLevel, cfg.LogLevel))
		return nil
	},
}

func pickLevel(flagLevel, configLevel string) string {
	if verbose {
		return "debug"
	}
	if flagLevel != "" {
		return flagLevel
	}
	return configLevel
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default ./wifiscan.yaml or ~/.config/wifiscan/wifiscan.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "diagnostic log level: debug, info, warn, error")

	rootCmd.Version = "0.1.0-dev"
}

// Execute runs the root command, cancelling in-flight probes on interrupt
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
