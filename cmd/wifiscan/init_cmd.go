package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hakim/wifiscan/internal/config"
	"github.com/hakim/wifiscan/internal/storage"
	"github.com/spf13/cobra"
)

var (
	initForce bool
	initDir   string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Creates a default configuration file (wifiscan.yaml) listing every setting
with its default value: probe targets, timeouts, the trusted DNS prefixes
and the scan log path.

wifiscan works without a config file; run this when you want to change one
of the defaults.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := filepath.Join(initDir, "wifiscan.yaml")

		if _, err := os.Stat(configPath); err == nil && !initForce {
			return fmt.Errorf("config file already exists at %s. Use --force to overwrite", configPath)
		}

		if err := storage.EnsureDir(initDir); err != nil {
			return fmt.Errorf("failed to create %s: %w", initDir, err)
		}

		if err := config.WriteDefault(configPath); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		fmt.Printf("Created %s with default configuration\n", configPath)

		// Load the config we just created to make sure it round-trips
		if _, err := config.Load(configPath); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		fmt.Println()
		fmt.Println("Run 'wifiscan check' to verify your tools, then 'wifiscan scan'.")

		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config file")
	initCmd.Flags().StringVar(&initDir, "dir", ".", "output directory")
	rootCmd.AddCommand(initCmd)
}
