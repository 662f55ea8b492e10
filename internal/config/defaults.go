package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultLogFile is the flat-text scan log, relative to the working directory
const DefaultLogFile = "wifi_scan_log.txt"

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		LogFile:        DefaultLogFile,
		LogLevel:       "info",
		CommandTimeout: "10s",
		HTTPS: HTTPSConfig{
			Targets: []string{
				"https://google.com",
				"https://example.com",
				"https://cloudflare.com",
			},
			Timeout: "5s",
		},
		DNS: DNSConfig{
			Hostname: "google.com",
			Timeout:  "5s",
		},
		Ping: PingConfig{
			Host: "google.com",
		},
		Scoring: ScoringConfig{
			TrustedDNSPrefixes: []string{"8.8.", "1.1.", "9.9.", "142.250.", "92.249."},
		},
	}
}

// WriteDefault writes a default configuration to the specified path
func WriteDefault(path string) error {
	cfg := DefaultConfig()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
