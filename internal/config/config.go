package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	LogFile        string        `mapstructure:"log_file" yaml:"log_file"`
	LogLevel       string        `mapstructure:"log_level" yaml:"log_level"`
	Platform       string        `mapstructure:"platform" yaml:"platform"`
	CommandTimeout string        `mapstructure:"command_timeout" yaml:"command_timeout"`
	HTTPS          HTTPSConfig   `mapstructure:"https" yaml:"https"`
	DNS            DNSConfig     `mapstructure:"dns" yaml:"dns"`
	Ping           PingConfig    `mapstructure:"ping" yaml:"ping"`
	Scoring        ScoringConfig `mapstructure:"scoring" yaml:"scoring"`
	Tools          ToolsConfig   `mapstructure:"tools" yaml:"tools"`
	Notify         NotifyConfig  `mapstructure:"notify" yaml:"notify"`
}

// HTTPSConfig controls the HTTPS reachability probe
type HTTPSConfig struct {
	Targets []string `mapstructure:"targets" yaml:"targets"`
	Timeout string   `mapstructure:"timeout" yaml:"timeout"`
}

// DNSConfig controls the DNS resolution probe
type DNSConfig struct {
	Hostname string `mapstructure:"hostname" yaml:"hostname"`
	Server   string `mapstructure:"server" yaml:"server"`
	Timeout  string `mapstructure:"timeout" yaml:"timeout"`
}

// PingConfig controls the ping probe
type PingConfig struct {
	Host string `mapstructure:"host" yaml:"host"`
}

// ScoringConfig controls the scorer
type ScoringConfig struct {
	TrustedDNSPrefixes []string `mapstructure:"trusted_dns_prefixes" yaml:"trusted_dns_prefixes"`
}

// ToolConfig represents configuration for a single external utility
type ToolConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// ToolsConfig overrides the paths of the utilities the probes invoke
type ToolsConfig struct {
	Netsh          ToolConfig `mapstructure:"netsh" yaml:"netsh"`
	Socketfilterfw ToolConfig `mapstructure:"socketfilterfw" yaml:"socketfilterfw"`
	Sudo           ToolConfig `mapstructure:"sudo" yaml:"sudo"`
	Ipconfig       ToolConfig `mapstructure:"ipconfig" yaml:"ipconfig"`
	Ifconfig       ToolConfig `mapstructure:"ifconfig" yaml:"ifconfig"`
	Airport        ToolConfig `mapstructure:"airport" yaml:"airport"`
	Ping           ToolConfig `mapstructure:"ping" yaml:"ping"`
}

// Overrides returns the configured paths keyed by utility name
func (t ToolsConfig) Overrides() map[string]string {
	out := map[string]string{}
	for name, tc := range map[string]ToolConfig{
		"netsh":          t.Netsh,
		"socketfilterfw": t.Socketfilterfw,
		"sudo":           t.Sudo,
		"ipconfig":       t.Ipconfig,
		"ifconfig":       t.Ifconfig,
		"airport":        t.Airport,
		"ping":           t.Ping,
	} {
		if tc.Path != "" {
			out[name] = tc.Path
		}
	}
	return out
}

// NotifyConfig configures the completion webhook
type NotifyConfig struct {
	WebhookURL string `mapstructure:"webhook_url" yaml:"webhook_url"`
}

// Load reads and parses configuration from a YAML file on top of the defaults.
// If path is empty, searches for wifiscan.yaml in current directory and
// ~/.config/wifiscan/, and falls back to the defaults when none exists.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("wifiscan")
		v.AddConfigPath(".")

		homeDir, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".config", "wifiscan"))
		}
	}

	// Defaults are read first so the file only needs the keys it changes.
	defaults, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal defaults: %w", err)
	}
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return nil, fmt.Errorf("failed to read defaults: %w", err)
	}

	if err := v.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.LogFile) == "" {
		errs = append(errs, errors.New("log_file cannot be empty"))
	}

	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log_level %q", c.LogLevel))
	}

	for key, value := range map[string]string{
		"command_timeout": c.CommandTimeout,
		"https.timeout":   c.HTTPS.Timeout,
		"dns.timeout":     c.DNS.Timeout,
	} {
		if _, err := ParseTimeout(value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}

	if len(c.HTTPS.Targets) == 0 {
		errs = append(errs, errors.New("https.targets cannot be empty"))
	}
	for _, target := range c.HTTPS.Targets {
		if !strings.HasPrefix(target, "https://") {
			errs = append(errs, fmt.Errorf("https target %q must use the https scheme", target))
		}
	}

	if c.DNS.Hostname == "" {
		errs = append(errs, errors.New("dns.hostname cannot be empty"))
	}
	if c.Ping.Host == "" {
		errs = append(errs, errors.New("ping.host cannot be empty"))
	}
	if strings.HasPrefix(c.Ping.Host, "-") {
		errs = append(errs, fmt.Errorf("ping.host %q looks like a flag", c.Ping.Host))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// ParseTimeout parses a positive duration string such as "5s"
func ParseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration %q must be positive", s)
	}
	return d, nil
}

// MustTimeout parses a duration that Validate has already accepted
func MustTimeout(s string) time.Duration {
	d, err := ParseTimeout(s)
	if err != nil {
		panic(err)
	}
	return d
}
