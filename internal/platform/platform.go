// Package platform describes, per operating system, which external utilities
// the probes invoke and which output markers count as success.
package platform

import (
	"runtime"
	"strings"

	"github.com/hakim/wifiscan/internal/tools"
)

// ID identifies one of the supported operating systems
type ID string

const (
	Windows ID = "windows"
	Darwin  ID = "darwin"
	Linux   ID = "linux"
	Unknown ID = "unknown"
)

// Command is an external utility invocation
type Command struct {
	Binary string
	Args   []string
}

func (c Command) String() string {
	return strings.TrimSpace(c.Binary + " " + strings.Join(c.Args, " "))
}

// Check is a command whose output is matched against markers. Output matches
// when it contains at least one marker and none of the rejects.
type Check struct {
	Command
	Markers  []string
	Rejects  []string
	FoldCase bool
}

// Matches reports whether output signals success
func (c Check) Matches(output string) bool {
	if c.FoldCase {
		output = strings.ToLower(output)
	}
	for _, reject := range c.Rejects {
		if strings.Contains(output, c.fold(reject)) {
			return false
		}
	}
	for _, marker := range c.Markers {
		if strings.Contains(output, c.fold(marker)) {
			return true
		}
	}
	return false
}

func (c Check) fold(s string) string {
	if c.FoldCase {
		return strings.ToLower(s)
	}
	return s
}

// Profile is the probe strategy for one platform. A nil Firewall or
// Wireless means the platform has no such utility.
type Profile struct {
	ID         ID
	Firewall   *Check
	Interfaces Command
	Wireless   *Command
	ping       func(host string) Check
}

// Ping returns the single-echo ping check for host
func (p Profile) Ping(host string) Check {
	if p.ping == nil {
		return unixPing(host)
	}
	return p.ping(host)
}

// Parse maps an operating system name to an ID. Unrecognized names map to
// Unknown.
func Parse(name string) ID {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "windows":
		return Windows
	case "darwin", "macos":
		return Darwin
	case "linux":
		return Linux
	default:
		return Unknown
	}
}

// Detect returns the ID of the running operating system
func Detect() ID {
	return Parse(runtime.GOOS)
}

// Lookup returns the profile for id
func Lookup(id ID) Profile {
	switch id {
	case Windows:
		return Profile{
			ID: Windows,
			Firewall: &Check{
				Command: Command{Binary: "netsh", Args: []string{"advfirewall", "show", "allprofiles"}},
				Markers: []string{"ON"},
			},
			Interfaces: Command{Binary: "ipconfig"},
			ping:       windowsPing,
		}
	case Darwin:
		return Profile{
			ID: Darwin,
			Firewall: &Check{
				Command:  Command{Binary: "/usr/libexec/ApplicationFirewall/socketfilterfw", Args: []string{"--getglobalstate"}},
				Markers:  []string{"enabled"},
				FoldCase: true,
			},
			Interfaces: Command{Binary: "ifconfig"},
			Wireless: &Command{
				Binary: "/System/Library/PrivateFrameworks/Apple80211.framework/Versions/Current/Resources/airport",
				Args:   []string{"-I"},
			},
			ping: unixPing,
		}
	case Linux:
		return Profile{
			ID: Linux,
			Firewall: &Check{
				// -n makes sudo fail instead of waiting on a password prompt.
				Command:  Command{Binary: "sudo", Args: []string{"-n", "ufw", "status"}},
				Markers:  []string{"active"},
				Rejects:  []string{"inactive"},
				FoldCase: true,
			},
			Interfaces: Command{Binary: "ifconfig"},
			ping:       unixPing,
		}
	default:
		return Profile{
			ID:         Unknown,
			Interfaces: Command{Binary: "ifconfig"},
			ping:       unixPing,
		}
	}
}

func windowsPing(host string) Check {
	return Check{
		Command: Command{Binary: "ping", Args: []string{"-n", "1", host}},
		Markers: []string{"Received = 1"},
	}
}

func unixPing(host string) Check {
	return Check{
		Command: Command{Binary: "ping", Args: []string{"-c", "1", host}},
		Markers: []string{"1 received", "0% packet loss"},
		Rejects: []string{"100% packet loss", "100.0% packet loss"},
	}
}

// Overrides replaces utility binaries by name. Keys are the base binary
// names used by the profiles ("netsh", "ping", ...).
type Overrides map[string]string

// WithOverrides returns a copy of p with binaries replaced from o
func (p Profile) WithOverrides(o Overrides) Profile {
	if len(o) == 0 {
		return p
	}
	swap := func(c Command) Command {
		if path, ok := o[baseName(c.Binary)]; ok && path != "" {
			c.Binary = path
		}
		return c
	}

	if p.Firewall != nil {
		fw := *p.Firewall
		fw.Command = swap(fw.Command)
		p.Firewall = &fw
	}
	p.Interfaces = swap(p.Interfaces)
	if p.Wireless != nil {
		w := swap(*p.Wireless)
		p.Wireless = &w
	}
	ping := p.Ping
	p.ping = func(host string) Check {
		c := ping(host)
		c.Command = swap(c.Command)
		return c
	}
	return p
}

// Requirements lists the utilities this profile invokes
func (p Profile) Requirements() []tools.ToolRequirement {
	var reqs []tools.ToolRequirement
	if p.Firewall != nil {
		reqs = append(reqs, requirement(p.Firewall.Command, "Firewall state"))
	}
	reqs = append(reqs, requirement(p.Interfaces, "Interface listing (VPN detection)"))
	if p.Wireless != nil {
		reqs = append(reqs, requirement(*p.Wireless, "Wi-Fi SSID"))
	}
	reqs = append(reqs, requirement(p.Ping("localhost").Command, "ICMP reachability"))
	return reqs
}

func requirement(c Command, purpose string) tools.ToolRequirement {
	return tools.ToolRequirement{
		Name:    baseName(c.Binary),
		Binary:  c.Binary,
		Purpose: purpose,
	}
}

func baseName(binary string) string {
	if i := strings.LastIndexAny(binary, `/\`); i >= 0 {
		return binary[i+1:]
	}
	return binary
}
