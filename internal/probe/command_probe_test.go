package probe

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakim/wifiscan/internal/models"
	"github.com/hakim/wifiscan/internal/platform"
	"github.com/hakim/wifiscan/internal/tools"
)

// fakeRunner answers every invocation with a fixed result and records the
// command line it was given.
type fakeRunner struct {
	out      string
	exitCode int
	startErr error
	hang     bool
	calls    []string
}

func (f *fakeRunner) run(ctx context.Context, binary string, args ...string) (*tools.ToolResult, error) {
	f.calls = append(f.calls, platform.Command{Binary: binary, Args: args}.String())
	if f.startErr != nil {
		return nil, f.startErr
	}
	res := &tools.ToolResult{Stdout: []byte(f.out), ExitCode: f.exitCode}
	if f.hang {
		<-ctx.Done()
		return res, fmt.Errorf("command cancelled: %w", ctx.Err())
	}
	if f.exitCode != 0 {
		return res, fmt.Errorf("command failed with exit code %d", f.exitCode)
	}
	return res, nil
}

func TestFirewallProbe_PlatformDispatch(t *testing.T) {
	cases := []struct {
		Name    string
		ID      platform.ID
		Out     string
		Want    models.SignalState
		Command string
	}{
		{"windows on", platform.Windows, "State                                 ON", models.SignalTrue, "netsh advfirewall show allprofiles"},
		{"windows off", platform.Windows, "State                                 OFF", models.SignalFalse, "netsh advfirewall show allprofiles"},
		{"darwin enabled", platform.Darwin, "Firewall is Enabled. (State = 1)", models.SignalTrue, "/usr/libexec/ApplicationFirewall/socketfilterfw --getglobalstate"},
		{"linux active", platform.Linux, "Status: active", models.SignalTrue, "sudo -n ufw status"},
		{"linux inactive", platform.Linux, "Status: inactive", models.SignalFalse, "sudo -n ufw status"},
		{"linux no password", platform.Linux, "sudo: a password is required", models.SignalFalse, "sudo -n ufw status"},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			f := &fakeRunner{out: c.Out}
			got := NewFirewallProbe(platform.Lookup(c.ID), f.run, time.Second).Check(context.Background())
			assert.Equal(t, c.Want, got.State)
			assert.Equal(t, []string{c.Command}, f.calls)
		})
	}
}

func TestFirewallProbe_UnknownPlatform(t *testing.T) {
	f := &fakeRunner{out: "active"}
	got := NewFirewallProbe(platform.Lookup(platform.Unknown), f.run, time.Second).Check(context.Background())
	assert.False(t, got.OK())
	assert.Equal(t, models.SignalUnknown, got.State)
	assert.Empty(t, f.calls)
}

func TestFirewallProbe_HangingCommandFailsClosed(t *testing.T) {
	f := &fakeRunner{out: "Status: active", hang: true}
	p := NewFirewallProbe(platform.Lookup(platform.Linux), f.run, 20*time.Millisecond)

	start := time.Now()
	got := p.Check(context.Background())

	assert.False(t, got.OK())
	assert.Equal(t, models.SignalUnknown, got.State)
	assert.Less(t, time.Since(start), time.Second)
}

func TestPingProbe(t *testing.T) {
	cases := []struct {
		Name string
		ID   platform.ID
		Out  string
		Exit int
		Want models.SignalState
	}{
		{"windows reply", platform.Windows, "Packets: Sent = 1, Received = 1, Lost = 0 (0% loss),", 0, models.SignalTrue},
		{"windows timeout", platform.Windows, "Packets: Sent = 1, Received = 0, Lost = 1 (100% loss),", 1, models.SignalFalse},
		{"linux reply", platform.Linux, "1 packets transmitted, 1 received, 0% packet loss, time 0ms", 0, models.SignalTrue},
		{"linux loss", platform.Linux, "1 packets transmitted, 0 received, 100% packet loss, time 0ms", 1, models.SignalFalse},
		{"darwin reply", platform.Darwin, "1 packets transmitted, 1 packets received, 0.0% packet loss", 0, models.SignalTrue},
		{"unknown host", platform.Linux, "ping: google.com: Name or service not known", 2, models.SignalFalse},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			f := &fakeRunner{out: c.Out, exitCode: c.Exit}
			got := NewPingProbe(platform.Lookup(c.ID), "", f.run, time.Second).Check(context.Background())
			assert.Equal(t, c.Want, got.State)
			require.Len(t, f.calls, 1)
			assert.Contains(t, f.calls[0], "google.com")
		})
	}
}

func TestPingProbe_MissingUtility(t *testing.T) {
	f := &fakeRunner{startErr: &exec.Error{Name: "ping", Err: exec.ErrNotFound}}
	got := NewPingProbe(platform.Lookup(platform.Linux), "example.com", f.run, time.Second).Check(context.Background())
	assert.Equal(t, models.SignalUnknown, got.State)
	assert.Equal(t, []string{"ping -c 1 example.com"}, f.calls)
}

func TestLooksLikeVPN(t *testing.T) {
	assert.True(t, LooksLikeVPN("tun0: flags=4305<UP,POINTOPOINT,RUNNING,NOARP,MULTICAST>  mtu 1500"))
	assert.True(t, LooksLikeVPN("ppp0: flags=8051<UP,POINTOPOINT,RUNNING,MULTICAST> mtu 1500"))
	assert.True(t, LooksLikeVPN("Unknown adapter ProtonVPN:"))
	assert.False(t, LooksLikeVPN("eth0: flags=4163<UP,BROADCAST,RUNNING,MULTICAST>  mtu 1500\nlo: flags=73<UP,LOOPBACK,RUNNING>"))
	assert.False(t, LooksLikeVPN(""))
}

func TestVPNProbe(t *testing.T) {
	f := &fakeRunner{out: "wg0: flags=209<UP,POINTOPOINT,RUNNING,NOARP>\nNordVPN adapter"}
	p := NewVPNProbe(platform.Lookup(platform.Windows), f.run, time.Second)
	assert.True(t, p.Check(context.Background()).OK())
	assert.Equal(t, []string{"ipconfig"}, f.calls)

	f = &fakeRunner{out: "eth0: flags=4163<UP,BROADCAST,RUNNING,MULTICAST>"}
	p = NewVPNProbe(platform.Lookup(platform.Linux), f.run, time.Second)
	assert.Equal(t, models.SignalFalse, p.Check(context.Background()).State)
}

func TestVPNProbe_FallsBackWhenUtilityMissing(t *testing.T) {
	f := &fakeRunner{startErr: &exec.Error{Name: "ifconfig", Err: exec.ErrNotFound}}
	p := NewVPNProbe(platform.Lookup(platform.Linux), f.run, time.Second)

	p.Interfaces = func() ([]string, error) { return []string{"lo", "eth0", "tun0"}, nil }
	assert.True(t, p.Check(context.Background()).OK())

	p.Interfaces = func() ([]string, error) { return nil, errors.New("netlink denied") }
	assert.Equal(t, models.SignalUnknown, p.Check(context.Background()).State)

	p.Interfaces = nil
	assert.Equal(t, models.SignalUnknown, p.Check(context.Background()).State)
}

func TestParseSSID(t *testing.T) {
	airport := `     agrCtlRSSI: -55
     agrExtRSSI: 0
          state: running
        op mode: station
     lastTxRate: 144
        maxRate: 144
lastAssocStatus: 0
    802.11 auth: open
      link auth: wpa2-psk
          BSSID: a0:b1:c2:d3:e4:f5
           SSID: Cafe Free WiFi
            MCS: 15
        channel: 6
`
	assert.Equal(t, "Cafe Free WiFi", ParseSSID(airport))
	assert.Equal(t, "Lounge", ParseSSID("           SSID: Airport: Lounge\n"))
	assert.Equal(t, "Office", ParseSSID("           SSID:Office\n"))
	assert.Equal(t, models.UnknownSSID, ParseSSID("AirPort: Off\n"))
	assert.Equal(t, models.UnknownSSID, ParseSSID("           SSID: \n"))
	assert.Equal(t, models.UnknownSSID, ParseSSID(""))
}

func TestSSIDProbe(t *testing.T) {
	f := &fakeRunner{out: "          BSSID: 0:0:0:0:0:0\n           SSID: HomeNet\n"}
	p := NewSSIDProbe(platform.Lookup(platform.Darwin), f.run, time.Second)
	assert.Equal(t, "HomeNet", p.Lookup(context.Background()))
	require.Len(t, f.calls, 1)
	assert.Contains(t, f.calls[0], "airport -I")

	for _, id := range []platform.ID{platform.Windows, platform.Linux, platform.Unknown} {
		f := &fakeRunner{out: "SSID: nope"}
		p := NewSSIDProbe(platform.Lookup(id), f.run, time.Second)
		assert.Equal(t, models.UnknownSSID, p.Lookup(context.Background()), string(id))
		assert.Empty(t, f.calls)
	}

	f = &fakeRunner{startErr: &exec.Error{Name: "airport", Err: exec.ErrNotFound}}
	p = NewSSIDProbe(platform.Lookup(platform.Darwin), f.run, time.Second)
	assert.Equal(t, models.UnknownSSID, p.Lookup(context.Background()))
}
