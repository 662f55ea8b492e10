package models

import "time"

// SignalState is the tri-state outcome of a boolean probe.
type SignalState string

const (
	SignalTrue    SignalState = "true"
	SignalFalse   SignalState = "false"
	SignalUnknown SignalState = "unknown"
)

// Signal is the result of a single boolean probe. Unknown means the check
// could not run; the scorer treats it the same as false.
type Signal struct {
	State  SignalState `json:"state"`
	Reason string      `json:"reason,omitempty"`
}

// Pass returns a true signal
func Pass() Signal {
	return Signal{State: SignalTrue}
}

// Fail returns a false signal with an optional reason
func Fail(reason string) Signal {
	return Signal{State: SignalFalse, Reason: reason}
}

// Unknown returns a signal for a check that could not be completed
func Unknown(reason string) Signal {
	return Signal{State: SignalUnknown, Reason: reason}
}

// OK reports whether the signal is true
func (s Signal) OK() bool {
	return s.State == SignalTrue
}

func (s Signal) String() string {
	if s.State == "" {
		return string(SignalUnknown)
	}
	return string(s.State)
}

// UnresolvedDNS is shown in place of an address when resolution failed.
const UnresolvedDNS = "unresolved"

// UnknownSSID is the sentinel for a Wi-Fi network name that could not be read.
const UnknownSSID = "Unknown"

// Lookup is the result of the DNS probe. IP is empty unless Resolved is true.
type Lookup struct {
	Hostname string `json:"hostname"`
	IP       string `json:"ip,omitempty"`
	Resolved bool   `json:"resolved"`
	Reason   string `json:"reason,omitempty"`
}

func (l Lookup) String() string {
	if !l.Resolved || l.IP == "" {
		return UnresolvedDNS
	}
	return l.IP
}

// ScanReport is the aggregate of one probe sequence. It is built once per
// scan and never modified afterwards.
type ScanReport struct {
	Platform  string        `json:"platform"`
	StartedAt time.Time     `json:"started_at"`
	Elapsed   time.Duration `json:"elapsed"`

	SSID     string `json:"ssid"`
	HTTPS    Signal `json:"https"`
	DNS      Lookup `json:"dns"`
	Firewall Signal `json:"firewall"`
	Ping     Signal `json:"ping"`
	VPN      Signal `json:"vpn"`

	Score int       `json:"score"`
	Risk  RiskLevel `json:"risk_level"`
}
