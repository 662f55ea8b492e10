// Package score maps probe outcomes to a 0-5 risk score and tier.
package score

import (
	"strings"

	"github.com/hakim/wifiscan/internal/models"
)

// DefaultTrustedPrefixes are address prefixes of well-known public resolvers
// and the reference host's own ranges.
var DefaultTrustedPrefixes = []string{"8.8.", "1.1.", "9.9.", "142.250.", "92.249."}

// Inputs carries the probe outcomes the scorer consumes. An empty DNSIP means
// the reference hostname did not resolve.
type Inputs struct {
	HTTPS    bool
	DNSIP    string
	Firewall bool
	Ping     bool
	VPN      bool
}

// Scorer computes scores against a trust-prefix allow-list
type Scorer struct {
	TrustedPrefixes []string
}

// New returns a Scorer. A nil or empty prefix list selects the defaults.
func New(prefixes []string) *Scorer {
	if len(prefixes) == 0 {
		prefixes = DefaultTrustedPrefixes
	}
	return &Scorer{TrustedPrefixes: prefixes}
}

// Score returns the score in [0,5] and its risk tier.
//
// The DNS point is either/or: a trusted resolver address earns it, otherwise
// an active VPN does. The VPN then earns its own point as well, so a VPN on an
// untrusted resolver contributes two points.
func (s *Scorer) Score(in Inputs) (int, models.RiskLevel) {
	score := 0

	if in.HTTPS {
		score++
	}

	if s.Trusted(in.DNSIP) {
		score++
	} else if in.VPN {
		score++
	}

	if in.Firewall {
		score++
	}
	if in.Ping {
		score++
	}
	if in.VPN {
		score++
	}

	return score, Level(score)
}

// Trusted reports whether ip starts with one of the allow-listed prefixes.
// The empty string never matches.
func (s *Scorer) Trusted(ip string) bool {
	if ip == "" {
		return false
	}
	for _, prefix := range s.TrustedPrefixes {
		if prefix != "" && strings.HasPrefix(ip, prefix) {
			return true
		}
	}
	return false
}

// Level maps a score to its tier: 5 is Very Safe, 3-4 Caution, anything
// lower Dangerous.
func Level(score int) models.RiskLevel {
	switch {
	case score >= models.MaxScore:
		return models.RiskVerySafe
	case score >= 3:
		return models.RiskCaution
	default:
		return models.RiskDangerous
	}
}

// FromReport scores the probe results held in r
func (s *Scorer) FromReport(r *models.ScanReport) (int, models.RiskLevel) {
	in := Inputs{
		HTTPS:    r.HTTPS.OK(),
		Firewall: r.Firewall.OK(),
		Ping:     r.Ping.OK(),
		VPN:      r.VPN.OK(),
	}
	if r.DNS.Resolved {
		in.DNSIP = r.DNS.IP
	}
	return s.Score(in)
}
