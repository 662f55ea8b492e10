package probe

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/miekg/dns"

	"github.com/hakim/wifiscan/internal/models"
)

// DefaultDNSHostname is the reference name resolved by the DNS probe
const DefaultDNSHostname = "google.com"

// DefaultDNSTimeout bounds a single resolution
const DefaultDNSTimeout = 5 * time.Second

// DNSProbe resolves a reference hostname to an IPv4 address. With Server
// empty the system resolver is used; otherwise an A query goes straight to
// Server.
type DNSProbe struct {
	Hostname string
	Server   string
	Timeout  time.Duration
	Resolver *net.Resolver
}

// NewDNSProbe returns a DNS probe with defaults filled in
func NewDNSProbe(hostname, server string, timeout time.Duration) *DNSProbe {
	if hostname == "" {
		hostname = DefaultDNSHostname
	}
	if timeout <= 0 {
		timeout = DefaultDNSTimeout
	}
	return &DNSProbe{
		Hostname: hostname,
		Server:   server,
		Timeout:  timeout,
		Resolver: net.DefaultResolver,
	}
}

// Resolve returns the first IPv4 address, or an unresolved lookup
func (p *DNSProbe) Resolve(ctx context.Context) models.Lookup {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultDNSTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var (
		ip  string
		err error
	)
	if p.Server != "" {
		ip, err = p.exchange(ctx)
	} else {
		ip, err = p.system(ctx)
	}

	if err != nil {
		return models.Lookup{Hostname: p.Hostname, Reason: err.Error()}
	}
	return models.Lookup{Hostname: p.Hostname, IP: ip, Resolved: true}
}

func (p *DNSProbe) system(ctx context.Context) (string, error) {
	resolver := p.Resolver
	if resolver == nil {
		resolver = net.DefaultResolver
	}
	ips, err := resolver.LookupIP(ctx, "ip4", p.Hostname)
	if err != nil {
		return "", err
	}
	for _, ip := range ips {
		if v4 := ip.To4(); v4 != nil {
			return v4.String(), nil
		}
	}
	return "", fmt.Errorf("no A record for %s", p.Hostname)
}

func (p *DNSProbe) exchange(ctx context.Context) (string, error) {
	server := p.Server
	if _, _, err := net.SplitHostPort(server); err != nil {
		server = net.JoinHostPort(server, "53")
	}

	query := new(dns.Msg)
	query.SetQuestion(dns.Fqdn(p.Hostname), dns.TypeA)

	client := &dns.Client{Timeout: p.Timeout}
	reply, _, err := client.ExchangeContext(ctx, query, server)
	if err != nil {
		return "", fmt.Errorf("query %s: %w", server, err)
	}
	if reply.Rcode != dns.RcodeSuccess {
		return "", fmt.Errorf("query %s: %s", server, dns.RcodeToString[reply.Rcode])
	}

	for _, rr := range reply.Answer {
		if a, ok := rr.(*dns.A); ok {
			return a.A.String(), nil
		}
	}
	return "", fmt.Errorf("no A record for %s", p.Hostname)
}
