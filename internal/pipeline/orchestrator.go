package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hakim/wifiscan/internal/models"
	"github.com/hakim/wifiscan/internal/report"
	"github.com/hakim/wifiscan/internal/score"
)

// SignalProbe is a boolean check
type SignalProbe interface {
	Check(ctx context.Context) models.Signal
}

// DNSProbe resolves the reference hostname
type DNSProbe interface {
	Resolve(ctx context.Context) models.Lookup
}

// SSIDProbe reads the current Wi-Fi network name
type SSIDProbe interface {
	Lookup(ctx context.Context) string
}

// Probes is the set of checks one scan runs
type Probes struct {
	HTTPS    SignalProbe
	DNS      DNSProbe
	Firewall SignalProbe
	Ping     SignalProbe
	VPN      SignalProbe
	SSID     SSIDProbe
}

// LogSink receives the formatted report of every scan
type LogSink interface {
	Append(at time.Time, body string) error
}

// ScanConfig controls how Run behaves for a single scan.
type ScanConfig struct {
	// Platform is recorded in the report.
	Platform string

	// Scorer scores the probe results. Nil selects the default allow-list.
	Scorer *score.Scorer

	// Log, when set, receives the formatted report. Write failures are
	// logged and reported in ScanResult.LogErr, never returned.
	Log LogSink

	// OnProbeStart is called immediately before each probe executes.
	// index is 0-based; total is the number of probes.
	OnProbeStart func(name string, index, total int)

	// OnProbeDone is called immediately after each probe returns (or panics).
	OnProbeDone func(name string, index, total int, elapsed time.Duration)

	// Now returns the scan start time. Nil selects time.Now.
	Now func() time.Time
}

// ScanResult summarises what happened after Run returns.
type ScanResult struct {
	// RunID correlates diagnostic log lines of one scan.
	RunID string

	Report *models.ScanReport

	// Body is the formatted report as displayed and logged.
	Body string

	// LogErr is the error from appending to the log, if any.
	LogErr error
}

// step is one probe in the fixed scan sequence
type step struct {
	name string
	run  func(ctx context.Context, r *models.ScanReport)
	fail func(r *models.ScanReport, reason string)
}

// Run executes every probe in order (https, dns, firewall, ping, vpn, ssid),
// scores the results, formats the report and appends it to the log.
//
// Each probe is wrapped in a deferred recover so a panicking probe is
// recorded as unknown and the remaining probes still execute. Run never
// fails: every problem lowers the score instead.
func Run(ctx context.Context, probes Probes, cfg ScanConfig) *ScanResult {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	scorer := cfg.Scorer
	if scorer == nil {
		scorer = score.New(nil)
	}

	runID := uuid.New().String()
	log := slog.Default().With("run", runID)

	r := &models.ScanReport{
		Platform:  cfg.Platform,
		StartedAt: now(),
		SSID:      models.UnknownSSID,
		HTTPS:     models.Unknown("not run"),
		Firewall:  models.Unknown("not run"),
		Ping:      models.Unknown("not run"),
		VPN:       models.Unknown("not run"),
	}

	steps := buildSteps(probes)
	total := len(steps)
	scanStart := time.Now()

	log.Debug("scan started", "platform", cfg.Platform, "probes", total)

	for i, s := range steps {
		if cfg.OnProbeStart != nil {
			cfg.OnProbeStart(s.name, i, total)
		}

		probeStart := time.Now()
		if err := runProbeIsolated(ctx, s, r); err != nil {
			s.fail(r, err.Error())
			log.Warn("probe panicked", "probe", s.name, "err", err)
		}
		elapsed := time.Since(probeStart)

		log.Debug("probe finished", "probe", s.name, "elapsed", elapsed.Round(time.Millisecond))

		if cfg.OnProbeDone != nil {
			cfg.OnProbeDone(s.name, i, total, elapsed)
		}
	}

	r.Score, r.Risk = scorer.FromReport(r)
	r.Elapsed = time.Since(scanStart)

	result := &ScanResult{
		RunID:  runID,
		Report: r,
		Body:   report.Format(r),
	}

	if cfg.Log != nil {
		// The record is stamped when it is written, not when the scan began.
		if err := cfg.Log.Append(now(), result.Body); err != nil {
			result.LogErr = err
			log.Warn("could not append scan log", "err", err)
		}
	}

	log.Info("scan finished", "score", r.Score, "risk", r.Risk, "elapsed", r.Elapsed.Round(time.Millisecond))

	return result
}

// buildSteps returns the fixed probe sequence. Probes left nil are skipped
// and keep their "not run" defaults.
func buildSteps(p Probes) []step {
	var steps []step

	if p.HTTPS != nil {
		steps = append(steps, step{
			name: "https",
			run:  func(ctx context.Context, r *models.ScanReport) { r.HTTPS = p.HTTPS.Check(ctx) },
			fail: func(r *models.ScanReport, reason string) { r.HTTPS = models.Unknown(reason) },
		})
	}
	if p.DNS != nil {
		steps = append(steps, step{
			name: "dns",
			run:  func(ctx context.Context, r *models.ScanReport) { r.DNS = p.DNS.Resolve(ctx) },
			fail: func(r *models.ScanReport, reason string) { r.DNS = models.Lookup{Hostname: r.DNS.Hostname, Reason: reason} },
		})
	}
	if p.Firewall != nil {
		steps = append(steps, step{
			name: "firewall",
			run:  func(ctx context.Context, r *models.ScanReport) { r.Firewall = p.Firewall.Check(ctx) },
			fail: func(r *models.ScanReport, reason string) { r.Firewall = models.Unknown(reason) },
		})
	}
	if p.Ping != nil {
		steps = append(steps, step{
			name: "ping",
			run:  func(ctx context.Context, r *models.ScanReport) { r.Ping = p.Ping.Check(ctx) },
			fail: func(r *models.ScanReport, reason string) { r.Ping = models.Unknown(reason) },
		})
	}
	if p.VPN != nil {
		steps = append(steps, step{
			name: "vpn",
			run:  func(ctx context.Context, r *models.ScanReport) { r.VPN = p.VPN.Check(ctx) },
			fail: func(r *models.ScanReport, reason string) { r.VPN = models.Unknown(reason) },
		})
	}
	if p.SSID != nil {
		steps = append(steps, step{
			name: "ssid",
			run:  func(ctx context.Context, r *models.ScanReport) { r.SSID = p.SSID.Lookup(ctx) },
			fail: func(r *models.ScanReport, reason string) { r.SSID = models.UnknownSSID },
		})
	}

	return steps
}

// runProbeIsolated runs a single probe inside a deferred recover so that a
// panic in probe code is returned as an error rather than crashing the scan.
func runProbeIsolated(ctx context.Context, s step, r *models.ScanReport) (retErr error) {
	defer func() {
		if rec := recover(); rec != nil {
			retErr = fmt.Errorf("probe %q panicked: %v", s.name, rec)
		}
	}()
	s.run(ctx, r)
	return nil
}
