// Package probe implements the individual network checks of a scan. Probes
// never return errors: failures become a false or unknown signal, or a
// sentinel value.
package probe

import (
	"context"
	"time"

	"github.com/hakim/wifiscan/internal/platform"
	"github.com/hakim/wifiscan/internal/tools"
)

// DefaultCommandTimeout bounds every external utility invocation
const DefaultCommandTimeout = 10 * time.Second

// commandRunner carries what every command-backed probe needs
type commandRunner struct {
	Run     tools.RunFunc
	Timeout time.Duration
}

// output runs c and returns its combined output. A non-zero exit status is
// not an error here; only a process that could not start or was cut off by
// the timeout is.
func (r commandRunner) output(ctx context.Context, c platform.Command) (string, error) {
	run := r.Run
	if run == nil {
		run = tools.RunTool
	}
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := run(ctx, c.Binary, c.Args...)
	if err != nil && (result == nil || ctx.Err() != nil) {
		return "", err
	}
	return result.Output(), nil
}
