// Package retry runs an operation again after transient failures.
package retry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/pagestrap/internal/config"
	"git.home.luguber.info/inful/pagestrap/internal/foundation/normalization"
	"git.home.luguber.info/inful/pagestrap/internal/logfields"
)

// Mode selects how the delay grows between attempts.
type Mode string

const (
	ModeFixed       Mode = "fixed"
	ModeLinear      Mode = "linear"
	ModeExponential Mode = "exponential"
)

var modes = normalization.New("retry backoff", map[string]Mode{
	"fixed":       ModeFixed,
	"linear":      ModeLinear,
	"exponential": ModeExponential,
	"exp":         ModeExponential,
}, ModeLinear)

// Policy encapsulates retry/backoff settings for transient failures.
// It is immutable after construction.
type Policy struct {
	Mode       Mode
	Initial    time.Duration // base delay
	Max        time.Duration // cap for growth
	MaxRetries int           // attempts after the first failure
}

// DefaultPolicy returns linear backoff, 1s initial, 30s cap, 2 retries.
func DefaultPolicy() Policy {
	return Policy{Mode: ModeLinear, Initial: time.Second, Max: 30 * time.Second, MaxRetries: 2}
}

// FromConfig builds the fetch policy. Unset fields keep their defaults.
func FromConfig(f config.FetchConfig) (Policy, error) {
	p := DefaultPolicy()
	mode, err := modes.Parse(f.RetryBackoff)
	if err != nil {
		return p, err
	}
	p.Mode = mode
	if f.MaxRetries != nil {
		p.MaxRetries = *f.MaxRetries
	}
	for _, d := range []struct {
		raw string
		dst *time.Duration
	}{{f.RetryInitialDelay, &p.Initial}, {f.RetryMaxDelay, &p.Max}} {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return p, fmt.Errorf("invalid retry delay %q: %w", d.raw, err)
		}
		*d.dst = v
	}
	if p.Initial > p.Max {
		p.Initial = p.Max
	}
	return p, p.Validate()
}

// Delay returns the backoff delay for the given retry (1-based: first retry => 1).
func (p Policy) Delay(retryCount int) time.Duration {
	if retryCount <= 0 {
		return 0
	}
	var d time.Duration
	switch p.Mode {
	case ModeFixed:
		d = p.Initial
	case ModeExponential:
		d = p.Initial
		for i := 1; i < retryCount && d < p.Max; i++ {
			d *= 2
		}
	default:
		d = time.Duration(retryCount) * p.Initial
	}
	if d > p.Max {
		return p.Max
	}
	return d
}

// Validate ensures the policy can be applied.
func (p Policy) Validate() error {
	if p.Initial <= 0 {
		return fmt.Errorf("initial must be >0")
	}
	if p.Max <= 0 {
		return fmt.Errorf("max must be >0")
	}
	if p.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative")
	}
	return nil
}

// Do runs op until it succeeds, retryable reports false, the retries are used
// up or ctx is done. The last error is returned.
func (p Policy) Do(ctx context.Context, op func() error, retryable func(error) bool) error {
	err := op()
	for attempt := 1; err != nil && attempt <= p.MaxRetries; attempt++ {
		if retryable != nil && !retryable(err) {
			return err
		}
		delay := p.Delay(attempt)
		slog.Warn("Retrying after transient failure",
			slog.Int("attempt", attempt), slog.Duration("delay", delay), logfields.Error(err))
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return err
		case <-t.C:
		}
		err = op()
	}
	return err
}
