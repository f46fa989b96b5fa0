package policy

import (
	"testing"
	"time"

	"github.com/ekarabulut/failover/backoff"
	"github.com/ekarabulut/failover/util"
)

func TestResolve_HardcodedDefaults(t *testing.T) {
	eff := Resolve("upload", "s3", Config{}, nil)

	if eff.MaxRetry != 0 {
		t.Errorf("expected maxRetry 0, got %d", eff.MaxRetry)
	}
	if eff.BaseDelay != 200*time.Millisecond {
		t.Errorf("expected base 200ms, got %v", eff.BaseDelay)
	}
	if eff.MaxDelay != 5*time.Second {
		t.Errorf("expected max 5s, got %v", eff.MaxDelay)
	}
	if eff.Backoff != backoff.FullJitter {
		t.Errorf("expected full-jitter, got %v", eff.Backoff)
	}
}

func TestResolve_PerProviderWinsFieldwise(t *testing.T) {
	cfg := Config{
		PerProvider: map[string]RetryPolicy{
			"p": {MaxRetry: util.Ptr(5)},
		},
		PerOperation: map[string]RetryPolicy{
			"op": {MaxRetry: util.Ptr(2), BaseDelay: util.Ptr(10 * time.Millisecond)},
		},
	}

	eff := Resolve("op", "p", cfg, nil)

	// perProvider wins on the field it sets.
	if eff.MaxRetry != 5 {
		t.Errorf("expected maxRetry 5, got %d", eff.MaxRetry)
	}
	// perProvider omits baseDelay, so perOperation supplies it.
	if eff.BaseDelay != 10*time.Millisecond {
		t.Errorf("expected base 10ms, got %v", eff.BaseDelay)
	}
}

func TestResolve_InlineAboveDefault(t *testing.T) {
	cfg := Config{
		Default: &RetryPolicy{
			MaxRetry: util.Ptr(1),
			MaxDelay: util.Ptr(time.Second),
		},
	}
	inline := &RetryPolicy{MaxRetry: util.Ptr(3)}

	eff := Resolve("op", "p", cfg, inline)

	if eff.MaxRetry != 3 {
		t.Errorf("expected inline maxRetry 3, got %d", eff.MaxRetry)
	}
	if eff.MaxDelay != time.Second {
		t.Errorf("expected default maxDelay 1s, got %v", eff.MaxDelay)
	}
}

func TestResolve_PerOperationAboveInline(t *testing.T) {
	cfg := Config{
		PerOperation: map[string]RetryPolicy{
			"op": {Backoff: util.Ptr(backoff.Fibonacci)},
		},
	}
	inline := &RetryPolicy{Backoff: util.Ptr(backoff.Linear), BaseDelay: util.Ptr(50 * time.Millisecond)}

	eff := Resolve("op", "p", cfg, inline)

	if eff.Backoff != backoff.Fibonacci {
		t.Errorf("expected fibonacci, got %v", eff.Backoff)
	}
	if eff.BaseDelay != 50*time.Millisecond {
		t.Errorf("expected inline base 50ms, got %v", eff.BaseDelay)
	}
}

func TestResolve_UnmatchedKeysIgnored(t *testing.T) {
	cfg := Config{
		PerProvider: map[string]RetryPolicy{
			"other-provider": {MaxRetry: util.Ptr(9)},
		},
		PerOperation: map[string]RetryPolicy{
			"other-op": {MaxRetry: util.Ptr(7)},
		},
	}

	eff := Resolve("op", "p", cfg, nil)
	if eff.MaxRetry != 0 {
		t.Errorf("expected default maxRetry 0, got %d", eff.MaxRetry)
	}
}

func TestResolve_NegativeMaxRetryClamped(t *testing.T) {
	eff := Resolve("op", "p", Config{Default: &RetryPolicy{MaxRetry: util.Ptr(-3)}}, nil)
	if eff.MaxRetry != 0 {
		t.Errorf("expected clamp to 0, got %d", eff.MaxRetry)
	}
}

func TestResolve_FullChain(t *testing.T) {
	cfg := Config{
		Default: &RetryPolicy{
			MaxRetry:  util.Ptr(1),
			BaseDelay: util.Ptr(100 * time.Millisecond),
			MaxDelay:  util.Ptr(time.Second),
			Backoff:   util.Ptr(backoff.Exponential),
		},
		PerOperation: map[string]RetryPolicy{
			"op": {MaxDelay: util.Ptr(2 * time.Second)},
		},
		PerProvider: map[string]RetryPolicy{
			"p": {Backoff: util.Ptr(backoff.None)},
		},
	}
	inline := &RetryPolicy{MaxRetry: util.Ptr(4)}

	eff := Resolve("op", "p", cfg, inline)

	if eff.Backoff != backoff.None {
		t.Errorf("perProvider backoff lost: %v", eff.Backoff)
	}
	if eff.MaxDelay != 2*time.Second {
		t.Errorf("perOperation maxDelay lost: %v", eff.MaxDelay)
	}
	if eff.MaxRetry != 4 {
		t.Errorf("inline maxRetry lost: %d", eff.MaxRetry)
	}
	if eff.BaseDelay != 100*time.Millisecond {
		t.Errorf("default baseDelay lost: %v", eff.BaseDelay)
	}
}
