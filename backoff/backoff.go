package backoff

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"
)

// Kind selects the delay growth curve for retries.
type Kind int

const (
	// None always yields a zero delay (retry immediately).
	None Kind = iota
	// Linear grows the delay by base each attempt.
	Linear
	// Exponential doubles the delay each attempt.
	Exponential
	// FullJitter randomizes over [0, exponential delay] (AWS full jitter).
	FullJitter
	// EqualJitter keeps half the exponential delay fixed and randomizes the rest.
	EqualJitter
	// DecorrelatedJitter randomizes over [base, previous*3] (AWS decorrelated jitter).
	DecorrelatedJitter
	// Fibonacci grows the delay along the Fibonacci sequence.
	Fibonacci
)

var kindNames = map[Kind]string{
	None:               "none",
	Linear:             "linear",
	Exponential:        "exponential",
	FullJitter:         "full-jitter",
	EqualJitter:        "equal-jitter",
	DecorrelatedJitter: "decorrelated-jitter",
	Fibonacci:          "fibonacci",
}

// String returns the config-file name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind parses a config-file name into a Kind.
func ParseKind(s string) (Kind, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == normalized {
			return k, nil
		}
	}
	return None, fmt.Errorf("unknown backoff kind %q", s)
}

// Delay computes the wait before the given retry attempt.
//
// attempt is 1-based: it is the retry about to be made. prev is the delay
// used before the previous attempt and is only consulted by
// DecorrelatedJitter. Every result is clamped into [0, max(base, maxDelay)].
// Jitter kinds draw from math/rand; all other kinds are deterministic.
func Delay(kind Kind, attempt int, base, maxDelay, prev time.Duration) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	switch kind {
	case None:
		return 0

	case Linear:
		return clamp(time.Duration(attempt)*base, base, maxDelay)

	case Exponential:
		return expDelay(attempt, base, maxDelay)

	case FullJitter:
		d := expDelay(attempt, base, maxDelay)
		if d <= 0 {
			return 0
		}
		return time.Duration(rand.Int63n(int64(d) + 1))

	case EqualJitter:
		d := expDelay(attempt, base, maxDelay)
		half := d / 2
		if d <= half {
			return half
		}
		return half + time.Duration(rand.Int63n(int64(d-half)+1))

	case DecorrelatedJitter:
		lo := base
		hi := prev * 3
		if hi < lo {
			hi = lo
		}
		d := lo
		if hi > lo {
			d += time.Duration(rand.Int63n(int64(hi-lo) + 1))
		}
		return clamp(d, base, maxDelay)

	case Fibonacci:
		return clamp(scale(base, fib(attempt)), base, maxDelay)

	default:
		return expDelay(attempt, base, maxDelay)
	}
}

// expDelay computes the clamped exponential delay base*2^(attempt-1).
func expDelay(attempt int, base, maxDelay time.Duration) time.Duration {
	return clamp(scale(base, math.Pow(2, float64(attempt-1))), base, maxDelay)
}

// clamp bounds d into [0, max(base, maxDelay)]. The cap never drops below
// base so a misconfigured maxDelay < base still permits one base-sized delay.
func clamp(d, base, maxDelay time.Duration) time.Duration {
	ceiling := maxDelay
	if base > ceiling {
		ceiling = base
	}
	if d > ceiling {
		return ceiling
	}
	if d < 0 {
		return 0
	}
	return d
}

// scale multiplies a duration by a float factor, saturating on overflow.
func scale(d time.Duration, factor float64) time.Duration {
	v := float64(d) * factor
	if v > float64(math.MaxInt64) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(v)
}

// fib returns the attempt-th Fibonacci number with fib(1)=fib(2)=1.
func fib(n int) float64 {
	a, b := 1.0, 1.0
	for i := 2; i < n; i++ {
		a, b = b, a+b
	}
	if n <= 2 {
		return 1
	}
	return b
}
