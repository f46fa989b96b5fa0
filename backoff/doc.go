// Package backoff computes retry delays.
//
// It is a pure calculator: given a growth Kind, the 1-based retry attempt,
// the base and maximum delays, and the previous delay, Delay returns how
// long to wait before the next attempt. No state is kept between calls;
// the decorrelated-jitter kind receives its state (the previous delay)
// explicitly from the caller.
//
//	d := backoff.Delay(backoff.FullJitter, attempt, 200*time.Millisecond, 5*time.Second, prev)
//
// Jitter kinds (FullJitter, EqualJitter, DecorrelatedJitter) draw from
// math/rand; everything else is deterministic.
package backoff
