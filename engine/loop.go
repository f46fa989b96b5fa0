package engine

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/ekarabulut/failover/backoff"
	"github.com/ekarabulut/failover/errors"
	"github.com/ekarabulut/failover/logger"
	"github.com/ekarabulut/failover/observability"
	"github.com/ekarabulut/failover/policy"
	"github.com/ekarabulut/failover/provider"
)

// loopResult is the terminal state of one provider's attempt loop:
// either a success payload or the accumulated attempt records.
type loopResult[O any] struct {
	ok       bool
	value    O
	attempts []AttemptRecord
}

// lastErr returns the final attempt's failure.
func (r loopResult[O]) lastErr() error {
	if len(r.attempts) == 0 {
		return nil
	}
	return r.attempts[len(r.attempts)-1].Err
}

// runLoop drives one (provider, operation) pair to a terminal state.
// With an effective maxRetry of n the provider is attempted exactly n+1
// times. A retry-after hint carried by the failure replaces the computed
// backoff delay and also seeds the previous-delay input of
// decorrelated jitter. A context cancelled during backoff ends the loop
// early with the attempts recorded so far.
func (e *Engine[I, O]) runLoop(ctx context.Context, callID string, p *provider.Normalized[I, O], operation string, input I) loopResult[O] {
	eff := policy.Resolve(operation, p.Name(), e.policies, p.Policy())

	var result loopResult[O]
	var prevDelay time.Duration

	for attempt := 0; ; attempt++ {
		attemptCtx := ctx
		var span trace.Span
		if e.tracing {
			attemptCtx, span = observability.StartSpan(ctx, "failover.attempt")
			observability.SetSpanAttribute(attemptCtx, observability.AttrCallID, callID)
			observability.SetSpanAttribute(attemptCtx, observability.AttrProvider, p.Name())
			observability.SetSpanAttribute(attemptCtx, observability.AttrOperation, operation)
			observability.SetSpanAttribute(attemptCtx, observability.AttrAttempt, attempt)
		}

		start := time.Now()
		out, err := p.Invoke(attemptCtx, operation, input)
		duration := time.Since(start)

		if span != nil {
			if err != nil {
				observability.SetSpanError(attemptCtx, err)
			}
			span.End()
		}

		if err == nil {
			if e.metrics != nil {
				e.metrics.RecordAttempt(ctx, p.Name(), operation, "ok", duration)
			}
			e.log.Debug("attempt succeeded", logger.Fields(
				logger.FieldCallID, callID,
				logger.FieldProvider, p.Name(),
				logger.FieldOperation, operation,
				logger.FieldAttempt, attempt,
				logger.FieldDuration, duration.Milliseconds(),
			))
			e.hooks.success(HookContext{
				CallID:    callID,
				Provider:  p.Name(),
				Operation: operation,
				Attempt:   attempt,
				Duration:  duration,
			}, input, out)

			result.ok = true
			result.value = out
			return result
		}

		result.attempts = append(result.attempts, AttemptRecord{
			Provider:  p.Name(),
			Operation: operation,
			Attempt:   attempt,
			Duration:  duration,
			Err:       err,
		})

		delay := backoff.Delay(eff.Backoff, attempt+1, eff.BaseDelay, eff.MaxDelay, prevDelay)
		if hint, ok := errors.RetryAfter(err); ok {
			// The provider told us exactly how long to wait.
			delay = hint
		}

		if e.metrics != nil {
			e.metrics.RecordAttempt(ctx, p.Name(), operation, "error", duration)
			e.metrics.RecordBackoff(ctx, p.Name(), operation, delay)
		}
		e.log.Debug("attempt failed", logger.Fields(
			logger.FieldCallID, callID,
			logger.FieldProvider, p.Name(),
			logger.FieldOperation, operation,
			logger.FieldAttempt, attempt,
			logger.FieldDuration, duration.Milliseconds(),
			logger.FieldDelay, delay.Milliseconds(),
			logger.FieldError, err.Error(),
		))
		e.hooks.fail(HookContext{
			CallID:    callID,
			Provider:  p.Name(),
			Operation: operation,
			Attempt:   attempt,
			Duration:  duration,
			Delay:     delay,
		}, input, err)

		if attempt >= eff.MaxRetry {
			return result
		}

		// Zero-delay retries proceed immediately, without suspension.
		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return result
			case <-timer.C:
			}
		}

		prevDelay = delay
	}
}
