package engine

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ekarabulut/failover/logger"
	"github.com/ekarabulut/failover/provider"
)

// Strategy names used in logs, metrics, and spans.
const (
	strategySequential = "sequential"
	strategyAny        = "any"
	strategyAll        = "all"
)

// ExecuteSequential tries eligible providers one at a time in declared
// priority order. A provider's attempt loop runs to a terminal state
// before the next provider starts; the first success short-circuits.
// When every provider is exhausted the call returns an *AggregateError
// holding all attempt records in provider-then-attempt order.
func (e *Engine[I, O]) ExecuteSequential(ctx context.Context, operation string, input I, opts ...CallOption) (O, error) {
	callID := uuid.NewString()
	start := time.Now()

	eligible := e.eligible(operation, applyOptions(opts))
	if len(eligible) == 0 {
		return e.failEmpty(ctx, callID, strategySequential, operation, input, start)
	}

	var all []AttemptRecord
	for i, p := range eligible {
		res := e.runLoop(ctx, callID, p, operation, input)
		if res.ok {
			e.finishCall(ctx, callID, strategySequential, operation, "ok", start)
			return res.value, nil
		}

		all = append(all, res.attempts...)
		if i < len(eligible)-1 {
			if e.metrics != nil {
				e.metrics.RecordFailover(ctx, p.Name(), operation)
			}
			e.log.Info("provider exhausted, failing over", logger.Fields(
				logger.FieldCallID, callID,
				logger.FieldProvider, p.Name(),
				logger.FieldOperation, operation,
			))
		}
	}

	return e.failAggregate(ctx, callID, strategySequential, operation, input, all, start)
}

// ExecuteAny starts every eligible provider's attempt loop concurrently
// and settles on the first success. Losing loops are abandoned, not
// cancelled: they run to their own terminal state and their hooks still
// fire, but their results are discarded. If every loop is exhausted the
// call settles as an *AggregateError and the all-failed hook fires
// exactly once.
func (e *Engine[I, O]) ExecuteAny(ctx context.Context, operation string, input I, opts ...CallOption) (O, error) {
	callID := uuid.NewString()
	start := time.Now()

	eligible := e.eligible(operation, applyOptions(opts))
	if len(eligible) == 0 {
		return e.failEmpty(ctx, callID, strategyAny, operation, input, start)
	}

	type indexed struct {
		idx int
		res loopResult[O]
	}

	// Buffered so abandoned loops never block on send.
	results := make(chan indexed, len(eligible))
	for i, p := range eligible {
		go func(idx int, p *provider.Normalized[I, O]) {
			results <- indexed{idx: idx, res: e.runLoop(ctx, callID, p, operation, input)}
		}(i, p)
	}

	// The receiver is the single owner of settlement: only this loop
	// decides success or aggregate failure, so no settled flag races.
	exhausted := make([]loopResult[O], len(eligible))
	for done := 0; done < len(eligible); done++ {
		r := <-results
		if r.res.ok {
			e.finishCall(ctx, callID, strategyAny, operation, "ok", start)
			return r.res.value, nil
		}
		exhausted[r.idx] = r.res
	}

	var all []AttemptRecord
	for _, res := range exhausted {
		all = append(all, res.attempts...)
	}
	return e.failAggregate(ctx, callID, strategyAny, operation, input, all, start)
}

// ExecuteAll starts every eligible provider's attempt loop concurrently
// and waits for all of them to reach a terminal state. Each provider
// yields one Result entry; the call as a whole fails only when no
// provider is eligible. The call blocks until every loop terminates, so
// callers needing bounded latency should wrap ctx with a timeout.
func (e *Engine[I, O]) ExecuteAll(ctx context.Context, operation string, input I, opts ...CallOption) ([]Result[O], error) {
	callID := uuid.NewString()
	start := time.Now()

	eligible := e.eligible(operation, applyOptions(opts))
	if len(eligible) == 0 {
		_, err := e.failEmpty(ctx, callID, strategyAll, operation, input, start)
		return nil, err
	}

	out := make([]Result[O], len(eligible))
	var wg sync.WaitGroup
	for i, p := range eligible {
		wg.Add(1)
		go func(idx int, p *provider.Normalized[I, O]) {
			defer wg.Done()
			res := e.runLoop(ctx, callID, p, operation, input)
			out[idx] = Result[O]{
				Provider: p.Name(),
				OK:       res.ok,
				Value:    res.value,
				Err:      res.lastErr(),
				Attempts: res.attempts,
			}
		}(i, p)
	}
	wg.Wait()

	e.finishCall(ctx, callID, strategyAll, operation, "ok", start)
	return out, nil
}

// failEmpty reports the capability-mismatch case: the name filter and
// operation support intersect to nothing, so the call fails immediately
// with an aggregate failure carrying zero attempts.
func (e *Engine[I, O]) failEmpty(ctx context.Context, callID, strategy, operation string, input I, start time.Time) (O, error) {
	e.log.Warn("no eligible providers", logger.Fields(
		logger.FieldCallID, callID,
		logger.FieldOperation, operation,
		logger.FieldStrategy, strategy,
	))
	return e.failAggregate(ctx, callID, strategy, operation, input, nil, start)
}

// failAggregate settles a call as an aggregate failure and fires the
// all-failed hook exactly once.
func (e *Engine[I, O]) failAggregate(ctx context.Context, callID, strategy, operation string, input I, attempts []AttemptRecord, start time.Time) (O, error) {
	e.hooks.allFailed(HookContext{
		CallID:    callID,
		Operation: operation,
	}, input, attempts)
	e.finishCall(ctx, callID, strategy, operation, "error", start)

	var zero O
	return zero, &AggregateError{Operation: operation, Attempts: attempts}
}

// finishCall records call-level telemetry.
func (e *Engine[I, O]) finishCall(ctx context.Context, callID, strategy, operation, status string, start time.Time) {
	duration := time.Since(start)
	if e.metrics != nil {
		e.metrics.RecordCall(ctx, operation, strategy, status, duration)
	}
	e.log.Debug("call settled", logger.Fields(
		logger.FieldCallID, callID,
		logger.FieldOperation, operation,
		logger.FieldStrategy, strategy,
		"status", status,
		logger.FieldDuration, duration.Milliseconds(),
	))
}
