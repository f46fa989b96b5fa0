// Package engine orchestrates one logical operation across a prioritized
// set of interchangeable providers, handling retries, backoff, and
// fallback so callers need no branching logic of their own.
//
// Three execution strategies are offered:
//   - ExecuteSequential: try providers in priority order, first success wins.
//   - ExecuteAny: run all providers concurrently, settle on first success.
//   - ExecuteAll: run all providers concurrently, collect every outcome.
//
// Each (provider, operation) pair runs an attempt loop driven by the
// effective retry policy from the policy package and delays from the
// backoff package. A failure carrying a retry-after hint (explicit
// duration or a translated Retry-After header, see the errors package)
// overrides the computed delay for that retry.
//
//	eng, err := engine.New(engine.Config[Req, Resp]{
//	    Providers: []provider.Entry[Req, Resp]{
//	        {Provider: primary},
//	        {Provider: fallback, Policy: &policy.RetryPolicy{MaxRetry: util.Ptr(2)}},
//	    },
//	    Policies: policy.Config{
//	        PerOperation: map[string]policy.RetryPolicy{
//	            "upload": {MaxRetry: util.Ptr(3)},
//	        },
//	    },
//	})
//	resp, err := eng.ExecuteSequential(ctx, "upload", req)
//
// The engine holds no state between calls and never persists anything;
// it is an in-process, ephemeral coordinator over caller-supplied
// asynchronous operations.
package engine
