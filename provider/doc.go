// Package provider defines the provider shapes accepted by the failover
// engine and normalizes them into one uniform representation.
//
// Two declaration shapes exist:
//   - Single[I, O]: a legacy one-capability provider whose callable is
//     registered under the synthetic operation name DefaultOperation.
//   - Multi[I, O]: a provider declaring several named operations.
//
// Both are resolved once, at registration, into Normalized[I, O] — the
// engine never inspects provider types at call time. Declaration order is
// preserved by the Registry and is the priority order for execution.
//
// Providers may opt into per-attempt notifications by implementing
// BeforeAttempter and AfterAttempter. These hooks are best-effort: a panic
// inside one is swallowed and never reaches the caller.
package provider
