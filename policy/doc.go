// Package policy defines retry policies and the layered resolution rule
// that produces the effective policy for one (operation, provider) pair.
//
// Policies are merged field by field, highest precedence first:
//
//	perProvider > perOperation > provider inline > default > hardcoded
//
// A layer that omits a field falls through to the next layer for that field
// only. Resolution is pure and has no failure modes.
package policy
