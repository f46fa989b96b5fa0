package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/ekarabulut/failover/policy"
	"github.com/ekarabulut/failover/util"
)

type singleProvider struct {
	name  string
	calls int
	err   error
}

func (p *singleProvider) Name() string { return p.name }

func (p *singleProvider) Execute(ctx context.Context, input string) (string, error) {
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	return p.name + ":" + input, nil
}

type multiProvider struct {
	name string
	ops  map[string]Operation[string, string]
}

func (p *multiProvider) Name() string                              { return p.name }
func (p *multiProvider) Operations() map[string]Operation[string, string] { return p.ops }

type plainProvider struct{ name string }

func (p *plainProvider) Name() string { return p.name }

func echoOp(prefix string) Operation[string, string] {
	return func(ctx context.Context, input string) (string, error) {
		return prefix + ":" + input, nil
	}
}

func TestNormalize_Single(t *testing.T) {
	entries := []Entry[string, string]{
		{Provider: &singleProvider{name: "legacy"}},
	}
	normalized, err := Normalize(entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	n := normalized[0]
	if n.IsMulti() {
		t.Error("expected single provider")
	}
	if !n.Supports(DefaultOperation) {
		t.Error("expected support for the synthetic operation")
	}
	if n.Supports("upload") {
		t.Error("single provider must support only the synthetic operation")
	}

	out, err := n.Invoke(context.Background(), DefaultOperation, "in")
	if err != nil || out != "legacy:in" {
		t.Errorf("unexpected result: %q, %v", out, err)
	}
}

func TestNormalize_Multi(t *testing.T) {
	entries := []Entry[string, string]{
		{Provider: &multiProvider{name: "m", ops: map[string]Operation[string, string]{
			"upload":       echoOp("up"),
			"send-message": echoOp("send"),
		}}},
	}
	normalized, err := Normalize(entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	n := normalized[0]
	if !n.IsMulti() {
		t.Error("expected multi provider")
	}
	if !n.Supports("upload") || !n.Supports("send-message") {
		t.Error("expected declared operations to be supported")
	}
	if n.Supports(DefaultOperation) {
		t.Error("multi provider must not gain the synthetic operation")
	}
}

func TestNormalize_Rejects(t *testing.T) {
	cases := []struct {
		name    string
		entries []Entry[string, string]
	}{
		{"nil provider", []Entry[string, string]{{Provider: nil}}},
		{"wrong shape", []Entry[string, string]{{Provider: &plainProvider{name: "p"}}}},
		{"empty name", []Entry[string, string]{{Provider: &singleProvider{name: ""}}}},
		{"no operations", []Entry[string, string]{{Provider: &multiProvider{name: "m", ops: map[string]Operation[string, string]{}}}}},
		{"nil callable", []Entry[string, string]{{Provider: &multiProvider{name: "m", ops: map[string]Operation[string, string]{"op": nil}}}}},
	}
	for _, tc := range cases {
		if _, err := Normalize(tc.entries); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestNormalize_InlinePolicy(t *testing.T) {
	entries := []Entry[string, string]{
		{
			Provider: &singleProvider{name: "p"},
			Policy:   &policy.RetryPolicy{MaxRetry: util.Ptr(3)},
		},
	}
	normalized, err := Normalize(entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p := normalized[0].Policy(); p == nil || *p.MaxRetry != 3 {
		t.Error("expected inline policy to survive normalization")
	}
}

func TestRegistry_Order(t *testing.T) {
	reg, err := NewRegistry([]Entry[string, string]{
		{Provider: &singleProvider{name: "a"}},
		{Provider: &singleProvider{name: "b"}},
		{Provider: &singleProvider{name: "c"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := reg.Providers()
	want := []string{"a", "b", "c"}
	for i, name := range want {
		if got[i].Name() != name {
			t.Errorf("position %d: expected %s, got %s", i, name, got[i].Name())
		}
	}
}

func TestRegistry_DuplicateLastWins(t *testing.T) {
	first := &singleProvider{name: "dup"}
	second := &multiProvider{name: "dup", ops: map[string]Operation[string, string]{"upload": echoOp("v2")}}

	reg, err := NewRegistry([]Entry[string, string]{
		{Provider: first},
		{Provider: &singleProvider{name: "other"}},
		{Provider: second},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reg.Len() != 2 {
		t.Fatalf("expected 2 providers, got %d", reg.Len())
	}

	n, ok := reg.Get("dup")
	if !ok || !n.IsMulti() {
		t.Error("expected the later registration to win")
	}
	// The survivor keeps its later position.
	if reg.Providers()[1].Name() != "dup" {
		t.Error("expected dup at the later position")
	}
}

func TestRegistry_Eligible(t *testing.T) {
	reg, err := NewRegistry([]Entry[string, string]{
		{Provider: &multiProvider{name: "a", ops: map[string]Operation[string, string]{"upload": echoOp("a")}}},
		{Provider: &multiProvider{name: "b", ops: map[string]Operation[string, string]{"send": echoOp("b")}}},
		{Provider: &multiProvider{name: "c", ops: map[string]Operation[string, string]{"upload": echoOp("c")}}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	eligible := reg.Eligible("upload", nil)
	if len(eligible) != 2 || eligible[0].Name() != "a" || eligible[1].Name() != "c" {
		t.Errorf("unexpected eligible set: %v", names(eligible))
	}

	eligible = reg.Eligible("upload", []string{"c"})
	if len(eligible) != 1 || eligible[0].Name() != "c" {
		t.Errorf("unexpected filtered set: %v", names(eligible))
	}

	// Filter selecting a provider that lacks the operation yields nothing.
	if got := reg.Eligible("upload", []string{"b"}); len(got) != 0 {
		t.Errorf("expected empty set, got %v", names(got))
	}

	// Empty (non-nil) filter excludes everything.
	if got := reg.Eligible("upload", []string{}); len(got) != 0 {
		t.Errorf("expected empty set for empty filter, got %v", names(got))
	}
}

func TestInvoke_UnknownOperation(t *testing.T) {
	normalized, _ := Normalize([]Entry[string, string]{
		{Provider: &singleProvider{name: "p"}},
	})
	if _, err := normalized[0].Invoke(context.Background(), "missing", "in"); err == nil {
		t.Error("expected error for unknown operation")
	}
}

type hookedProvider struct {
	singleProvider
	before int
	after  int
	panics bool
}

func (p *hookedProvider) BeforeAttempt(ctx context.Context, operation string) {
	p.before++
	if p.panics {
		panic("before hook exploded")
	}
}

func (p *hookedProvider) AfterAttempt(ctx context.Context, operation string, err error) {
	p.after++
	if p.panics {
		panic("after hook exploded")
	}
}

func TestInvoke_ProviderHooks(t *testing.T) {
	p := &hookedProvider{singleProvider: singleProvider{name: "h"}}
	normalized, _ := Normalize([]Entry[string, string]{{Provider: p}})

	out, err := normalized[0].Invoke(context.Background(), DefaultOperation, "x")
	if err != nil || out != "h:x" {
		t.Fatalf("unexpected result: %q, %v", out, err)
	}
	if p.before != 1 || p.after != 1 {
		t.Errorf("expected hooks once each, got before=%d after=%d", p.before, p.after)
	}
}

func TestInvoke_ProviderHookPanicSwallowed(t *testing.T) {
	p := &hookedProvider{singleProvider: singleProvider{name: "h", err: errors.New("boom")}, panics: true}
	normalized, _ := Normalize([]Entry[string, string]{{Provider: p}})

	_, err := normalized[0].Invoke(context.Background(), DefaultOperation, "x")
	if err == nil || err.Error() != "boom" {
		t.Errorf("expected provider error to pass through hook panics, got %v", err)
	}
	if p.before != 1 || p.after != 1 {
		t.Errorf("expected both hooks attempted, got before=%d after=%d", p.before, p.after)
	}
}

func names[I, O any](ps []*Normalized[I, O]) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name()
	}
	return out
}
