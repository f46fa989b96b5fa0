package util

import "testing"

func TestPtr(t *testing.T) {
	p := Ptr(42)
	if p == nil || *p != 42 {
		t.Errorf("expected pointer to 42, got %v", p)
	}
}

func TestDeref(t *testing.T) {
	if got := Deref(Ptr("hello")); got != "hello" {
		t.Errorf("expected hello, got %s", got)
	}
	var p *int
	if got := Deref(p); got != 0 {
		t.Errorf("expected zero value, got %d", got)
	}
}

func TestDerefOr(t *testing.T) {
	if got := DerefOr(Ptr(7), 1); got != 7 {
		t.Errorf("expected 7, got %d", got)
	}
	var p *int
	if got := DerefOr(p, 9); got != 9 {
		t.Errorf("expected fallback 9, got %d", got)
	}
}
