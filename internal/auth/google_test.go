package auth

import (
	"testing"
	"time"
)

func TestStateStoreConsumeOnce(t *testing.T) {
	s := newStateStore()
	s.put("abc", time.Now().Add(time.Minute))

	if !s.consume("abc") {
		t.Fatal("expected first consume to succeed")
	}
	if s.consume("abc") {
		t.Fatal("expected second consume to fail")
	}
}

func TestStateStoreExpired(t *testing.T) {
	s := newStateStore()
	s.put("old", time.Now().Add(-time.Second))

	if s.consume("old") {
		t.Fatal("expected expired state to fail")
	}
}

func TestAppendToken(t *testing.T) {
	got, err := appendToken("http://localhost:3000/login?next=%2Fdocs", "tok123")
	if err != nil {
		t.Fatalf("appendToken: %v", err)
	}
	want := "http://localhost:3000/login?next=%2Fdocs&token=tok123"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestAppendTokenEmptyURL(t *testing.T) {
	if _, err := appendToken("", "tok"); err == nil {
		t.Fatal("expected error for empty redirect url")
	}
}
