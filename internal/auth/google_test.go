package auth

import (
	"testing"
	"time"
)

func TestStateStoreConsumeOnce(t *testing.T) {
	store := newStateStore()
	store.put("abc", time.Now().Add(time.Minute))

	if !store.consume("abc") {
		t.Fatal("first consume should succeed")
	}
	if store.consume("abc") {
		t.Fatal("second consume should fail")
	}
}

func TestStateStoreExpired(t *testing.T) {
	store := newStateStore()
	store.put("old", time.Now().Add(-time.Second))
	if store.consume("old") {
		t.Fatal("expired state should not validate")
	}
}

func TestAppendToken(t *testing.T) {
	got, err := appendToken("https://app.example.com/auth?next=%2Fdashboard", "tok123")
	if err != nil {
		t.Fatalf("appendToken: %v", err)
	}
	want := "https://app.example.com/auth?next=%2Fdashboard&token=tok123"
	if got != want {
		t.Errorf("url = %q, want %q", got, want)
	}

	if _, err := appendToken("", "tok"); err == nil {
		t.Error("empty redirect should error")
	}
}
