package cache

import (
	"fmt"
	"testing"

	"github.com/suykerbuyk/voice-vault/internal/summary"
)

func TestKeyDistinguishesEngineAndText(t *testing.T) {
	a := Key("ollama/llama3.2", "some transcript")
	b := Key("openai/gpt-4o", "some transcript")
	c := Key("ollama/llama3.2", "other transcript")

	if a == b {
		t.Error("same text on different engines must not collide")
	}
	if a == c {
		t.Error("different text on same engine must not collide")
	}
	if a != Key("ollama/llama3.2", "some transcript") {
		t.Error("key must be deterministic")
	}
}

func TestStoreRoundTrip(t *testing.T) {
	s, err := New(4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	key := Key("mock", "hello")
	if _, ok := s.Get(key); ok {
		t.Fatal("unexpected hit on empty cache")
	}

	want := &summary.Result{Summary: "hi", ContentType: summary.General}
	s.Add(key, want)

	got, ok := s.Get(key)
	if !ok {
		t.Fatal("expected hit after Add")
	}
	if got.Summary != "hi" {
		t.Errorf("Summary = %q", got.Summary)
	}
}

func TestStoreEvictsLRU(t *testing.T) {
	s, err := New(2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i := 0; i < 3; i++ {
		s.Add(Key("mock", fmt.Sprintf("t%d", i)), &summary.Result{})
	}

	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
	if _, ok := s.Get(Key("mock", "t0")); ok {
		t.Error("oldest entry should have been evicted")
	}
	if _, ok := s.Get(Key("mock", "t2")); !ok {
		t.Error("newest entry should remain")
	}
}

func TestNewDefaultsSize(t *testing.T) {
	s, err := New(0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s == nil {
		t.Fatal("nil store")
	}
}
