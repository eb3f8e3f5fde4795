package logger

import "testing"

func TestSanitizeKVsRedactsSecrets(t *testing.T) {
	got := sanitizeKVs([]interface{}{"reference", "ref-1", "Signature", "abc", "token", "xyz", "dangling"})
	want := []interface{}{"reference", "ref-1", "Signature", "[REDACTED]", "token", "[REDACTED]", "dangling"}
	if len(got) != len(want) {
		t.Fatalf("length: want=%d got=%d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: want=%v got=%v", i, want[i], got[i])
		}
	}
}

func TestNewTestLogger(t *testing.T) {
	log, err := New("test")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.With("component", "test").Info("hello", "k", "v")
}
