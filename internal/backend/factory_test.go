package backend

import "testing"

func TestTypeIsValid(t *testing.T) {
	tests := []struct {
		typ  Type
		want bool
	}{
		{MemoryBackend, true},
		{SQLiteBackend, true},
		{Type("sheets"), false},
		{Type(""), false},
	}
	for _, tt := range tests {
		if got := tt.typ.IsValid(); got != tt.want {
			t.Errorf("IsValid(%q) = %v, want %v", tt.typ, got, tt.want)
		}
	}
}

func TestNewMemoryBackend(t *testing.T) {
	result, err := New(Config{Type: MemoryBackend}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.LedgerStore == nil || result.BudgetStore == nil {
		t.Fatal("expected both stores to be set")
	}
	if result.Repository != nil {
		t.Fatal("memory backend must not expose a repository")
	}
	if err := result.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestNewRejectsInvalidType(t *testing.T) {
	if _, err := New(Config{Type: "sheets"}, nil); err == nil {
		t.Fatal("expected error for invalid backend type")
	}
}
