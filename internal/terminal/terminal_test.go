package terminal

import "testing"

func TestSpawnConfigValidate(t *testing.T) {
	dir := t.TempDir()
	if err := (SpawnConfig{WorkDir: dir, Command: "echo hi"}).Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	if err := (SpawnConfig{WorkDir: "/nonexistent-xyz", Command: "echo hi"}).Validate(); err == nil {
		t.Fatal("expected WorkingDirectoryNotFound")
	}
	if err := (SpawnConfig{WorkDir: dir, Command: ""}).Validate(); err == nil {
		t.Fatal("expected InvalidCommand")
	}
}

func TestPTYBackendAlwaysAvailable(t *testing.T) {
	if !NewPTYBackend().IsAvailable() {
		t.Fatal("embedded pty backend must always report available")
	}
}

func TestRegistryDetectDefaultIncludesPTYFallback(t *testing.T) {
	r := NewRegistry()
	backend, err := r.DetectDefault()
	if err != nil {
		t.Fatalf("DetectDefault: %v", err)
	}
	if backend == nil {
		t.Fatal("expected a backend")
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Get("does-not-exist"); err == nil {
		t.Fatal("expected TerminalNotFound")
	}
}
