package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadServerReturnsDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := LoadServer(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadServer: %v", err)
	}
	if cfg != DefaultServer() {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadServerOverridesOnlyGivenFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, []byte("port: 4242\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadServer(path)
	if err != nil {
		t.Fatalf("LoadServer: %v", err)
	}
	if cfg.Port != 4242 {
		t.Fatalf("Port = %d, want 4242", cfg.Port)
	}
	if cfg.TickHz != DefaultServer().TickHz {
		t.Fatalf("TickHz = %d, want default %d unchanged", cfg.TickHz, DefaultServer().TickHz)
	}
}

func TestLoadClientReturnsDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := LoadClient(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadClient: %v", err)
	}
	if cfg != DefaultClient() {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}
