package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Reconciliation.Mode != "strict" {
		t.Errorf("Mode = %q, want strict", cfg.Reconciliation.Mode)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "server:\n  addr: \":9090\"\nreconciliation:\n  mode: relaxed\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.Reconciliation.Mode != "relaxed" {
		t.Errorf("Mode = %q, want relaxed", cfg.Reconciliation.Mode)
	}
}

func TestLoad_DatabaseURLFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env-host/insight")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Database.URL != "postgres://env-host/insight" {
		t.Errorf("URL = %q, want the env fallback", cfg.Database.URL)
	}

	// An explicit YAML url wins over the environment.
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "database:\n  url: postgres://file-host/insight\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Database.URL != "postgres://file-host/insight" {
		t.Errorf("URL = %q, want the file value", cfg.Database.URL)
	}
}

func TestLoadRates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.hjson")
	content := `{
  # USD-relative rates
  USD: 1.0
  EUR: 1.08
}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	rates, err := LoadRates(path)
	if err != nil {
		t.Fatal(err)
	}
	if rates["EUR"] != 1.08 || rates["USD"] != 1.0 {
		t.Errorf("unexpected rates: %v", rates)
	}
}

func TestLoadRates_Missing(t *testing.T) {
	rates, err := LoadRates(filepath.Join(t.TempDir(), "absent.hjson"))
	if err != nil || rates != nil {
		t.Errorf("missing rates file: rates=%v err=%v", rates, err)
	}
}

func TestLoadRates_RejectsNonPositive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.hjson")
	if err := os.WriteFile(path, []byte("{EUR: -1}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRates(path); err == nil {
		t.Error("expected error for negative rate")
	}
}
