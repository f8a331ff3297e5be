package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.Database.Provider != "sqlite" {
		t.Errorf("Expected database provider to be 'sqlite', got '%s'", cfg.Database.Provider)
	}

	if cfg.Database.URLEnv != "DATABASE_URL" {
		t.Errorf("Expected database url_env to be 'DATABASE_URL', got '%s'", cfg.Database.URLEnv)
	}

	if cfg.OnExhausted != "abort" {
		t.Errorf("Expected on_exhausted to be 'abort', got '%s'", cfg.OnExhausted)
	}

	if cfg.RandomSeed != nil {
		t.Errorf("Expected no random seed by default, got %d", *cfg.RandomSeed)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate, got: %v", err)
	}
}

func TestCountForDefaultsToTen(t *testing.T) {
	cfg := Default()
	cfg.NumRecords["users"] = 25

	if got := cfg.CountFor("users"); got != 25 {
		t.Errorf("Expected 25 records for users, got %d", got)
	}

	if got := cfg.CountFor("unlisted"); got != DefaultRecords {
		t.Errorf("Expected default of %d records, got %d", DefaultRecords, got)
	}
}

func TestLoadJSONConfig(t *testing.T) {
	doc := `{
  "num_records": {"users": 100, "orders": 500},
  "random_seed": 42,
  "on_exhausted": "truncate"
}`
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.CountFor("users") != 100 {
		t.Errorf("Expected 100 records for users, got %d", cfg.CountFor("users"))
	}

	if cfg.RandomSeed == nil || *cfg.RandomSeed != 42 {
		t.Errorf("Expected random_seed 42, got %v", cfg.RandomSeed)
	}

	if cfg.OnExhausted != "truncate" {
		t.Errorf("Expected on_exhausted 'truncate', got '%s'", cfg.OnExhausted)
	}

	if cfg.Database.Provider != "sqlite" {
		t.Errorf("Expected defaulted provider 'sqlite', got '%s'", cfg.Database.Provider)
	}
}

func TestLoadEmptyPathGivesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") should succeed, got: %v", err)
	}
	if cfg.CountFor("anything") != DefaultRecords {
		t.Errorf("Expected default record count, got %d", cfg.CountFor("anything"))
	}
}

func TestValidateRejectsNegativeCounts(t *testing.T) {
	cfg := Default()
	cfg.NumRecords["users"] = -1

	if err := cfg.Validate(); err == nil {
		t.Error("Expected validation error for negative num_records")
	}
}

func TestValidateRejectsUnknownPolicy(t *testing.T) {
	cfg := Default()
	cfg.OnExhausted = "ignore"

	if err := cfg.Validate(); err == nil {
		t.Error("Expected validation error for unknown on_exhausted policy")
	}
}

func TestValidateRejectsUnknownProvider(t *testing.T) {
	cfg := Default()
	cfg.Database.Provider = "oracle"

	if err := cfg.Validate(); err == nil {
		t.Error("Expected validation error for unsupported provider")
	}
}

func TestDSNComesFromEnv(t *testing.T) {
	cfg := Default()
	cfg.Database.URLEnv = "FABRICA_TEST_DSN"
	t.Setenv("FABRICA_TEST_DSN", "postgres://localhost/test")

	if got := cfg.DSN(); got != "postgres://localhost/test" {
		t.Errorf("Expected DSN from environment, got '%s'", got)
	}
}
