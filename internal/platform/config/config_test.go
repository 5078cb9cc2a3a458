package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"RNN_ADDR", "RNN_DB_PATH", "ARTICLE_API_BASE", "RNN_TICK_INTERVAL"} {
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Expected default addr :8080, got %q", cfg.Addr)
	}
	if cfg.DBPath != "newsroom.db" {
		t.Errorf("Expected default db path, got %q", cfg.DBPath)
	}
	if cfg.TickInterval != time.Second {
		t.Errorf("Expected default tick interval 1s, got %v", cfg.TickInterval)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("RNN_ADDR", ":9999")
	t.Setenv("RNN_TICK_INTERVAL", "250ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Addr != ":9999" {
		t.Errorf("Expected addr from env, got %q", cfg.Addr)
	}
	if cfg.TickInterval != 250*time.Millisecond {
		t.Errorf("Expected tick interval from env, got %v", cfg.TickInterval)
	}
}

func TestLoadTuningEmptyPathKeepsDefaults(t *testing.T) {
	tuning, err := LoadTuning("")
	if err != nil {
		t.Fatalf("LoadTuning failed: %v", err)
	}
	if tuning.StartingCash != 10000 || tuning.CostWriterHire != 50 {
		t.Errorf("Expected shipped defaults, got %+v", tuning)
	}
}

func TestLoadTuningPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	content := "startingCash: 500\ndecayMax: 0.25\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write tuning file: %v", err)
	}

	tuning, err := LoadTuning(path)
	if err != nil {
		t.Fatalf("LoadTuning failed: %v", err)
	}
	if tuning.StartingCash != 500 {
		t.Errorf("Expected starting cash override, got %f", tuning.StartingCash)
	}
	if tuning.DecayMax != 0.25 {
		t.Errorf("Expected decay override, got %f", tuning.DecayMax)
	}

	// Untouched keys keep their defaults.
	if tuning.CostArticlePublish != 5 || tuning.RevenuePerSubscriber != 2.0 {
		t.Errorf("Expected untouched keys at defaults, got %+v", tuning)
	}
}

func TestLoadTuningMissingFileFallsBack(t *testing.T) {
	tuning, err := LoadTuning(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Error("Expected an error for a missing tuning file")
	}
	if tuning.StartingCash != 10000 {
		t.Errorf("Expected defaults alongside the error, got %+v", tuning)
	}
}
