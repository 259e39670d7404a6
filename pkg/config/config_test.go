package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	os.Setenv("EIKON_APP_KEY", "test-app-key")
	defer os.Unsetenv("EIKON_APP_KEY")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Check defaults
	if cfg.Env != "development" {
		t.Errorf("Expected Env to be development, got %s", cfg.Env)
	}

	if cfg.Batch.HorizonMonths != 25 {
		t.Errorf("Expected HorizonMonths to be 25, got %d", cfg.Batch.HorizonMonths)
	}

	if cfg.Batch.WindowPadDays != 3 {
		t.Errorf("Expected WindowPadDays to be 3, got %d", cfg.Batch.WindowPadDays)
	}

	if cfg.Eikon.RequestTimeout != 30*time.Second {
		t.Errorf("Expected RequestTimeout to be 30s, got %s", cfg.Eikon.RequestTimeout)
	}

	if cfg.Batch.Workers != 1 {
		t.Errorf("Expected Workers to be 1, got %d", cfg.Batch.Workers)
	}
}

func TestLoadWithCustomValues(t *testing.T) {
	os.Setenv("EIKON_APP_KEY", "test-app-key")
	os.Setenv("ENV", "production")
	os.Setenv("HORIZON_MONTHS", "12")
	os.Setenv("WORKERS", "4")
	os.Setenv("MARKET_HOLIDAYS", "2025-12-25, 2025-12-26")
	os.Setenv("LOG_LEVEL", "warn")

	defer func() {
		os.Unsetenv("EIKON_APP_KEY")
		os.Unsetenv("ENV")
		os.Unsetenv("HORIZON_MONTHS")
		os.Unsetenv("WORKERS")
		os.Unsetenv("MARKET_HOLIDAYS")
		os.Unsetenv("LOG_LEVEL")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Env != "production" {
		t.Errorf("Expected Env to be production, got %s", cfg.Env)
	}

	if cfg.Batch.HorizonMonths != 12 {
		t.Errorf("Expected HorizonMonths to be 12, got %d", cfg.Batch.HorizonMonths)
	}

	if cfg.Batch.Workers != 4 {
		t.Errorf("Expected Workers to be 4, got %d", cfg.Batch.Workers)
	}

	if len(cfg.Calendar.Holidays) != 2 {
		t.Errorf("Expected 2 holidays, got %d", len(cfg.Calendar.Holidays))
	}

	if cfg.LogLevel != "warn" {
		t.Errorf("Expected LogLevel to be warn, got %s", cfg.LogLevel)
	}
}

func TestValidateMissingAppKey(t *testing.T) {
	os.Unsetenv("EIKON_APP_KEY")

	_, err := Load()
	if err == nil {
		t.Error("Expected error when EIKON_APP_KEY is missing, got nil")
	}
}

func TestValidateBadPad(t *testing.T) {
	os.Setenv("EIKON_APP_KEY", "test-app-key")
	os.Setenv("WINDOW_PAD_DAYS", "1")
	defer func() {
		os.Unsetenv("EIKON_APP_KEY")
		os.Unsetenv("WINDOW_PAD_DAYS")
	}()

	_, err := Load()
	if err == nil {
		t.Error("Expected error when WINDOW_PAD_DAYS is below 2, got nil")
	}
}

func TestValidateBadHoliday(t *testing.T) {
	os.Setenv("EIKON_APP_KEY", "test-app-key")
	os.Setenv("MARKET_HOLIDAYS", "25/12/2025")
	defer func() {
		os.Unsetenv("EIKON_APP_KEY")
		os.Unsetenv("MARKET_HOLIDAYS")
	}()

	_, err := Load()
	if err == nil {
		t.Error("Expected error for malformed MARKET_HOLIDAYS entry, got nil")
	}
}
