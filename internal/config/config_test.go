package config

import (
	"os"
	"testing"
	"time"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, "PORT", "FRAME_RATE", "SESSION_TTL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.FrameRate != 60 {
		t.Errorf("FrameRate = %d, want %d", cfg.FrameRate, 60)
	}
	if cfg.SessionTTL != time.Hour {
		t.Errorf("SessionTTL = %v, want %v", cfg.SessionTTL, time.Hour)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("FRAME_RATE", "30")
	t.Setenv("SESSION_TTL", "10m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != "3000" {
		t.Errorf("Port = %q, want %q", cfg.Port, "3000")
	}
	if cfg.FrameRate != 30 {
		t.Errorf("FrameRate = %d, want %d", cfg.FrameRate, 30)
	}
	if cfg.SessionTTL != 10*time.Minute {
		t.Errorf("SessionTTL = %v, want %v", cfg.SessionTTL, 10*time.Minute)
	}
}

func TestLoad_InvalidFrameRate(t *testing.T) {
	t.Setenv("FRAME_RATE", "abc")

	if _, err := Load(); err == nil {
		t.Error("Load() with FRAME_RATE=abc: want error")
	}
}

func TestLoad_NonPositiveFrameRate(t *testing.T) {
	t.Setenv("FRAME_RATE", "0")

	if _, err := Load(); err == nil {
		t.Error("Load() with FRAME_RATE=0: want error")
	}
}

func TestConfig_FrameInterval(t *testing.T) {
	cfg := Config{FrameRate: 50}
	if got := cfg.FrameInterval(); got != 20*time.Millisecond {
		t.Errorf("FrameInterval = %v, want %v", got, 20*time.Millisecond)
	}
}

func TestConfig_FrameInterval_Unset(t *testing.T) {
	if got := (Config{}).FrameInterval(); got != 0 {
		t.Errorf("FrameInterval = %v, want 0", got)
	}
}
