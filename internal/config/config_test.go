package config

import (
	"os"
	"path/filepath"
	"testing"
)

// chdir moves into a fresh directory so no stray .env is picked up.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate: %v", err)
	}
	if cfg.ListenAddr() != "127.0.0.1:37780" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr())
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }},
		{"port too big", func(c *Config) { c.Server.Port = 70000 }},
		{"unknown policy", func(c *Config) { c.Report.WindowPolicy = "fortnight" }},
		{"negative age delta", func(c *Config) { c.Report.PeerAgeDelta = -1 }},
		{"empty pool", func(c *Config) { c.Report.PeerPoolLimit = 0 }},
		{"bad level", func(c *Config) { c.Log.Level = "trace" }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	chdir(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	dir := chdir(t)
	path := filepath.Join(dir, "growthlog.yaml")
	data := "server:\n  port: 9000\nreport:\n  window_policy: rolling\n  peer_age_delta: 3\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Report.WindowPolicy != "rolling" {
		t.Errorf("WindowPolicy = %q, want rolling", cfg.Report.WindowPolicy)
	}
	if cfg.Report.PeerAgeDelta != 3 {
		t.Errorf("PeerAgeDelta = %d, want 3", cfg.Report.PeerAgeDelta)
	}
	// untouched keys keep defaults
	if cfg.Report.PeerPoolLimit != 10 {
		t.Errorf("PeerPoolLimit = %d, want 10", cfg.Report.PeerPoolLimit)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdir(t)
	path := filepath.Join(dir, "growthlog.toml")
	if err := os.WriteFile(path, []byte("[server]\nport = 9000\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GROWTHLOG_SERVER_PORT", "9100")
	t.Setenv("GROWTHLOG_LOG_FORMAT", "json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("Port = %d, want 9100", cfg.Server.Port)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Log.Format)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := chdir(t)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("GROWTHLOG_REPORT_PEER_POOL_LIMIT=25\n"), 0644); err != nil {
		t.Fatal(err)
	}
	// godotenv sets the variable for the process; clear it afterwards
	t.Cleanup(func() { os.Unsetenv("GROWTHLOG_REPORT_PEER_POOL_LIMIT") })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Report.PeerPoolLimit != 25 {
		t.Errorf("PeerPoolLimit = %d, want 25", cfg.Report.PeerPoolLimit)
	}
}

func TestLoadInvalid(t *testing.T) {
	chdir(t)
	t.Setenv("GROWTHLOG_REPORT_WINDOW_POLICY", "yearly")

	if _, err := Load(""); err == nil {
		t.Error("expected validation error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	chdir(t)

	if _, err := Load("/nonexistent/growthlog.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}
