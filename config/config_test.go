package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/andpap18/thikishop-payroll/cost"
	"github.com/andpap18/thikishop-payroll/domain"
	"github.com/andpap18/thikishop-payroll/payroll"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Payroll.FixedHours != 40 || cfg.Payroll.Threshold != "fixed" {
		t.Errorf("payroll = %+v", cfg.Payroll)
	}
	if len(cfg.Cost.Locations) != 4 || cfg.Cost.Locations[0] != string(domain.Rentis) {
		t.Errorf("locations = %v", cfg.Cost.Locations)
	}
	if ttl, _ := cfg.DownloadTTL(); ttl != 15*time.Minute {
		t.Errorf("ttl = %v", ttl)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
[payroll]
threshold = "per-day"
hours_per_day = 6.5
code_policy = "paid-leave"
default_month = 11

[cost]
locations = ["ΡΕΝΤΗΣ", "ΑΙΓΑΛΕΩ"]
sunday_color_fallback = false

[[cost.sunday]]
employee = "ΜΑΡΙΑ (8ΩΡΟΣ)"
location = "ΑΙΓΑΛΕΩ"

[[cost.sunday]]
file = "3_ΝΟΕ.xlsx"
employee = "ΜΑΡΙΑ"
location = "ΡΕΝΤΗΣ"

[schema]
workers = 4

[log]
level = "debug"
`)

	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	opts, err := cfg.Options(slog.Default())
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	if opts.Threshold != payroll.PerDayThreshold(6.5) {
		t.Errorf("threshold = %v", opts.Threshold)
	}
	if opts.Codes.Name != "paid-leave" {
		t.Errorf("codes = %q", opts.Codes.Name)
	}
	if opts.Workers != 4 {
		t.Errorf("workers = %d", opts.Workers)
	}
	if opts.Allocator.ColorFallback || len(opts.Allocator.Locations) != 2 {
		t.Errorf("allocator = %+v", opts.Allocator)
	}

	if loc, _ := opts.Allocator.Sunday.Lookup("3_ΝΟΕ.xlsx", "ΜΑΡΙΑ"); loc != domain.Rentis {
		t.Errorf("file assignment = %q", loc)
	}
	if loc, _ := opts.Allocator.Sunday.Lookup("10_ΝΟΕ.xlsx", "ΜΑΡΙΑ"); loc != domain.Aigaleo {
		t.Errorf("employee assignment = %q", loc)
	}

	if level, _ := ParseLevel(cfg.Log.Level); level != slog.LevelDebug {
		t.Errorf("level = %v", level)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("THIKISHOP_PORT", "9000")
	t.Setenv("THIKISHOP_THRESHOLD", "per-day")
	t.Setenv("THIKISHOP_DEV_MODE", "true")
	t.Setenv("THIKISHOP_MONTH", "3")

	cfg, err := Load("", "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9000 || !cfg.Server.DevMode {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Payroll.Threshold != "per-day" || cfg.Payroll.DefaultMonth != 3 {
		t.Errorf("payroll = %+v", cfg.Payroll)
	}
}

func TestEnvFile(t *testing.T) {
	const key = "THIKISHOP_CODE_POLICY"
	t.Cleanup(func() { os.Unsetenv(key) })

	env := writeFile(t, ".env", key+"=paid-leave\n")
	cfg, err := Load("", env)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Payroll.CodePolicy != "paid-leave" {
		t.Errorf("code policy = %q", cfg.Payroll.CodePolicy)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad toml", "[payroll"},
		{"threshold", "[payroll]\nthreshold = \"weekly\""},
		{"code policy", "[payroll]\ncode_policy = \"lenient\""},
		{"month", "[payroll]\ndefault_month = 13"},
		{"no locations", "[cost]\nlocations = []"},
		{"ttl", "[server]\ndownload_ttl = \"soon\""},
		{"level", "[log]\nlevel = \"loud\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeFile(t, "config.toml", tt.content), ""); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestEnvRejectsBadNumber(t *testing.T) {
	t.Setenv("THIKISHOP_WORKERS", "many")
	if _, err := Load("", ""); err == nil {
		t.Error("expected error")
	}
}

func TestSaveThenLoad(t *testing.T) {
	cfg := Default()
	cfg.Payroll.DefaultMonth = 11
	cfg.Cost.Sunday = []cost.Assignment{{Employee: "ΝΙΚΟΣ", Location: domain.Peristeri}}

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Payroll.DefaultMonth != 11 || len(got.Cost.Sunday) != 1 || got.Cost.Sunday[0].Location != domain.Peristeri {
		t.Errorf("loaded = %+v", got)
	}
}
