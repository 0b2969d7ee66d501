// Package config loads the application settings from config.toml, an
// optional .env file and THIKISHOP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/andpap18/thikishop-payroll/cost"
	"github.com/andpap18/thikishop-payroll/domain"
	"github.com/andpap18/thikishop-payroll/payroll"
	"github.com/andpap18/thikishop-payroll/processor"
	"github.com/andpap18/thikishop-payroll/timecode"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "THIKISHOP_"

// Config is the full application configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Payroll PayrollConfig `toml:"payroll"`
	Cost    CostConfig    `toml:"cost"`
	Schema  SchemaConfig  `toml:"schema"`
	Log     LogConfig     `toml:"log"`
}

// ServerConfig configures the upload service.
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
	// DownloadTTL is how long a rendered workbook stays downloadable, e.g. "15m".
	DownloadTTL string `toml:"download_ttl"`
	// MaxUploadMB bounds the multipart body held in memory.
	MaxUploadMB int64 `toml:"max_upload_mb"`
}

// PayrollConfig selects the hour policies.
type PayrollConfig struct {
	Threshold    string  `toml:"threshold"`
	FixedHours   float64 `toml:"fixed_hours"`
	HoursPerDay  float64 `toml:"hours_per_day"`
	CodePolicy   string  `toml:"code_policy"`
	DefaultMonth int     `toml:"default_month"`
}

// CostConfig configures the location attribution.
type CostConfig struct {
	Locations           []string          `toml:"locations"`
	SundayColorFallback bool              `toml:"sunday_color_fallback"`
	Colors              map[string]string `toml:"colors"`
	Sunday              []cost.Assignment `toml:"sunday"`
}

// SchemaConfig bounds the sheet scan.
type SchemaConfig struct {
	MaxRows int `toml:"max_rows"`
	Workers int `toml:"workers"`
}

// LogConfig configures slog.
type LogConfig struct {
	Level string `toml:"level"`
}

// Default is the configuration used when no file is present.
func Default() *Config {
	colors := make(map[string]string)
	for hex, loc := range cost.DefaultColors() {
		colors[hex] = string(loc)
	}

	locations := make([]string, len(domain.DefaultLocations))
	for i, loc := range domain.DefaultLocations {
		locations[i] = string(loc)
	}

	return &Config{
		Server: ServerConfig{
			Port:        8501,
			DownloadTTL: "15m",
			MaxUploadMB: 64,
		},
		Payroll: PayrollConfig{
			Threshold:   "fixed",
			FixedHours:  40,
			HoursPerDay: 8,
			CodePolicy:  timecode.StrictName,
		},
		Cost: CostConfig{
			Locations:           locations,
			SundayColorFallback: true,
			Colors:              colors,
		},
		Schema: SchemaConfig{
			MaxRows: domain.DefaultMaxRows,
			Workers: 1,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads envFile (when given) and the TOML file at path, then applies
// environment overrides. A missing file of either kind is not an error.
func Load(path, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := os.LookupEnv(EnvPrefix + key)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		*dst = n
		return nil
	}

	str("THRESHOLD", &c.Payroll.Threshold)
	str("CODE_POLICY", &c.Payroll.CodePolicy)
	str("LOG_LEVEL", &c.Log.Level)
	str("DOWNLOAD_TTL", &c.Server.DownloadTTL)

	if v, ok := os.LookupEnv(EnvPrefix + "DEV_MODE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sDEV_MODE: %w", EnvPrefix, err)
		}
		c.Server.DevMode = b
	}

	for key, dst := range map[string]*int{
		"PORT":     &c.Server.Port,
		"MONTH":    &c.Payroll.DefaultMonth,
		"WORKERS":  &c.Schema.Workers,
		"MAX_ROWS": &c.Schema.MaxRows,
	} {
		if err := num(key, dst); err != nil {
			return err
		}
	}

	return nil
}

// Validate checks the values the pipelines cannot recover from.
func (c *Config) Validate() error {
	if c.Payroll.DefaultMonth < 0 || c.Payroll.DefaultMonth > 12 {
		return fmt.Errorf("payroll.default_month %d out of range", c.Payroll.DefaultMonth)
	}
	if _, err := c.Threshold(); err != nil {
		return err
	}
	if _, ok := timecode.PolicyByName(c.Payroll.CodePolicy); !ok {
		return fmt.Errorf("unknown code policy %q", c.Payroll.CodePolicy)
	}
	if len(c.Cost.Locations) == 0 {
		return errors.New("cost.locations is empty")
	}
	if _, err := c.DownloadTTL(); err != nil {
		return err
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// Threshold builds the weekly threshold policy.
func (c *Config) Threshold() (payroll.Threshold, error) {
	return payroll.ThresholdByName(c.Payroll.Threshold, c.Payroll.FixedHours, c.Payroll.HoursPerDay)
}

// DownloadTTL parses server.download_ttl.
func (c *Config) DownloadTTL() (time.Duration, error) {
	d, err := time.ParseDuration(c.Server.DownloadTTL)
	if err != nil {
		return 0, fmt.Errorf("server.download_ttl: %w", err)
	}
	return d, nil
}

// Allocator builds the cost allocator from the cost section.
func (c *Config) Allocator() *cost.Allocator {
	a := cost.NewAllocator()

	a.Locations = make([]domain.Location, len(c.Cost.Locations))
	for i, loc := range c.Cost.Locations {
		a.Locations[i] = domain.Location(loc)
	}

	a.ColorFallback = c.Cost.SundayColorFallback
	if len(c.Cost.Colors) > 0 {
		a.Colors = make(map[string]domain.Location, len(c.Cost.Colors))
		for hex, loc := range c.Cost.Colors {
			a.Colors[strings.ToUpper(strings.TrimPrefix(hex, "#"))] = domain.Location(loc)
		}
	}
	a.Sunday = cost.NewAssignments(c.Cost.Sunday...)

	return a
}

// Options builds the processor options.
func (c *Config) Options(logger *slog.Logger) (processor.Options, error) {
	th, err := c.Threshold()
	if err != nil {
		return processor.Options{}, err
	}
	codes, ok := timecode.PolicyByName(c.Payroll.CodePolicy)
	if !ok {
		return processor.Options{}, fmt.Errorf("unknown code policy %q", c.Payroll.CodePolicy)
	}

	schema := domain.DefaultSchema()
	if c.Schema.MaxRows > 0 {
		schema.MaxRows = c.Schema.MaxRows
	}

	return processor.Options{
		Schema:    schema,
		Codes:     codes,
		Threshold: th,
		Allocator: c.Allocator(),
		Workers:   c.Schema.Workers,
		Logger:    logger,
	}, nil
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// Save writes cfg as TOML to path.
func Save(cfg *Config, path string) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
