// Package config provides Viper-based configuration loading for the crawl engine.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/crawl/internal/game/combat"
	"github.com/cory-johannsen/crawl/internal/game/dungeon"
	"github.com/cory-johannsen/crawl/internal/game/explore"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Stderr writes log lines to standard error.
	Stderr bool `mapstructure:"stderr"`
	// File enables a rotating log file alongside stderr.
	File LogFileConfig `mapstructure:"file"`
}

// LogFileConfig configures the rotating log file. An empty Path disables it.
type LogFileConfig struct {
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// DungeonConfig tunes floor generation and exploration.
type DungeonConfig struct {
	// Seed makes runs reproducible; 0 draws a fresh seed per session.
	Seed             int64   `mapstructure:"seed"`
	StartLevel       int     `mapstructure:"start_level"`
	MaxLevel         int     `mapstructure:"max_level"`
	MinRooms         int     `mapstructure:"min_rooms"`
	MaxRooms         int     `mapstructure:"max_rooms"`
	MonsterRate      float64 `mapstructure:"monster_rate"`
	TreasureRate     float64 `mapstructure:"treasure_rate"`
	TrapRate         float64 `mapstructure:"trap_rate"`
	EventRate        float64 `mapstructure:"event_rate"`
	FeatureRate      float64 `mapstructure:"feature_rate"`
	ExtraEdgeRatio   float64 `mapstructure:"extra_edge_ratio"`
	BossInterval     int     `mapstructure:"boss_interval"`
	RestHealFraction float64 `mapstructure:"rest_heal_fraction"`
	DraughtFraction  float64 `mapstructure:"healing_draught_fraction"`
	MaxCombatRounds  int     `mapstructure:"max_combat_rounds"`
}

// Params returns the floor generator parameters.
func (d DungeonConfig) Params() dungeon.Params {
	return dungeon.Params{
		MinRooms:       d.MinRooms,
		MaxRooms:       d.MaxRooms,
		MonsterRate:    d.MonsterRate,
		TreasureRate:   d.TreasureRate,
		TrapRate:       d.TrapRate,
		EventRate:      d.EventRate,
		FeatureRate:    d.FeatureRate,
		ExtraEdgeRatio: d.ExtraEdgeRatio,
		BossInterval:   d.BossInterval,
		MaxLevel:       d.MaxLevel,
	}
}

// Session returns the exploration session tuning.
func (d DungeonConfig) Session() explore.Config {
	return explore.Config{
		StartLevel:             d.StartLevel,
		MaxLevel:               d.MaxLevel,
		RestHealFraction:       d.RestHealFraction,
		HealingDraughtFraction: d.DraughtFraction,
	}
}

// ContentConfig locates data files loaded at startup. An empty directory is
// skipped.
type ContentConfig struct {
	NPCsDir       string `mapstructure:"npcs_dir"`
	ConditionsDir string `mapstructure:"conditions_dir"`
	ScriptsDir    string `mapstructure:"scripts_dir"`
	// ScriptInstructionLimit bounds each Lua hook call.
	ScriptInstructionLimit int `mapstructure:"script_instruction_limit"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	// Enabled turns on persistence of story flags and seals.
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// TelnetConfig holds Telnet acceptor settings.
type TelnetConfig struct {
	// Host is the bind address for the Telnet listener.
	Host string `mapstructure:"host"`
	// Port is the TCP port for the Telnet listener.
	Port int `mapstructure:"port"`
	// ReadTimeout is the per-read timeout for Telnet connections.
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	// WriteTimeout is the per-write timeout for Telnet connections.
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// MaxSessions caps concurrent connections; 0 means unlimited.
	MaxSessions int `mapstructure:"max_sessions"`
}

// Addr returns the "host:port" listen address.
//
// Postcondition: Returns a non-empty string in "host:port" format.
func (t TelnetConfig) Addr() string {
	return fmt.Sprintf("%s:%d", t.Host, t.Port)
}

// Config is the top-level application configuration.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Dungeon  DungeonConfig  `mapstructure:"dungeon"`
	Content  ContentConfig  `mapstructure:"content"`
	Telnet   TelnetConfig   `mapstructure:"telnet"`
	Database DatabaseConfig `mapstructure:"database"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	errs = append(errs, validateLogging(c.Logging)...)
	errs = append(errs, validateDungeon(c.Dungeon)...)
	errs = append(errs, validateContent(c.Content)...)
	errs = append(errs, validateTelnet(c.Telnet)...)
	if c.Database.Enabled {
		errs = append(errs, validateDatabase(c.Database)...)
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) []string {
	var errs []string
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		errs = append(errs, fmt.Sprintf("logging.level must be one of [debug, info, warn, error], got %q", l.Level))
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		errs = append(errs, fmt.Sprintf("logging.format must be one of [json, console], got %q", l.Format))
	}
	if l.File.Path != "" && l.File.MaxSizeMB < 1 {
		errs = append(errs, fmt.Sprintf("logging.file.max_size_mb must be >= 1, got %d", l.File.MaxSizeMB))
	}
	if l.File.MaxBackups < 0 || l.File.MaxAgeDays < 0 {
		errs = append(errs, "logging.file retention must not be negative")
	}
	return errs
}

func validateDungeon(d DungeonConfig) []string {
	var errs []string
	if d.MaxLevel < 1 {
		errs = append(errs, fmt.Sprintf("dungeon.max_level must be >= 1, got %d", d.MaxLevel))
	}
	if d.StartLevel < 1 || d.StartLevel > d.MaxLevel {
		errs = append(errs, fmt.Sprintf("dungeon.start_level must be 1-%d, got %d", d.MaxLevel, d.StartLevel))
	}
	if d.MinRooms < 2 {
		errs = append(errs, fmt.Sprintf("dungeon.min_rooms must be >= 2, got %d", d.MinRooms))
	}
	if d.MaxRooms < d.MinRooms {
		errs = append(errs, "dungeon.max_rooms must not be less than dungeon.min_rooms")
	}
	rates := []struct {
		name string
		v    float64
	}{
		{"monster_rate", d.MonsterRate},
		{"treasure_rate", d.TreasureRate},
		{"trap_rate", d.TrapRate},
		{"event_rate", d.EventRate},
		{"feature_rate", d.FeatureRate},
		{"extra_edge_ratio", d.ExtraEdgeRatio},
		{"rest_heal_fraction", d.RestHealFraction},
		{"healing_draught_fraction", d.DraughtFraction},
	}
	for _, r := range rates {
		if r.v < 0 || r.v > 1 {
			errs = append(errs, fmt.Sprintf("dungeon.%s must be within [0, 1], got %g", r.name, r.v))
		}
	}
	if d.BossInterval < 1 {
		errs = append(errs, fmt.Sprintf("dungeon.boss_interval must be >= 1, got %d", d.BossInterval))
	}
	if d.MaxCombatRounds < 1 {
		errs = append(errs, fmt.Sprintf("dungeon.max_combat_rounds must be >= 1, got %d", d.MaxCombatRounds))
	}
	return errs
}

func validateContent(c ContentConfig) []string {
	if c.ScriptsDir != "" && c.ScriptInstructionLimit < 1 {
		return []string{fmt.Sprintf("content.script_instruction_limit must be >= 1, got %d", c.ScriptInstructionLimit)}
	}
	return nil
}

func validateTelnet(t TelnetConfig) []string {
	var errs []string
	if t.Port < 1 || t.Port > 65535 {
		errs = append(errs, fmt.Sprintf("telnet.port must be 1-65535, got %d", t.Port))
	}
	if t.ReadTimeout < 0 {
		errs = append(errs, "telnet.read_timeout must not be negative")
	}
	if t.WriteTimeout < 0 {
		errs = append(errs, "telnet.write_timeout must not be negative")
	}
	if t.MaxSessions < 0 {
		errs = append(errs, fmt.Sprintf("telnet.max_sessions must be >= 0, got %d", t.MaxSessions))
	}
	return errs
}

func validateDatabase(d DatabaseConfig) []string {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "database.min_conns must not exceed database.max_conns")
	}
	return errs
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path uses defaults and
// environment variables only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with CRAWL_ prefix
	v.SetEnvPrefix("CRAWL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration produced by the built-in defaults alone.
func Default() Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("default configuration is invalid: %v", err))
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.stderr", true)
	v.SetDefault("logging.file.path", "")
	v.SetDefault("logging.file.max_size_mb", 10)
	v.SetDefault("logging.file.max_backups", 3)
	v.SetDefault("logging.file.max_age_days", 28)

	params := dungeon.DefaultParams()
	session := explore.DefaultConfig()
	v.SetDefault("dungeon.seed", 0)
	v.SetDefault("dungeon.start_level", session.StartLevel)
	v.SetDefault("dungeon.max_level", session.MaxLevel)
	v.SetDefault("dungeon.min_rooms", params.MinRooms)
	v.SetDefault("dungeon.max_rooms", params.MaxRooms)
	v.SetDefault("dungeon.monster_rate", params.MonsterRate)
	v.SetDefault("dungeon.treasure_rate", params.TreasureRate)
	v.SetDefault("dungeon.trap_rate", params.TrapRate)
	v.SetDefault("dungeon.event_rate", params.EventRate)
	v.SetDefault("dungeon.feature_rate", params.FeatureRate)
	v.SetDefault("dungeon.extra_edge_ratio", params.ExtraEdgeRatio)
	v.SetDefault("dungeon.boss_interval", params.BossInterval)
	v.SetDefault("dungeon.rest_heal_fraction", session.RestHealFraction)
	v.SetDefault("dungeon.healing_draught_fraction", session.HealingDraughtFraction)
	v.SetDefault("dungeon.max_combat_rounds", combat.DefaultMaxRounds)

	v.SetDefault("content.npcs_dir", "")
	v.SetDefault("content.conditions_dir", "")
	v.SetDefault("content.scripts_dir", "")
	v.SetDefault("content.script_instruction_limit", 100000)

	v.SetDefault("telnet.host", "0.0.0.0")
	v.SetDefault("telnet.port", 4000)
	v.SetDefault("telnet.read_timeout", "30m")
	v.SetDefault("telnet.write_timeout", "30s")
	v.SetDefault("telnet.max_sessions", 64)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "crawl")
	v.SetDefault("database.password", "crawl")
	v.SetDefault("database.name", "crawl")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")
}
