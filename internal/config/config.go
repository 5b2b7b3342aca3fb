package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/nbtarray/internal/logging"
	"github.com/danmuck/nbtarray/internal/protocol"
	"github.com/rs/zerolog"
)

// Config is the nbtarray runtime configuration.
type Config struct {
	Limits LimitsConfig
	Log    LogConfig
}

type LimitsConfig struct {
	MaxLength  int64
	MaxBytes   int64
	ChunkBytes int
}

type LogConfig struct {
	Level     string
	Timestamp bool
	NoColor   bool
}

// fileConfig mirrors the TOML keys; absent keys keep Default values.
type fileConfig struct {
	Limits struct {
		MaxLength  int64 `toml:"max_length"`
		MaxBytes   int64 `toml:"max_bytes"`
		ChunkBytes int   `toml:"chunk_bytes"`
	} `toml:"limits"`
	Log struct {
		Level     string `toml:"level"`
		Timestamp bool   `toml:"timestamp"`
		NoColor   bool   `toml:"no_color"`
	} `toml:"log"`
}

func Default() Config {
	l := protocol.DefaultLimits()
	return Config{
		Limits: LimitsConfig{
			MaxLength:  l.MaxLength,
			MaxBytes:   l.MaxBytes,
			ChunkBytes: l.ChunkBytes,
		},
		Log: LogConfig{
			Level:     "info",
			Timestamp: true,
		},
	}
}

// Load reads path over Default and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config parse failed (%s): unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("limits", "max_length") {
		cfg.Limits.MaxLength = raw.Limits.MaxLength
	}
	if meta.IsDefined("limits", "max_bytes") {
		cfg.Limits.MaxBytes = raw.Limits.MaxBytes
	}
	if meta.IsDefined("limits", "chunk_bytes") {
		cfg.Limits.ChunkBytes = raw.Limits.ChunkBytes
	} else if cfg.Limits.MaxBytes > 0 && int64(cfg.Limits.ChunkBytes) > cfg.Limits.MaxBytes {
		// default chunk follows a smaller max_bytes
		cfg.Limits.ChunkBytes = max(int(cfg.Limits.MaxBytes), 8)
	}
	if meta.IsDefined("log", "level") {
		cfg.Log.Level = strings.TrimSpace(raw.Log.Level)
	}
	if meta.IsDefined("log", "timestamp") {
		cfg.Log.Timestamp = raw.Log.Timestamp
	}
	if meta.IsDefined("log", "no_color") {
		cfg.Log.NoColor = raw.Log.NoColor
	}

	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	l := cfg.Limits
	if l.MaxLength <= 0 {
		return fmt.Errorf("limits.max_length must be positive")
	}
	if l.MaxLength > protocol.MaxArrayLength {
		return fmt.Errorf("limits.max_length %d exceeds format maximum %d", l.MaxLength, protocol.MaxArrayLength)
	}
	if l.MaxBytes <= 0 {
		return fmt.Errorf("limits.max_bytes must be positive")
	}
	if l.ChunkBytes < 8 {
		return fmt.Errorf("limits.chunk_bytes must be at least 8")
	}
	if int64(l.ChunkBytes) > l.MaxBytes {
		return fmt.Errorf("limits.chunk_bytes %d exceeds limits.max_bytes %d", l.ChunkBytes, l.MaxBytes)
	}
	if _, ok := logging.ParseLevel(cfg.Log.Level); !ok {
		return fmt.Errorf("log.level %q is not a known level", cfg.Log.Level)
	}
	return nil
}

// ProtocolLimits converts the limits section for protocol.WithLimits.
func (c Config) ProtocolLimits() protocol.Limits {
	return protocol.Limits{
		MaxLength:  c.Limits.MaxLength,
		MaxBytes:   c.Limits.MaxBytes,
		ChunkBytes: c.Limits.ChunkBytes,
	}
}

// Logging converts the log section for logging.New.
func (c Config) Logging() logging.Config {
	level, ok := logging.ParseLevel(c.Log.Level)
	if !ok {
		level = zerolog.InfoLevel
	}
	return logging.Config{
		Level:     level,
		Timestamp: c.Log.Timestamp,
		NoColor:   c.Log.NoColor,
	}
}
