// Package config loads the goclean binary's settings from a config file,
// .env and GOCLEAN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/reoring/goclean/codec"
	"github.com/reoring/goclean/internal/logger"
	"github.com/reoring/goclean/jsoncodec"
)

// EnvPrefix prefixes every environment override, e.g. GOCLEAN_SERVER_ADDR.
const EnvPrefix = "GOCLEAN"

// Config is the complete runtime configuration.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Schema      SchemaConfig      `mapstructure:"schema"`
	Negotiation NegotiationConfig `mapstructure:"negotiation"`
	JSON        JSONConfig        `mapstructure:"json"`
	Log         LogConfig         `mapstructure:"log"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr" validate:"required"`
}

type SchemaConfig struct {
	Path string `mapstructure:"path"`
}

// NegotiationConfig lists what responses may be encoded with.
type NegotiationConfig struct {
	Charsets  []string `mapstructure:"charsets" validate:"min=1,dive,required"`
	Encodings []string `mapstructure:"encodings" validate:"dive,required"`
}

type JSONConfig struct {
	Indent      int  `mapstructure:"indent" validate:"gte=0,lte=16"`
	EnsureASCII bool `mapstructure:"ensure_ascii"`
	AllowEmpty  bool `mapstructure:"allow_empty"`
}

type LogConfig struct {
	Level     string `mapstructure:"level" validate:"oneof=debug info warn error"`
	File      string `mapstructure:"file"`
	MaxSizeMB int    `mapstructure:"max_size_mb" validate:"gte=1"`
}

// JSONOptions converts the json section into codec options.
func (c JSONConfig) JSONOptions() []jsoncodec.Option {
	return []jsoncodec.Option{
		jsoncodec.WithIndent(c.Indent),
		jsoncodec.WithEnsureASCII(c.EnsureASCII),
		jsoncodec.WithAllowEmpty(c.AllowEmpty),
		jsoncodec.WithRejectDuplicateKeys(true),
	}
}

// LoggerOptions converts the log section into logger options.
func (c LogConfig) LoggerOptions() logger.Options {
	return logger.Options{Level: c.Level, File: c.File, MaxSizeMB: c.MaxSizeMB}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("schema.path", "")
	v.SetDefault("negotiation.charsets", []string{codec.DefaultCharset})
	v.SetDefault("negotiation.encodings", []string{"br", "gzip", "deflate", "zstd"})
	v.SetDefault("json.indent", 0)
	v.SetDefault("json.ensure_ascii", true)
	v.SetDefault("json.allow_empty", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 100)
}

// Load reads path (YAML, JSON or TOML, chosen by extension) when it is not
// empty, overlays the environment and validates the result. A .env file in
// the working directory is loaded first when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !isNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg field constraints and that every negotiation name is
// registered in the default codec registry.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	for _, cs := range cfg.Negotiation.Charsets {
		if _, err := codec.Default.Charsets.Lookup(cs); err != nil {
			return fmt.Errorf("invalid config: negotiation.charsets: %w", err)
		}
	}
	for _, enc := range cfg.Negotiation.Encodings {
		if _, err := codec.Default.Contents.Lookup(enc); err != nil {
			return fmt.Errorf("invalid config: negotiation.encodings: %w", err)
		}
	}
	return nil
}

func isNotExist(err error) bool { return errors.Is(err, fs.ErrNotExist) }
