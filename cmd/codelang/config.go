package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgomes/codelang/lang"
	"github.com/mgomes/codelang/stdlib"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const configFileName = ".codelang.yaml"

// fileConfig mirrors the YAML configuration file.
type fileConfig struct {
	MaxDepth  int    `yaml:"max_depth"`
	LoopLimit int    `yaml:"loop_limit"`
	ShowNull  bool   `yaml:"show_null"`
	Locale    string `yaml:"locale"`
	LogLevel  string `yaml:"log_level"`
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configFileName)
}

// loadConfig reads path, or the default location when path is empty. A
// missing default file is not an error.
func loadConfig(path string) (fileConfig, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return fileConfig{}, nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	var cfg fileConfig
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return fileConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.MaxDepth < 0 || cfg.LoopLimit < 0 {
		return fileConfig{}, fmt.Errorf("parse config %s: limits must not be negative", path)
	}
	return cfg, nil
}

func parseLogLevel(raw string) (slog.Level, error) {
	if raw == "" {
		return slog.LevelWarn, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(raw))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", raw)
	}
	return level, nil
}

func newLogger(w io.Writer, raw string) (*slog.Logger, error) {
	level, err := parseLogLevel(raw)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// registry builds the builtin catalogue for the configured locale.
func (c fileConfig) registry() (*stdlib.Registry, error) {
	if c.Locale == "" {
		return stdlib.New(), nil
	}
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", c.Locale, err)
	}
	return stdlib.New(stdlib.WithLocale(tag)), nil
}

// engineConfig fills a lang.Config from the file settings; streams are left
// for the caller.
func (c fileConfig) engineConfig(logger *slog.Logger) (lang.Config, *stdlib.Registry, error) {
	reg, err := c.registry()
	if err != nil {
		return lang.Config{}, nil, err
	}
	return lang.Config{
		MaxDepth:  c.MaxDepth,
		LoopLimit: c.LoopLimit,
		Builtins:  reg,
		Logger:    logger,
	}, reg, nil
}

// commonFlags are accepted by every subcommand that evaluates or parses code.
type commonFlags struct {
	configPath string
	logLevel   string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "path to a YAML config file (default ~/"+configFileName+")")
	fs.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn or error")
}

// load resolves the config file and builds the logger, letting -log-level
// override the file.
func (c *commonFlags) load() (fileConfig, *slog.Logger, error) {
	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return fileConfig{}, nil, err
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}
	logger, err := newLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		return fileConfig{}, nil, err
	}
	return cfg, logger, nil
}
