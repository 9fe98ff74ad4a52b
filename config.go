package goshape

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/text/language"

	"github.com/reoring/goshape/internal/yamldoc"
)

// Config is the file form of the encoder and decoder settings.
//
//	identifiers:
//	  comparison: locale   # exact | fold | locale
//	  locale: tr
//	language: ja           # en | ja
//	log:
//	  level: debug         # debug | info | warn | error
type Config struct {
	Identifiers IdentifiersConfig `yaml:"identifiers"`
	Language    string            `yaml:"language"`
	Log         LogConfig         `yaml:"log"`
}

type IdentifiersConfig struct {
	Comparison string `yaml:"comparison"`
	Locale     string `yaml:"locale"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() Config {
	return Config{
		Identifiers: IdentifiersConfig{Comparison: "exact"},
		Language:    "en",
		Log:         LogConfig{Level: "info"},
	}
}

// LoadConfig reads a Config from the YAML file at path.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	return ParseConfig(f)
}

// ParseConfig reads a Config from YAML. Unset keys keep their defaults;
// unknown and duplicate keys are errors.
func ParseConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	if err := yamldoc.Decode(r, &cfg); err != nil && !errors.Is(err, yamldoc.ErrEmpty) {
		return Config{}, fmt.Errorf("goshape: config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	if _, err := c.Policy(); err != nil {
		return err
	}
	switch c.Language {
	case "en", "ja":
	default:
		return fmt.Errorf("goshape: config: unsupported language %q", c.Language)
	}
	if _, err := c.levelOption(); err != nil {
		return err
	}
	return nil
}

// Policy returns the configured IdentifierPolicy.
func (c Config) Policy() (IdentifierPolicy, error) {
	switch c.Identifiers.Comparison {
	case "", "exact":
		return ExactIdentifiers, nil
	case "fold":
		return FoldedIdentifiers, nil
	case "locale":
		tag, err := language.Parse(c.Identifiers.Locale)
		if err != nil {
			return nil, fmt.Errorf("goshape: config: identifiers.locale: %w", err)
		}
		return LocaleIdentifiers(tag), nil
	}
	return nil, fmt.Errorf("goshape: config: unknown identifiers.comparison %q", c.Identifiers.Comparison)
}

func (c Config) levelOption() (level.Option, error) {
	switch c.Log.Level {
	case "debug":
		return level.AllowDebug(), nil
	case "", "info":
		return level.AllowInfo(), nil
	case "warn":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	}
	return nil, fmt.Errorf("goshape: config: unknown log.level %q", c.Log.Level)
}

// Logger returns a logfmt logger writing to w, filtered at the configured
// level.
func (c Config) Logger(w io.Writer) log.Logger {
	opt, err := c.levelOption()
	if err != nil {
		opt = level.AllowInfo()
	}
	l := log.NewLogfmtLogger(log.NewSyncWriter(w))
	l = log.With(l, "ts", log.DefaultTimestampUTC)
	return level.NewFilter(l, opt)
}

// Options turns the configuration into encoder and decoder options. logger
// may be nil.
func (c Config) Options(logger log.Logger) ([]Option, error) {
	policy, err := c.Policy()
	if err != nil {
		return nil, err
	}
	opts := []Option{WithIdentifierPolicy(policy)}
	if logger != nil {
		opts = append(opts, WithLogger(logger))
	}
	return opts, nil
}
