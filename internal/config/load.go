// Package config loads knolpack settings from flags, a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes environment overrides; KNOLPACK_DECK_NAME sets deck.name.
const EnvPrefix = "KNOLPACK_"

// DefaultDeckID is used when no deck id is configured.
const DefaultDeckID int64 = 2059400110

// ErrHelp is returned by Load when help was requested.
var ErrHelp = pflag.ErrHelp

// NewFlagSet defines the command line flags. Their defaults are the lowest layer of the
// configuration.
func NewFlagSet(name string) *pflag.FlagSet {
	f := pflag.NewFlagSet(name, pflag.ContinueOnError)
	f.String("config", "", "Path to a YAML configuration file")
	f.StringP("output", "o", "knols.apkg", "Path of the package to write")
	f.String("repos", "repos", "Directory holding checkouts of git sources")
	f.StringSliceP("source", "s", []string{"."}, "Markdown file, directory or git URL to read knols from (repeatable)")
	f.StringSlice("media", nil, "Media file to include in the package (repeatable)")
	f.StringSlice("tag", nil, "Tag added to every note (repeatable)")
	f.Int64("deck.id", DefaultDeckID, "Id of the deck")
	f.String("deck.name", "Knols", "Name of the deck")
	f.String("deck.description", "", "Description of the deck")
	f.String("log.level", "info", "Log level: debug, info, warn or error")
	return f
}

// Load parses args and layers the configuration, lowest to highest: flag defaults, the
// YAML file given by --config, KNOLPACK_ environment variables, flags set on the command
// line. The result is validated.
func Load(args []string) (*Config, error) {
	f := NewFlagSet("knolpack")
	if err := f.Parse(args); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	if path, _ := f.GetString("config"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	envKey := func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
		return nil, fmt.Errorf("failed to load flags: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(&cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, fmt.Errorf("invalid configuration: %w", verrs)
		}
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}
	return &cfg, nil
}
