package app

import (
	"errors"
	"fmt"
	"go/token"
	"strings"
)

// DefaultSuffix is appended to an input's base name to form its output file.
const DefaultSuffix = "_computed.go"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Paths []string // files, directories or globs
	Types []string

	Suffix      string
	Constructor bool
	Check       bool
	Watch       bool

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.Paths) == 0 {
		return nil, errors.New("at least one input path is required")
	}
	if cfg.Suffix == "" {
		cfg.Suffix = DefaultSuffix
	}
	if !strings.HasSuffix(cfg.Suffix, ".go") || strings.HasSuffix(cfg.Suffix, "_test.go") {
		return nil, fmt.Errorf("suffix %q must end in .go and must not name a test file", cfg.Suffix)
	}
	for _, name := range cfg.Types {
		if !token.IsIdentifier(name) {
			return nil, fmt.Errorf("type %q is not a valid Go identifier", name)
		}
	}
	if cfg.Check && cfg.Watch {
		return nil, errors.New("check and watch cannot be combined")
	}

	return &cfg, nil
}
