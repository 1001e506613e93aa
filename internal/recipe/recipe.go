// Package recipe loads filter pipelines from YAML files.
//
// A recipe lists filters in the order they are applied, plus optional
// defaults for the command line:
//
//	filters: [sepia, blur, blur]
//	workers: 4
//	log_level: debug
//	output: out.bmp
//	preview: out.png
package recipe

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/gogpu/hbmp/internal/filter"
)

// ErrInvalid is returned for a recipe that parses but cannot be used.
var ErrInvalid = errors.New("recipe: invalid recipe")

// Recipe is a decoded recipe file.
type Recipe struct {
	Filters  []string `yaml:"filters"`
	Workers  int      `yaml:"workers"`
	LogLevel string   `yaml:"log_level"`
	Output   string   `yaml:"output"`
	Preview  string   `yaml:"preview"`

	kinds []filter.Kind
	level slog.Level
}

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Load reads and parses the recipe at path.
func Load(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("recipe: read %s: %w", path, err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Parse decodes a recipe. Unknown keys are rejected.
func Parse(data []byte) (*Recipe, error) {
	var r Recipe
	if err := yaml.UnmarshalStrict(data, &r); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := r.validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *Recipe) validate() error {
	kinds, err := filter.ParseList(r.Filters)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	r.kinds = kinds

	if r.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalid, r.Workers)
	}

	r.level = slog.LevelWarn
	if r.LogLevel != "" {
		lvl, ok := levels[strings.ToLower(r.LogLevel)]
		if !ok {
			return fmt.Errorf("%w: unknown log_level %q", ErrInvalid, r.LogLevel)
		}
		r.level = lvl
	}
	return nil
}

// Kinds returns the filters in recipe order. Duplicates are kept.
func (r *Recipe) Kinds() []filter.Kind {
	return r.kinds
}

// Level returns the configured log level, slog.LevelWarn if unset.
func (r *Recipe) Level() slog.Level {
	return r.level
}
