package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// JobOverride replaces parts of a built-in job definition. Zero fields keep
// the built-in value.
type JobOverride struct {
	Entities  []string `mapstructure:"entities"`
	StartYear int      `mapstructure:"start_year"`
	EndYear   int      `mapstructure:"end_year"`
	Variants  []string `mapstructure:"variants"`
	Disabled  bool     `mapstructure:"disabled"`
}

type jobsFile struct {
	Jobs map[string]JobOverride `mapstructure:"jobs"`
}

// LoadJobOverrides reads per-job overrides from a YAML, JSON or TOML file.
// An empty path or a missing file yields no overrides.
func LoadJobOverrides(path string) (map[string]JobOverride, error) {
	if strings.TrimSpace(path) == "" {
		return map[string]JobOverride{}, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return map[string]JobOverride{}, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read jobs file %s: %w", path, err)
	}

	var parsed jobsFile
	if err := v.Unmarshal(&parsed); err != nil {
		return nil, fmt.Errorf("parse jobs file %s: %w", path, err)
	}
	if parsed.Jobs == nil {
		parsed.Jobs = map[string]JobOverride{}
	}
	for name, o := range parsed.Jobs {
		if o.StartYear != 0 && o.EndYear != 0 && o.EndYear < o.StartYear {
			return nil, fmt.Errorf("jobs file %s: job %s ends before it starts", path, name)
		}
	}
	return parsed.Jobs, nil
}
