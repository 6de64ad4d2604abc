// Package namefilter vets usernames at signup. It rejects exact matches
// against a blocklist and names containing banned substrings.
package namefilter

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the YAML shape of the name filter config file.
type Config struct {
	Enabled     bool     `yaml:"enabled"`
	BannedWords []string `yaml:"banned_words"`
	BannedNames []string `yaml:"banned_names"`
}

// Result says whether a name passed. Reason carries the signup-facing text
// when it did not.
type Result struct {
	Allowed bool
	Reason  string
}

// NameFilter holds the normalized blocklists. Construct once at startup;
// Check is read-only.
type NameFilter struct {
	enabled bool
	words   []string // substring matches
	names   []string // exact matches
}

// New builds a NameFilter from cfg. A nil cfg yields a disabled filter.
func New(cfg *Config) *NameFilter {
	if cfg == nil {
		return &NameFilter{}
	}

	nf := &NameFilter{enabled: cfg.Enabled}
	for _, w := range cfg.BannedWords {
		if w != "" {
			nf.words = append(nf.words, strings.ToLower(w))
		}
	}
	for _, n := range cfg.BannedNames {
		if n != "" {
			nf.names = append(nf.names, strings.ToLower(n))
		}
	}
	return nf
}

// LoadConfig reads the name filter config from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Check vets name against both blocklists, case-insensitively.
func (nf *NameFilter) Check(name string) Result {
	if !nf.enabled {
		return Result{Allowed: true}
	}

	lower := strings.ToLower(name)
	for _, banned := range nf.names {
		if lower == banned {
			return Result{Allowed: false, Reason: "That name is not allowed."}
		}
	}
	for _, word := range nf.words {
		if strings.Contains(lower, word) {
			return Result{Allowed: false, Reason: "That name contains a word that is not allowed."}
		}
	}
	return Result{Allowed: true}
}

// IsEnabled reports whether the filter is active.
func (nf *NameFilter) IsEnabled() bool { return nf.enabled }
