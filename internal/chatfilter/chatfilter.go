// Package chatfilter screens say and shout messages against a configured
// banned-word list before the server relays them.
package chatfilter

import (
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// FilterMode selects what happens when a banned word is found.
type FilterMode string

const (
	// ModeReplace masks each matched word with asterisks and lets the
	// message through.
	ModeReplace FilterMode = "REPLACE"
	// ModeBlock drops the whole message.
	ModeBlock FilterMode = "BLOCK"
)

// AntispamConfig mirrors the antispam section of the filter config file.
// It lives here so one file configures both moderation layers.
type AntispamConfig struct {
	Enabled               bool `yaml:"enabled"`
	MaxMessages           int  `yaml:"max_messages"`
	TimeWindowSeconds     int  `yaml:"time_window_seconds"`
	RepeatCooldownSeconds int  `yaml:"repeat_cooldown_seconds"`
}

// Config is the YAML shape of the chat filter config file.
type Config struct {
	Enabled     bool            `yaml:"enabled"`
	Mode        FilterMode      `yaml:"mode"`
	BannedWords []string        `yaml:"banned_words"`
	Antispam    *AntispamConfig `yaml:"antispam"`
}

// Result is what Check returns. Filtered always holds a sendable form of the
// message; in BLOCK mode the caller decides whether to use it.
type Result struct {
	Filtered     string
	Violated     bool
	MatchedWords []string
}

type bannedWord struct {
	word string
	re   *regexp.Regexp
}

// ChatFilter matches messages against pre-compiled banned-word patterns.
// Construct once at startup; Check is read-only and safe for concurrent use.
type ChatFilter struct {
	enabled bool
	mode    FilterMode
	words   []bannedWord
}

// New builds a ChatFilter from cfg. A nil cfg yields a disabled filter.
func New(cfg *Config) *ChatFilter {
	if cfg == nil {
		return &ChatFilter{}
	}

	cf := &ChatFilter{
		enabled: cfg.Enabled,
		mode:    cfg.Mode,
	}
	for _, w := range cfg.BannedWords {
		if w == "" {
			continue
		}
		cf.words = append(cf.words, bannedWord{
			word: w,
			// Word boundaries keep "class" from tripping on "ass".
			re: regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(w) + `\b`),
		})
	}
	return cf
}

// LoadConfig reads the filter config from a YAML file. An unset mode
// defaults to REPLACE.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeReplace
	}
	return &cfg, nil
}

// Check scans message for banned words and reports what it found.
func (cf *ChatFilter) Check(message string) Result {
	result := Result{
		Filtered:     message,
		MatchedWords: []string{},
	}
	if !cf.enabled || len(cf.words) == 0 {
		return result
	}

	for _, bw := range cf.words {
		if !bw.re.MatchString(message) {
			continue
		}
		result.Violated = true
		result.MatchedWords = append(result.MatchedWords, bw.word)
		if cf.mode == ModeReplace {
			result.Filtered = bw.re.ReplaceAllStringFunc(result.Filtered, func(m string) string {
				return strings.Repeat("*", len(m))
			})
		}
	}
	return result
}

// IsEnabled reports whether the filter is active.
func (cf *ChatFilter) IsEnabled() bool { return cf.enabled }

// Mode returns the configured filter mode.
func (cf *ChatFilter) Mode() FilterMode { return cf.mode }

// IsBlockMode reports whether violations drop the whole message.
func (cf *ChatFilter) IsBlockMode() bool { return cf.mode == ModeBlock }

// IsReplaceMode reports whether violations are masked in place.
func (cf *ChatFilter) IsReplaceMode() bool { return cf.mode == ModeReplace }
