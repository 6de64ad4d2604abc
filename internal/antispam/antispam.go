// Package antispam throttles chat output per player. Each session owns a
// Tracker; the server consults it before any say or shout goes out.
package antispam

import (
	"strings"
	"sync"
	"time"
)

// Config controls the two throttles a Tracker enforces: a sliding-window
// rate limit and a cooldown on repeating the same message.
type Config struct {
	Enabled        bool
	MaxMessages    int
	TimeWindow     time.Duration
	RepeatCooldown time.Duration
}

// DefaultConfig allows 5 messages per 10 seconds and blocks repeats for 30.
func DefaultConfig() Config {
	return Config{
		Enabled:        true,
		MaxMessages:    5,
		TimeWindow:     10 * time.Second,
		RepeatCooldown: 30 * time.Second,
	}
}

// ConfigFromYAML builds a Config from the integer fields the config file
// carries. Zero or negative values fall back to the defaults.
func ConfigFromYAML(enabled bool, maxMessages, timeWindowSeconds, repeatCooldownSeconds int) Config {
	cfg := DefaultConfig()
	cfg.Enabled = enabled
	if maxMessages > 0 {
		cfg.MaxMessages = maxMessages
	}
	if timeWindowSeconds > 0 {
		cfg.TimeWindow = time.Duration(timeWindowSeconds) * time.Second
	}
	if repeatCooldownSeconds > 0 {
		cfg.RepeatCooldown = time.Duration(repeatCooldownSeconds) * time.Second
	}
	return cfg
}

// CheckResult reports whether a message may be sent. When blocked, Reason is
// player-facing text and WaitSeconds says how long until a retry could pass.
type CheckResult struct {
	Allowed     bool
	Reason      string
	WaitSeconds int
}

// Tracker holds the chat history for one session. Safe for concurrent use,
// though in practice a session checks messages one at a time.
type Tracker struct {
	mu       sync.Mutex
	config   Config
	recent   []time.Time          // send times inside the current window
	lastSent map[string]time.Time // normalized message -> last send time
}

// NewTracker returns a Tracker enforcing cfg. A disabled config yields a
// tracker that allows everything.
func NewTracker(cfg Config) *Tracker {
	return &Tracker{
		config:   cfg,
		recent:   make([]time.Time, 0, cfg.MaxMessages),
		lastSent: make(map[string]time.Time),
	}
}

// Check records the message if it passes both throttles. Repeat detection is
// case-insensitive so "HI" twice counts as a repeat of "hi".
func (t *Tracker) Check(message string) CheckResult {
	if !t.config.Enabled {
		return CheckResult{Allowed: true}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	t.pruneLocked(now)

	key := strings.ToLower(strings.TrimSpace(message))
	if last, ok := t.lastSent[key]; ok {
		if held := t.config.RepeatCooldown - now.Sub(last); held > 0 {
			return CheckResult{
				Allowed:     false,
				Reason:      "Please don't repeat the same message.",
				WaitSeconds: int(held.Seconds()) + 1,
			}
		}
	}

	if len(t.recent) >= t.config.MaxMessages {
		held := t.recent[0].Add(t.config.TimeWindow).Sub(now)
		return CheckResult{
			Allowed:     false,
			Reason:      "You're sending messages too quickly. Please slow down.",
			WaitSeconds: int(held.Seconds()) + 1,
		}
	}

	t.recent = append(t.recent, now)
	t.lastSent[key] = now
	return CheckResult{Allowed: true}
}

// pruneLocked drops entries that have aged out of their windows. Caller must
// hold t.mu.
func (t *Tracker) pruneLocked(now time.Time) {
	cutoff := now.Add(-t.config.TimeWindow)
	kept := t.recent[:0]
	for _, ts := range t.recent {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	t.recent = kept

	repeatCutoff := now.Add(-t.config.RepeatCooldown)
	for msg, ts := range t.lastSent {
		if ts.Before(repeatCutoff) {
			delete(t.lastSent, msg)
		}
	}
}

// Reset forgets all history, lifting any active throttle.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.recent = t.recent[:0]
	t.lastSent = make(map[string]time.Time)
}
