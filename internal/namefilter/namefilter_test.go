package namefilter

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNilAndDisabledConfigsAllowEverything(t *testing.T) {
	for _, nf := range []*NameFilter{
		New(nil),
		New(&Config{Enabled: false, BannedWords: []string{"admin"}, BannedNames: []string{"root"}}),
	} {
		if nf.IsEnabled() {
			t.Error("filter should be disabled")
		}
		for _, name := range []string{"admin", "root", "anything"} {
			if res := nf.Check(name); !res.Allowed {
				t.Errorf("disabled filter rejected %q: %s", name, res.Reason)
			}
		}
	}
}

func TestBannedWordsMatchSubstrings(t *testing.T) {
	nf := New(&Config{
		Enabled:     true,
		BannedWords: []string{"admin", "moderator", "gm"},
	})

	cases := []struct {
		name    string
		allowed bool
	}{
		{"admin", false},
		{"Admin", false},
		{"superadmin", false},
		{"theadmin123", false},
		{"gamemoderator", false},
		{"gmmaster", false},
		{"player", true},
		{"tejana", true},
		{"admi", true}, // does not contain the full word
		{"mod", true},
	}
	for _, tc := range cases {
		res := nf.Check(tc.name)
		if res.Allowed != tc.allowed {
			t.Errorf("Check(%q).Allowed = %v, want %v", tc.name, res.Allowed, tc.allowed)
		}
		if !tc.allowed && res.Reason == "" {
			t.Errorf("Check(%q) rejected without a reason", tc.name)
		}
	}
}

func TestBannedNamesMatchExactly(t *testing.T) {
	nf := New(&Config{
		Enabled:     true,
		BannedNames: []string{"root", "system", "null"},
	})

	cases := []struct {
		name    string
		allowed bool
	}{
		{"root", false},
		{"ROOT", false},
		{"system", false},
		{"null", false},
		{"rootuser", true}, // exact-match list only
		{"systemic", true},
		{"nullify", true},
		{"maria", true},
	}
	for _, tc := range cases {
		if res := nf.Check(tc.name); res.Allowed != tc.allowed {
			t.Errorf("Check(%q).Allowed = %v, want %v", tc.name, res.Allowed, tc.allowed)
		}
	}
}

func TestEmptyBlocklistEntriesIgnored(t *testing.T) {
	nf := New(&Config{
		Enabled:     true,
		BannedWords: []string{"admin", "", "moderator"},
		BannedNames: []string{"", "root"},
	})

	if res := nf.Check("admin"); res.Allowed {
		t.Error("banned word slipped through")
	}
	// An empty entry must not make Contains match every name.
	if res := nf.Check("player"); !res.Allowed {
		t.Errorf("valid name rejected: %s", res.Reason)
	}
}

func TestAllowedNameHasNoReason(t *testing.T) {
	nf := New(&Config{Enabled: true, BannedWords: []string{"admin"}})
	res := nf.Check("carlos")
	if !res.Allowed {
		t.Fatalf("valid name rejected: %s", res.Reason)
	}
	if res.Reason != "" {
		t.Errorf("allowed name carries reason %q", res.Reason)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "name_filter.yaml")
	content := `enabled: true
banned_words:
  - admin
  - moderator
banned_names:
  - root
  - system
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !cfg.Enabled {
		t.Error("Enabled = false, want true")
	}
	if len(cfg.BannedWords) != 2 || len(cfg.BannedNames) != 2 {
		t.Errorf("loaded %d words / %d names, want 2 / 2", len(cfg.BannedWords), len(cfg.BannedNames))
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/name_filter.yaml"); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("invalid: yaml: content: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestImpersonationAttempts(t *testing.T) {
	nf := New(&Config{
		Enabled:     true,
		BannedWords: []string{"admin", "moderator", "gamemaster", "staff", "gm"},
		BannedNames: []string{"god"},
	})

	for _, name := range []string{"Rosa", "Isabella", "DragonSlayer", "player123", "xXWarriorXx"} {
		if res := nf.Check(name); !res.Allowed {
			t.Errorf("valid name %q rejected: %s", name, res.Reason)
		}
	}
	for _, name := range []string{"Admin", "GameAdmin", "HeadModerator", "GM_Player", "Staff_Helper", "god"} {
		if res := nf.Check(name); res.Allowed {
			t.Errorf("impersonation name %q allowed", name)
		}
	}
}
