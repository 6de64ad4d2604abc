package world

import "testing"

func TestMatchesName(t *testing.T) {
	tests := []struct {
		fragment string
		name     string
		want     bool
	}{
		{"guitar", "a tortoiseshell guitar pick", true},
		{"pick", "a tortoiseshell guitar pick", true},
		{"tortoise", "a tortoiseshell guitar pick", true},
		{"GUITAR", "a tortoiseshell guitar pick", true},
		{"guitar pick", "a tortoiseshell guitar pick", true},
		{"banjo", "a tortoiseshell guitar pick", false},
		{"maria", "Maria, the Tour Guide", true},
		{"guide", "Maria, the Tour Guide", true},
		{"tour guide", "Maria, the Tour Guide", true},
		{"carlos", "Maria, the Tour Guide", false},
		{"churro", "fresh churros", true},
	}

	for _, tt := range tests {
		if got := MatchesName(tt.fragment, tt.name); got != tt.want {
			t.Errorf("MatchesName(%q, %q) = %v, want %v", tt.fragment, tt.name, got, tt.want)
		}
	}
}

func TestFindItemFirstMatchWins(t *testing.T) {
	items := []*Item{
		{ID: "pick", Name: "a tortoiseshell guitar pick"},
		{ID: "guitar", Name: "an old guitar"},
	}

	found := FindItem(items, "guitar")
	if found == nil {
		t.Fatal("expected a match")
	}
	if found.ID != "pick" {
		t.Errorf("expected first match %q to win, got %q", "pick", found.ID)
	}
}

func TestFindItemNoMatch(t *testing.T) {
	items := []*Item{
		{ID: "brochure", Name: "a historic brochure"},
	}

	if found := FindItem(items, "sword"); found != nil {
		t.Errorf("expected no match, got %q", found.ID)
	}
}

func TestFindNPC(t *testing.T) {
	npcs := []*NPC{
		{ID: "alamo_guide", Name: "Maria, the Tour Guide"},
		{ID: "mariachi_carlos", Name: "Carlos, the Mariachi"},
	}

	if found := FindNPC(npcs, "carlos"); found == nil || found.ID != "mariachi_carlos" {
		t.Errorf("expected mariachi_carlos, got %v", found)
	}
	if found := FindNPC(npcs, "maria"); found == nil || found.ID != "alamo_guide" {
		t.Errorf("expected alamo_guide, got %v", found)
	}
	if found := FindNPC(npcs, "nobody"); found != nil {
		t.Errorf("expected no match, got %q", found.ID)
	}
}

func TestItemNames(t *testing.T) {
	items := []*Item{
		{Name: "fresh churros"},
		{Name: "a small mission bell"},
	}

	names := ItemNames(items)
	if len(names) != 2 || names[0] != "fresh churros" || names[1] != "a small mission bell" {
		t.Errorf("unexpected names: %v", names)
	}
}
