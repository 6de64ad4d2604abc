package world

import "strings"

// MatchesName reports whether a free-text fragment addresses an entity with
// the given display name. The fragment matches when it is a substring of the
// whole lowercased name or of any single whitespace-delimited word of it.
func MatchesName(fragment, name string) bool {
	fragment = strings.ToLower(fragment)
	nameLower := strings.ToLower(name)
	if strings.Contains(nameLower, fragment) {
		return true
	}
	for _, word := range strings.Fields(nameLower) {
		if strings.Contains(word, fragment) {
			return true
		}
	}
	return false
}

// FindItem returns the first item whose name matches the fragment, in the
// order given. There is no disambiguation when several items match.
func FindItem(items []*Item, fragment string) *Item {
	for _, item := range items {
		if MatchesName(fragment, item.Name) {
			return item
		}
	}
	return nil
}

// FindNPC returns the first NPC whose name matches the fragment, in the
// order given.
func FindNPC(npcs []*NPC, fragment string) *NPC {
	for _, npc := range npcs {
		if MatchesName(fragment, npc.Name) {
			return npc
		}
	}
	return nil
}

// ItemNames lists display names in order, for "available items" messages.
func ItemNames(items []*Item) []string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	return names
}

// NPCNames lists display names in order, for "available NPCs" messages.
func NPCNames(npcs []*NPC) []string {
	names := make([]string, len(npcs))
	for i, npc := range npcs {
		names[i] = npc.Name
	}
	return names
}
