package world

import (
	"fmt"
	"sort"
	"strings"
)

// NPC is a scripted character fixed to one room. Responses maps lowercase
// dialogue keywords to response text; loaders guarantee a "default" key but
// Respond tolerates its absence.
type NPC struct {
	ID          string
	Name        string
	Description string
	RoomID      string
	Responses   map[string]string
}

// Respond selects the NPC's response for a dialogue keyword. Resolution
// order: exact case-insensitive key match, then the first key that is a
// substring of the query or vice-versa, then the "default" response, then a
// synthesized non-understanding line.
func (n *NPC) Respond(keyword string) string {
	lower := strings.ToLower(keyword)

	response := n.Responses[lower]
	if response == "" {
		// Keys are scanned in sorted order so partial matches are
		// deterministic regardless of map iteration order.
		keys := make([]string, 0, len(n.Responses))
		for key := range n.Responses {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			keyLower := strings.ToLower(key)
			if strings.Contains(keyLower, lower) || strings.Contains(lower, keyLower) {
				response = n.Responses[key]
				break
			}
		}
	}
	if response == "" {
		response = n.Responses["default"]
	}
	if response == "" {
		response = fmt.Sprintf("%s doesn't understand what you're asking about.", n.Name)
	}
	return response
}
