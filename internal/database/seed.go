package database

import (
	"encoding/json"
	"fmt"

	"github.com/riverwalkmud/samud/internal/world"
)

// Seed writes loaded world content into the store. Rooms and NPCs are
// upserted so content edits take effect on restart; items are only inserted
// when missing so get/drop history survives restarts.
func (d *Database) Seed(content *world.Content) error {
	for _, room := range content.Rooms {
		exitsJSON, err := json.Marshal(room.Exits)
		if err != nil {
			return fmt.Errorf("failed to encode exits for room %s: %w", room.ID, err)
		}
		orderJSON, err := json.Marshal(room.ExitNames())
		if err != nil {
			return fmt.Errorf("failed to encode exit order for room %s: %w", room.ID, err)
		}
		if _, err := d.exec(
			`INSERT INTO rooms (id, name, description, exits, exit_order) VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET name = excluded.name, description = excluded.description,
			 exits = excluded.exits, exit_order = excluded.exit_order`,
			room.ID, room.Name, room.Description, string(exitsJSON), string(orderJSON),
		); err != nil {
			return fmt.Errorf("failed to seed room %s: %w", room.ID, err)
		}
	}

	for _, npc := range content.NPCs {
		responsesJSON, err := json.Marshal(npc.Responses)
		if err != nil {
			return fmt.Errorf("failed to encode responses for NPC %s: %w", npc.ID, err)
		}
		if _, err := d.exec(
			`INSERT INTO npcs (id, name, description, room_id, responses) VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET name = excluded.name, description = excluded.description,
			 room_id = excluded.room_id, responses = excluded.responses`,
			npc.ID, npc.Name, npc.Description, npc.RoomID, string(responsesJSON),
		); err != nil {
			return fmt.Errorf("failed to seed NPC %s: %w", npc.ID, err)
		}
	}

	for _, item := range content.Items {
		if _, err := d.exec(
			`INSERT INTO items (id, name, description, location_type, location_id) VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO NOTHING`,
			item.ID, item.Name, item.Description, string(item.Location.Type), item.Location.ID,
		); err != nil {
			return fmt.Errorf("failed to seed item %s: %w", item.ID, err)
		}
	}

	return nil
}
