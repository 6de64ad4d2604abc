package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/riverwalkmud/samud/internal/world"
)

// ErrRoomNotFound is returned when a room lookup fails.
var ErrRoomNotFound = errors.New("room not found")

// ErrNPCNotFound is returned when an NPC lookup fails.
var ErrNPCNotFound = errors.New("NPC not found")

// ErrItemNotFound is returned when an item lookup fails.
var ErrItemNotFound = errors.New("item not found")

// GetRoom returns a room by ID. Exits and their declaration order are
// stored as JSON columns.
func (d *Database) GetRoom(roomID string) (*world.Room, error) {
	var name, description, exitsJSON, orderJSON string

	err := d.queryRow(
		"SELECT name, description, exits, exit_order FROM rooms WHERE id = ?",
		roomID,
	).Scan(&name, &description, &exitsJSON, &orderJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	room := &world.Room{
		ID:          roomID,
		Name:        name,
		Description: description,
	}
	if err := json.Unmarshal([]byte(exitsJSON), &room.Exits); err != nil {
		return nil, fmt.Errorf("room %s has malformed exits: %w", roomID, err)
	}
	if err := json.Unmarshal([]byte(orderJSON), &room.ExitOrder); err != nil {
		return nil, fmt.Errorf("room %s has malformed exit order: %w", roomID, err)
	}
	return room, nil
}

func scanNPC(scan func(dest ...any) error) (*world.NPC, error) {
	var npc world.NPC
	var responsesJSON string
	if err := scan(&npc.ID, &npc.Name, &npc.Description, &npc.RoomID, &responsesJSON); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(responsesJSON), &npc.Responses); err != nil {
		return nil, fmt.Errorf("NPC %s has malformed responses: %w", npc.ID, err)
	}
	return &npc, nil
}

// NPCsInRoom returns the NPCs homed in a room, ordered by ID.
func (d *Database) NPCsInRoom(roomID string) ([]*world.NPC, error) {
	rows, err := d.query(
		"SELECT id, name, description, room_id, responses FROM npcs WHERE room_id = ? ORDER BY id",
		roomID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query NPCs in room: %w", err)
	}
	defer rows.Close()

	var npcs []*world.NPC
	for rows.Next() {
		npc, err := scanNPC(rows.Scan)
		if err != nil {
			return nil, err
		}
		npcs = append(npcs, npc)
	}
	return npcs, rows.Err()
}

// GetNPC returns an NPC by ID.
func (d *Database) GetNPC(npcID string) (*world.NPC, error) {
	npc, err := scanNPC(d.queryRow(
		"SELECT id, name, description, room_id, responses FROM npcs WHERE id = ?",
		npcID,
	).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNPCNotFound
		}
		return nil, err
	}
	return npc, nil
}

func scanItem(scan func(dest ...any) error) (*world.Item, error) {
	var item world.Item
	var locType, locID string
	if err := scan(&item.ID, &item.Name, &item.Description, &locType, &locID); err != nil {
		return nil, err
	}
	item.Location = world.Location{Type: world.LocationType(locType), ID: locID}
	return &item, nil
}

func (d *Database) itemsAt(loc world.Location) ([]*world.Item, error) {
	rows, err := d.query(
		"SELECT id, name, description, location_type, location_id FROM items WHERE location_type = ? AND location_id = ? ORDER BY id",
		string(loc.Type), loc.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []*world.Item
	for rows.Next() {
		item, err := scanItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ItemsInRoom returns items lying in a room, ordered by ID.
func (d *Database) ItemsInRoom(roomID string) ([]*world.Item, error) {
	return d.itemsAt(world.RoomLocation(roomID))
}

// ItemsCarriedBy returns items carried by an account, ordered by ID.
func (d *Database) ItemsCarriedBy(username string) ([]*world.Item, error) {
	return d.itemsAt(world.CarriedLocation(username))
}

// GetItem returns an item by ID.
func (d *Database) GetItem(itemID string) (*world.Item, error) {
	item, err := scanItem(d.queryRow(
		"SELECT id, name, description, location_type, location_id FROM items WHERE id = ?",
		itemID,
	).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// RelocateItem moves an item to a new location. The write is a single
// UPDATE, so concurrent relocates race as last-writer-wins but the item
// always ends up in exactly one place.
func (d *Database) RelocateItem(itemID string, loc world.Location) error {
	result, err := d.exec(
		"UPDATE items SET location_type = ?, location_id = ? WHERE id = ?",
		string(loc.Type), loc.ID, itemID,
	)
	if err != nil {
		return fmt.Errorf("failed to relocate item: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrItemNotFound
	}
	return nil
}
