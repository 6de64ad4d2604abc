package database

import (
	"github.com/riverwalkmud/samud/internal/world"
)

// Store is the world-store interface the engine consumes. The production
// implementation is *Database; tests substitute an in-memory fake so the
// interaction logic is decoupled from persistence.
type Store interface {
	// CreateAccount creates an account at the starting room. Returns
	// ErrAccountExists when the username is taken (case-insensitive).
	CreateAccount(username, password string) (*Account, error)

	// Authenticate verifies credentials. Returns ErrInvalidCredentials
	// without revealing whether the username exists.
	Authenticate(username, password string) (*Account, error)

	// GetAccount looks an account up by username.
	GetAccount(username string) (*Account, error)

	// SetAccountRoom moves an account to a room.
	SetAccountRoom(username, roomID string) error

	// GetRoom returns a room or ErrRoomNotFound.
	GetRoom(roomID string) (*world.Room, error)

	// AccountsInRoom returns the usernames stored as being in a room.
	AccountsInRoom(roomID string) ([]string, error)

	// NPCsInRoom returns NPCs homed in a room, in stable order.
	NPCsInRoom(roomID string) ([]*world.NPC, error)

	// GetNPC returns an NPC or ErrNPCNotFound.
	GetNPC(npcID string) (*world.NPC, error)

	// ItemsInRoom returns items lying in a room, in stable order.
	ItemsInRoom(roomID string) ([]*world.Item, error)

	// ItemsCarriedBy returns items carried by an account, in stable order.
	ItemsCarriedBy(username string) ([]*world.Item, error)

	// GetItem returns an item or ErrItemNotFound.
	GetItem(itemID string) (*world.Item, error)

	// RelocateItem moves an item. Last writer wins; concurrent relocates
	// of one item leave it in exactly one place.
	RelocateItem(itemID string, loc world.Location) error
}

var _ Store = (*Database)(nil)
