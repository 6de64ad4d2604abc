package world

// LocationType discriminates where an item currently is.
type LocationType string

const (
	// LocationRoom means the item lies in a room.
	LocationRoom LocationType = "room"
	// LocationPlayer means the item is carried by an account.
	LocationPlayer LocationType = "player"
)

// Location is a tagged union: an item is either in a room or carried by an
// account, never both. ID is a room ID or a username depending on Type.
type Location struct {
	Type LocationType
	ID   string
}

// RoomLocation builds a Location placing an item in a room.
func RoomLocation(roomID string) Location {
	return Location{Type: LocationRoom, ID: roomID}
}

// CarriedLocation builds a Location placing an item in an account's
// inventory.
func CarriedLocation(username string) Location {
	return Location{Type: LocationPlayer, ID: username}
}

// Item is a portable object. Identity and text are immutable after load;
// only Location changes, through the store's relocate operation.
type Item struct {
	ID          string
	Name        string
	Description string
	Location    Location
}
