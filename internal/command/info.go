package command

import (
	"fmt"
	"strings"
)

const helpText = `=== SAN ANTONIO MUD COMMANDS ===

🔍 EXPLORING:
  look - Show room description, exits, people, and items
  move <direction> - Move to another room
  n/s/e/w - Quick movement (north/south/east/west)
  where - Show your current location

🎒 ITEMS:
  get <item> - Pick up an item from the room
  drop <item> - Drop an item from your inventory
  inventory (inv/i) - Show what you're carrying

🗣️ NPCs:
  talk <npc> [keyword] - Talk to NPCs (try: history, food, music)

💬 COMMUNICATION:
  say <message> - Talk to people in the same room
  shout <message> - Send message to all players
  who - Show online players

⚙️ SYSTEM:
  help - Show this help
  quit - Exit the MUD

💡 TIP: Most commands work with partial names!
    Example: 'get guitar' instead of 'get a tortoiseshell guitar pick'
===============================`

func (c *Command) executeHelp() string {
	return helpText
}

func (c *Command) executeWho(srv ServerInterface) string {
	return fmt.Sprintf("Online players: %s", strings.Join(srv.OnlineNames(), ", "))
}

func (c *Command) executeWhere(sess Session, srv ServerInterface) string {
	room, err := srv.Store().GetRoom(sess.RoomID())
	if err != nil {
		return "You are in an unknown location"
	}
	return fmt.Sprintf("You are at %s", room.Name)
}

func (c *Command) executeLook(sess Session, srv ServerInterface) string {
	room, err := srv.Store().GetRoom(sess.RoomID())
	if err != nil {
		return "You are in a void..."
	}
	return renderRoom(sess, srv, room.ID)
}

// renderRoom builds the full room view: name, description, exits, players,
// NPCs, and items. Used by look and after a successful move.
func renderRoom(sess Session, srv ServerInterface, roomID string) string {
	room, err := srv.Store().GetRoom(roomID)
	if err != nil {
		return "You are in a void..."
	}

	var b strings.Builder
	b.WriteString(room.Name)
	b.WriteString("\n")
	b.WriteString(room.Description)
	b.WriteString("\n")

	exits := room.ExitNames()
	if len(exits) > 0 {
		fmt.Fprintf(&b, "Exits: %s\n", strings.Join(exits, ", "))
	} else {
		b.WriteString("No obvious exits\n")
	}

	players := srv.NamesInRoom(roomID, sess)
	if len(players) > 0 {
		fmt.Fprintf(&b, "Players here: %s\n", strings.Join(players, ", "))
	} else {
		b.WriteString("Players here: none\n")
	}

	npcs, err := srv.Store().NPCsInRoom(roomID)
	if err == nil && len(npcs) > 0 {
		b.WriteString("NPCs here:\n")
		for _, npc := range npcs {
			fmt.Fprintf(&b, "  %s - %s\n", npc.Name, npc.Description)
		}
	} else {
		b.WriteString("NPCs here: none\n")
	}

	items, err := srv.Store().ItemsInRoom(roomID)
	if err == nil && len(items) > 0 {
		b.WriteString("Items here:\n")
		for _, item := range items {
			fmt.Fprintf(&b, "  %s - %s\n", item.Name, item.Description)
		}
	} else {
		b.WriteString("Items here: none\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
