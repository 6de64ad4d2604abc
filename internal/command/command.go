package command

import (
	"fmt"
	"strings"

	"github.com/riverwalkmud/samud/internal/database"
	"github.com/riverwalkmud/samud/internal/world"
)

// Session is the view of a connected player that commands operate on.
// The server package provides the production implementation; tests use a
// lightweight fake.
type Session interface {
	// Name returns the username as captured at signup.
	Name() string

	// RoomID returns the session's current room.
	RoomID() string

	// SetRoomID updates the session's current room and persists it.
	SetRoomID(roomID string) error

	// Send queues a line of output for this session.
	Send(message string)
}

// ServerInterface gives commands access to shared server state without
// importing the server package.
type ServerInterface interface {
	// Store returns the world store backing the game.
	Store() database.Store

	// BroadcastToRoom sends a message to every authenticated session in a
	// room except the given one, and reports how many sessions received it.
	BroadcastToRoom(roomID, message string, except Session) int

	// BroadcastToAll sends a message to every authenticated session,
	// including the sender.
	BroadcastToAll(message string)

	// OnlineNames lists the usernames of all authenticated sessions in
	// connection order.
	OnlineNames() []string

	// NamesInRoom lists the usernames of authenticated sessions in a room,
	// excluding the given session.
	NamesInRoom(roomID string, except Session) []string

	// CheckChat runs a proposed chat message through the server's chat
	// filter and spam tracker. It returns the message to send and true, or
	// a rejection notice and false.
	CheckChat(sess Session, message string) (string, bool)
}

// Command is a parsed player input line.
type Command struct {
	Name string
	Args []string
	Raw  string
}

// ParseCommand splits an input line into a verb and arguments. The verb is
// lowercased; arguments keep their original case. Returns nil for blank
// input.
func ParseCommand(input string) *Command {
	trimmed := strings.TrimSpace(input)
	parts := strings.Fields(trimmed)
	if len(parts) == 0 {
		return nil
	}

	return &Command{
		Name: strings.ToLower(parts[0]),
		Args: parts[1:],
		Raw:  trimmed,
	}
}

// ArgString joins the arguments back into a single string, for commands
// that take free text like say or get.
func (c *Command) ArgString() string {
	return strings.Join(c.Args, " ")
}

// Execute runs the command and returns the text to send back to the caller.
// Side effects on other sessions (room chat, observer notices) go through
// srv. The caller appends the prompt.
func (c *Command) Execute(sess Session, srv ServerInterface) string {
	switch c.Name {
	case "help":
		return c.executeHelp()
	case "who":
		return c.executeWho(srv)
	case "where":
		return c.executeWhere(sess, srv)
	case "look":
		return c.executeLook(sess, srv)
	case "move", "go":
		if len(c.Args) == 0 {
			return c.unknownCommand()
		}
		return c.executeMove(sess, srv, c.Args[0])
	case "say":
		if len(c.Args) == 0 {
			return "Usage: say <message>"
		}
		return c.executeSay(sess, srv, c.ArgString())
	case "shout":
		if len(c.Args) == 0 {
			return "Usage: shout <message>"
		}
		return c.executeShout(sess, srv, c.ArgString())
	case "talk":
		if len(c.Args) == 0 {
			return "Usage: talk <npc_name> [keyword]"
		}
		keyword := "default"
		if len(c.Args) > 1 {
			keyword = strings.Join(c.Args[1:], " ")
		}
		return c.executeTalk(sess, srv, c.Args[0], keyword)
	case "get":
		if len(c.Args) == 0 {
			return "Usage: get <item>"
		}
		return c.executeGet(sess, srv, c.ArgString())
	case "drop":
		if len(c.Args) == 0 {
			return "Usage: drop <item>"
		}
		return c.executeDrop(sess, srv, c.ArgString())
	case "inventory", "inv", "i":
		return c.executeInventory(sess, srv)
	default:
		if world.IsDirectionVerb(c.Name) {
			return c.executeMove(sess, srv, c.Name)
		}
		return c.unknownCommand()
	}
}

func (c *Command) unknownCommand() string {
	return fmt.Sprintf("Unknown command: %s\nType 'help' for available commands", c.Raw)
}
