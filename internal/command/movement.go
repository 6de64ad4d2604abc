package command

import (
	"fmt"
	"strings"

	"github.com/riverwalkmud/samud/internal/logger"
	"github.com/riverwalkmud/samud/internal/world"
)

func (c *Command) executeMove(sess Session, srv ServerInterface, direction string) string {
	direction = world.NormalizeDirection(direction)

	room, err := srv.Store().GetRoom(sess.RoomID())
	if err != nil {
		return "You are lost in the void"
	}

	destID, ok := room.Destination(direction)
	if !ok {
		msg := fmt.Sprintf("You can't go %s from here.", direction)
		if exits := room.ExitNames(); len(exits) > 0 {
			msg += fmt.Sprintf("\nAvailable exits: %s", strings.Join(exits, ", "))
		}
		return msg
	}

	if _, err := srv.Store().GetRoom(destID); err != nil {
		logger.Warning("Exit points at missing room", "from", room.ID, "direction", direction, "to", destID)
		return "That way leads nowhere"
	}

	if err := sess.SetRoomID(destID); err != nil {
		logger.Error("Failed to persist room change", "player", sess.Name(), "room", destID, "error", err)
		return "Something went wrong trying to move"
	}

	return fmt.Sprintf("You head %s.\n\n%s", direction, renderRoom(sess, srv, destID))
}
