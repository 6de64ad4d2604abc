package command

import (
	"fmt"
	"strings"

	"github.com/riverwalkmud/samud/internal/logger"
	"github.com/riverwalkmud/samud/internal/world"
)

func (c *Command) executeTalk(sess Session, srv ServerInterface, npcName, keyword string) string {
	npcs, err := srv.Store().NPCsInRoom(sess.RoomID())
	if err != nil {
		return "Unable to talk"
	}

	target := world.FindNPC(npcs, npcName)
	if target == nil {
		msg := fmt.Sprintf("There's no '%s' here to talk to.", npcName)
		if len(npcs) > 0 {
			msg += fmt.Sprintf("\nAvailable NPCs: %s", strings.Join(world.NPCNames(npcs), ", "))
		}
		return msg
	}

	response := target.Respond(keyword)
	saysLine := fmt.Sprintf("%s says: \"%s\"", target.Name, response)

	observerMsg := fmt.Sprintf("%s talks to %s about %s.\n%s", sess.Name(), target.Name, keyword, saysLine)
	srv.BroadcastToRoom(sess.RoomID(), observerMsg, sess)

	logger.Always("CHAT_TALK", "player", sess.Name(), "npc", target.ID, "keyword", keyword)

	return saysLine
}
