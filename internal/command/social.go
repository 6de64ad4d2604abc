package command

import (
	"fmt"

	"github.com/riverwalkmud/samud/internal/logger"
)

func (c *Command) executeSay(sess Session, srv ServerInterface, message string) string {
	message, ok := srv.CheckChat(sess, message)
	if !ok {
		return message
	}

	chatMsg := fmt.Sprintf("[Room] %s: %s", sess.Name(), message)
	notified := srv.BroadcastToRoom(sess.RoomID(), chatMsg, sess)

	logger.Always("CHAT_SAY", "player", sess.Name(), "room", sess.RoomID(), "message", message)

	if notified == 0 {
		return chatMsg + "\n(No one else is here to hear you)"
	}
	return chatMsg
}

func (c *Command) executeShout(sess Session, srv ServerInterface, message string) string {
	message, ok := srv.CheckChat(sess, message)
	if !ok {
		return message
	}

	srv.BroadcastToAll(fmt.Sprintf("[Global] %s: %s", sess.Name(), message))

	logger.Always("CHAT_SHOUT", "player", sess.Name(), "message", message)

	// The sender receives the global message like everyone else, so there
	// is no separate confirmation line.
	return ""
}
