package command

import (
	"fmt"
	"strings"

	"github.com/riverwalkmud/samud/internal/logger"
	"github.com/riverwalkmud/samud/internal/world"
)

func (c *Command) executeGet(sess Session, srv ServerInterface, itemName string) string {
	items, err := srv.Store().ItemsInRoom(sess.RoomID())
	if err != nil {
		return "Unable to get item"
	}

	target := world.FindItem(items, itemName)
	if target == nil {
		msg := fmt.Sprintf("There's no '%s' here to get.", itemName)
		if len(items) > 0 {
			msg += fmt.Sprintf("\nAvailable items: %s", strings.Join(world.ItemNames(items), ", "))
		}
		return msg
	}

	if err := srv.Store().RelocateItem(target.ID, world.CarriedLocation(sess.Name())); err != nil {
		logger.Error("Failed to relocate item", "item", target.ID, "player", sess.Name(), "error", err)
		return "You can't get that item"
	}

	srv.BroadcastToRoom(sess.RoomID(), fmt.Sprintf("%s gets %s.", sess.Name(), target.Name), sess)
	return fmt.Sprintf("You get %s.", target.Name)
}

func (c *Command) executeDrop(sess Session, srv ServerInterface, itemName string) string {
	carried, err := srv.Store().ItemsCarriedBy(sess.Name())
	if err != nil {
		return "Unable to drop item"
	}

	target := world.FindItem(carried, itemName)
	if target == nil {
		msg := fmt.Sprintf("You don't have '%s' to drop.", itemName)
		if len(carried) > 0 {
			msg += fmt.Sprintf("\nYou're carrying: %s", strings.Join(world.ItemNames(carried), ", "))
		} else {
			msg += "\nYou're not carrying anything."
		}
		return msg
	}

	if err := srv.Store().RelocateItem(target.ID, world.RoomLocation(sess.RoomID())); err != nil {
		logger.Error("Failed to relocate item", "item", target.ID, "player", sess.Name(), "error", err)
		return "You can't drop that item"
	}

	srv.BroadcastToRoom(sess.RoomID(), fmt.Sprintf("%s drops %s.", sess.Name(), target.Name), sess)
	return fmt.Sprintf("You drop %s.", target.Name)
}

func (c *Command) executeInventory(sess Session, srv ServerInterface) string {
	carried, err := srv.Store().ItemsCarriedBy(sess.Name())
	if err != nil || len(carried) == 0 {
		return "You're not carrying anything."
	}

	var b strings.Builder
	b.WriteString("You are carrying:")
	for _, item := range carried {
		fmt.Fprintf(&b, "\n  %s - %s", item.Name, item.Description)
	}
	return b.String()
}
