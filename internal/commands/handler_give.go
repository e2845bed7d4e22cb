package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/hollowvale/mud/internal/game"
)

// GiveHandlerFactory creates handlers for giving objects to other players
// or mobiles in the room.
// Targets:
//   - item (required): the object to give (from inventory)
//   - recipient (required): the player or mobile to give it to
type GiveHandlerFactory struct {
	world *game.WorldState
	pub   Publisher
}

func NewGiveHandlerFactory(world *game.WorldState, pub Publisher) *GiveHandlerFactory {
	return &GiveHandlerFactory{world: world, pub: pub}
}

func (f *GiveHandlerFactory) Spec() *HandlerSpec {
	return &HandlerSpec{
		Targets: []TargetRequirement{
			{Name: "item", Type: TargetTypeObject, Required: true},
			{Name: "recipient", Type: TargetTypePlayer | TargetTypeMobile, Required: true},
		},
	}
}

func (f *GiveHandlerFactory) ValidateConfig(config map[string]string) error {
	return nil
}

func (f *GiveHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		item := cmdCtx.Targets["item"]
		if item == nil || item.Obj == nil {
			return NewUserError("Give what?")
		}

		recipient := cmdCtx.Targets["recipient"]
		if recipient == nil {
			return NewUserError("Give to whom?")
		}

		var recipientName string
		var recipientInv *game.Inventory
		switch recipient.Type {
		case TargetTypePlayer:
			if recipient.Player.CharId == cmdCtx.CharId {
				return NewUserError("You can't give something to yourself.")
			}
			recipientName = recipient.Player.Name
			recipientInv = recipient.Player.Session.Character.Inventory
		case TargetTypeMobile:
			recipientName = recipient.Mob.Name
			recipientInv = recipient.Mob.Instance.Inventory
		default:
			return NewUserError("You can't give things to that.")
		}

		oi := item.Obj.Source.RemoveObj(item.Obj.InstanceId)
		if oi == nil {
			return NewUserError(fmt.Sprintf("You're not carrying %s.", item.Obj.Name))
		}

		if err := recipientInv.Add(oi); err != nil {
			putBack(item.Obj.Source, oi)
			var capErr *game.CapacityError
			if errors.As(err, &capErr) {
				return NewUserError(fmt.Sprintf("%s can't carry that much.", recipientName))
			}
			return err
		}

		if recipient.Type == TargetTypePlayer {
			note := fmt.Sprintf("%s gives you %s.", cmdCtx.Actor.Name, oi.Definition().Name)
			_ = f.pub.PublishToPlayer(recipient.Player.CharId, []byte(note))
		}

		zoneId, roomId := cmdCtx.Session.Location()
		msg := fmt.Sprintf("%s gives %s to %s.", cmdCtx.Actor.Name, oi.Definition().Name, recipientName)
		return f.pub.PublishToRoom(zoneId, roomId, []byte(msg))
	}, nil
}
