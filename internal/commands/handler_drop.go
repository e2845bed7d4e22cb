package commands

import (
	"context"
	"fmt"

	"github.com/hollowvale/mud/internal/game"
)

// DropHandlerFactory creates handlers for dropping objects from inventory.
// Targets:
//   - target (required): the object to drop
type DropHandlerFactory struct {
	world *game.WorldState
	pub   Publisher
}

func NewDropHandlerFactory(world *game.WorldState, pub Publisher) *DropHandlerFactory {
	return &DropHandlerFactory{world: world, pub: pub}
}

func (f *DropHandlerFactory) Spec() *HandlerSpec {
	return &HandlerSpec{
		Targets: []TargetRequirement{
			{Name: "target", Type: TargetTypeObject, Required: true},
		},
	}
}

func (f *DropHandlerFactory) ValidateConfig(config map[string]string) error {
	return nil
}

func (f *DropHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		target := cmdCtx.Targets["target"]
		if target == nil || target.Obj == nil {
			return NewUserError("Drop what?")
		}

		oi := target.Obj.Source.RemoveObj(target.Obj.InstanceId)
		if oi == nil {
			return NewUserError(fmt.Sprintf("You're not carrying %s.", target.Obj.Name))
		}

		zoneId, roomId := cmdCtx.Session.Location()
		room := f.world.GetRoom(zoneId, roomId)
		if room == nil {
			putBack(target.Obj.Source, oi)
			return NewUserError("You are in an invalid location.")
		}

		// Room floors are uncapped, so this cannot refuse.
		room.AddObj(oi)

		msg := fmt.Sprintf("%s drops %s.", cmdCtx.Actor.Name, oi.Definition().Name)
		return f.pub.PublishToRoom(zoneId, roomId, []byte(msg))
	}, nil
}
