package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/hollowvale/mud/internal/game"
)

// GetHandlerFactory creates handlers for picking up objects, from the
// room floor or out of a carried container.
// Targets:
//   - target (required): the object to pick up
//   - container (optional): the container to get it from (via scope_target)
type GetHandlerFactory struct {
	world *game.WorldState
	pub   Publisher
}

func NewGetHandlerFactory(world *game.WorldState, pub Publisher) *GetHandlerFactory {
	return &GetHandlerFactory{world: world, pub: pub}
}

func (f *GetHandlerFactory) Spec() *HandlerSpec {
	return &HandlerSpec{
		Targets: []TargetRequirement{
			{Name: "container", Type: TargetTypeObject, Required: false},
			{Name: "target", Type: TargetTypeObject, Required: true},
		},
	}
}

func (f *GetHandlerFactory) ValidateConfig(config map[string]string) error {
	return nil
}

func (f *GetHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		target := cmdCtx.Targets["target"]
		if target == nil || target.Obj == nil {
			return NewUserError("Get what?")
		}
		if target.Obj.Source == nil {
			return NewUserError(fmt.Sprintf("You can't pick up %s.", target.Obj.Name))
		}

		oi := target.Obj.Source.RemoveObj(target.Obj.InstanceId)
		if oi == nil {
			return NewUserError(fmt.Sprintf("You don't see %s here.", target.Obj.Name))
		}

		// Adding can refuse on weight; the item goes straight back where
		// it came from so a failed get never loses it.
		if err := cmdCtx.Actor.Inventory.Add(oi); err != nil {
			putBack(target.Obj.Source, oi)
			var capErr *game.CapacityError
			if errors.As(err, &capErr) {
				return NewUserError(fmt.Sprintf("You can't carry that much more weight (carrying %.1f of %.1f).", capErr.Carrying, capErr.Limit))
			}
			return err
		}

		zoneId, roomId := cmdCtx.Session.Location()
		msg := fmt.Sprintf("%s picks up %s.", cmdCtx.Actor.Name, oi.Definition().Name)
		return f.pub.PublishToRoom(zoneId, roomId, []byte(msg))
	}, nil
}

// putBack returns an item to its source after a failed transfer.
func putBack(source ObjectRemover, oi *game.ObjectInstance) {
	if holder, ok := source.(ObjectHolder); ok {
		holder.AddObj(oi)
	}
}
