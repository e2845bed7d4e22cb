package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/hollowvale/mud/internal/game"
	"github.com/hollowvale/mud/internal/text"
)

// PutHandlerFactory creates handlers for putting objects into containers.
// Targets:
//   - target (required): the object to put (from inventory)
//   - container (required): the container to put it in (inventory or room)
type PutHandlerFactory struct {
	world *game.WorldState
	pub   Publisher
}

func NewPutHandlerFactory(world *game.WorldState, pub Publisher) *PutHandlerFactory {
	return &PutHandlerFactory{world: world, pub: pub}
}

func (f *PutHandlerFactory) Spec() *HandlerSpec {
	return &HandlerSpec{
		Targets: []TargetRequirement{
			{Name: "target", Type: TargetTypeObject, Required: true},
			{Name: "container", Type: TargetTypeObject, Required: true},
		},
	}
}

func (f *PutHandlerFactory) ValidateConfig(config map[string]string) error {
	return nil
}

func (f *PutHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		target := cmdCtx.Targets["target"]
		if target == nil || target.Obj == nil {
			return NewUserError("Put what?")
		}

		container := cmdCtx.Targets["container"]
		if container == nil || container.Obj == nil {
			return NewUserError("Put it in what?")
		}

		containerDef := container.Obj.Instance.Definition()
		if !containerDef.HasFlag(game.ObjectFlagContainer) {
			return NewUserError(fmt.Sprintf("%s is not a container.", text.Capitalize(container.Obj.Name)))
		}

		oi := target.Obj.Source.RemoveObj(target.Obj.InstanceId)
		if oi == nil {
			return NewUserError(fmt.Sprintf("You're not carrying %s.", target.Obj.Name))
		}

		if err := container.Obj.Instance.Contents.Add(oi); err != nil {
			putBack(target.Obj.Source, oi)
			var capErr *game.CapacityError
			switch {
			case errors.As(err, &capErr):
				return NewUserError(fmt.Sprintf("The %s can't hold that much.", containerDef.Name))
			case errors.Is(err, game.ErrInvalidNesting):
				return NewUserError(fmt.Sprintf("You can't put %s inside itself.", text.WithArticle(oi.Definition().Name)))
			default:
				return err
			}
		}

		zoneId, roomId := cmdCtx.Session.Location()
		msg := fmt.Sprintf("%s puts %s in %s.", cmdCtx.Actor.Name, oi.Definition().Name, containerDef.Name)
		return f.pub.PublishToRoom(zoneId, roomId, []byte(msg))
	}, nil
}
