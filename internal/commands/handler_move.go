package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hollowvale/mud/internal/game"
)

// MoveHandlerFactory creates handlers that move players between rooms.
// Config:
//   - direction (required): the direction to move (north, south, east, west, up, down)
type MoveHandlerFactory struct {
	world *game.WorldState
	pub   Publisher
}

// NewMoveHandlerFactory creates a new MoveHandlerFactory with access to world state.
func NewMoveHandlerFactory(world *game.WorldState, pub Publisher) *MoveHandlerFactory {
	return &MoveHandlerFactory{world: world, pub: pub}
}

func (f *MoveHandlerFactory) Spec() *HandlerSpec {
	return &HandlerSpec{
		Config: []ConfigRequirement{
			{Name: "direction", Required: true},
		},
	}
}

func (f *MoveHandlerFactory) ValidateConfig(config map[string]string) error {
	if config["direction"] == "" {
		return fmt.Errorf("direction is required")
	}
	return nil
}

func (f *MoveHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		direction := strings.ToLower(cmdCtx.Config["direction"])
		if direction == "" {
			return fmt.Errorf("direction not set in config")
		}

		fromZone, fromRoom := cmdCtx.Session.Location()

		toRoom, err := f.world.MovePlayer(cmdCtx.CharId, direction)
		if err != nil {
			var blocked *game.BlockedError
			switch {
			case errors.As(err, &blocked):
				return NewUserError("You are carrying too much to move. Drop something first.")
			case errors.Is(err, game.ErrNotFound):
				return NewUserError(fmt.Sprintf("You cannot go %s from here.", direction))
			default:
				return err
			}
		}

		// Tell the rooms on both sides, then show the traveler where they
		// ended up.
		_ = f.pub.PublishToRoom(fromZone, fromRoom, []byte(fmt.Sprintf("%s leaves %s.", cmdCtx.Actor.Name, direction)))

		toZone, toRoomId := cmdCtx.Session.Location()
		_ = f.pub.PublishToRoom(toZone, toRoomId, []byte(fmt.Sprintf("%s arrives.", cmdCtx.Actor.Name)))

		roomDesc := toRoom.Describe(cmdCtx.Actor.Name, f.world.Atmosphere())
		return f.pub.PublishToPlayer(cmdCtx.CharId, []byte(roomDesc))
	}, nil
}
