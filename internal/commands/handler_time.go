package commands

import (
	"context"
	"fmt"

	"github.com/hollowvale/mud/internal/game"
)

// TimeHandlerFactory creates handlers that report the game clock and
// calendar.
type TimeHandlerFactory struct {
	world *game.WorldState
	pub   Publisher
}

func NewTimeHandlerFactory(world *game.WorldState, pub Publisher) *TimeHandlerFactory {
	return &TimeHandlerFactory{world: world, pub: pub}
}

func (f *TimeHandlerFactory) Spec() *HandlerSpec {
	return nil
}

func (f *TimeHandlerFactory) ValidateConfig(config map[string]string) error {
	return nil
}

func (f *TimeHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		atmo := f.world.Atmosphere()
		msg := fmt.Sprintf("It is %s on day %d of %s, year %d. It is %s.",
			atmo.Clock(), atmo.DayOfYear(), atmo.Season(), atmo.Year(), atmo.TimeOfDay())
		return f.pub.PublishToPlayer(cmdCtx.CharId, []byte(msg))
	}, nil
}
