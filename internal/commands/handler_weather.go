package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/hollowvale/mud/internal/game"
)

// WeatherHandlerFactory creates handlers that report the current weather.
// Sheltered rooms only reveal what filters in from outside.
type WeatherHandlerFactory struct {
	world *game.WorldState
	pub   Publisher
}

func NewWeatherHandlerFactory(world *game.WorldState, pub Publisher) *WeatherHandlerFactory {
	return &WeatherHandlerFactory{world: world, pub: pub}
}

func (f *WeatherHandlerFactory) Spec() *HandlerSpec {
	return nil
}

func (f *WeatherHandlerFactory) ValidateConfig(config map[string]string) error {
	return nil
}

func (f *WeatherHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		zoneId, roomId := cmdCtx.Session.Location()
		room := f.world.GetRoom(zoneId, roomId)
		if room == nil {
			return NewUserError("You are in an invalid location.")
		}

		atmo := f.world.Atmosphere()
		lines := []string{atmo.AmbientSentence(room.Outdoor())}
		if room.Outdoor() {
			w := atmo.Weather()
			if w.Type != game.WeatherClear {
				lines = append(lines, fmt.Sprintf("The %s is %s.", w.Type, w.Intensity))
			}
		}

		return f.pub.PublishToPlayer(cmdCtx.CharId, []byte(strings.Join(lines, "\n")))
	}, nil
}
