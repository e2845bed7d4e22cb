package commands

import (
	"context"
	"fmt"

	"github.com/hollowvale/mud/internal/game"
)

// SetWeatherHandlerFactory creates the administrative weather override.
// The change lands on the one authoritative atmosphere, so every room
// rendered after this call already shows the new sky.
// Inputs:
//   - setting (required): a weather type, or "lock"/"unlock"
//   - intensity (optional): light, moderate, or heavy (defaults to moderate)
type SetWeatherHandlerFactory struct {
	world *game.WorldState
	pub   Publisher
}

func NewSetWeatherHandlerFactory(world *game.WorldState, pub Publisher) *SetWeatherHandlerFactory {
	return &SetWeatherHandlerFactory{world: world, pub: pub}
}

func (f *SetWeatherHandlerFactory) Spec() *HandlerSpec {
	return nil
}

func (f *SetWeatherHandlerFactory) ValidateConfig(config map[string]string) error {
	return nil
}

func (f *SetWeatherHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		if !cmdCtx.Actor.Admin {
			return NewUserError("You don't have permission to do that.")
		}

		setting, _ := cmdCtx.Inputs["setting"].(string)
		atmo := f.world.Atmosphere()

		switch setting {
		case "":
			return NewUserError("Set the weather to what?")
		case "lock":
			atmo.Lock()
			return f.pub.PublishToPlayer(cmdCtx.CharId, []byte("Weather locked; it will hold until unlocked."))
		case "unlock":
			atmo.Unlock()
			return f.pub.PublishToPlayer(cmdCtx.CharId, []byte("Weather unlocked; natural shifts resume."))
		}

		wt, err := game.ParseWeatherType(setting)
		if err != nil {
			return NewUserError(fmt.Sprintf("Unknown weather type %q.", setting))
		}

		in := game.IntensityNone
		if raw, _ := cmdCtx.Inputs["intensity"].(string); raw != "" {
			in, err = game.ParseIntensity(raw)
			if err != nil {
				return NewUserError(fmt.Sprintf("Unknown intensity %q.", raw))
			}
		}

		atmo.SetWeather(wt, in, false)

		w := atmo.Weather()
		var confirm string
		if w.Type == game.WeatherClear {
			confirm = "The weather is now clear."
		} else {
			confirm = fmt.Sprintf("The weather is now %s %s.", w.Intensity, w.Type)
		}
		return f.pub.PublishToPlayer(cmdCtx.CharId, []byte(confirm))
	}, nil
}
