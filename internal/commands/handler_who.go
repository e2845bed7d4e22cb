package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hollowvale/mud/internal/game"
	"github.com/hollowvale/mud/internal/storage"
)

// WhoHandlerFactory creates handlers that list online players.
type WhoHandlerFactory struct {
	world *game.WorldState
	pub   Publisher
}

// NewWhoHandlerFactory creates a new WhoHandlerFactory.
func NewWhoHandlerFactory(world *game.WorldState, pub Publisher) *WhoHandlerFactory {
	return &WhoHandlerFactory{world: world, pub: pub}
}

func (f *WhoHandlerFactory) Spec() *HandlerSpec {
	return nil
}

func (f *WhoHandlerFactory) ValidateConfig(config map[string]string) error {
	return nil
}

func (f *WhoHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		var lines []string

		f.world.ForEachPlayer(func(charId storage.Identifier, state *game.PlayerState) {
			char := state.Character
			if char == nil {
				return
			}

			line := fmt.Sprintf("  %s %s", char.Name, char.Title)
			if flags := state.Flags(); len(flags) > 0 {
				line += fmt.Sprintf(" (%s)", strings.Join(flags, ", "))
			}
			lines = append(lines, line)
		})
		sort.Strings(lines)

		output := "Players online:\n" + strings.Join(lines, "\n")
		return f.pub.PublishToPlayer(cmdCtx.CharId, []byte(output))
	}, nil
}
