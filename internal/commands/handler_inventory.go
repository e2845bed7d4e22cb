package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/hollowvale/mud/internal/game"
	"github.com/hollowvale/mud/internal/text"
)

// InventoryHandlerFactory creates handlers that list the player's own
// inventory: held items first, then everything else grouped by kind, with
// the carried weight against the cap.
type InventoryHandlerFactory struct {
	pub Publisher
}

// NewInventoryHandlerFactory creates a new InventoryHandlerFactory.
func NewInventoryHandlerFactory(pub Publisher) *InventoryHandlerFactory {
	return &InventoryHandlerFactory{pub: pub}
}

func (f *InventoryHandlerFactory) Spec() *HandlerSpec {
	return nil
}

func (f *InventoryHandlerFactory) ValidateConfig(config map[string]string) error {
	return nil
}

func (f *InventoryHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		inv := cmdCtx.Actor.Inventory

		var held, carried []string
		if inv != nil {
			for _, group := range inv.Group() {
				if group.Object.HasFlag(game.ObjectFlagHeld) {
					for i := 0; i < group.Count; i++ {
						held = append(held, "  "+text.WithArticle(group.Object.Name))
					}
					continue
				}
				if group.Count > 1 && group.Object.Plural != "" {
					carried = append(carried, "  "+text.NumberWord(group.Count)+" "+group.Object.Plural)
				} else {
					carried = append(carried, "  "+text.CountedName(group.Object.Name, group.Count))
				}
			}
		}

		var lines []string
		if len(held) > 0 {
			lines = append(lines, "You are holding:")
			lines = append(lines, held...)
		}
		lines = append(lines, "You are carrying:")
		if len(carried) == 0 {
			lines = append(lines, "  Nothing")
		} else {
			lines = append(lines, carried...)
		}

		if inv != nil && inv.MaxWeight > 0 {
			lines = append(lines, fmt.Sprintf("Weight: %.1f/%.1f", inv.Weight(), inv.MaxWeight))
		}

		return f.pub.PublishToPlayer(cmdCtx.CharId, []byte(strings.Join(lines, "\n")))
	}, nil
}
