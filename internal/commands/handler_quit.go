package commands

import (
	"context"
	"fmt"

	"github.com/hollowvale/mud/internal/game"
	"github.com/hollowvale/mud/internal/storage"
)

// QuitHandlerFactory creates handlers that save and quit.
type QuitHandlerFactory struct {
	chars storage.Storer[*game.Character]
}

func NewQuitHandlerFactory(chars storage.Storer[*game.Character]) *QuitHandlerFactory {
	return &QuitHandlerFactory{chars: chars}
}

func (f *QuitHandlerFactory) Spec() *HandlerSpec {
	return nil
}

func (f *QuitHandlerFactory) ValidateConfig(config map[string]string) error {
	return nil
}

func (f *QuitHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		if err := cmdCtx.Session.SaveCharacter(f.chars); err != nil {
			return fmt.Errorf("saving character on quit: %w", err)
		}

		cmdCtx.Session.Quit = true
		return nil
	}, nil
}
