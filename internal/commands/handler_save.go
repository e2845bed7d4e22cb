package commands

import (
	"context"
	"fmt"

	"github.com/hollowvale/mud/internal/game"
	"github.com/hollowvale/mud/internal/storage"
)

// SaveHandlerFactory creates handlers that persist the player's character.
type SaveHandlerFactory struct {
	chars storage.Storer[*game.Character]
	pub   Publisher
}

func NewSaveHandlerFactory(chars storage.Storer[*game.Character], pub Publisher) *SaveHandlerFactory {
	return &SaveHandlerFactory{chars: chars, pub: pub}
}

func (f *SaveHandlerFactory) Spec() *HandlerSpec {
	return nil
}

func (f *SaveHandlerFactory) ValidateConfig(config map[string]string) error {
	return nil
}

func (f *SaveHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		if err := cmdCtx.Session.SaveCharacter(f.chars); err != nil {
			return fmt.Errorf("saving character: %w", err)
		}
		return f.pub.PublishToPlayer(cmdCtx.CharId, []byte("Character saved."))
	}, nil
}
