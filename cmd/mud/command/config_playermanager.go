package command

import (
	"fmt"
	"time"

	"github.com/hollowvale/mud/internal/commands"
	"github.com/hollowvale/mud/internal/game"
	"github.com/hollowvale/mud/internal/player"
	"github.com/hollowvale/mud/internal/storage"
	"github.com/pixil98/go-errors"
)

type PlayerManagerConfig struct {
	// DefaultZone and DefaultRoom are where characters without a valid
	// saved location enter the world.
	DefaultZone string `json:"default_zone"`
	DefaultRoom string `json:"default_room"`

	IdleTimeout     string `json:"idle_timeout"`
	LinklessTimeout string `json:"linkless_timeout"`
}

func (c *PlayerManagerConfig) validate() error {
	el := errors.NewErrorList()

	if c.DefaultZone == "" {
		el.Add(fmt.Errorf("default_zone is required"))
	}
	if c.DefaultRoom == "" {
		el.Add(fmt.Errorf("default_room is required"))
	}
	if c.IdleTimeout != "" {
		if _, err := time.ParseDuration(c.IdleTimeout); err != nil {
			el.Add(fmt.Errorf("parsing idle_timeout: %w", err))
		}
	}
	if c.LinklessTimeout != "" {
		if _, err := time.ParseDuration(c.LinklessTimeout); err != nil {
			el.Add(fmt.Errorf("parsing linkless_timeout: %w", err))
		}
	}

	return el.Err()
}

func (c *PlayerManagerConfig) BuildPlayerManager(
	world *game.WorldState,
	cmdHandler *commands.Handler,
	chars storage.Storer[*game.Character],
	races *storage.SelectableStorer[*game.Race],
) *player.PlayerManager {
	var opts []player.ManagerOpt
	if c.IdleTimeout != "" {
		if d, err := time.ParseDuration(c.IdleTimeout); err == nil {
			opts = append(opts, player.WithIdleTimeout(d))
		}
	}
	if c.LinklessTimeout != "" {
		if d, err := time.ParseDuration(c.LinklessTimeout); err == nil {
			opts = append(opts, player.WithLinklessTimeout(d))
		}
	}

	return player.NewPlayerManager(
		world,
		cmdHandler,
		chars,
		races,
		storage.Identifier(c.DefaultZone),
		storage.Identifier(c.DefaultRoom),
		opts...,
	)
}
