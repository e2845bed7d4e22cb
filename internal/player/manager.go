package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/hollowvale/mud/internal/commands"
	"github.com/hollowvale/mud/internal/game"
	"github.com/hollowvale/mud/internal/messaging"
	"github.com/hollowvale/mud/internal/storage"
)

const (
	// DefaultIdleTimeout is how long a player may sit silent before the
	// session is dropped to linkless.
	DefaultIdleTimeout = 30 * time.Minute

	// DefaultLinklessTimeout is how long a linkless character stays in the
	// world before being saved and removed.
	DefaultLinklessTimeout = 5 * time.Minute
)

// PlayerManager runs login and the per-connection session loop, and sweeps
// idle and linkless players on the shared tick.
type PlayerManager struct {
	world      *game.WorldState
	cmdHandler *commands.Handler
	chars      storage.Storer[*game.Character]
	loginFlow  *loginFlow

	startZone storage.Identifier
	startRoom storage.Identifier

	idleTimeout     time.Duration
	linklessTimeout time.Duration
}

// ManagerOpt configures a PlayerManager.
type ManagerOpt func(*PlayerManager)

// WithIdleTimeout overrides how long players may idle before going linkless.
func WithIdleTimeout(d time.Duration) ManagerOpt {
	return func(m *PlayerManager) { m.idleTimeout = d }
}

// WithLinklessTimeout overrides how long linkless players linger.
func WithLinklessTimeout(d time.Duration) ManagerOpt {
	return func(m *PlayerManager) { m.linklessTimeout = d }
}

func NewPlayerManager(world *game.WorldState, cmd *commands.Handler, chars storage.Storer[*game.Character], races *storage.SelectableStorer[*game.Race], startZone, startRoom storage.Identifier, opts ...ManagerOpt) *PlayerManager {
	m := &PlayerManager{
		world:           world,
		cmdHandler:      cmd,
		chars:           chars,
		loginFlow:       &loginFlow{chars: chars, races: races},
		startZone:       startZone,
		startRoom:       startRoom,
		idleTimeout:     DefaultIdleTimeout,
		linklessTimeout: DefaultLinklessTimeout,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RunSession owns one connection from login to disconnect.
func (m *PlayerManager) RunSession(ctx context.Context, conn io.ReadWriter) error {
	charId, char, err := m.loginFlow.Run(conn)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	msgs := make(chan []byte, 32)

	ps := m.world.GetPlayer(charId)
	if ps != nil {
		// The character is already in the world (linkless or a second
		// connection). Evict the old session and take over its state.
		ps.Kick()
		ps.Reattach(msgs)
	} else {
		if err := char.Resolve(m.world.Dictionary()); err != nil {
			return fmt.Errorf("resolving character %q: %w", charId, err)
		}

		zoneId, roomId := m.spawnLocation(char)
		if err := m.world.AddPlayer(charId, char, msgs, zoneId, roomId); err != nil {
			return fmt.Errorf("adding player %q: %w", charId, err)
		}
		ps = m.world.GetPlayer(charId)
	}

	if err := ps.Subscribe(messaging.PlayerSubject(charId)); err != nil {
		return fmt.Errorf("subscribing player channel: %w", err)
	}

	p := &Player{
		conn:       conn,
		charId:     charId,
		world:      m.world,
		cmdHandler: m.cmdHandler,
		msgs:       msgs,
		done:       ps.Done(),
	}

	err = p.Play(ctx)
	switch {
	case errors.Is(err, game.ErrPlayerReconnected):
		// Another session owns the state now; nothing to clean up.
		return nil

	case err != nil:
		// Connection-level failure: keep the character in the world as
		// linkless so a reconnect can pick it up.
		ps.MarkLinkless()
		return err
	}

	if ps.Quit {
		// The quit handler already saved; take the character out of the world.
		ps.UnsubscribeAll()
		if err := m.world.RemovePlayer(charId); err != nil {
			return fmt.Errorf("removing player %q: %w", charId, err)
		}
		return nil
	}

	// Clean EOF without quit: the link dropped.
	ps.MarkLinkless()
	return nil
}

// spawnLocation picks where a character enters the world: their last saved
// location when it still exists, the configured start room otherwise.
func (m *PlayerManager) spawnLocation(char *game.Character) (storage.Identifier, storage.Identifier) {
	if char.LastZone != "" && char.LastRoom != "" {
		if m.world.GetRoom(char.LastZone, char.LastRoom) != nil {
			return char.LastZone, char.LastRoom
		}
	}
	return m.startZone, m.startRoom
}

// Tick sweeps sessions: idle players go linkless, and linkless players who
// never came back are saved and removed.
func (m *PlayerManager) Tick(ctx context.Context) error {
	now := time.Now()

	var toLinkless, toRemove []storage.Identifier
	m.world.ForEachPlayer(func(charId storage.Identifier, ps *game.PlayerState) {
		if ps.Linkless {
			if now.Sub(ps.LinklessAt) > m.linklessTimeout {
				toRemove = append(toRemove, charId)
			}
			return
		}
		if now.Sub(ps.LastActivity) > m.idleTimeout {
			toLinkless = append(toLinkless, charId)
		}
	})

	for _, charId := range toLinkless {
		ps := m.world.GetPlayer(charId)
		if ps == nil {
			continue
		}
		slog.InfoContext(ctx, "player idle, going linkless", "charId", charId)
		ps.MarkLinkless()
		ps.Kick()
	}

	for _, charId := range toRemove {
		ps := m.world.GetPlayer(charId)
		if ps == nil {
			continue
		}
		slog.InfoContext(ctx, "removing linkless player", "charId", charId)
		if err := ps.SaveCharacter(m.chars); err != nil {
			slog.WarnContext(ctx, "saving linkless character", "charId", charId, "error", err)
		}
		if err := m.world.RemovePlayer(charId); err != nil {
			slog.WarnContext(ctx, "removing linkless player", "charId", charId, "error", err)
		}
	}

	return nil
}
