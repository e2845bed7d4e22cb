package player

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/hollowvale/mud/internal/commands"
	"github.com/hollowvale/mud/internal/display"
	"github.com/hollowvale/mud/internal/game"
	"github.com/hollowvale/mud/internal/messaging"
	"github.com/hollowvale/mud/internal/storage"
)

// Player drives one connected session: it pumps the connection's input
// through the command handler and relays published messages back out.
type Player struct {
	conn       io.ReadWriter
	charId     storage.Identifier
	world      *game.WorldState
	cmdHandler *commands.Handler

	msgs chan []byte
	done <-chan struct{}

	// roomSubject is the room channel this session is currently
	// subscribed to; it follows the player from room to room.
	roomSubject string
}

// Id returns the player's unique identifier (lowercase character name).
func (p *Player) Id() string {
	return string(p.charId)
}

func (p *Player) Play(ctx context.Context) error {
	inputChan := make(chan string)
	inputErrChan := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(p.conn)
		for scanner.Scan() {
			inputChan <- scanner.Text()
		}
		inputErrChan <- scanner.Err()
		close(inputChan)
	}()

	// Show the player their current room on login.
	if err := p.exec(ctx, "look"); err != nil {
		return fmt.Errorf("initial look: %w", err)
	}
	if err := p.prompt(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-p.done:
			ps := p.world.GetPlayer(p.charId)
			var msg string
			if ps != nil && ps.Linkless {
				msg = "\nDisconnected for inactivity."
			} else {
				msg = "\nAnother connection has taken over your session."
			}
			if err := p.writeLine(msg); err != nil {
				slog.Warn("writing disconnect message", "charId", p.charId, "error", err)
			}
			return game.ErrPlayerReconnected

		case msg := <-p.msgs:
			if err := p.writeLine("\n" + string(msg)); err != nil {
				return err
			}
			if err := p.prompt(); err != nil {
				return err
			}

		case line, ok := <-inputChan:
			if !ok {
				// Connection lost. Don't clean up subscriptions here; the
				// manager decides between linkless and quit.
				select {
				case err := <-inputErrChan:
					return err
				default:
					return nil
				}
			}

			line = strings.TrimSpace(line)
			if line == "" {
				if err := p.prompt(); err != nil {
					return err
				}
				continue
			}

			parts := strings.Fields(line)
			if err := p.exec(ctx, parts[0], parts[1:]...); err != nil {
				return fmt.Errorf("command execution: %w", err)
			}

			state := p.world.GetPlayer(p.charId)
			if state == nil {
				return fmt.Errorf("player state not found for %s", p.charId)
			}
			if state.Quit {
				if err := p.writeLine("Goodbye!"); err != nil {
					slog.Warn("writing goodbye", "charId", p.charId, "error", err)
				}
				return nil
			}

			if err := p.prompt(); err != nil {
				return err
			}
		}
	}
}

// exec runs one command, writing user errors back to the connection and
// keeping the room subscription in step with the player's location.
func (p *Player) exec(ctx context.Context, cmdName string, args ...string) error {
	err := p.cmdHandler.Exec(ctx, p.charId, cmdName, args...)
	if err != nil {
		var userErr *commands.UserError
		if !errors.As(err, &userErr) {
			return err
		}
		if err := p.writeLine(userErr.Message); err != nil {
			return err
		}
	}
	return p.syncRoomSubscription()
}

// syncRoomSubscription moves the session's room subscription whenever a
// command changed the player's location.
func (p *Player) syncRoomSubscription() error {
	ps := p.world.GetPlayer(p.charId)
	if ps == nil {
		return nil
	}

	subject := messaging.RoomSubject(ps.Location())
	if subject == p.roomSubject {
		return nil
	}

	if p.roomSubject != "" {
		ps.Unsubscribe(p.roomSubject)
	}
	if err := ps.Subscribe(subject); err != nil {
		return err
	}
	p.roomSubject = subject
	return nil
}

func (p *Player) prompt() error {
	_, err := p.conn.Write([]byte("> "))
	return err
}

func (p *Player) writeLine(msg string) error {
	_, err := p.conn.Write([]byte(display.Wrap(msg) + "\n\n"))
	return err
}
