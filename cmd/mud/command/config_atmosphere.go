package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hollowvale/mud/internal/game"
	goerrors "github.com/pixil98/go-errors"
)

type AtmosphereConfig struct {
	// StatePath is where the weather/time snapshot is persisted between
	// runs. Empty disables persistence.
	StatePath string `json:"state_path"`

	SecondsPerGameMinute float64 `json:"seconds_per_game_minute"`
	DaysPerSeason        int     `json:"days_per_season"`
}

func (c *AtmosphereConfig) validate() error {
	el := goerrors.NewErrorList()

	if c.SecondsPerGameMinute < 0 {
		el.Add(fmt.Errorf("seconds_per_game_minute must not be negative"))
	}
	if c.DaysPerSeason < 0 {
		el.Add(fmt.Errorf("days_per_season must not be negative"))
	}

	return el.Err()
}

func (c *AtmosphereConfig) calendar() game.Calendar {
	cal := game.DefaultCalendar()
	if c.SecondsPerGameMinute > 0 {
		cal.SecondsPerGameMinute = c.SecondsPerGameMinute
	}
	if c.DaysPerSeason > 0 {
		cal.DaysPerSeason = c.DaysPerSeason
	}
	return cal
}

// BuildAtmosphere restores the atmosphere from the persisted snapshot, or
// starts from defaults when there is no snapshot or it fails validation.
func (c *AtmosphereConfig) BuildAtmosphere(now time.Time) *game.Atmosphere {
	return game.NewAtmosphereFromState(c.calendar(), now, c.loadState())
}

func (c *AtmosphereConfig) loadState() *game.AtmosphereState {
	if c.StatePath == "" {
		return nil
	}

	data, err := os.ReadFile(c.StatePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		slog.Warn("reading atmosphere state, starting from defaults", "path", c.StatePath, "error", err)
		return nil
	}

	var state game.AtmosphereState
	if err := json.Unmarshal(data, &state); err != nil {
		slog.Warn("corrupt atmosphere state, starting from defaults", "path", c.StatePath, "error", err)
		return nil
	}

	return &state
}

// SaveState writes the current weather/time snapshot to the state path.
func (c *AtmosphereConfig) SaveState(atmo *game.Atmosphere) error {
	if c.StatePath == "" {
		return nil
	}

	data, err := json.MarshalIndent(atmo.State(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling atmosphere state: %w", err)
	}

	if err := os.WriteFile(c.StatePath, data, 0o644); err != nil {
		return fmt.Errorf("writing atmosphere state: %w", err)
	}
	return nil
}

// atmosphereSaver persists the atmosphere snapshot once per game minute so
// a restart picks up close to where the world left off.
type atmosphereSaver struct {
	cfg  *AtmosphereConfig
	atmo *game.Atmosphere

	lastMinutes int64
}

func (s *atmosphereSaver) Tick(ctx context.Context) error {
	state := s.atmo.State()
	if state.Minutes == s.lastMinutes {
		return nil
	}
	s.lastMinutes = state.Minutes

	if err := s.cfg.SaveState(s.atmo); err != nil {
		slog.WarnContext(ctx, "saving atmosphere state", "error", err)
	}
	return nil
}
