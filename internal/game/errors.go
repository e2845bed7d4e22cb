package game

import (
	"errors"
	"fmt"
)

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrPlayerExists   = errors.New("player already exists")

	// ErrPlayerReconnected signals a session loop to exit because another
	// connection has taken over the character.
	ErrPlayerReconnected = errors.New("player reconnected")

	// ErrNotFound is returned when an item lookup or removal misses.
	ErrNotFound = errors.New("not found")

	// ErrInvalidNesting is returned when an add would place a container
	// inside itself, directly or through any chain of containers.
	ErrInvalidNesting = errors.New("invalid nesting")
)

// CapacityError is returned when adding an item would push an inventory
// past its weight limit. The add has no effect.
type CapacityError struct {
	Item     string
	Weight   float64
	Limit    float64
	Carrying float64
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s weighs %.1f, carrying %.1f of %.1f", e.Item, e.Weight, e.Carrying, e.Limit)
}

// BlockedError is returned when a player cannot change rooms because they
// are carrying more than their capacity.
type BlockedError struct {
	Carrying float64
	Limit    float64
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("movement blocked: carrying %.1f of %.1f", e.Carrying, e.Limit)
}
