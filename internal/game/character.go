package game

import (
	"encoding/json"
	"strings"

	"github.com/hollowvale/mud/internal/storage"
)

// Character represents a player character in the game.
type Character struct {
	// Name is the character's display name
	Name string `json:"name"`

	// Password is the bcrypt-hashed login credential
	Password string `json:"password"`

	// Title is displayed after the character's name (e.g., "Bob the Brave")
	Title string `json:"title,omitempty"`

	// Admin grants access to administrative commands like setweather
	Admin bool `json:"admin,omitempty"`

	// Last known location, saved on quit/save for restoring on login
	LastZone storage.Identifier `json:"last_zone,omitempty"`
	LastRoom storage.Identifier `json:"last_room,omitempty"`

	Actor
	ActorInstance
}

func (c *Character) UnmarshalJSON(b []byte) error {
	type Alias Character
	if err := json.Unmarshal(b, (*Alias)(c)); err != nil {
		return err
	}
	c.ensureState(c.MaxCarryWeight)
	return nil
}

func NewCharacter(name string, pass string) *Character {
	return &Character{
		Name:     name,
		Password: pass,
		Title:    "the Newcomer",
		Actor: Actor{
			Gender:         GenderNonbinary,
			MaxCarryWeight: 50,
		},
		ActorInstance: NewActorInstance(50),
	}
}

// MatchName returns true if name matches this character's name (case-insensitive).
func (c *Character) MatchName(name string) bool {
	return strings.EqualFold(c.Name, name)
}

// Resolve resolves all foreign keys on the character from the dictionary
// and rebuilds the inventory's runtime links.
func (c *Character) Resolve(dict *Dictionary) error {
	if err := c.Actor.Resolve(dict); err != nil {
		return err
	}

	c.ensureState(c.MaxCarryWeight)
	for _, oi := range c.Inventory.Objs {
		if err := oi.Resolve(dict.Objects); err != nil {
			return err
		}
	}
	return nil
}

// Validate a character definition.
func (c *Character) Validate() error {
	return c.Actor.validate()
}
