package game

import (
	"fmt"
	"strings"

	"github.com/hollowvale/mud/internal/storage"
	"github.com/pixil98/go-errors"
)

// Actor holds template properties shared between characters and mobiles.
type Actor struct {
	Gender Gender             `json:"gender,omitempty"`
	Race   storage.Identifier `json:"race,omitempty"`
	Level  int                `json:"level,omitempty"`

	// MaxCarryWeight caps the actor's top-level inventory weight.
	MaxCarryWeight float64 `json:"max_carry_weight,omitempty"`
}

// Pronouns resolves the actor's pronoun set from its gender.
func (a *Actor) Pronouns() Pronouns {
	return PronounsFor(a.Gender)
}

// Resolve checks foreign keys against the dictionary.
func (a *Actor) Resolve(dict *Dictionary) error {
	el := errors.NewErrorList()
	if a.Race != "" && dict.Races.Get(string(a.Race)) == nil {
		el.Add(fmt.Errorf("unknown race %q", a.Race))
	}
	return el.Err()
}

func (a *Actor) validate() error {
	el := errors.NewErrorList()
	el.Add(a.Gender.Validate())
	if a.MaxCarryWeight < 0 {
		el.Add(fmt.Errorf("max_carry_weight cannot be negative"))
	}
	return el.Err()
}

// ActorInstance holds the runtime state shared by player characters and
// spawned mobiles: what they carry, how they describe themselves, and what
// the weather has done to them.
type ActorInstance struct {
	Inventory *Inventory      `json:"inventory,omitempty"`
	UserDesc  string          `json:"user_desc,omitempty"`
	Exposure  *ExposureStatus `json:"exposure,omitempty"`
}

// NewActorInstance creates runtime state for an actor with the given carry cap.
func NewActorInstance(maxCarryWeight float64) ActorInstance {
	return ActorInstance{
		Inventory: NewInventory(maxCarryWeight),
		Exposure:  NewExposureStatus(),
	}
}

// SetUserDesc stores a self-description fragment. Authors are told to write
// fragments ("a mighty warrior..."), so a leading "is", "are", or "am" is
// stripped; render sites prepend the pronoun and copula themselves.
func (ai *ActorInstance) SetUserDesc(desc string) {
	desc = strings.TrimSpace(desc)
	lower := strings.ToLower(desc)
	for _, prefix := range []string{"is ", "are ", "am "} {
		if strings.HasPrefix(lower, prefix) {
			desc = strings.TrimSpace(desc[len(prefix):])
			break
		}
	}
	ai.UserDesc = desc
}

// Overburdened reports whether the actor is carrying more than its cap and
// therefore cannot change rooms.
func (ai *ActorInstance) Overburdened() bool {
	return ai.Inventory != nil && ai.Inventory.MaxWeight > 0 &&
		ai.Inventory.Weight() > ai.Inventory.MaxWeight
}

// ensureState backfills zero-value fields after a load.
func (ai *ActorInstance) ensureState(maxCarryWeight float64) {
	if ai.Inventory == nil {
		ai.Inventory = NewInventory(maxCarryWeight)
	} else {
		ai.Inventory.MaxWeight = maxCarryWeight
		ai.Inventory.relink()
	}
	if ai.Exposure == nil {
		ai.Exposure = NewExposureStatus()
	}
}
