package game

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hollowvale/mud/internal/storage"
	"github.com/pixil98/go-errors"
)

// Mobile defines a type of mobile entity loaded from asset files.
// Multiple instances can be spawned from one definition.
// Mobile IDs follow the convention <zone>-<name> (e.g., "hollowvale-mara").
type Mobile struct {
	// Aliases are keywords players can use to target this mobile (e.g., ["mara", "herbalist"])
	Aliases []string `json:"aliases"`

	// Name is the mobile's display name (e.g., "Mara")
	Name string `json:"name"`

	// LongDesc is shown when the mobile is in its default position in a room
	// (e.g., "Mara the herbalist sorts dried leaves at her stall.")
	LongDesc string `json:"long_desc"`

	// DetailedDesc is shown when a player looks at the mobile
	DetailedDesc string `json:"detailed_desc"`

	// Inventory is the mobile's starting inventory, containers included
	Inventory []ObjectSpawn `json:"inventory,omitempty"`

	Actor
}

// Resolve resolves foreign keys from the dictionary.
func (m *Mobile) Resolve(dict *Dictionary) error {
	el := errors.NewErrorList()
	for i := range m.Inventory {
		el.Add(m.Inventory[i].Resolve(dict.Objects))
	}
	el.Add(m.Actor.Resolve(dict))
	return el.Err()
}

// MatchName returns true if name matches the mobile's name or any alias
// (case-insensitive).
func (m *Mobile) MatchName(name string) bool {
	if strings.EqualFold(m.Name, name) {
		return true
	}
	for _, alias := range m.Aliases {
		if strings.EqualFold(alias, name) {
			return true
		}
	}
	return false
}

// Validate satisfies storage.ValidatingSpec
func (m *Mobile) Validate() error {
	el := errors.NewErrorList()
	if len(m.Aliases) < 1 {
		el.Add(fmt.Errorf("mobile alias is required"))
	}
	if m.Name == "" {
		el.Add(fmt.Errorf("mobile name is required"))
	}
	el.Add(m.Actor.validate())
	return el.Err()
}

// MobileInstance represents a single spawned instance of a Mobile definition.
// Location is tracked by the containing room instance.
type MobileInstance struct {
	InstanceId string
	Mobile     storage.SmartIdentifier[*Mobile]

	ActorInstance
}

// NewMobileInstance spawns a live mobile from its definition. The starting
// inventory is cloned completely, nested container contents included; a
// spawn that copied only the top level would quietly strip every satchel
// and purse in the world.
func NewMobileInstance(mob storage.SmartIdentifier[*Mobile]) (*MobileInstance, error) {
	def := mob.Get()
	if def == nil {
		return nil, fmt.Errorf("unable to spawn instance from unresolved mobile %q", mob.Id())
	}

	mi := &MobileInstance{
		InstanceId:    uuid.NewString(),
		Mobile:        mob,
		ActorInstance: NewActorInstance(def.MaxCarryWeight),
	}
	for i := range def.Inventory {
		oi, err := def.Inventory[i].Spawn()
		if err != nil {
			return nil, fmt.Errorf("spawning inventory for mobile %q: %w", mob.Id(), err)
		}
		if err := mi.Inventory.Add(oi); err != nil {
			return nil, fmt.Errorf("mobile %q starting inventory: %w", mob.Id(), err)
		}
	}
	return mi, nil
}

// Definition returns the resolved mobile definition, or nil before Resolve.
func (mi *MobileInstance) Definition() *Mobile {
	return mi.Mobile.Get()
}

// MatchName delegates to the definition's aliases.
func (mi *MobileInstance) MatchName(name string) bool {
	def := mi.Definition()
	return def != nil && def.MatchName(name)
}

// ObjectSpawn declares one object in starting inventory or room contents,
// with optional nested contents for containers.
type ObjectSpawn struct {
	Object   storage.SmartIdentifier[*Object] `json:"object"`
	Contents []ObjectSpawn                    `json:"contents,omitempty"`
}

// Resolve resolves the spawn's definition references recursively.
func (s *ObjectSpawn) Resolve(objDefs storage.Storer[*Object]) error {
	if err := s.Object.Resolve(objDefs); err != nil {
		return err
	}
	def := s.Object.Get()
	if len(s.Contents) > 0 && !def.HasFlag(ObjectFlagContainer) {
		return fmt.Errorf("object %q has contents but is not a container", s.Object.Id())
	}
	el := errors.NewErrorList()
	for i := range s.Contents {
		el.Add(s.Contents[i].Resolve(objDefs))
	}
	return el.Err()
}

// Spawn creates a fresh instance tree from the spawn declaration.
func (s *ObjectSpawn) Spawn() (*ObjectInstance, error) {
	oi, err := NewObjectInstance(s.Object)
	if err != nil {
		return nil, err
	}
	for i := range s.Contents {
		ci, err := s.Contents[i].Spawn()
		if err != nil {
			return nil, err
		}
		if err := oi.Contents.Add(ci); err != nil {
			return nil, fmt.Errorf("filling container %q: %w", s.Object.Id(), err)
		}
	}
	return oi, nil
}
