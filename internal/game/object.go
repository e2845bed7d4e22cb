package game

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hollowvale/mud/internal/storage"
	"github.com/hollowvale/mud/internal/text"
	"github.com/pixil98/go-errors"
)

const (
	// ObjectFlagContainer marks objects that own an inventory of their own.
	ObjectFlagContainer = "container"
	// ObjectFlagHeld marks objects carried in hand; they are listed
	// individually when an observer looks at the carrier.
	ObjectFlagHeld = "held"
	// ObjectFlagHidden marks objects omitted from observer-visible inventory.
	ObjectFlagHidden = "hidden"
)

// Object defines a type of object/item loaded from asset files.
// Multiple instances can be spawned from one definition.
// Object IDs follow the convention <zone>-<name> (e.g., "hollowvale-sword").
type Object struct {
	// Aliases are keywords players can use to target this object (e.g., ["satchel", "bag"])
	Aliases []string `json:"aliases"`

	// Name is the singular display name used in prose (e.g., "lump of ore")
	Name string `json:"name"`

	// Plural overrides the derived plural when the noun is irregular
	Plural string `json:"plural,omitempty"`

	// LongDesc is shown when the object is on the ground in a room
	LongDesc string `json:"long_desc"`

	// DetailedDesc is shown when a player looks at the object
	DetailedDesc string `json:"detailed_desc"`

	// Weight is the object's own weight, excluding anything inside it
	Weight float64 `json:"weight"`

	Value int      `json:"value,omitempty"`
	Flags []string `json:"flags,omitempty"`

	// Capacity is an optional weight cap on this container's contents.
	// Zero means uncapped. Only meaningful with the container flag.
	Capacity float64 `json:"capacity,omitempty"`
}

// HasFlag returns true if the object definition carries the given flag.
func (o *Object) HasFlag(flag string) bool {
	for _, f := range o.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// PluralName returns the plural display name, deriving one when the
// definition doesn't carry an irregular form.
func (o *Object) PluralName() string {
	if o.Plural != "" {
		return o.Plural
	}
	return text.PluralizeName(o.Name)
}

// Validate satisfies storage.ValidatingSpec
func (o *Object) Validate() error {
	el := errors.NewErrorList()
	if len(o.Aliases) < 1 {
		el.Add(fmt.Errorf("object alias is required"))
	}
	if o.Name == "" {
		el.Add(fmt.Errorf("object name is required"))
	}
	if o.Weight < 0 {
		el.Add(fmt.Errorf("object weight cannot be negative"))
	}
	for _, f := range o.Flags {
		switch f {
		case ObjectFlagContainer, ObjectFlagHeld, ObjectFlagHidden:
		default:
			el.Add(fmt.Errorf("unknown object flag %q", f))
		}
	}
	if o.Capacity != 0 && !o.HasFlag(ObjectFlagContainer) {
		el.Add(fmt.Errorf("capacity requires the %s flag", ObjectFlagContainer))
	}
	return el.Err()
}

// ObjectInstance represents a single spawned instance of an Object definition.
type ObjectInstance struct {
	InstanceId string                           `json:"instance_id"`
	Object     storage.SmartIdentifier[*Object] `json:"object"`

	// Contents is non-nil only for containers.
	Contents *Inventory `json:"contents,omitempty"`

	// holder is the inventory currently holding this instance. Maintained
	// by Inventory.Add/Remove and relinked after load.
	holder *Inventory
}

// NewObjectInstance spawns an instance from a resolved definition, creating
// an empty contents inventory when the definition is a container.
func NewObjectInstance(obj storage.SmartIdentifier[*Object]) (*ObjectInstance, error) {
	def := obj.Get()
	if def == nil {
		return nil, fmt.Errorf("unable to spawn instance from unresolved object %q", obj.Id())
	}

	oi := &ObjectInstance{
		InstanceId: uuid.NewString(),
		Object:     obj,
	}
	if def.HasFlag(ObjectFlagContainer) {
		oi.Contents = newContainerInventory(oi, def.Capacity)
	}
	return oi, nil
}

// Definition returns the resolved object definition, or nil before Resolve.
func (oi *ObjectInstance) Definition() *Object {
	return oi.Object.Get()
}

// Weight returns the instance's transitive weight: the definition's unit
// weight plus everything nested inside it, to any depth.
func (oi *ObjectInstance) Weight() float64 {
	def := oi.Definition()
	if def == nil {
		return 0
	}
	w := def.Weight
	if oi.Contents != nil {
		w += oi.Contents.Weight()
	}
	return w
}

// HeldWithin reports whether this instance sits inside inv, directly or
// nested any number of containers deep.
func (oi *ObjectInstance) HeldWithin(inv *Inventory) bool {
	for h := oi.holder; h != nil; h = h.enclosing() {
		if h == inv {
			return true
		}
	}
	return false
}

// MatchName returns true if name matches the object's name or any alias
// (case-insensitive).
func (oi *ObjectInstance) MatchName(name string) bool {
	def := oi.Definition()
	if def == nil {
		return false
	}
	if strings.EqualFold(def.Name, name) {
		return true
	}
	for _, alias := range def.Aliases {
		if strings.EqualFold(alias, name) {
			return true
		}
	}
	return false
}

// Resolve resolves the instance's definition reference and, recursively, the
// definitions of everything inside it. Containers loaded without a contents
// inventory get an empty one, and holder links are rebuilt.
func (oi *ObjectInstance) Resolve(objDefs storage.Storer[*Object]) error {
	if err := oi.Object.Resolve(objDefs); err != nil {
		return err
	}
	if oi.InstanceId == "" {
		oi.InstanceId = uuid.NewString()
	}

	def := oi.Definition()
	if def.HasFlag(ObjectFlagContainer) && oi.Contents == nil {
		oi.Contents = newContainerInventory(oi, def.Capacity)
	}
	if oi.Contents != nil {
		oi.Contents.owner = oi
		oi.Contents.MaxWeight = def.Capacity
		for _, ci := range oi.Contents.Objs {
			ci.holder = oi.Contents
			if err := ci.Resolve(objDefs); err != nil {
				return err
			}
		}
	}
	return nil
}
