package game

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/hollowvale/mud/internal/storage"
	"github.com/hollowvale/mud/internal/text"
	"github.com/pixil98/go-errors"
)

// Exit defines a destination for movement from a room.
type Exit struct {
	Zone storage.SmartIdentifier[*Zone] `json:"zone,omitempty"` // Optional; defaults to current zone
	Room storage.SmartIdentifier[*Room] `json:"room"`
}

// Room represents a location within a zone. Room definitions are static
// world data, loaded once and never mutated; everything that changes at
// runtime lives on RoomInstance.
type Room struct {
	Name        string                         `json:"name"`
	Description string                         `json:"description"`
	Zone        storage.SmartIdentifier[*Zone] `json:"zone"`

	// Outdoor rooms show sky weather and expose occupants to it. This flag
	// is the only thing that decides exposure; a room named "Courtyard"
	// with Outdoor false is sheltered.
	Outdoor bool `json:"outdoor,omitempty"`

	Exits map[string]Exit `json:"exits"` // direction -> destination

	// Mobiles to spawn on reset; list duplicates for multiples.
	Spawns []string `json:"spawns,omitempty"`

	// Objects to place on the floor on reset.
	Objects []ObjectSpawn `json:"objects,omitempty"`
}

// Validate satisfies storage.ValidatingSpec.
func (r *Room) Validate() error {
	el := errors.NewErrorList()

	if r.Name == "" {
		el.Add(fmt.Errorf("room name is required"))
	}
	if r.Zone.Id() == "" {
		el.Add(fmt.Errorf("zone is required"))
	}

	for dir, exit := range r.Exits {
		if exit.Room.Id() == "" {
			el.Add(fmt.Errorf("exit %s: room is required", dir))
		}
	}

	return el.Err()
}

// Resolve resolves foreign keys from the dictionary.
func (r *Room) Resolve(dict *Dictionary) error {
	el := errors.NewErrorList()
	el.Add(r.Zone.Resolve(dict.Zones))
	for dir, exit := range r.Exits {
		if exit.Zone.Id() != "" {
			el.Add(exit.Zone.Resolve(dict.Zones))
		}
		el.Add(exit.Room.Resolve(dict.Rooms))
		r.Exits[dir] = exit
	}
	for _, spawn := range r.Spawns {
		if dict.Mobiles.Get(spawn) == nil {
			el.Add(fmt.Errorf("unknown spawn mobile %q", spawn))
		}
	}
	for i := range r.Objects {
		el.Add(r.Objects[i].Resolve(dict.Objects))
	}
	return el.Err()
}

// RoomInstance is the live room: the static definition plus whoever and
// whatever is currently in it.
type RoomInstance struct {
	Room storage.SmartIdentifier[*Room]

	mu      sync.RWMutex
	players map[storage.Identifier]*PlayerState
	mobiles map[string]*MobileInstance
	objects *Inventory
}

// NewRoomInstance creates a live room over a resolved definition.
func NewRoomInstance(room storage.SmartIdentifier[*Room]) (*RoomInstance, error) {
	if room.Get() == nil {
		return nil, fmt.Errorf("unable to create instance from unresolved room %q", room.Id())
	}
	return &RoomInstance{
		Room:    room,
		players: make(map[storage.Identifier]*PlayerState),
		mobiles: make(map[string]*MobileInstance),
		objects: NewInventory(0),
	}, nil
}

// Outdoor reports whether occupants are exposed to the sky.
func (r *RoomInstance) Outdoor() bool {
	return r.Room.Get().Outdoor
}

// AddPlayer places a player in the room.
func (r *RoomInstance) AddPlayer(charId storage.Identifier, ps *PlayerState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players[charId] = ps
}

// RemovePlayer removes a player from the room.
func (r *RoomInstance) RemovePlayer(charId storage.Identifier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.players, charId)
}

// PlayerCount returns the number of players in the room.
func (r *RoomInstance) PlayerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}

// FindPlayer returns the player whose character name matches, or nil.
func (r *RoomInstance) FindPlayer(name string) *PlayerState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, ps := range r.players {
		if ps.Character != nil && ps.Character.MatchName(name) {
			return ps
		}
	}
	return nil
}

// FindMob returns the first mobile matching the given name, or nil.
func (r *RoomInstance) FindMob(name string) *MobileInstance {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, mi := range r.mobiles {
		if mi.MatchName(name) {
			return mi
		}
	}
	return nil
}

// FindObj returns the first floor object matching the given name, or nil.
func (r *RoomInstance) FindObj(name string) *ObjectInstance {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.objects.FindObj(name)
}

// FindExit returns the direction and exit matching the given name.
func (r *RoomInstance) FindExit(name string) (string, *Exit) {
	for dir, exit := range r.Room.Get().Exits {
		if strings.EqualFold(dir, name) {
			return dir, &exit
		}
	}
	return "", nil
}

// RemoveObj removes a floor object by instance ID, nil when absent.
func (r *RoomInstance) RemoveObj(instanceId string) *ObjectInstance {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.objects.RemoveObj(instanceId)
}

// AddObj places an object on the room floor.
func (r *RoomInstance) AddObj(oi *ObjectInstance) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.objects.AddObj(oi)
}

// ForEachMobile calls fn for each mobile in the room while holding the lock.
func (r *RoomInstance) ForEachMobile(fn func(*MobileInstance)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, mi := range r.mobiles {
		fn(mi)
	}
}

// Reset respawns the room's mobiles and floor objects from the definition.
// Existing mobiles are replaced wholesale; spawning goes through the full
// copy routine so respawned mobiles carry complete inventories.
func (r *RoomInstance) Reset(mobDefs storage.Storer[*Mobile]) error {
	def := r.Room.Get()

	mobiles := make(map[string]*MobileInstance, len(def.Spawns))
	for _, spawnId := range def.Spawns {
		mob := mobDefs.Get(spawnId)
		if mob == nil {
			return fmt.Errorf("room %q: unknown spawn mobile %q", r.Room.Id(), spawnId)
		}
		mi, err := NewMobileInstance(storage.NewResolvedSmartIdentifier(spawnId, mob))
		if err != nil {
			return fmt.Errorf("room %q: %w", r.Room.Id(), err)
		}
		mobiles[mi.InstanceId] = mi
	}

	objects := NewInventory(0)
	for i := range def.Objects {
		oi, err := def.Objects[i].Spawn()
		if err != nil {
			return fmt.Errorf("room %q: %w", r.Room.Id(), err)
		}
		objects.AddObj(oi)
	}

	r.mu.Lock()
	r.mobiles = mobiles
	r.objects = objects
	r.mu.Unlock()
	return nil
}

// Describe renders the room for the named viewer: title, prose, the
// ambient sky or light line from the one authoritative atmosphere, exits,
// floor objects, and other occupants.
func (r *RoomInstance) Describe(viewer string, atmo *Atmosphere) string {
	def := r.Room.Get()

	lines := []string{def.Name, def.Description}
	if atmo != nil {
		lines = append(lines, atmo.AmbientSentence(def.Outdoor))
	}

	dirs := make([]string, 0, len(def.Exits))
	for dir := range def.Exits {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	if len(dirs) > 0 {
		lines = append(lines, "Exits: "+strings.Join(dirs, ", "))
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, group := range r.objects.GroupVisible() {
		if group.Count == 1 && group.Object.LongDesc != "" {
			lines = append(lines, group.Object.LongDesc)
			continue
		}
		lines = append(lines, text.Capitalize(text.CountedName(group.Object.Name, group.Count))+" "+lieHere(group.Count)+" here.")
	}

	for _, mi := range r.mobiles {
		if d := mi.Definition(); d != nil && d.LongDesc != "" {
			lines = append(lines, d.LongDesc)
		}
	}

	for _, ps := range r.players {
		if ps.Character == nil || ps.Character.MatchName(viewer) {
			continue
		}
		lines = append(lines, ps.Character.Name+" is here.")
	}

	return strings.Join(lines, "\n")
}

func lieHere(count int) string {
	if count == 1 {
		return "lies"
	}
	return "lie"
}
