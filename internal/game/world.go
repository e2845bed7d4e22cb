package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hollowvale/mud/internal/storage"
)

// WorldState is the single source of truth for all mutable game state.
// All access must go through its methods to ensure thread-safety. It owns
// exactly one Atmosphere; no other component may construct its own weather
// state, and every renderer reads through the accessor.
type WorldState struct {
	mu         sync.RWMutex
	subscriber Subscriber
	players    map[storage.Identifier]*PlayerState

	instances map[storage.Identifier]*ZoneInstance

	atmosphere *Atmosphere
	dict       *Dictionary
}

// NewWorldState creates a new WorldState with zone and room instances
// initialized and every room reset once so the world starts populated.
func NewWorldState(sub Subscriber, dict *Dictionary, atmo *Atmosphere) (*WorldState, error) {
	instances := make(map[storage.Identifier]*ZoneInstance)
	for zoneId, zone := range dict.Zones.GetAll() {
		zi, err := NewZoneInstance(storage.NewResolvedSmartIdentifier(zoneId, zone))
		if err != nil {
			return nil, err
		}
		instances[storage.Identifier(zoneId)] = zi
	}

	for roomId, room := range dict.Rooms.GetAll() {
		zoneId := storage.Identifier(room.Zone.Id())
		zi, ok := instances[zoneId]
		if !ok {
			return nil, fmt.Errorf("room %q references unknown zone %q", roomId, zoneId)
		}
		ri, err := NewRoomInstance(storage.NewResolvedSmartIdentifier(roomId, room))
		if err != nil {
			return nil, err
		}
		zi.AddRoom(ri)
	}

	for _, zi := range instances {
		if err := zi.Reset(true, dict.Mobiles); err != nil {
			return nil, err
		}
	}

	return &WorldState{
		subscriber: sub,
		players:    make(map[storage.Identifier]*PlayerState),
		instances:  instances,
		atmosphere: atmo,
		dict:       dict,
	}, nil
}

// Instances returns all zone instances.
func (w *WorldState) Instances() map[storage.Identifier]*ZoneInstance {
	return w.instances
}

// Dictionary returns the definition stores.
func (w *WorldState) Dictionary() *Dictionary {
	return w.dict
}

// Atmosphere returns the one authoritative weather/time state.
func (w *WorldState) Atmosphere() *Atmosphere {
	return w.atmosphere
}

// GetRoom returns the room instance, or nil for an unknown location.
func (w *WorldState) GetRoom(zoneId, roomId storage.Identifier) *RoomInstance {
	zi, ok := w.instances[zoneId]
	if !ok {
		return nil
	}
	return zi.GetRoom(roomId)
}

// GetPlayer returns the player state. Returns nil if player not found.
func (w *WorldState) GetPlayer(charId storage.Identifier) *PlayerState {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.players[charId]
}

// AddPlayer registers a new player in the world state and adds them to the room instance.
func (w *WorldState) AddPlayer(charId storage.Identifier, char *Character, msgs chan []byte, zoneId storage.Identifier, roomId storage.Identifier) error {
	w.mu.Lock()
	if _, exists := w.players[charId]; exists {
		w.mu.Unlock()
		return ErrPlayerExists
	}

	room := w.GetRoom(zoneId, roomId)
	if room == nil {
		w.mu.Unlock()
		return fmt.Errorf("unknown location %s/%s", zoneId, roomId)
	}

	ps := &PlayerState{
		subscriber:   w.subscriber,
		subs:         make(map[string]func()),
		msgs:         msgs,
		CharId:       charId,
		Character:    char,
		ZoneId:       zoneId,
		RoomId:       roomId,
		Quit:         false,
		LastActivity: time.Now(),
		done:         make(chan struct{}),
	}
	w.players[charId] = ps
	w.mu.Unlock()

	room.AddPlayer(charId, ps)
	return nil
}

// RemovePlayer removes a player from the world state and from the room instance.
func (w *WorldState) RemovePlayer(charId storage.Identifier) error {
	w.mu.Lock()
	ps, exists := w.players[charId]
	if !exists {
		w.mu.Unlock()
		return ErrPlayerNotFound
	}

	room := w.GetRoom(ps.ZoneId, ps.RoomId)
	delete(w.players, charId)
	w.mu.Unlock()

	if room != nil {
		room.RemovePlayer(charId)
	}
	return nil
}

// MovePlayer moves a player through the named exit of their current room.
// An overburdened player is refused with a BlockedError before anything
// mutates; dropping weight re-enables movement on the very next call.
func (w *WorldState) MovePlayer(charId storage.Identifier, direction string) (*RoomInstance, error) {
	ps := w.GetPlayer(charId)
	if ps == nil {
		return nil, ErrPlayerNotFound
	}

	if ps.Character.Overburdened() {
		return nil, &BlockedError{
			Carrying: ps.Character.Inventory.Weight(),
			Limit:    ps.Character.MaxCarryWeight,
		}
	}

	fromRoom := w.GetRoom(ps.ZoneId, ps.RoomId)
	if fromRoom == nil {
		return nil, fmt.Errorf("player %q in unknown location", charId)
	}

	_, exit := fromRoom.FindExit(direction)
	if exit == nil {
		return nil, ErrNotFound
	}

	destZone := storage.Identifier(exit.Zone.Id())
	if destZone == "" {
		destZone = ps.ZoneId
	}
	toRoom := w.GetRoom(destZone, storage.Identifier(exit.Room.Id()))
	if toRoom == nil {
		return nil, ErrNotFound
	}

	ps.Move(fromRoom, toRoom)
	return toRoom, nil
}

// SetPlayerQuit sets the quit flag for a player.
func (w *WorldState) SetPlayerQuit(charId storage.Identifier, quit bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	p, exists := w.players[charId]
	if !exists {
		return ErrPlayerNotFound
	}

	p.Quit = quit
	return nil
}

// MarkPlayerActive resets the player's idle timer.
func (w *WorldState) MarkPlayerActive(charId storage.Identifier) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if p, ok := w.players[charId]; ok {
		p.LastActivity = time.Now()
	}
}

// ForEachPlayer calls fn for each player in the world while holding the lock.
func (w *WorldState) ForEachPlayer(fn func(storage.Identifier, *PlayerState)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for id, ps := range w.players {
		fn(id, ps)
	}
}

// Subscriber provides the ability to subscribe to message subjects
type Subscriber interface {
	Subscribe(subject string, handler func(data []byte)) (unsubscribe func(), err error)
}

// Tick advances the whole world one step: the atmosphere moves to the game
// minute implied by the wall clock, every entity's exposure tracker runs for
// that tick, and zones check their reset timers. Exposure updates are
// idempotent per tick, so overlapping command paths cannot double-count.
func (w *WorldState) Tick(ctx context.Context) error {
	tick := w.atmosphere.Advance(time.Now())
	weather := w.atmosphere.Weather()

	w.ForEachPlayer(func(_ storage.Identifier, ps *PlayerState) {
		room := w.GetRoom(ps.ZoneId, ps.RoomId)
		outdoor := room != nil && room.Outdoor()
		ps.Character.Exposure.Update(tick, weather, outdoor)
	})

	for _, zi := range w.instances {
		zi.ForEachRoom(func(ri *RoomInstance) {
			outdoor := ri.Outdoor()
			ri.ForEachMobile(func(mi *MobileInstance) {
				mi.Exposure.Update(tick, weather, outdoor)
			})
		})
	}

	for _, zi := range w.instances {
		err := zi.Reset(false, w.dict.Mobiles)
		if err != nil {
			return err
		}
	}

	return nil
}

// PlayerState holds all mutable state for an active player.
type PlayerState struct {
	subscriber Subscriber
	msgs       chan []byte

	CharId    storage.Identifier
	Character *Character

	// Location
	ZoneId storage.Identifier
	RoomId storage.Identifier

	// Subscriptions
	subs map[string]func()

	// Session state
	Quit         bool
	LastActivity time.Time

	// Connection management: closed to signal the active Play() goroutine to exit.
	done chan struct{}

	// Linkless state: player's connection dropped but they remain in the world.
	Linkless   bool
	LinklessAt time.Time
}

// Flags returns display labels for the player's current state (e.g., "linkless").
func (p *PlayerState) Flags() []string {
	var flags []string
	if p.Linkless {
		flags = append(flags, "linkless")
	}
	if p.Character != nil && p.Character.Overburdened() {
		flags = append(flags, "overburdened")
	}
	return flags
}

// Done returns the channel that is closed when this session is evicted by a reconnection.
func (p *PlayerState) Done() <-chan struct{} {
	return p.done
}

// Location returns the player's current zone and room.
func (p *PlayerState) Location() (zoneId, roomId storage.Identifier) {
	return p.ZoneId, p.RoomId
}

// Move updates the player's location and room instance player lists.
func (p *PlayerState) Move(fromRoom, toRoom *RoomInstance) {
	toZoneId := storage.Identifier(toRoom.Room.Get().Zone.Id())
	toRoomId := storage.Identifier(toRoom.Room.Id())

	fromRoom.RemovePlayer(p.CharId)
	toRoom.AddPlayer(p.CharId, p)

	p.ZoneId = toZoneId
	p.RoomId = toRoomId
}

// Subscribe adds a new subscription
func (p *PlayerState) Subscribe(subject string) error {
	if p.subscriber == nil {
		return fmt.Errorf("subscriber is nil")
	}

	unsub, err := p.subscriber.Subscribe(subject, func(data []byte) {
		p.msgs <- data
	})

	// If we some how are subscribing to a channel we already think we have
	// unsubscribe from the existing one.
	if unsub, ok := p.subs[subject]; ok {
		unsub()
	}

	if err != nil {
		return fmt.Errorf("subscribing to channel '%s': %w", subject, err)
	}
	p.subs[subject] = unsub
	return nil

}

// Unsubscribe removes a subscription by name
func (p *PlayerState) Unsubscribe(subject string) {
	if unsub, ok := p.subs[subject]; ok {
		unsub()
		delete(p.subs, subject)
	}
}

// UnsubscribeAll removes all subscriptions
func (p *PlayerState) UnsubscribeAll() {
	for name, unsub := range p.subs {
		unsub()
		delete(p.subs, name)
	}
}

// Kick closes the done channel, signaling the active Play() goroutine to exit.
// It is safe to call multiple times; subsequent calls are no-ops.
func (p *PlayerState) Kick() {
	select {
	case <-p.done:
		// already closed
	default:
		close(p.done)
	}
}

// Reattach swaps the msgs channel and done channel for a reconnecting player.
// It unsubscribes all old subscriptions (their closures reference the old msgs channel),
// clears the linkless flag, and creates a fresh done channel.
// The caller is responsible for re-subscribing after this call.
func (p *PlayerState) Reattach(msgs chan []byte) {
	p.UnsubscribeAll()
	p.msgs = msgs
	p.done = make(chan struct{})
	p.Linkless = false
	p.LinklessAt = time.Time{}
	p.LastActivity = time.Now()
}

// SaveCharacter persists the character's current session state (location, inventory,
// exposure) to the character store.
func (ps *PlayerState) SaveCharacter(chars storage.Storer[*Character]) error {
	ps.Character.LastZone = ps.ZoneId
	ps.Character.LastRoom = ps.RoomId
	return chars.Save(string(ps.CharId), ps.Character)
}

// MarkLinkless sets the player as linkless and unsubscribes all subscriptions
// to prevent channel fill-up while they have no active connection.
func (p *PlayerState) MarkLinkless() {
	p.Linkless = true
	p.LinklessAt = time.Now()
	p.UnsubscribeAll()
}
