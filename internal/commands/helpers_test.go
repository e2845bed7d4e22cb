package commands

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/hollowvale/mud/internal/game"
	"github.com/hollowvale/mud/internal/storage"
)

type mapStorer[T storage.ValidatingSpec] struct {
	m map[string]T
}

func newMapStorer[T storage.ValidatingSpec](m map[string]T) *mapStorer[T] {
	if m == nil {
		m = map[string]T{}
	}
	return &mapStorer[T]{m: m}
}

func (s *mapStorer[T]) Save(id string, v T) error { s.m[id] = v; return nil }
func (s *mapStorer[T]) Get(id string) T           { return s.m[id] }
func (s *mapStorer[T]) GetAll() map[string]T      { return s.m }

type fakeSubscriber struct{}

func (fakeSubscriber) Subscribe(subject string, handler func(data []byte)) (func(), error) {
	return func() {}, nil
}

// recordingPublisher captures every publish so tests can assert on who was
// told what.
type recordingPublisher struct {
	records []pubRecord
}

type pubRecord struct {
	subject string
	data    string
}

func (p *recordingPublisher) Publish(subject string, data []byte) error {
	p.records = append(p.records, pubRecord{subject: subject, data: string(data)})
	return nil
}

func (p *recordingPublisher) PublishToPlayer(charId storage.Identifier, data []byte) error {
	return p.Publish(fmt.Sprintf("player-%s", charId), data)
}

func (p *recordingPublisher) PublishToRoom(zoneId, roomId storage.Identifier, data []byte) error {
	return p.Publish(fmt.Sprintf("zone-%s-room-%s", zoneId, roomId), data)
}

// sent returns all messages published to the given subject.
func (p *recordingPublisher) sent(subject string) []string {
	var out []string
	for _, r := range p.records {
		if r.subject == subject {
			out = append(out, r.data)
		}
	}
	return out
}

// lastTo returns the most recent message published to the given subject.
func (p *recordingPublisher) lastTo(subject string) string {
	msgs := p.sent(subject)
	if len(msgs) == 0 {
		return ""
	}
	return msgs[len(msgs)-1]
}

func (p *recordingPublisher) reset() {
	p.records = nil
}

func testObjects() map[string]*game.Object {
	return map[string]*game.Object{
		"satchel": {
			Aliases:  []string{"satchel", "bag"},
			Name:     "herbal satchel",
			Weight:   2,
			Flags:    []string{game.ObjectFlagContainer},
			Capacity: 10,
		},
		"purse": {
			Aliases:  []string{"purse"},
			Name:     "coin purse",
			Weight:   0.5,
			Flags:    []string{game.ObjectFlagContainer},
			Capacity: 1,
		},
		"coin": {
			Aliases: []string{"coin"},
			Name:    "copper coin",
			Weight:  0.1,
		},
		"ore": {
			Aliases: []string{"ore", "lump"},
			Name:    "lump of ore",
			Weight:  1,
		},
		"torch": {
			Aliases: []string{"torch"},
			Name:    "torch",
			Weight:  0.5,
			Flags:   []string{game.ObjectFlagHeld},
		},
		"boulder": {
			Aliases: []string{"boulder"},
			Name:    "boulder",
			Weight:  60,
		},
	}
}

func testDictionary(t *testing.T) *game.Dictionary {
	t.Helper()

	dict := &game.Dictionary{
		Characters: newMapStorer[*game.Character](nil),
		Zones: newMapStorer(map[string]*game.Zone{
			"vale": {ResetMode: game.ZoneResetNever},
		}),
		Rooms: newMapStorer(map[string]*game.Room{
			"square": {
				Name:        "The Square",
				Description: "A cobbled square ringed by stalls.",
				Zone:        storage.NewSmartIdentifier[*game.Zone]("vale"),
				Outdoor:     true,
				Exits: map[string]game.Exit{
					"north": {Room: storage.NewSmartIdentifier[*game.Room]("shrine")},
				},
				Spawns: []string{"herbalist"},
			},
			"shrine": {
				Name:        "The Shrine",
				Description: "A low stone shrine, roofed and quiet.",
				Zone:        storage.NewSmartIdentifier[*game.Zone]("vale"),
				Exits: map[string]game.Exit{
					"south": {Room: storage.NewSmartIdentifier[*game.Room]("square")},
				},
			},
		}),
		Mobiles: newMapStorer(map[string]*game.Mobile{
			"herbalist": {
				Aliases:  []string{"mara", "herbalist"},
				Name:     "Mara",
				LongDesc: "Mara the herbalist sorts dried leaves at her stall.",
				Actor:    game.Actor{Gender: game.GenderFemale, MaxCarryWeight: 50},
			},
		}),
		Objects: newMapStorer(testObjects()),
		Races:   newMapStorer[*game.Race](nil),
	}

	if err := dict.Resolve(); err != nil {
		t.Fatalf("resolving dictionary: %v", err)
	}
	return dict
}

// testCommands defines the command set the handler tests compile.
func testCommands() map[string]*Command {
	return map[string]*Command{
		"look": {
			Handler: "look",
			Inputs: []InputSpec{
				{Name: "target", Type: InputTypeString},
			},
			Targets: []TargetSpec{
				{Name: "target", Types: []string{"player", "mobile", "object"}, Scopes: []string{"inventory", "room"}, Input: "target", Optional: true},
			},
		},
		"north": {
			Handler: "move",
			Config:  map[string]string{"direction": "north"},
		},
		"go": {
			Handler: "move",
			Config:  map[string]string{"direction": "{{.Inputs.direction}}"},
			Inputs: []InputSpec{
				{Name: "direction", Type: InputTypeString, Required: true},
			},
		},
		"get": {
			Handler: "get",
			Inputs: []InputSpec{
				{Name: "target", Type: InputTypeString, Required: true},
				{Name: "container", Type: InputTypeString},
			},
			Targets: []TargetSpec{
				{Name: "container", Types: []string{"object"}, Scopes: []string{"inventory", "room"}, Input: "container", Optional: true},
				{Name: "target", Types: []string{"object"}, Scopes: []string{"room"}, Input: "target", ScopeTarget: "container"},
			},
		},
		"drop": {
			Handler: "drop",
			Inputs: []InputSpec{
				{Name: "target", Type: InputTypeString, Required: true},
			},
			Targets: []TargetSpec{
				{Name: "target", Types: []string{"object"}, Scopes: []string{"inventory"}, Input: "target"},
			},
		},
		"put": {
			Handler: "put",
			Inputs: []InputSpec{
				{Name: "target", Type: InputTypeString, Required: true},
				{Name: "container", Type: InputTypeString, Required: true},
			},
			Targets: []TargetSpec{
				{Name: "container", Types: []string{"object"}, Scopes: []string{"inventory", "room"}, Input: "container"},
				{Name: "target", Types: []string{"object"}, Scopes: []string{"inventory"}, Input: "target"},
			},
		},
		"give": {
			Handler: "give",
			Inputs: []InputSpec{
				{Name: "item", Type: InputTypeString, Required: true},
				{Name: "recipient", Type: InputTypeString, Required: true},
			},
			Targets: []TargetSpec{
				{Name: "item", Types: []string{"object"}, Scopes: []string{"inventory"}, Input: "item"},
				{Name: "recipient", Types: []string{"player", "mobile"}, Scopes: []string{"room"}, Input: "recipient"},
			},
		},
		"inventory": {Handler: "inventory"},
		"describe": {
			Handler: "describe",
			Inputs: []InputSpec{
				{Name: "description", Type: InputTypeString, Rest: true},
			},
		},
		"weather": {Handler: "weather"},
		"time":    {Handler: "time"},
		"setweather": {
			Handler: "setweather",
			Inputs: []InputSpec{
				{Name: "setting", Type: InputTypeString, Required: true},
				{Name: "intensity", Type: InputTypeString},
			},
		},
		"say": {
			Handler: "message",
			Config: map[string]string{
				"recipient_channel": "zone-{{.ZoneId}}-room-{{.RoomId}}",
				"recipient_message": "{{.Actor}} says, '{{.Inputs.message}}'",
			},
			Inputs: []InputSpec{
				{Name: "message", Type: InputTypeString, Required: true, Rest: true},
			},
		},
		"who":  {Handler: "who"},
		"help": {
			Handler: "help",
			Config:  map[string]string{"command": "{{.Inputs.topic}}"},
			Inputs: []InputSpec{
				{Name: "topic", Type: InputTypeString},
			},
		},
		"save": {Handler: "save"},
		"quit": {Handler: "quit"},
	}
}

type testEnv struct {
	handler *Handler
	world   *game.WorldState
	pub     *recordingPublisher
	dict    *game.Dictionary
}

// testHandler wires a world with two players in the square and every
// handler factory registered and compiled.
func testHandler(t *testing.T) *testEnv {
	t.Helper()

	dict := testDictionary(t)
	atmo := game.NewAtmosphere(game.Calendar{SecondsPerGameMinute: 10, DaysPerSeason: 30}, time.Now(), game.WithSeed(1))
	atmo.SetWeather(game.WeatherClear, game.IntensityNone, true)

	world, err := game.NewWorldState(fakeSubscriber{}, dict, atmo)
	if err != nil {
		t.Fatalf("creating world: %v", err)
	}

	pub := &recordingPublisher{}
	h := NewHandler(newMapStorer(testCommands()), world)

	factories := map[string]HandlerFactory{
		"look":       NewLookHandlerFactory(world, pub),
		"move":       NewMoveHandlerFactory(world, pub),
		"get":        NewGetHandlerFactory(world, pub),
		"drop":       NewDropHandlerFactory(world, pub),
		"put":        NewPutHandlerFactory(world, pub),
		"give":       NewGiveHandlerFactory(world, pub),
		"inventory":  NewInventoryHandlerFactory(pub),
		"describe":   NewDescribeHandlerFactory(pub),
		"weather":    NewWeatherHandlerFactory(world, pub),
		"time":       NewTimeHandlerFactory(world, pub),
		"setweather": NewSetWeatherHandlerFactory(world, pub),
		"message":    NewMessageHandlerFactory(pub),
		"who":        NewWhoHandlerFactory(world, pub),
		"help":       NewHelpHandlerFactory(h.store, pub),
		"save":       NewSaveHandlerFactory(dict.Characters, pub),
		"quit":       NewQuitHandlerFactory(dict.Characters),
	}
	for name, factory := range factories {
		if err := h.RegisterFactory(name, factory); err != nil {
			t.Fatalf("registering %s: %v", name, err)
		}
	}
	if err := h.CompileAll(); err != nil {
		t.Fatalf("compiling commands: %v", err)
	}

	env := &testEnv{handler: h, world: world, pub: pub, dict: dict}
	env.addPlayer(t, "Bren", "vale", "square")
	env.addPlayer(t, "Wren", "vale", "square")
	return env
}

func (e *testEnv) addPlayer(t *testing.T, name string, zoneId, roomId storage.Identifier) *game.Character {
	t.Helper()
	char := game.NewCharacter(name, "")
	err := e.world.AddPlayer(storage.Identifier(strings.ToLower(name)), char, make(chan []byte, 16), zoneId, roomId)
	if err != nil {
		t.Fatalf("adding player %s: %v", name, err)
	}
	return char
}

func (e *testEnv) char(t *testing.T, charId storage.Identifier) *game.Character {
	t.Helper()
	ps := e.world.GetPlayer(charId)
	if ps == nil {
		t.Fatalf("no player %q", charId)
	}
	return ps.Character
}

// spawn creates an object instance from one of the test definitions.
func (e *testEnv) spawn(t *testing.T, id string) *game.ObjectInstance {
	t.Helper()
	def := e.dict.Objects.Get(id)
	if def == nil {
		t.Fatalf("no object definition %q", id)
	}
	oi, err := game.NewObjectInstance(storage.NewResolvedSmartIdentifier(id, def))
	if err != nil {
		t.Fatalf("spawning %s: %v", id, err)
	}
	return oi
}

// give places a freshly spawned object in the character's inventory.
func (e *testEnv) give(t *testing.T, charId storage.Identifier, objId string) *game.ObjectInstance {
	t.Helper()
	oi := e.spawn(t, objId)
	if err := e.char(t, charId).Inventory.Add(oi); err != nil {
		t.Fatalf("adding %s to %s: %v", objId, charId, err)
	}
	return oi
}

func userErr(t *testing.T, err error) string {
	t.Helper()
	ue, ok := err.(*UserError)
	if !ok {
		t.Fatalf("got %v (%T), want UserError", err, err)
	}
	return ue.Message
}
