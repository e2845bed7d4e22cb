package command

import (
	"fmt"
	"time"

	"github.com/hollowvale/mud/internal/commands"
	"github.com/hollowvale/mud/internal/driver"
	"github.com/hollowvale/mud/internal/game"
	"github.com/hollowvale/mud/internal/listener"
	"github.com/hollowvale/mud/internal/messaging"
	"github.com/hollowvale/mud/internal/storage"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	// Definition stores
	dict, err := cfg.Storage.BuildDictionary()
	if err != nil {
		return nil, fmt.Errorf("building dictionary: %w", err)
	}
	cmdStore, err := cfg.Storage.BuildCommandStore()
	if err != nil {
		return nil, fmt.Errorf("building command store: %w", err)
	}

	// Messaging
	natsServer, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("building nats server: %w", err)
	}
	pub := messaging.NewMudPublisher(natsServer)

	// World state
	atmo := cfg.Atmosphere.BuildAtmosphere(time.Now())
	world, err := game.NewWorldState(natsServer, dict, atmo)
	if err != nil {
		return nil, fmt.Errorf("building world state: %w", err)
	}

	// Command handler
	cmdHandler := commands.NewHandler(cmdStore, world)
	factories := map[string]commands.HandlerFactory{
		"look":       commands.NewLookHandlerFactory(world, pub),
		"move":       commands.NewMoveHandlerFactory(world, pub),
		"get":        commands.NewGetHandlerFactory(world, pub),
		"drop":       commands.NewDropHandlerFactory(world, pub),
		"put":        commands.NewPutHandlerFactory(world, pub),
		"give":       commands.NewGiveHandlerFactory(world, pub),
		"inventory":  commands.NewInventoryHandlerFactory(pub),
		"describe":   commands.NewDescribeHandlerFactory(pub),
		"weather":    commands.NewWeatherHandlerFactory(world, pub),
		"time":       commands.NewTimeHandlerFactory(world, pub),
		"setweather": commands.NewSetWeatherHandlerFactory(world, pub),
		"message":    commands.NewMessageHandlerFactory(pub),
		"who":        commands.NewWhoHandlerFactory(world, pub),
		"help":       commands.NewHelpHandlerFactory(cmdStore, pub),
		"save":       commands.NewSaveHandlerFactory(dict.Characters, pub),
		"quit":       commands.NewQuitHandlerFactory(dict.Characters),
	}
	for name, factory := range factories {
		if err := cmdHandler.RegisterFactory(name, factory); err != nil {
			return nil, fmt.Errorf("registering handler %q: %w", name, err)
		}
	}
	if err := cmdHandler.CompileAll(); err != nil {
		return nil, fmt.Errorf("compiling commands: %w", err)
	}

	// Player sessions
	pm := cfg.PlayerManager.BuildPlayerManager(world, cmdHandler, dict.Characters, storage.NewSelectableStorer(dict.Races))
	cm := listener.NewConnectionManager(pm)

	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		w, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = w
	}

	// The driver ticks the world (atmosphere, exposure, zone resets), the
	// session sweeps, and the atmosphere snapshot.
	drv := driver.NewMudDriver(
		[]driver.Manager{
			world,
			pm,
			&atmosphereSaver{cfg: &cfg.Atmosphere, atmo: atmo},
		},
		driver.WithTickLength(cfg.tickInterval()),
	)

	return service.WorkerList{
		"nats":      natsServer,
		"driver":    drv,
		"listeners": &listeners,
	}, nil
}
