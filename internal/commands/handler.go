package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/hollowvale/mud/internal/game"
	"github.com/hollowvale/mud/internal/storage"
)

// CommandContext carries everything a compiled command needs at execution
// time: who is acting, their session, the expanded config, the parsed
// inputs, and the resolved targets.
type CommandContext struct {
	CharId  storage.Identifier
	Actor   *game.Character
	Session *game.PlayerState

	Config  map[string]string
	Inputs  map[string]any
	Targets map[string]*TargetRef
}

// CommandFunc is the signature for compiled command functions.
type CommandFunc func(ctx context.Context, cmdCtx *CommandContext) error

// ConfigRequirement declares one config key a handler reads.
type ConfigRequirement struct {
	Name     string
	Required bool
}

// TargetRequirement declares one target a handler reads from the context.
type TargetRequirement struct {
	Name     string
	Type     TargetType
	Required bool
}

// HandlerSpec declares what a handler factory expects from command
// definitions, checked once at compile time rather than on every execution.
type HandlerSpec struct {
	Config  []ConfigRequirement
	Targets []TargetRequirement
}

// HandlerFactory creates CommandFuncs from command configurations.
type HandlerFactory interface {
	// Spec declares the config keys and targets the handler expects.
	// May return nil when the handler takes nothing.
	Spec() *HandlerSpec
	// ValidateConfig checks constraints Spec can't express.
	ValidateConfig(config map[string]string) error
	// Create creates the CommandFunc.
	Create() (CommandFunc, error)
}

// Publisher provides the ability to publish messages to subjects.
type Publisher interface {
	Publish(subject string, data []byte) error
	PublishToPlayer(charId storage.Identifier, data []byte) error
	PublishToRoom(zoneId, roomId storage.Identifier, data []byte) error
}

// compiledCommand holds a command that's been validated and compiled.
type compiledCommand struct {
	cmd     *Command
	cmdFunc CommandFunc
}

type Handler struct {
	store     storage.Storer[*Command]
	world     *game.WorldState
	resolver  *TargetResolver
	factories map[string]HandlerFactory
	compiled  map[string]*compiledCommand
}

func NewHandler(c storage.Storer[*Command], world *game.WorldState) *Handler {
	return &Handler{
		store:     c,
		world:     world,
		resolver:  NewTargetResolver(NewWorldScopes(world)),
		factories: make(map[string]HandlerFactory),
		compiled:  make(map[string]*compiledCommand),
	}
}

// RegisterFactory registers a handler factory by name.
// The name must match the "handler" field in command JSON definitions.
func (h *Handler) RegisterFactory(name string, factory HandlerFactory) error {
	if name == "" {
		return fmt.Errorf("handler name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("handler factory cannot be nil")
	}
	if _, exists := h.factories[name]; exists {
		return fmt.Errorf("handler factory %q already registered", name)
	}
	h.factories[name] = factory
	return nil
}

// CompileAll compiles all commands from the store.
// Call this after all handler factories have been registered.
func (h *Handler) CompileAll() error {
	for id, cmd := range h.store.GetAll() {
		err := h.compile(id, cmd)
		if err != nil {
			return fmt.Errorf("compiling command %q: %w", id, err)
		}
	}
	return nil
}

func (h *Handler) compile(id string, cmd *Command) error {
	factory, ok := h.factories[cmd.Handler]
	if !ok {
		return fmt.Errorf("unknown handler %q", cmd.Handler)
	}

	if err := checkSpec(factory.Spec(), cmd); err != nil {
		return err
	}
	if err := factory.ValidateConfig(cmd.Config); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	cmdFunc, err := factory.Create()
	if err != nil {
		return fmt.Errorf("creating handler: %w", err)
	}

	h.compiled[strings.ToLower(id)] = &compiledCommand{
		cmd:     cmd,
		cmdFunc: cmdFunc,
	}
	return nil
}

// checkSpec verifies the command definition satisfies the factory's
// declared requirements.
func checkSpec(spec *HandlerSpec, cmd *Command) error {
	if spec == nil {
		return nil
	}

	for _, req := range spec.Config {
		if req.Required && cmd.Config[req.Name] == "" {
			return fmt.Errorf("config %q is required", req.Name)
		}
	}

	declared := make(map[string]*TargetSpec, len(cmd.Targets))
	for i := range cmd.Targets {
		declared[cmd.Targets[i].Name] = &cmd.Targets[i]
	}
	for _, req := range spec.Targets {
		ts, ok := declared[req.Name]
		if !ok {
			if req.Required {
				return fmt.Errorf("target %q is required", req.Name)
			}
			continue
		}
		if ts.TargetType()&^req.Type != 0 {
			return fmt.Errorf("target %q: types %v not accepted by handler", req.Name, ts.Types)
		}
	}

	return nil
}

// Exec executes a command on behalf of a player.
func (h *Handler) Exec(ctx context.Context, charId storage.Identifier, cmdName string, rawArgs ...string) error {
	compiled, ok := h.compiled[strings.ToLower(cmdName)]
	if !ok {
		return NewUserError(fmt.Sprintf("Unknown command: %s", cmdName))
	}

	session := h.world.GetPlayer(charId)
	if session == nil || session.Character == nil {
		return fmt.Errorf("no session for character %q", charId)
	}
	h.world.MarkPlayerActive(charId)

	inputs, err := parseInputs(compiled.cmd.Inputs, rawArgs)
	if err != nil {
		return err
	}

	// Pass 1: expand input references inside config values.
	zoneId, roomId := session.Location()
	config := make(map[string]string, len(compiled.cmd.Config))
	inputCtx := &InputContext{
		CharId: string(charId),
		Actor:  session.Character.Name,
		ZoneId: string(zoneId),
		RoomId: string(roomId),
		Inputs: inputs,
	}
	for k, v := range compiled.cmd.Config {
		expanded, err := expandInputTemplate(v, inputCtx)
		if err != nil {
			return fmt.Errorf("expanding config %q: %w", k, err)
		}
		config[k] = expanded
	}

	targets, err := h.resolver.ResolveSpecs(compiled.cmd.Targets, inputs, session.Character, session)
	if err != nil {
		return err
	}

	return compiled.cmdFunc(ctx, &CommandContext{
		CharId:  charId,
		Actor:   session.Character,
		Session: session,
		Config:  config,
		Inputs:  inputs,
		Targets: targets,
	})
}

// parseInputs validates raw string arguments against input specs and
// returns them keyed by name.
func parseInputs(specs []InputSpec, rawArgs []string) (map[string]any, error) {
	requiredCount := 0
	for _, spec := range specs {
		if spec.Required {
			requiredCount++
		}
	}

	if len(rawArgs) < requiredCount {
		return nil, NewUserError(fmt.Sprintf("Expected at least %d argument(s), got %d", requiredCount, len(rawArgs)))
	}

	hasRest := len(specs) > 0 && specs[len(specs)-1].Rest
	if !hasRest && len(rawArgs) > len(specs) {
		return nil, NewUserError(fmt.Sprintf("Expected at most %d argument(s), got %d", len(specs), len(rawArgs)))
	}

	inputs := make(map[string]any, len(specs))
	argIndex := 0

	for i := range specs {
		spec := &specs[i]

		if argIndex >= len(rawArgs) {
			if spec.Required {
				return nil, NewUserError(fmt.Sprintf("Missing required input: %s", spec.Name))
			}
			// Absent optional inputs get zero values so config templates
			// expand cleanly.
			if spec.Type == InputTypeNumber {
				inputs[spec.Name] = 0
			} else {
				inputs[spec.Name] = ""
			}
			continue
		}

		var raw string
		if spec.Rest {
			raw = strings.Join(rawArgs[argIndex:], " ")
			argIndex = len(rawArgs)
		} else {
			raw = rawArgs[argIndex]
			argIndex++
		}

		value, err := parseValue(spec.Type, raw)
		if err != nil {
			return nil, err
		}
		inputs[spec.Name] = value
	}

	return inputs, nil
}

func parseValue(inputType InputType, raw string) (any, error) {
	switch inputType {
	case InputTypeString:
		return raw, nil

	case InputTypeNumber:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, NewUserError(fmt.Sprintf("%q is not a valid number", raw))
		}
		return n, nil

	default:
		return nil, fmt.Errorf("unknown input type %q", inputType)
	}
}
