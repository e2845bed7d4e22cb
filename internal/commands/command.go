package commands

import (
	"fmt"
	"strings"
)

// InputType represents the type of a command input parameter.
// Only primitive types are supported - target resolution is handled by the
// targets section.
type InputType string

const (
	InputTypeString InputType = "string" // Text input (single word if rest=false, multi-word if rest=true)
	InputTypeNumber InputType = "number" // Integer
)

// Scope defines where to look for targets. Can be combined with bitwise OR.
type Scope int

const (
	ScopeWorld     Scope = 1 << iota // All online players
	ScopeZone                        // Players in current zone
	ScopeRoom                        // Players/mobs/objects in current room
	ScopeInventory                   // Objects in actor's inventory
)

// InputSpec defines an input parameter that a command accepts from user input.
type InputSpec struct {
	Name     string    `json:"name"`
	Type     InputType `json:"type"`
	Required bool      `json:"required"`
	Rest     bool      `json:"rest"` // If true, captures all remaining input
}

// TargetSpec defines a target to be resolved at runtime.
type TargetSpec struct {
	Name        string   `json:"name"`                   // Name to access in handlers (e.g., "target" -> Targets["target"])
	Types       []string `json:"types"`                  // Entity types: player, mobile, object
	Scopes      []string `json:"scopes,omitempty"`       // Resolution scopes: room, world, zone, inventory
	Input       string   `json:"input"`                  // Which input provides the name to resolve
	Optional    bool     `json:"optional,omitempty"`     // If true, missing input -> nil (no error)
	ScopeTarget string   `json:"scope_target,omitempty"` // Resolve inside this earlier container target instead
}

// Scope returns the combined Scope value from the Scopes slice.
func (t *TargetSpec) Scope() Scope {
	var result Scope
	for _, s := range t.Scopes {
		switch strings.ToLower(s) {
		case "room":
			result |= ScopeRoom
		case "inventory":
			result |= ScopeInventory
		case "world":
			result |= ScopeWorld
		case "zone":
			result |= ScopeZone
		}
	}
	return result
}

// TargetType returns the combined TargetType value from the Types slice.
func (t *TargetSpec) TargetType() TargetType {
	var result TargetType
	for _, s := range t.Types {
		switch strings.ToLower(s) {
		case "player":
			result |= TargetTypePlayer
		case "mobile":
			result |= TargetTypeMobile
		case "object":
			result |= TargetTypeObject
		}
	}
	return result
}

// Command defines a command loaded from JSON.
type Command struct {
	Handler     string            `json:"handler"`
	Description string            `json:"description,omitempty"`
	Category    string            `json:"category,omitempty"`
	Config      map[string]string `json:"config,omitempty"`  // Config passed to handler, may contain input templates
	Targets     []TargetSpec      `json:"targets,omitempty"` // Targets to resolve at runtime
	Inputs      []InputSpec       `json:"inputs,omitempty"`  // User input parameters
}

func (c *Command) Validate() error {
	if c.Handler == "" {
		return fmt.Errorf("command handler not set")
	}

	for i, input := range c.Inputs {
		if input.Name == "" {
			return fmt.Errorf("input %d: name is required", i)
		}
		if input.Type == "" {
			return fmt.Errorf("input %q: type is required", input.Name)
		}
		switch input.Type {
		case InputTypeString, InputTypeNumber:
			// Valid
		default:
			return fmt.Errorf("input %q: unknown type %q", input.Name, input.Type)
		}
		// Only the last input can have rest=true
		if input.Rest && i != len(c.Inputs)-1 {
			return fmt.Errorf("input %q: only the last input can have rest=true", input.Name)
		}
	}

	// Build set of valid input names for target validation
	validInputs := make(map[string]bool)
	for _, input := range c.Inputs {
		validInputs[input.Name] = true
	}

	seenTargets := make(map[string]bool)
	for i, target := range c.Targets {
		if target.Name == "" {
			return fmt.Errorf("target %d: name is required", i)
		}
		if len(target.Types) == 0 {
			return fmt.Errorf("target %q: types is required", target.Name)
		}
		if target.TargetType() == 0 {
			return fmt.Errorf("target %q: unknown types %v", target.Name, target.Types)
		}
		if target.Input == "" {
			return fmt.Errorf("target %q: input is required", target.Name)
		}
		if !validInputs[target.Input] {
			return fmt.Errorf("target %q: input %q does not exist in inputs", target.Name, target.Input)
		}
		if len(target.Scopes) > 0 && target.Scope() == 0 {
			return fmt.Errorf("target %q: unknown scopes %v", target.Name, target.Scopes)
		}
		// scope_target must reference an earlier target so resolution
		// can proceed in declaration order.
		if target.ScopeTarget != "" && !seenTargets[target.ScopeTarget] {
			return fmt.Errorf("target %q: scope_target %q must reference an earlier target", target.Name, target.ScopeTarget)
		}
		seenTargets[target.Name] = true
	}

	return nil
}
