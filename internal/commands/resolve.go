package commands

import (
	"fmt"

	"github.com/hollowvale/mud/internal/game"
	"github.com/hollowvale/mud/internal/text"
)

// SearchSpace pairs a TargetFinder with an optional ObjectRemover.
// The Remover is used as the Source in ObjectRef when an object is found.
type SearchSpace struct {
	Finder  TargetFinder
	Remover ObjectRemover
}

// FindTarget searches spaces in order for the first matching target.
// It checks player, then mobile, then object within each space, filtering
// by the allowed target types.
func FindTarget(name string, tt TargetType, spaces []SearchSpace) (*TargetRef, error) {
	for _, sp := range spaces {
		if tt&TargetTypePlayer != 0 {
			if ps := sp.Finder.FindPlayer(name); ps != nil {
				return &TargetRef{
					Type:   TargetTypePlayer,
					Player: PlayerRefFromState(ps),
				}, nil
			}
		}
		if tt&TargetTypeMobile != 0 {
			if mi := sp.Finder.FindMob(name); mi != nil {
				return &TargetRef{
					Type: TargetTypeMobile,
					Mob:  MobRefFromInstance(mi),
				}, nil
			}
		}
		if tt&TargetTypeObject != 0 {
			if oi := sp.Finder.FindObj(name); oi != nil {
				return &TargetRef{
					Type: TargetTypeObject,
					Obj:  ObjRefFromInstance(oi, sp.Remover),
				}, nil
			}
		}
	}
	return nil, NewUserError(fmt.Sprintf("%s %q not found.", tt.Label(), name))
}

// TargetScopes maps scope flags to search spaces for a given actor and
// session. Implementations decide where to look without coupling the
// resolver to any particular game state type.
type TargetScopes interface {
	SpacesFor(scope Scope, actor *game.Character, session *game.PlayerState) ([]SearchSpace, error)
}

// TargetResolver resolves command target specs into TargetRefs.
type TargetResolver struct {
	scopes TargetScopes
}

// NewTargetResolver creates a TargetResolver backed by the given TargetScopes.
func NewTargetResolver(scopes TargetScopes) *TargetResolver {
	return &TargetResolver{scopes: scopes}
}

// ResolveSpecs resolves all targets from the command's targets section.
// Specs are processed in order so that scope_target references to earlier
// targets work correctly. Inputs are assumed to have been validated by
// parseInputs.
func (r *TargetResolver) ResolveSpecs(specs []TargetSpec, inputs map[string]any, actor *game.Character, session *game.PlayerState) (map[string]*TargetRef, error) {
	targets := make(map[string]*TargetRef, len(specs))

	for _, spec := range specs {
		name, _ := inputs[spec.Input].(string)
		if name == "" {
			if spec.Optional {
				targets[spec.Name] = nil
				continue
			}
			return nil, NewUserError(fmt.Sprintf("Input %q is required.", spec.Input))
		}

		// Container scoping takes priority over regular scopes
		spaces, handled, err := containerSpaces(spec, targets)
		if err != nil {
			return nil, err
		}
		if !handled {
			spaces, err = r.scopes.SpacesFor(spec.Scope(), actor, session)
			if err != nil {
				return nil, err
			}
		}

		ref, err := FindTarget(name, spec.TargetType(), spaces)
		if err != nil {
			return nil, err
		}
		targets[spec.Name] = ref
	}

	return targets, nil
}

// containerSpaces checks if a spec has a scope_target and returns
// container-only search spaces when the referenced target resolved to a
// container object. Returns (spaces, handled, error) where handled=true
// means container scoping applies.
func containerSpaces(spec TargetSpec, targets map[string]*TargetRef) ([]SearchSpace, bool, error) {
	if spec.ScopeTarget == "" {
		return nil, false, nil
	}

	scopeRef := targets[spec.ScopeTarget]
	if scopeRef == nil || scopeRef.Obj == nil || scopeRef.Obj.Instance == nil {
		// Scope target not resolved (likely optional) - fall through to
		// normal scopes
		return nil, false, nil
	}

	def := scopeRef.Obj.Instance.Definition()
	if def == nil || !def.HasFlag(game.ObjectFlagContainer) {
		return nil, false, NewUserError(fmt.Sprintf("%s is not a container.", text.Capitalize(scopeRef.Obj.Name)))
	}

	contents := scopeRef.Obj.Instance.Contents
	if contents == nil {
		return []SearchSpace{}, true, nil
	}

	return []SearchSpace{
		{Finder: objectOnlyFinder{contents}, Remover: contents},
	}, true, nil
}
