package commands

import (
	"context"
	"strings"

	"github.com/hollowvale/mud/internal/game"
	"github.com/hollowvale/mud/internal/text"
)

// LookHandlerFactory creates handlers that display the current room or a
// specific target in it.
// Targets:
//   - target (optional): the player, mobile, or object to look at
type LookHandlerFactory struct {
	world *game.WorldState
	pub   Publisher
}

// NewLookHandlerFactory creates a new LookHandlerFactory with access to world state.
func NewLookHandlerFactory(world *game.WorldState, pub Publisher) *LookHandlerFactory {
	return &LookHandlerFactory{world: world, pub: pub}
}

func (f *LookHandlerFactory) Spec() *HandlerSpec {
	return &HandlerSpec{
		Targets: []TargetRequirement{
			{Name: "target", Type: TargetTypePlayer | TargetTypeMobile | TargetTypeObject, Required: false},
		},
	}
}

func (f *LookHandlerFactory) ValidateConfig(config map[string]string) error {
	return nil
}

func (f *LookHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		if target := cmdCtx.Targets["target"]; target != nil {
			return f.showTarget(cmdCtx, target)
		}
		return f.showRoom(cmdCtx)
	}, nil
}

// showRoom displays the current room description.
func (f *LookHandlerFactory) showRoom(cmdCtx *CommandContext) error {
	zoneId, roomId := cmdCtx.Session.Location()

	ri := f.world.GetRoom(zoneId, roomId)
	if ri == nil {
		return NewUserError("You are in an invalid location.")
	}

	roomDesc := ri.Describe(cmdCtx.Actor.Name, f.world.Atmosphere())
	return f.pub.PublishToPlayer(cmdCtx.CharId, []byte(roomDesc))
}

// showTarget displays information about a specific target.
func (f *LookHandlerFactory) showTarget(cmdCtx *CommandContext, target *TargetRef) error {
	dict := f.world.Dictionary()

	var msg string
	switch target.Type {
	case TargetTypePlayer:
		self := target.Player.CharId == cmdCtx.CharId
		msg = target.Player.Session.Character.View(dict).Describe(self)
	case TargetTypeMobile:
		msg = target.Mob.Instance.View(dict).Describe(false)
	case TargetTypeObject:
		msg = f.describeObj(cmdCtx, target.Obj)
	default:
		return NewUserError("You can't look at that.")
	}

	return f.pub.PublishToPlayer(cmdCtx.CharId, []byte(msg))
}

// describeObj renders an object's detailed description. A container only
// reveals its contents to the one carrying it; everyone else sees the
// container and nothing inside.
func (f *LookHandlerFactory) describeObj(cmdCtx *CommandContext, obj *ObjectRef) string {
	def := obj.Instance.Definition()

	lines := []string{def.DetailedDesc}
	if def.DetailedDesc == "" {
		lines = []string{"You see " + text.WithArticle(def.Name) + "."}
	}

	if def.HasFlag(game.ObjectFlagContainer) && obj.Instance.HeldWithin(cmdCtx.Actor.Inventory) {
		groups := obj.Instance.Contents.Group()
		if len(groups) == 0 {
			lines = append(lines, "It is empty.")
		} else {
			lines = append(lines, "It contains:")
			for _, g := range groups {
				lines = append(lines, "  "+text.CountedName(g.Object.Name, g.Count))
			}
		}
	}

	return strings.Join(lines, "\n")
}
