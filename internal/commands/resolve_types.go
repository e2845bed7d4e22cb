package commands

import (
	"github.com/hollowvale/mud/internal/game"
	"github.com/hollowvale/mud/internal/storage"
)

// --- Finder interfaces ---

type PlayerFinder interface {
	FindPlayer(string) *game.PlayerState
}

type ObjectFinder interface {
	FindObj(string) *game.ObjectInstance
}

type MobileFinder interface {
	FindMob(string) *game.MobileInstance
}

// TargetFinder combines all finder interfaces.
// RoomInstance and ZoneInstance satisfy this.
type TargetFinder interface {
	PlayerFinder
	ObjectFinder
	MobileFinder
}

// --- Source interfaces ---

// ObjectRemover can have objects removed from it.
// Inventory and RoomInstance satisfy this.
type ObjectRemover interface {
	RemoveObj(instanceId string) *game.ObjectInstance
}

// ObjectHolder can have objects added and removed.
type ObjectHolder interface {
	ObjectRemover
	AddObj(obj *game.ObjectInstance)
}

// --- Ref types ---

// PlayerRef is the handler-facing view of a resolved player.
type PlayerRef struct {
	CharId  storage.Identifier
	Name    string
	Session *game.PlayerState
}

func PlayerRefFromState(ps *game.PlayerState) *PlayerRef {
	if ps == nil || ps.Character == nil {
		return nil
	}
	return &PlayerRef{
		CharId:  ps.CharId,
		Name:    ps.Character.Name,
		Session: ps,
	}
}

// MobileRef is the handler-facing view of a resolved mob.
type MobileRef struct {
	InstanceId string
	Name       string
	Instance   *game.MobileInstance
}

func MobRefFromInstance(mi *game.MobileInstance) *MobileRef {
	if mi == nil || mi.Definition() == nil {
		return nil
	}
	return &MobileRef{
		InstanceId: mi.InstanceId,
		Name:       mi.Definition().Name,
		Instance:   mi,
	}
}

// ObjectRef is the handler-facing view of a resolved object.
type ObjectRef struct {
	InstanceId string
	ObjectId   string
	Name       string
	Source     ObjectRemover
	Instance   *game.ObjectInstance
}

func ObjRefFromInstance(oi *game.ObjectInstance, source ObjectRemover) *ObjectRef {
	if oi == nil || oi.Definition() == nil {
		return nil
	}
	return &ObjectRef{
		InstanceId: oi.InstanceId,
		ObjectId:   oi.Object.Id(),
		Name:       oi.Definition().Name,
		Source:     source,
		Instance:   oi,
	}
}

// TargetRef is a polymorphic target reference that could be a player,
// mobile, or object.
type TargetRef struct {
	Type   TargetType
	Player *PlayerRef // Non-nil if Type == TargetTypePlayer
	Mob    *MobileRef // Non-nil if Type == TargetTypeMobile
	Obj    *ObjectRef // Non-nil if Type == TargetTypeObject
}

// Name returns the display name of whichever entity resolved.
func (t *TargetRef) Name() string {
	switch t.Type {
	case TargetTypePlayer:
		return t.Player.Name
	case TargetTypeMobile:
		return t.Mob.Name
	case TargetTypeObject:
		return t.Obj.Name
	}
	return ""
}
