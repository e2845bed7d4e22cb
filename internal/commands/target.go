package commands

// TargetType identifies what kind of entity a resolved target may be.
// Values combine with bitwise OR for polymorphic targets.
type TargetType int

const (
	TargetTypePlayer TargetType = 1 << iota
	TargetTypeMobile
	TargetTypeObject
)

// Label returns a display name for error messages. Combined types read as
// a generic target.
func (t TargetType) Label() string {
	switch t {
	case TargetTypePlayer:
		return "Player"
	case TargetTypeMobile:
		return "Mobile"
	case TargetTypeObject:
		return "Object"
	default:
		return "Target"
	}
}
