package game

// Inventory holds object instances carried by a character, mobile, or
// container. Order is insertion order; grouping for display happens at
// render time.
type Inventory struct {
	Objs []*ObjectInstance `json:"objs,omitempty"`

	// MaxWeight caps the transitive weight of everything in this inventory.
	// Zero means uncapped. Entity inventories carry the entity's max carry
	// weight; container inventories carry the definition's capacity.
	MaxWeight float64 `json:"max_weight,omitempty"`

	// owner is the container instance this inventory belongs to, nil for an
	// entity's top-level inventory. Used to walk the nesting chain for
	// cycle and capacity checks.
	owner *ObjectInstance
}

// NewInventory creates an empty inventory with the given weight cap.
func NewInventory(maxWeight float64) *Inventory {
	return &Inventory{MaxWeight: maxWeight}
}

func newContainerInventory(owner *ObjectInstance, capacity float64) *Inventory {
	return &Inventory{MaxWeight: capacity, owner: owner}
}

// Weight returns the transitive weight of everything held: each item's unit
// weight plus, recursively, the weight of anything inside containers.
// Computed on demand so nested mutations can never leave a stale total.
func (inv *Inventory) Weight() float64 {
	var w float64
	for _, oi := range inv.Objs {
		w += oi.Weight()
	}
	return w
}

// Add places an object instance into the inventory.
//
// The operation is atomic: it first refuses any nesting that would place a
// container inside itself (ErrInvalidNesting), then checks the weight cap of
// this inventory and of every enclosing inventory up the chain
// (CapacityError). Only when every check passes is the item inserted.
func (inv *Inventory) Add(oi *ObjectInstance) error {
	for enc := inv; enc != nil; enc = enc.enclosing() {
		if enc.owner != nil && enc.owner == oi {
			return ErrInvalidNesting
		}
	}

	w := oi.Weight()
	for enc := inv; enc != nil; enc = enc.enclosing() {
		if enc.MaxWeight > 0 && enc.Weight()+w > enc.MaxWeight {
			name := ""
			if def := oi.Definition(); def != nil {
				name = def.Name
			}
			return &CapacityError{
				Item:     name,
				Weight:   w,
				Limit:    enc.MaxWeight,
				Carrying: enc.Weight(),
			}
		}
	}

	inv.Objs = append(inv.Objs, oi)
	oi.holder = inv
	return nil
}

// enclosing returns the inventory holding this inventory's owning container,
// or nil at the top of the chain.
func (inv *Inventory) enclosing() *Inventory {
	if inv.owner == nil {
		return nil
	}
	return inv.owner.holder
}

// Remove removes an object instance by ID and returns it.
func (inv *Inventory) Remove(instanceId string) (*ObjectInstance, error) {
	for i, oi := range inv.Objs {
		if oi.InstanceId == instanceId {
			inv.Objs = append(inv.Objs[:i], inv.Objs[i+1:]...)
			oi.holder = nil
			return oi, nil
		}
	}
	return nil, ErrNotFound
}

// RemoveObj removes an object instance by ID, returning nil when absent.
// Satisfies the command layer's ObjectRemover interface.
func (inv *Inventory) RemoveObj(instanceId string) *ObjectInstance {
	oi, err := inv.Remove(instanceId)
	if err != nil {
		return nil
	}
	return oi
}

// AddObj adds an object instance, discarding any error. Satisfies the
// command layer's ObjectHolder interface; only uncapped holders (room
// floors) should be used through it.
func (inv *Inventory) AddObj(oi *ObjectInstance) {
	_ = inv.Add(oi)
}

// Get returns an object instance by ID, or nil if not found.
func (inv *Inventory) Get(instanceId string) *ObjectInstance {
	for _, oi := range inv.Objs {
		if oi.InstanceId == instanceId {
			return oi
		}
	}
	return nil
}

// FindObj returns the first object instance matching the given name or
// alias, or nil.
func (inv *Inventory) FindObj(name string) *ObjectInstance {
	for _, oi := range inv.Objs {
		if oi.MatchName(name) {
			return oi
		}
	}
	return nil
}

// Contents returns the owner's own full view: every directly-held instance
// in insertion order. Nested container contents are reachable through each
// instance, not flattened here.
func (inv *Inventory) Contents() []*ObjectInstance {
	return inv.Objs
}

// VisibleContents returns what an outside observer may see: directly-held,
// non-hidden instances. Anything nested inside a container is excluded; the
// container itself is visible, its contents are not.
func (inv *Inventory) VisibleContents() []*ObjectInstance {
	var out []*ObjectInstance
	for _, oi := range inv.Objs {
		def := oi.Definition()
		if def != nil && def.HasFlag(ObjectFlagHidden) {
			continue
		}
		out = append(out, oi)
	}
	return out
}

// ItemGroup is one display row of grouped identical items.
type ItemGroup struct {
	Object *Object
	Count  int
}

// Group stacks every directly-held item by definition in first-acquired
// order. Used for the owner's own inventory listing.
func (inv *Inventory) Group() []ItemGroup {
	return groupInstances(inv.Contents())
}

// GroupVisible stacks observer-visible items by definition in
// first-acquired order.
func (inv *Inventory) GroupVisible() []ItemGroup {
	return groupInstances(inv.VisibleContents())
}

func groupInstances(objs []*ObjectInstance) []ItemGroup {
	var groups []ItemGroup
	index := make(map[*Object]int)
	for _, oi := range objs {
		def := oi.Definition()
		if def == nil {
			continue
		}
		if i, ok := index[def]; ok {
			groups[i].Count++
			continue
		}
		index[def] = len(groups)
		groups = append(groups, ItemGroup{Object: def, Count: 1})
	}
	return groups
}

// relink rebuilds the holder pointers after a load. Resolve on each
// instance handles the nested chains.
func (inv *Inventory) relink() {
	for _, oi := range inv.Objs {
		oi.holder = inv
	}
}
