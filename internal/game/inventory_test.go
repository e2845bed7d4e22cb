package game

import (
	"errors"
	"testing"

	"github.com/hollowvale/mud/internal/storage"
)

// spawnObj builds a resolved instance for tests.
func spawnObj(t *testing.T, id string, def *Object) *ObjectInstance {
	t.Helper()
	oi, err := NewObjectInstance(storage.NewResolvedSmartIdentifier(id, def))
	if err != nil {
		t.Fatalf("spawning %s: %v", id, err)
	}
	return oi
}

func testSatchel() *Object {
	return &Object{
		Aliases:  []string{"satchel"},
		Name:     "herbal satchel",
		LongDesc: "A worn herbal satchel lies here.",
		Weight:   2,
		Flags:    []string{ObjectFlagContainer},
	}
}

func testPurse() *Object {
	return &Object{
		Aliases:  []string{"purse"},
		Name:     "small purse",
		LongDesc: "A small purse lies here.",
		Weight:   0.5,
		Flags:    []string{ObjectFlagContainer},
	}
}

func testCoin() *Object {
	return &Object{
		Aliases: []string{"coin"},
		Name:    "coin",
		Weight:  0.1,
	}
}

func testOre() *Object {
	return &Object{
		Aliases: []string{"ore"},
		Name:    "lump of ore",
		Weight:  1,
	}
}

func TestInventoryWeightTransitive(t *testing.T) {
	inv := NewInventory(50)

	satchel := spawnObj(t, "satchel", testSatchel())
	purse := spawnObj(t, "purse", testPurse())
	coin := testCoin()
	for i := 0; i < 3; i++ {
		if err := purse.Contents.Add(spawnObj(t, "coin", coin)); err != nil {
			t.Fatalf("adding coin: %v", err)
		}
	}
	if err := satchel.Contents.Add(purse); err != nil {
		t.Fatalf("nesting purse: %v", err)
	}
	if err := inv.Add(satchel); err != nil {
		t.Fatalf("adding satchel: %v", err)
	}
	ore := testOre()
	for i := 0; i < 2; i++ {
		if err := inv.Add(spawnObj(t, "ore", ore)); err != nil {
			t.Fatalf("adding ore: %v", err)
		}
	}

	// satchel 2 + purse 0.5 + 3 coins 0.3 + 2 ore 2 = 4.8
	if got := inv.Weight(); got != 4.8 {
		t.Errorf("Weight() = %v, want 4.8", got)
	}

	// Dropping a coin out of the nested purse moves the total immediately.
	dropped, err := purse.Contents.Remove(purse.Contents.Objs[0].InstanceId)
	if err != nil {
		t.Fatalf("removing coin: %v", err)
	}
	if dropped == nil {
		t.Fatal("removed coin is nil")
	}
	if got := inv.Weight(); got != 4.7 {
		t.Errorf("Weight() after nested removal = %v, want 4.7", got)
	}
}

func TestInventoryAddCapacity(t *testing.T) {
	tests := map[string]struct {
		build   func(t *testing.T) (*Inventory, *ObjectInstance)
		wantErr bool
	}{
		"fits under cap": {
			build: func(t *testing.T) (*Inventory, *ObjectInstance) {
				inv := NewInventory(5)
				return inv, spawnObj(t, "ore", testOre())
			},
		},
		"exceeds cap": {
			build: func(t *testing.T) (*Inventory, *ObjectInstance) {
				inv := NewInventory(0.5)
				return inv, spawnObj(t, "ore", testOre())
			},
			wantErr: true,
		},
		"uncapped never refuses": {
			build: func(t *testing.T) (*Inventory, *ObjectInstance) {
				inv := NewInventory(0)
				heavy := &Object{Aliases: []string{"anvil"}, Name: "anvil", Weight: 1000}
				return inv, spawnObj(t, "anvil", heavy)
			},
		},
		"container capacity counts contents": {
			build: func(t *testing.T) (*Inventory, *ObjectInstance) {
				def := testPurse()
				def.Capacity = 0.5
				purse := spawnObj(t, "purse", def)
				coin := spawnObj(t, "coin", testCoin())
				if err := purse.Contents.Add(coin); err != nil {
					t.Fatalf("seeding purse: %v", err)
				}
				heavy := &Object{Aliases: []string{"ingot"}, Name: "ingot", Weight: 0.45}
				return purse.Contents, spawnObj(t, "ingot", heavy)
			},
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			inv, oi := tt.build(t)
			before := len(inv.Objs)

			err := inv.Add(oi)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				var capErr *CapacityError
				if !errors.As(err, &capErr) {
					t.Fatalf("expected CapacityError, got %T", err)
				}
				// Atomicity: a refused add must leave nothing behind.
				if len(inv.Objs) != before {
					t.Errorf("inventory mutated on refused add")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(inv.Objs) != before+1 {
				t.Errorf("item not inserted")
			}
		})
	}
}

func TestInventoryAddEnclosingCapacity(t *testing.T) {
	// The carrier has room for 5. The satchel itself is uncapped, but
	// putting a 4-weight ingot into the satchel would push the carrier to
	// 6, so the nested add must refuse.
	inv := NewInventory(5)
	satchel := spawnObj(t, "satchel", testSatchel())
	if err := inv.Add(satchel); err != nil {
		t.Fatalf("adding satchel: %v", err)
	}

	ingot := spawnObj(t, "ingot", &Object{Aliases: []string{"ingot"}, Name: "iron ingot", Weight: 4})
	if err := satchel.Contents.Add(ingot); err == nil {
		t.Fatal("expected capacity error from enclosing inventory, got nil")
	}
	if len(satchel.Contents.Objs) != 0 {
		t.Error("refused add left item in container")
	}
	if got := inv.Weight(); got != 2 {
		t.Errorf("Weight() = %v, want 2", got)
	}

	// A 2.5-weight ingot fits: 2 + 2.5 <= 5.
	lighter := spawnObj(t, "bar", &Object{Aliases: []string{"bar"}, Name: "tin bar", Weight: 2.5})
	if err := satchel.Contents.Add(lighter); err != nil {
		t.Fatalf("adding lighter bar: %v", err)
	}
	if got := inv.Weight(); got != 4.5 {
		t.Errorf("Weight() = %v, want 4.5", got)
	}
}

func TestInventoryInvalidNesting(t *testing.T) {
	inv := NewInventory(0)
	chest := spawnObj(t, "chest", &Object{
		Aliases: []string{"chest"},
		Name:    "wooden chest",
		Weight:  5,
		Flags:   []string{ObjectFlagContainer},
	})
	if err := inv.Add(chest); err != nil {
		t.Fatalf("adding chest: %v", err)
	}

	// Directly into itself.
	if _, err := inv.Remove(chest.InstanceId); err != nil {
		t.Fatalf("removing chest: %v", err)
	}
	if err := chest.Contents.Add(chest); err != ErrInvalidNesting {
		t.Errorf("self-nesting: got %v, want ErrInvalidNesting", err)
	}

	// Through an intermediate container.
	satchel := spawnObj(t, "satchel", testSatchel())
	if err := chest.Contents.Add(satchel); err != nil {
		t.Fatalf("nesting satchel: %v", err)
	}
	if err := satchel.Contents.Add(chest); err != ErrInvalidNesting {
		t.Errorf("cyclic nesting: got %v, want ErrInvalidNesting", err)
	}
}

func TestInventoryRemove(t *testing.T) {
	inv := NewInventory(0)
	ore := spawnObj(t, "ore", testOre())
	if err := inv.Add(ore); err != nil {
		t.Fatalf("adding ore: %v", err)
	}

	if _, err := inv.Remove("no-such-instance"); err != ErrNotFound {
		t.Errorf("missing instance: got %v, want ErrNotFound", err)
	}

	got, err := inv.Remove(ore.InstanceId)
	if err != nil {
		t.Fatalf("removing ore: %v", err)
	}
	if got != ore {
		t.Error("Remove returned a different instance")
	}
	if len(inv.Objs) != 0 {
		t.Error("inventory not empty after removal")
	}
}

func TestInventoryGroupVisible(t *testing.T) {
	inv := NewInventory(0)
	satchel := spawnObj(t, "satchel", testSatchel())
	purse := spawnObj(t, "purse", testPurse())
	if err := satchel.Contents.Add(purse); err != nil {
		t.Fatalf("nesting purse: %v", err)
	}
	if err := inv.Add(satchel); err != nil {
		t.Fatalf("adding satchel: %v", err)
	}
	ore := testOre()
	for i := 0; i < 2; i++ {
		if err := inv.Add(spawnObj(t, "ore", ore)); err != nil {
			t.Fatalf("adding ore: %v", err)
		}
	}

	groups := inv.GroupVisible()
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].Object.Name != "herbal satchel" || groups[0].Count != 1 {
		t.Errorf("group 0 = %s x%d, want herbal satchel x1", groups[0].Object.Name, groups[0].Count)
	}
	if groups[1].Object.Name != "lump of ore" || groups[1].Count != 2 {
		t.Errorf("group 1 = %s x%d, want lump of ore x2", groups[1].Object.Name, groups[1].Count)
	}

	// The purse is inside the satchel; no group may surface it.
	for _, g := range groups {
		if g.Object.Name == "small purse" {
			t.Error("nested container contents leaked into visible groups")
		}
	}
}

func TestInventoryFindObj(t *testing.T) {
	inv := NewInventory(0)
	satchel := spawnObj(t, "satchel", testSatchel())
	if err := inv.Add(satchel); err != nil {
		t.Fatalf("adding satchel: %v", err)
	}

	if got := inv.FindObj("satchel"); got != satchel {
		t.Error("alias lookup failed")
	}
	if got := inv.FindObj("Herbal Satchel"); got != satchel {
		t.Error("case-insensitive name lookup failed")
	}
	if got := inv.FindObj("sword"); got != nil {
		t.Error("unexpected match for unknown name")
	}
}
