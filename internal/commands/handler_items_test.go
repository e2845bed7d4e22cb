package commands

import (
	"context"
	"testing"
)

func TestGetAndDrop(t *testing.T) {
	env := testHandler(t)
	room := env.world.GetRoom("vale", "square")
	room.AddObj(env.spawn(t, "ore"))

	if err := env.handler.Exec(context.Background(), "bren", "get", "ore"); err != nil {
		t.Fatalf("get ore: %v", err)
	}
	if env.char(t, "bren").Inventory.FindObj("ore") == nil {
		t.Error("ore not in inventory")
	}
	if room.FindObj("ore") != nil {
		t.Error("ore still on the floor")
	}
	if got := env.pub.lastTo("zone-vale-room-square"); got != "Bren picks up lump of ore." {
		t.Errorf("room message = %q", got)
	}

	if err := env.handler.Exec(context.Background(), "bren", "drop", "ore"); err != nil {
		t.Fatalf("drop ore: %v", err)
	}
	if env.char(t, "bren").Inventory.FindObj("ore") != nil {
		t.Error("ore still in inventory")
	}
	if room.FindObj("ore") == nil {
		t.Error("ore not back on the floor")
	}
	if got := env.pub.lastTo("zone-vale-room-square"); got != "Bren drops lump of ore." {
		t.Errorf("room message = %q", got)
	}
}

func TestGetRefusedOverCapacity(t *testing.T) {
	env := testHandler(t)
	room := env.world.GetRoom("vale", "square")
	room.AddObj(env.spawn(t, "boulder"))

	err := env.handler.Exec(context.Background(), "bren", "get", "boulder")
	want := "You can't carry that much more weight (carrying 0.0 of 50.0)."
	if msg := userErr(t, err); msg != want {
		t.Errorf("got %q, want %q", msg, want)
	}

	// The failed transfer put the boulder straight back on the floor.
	if room.FindObj("boulder") == nil {
		t.Error("boulder lost by the refused get")
	}
	if env.char(t, "bren").Inventory.FindObj("boulder") != nil {
		t.Error("boulder ended up in inventory despite the refusal")
	}
}

func TestGetFromContainer(t *testing.T) {
	env := testHandler(t)
	satchel := env.give(t, "bren", "satchel")
	coin := env.spawn(t, "coin")
	if err := satchel.Contents.Add(coin); err != nil {
		t.Fatalf("stocking satchel: %v", err)
	}

	if err := env.handler.Exec(context.Background(), "bren", "get", "coin", "satchel"); err != nil {
		t.Fatalf("get coin satchel: %v", err)
	}

	inv := env.char(t, "bren").Inventory
	if inv.Get(coin.InstanceId) == nil {
		t.Error("coin not moved to the top level")
	}
	if satchel.Contents.Get(coin.InstanceId) != nil {
		t.Error("coin still inside the satchel")
	}
}

func TestPutIntoContainer(t *testing.T) {
	env := testHandler(t)
	satchel := env.give(t, "bren", "satchel")
	coin := env.give(t, "bren", "coin")

	if err := env.handler.Exec(context.Background(), "bren", "put", "coin", "satchel"); err != nil {
		t.Fatalf("put coin satchel: %v", err)
	}
	if satchel.Contents.Get(coin.InstanceId) == nil {
		t.Error("coin not inside the satchel")
	}
	if got := env.pub.lastTo("zone-vale-room-square"); got != "Bren puts copper coin in herbal satchel." {
		t.Errorf("room message = %q", got)
	}
}

func TestPutRefusals(t *testing.T) {
	env := testHandler(t)
	purse := env.give(t, "bren", "purse")
	env.give(t, "bren", "ore")
	env.give(t, "bren", "satchel")

	// A coin in the purse leaves no room for the one-weight ore.
	if err := purse.Contents.Add(env.spawn(t, "coin")); err != nil {
		t.Fatalf("stocking purse: %v", err)
	}

	tests := map[string]struct {
		args []string
		want string
	}{
		"not a container": {
			args: []string{"put", "purse", "ore"},
			want: "Lump of ore is not a container.",
		},
		"over container capacity": {
			args: []string{"put", "ore", "purse"},
			want: "The coin purse can't hold that much.",
		},
		"into itself": {
			args: []string{"put", "satchel", "satchel"},
			want: "You can't put a herbal satchel inside itself.",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := env.handler.Exec(context.Background(), "bren", tt.args[0], tt.args[1:]...)
			if msg := userErr(t, err); msg != tt.want {
				t.Errorf("got %q, want %q", msg, tt.want)
			}
		})
	}

	// Every refusal above put the item back; nothing went missing.
	inv := env.char(t, "bren").Inventory
	for _, obj := range []string{"purse", "ore", "satchel"} {
		if inv.FindObj(obj) == nil {
			t.Errorf("%s missing after refused transfers", obj)
		}
	}
}

func TestGiveToPlayer(t *testing.T) {
	env := testHandler(t)
	coin := env.give(t, "bren", "coin")

	if err := env.handler.Exec(context.Background(), "bren", "give", "coin", "wren"); err != nil {
		t.Fatalf("give coin wren: %v", err)
	}

	if env.char(t, "wren").Inventory.Get(coin.InstanceId) == nil {
		t.Error("coin not in recipient inventory")
	}
	if env.char(t, "bren").Inventory.Get(coin.InstanceId) != nil {
		t.Error("coin still with the giver")
	}
	if got := env.pub.lastTo("player-wren"); got != "Bren gives you copper coin." {
		t.Errorf("recipient message = %q", got)
	}
	if got := env.pub.lastTo("zone-vale-room-square"); got != "Bren gives copper coin to Wren." {
		t.Errorf("room message = %q", got)
	}
}

func TestGiveToMobile(t *testing.T) {
	env := testHandler(t)
	coin := env.give(t, "bren", "coin")

	if err := env.handler.Exec(context.Background(), "bren", "give", "coin", "mara"); err != nil {
		t.Fatalf("give coin mara: %v", err)
	}

	mob := env.world.GetRoom("vale", "square").FindMob("mara")
	if mob == nil {
		t.Fatal("herbalist not in the square")
	}
	if mob.Inventory.Get(coin.InstanceId) == nil {
		t.Error("coin not in mobile inventory")
	}
}

func TestGiveToSelf(t *testing.T) {
	env := testHandler(t)
	env.give(t, "bren", "coin")

	err := env.handler.Exec(context.Background(), "bren", "give", "coin", "bren")
	if msg := userErr(t, err); msg != "You can't give something to yourself." {
		t.Errorf("got %q", msg)
	}
	if env.char(t, "bren").Inventory.FindObj("coin") == nil {
		t.Error("coin lost by the refused self-give")
	}
}

func TestMoveBlockedWhenOverburdened(t *testing.T) {
	env := testHandler(t)
	char := env.char(t, "bren")

	// Force past the cap; the refusal happens before anything mutates.
	boulder := env.spawn(t, "boulder")
	char.Inventory.Objs = append(char.Inventory.Objs, boulder)

	err := env.handler.Exec(context.Background(), "bren", "north")
	if msg := userErr(t, err); msg != "You are carrying too much to move. Drop something first." {
		t.Errorf("got %q", msg)
	}
	if _, room := env.world.GetPlayer("bren").Location(); room != "square" {
		t.Errorf("blocked move still relocated the player to %q", room)
	}

	// Dropping the weight re-enables movement immediately.
	if _, err := char.Inventory.Remove(boulder.InstanceId); err != nil {
		t.Fatalf("removing boulder: %v", err)
	}
	if err := env.handler.Exec(context.Background(), "bren", "north"); err != nil {
		t.Errorf("move after dropping: %v", err)
	}
}

func TestMoveUnknownExit(t *testing.T) {
	env := testHandler(t)

	err := env.handler.Exec(context.Background(), "bren", "go", "west")
	if msg := userErr(t, err); msg != "You cannot go west from here." {
		t.Errorf("got %q", msg)
	}
}

func TestMoveAnnouncesBothRooms(t *testing.T) {
	env := testHandler(t)

	if err := env.handler.Exec(context.Background(), "bren", "north"); err != nil {
		t.Fatalf("north: %v", err)
	}

	if got := env.pub.lastTo("zone-vale-room-square"); got != "Bren leaves north." {
		t.Errorf("origin message = %q", got)
	}
	if got := env.pub.lastTo("zone-vale-room-shrine"); got != "Bren arrives." {
		t.Errorf("destination message = %q", got)
	}
	// The traveler gets the new room's description.
	if got := env.pub.lastTo("player-bren"); got == "" {
		t.Error("no room description sent to the traveler")
	}
}
