package commands

import (
	"context"
	"strings"
	"testing"

	"github.com/hollowvale/mud/internal/game"
)

func TestLookShowsRoom(t *testing.T) {
	env := testHandler(t)

	if err := env.handler.Exec(context.Background(), "bren", "look"); err != nil {
		t.Fatalf("look: %v", err)
	}

	out := env.pub.lastTo("player-bren")
	for _, want := range []string{
		"The Square",
		"A cobbled square ringed by stalls.",
		"Exits: north",
		"Wren is here.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("look output missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Bren is here.") {
		t.Error("viewer listed in their own room")
	}
}

func TestLookAtPlayer(t *testing.T) {
	env := testHandler(t)
	env.char(t, "wren").SetUserDesc("is tall and watchful")

	if err := env.handler.Exec(context.Background(), "bren", "look", "wren"); err != nil {
		t.Fatalf("look wren: %v", err)
	}

	out := env.pub.lastTo("player-bren")
	if !strings.Contains(out, "You see Wren.") {
		t.Errorf("missing identity line in:\n%s", out)
	}
	if !strings.Contains(out, "They are tall and watchful") {
		t.Errorf("missing normalized user description in:\n%s", out)
	}
}

func TestLookAtSelf(t *testing.T) {
	env := testHandler(t)

	if err := env.handler.Exec(context.Background(), "bren", "look", "bren"); err != nil {
		t.Fatalf("look bren: %v", err)
	}

	out := env.pub.lastTo("player-bren")
	if !strings.Contains(out, "You are Bren.") {
		t.Errorf("self-look not in second person:\n%s", out)
	}
}

func TestLookAtContainerPrivacy(t *testing.T) {
	env := testHandler(t)

	// Bren's own satchel reveals its contents.
	satchel := env.give(t, "bren", "satchel")
	if err := satchel.Contents.Add(env.spawn(t, "coin")); err != nil {
		t.Fatalf("stocking satchel: %v", err)
	}

	if err := env.handler.Exec(context.Background(), "bren", "look", "satchel"); err != nil {
		t.Fatalf("look satchel: %v", err)
	}
	out := env.pub.lastTo("player-bren")
	if !strings.Contains(out, "It contains:") || !strings.Contains(out, "a copper coin") {
		t.Errorf("own satchel hides its contents:\n%s", out)
	}

	// A satchel on the floor shows nothing inside, not even to the player
	// who just dropped it.
	floorSatchel := env.spawn(t, "satchel")
	if err := floorSatchel.Contents.Add(env.spawn(t, "ore")); err != nil {
		t.Fatalf("stocking floor satchel: %v", err)
	}
	env.world.GetRoom("vale", "square").AddObj(floorSatchel)
	env.char(t, "bren").Inventory.RemoveObj(satchel.InstanceId)

	env.pub.reset()
	if err := env.handler.Exec(context.Background(), "bren", "look", "satchel"); err != nil {
		t.Fatalf("look floor satchel: %v", err)
	}
	out = env.pub.lastTo("player-bren")
	if strings.Contains(out, "It contains:") || strings.Contains(out, "ore") {
		t.Errorf("floor satchel leaked its contents:\n%s", out)
	}
}

func TestInventoryListing(t *testing.T) {
	env := testHandler(t)
	env.give(t, "bren", "torch")
	env.give(t, "bren", "ore")
	env.give(t, "bren", "ore")

	if err := env.handler.Exec(context.Background(), "bren", "inventory"); err != nil {
		t.Fatalf("inventory: %v", err)
	}

	out := env.pub.lastTo("player-bren")
	for _, want := range []string{
		"You are holding:",
		"  a torch",
		"You are carrying:",
		"  two lumps of ore",
		"Weight: 2.5/50.0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("inventory missing %q in:\n%s", want, out)
		}
	}
}

func TestInventoryEmpty(t *testing.T) {
	env := testHandler(t)

	if err := env.handler.Exec(context.Background(), "bren", "inventory"); err != nil {
		t.Fatalf("inventory: %v", err)
	}

	out := env.pub.lastTo("player-bren")
	if !strings.Contains(out, "  Nothing") {
		t.Errorf("empty inventory not reported:\n%s", out)
	}
	if strings.Contains(out, "You are holding:") {
		t.Errorf("held section shown with nothing held:\n%s", out)
	}
}

func TestDescribeSetsUserDesc(t *testing.T) {
	env := testHandler(t)

	err := env.handler.Exec(context.Background(), "bren", "describe", "is", "weathered", "and", "lean")
	if err != nil {
		t.Fatalf("describe: %v", err)
	}

	if got := env.char(t, "bren").UserDesc; got != "weathered and lean" {
		t.Errorf("UserDesc = %q, want copula stripped", got)
	}
	if got := env.pub.lastTo("player-bren"); got != "Others will now see: They are weathered and lean" {
		t.Errorf("confirmation = %q", got)
	}
}

func TestDescribeEmpty(t *testing.T) {
	env := testHandler(t)

	err := env.handler.Exec(context.Background(), "bren", "describe")
	if msg := userErr(t, err); msg != "Describe yourself as what?" {
		t.Errorf("got %q", msg)
	}
}

func TestWeatherCommand(t *testing.T) {
	env := testHandler(t)
	env.world.Atmosphere().SetWeather(game.WeatherSnow, game.IntensityHeavy, true)

	if err := env.handler.Exec(context.Background(), "bren", "weather"); err != nil {
		t.Fatalf("weather: %v", err)
	}
	out := env.pub.lastTo("player-bren")
	if !strings.Contains(out, "Snow") && !strings.Contains(out, "snow") {
		t.Errorf("outdoor weather not described:\n%s", out)
	}
	if !strings.Contains(out, "The snow is heavy.") {
		t.Errorf("intensity line missing:\n%s", out)
	}

	// From inside the shrine only the light level shows.
	if err := env.handler.Exec(context.Background(), "wren", "go", "north"); err != nil {
		t.Fatalf("moving wren: %v", err)
	}
	env.pub.reset()
	if err := env.handler.Exec(context.Background(), "wren", "weather"); err != nil {
		t.Fatalf("weather indoors: %v", err)
	}
	out = env.pub.lastTo("player-wren")
	if strings.Contains(out, "snow") || strings.Contains(out, "Snow") {
		t.Errorf("sky weather leaked indoors:\n%s", out)
	}
}

func TestTimeCommand(t *testing.T) {
	env := testHandler(t)

	if err := env.handler.Exec(context.Background(), "bren", "time"); err != nil {
		t.Fatalf("time: %v", err)
	}
	out := env.pub.lastTo("player-bren")
	if !strings.Contains(out, "day 1 of spring, year 1") {
		t.Errorf("calendar not reported:\n%s", out)
	}
}

func TestSetWeatherRequiresAdmin(t *testing.T) {
	env := testHandler(t)

	err := env.handler.Exec(context.Background(), "bren", "setweather", "rain")
	if msg := userErr(t, err); msg != "You don't have permission to do that." {
		t.Errorf("got %q", msg)
	}
}

func TestSetWeatherImmediate(t *testing.T) {
	env := testHandler(t)
	env.char(t, "bren").Admin = true

	if err := env.handler.Exec(context.Background(), "bren", "setweather", "snow", "heavy"); err != nil {
		t.Fatalf("setweather: %v", err)
	}

	w := env.world.Atmosphere().Weather()
	if w.Type != game.WeatherSnow || w.Intensity != game.IntensityHeavy {
		t.Errorf("weather = %v, want heavy snow", w)
	}
	if got := env.pub.lastTo("player-bren"); got != "The weather is now heavy snow." {
		t.Errorf("confirmation = %q", got)
	}

	// The very next render already reads the new sky.
	env.pub.reset()
	if err := env.handler.Exec(context.Background(), "bren", "look"); err != nil {
		t.Fatalf("look: %v", err)
	}
	if out := env.pub.lastTo("player-bren"); !strings.Contains(strings.ToLower(out), "snow") {
		t.Errorf("room description does not show the new weather:\n%s", out)
	}
}

func TestSetWeatherDefaultsAndClear(t *testing.T) {
	env := testHandler(t)
	env.char(t, "bren").Admin = true

	// No intensity named defaults to moderate.
	if err := env.handler.Exec(context.Background(), "bren", "setweather", "rain"); err != nil {
		t.Fatalf("setweather rain: %v", err)
	}
	if w := env.world.Atmosphere().Weather(); w.Intensity != game.IntensityModerate {
		t.Errorf("intensity = %v, want moderate", w.Intensity)
	}

	// Clear always reads as intensity none.
	if err := env.handler.Exec(context.Background(), "bren", "setweather", "clear", "heavy"); err != nil {
		t.Fatalf("setweather clear: %v", err)
	}
	if w := env.world.Atmosphere().Weather(); w.Intensity != game.IntensityNone {
		t.Errorf("clear weather intensity = %v, want none", w.Intensity)
	}
	if got := env.pub.lastTo("player-bren"); got != "The weather is now clear." {
		t.Errorf("confirmation = %q", got)
	}
}

func TestSetWeatherLockUnlock(t *testing.T) {
	env := testHandler(t)
	env.char(t, "bren").Admin = true
	atmo := env.world.Atmosphere()
	atmo.Unlock()

	if err := env.handler.Exec(context.Background(), "bren", "setweather", "lock"); err != nil {
		t.Fatalf("setweather lock: %v", err)
	}
	if !atmo.Locked() {
		t.Error("lock did not take")
	}

	if err := env.handler.Exec(context.Background(), "bren", "setweather", "unlock"); err != nil {
		t.Fatalf("setweather unlock: %v", err)
	}
	if atmo.Locked() {
		t.Error("unlock did not take")
	}
}

func TestSetWeatherUnknownType(t *testing.T) {
	env := testHandler(t)
	env.char(t, "bren").Admin = true

	err := env.handler.Exec(context.Background(), "bren", "setweather", "locusts")
	if msg := userErr(t, err); msg != `Unknown weather type "locusts".` {
		t.Errorf("got %q", msg)
	}
}

func TestWhoListsPlayers(t *testing.T) {
	env := testHandler(t)

	if err := env.handler.Exec(context.Background(), "bren", "who"); err != nil {
		t.Fatalf("who: %v", err)
	}

	out := env.pub.lastTo("player-bren")
	for _, want := range []string{"Players online:", "Bren the Newcomer", "Wren the Newcomer"} {
		if !strings.Contains(out, want) {
			t.Errorf("who output missing %q in:\n%s", want, out)
		}
	}
}

func TestHelp(t *testing.T) {
	env := testHandler(t)

	if err := env.handler.Exec(context.Background(), "bren", "help"); err != nil {
		t.Fatalf("help: %v", err)
	}
	if out := env.pub.lastTo("player-bren"); !strings.Contains(out, "Available commands:") {
		t.Errorf("help listing missing:\n%s", out)
	}

	env.pub.reset()
	if err := env.handler.Exec(context.Background(), "bren", "help", "get"); err != nil {
		t.Fatalf("help get: %v", err)
	}
	out := env.pub.lastTo("player-bren")
	if !strings.Contains(out, "Usage: get <target> [container]") {
		t.Errorf("usage line missing:\n%s", out)
	}

	err := env.handler.Exec(context.Background(), "bren", "help", "fly")
	if msg := userErr(t, err); msg != `Command "fly" is unknown.` {
		t.Errorf("got %q", msg)
	}
}

func TestSaveAndQuit(t *testing.T) {
	env := testHandler(t)

	if err := env.handler.Exec(context.Background(), "bren", "save"); err != nil {
		t.Fatalf("save: %v", err)
	}
	saved := env.dict.Characters.Get("bren")
	if saved == nil {
		t.Fatal("character not persisted")
	}
	if saved.LastZone != "vale" || saved.LastRoom != "square" {
		t.Errorf("saved location = %s/%s, want vale/square", saved.LastZone, saved.LastRoom)
	}
	if got := env.pub.lastTo("player-bren"); got != "Character saved." {
		t.Errorf("confirmation = %q", got)
	}

	if err := env.handler.Exec(context.Background(), "bren", "quit"); err != nil {
		t.Fatalf("quit: %v", err)
	}
	if !env.world.GetPlayer("bren").Quit {
		t.Error("quit flag not set")
	}
}
