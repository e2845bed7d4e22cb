package commands

import (
	"context"
	"strings"
	"testing"
)

// stubFactory records compilation and returns a canned CommandFunc.
type stubFactory struct {
	spec      *HandlerSpec
	configErr error
	run       CommandFunc
}

func (f *stubFactory) Spec() *HandlerSpec { return f.spec }
func (f *stubFactory) ValidateConfig(config map[string]string) error {
	return f.configErr
}
func (f *stubFactory) Create() (CommandFunc, error) {
	if f.run != nil {
		return f.run, nil
	}
	return func(ctx context.Context, cmdCtx *CommandContext) error { return nil }, nil
}

func TestRegisterFactory(t *testing.T) {
	h := NewHandler(newMapStorer[*Command](nil), nil)

	if err := h.RegisterFactory("", &stubFactory{}); err == nil {
		t.Error("empty name accepted")
	}
	if err := h.RegisterFactory("look", nil); err == nil {
		t.Error("nil factory accepted")
	}
	if err := h.RegisterFactory("look", &stubFactory{}); err != nil {
		t.Errorf("registering: %v", err)
	}
	if err := h.RegisterFactory("look", &stubFactory{}); err == nil {
		t.Error("duplicate registration accepted")
	}
}

func TestCompileAll(t *testing.T) {
	tests := map[string]struct {
		cmd     *Command
		factory *stubFactory
		wantErr string
	}{
		"compiles": {
			cmd:     &Command{Handler: "stub"},
			factory: &stubFactory{},
		},
		"unknown handler": {
			cmd:     &Command{Handler: "nope"},
			factory: &stubFactory{},
			wantErr: `unknown handler "nope"`,
		},
		"missing required config": {
			cmd: &Command{Handler: "stub"},
			factory: &stubFactory{
				spec: &HandlerSpec{Config: []ConfigRequirement{{Name: "direction", Required: true}}},
			},
			wantErr: `config "direction" is required`,
		},
		"missing required target": {
			cmd: &Command{Handler: "stub"},
			factory: &stubFactory{
				spec: &HandlerSpec{Targets: []TargetRequirement{{Name: "target", Type: TargetTypeObject, Required: true}}},
			},
			wantErr: `target "target" is required`,
		},
		"target type not accepted": {
			cmd: &Command{
				Handler: "stub",
				Inputs:  []InputSpec{{Name: "target", Type: InputTypeString}},
				Targets: []TargetSpec{{Name: "target", Types: []string{"player"}, Scopes: []string{"room"}, Input: "target"}},
			},
			factory: &stubFactory{
				spec: &HandlerSpec{Targets: []TargetRequirement{{Name: "target", Type: TargetTypeObject, Required: true}}},
			},
			wantErr: "not accepted by handler",
		},
		"config validation failure": {
			cmd: &Command{Handler: "stub"},
			factory: &stubFactory{
				configErr: NewUserError("bad config"),
			},
			wantErr: "bad config",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h := NewHandler(newMapStorer(map[string]*Command{"cmd": tt.cmd}), nil)
			if err := h.RegisterFactory("stub", tt.factory); err != nil {
				t.Fatalf("registering: %v", err)
			}

			err := h.CompileAll()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("CompileAll() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("CompileAll() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseInputs(t *testing.T) {
	tests := map[string]struct {
		specs   []InputSpec
		args    []string
		want    map[string]any
		wantErr string
	}{
		"single string": {
			specs: []InputSpec{{Name: "target", Type: InputTypeString, Required: true}},
			args:  []string{"coin"},
			want:  map[string]any{"target": "coin"},
		},
		"missing required": {
			specs:   []InputSpec{{Name: "target", Type: InputTypeString, Required: true}},
			args:    nil,
			wantErr: "at least 1 argument",
		},
		"too many": {
			specs:   []InputSpec{{Name: "target", Type: InputTypeString}},
			args:    []string{"a", "b"},
			wantErr: "at most 1 argument",
		},
		"rest joins remainder": {
			specs: []InputSpec{
				{Name: "target", Type: InputTypeString, Required: true},
				{Name: "message", Type: InputTypeString, Rest: true},
			},
			args: []string{"wren", "meet", "me", "at", "the", "shrine"},
			want: map[string]any{"target": "wren", "message": "meet me at the shrine"},
		},
		"number parsed": {
			specs: []InputSpec{{Name: "count", Type: InputTypeNumber, Required: true}},
			args:  []string{"3"},
			want:  map[string]any{"count": 3},
		},
		"number invalid": {
			specs:   []InputSpec{{Name: "count", Type: InputTypeNumber, Required: true}},
			args:    []string{"three"},
			wantErr: "not a valid number",
		},
		"optional absent defaults to zero value": {
			specs: []InputSpec{
				{Name: "target", Type: InputTypeString},
				{Name: "count", Type: InputTypeNumber},
			},
			args: nil,
			want: map[string]any{"target": "", "count": 0},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := parseInputs(tt.specs, tt.args)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("parseInputs() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseInputs() error = %v", err)
			}
			for k, want := range tt.want {
				if got[k] != want {
					t.Errorf("inputs[%q] = %v, want %v", k, got[k], want)
				}
			}
		})
	}
}

func TestExecUnknownCommand(t *testing.T) {
	env := testHandler(t)

	err := env.handler.Exec(context.Background(), "bren", "fly")
	if msg := userErr(t, err); !strings.Contains(msg, "Unknown command") {
		t.Errorf("got %q, want unknown-command message", msg)
	}
}

func TestExecNoSession(t *testing.T) {
	env := testHandler(t)

	err := env.handler.Exec(context.Background(), "ghost", "look")
	if err == nil {
		t.Fatal("exec without a session succeeded")
	}
	if _, ok := err.(*UserError); ok {
		t.Errorf("missing session reported as a user error: %v", err)
	}
}

func TestExecCommandNameCaseInsensitive(t *testing.T) {
	env := testHandler(t)

	if err := env.handler.Exec(context.Background(), "bren", "LOOK"); err != nil {
		t.Errorf("uppercase command name: %v", err)
	}
}

func TestExecConfigExpansion(t *testing.T) {
	env := testHandler(t)

	// The say command builds its channel and message from the actor,
	// location, and inputs.
	err := env.handler.Exec(context.Background(), "bren", "say", "hello", "there")
	if err != nil {
		t.Fatalf("say: %v", err)
	}

	got := env.pub.lastTo("zone-vale-room-square")
	want := "Bren says, 'hello there'"
	if got != want {
		t.Errorf("room message = %q, want %q", got, want)
	}
}

func TestExecTemplatedDirection(t *testing.T) {
	env := testHandler(t)

	if err := env.handler.Exec(context.Background(), "bren", "go", "north"); err != nil {
		t.Fatalf("go north: %v", err)
	}
	if zone, room := env.world.GetPlayer("bren").Location(); zone != "vale" || room != "shrine" {
		t.Errorf("Location() = %s/%s, want vale/shrine", zone, room)
	}
}
