package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hollowvale/mud/internal/storage"
)

// HelpHandlerFactory creates handlers that display command help.
type HelpHandlerFactory struct {
	commands storage.Storer[*Command]
	pub      Publisher
}

// NewHelpHandlerFactory creates a new HelpHandlerFactory.
func NewHelpHandlerFactory(commands storage.Storer[*Command], pub Publisher) *HelpHandlerFactory {
	return &HelpHandlerFactory{commands: commands, pub: pub}
}

func (f *HelpHandlerFactory) Spec() *HandlerSpec {
	return &HandlerSpec{
		Config: []ConfigRequirement{
			{Name: "command", Required: false},
		},
	}
}

func (f *HelpHandlerFactory) ValidateConfig(config map[string]string) error {
	return nil
}

func (f *HelpHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		if command := cmdCtx.Config["command"]; command != "" {
			return f.showCommand(cmdCtx, command)
		}
		return f.listCommands(cmdCtx)
	}, nil
}

// listCommands displays all commands grouped by category.
func (f *HelpHandlerFactory) listCommands(cmdCtx *CommandContext) error {
	groups := make(map[string][]string)
	for id, cmd := range f.commands.GetAll() {
		category := cmd.Category
		if category == "" {
			category = "other"
		}
		groups[category] = append(groups[category], id)
	}

	categories := make([]string, 0, len(groups))
	for cat := range groups {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	lines := []string{"Available commands:"}
	for _, cat := range categories {
		cmds := groups[cat]
		sort.Strings(cmds)
		label := strings.ToUpper(cat[:1]) + cat[1:]
		lines = append(lines, fmt.Sprintf("  %s: %s", label, strings.Join(cmds, ", ")))
	}

	return f.pub.PublishToPlayer(cmdCtx.CharId, []byte(strings.Join(lines, "\n")))
}

// showCommand displays detailed help for a specific command.
func (f *HelpHandlerFactory) showCommand(cmdCtx *CommandContext, name string) error {
	cmd := f.commands.Get(strings.ToLower(name))
	if cmd == nil {
		return NewUserError(fmt.Sprintf("Command %q is unknown.", name))
	}

	lines := []string{fmt.Sprintf("%s: %s", strings.ToLower(name), cmd.Description)}

	if len(cmd.Inputs) > 0 {
		parts := []string{strings.ToLower(name)}
		for _, input := range cmd.Inputs {
			if input.Required {
				parts = append(parts, fmt.Sprintf("<%s>", input.Name))
			} else {
				parts = append(parts, fmt.Sprintf("[%s]", input.Name))
			}
		}
		lines = append(lines, fmt.Sprintf("Usage: %s", strings.Join(parts, " ")))
	}

	return f.pub.PublishToPlayer(cmdCtx.CharId, []byte(strings.Join(lines, "\n")))
}
