package commands

import (
	"context"
	"fmt"

	"github.com/hollowvale/mud/internal/text"
)

// DescribeHandlerFactory creates handlers that set the player's
// self-description, the fragment observers read after their pronoun
// ("She is <fragment>"). A leading copula is stripped so "describe is a
// mighty warrior" and "describe a mighty warrior" land the same.
// Inputs:
//   - description (required, rest): the description fragment
type DescribeHandlerFactory struct {
	pub Publisher
}

func NewDescribeHandlerFactory(pub Publisher) *DescribeHandlerFactory {
	return &DescribeHandlerFactory{pub: pub}
}

func (f *DescribeHandlerFactory) Spec() *HandlerSpec {
	return nil
}

func (f *DescribeHandlerFactory) ValidateConfig(config map[string]string) error {
	return nil
}

func (f *DescribeHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		desc, _ := cmdCtx.Inputs["description"].(string)
		if desc == "" {
			return NewUserError("Describe yourself as what?")
		}

		cmdCtx.Actor.SetUserDesc(desc)

		p := cmdCtx.Actor.Pronouns()
		confirm := fmt.Sprintf("Others will now see: %s %s %s",
			text.Capitalize(p.Subjective), p.Is, cmdCtx.Actor.UserDesc)
		return f.pub.PublishToPlayer(cmdCtx.CharId, []byte(confirm))
	}, nil
}
