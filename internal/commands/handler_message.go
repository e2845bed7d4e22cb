package commands

import (
	"context"
	"fmt"
)

// MessageHandlerFactory creates handlers that publish templated messages to
// channels. Commands like say, shout, and tell are all this handler with
// different channel and message templates.
// Config:
//   - recipient_channel (optional): template for the recipient's channel
//   - recipient_message (required if recipient_channel set): message to recipient
//   - sender_channel (optional): template for the sender's channel
//   - sender_message (required if sender_channel set): sender confirmation
type MessageHandlerFactory struct {
	pub Publisher
}

// NewMessageHandlerFactory creates a new MessageHandlerFactory.
func NewMessageHandlerFactory(pub Publisher) *MessageHandlerFactory {
	return &MessageHandlerFactory{pub: pub}
}

func (f *MessageHandlerFactory) Spec() *HandlerSpec {
	return &HandlerSpec{
		Config: []ConfigRequirement{
			{Name: "recipient_channel", Required: false},
			{Name: "recipient_message", Required: false},
			{Name: "sender_channel", Required: false},
			{Name: "sender_message", Required: false},
		},
		Targets: []TargetRequirement{
			{Name: "target", Type: TargetTypePlayer, Required: false},
		},
	}
}

func (f *MessageHandlerFactory) ValidateConfig(config map[string]string) error {
	if config["recipient_channel"] != "" && config["recipient_message"] == "" {
		return fmt.Errorf("recipient_message is required when recipient_channel is set")
	}

	if config["sender_channel"] != "" && config["sender_message"] == "" {
		return fmt.Errorf("sender_message is required when sender_channel is set")
	}

	if config["recipient_channel"] == "" && config["sender_channel"] == "" {
		return fmt.Errorf("at least one of recipient_channel or sender_channel is required")
	}

	return nil
}

func (f *MessageHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		// Config values have already been expanded against the inputs.
		if ch := cmdCtx.Config["sender_channel"]; ch != "" {
			if err := f.pub.Publish(ch, []byte(cmdCtx.Config["sender_message"])); err != nil {
				return err
			}
		}

		if ch := cmdCtx.Config["recipient_channel"]; ch != "" {
			if err := f.pub.Publish(ch, []byte(cmdCtx.Config["recipient_message"])); err != nil {
				return err
			}
		}

		return nil
	}, nil
}
