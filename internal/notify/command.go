package notify

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ErrEmptyCommand is returned when constructing a CommandChannel without a
// command.
var ErrEmptyCommand = errors.New("notifier command cannot be empty")

// CommandChannel shows system notifications by shelling out to a desktop
// notifier command (notify-send by default). Title and body are appended as
// the final two arguments.
type CommandChannel struct {
	command []string
}

// NewCommandChannel creates a CommandChannel for the given command and
// leading arguments.
func NewCommandChannel(command []string) (*CommandChannel, error) {
	if len(command) == 0 {
		return nil, ErrEmptyCommand
	}
	return &CommandChannel{command: command}, nil
}

// Name identifies the channel in logs and dispatch outcomes.
func (c *CommandChannel) Name() string {
	return "system"
}

// Send runs the notifier command with the title and body appended.
func (c *CommandChannel) Send(ctx context.Context, title, body string) error {
	args := append(append([]string{}, c.command[1:]...), title, body)
	cmd := exec.CommandContext(ctx, c.command[0], args...)

	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("notifier command failed: %w (output: %s)", err, output)
	}

	return nil
}
