// Package telegram wires the bot transport: command/callback registration,
// poller selection, the tuned HTTP client, and the run loop.
package telegram

import (
	tele "gopkg.in/telebot.v4"
)

// Command binds a handler to a slash command together with its menu metadata.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	AdminOnly   bool
	Hidden      bool
	Aliases     []string
}
