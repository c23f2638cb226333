package router

import (
	"time"

	tele "gopkg.in/telebot.v4"

	tg "github.com/hayqway/waybot/internal/telegram"
	"github.com/hayqway/waybot/internal/telegram/middleware"
)

// Conversations routes free-form messages into an active multi-turn
// conversation when one is waiting for the user's reply.
type Conversations interface {
	Claims(userID int64) bool
	HandleText(c tele.Context) error
	HandleLocation(c tele.Context) error
}

// MessageOptions controls fallback behaviour for text and location updates.
type MessageOptions struct {
	UnknownText     tele.HandlerFunc
	UnknownLocation tele.HandlerFunc
}

// MessageRoutes builds the OnText and OnLocation routes. An active
// conversation claims the message first; otherwise text is matched against
// registered commands, then handed to the registry fallback.
func MessageRoutes(conv Conversations, reg *tg.Registry, opts MessageOptions) []tg.Route {
	textHandler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if conv != nil && conv.Claims(c.Sender().ID) {
			return handleWithSummary(c, "conversation", start, func() error {
				return conv.HandleText(c)
			})
		}

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil {
				return handleWithSummary(c, normalizeHandlerName(key), start, func() error {
					return cmd.Handler(c)
				})
			}
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, func() error {
					return fb(c)
				})
			}
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, func() error {
				return opts.UnknownText(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, "skip", nil)
		return nil
	}

	locationHandler := func(c tele.Context) error {
		start := time.Now()

		if conv != nil && conv.Claims(c.Sender().ID) {
			return handleWithSummary(c, "conversation_location", start, func() error {
				return conv.HandleLocation(c)
			})
		}
		if opts.UnknownLocation != nil {
			return handleWithSummary(c, "location", start, func() error {
				return opts.UnknownLocation(c)
			})
		}
		logHandlerSummary(c, "location", start, "skip", nil)
		return nil
	}

	chain := func(h tele.HandlerFunc) tele.HandlerFunc {
		return middleware.Recover(middleware.Logger(middleware.MessageMetrics(h)))
	}
	return []tg.Route{
		{Endpoint: tele.OnText, Handler: chain(textHandler)},
		{Endpoint: tele.OnLocation, Handler: chain(locationHandler)},
	}
}
