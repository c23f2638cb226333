package router

import (
	"time"

	"log/slog"

	tele "gopkg.in/telebot.v4"

	tg "github.com/hayqway/waybot/internal/telegram"
	"github.com/hayqway/waybot/internal/telegram/middleware"
)

// CallbackRoute routes callback presses through the registry by their raw
// token. Handlers own the callback response, so stale-session presses can
// answer with their own notice instead of a blanket ack.
func CallbackRoute(reg *tg.Registry) tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		cb := c.Callback()
		if cb == nil {
			return nil
		}

		key := middleware.CallbackKey(cb)
		name := "callback." + normalizeHandlerName(key)
		extras := []slog.Attr{slog.String("cb_key", key)}

		cbHandler, ok := reg.ResolveCallback(key)
		if !ok || cbHandler == nil {
			fallback := reg.CallbackNotFound()
			extras = append(extras, slog.String("reason", "not_found"))
			return handleWithSummary(c, name, start, func() error {
				if fallback != nil {
					return fallback(c)
				}
				return nil
			}, extras...)
		}

		return handleWithSummary(c, name, start, func() error {
			return cbHandler(c)
		}, extras...)
	}
	return tg.Route{
		Endpoint: tele.OnCallback,
		Handler:  middleware.Recover(middleware.Logger(middleware.MessageMetrics(handler))),
	}
}
