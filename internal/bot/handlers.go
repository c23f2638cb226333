package bot

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	tele "gopkg.in/telebot.v4"

	"github.com/hayqway/waybot/internal/catalog"
	"github.com/hayqway/waybot/internal/geo"
	"github.com/hayqway/waybot/internal/report"
	"github.com/hayqway/waybot/internal/session"
	tg "github.com/hayqway/waybot/internal/telegram"
	tghelpers "github.com/hayqway/waybot/internal/telegram/helpers"
	"github.com/hayqway/waybot/internal/telegram/keyboard"
)

// Bot glues the search engine and the report service to the Telegram
// transport. It implements router.Conversations so active conversations
// claim free-form messages before command matching runs.
type Bot struct {
	engine   *Engine
	reports  *report.Service
	catalogs *catalog.Provider

	pendingMu      sync.Mutex
	pendingReports map[int64]struct{}
}

// New builds the Bot facade.
func New(engine *Engine, reports *report.Service, catalogs *catalog.Provider) *Bot {
	return &Bot{
		engine:         engine,
		reports:        reports,
		catalogs:       catalogs,
		pendingReports: make(map[int64]struct{}),
	}
}

// Register wires all commands, callbacks, and the text fallback.
func (b *Bot) Register(reg *tg.Registry) {
	reg.RegisterCommand("/start", tg.Command{
		Handler:     b.onStart,
		Description: "Գլխավոր մենյու",
	})
	reg.RegisterCommand("/help", tg.Command{
		Handler:     b.onHelp,
		Description: "Օգնություն",
	})
	reg.RegisterCommand("/search", tg.Command{
		Handler:     b.onSearch,
		Description: "Որոնել երթուղի կամ կանգառ",
	})
	reg.RegisterCommand("/near", tg.Command{
		Handler:     b.onNear,
		Description: "Մոտակա կանգառը՝ /near <lat> <lon>",
	})
	reg.RegisterCommand("/report", tg.Command{
		Handler:     b.onReport,
		Description: "Հաղորդել խնդրի մասին",
	})
	reg.RegisterCommand("/reload", tg.Command{
		Handler:     b.onReload,
		Description: "Վերաբեռնել երթուղիների ցանկը",
		AdminOnly:   true,
		Hidden:      true,
	})
	reg.RegisterCommand("/reports", tg.Command{
		Handler:     b.onRecentReports,
		Description: "Վերջին հաղորդումները",
		AdminOnly:   true,
		Hidden:      true,
	})

	_ = reg.RegisterCallback("help", b.ackThen(b.onHelp))
	_ = reg.RegisterCallback("route_search", b.ackThen(b.onSearch))
	_ = reg.RegisterCallback("send_location", b.ackThen(b.onAskLocation))
	_ = reg.RegisterCallback(tokenBackRoutes, b.onToken)
	_ = reg.RegisterCallback(tokenNearBack, b.onToken)
	_ = reg.RegisterCallbackPrefix(routePrefix, b.onToken)
	_ = reg.RegisterCallbackPrefix(nearRoutePrefix, b.onToken)
	_ = reg.RegisterCallbackPrefix(showRoutePrefix, b.onToken)

	reg.SetTextFallback(b.onText)
	reg.SetCallbackNotFound(func(c tele.Context) error {
		return c.Respond(&tele.CallbackResponse{Text: msgRouteNotFound})
	})
}

// Claims reports whether the next free-form message from the user belongs to
// an open conversation: a pending report or a search awaiting its query.
func (b *Bot) Claims(userID int64) bool {
	b.pendingMu.Lock()
	_, reporting := b.pendingReports[userID]
	b.pendingMu.Unlock()
	if reporting {
		return true
	}
	s, ok := b.engine.Sessions().Get(userID)
	return ok && s.Phase == session.PhaseAwaitingReply
}

// HandleText consumes a claimed text message.
func (b *Bot) HandleText(c tele.Context) error {
	userID := c.Sender().ID

	b.pendingMu.Lock()
	_, reporting := b.pendingReports[userID]
	if reporting {
		delete(b.pendingReports, userID)
	}
	b.pendingMu.Unlock()

	if reporting {
		return b.submitReport(c)
	}

	ctx := tghelpers.BuildContext(c)
	view := b.engine.HandleReply(ctx, userID, c.Text(), nil)
	return b.send(c, view)
}

// HandleLocation consumes a claimed location message.
func (b *Bot) HandleLocation(c tele.Context) error {
	loc := c.Message().Location
	if loc == nil {
		return nil
	}
	ctx := tghelpers.BuildContext(c)
	p := geo.Point{Lat: float64(loc.Lat), Lng: float64(loc.Lng)}
	view := b.engine.HandleReply(ctx, c.Sender().ID, "", &p)
	return b.send(c, view)
}

// OnBareLocation handles a location shared outside any conversation.
func (b *Bot) OnBareLocation(c tele.Context) error {
	loc := c.Message().Location
	if loc == nil {
		return nil
	}
	ctx := tghelpers.BuildContext(c)
	p := geo.Point{Lat: float64(loc.Lat), Lng: float64(loc.Lng)}
	view := b.engine.NearbyRoutes(ctx, c.Sender().ID, p)
	return b.send(c, view)
}

func (b *Bot) onStart(c tele.Context) error {
	if err := tghelpers.SendText(c, msgWelcome); err != nil {
		return err
	}
	return tghelpers.SendText(c, msgChooseAction, &tele.SendOptions{ReplyMarkup: mainMenu()})
}

func (b *Bot) onHelp(c tele.Context) error {
	return tghelpers.SendHTML(c, msgHelp)
}

func (b *Bot) onSearch(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	view := b.engine.BeginSearch(ctx, c.Sender().ID)
	return tghelpers.SendText(c, view.Text, &tele.SendOptions{ReplyMarkup: keyboard.ForceReply()})
}

func (b *Bot) onAskLocation(c tele.Context) error {
	return tghelpers.SendText(c, msgShareLocation,
		&tele.SendOptions{ReplyMarkup: keyboard.LocationButton(btnShareLocation)})
}

func (b *Bot) onNear(c tele.Context) error {
	args := strings.Fields(c.Message().Payload)
	if len(args) < 2 {
		return tghelpers.SendText(c, msgNearUsage)
	}
	lat, errLat := strconv.ParseFloat(args[0], 64)
	lon, errLon := strconv.ParseFloat(args[1], 64)
	if errLat != nil || errLon != nil {
		return tghelpers.SendText(c, msgBadCoords)
	}

	ctx := tghelpers.BuildContext(c)
	view := b.engine.NearestStop(ctx, c.Sender().ID, geo.Point{Lat: lat, Lng: lon})
	return b.send(c, view)
}

func (b *Bot) onReport(c tele.Context) error {
	b.pendingMu.Lock()
	b.pendingReports[c.Sender().ID] = struct{}{}
	b.pendingMu.Unlock()
	return tghelpers.SendText(c, msgAskReport, &tele.SendOptions{ReplyMarkup: keyboard.ForceReply()})
}

func (b *Bot) submitReport(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	user := c.Sender()
	text := strings.TrimSpace(c.Text())

	if err := b.reports.Submit(ctx, user.ID, user.Username, text); err != nil {
		if err == report.ErrEmptyReport {
			return tghelpers.SendText(c, msgEmptyQuery)
		}
		return tghelpers.SendText(c, msgReportFailed)
	}
	return tghelpers.SendText(c, fmt.Sprintf(msgReportThanks, text))
}

func (b *Bot) onReload(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	if err := b.catalogs.Reload(ctx); err != nil {
		return tghelpers.SendText(c, "Reload failed: "+err.Error())
	}
	cat, _ := b.catalogs.Current()
	return tghelpers.SendText(c,
		fmt.Sprintf("Reloaded: %d routes, %d stops", len(cat.Routes()), len(cat.Stops())))
}

func (b *Bot) onRecentReports(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	recent, err := b.reports.Recent(ctx, 10)
	if err != nil {
		return tghelpers.SendText(c, msgReportFailed)
	}
	if len(recent) == 0 {
		return tghelpers.SendText(c, "Հաղորդումներ չկան։")
	}
	var sb strings.Builder
	for i, r := range recent {
		fmt.Fprintf(&sb, "%d. @%s (%s)\n%s\n\n", i+1, r.Username, r.CreatedAt.Format("2006-01-02 15:04"), r.Text)
	}
	return tghelpers.SendText(c, strings.TrimSpace(sb.String()))
}

// onToken handles every navigation callback. Notice-only views answer the
// callback without sending a message.
func (b *Bot) onToken(c tele.Context) error {
	cb := c.Callback()
	if cb == nil {
		return nil
	}
	ctx := tghelpers.BuildContext(c)
	raw := strings.TrimPrefix(strings.TrimPrefix(cb.Data, "\f"), "\\f")

	view := b.engine.HandleToken(ctx, c.Sender().ID, raw)
	if view.Notice != "" {
		return c.Respond(&tele.CallbackResponse{Text: view.Notice})
	}
	if err := c.Respond(); err != nil {
		return err
	}
	// Page navigation edits the current message in place so flipping pages
	// does not fill the chat.
	if !view.Menu && len(view.Rows) > 0 {
		return tghelpers.EditOrSendHTML(c, view.Text, inlineMarkup(view.Rows))
	}
	return b.send(c, view)
}

// onText serves free text that no conversation and no command claimed:
// main-menu button presses and ad-hoc stop name lookups.
func (b *Bot) onText(c tele.Context) error {
	switch c.Text() {
	case btnSendLocation:
		return b.onAskLocation(c)
	case btnSearchStop:
		return b.onSearch(c)
	case btnHelp:
		return b.onHelp(c)
	}

	ctx := tghelpers.BuildContext(c)
	view := b.engine.SearchStops(ctx, c.Text())
	if view.Text == "" {
		return nil
	}
	return b.send(c, view)
}

// ackThen answers the callback before running the wrapped handler.
func (b *Bot) ackThen(h tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		if c.Callback() != nil {
			if err := c.Respond(); err != nil {
				return err
			}
		}
		return h(c)
	}
}

// send renders a view: HTML body plus optional inline keyboard or the main
// reply keyboard.
func (b *Bot) send(c tele.Context, v View) error {
	if v.Text == "" {
		return nil
	}
	if v.Menu {
		return tghelpers.SendText(c, v.Text, &tele.SendOptions{ReplyMarkup: mainMenu()})
	}
	if len(v.Rows) > 0 {
		return tghelpers.SendHTML(c, v.Text, inlineMarkup(v.Rows))
	}
	return tghelpers.SendHTML(c, v.Text)
}

func inlineMarkup(rows [][]Button) *tele.ReplyMarkup {
	kbRows := make([][]keyboard.Btn, len(rows))
	for i, row := range rows {
		kbRow := make([]keyboard.Btn, len(row))
		for j, btn := range row {
			kbRow[j] = keyboard.Btn{Text: btn.Text, Token: btn.Token}
		}
		kbRows[i] = kbRow
	}
	return keyboard.Inline(kbRows...)
}

func mainMenu() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{btnSendLocation},
		[]string{btnSearchStop},
		[]string{btnHelp},
	)
}
