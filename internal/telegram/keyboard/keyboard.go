// Package keyboard builds reply and inline keyboards. Inline buttons carry
// their callback token directly in Data so the token grammar stays stable
// across releases.
package keyboard

import tele "gopkg.in/telebot.v4"

// Btn is an inline button with a display text and a raw callback token.
type Btn struct {
	Text  string
	Token string
}

// ForceReply returns a markup that forces the user to reply.
func ForceReply() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{ForceReply: true}
}

// ReplyButtons builds a reply keyboard from rows of button labels.
func ReplyButtons(rows ...[]string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{ResizeKeyboard: true}
	var keyboard []tele.Row
	for _, row := range rows {
		var buttons []tele.Btn
		for _, label := range row {
			buttons = append(buttons, markup.Text(label))
		}
		keyboard = append(keyboard, markup.Row(buttons...))
	}
	markup.Reply(keyboard...)
	return markup
}

// LocationButton builds a one-button reply keyboard requesting the user's
// location.
func LocationButton(label string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{ResizeKeyboard: true, OneTimeKeyboard: true}
	markup.Reply(markup.Row(markup.Location(label)))
	return markup
}

// Inline builds an inline keyboard from rows of token buttons.
func Inline(rows ...[]Btn) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	inline := make([][]tele.InlineButton, len(rows))
	for i, row := range rows {
		r := make([]tele.InlineButton, len(row))
		for j, b := range row {
			r[j] = tele.InlineButton{Text: b.Text, Data: b.Token}
		}
		inline[i] = r
	}
	markup.InlineKeyboard = inline
	return markup
}
