package telegram

import "gopkg.in/telebot.v3"

// Client is the outgoing side of the bot: the poller only ever pushes text
// into one chat and never reads updates.
type Client interface {
	SendMessage(chatID int64, text string, options *telebot.SendOptions) error
}
