package webhook

import (
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Kind — закрытый набор намерений апдейта. Диспетчеризация идёт по нему,
// а не по цепочке сравнений строк.
type Kind string

const (
	KindEmpty    Kind = "empty" // ни message, ни callback_query
	KindStart    Kind = "start"
	KindApp      Kind = "app"
	KindHelp     Kind = "help"
	KindPlain    Kind = "plain" // любое другое сообщение
	KindCallback Kind = "callback"
)

// Action — закодированное в callback-данных действие над записью.
type Action struct {
	Op            string // "confirm" | "cancel"
	AppointmentID int64
}

type Intent struct {
	Kind       Kind
	ChatID     int64
	Text       string
	CallbackID string
	Action     *Action // только для KindCallback, может быть nil
}

// ParseIntent разбирает входящий апдейт в намерение. Каждый апдейт
// обрабатывается независимо, состояние между апдейтами не хранится.
func ParseIntent(upd tgbotapi.Update) Intent {
	if cb := upd.CallbackQuery; cb != nil {
		in := Intent{Kind: KindCallback, CallbackID: cb.ID}
		if cb.Message != nil && cb.Message.Chat != nil {
			in.ChatID = cb.Message.Chat.ID
		}
		in.Action = parseAction(cb.Data)
		return in
	}

	msg := upd.Message
	if msg == nil || msg.Chat == nil {
		return Intent{Kind: KindEmpty}
	}

	in := Intent{ChatID: msg.Chat.ID, Text: msg.Text}
	switch strings.TrimSpace(msg.Text) {
	case "/start":
		in.Kind = KindStart
	case "/app":
		in.Kind = KindApp
	case "/help":
		in.Kind = KindHelp
	default:
		in.Kind = KindPlain
	}
	return in
}

// parseAction понимает данные вида "appt:confirm:123" / "appt:cancel:123".
// Всё остальное — nil: callback всё равно будет подтверждён.
func parseAction(data string) *Action {
	parts := strings.Split(data, ":")
	if len(parts) != 3 || parts[0] != "appt" {
		return nil
	}
	if parts[1] != "confirm" && parts[1] != "cancel" {
		return nil
	}
	id, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil || id <= 0 {
		return nil
	}
	return &Action{Op: parts[1], AppointmentID: id}
}
