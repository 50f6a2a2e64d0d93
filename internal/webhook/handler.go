package webhook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/salon-bot/internal/domain/appointments"
	"github.com/Spok95/salon-bot/internal/infra/metrics"
	"github.com/Spok95/salon-bot/pkg/response"
)

const (
	welcomeText = "Привет! Это бот записи в салон. Откройте приложение командой /app и выберите удобное время."
	helpText    = "Команды:\n/app — открыть запись\n/help — помощь\nПодтвердить или отменить запись можно кнопками под сообщением."
	appText     = "Запись на услуги — по кнопке ниже."
	apologyText = "Что-то пошло не так, попробуйте ещё раз чуть позже."
)

type Lifecycle interface {
	Transition(ctx context.Context, id int64, target appointments.Status) (*appointments.Appointment, error)
	Cancel(ctx context.Context, id int64) (*appointments.Appointment, error)
}

// Notifier — исходящие сообщения (уведомление админ-чата). В вебхук-ответ
// они не входят, поэтому опциональны.
type Notifier interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Handler обрабатывает апдейты Telegram. Ответ на простые команды уезжает
// прямо в теле вебхука, без обратного вызова Bot API. На транспортном
// уровне всегда 200: иначе Telegram будет перепосылать апдейт.
type Handler struct {
	log       *slog.Logger
	lifecycle Lifecycle
	notifier  Notifier // nil — без исходящих уведомлений
	webAppURL string
	secret    string
	adminChat int64
}

func NewHandler(log *slog.Logger, lifecycle Lifecycle, notifier Notifier, webAppURL, secret string, adminChat int64) *Handler {
	return &Handler{
		log: log, lifecycle: lifecycle, notifier: notifier,
		webAppURL: webAppURL, secret: secret, adminChat: adminChat,
	}
}

// Ответные методы Bot API, сериализуемые в тело вебхука.
// tgbotapi v5 не знает про web_app-кнопки, поэтому разметка своя.
type sendMessage struct {
	Method      string          `json:"method"`
	ChatID      int64           `json:"chat_id"`
	Text        string          `json:"text"`
	ReplyMarkup *inlineKeyboard `json:"reply_markup,omitempty"`
}

type answerCallback struct {
	Method          string `json:"method"`
	CallbackQueryID string `json:"callback_query_id"`
	Text            string `json:"text,omitempty"`
}

type inlineKeyboard struct {
	InlineKeyboard [][]inlineButton `json:"inline_keyboard"`
}

type inlineButton struct {
	Text   string      `json:"text"`
	WebApp *webAppInfo `json:"web_app,omitempty"`
	URL    string      `json:"url,omitempty"`
}

type webAppInfo struct {
	URL string `json:"url"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		render.JSON(w, r, map[string]any{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	if h.secret != "" && r.Header.Get("X-Telegram-Bot-Api-Secret-Token") != h.secret {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var upd tgbotapi.Update
	if err := render.DecodeJSON(r.Body, &upd); err != nil {
		h.log.Error("failed to decode update", "err", err)
		// не даём Telegram повода ретраить
		render.JSON(w, r, response.Response{Success: true})
		return
	}

	in := ParseIntent(upd)
	metrics.WebhookUpdates.WithLabelValues(string(in.Kind)).Inc()

	switch in.Kind {
	case KindStart:
		render.JSON(w, r, sendMessage{Method: "sendMessage", ChatID: in.ChatID, Text: welcomeText})
	case KindHelp:
		render.JSON(w, r, sendMessage{Method: "sendMessage", ChatID: in.ChatID, Text: helpText})
	case KindApp, KindPlain:
		// незнакомый текст ведём туда же, куда и /app
		render.JSON(w, r, sendMessage{
			Method: "sendMessage", ChatID: in.ChatID, Text: appText,
			ReplyMarkup: h.webAppKeyboard(),
		})
	case KindCallback:
		render.JSON(w, r, h.handleCallback(r.Context(), in))
	default:
		render.JSON(w, r, response.Response{Success: true})
	}
}

func (h *Handler) webAppKeyboard() *inlineKeyboard {
	return &inlineKeyboard{InlineKeyboard: [][]inlineButton{{
		{Text: "Записаться", WebApp: &webAppInfo{URL: h.webAppURL}},
	}}}
}

// handleCallback подтверждает callback ровно один раз — ответом
// answerCallbackQuery в теле вебхука. Если в данных закодировано действие
// над записью, выполняем его и отчитываемся текстом подтверждения; любая
// ошибка даунгрейдится до извинения.
func (h *Handler) handleCallback(ctx context.Context, in Intent) answerCallback {
	ack := answerCallback{Method: "answerCallbackQuery", CallbackQueryID: in.CallbackID}
	if in.Action == nil {
		return ack
	}

	var (
		a   *appointments.Appointment
		err error
	)
	switch in.Action.Op {
	case "confirm":
		a, err = h.lifecycle.Transition(ctx, in.Action.AppointmentID, appointments.StatusConfirmed)
	case "cancel":
		a, err = h.lifecycle.Cancel(ctx, in.Action.AppointmentID)
	}

	switch {
	case err == nil:
		if in.Action.Op == "confirm" {
			ack.Text = "Запись подтверждена."
		} else {
			ack.Text = "Запись отменена."
		}
		h.notifyAdmin(a)
	case errors.Is(err, response.ErrInvalidTransition):
		ack.Text = "Эту запись уже нельзя изменить."
	case errors.Is(err, response.ErrNotFound):
		ack.Text = "Запись не найдена."
	default:
		h.log.Error("callback action failed", "op", in.Action.Op, "appointment_id", in.Action.AppointmentID, "err", err)
		ack.Text = apologyText
	}
	return ack
}

func (h *Handler) notifyAdmin(a *appointments.Appointment) {
	if h.notifier == nil || h.adminChat == 0 || a == nil {
		return
	}
	text := fmt.Sprintf("Запись #%d: %s, %s", a.ID, a.Status, a.StartsAt.Format("02.01 15:04"))
	if _, err := h.notifier.Send(tgbotapi.NewMessage(h.adminChat, text)); err != nil {
		h.log.Error("admin notify failed", "err", err)
	}
}
