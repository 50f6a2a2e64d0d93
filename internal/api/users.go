package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/render"

	"github.com/Spok95/salon-bot/internal/domain/users"
	"github.com/Spok95/salon-bot/pkg/response"
)

// telegramID принимает и число, и строку: Web App сериализует id строкой,
// чтобы не терять точность, но старые клиенты шлют числом.
type telegramID int64

func (t *telegramID) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*t = 0
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	*t = telegramID(v)
	return nil
}

type authRequest struct {
	TelegramID telegramID `json:"telegramId"`
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	Username   string     `json:"username"`
	Phone      string     `json:"phone"`
}

// Auth — POST /users/auth. Идемпотентный upsert по telegramId: повторный
// вызов возвращает того же пользователя.
func (a *API) Auth(w http.ResponseWriter, r *http.Request) {
	const op = "api.Auth"

	var req authRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		a.writeError(w, r, http.StatusBadRequest, response.INVALID_INPUT, "failed to decode request")
		return
	}

	tgID := int64(req.TelegramID)
	if tgID <= 0 {
		a.writeError(w, r, http.StatusBadRequest, response.INVALID_INPUT, "telegramId is required")
		return
	}
	if strings.TrimSpace(req.FirstName) == "" {
		a.writeError(w, r, http.StatusBadRequest, response.INVALID_INPUT, "firstName is required")
		return
	}

	u, err := a.users.UpsertFromTelegram(r.Context(), users.Telegram{
		ID:        tgID,
		Username:  req.Username,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Phone:     strings.TrimSpace(req.Phone),
	})
	if err != nil {
		a.writeDomainError(w, r, op, err)
		return
	}
	render.JSON(w, r, response.OK(toUserDTO(u)))
}

// Me — GET /users/me?telegramId=
func (a *API) Me(w http.ResponseWriter, r *http.Request) {
	u := a.resolveUser(r.Context(), w, r)
	if u == nil {
		return
	}
	render.JSON(w, r, response.OK(toUserDTO(u)))
}

// MyReviews — GET /user/me/reviews?telegramId=
func (a *API) MyReviews(w http.ResponseWriter, r *http.Request) {
	const op = "api.MyReviews"

	u := a.resolveUser(r.Context(), w, r)
	if u == nil {
		return
	}
	rs, err := a.reviews.ListByUser(r.Context(), u.ID)
	if err != nil {
		a.writeDomainError(w, r, op, err)
		return
	}
	render.JSON(w, r, response.OK(toReviewDTOs(rs)))
}

func telegramIDParam(r *http.Request) (int64, bool) {
	raw := r.URL.Query().Get("telegramId")
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
