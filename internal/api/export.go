package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Spok95/salon-bot/internal/domain/appointments"
	"github.com/Spok95/salon-bot/internal/report"
	"github.com/Spok95/salon-bot/pkg/response"
)

const exportPageSize = 100

// ExportAppointments — GET /admin/appointments/export?telegramId=&from=&to=
// Доступно только админу (сверка с admin_chat_id). Отдаёт xlsx.
func (a *API) ExportAppointments(w http.ResponseWriter, r *http.Request) {
	const op = "api.ExportAppointments"

	tgID, ok := telegramIDParam(r)
	if !ok {
		a.writeError(w, r, http.StatusBadRequest, response.INVALID_INPUT, "telegramId is required")
		return
	}
	if a.adminTgID == 0 || tgID != a.adminTgID {
		a.writeError(w, r, http.StatusForbidden, response.FORBIDDEN, "admin only")
		return
	}

	var f appointments.Filter
	if raw := r.URL.Query().Get("from"); raw != "" {
		t, err := time.ParseInLocation("2006-01-02", raw, a.loc)
		if err != nil {
			a.writeError(w, r, http.StatusBadRequest, response.INVALID_INPUT, "from must be YYYY-MM-DD")
			return
		}
		f.From = &t
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		t, err := time.ParseInLocation("2006-01-02", raw, a.loc)
		if err != nil {
			a.writeError(w, r, http.StatusBadRequest, response.INVALID_INPUT, "to must be YYYY-MM-DD")
			return
		}
		f.To = &t
	}

	var all []appointments.Appointment
	for page := 1; ; page++ {
		p, err := a.lifecycle.List(r.Context(), f, page, exportPageSize)
		if err != nil {
			a.writeDomainError(w, r, op, err)
			return
		}
		all = append(all, p.Items...)
		if page >= p.TotalPages {
			break
		}
	}

	buf, err := report.BuildAppointments(all)
	if err != nil {
		a.writeDomainError(w, r, op, err)
		return
	}

	name := fmt.Sprintf("appointments_%s.xlsx", time.Now().In(a.loc).Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	_, _ = w.Write(buf.Bytes())
}
