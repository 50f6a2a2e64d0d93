package api

import (
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/Spok95/salon-bot/pkg/response"
)

const (
	cacheKeyMasters  = "masters"
	cacheKeyServices = "services"
)

// Masters — GET /masters, через кэш.
func (a *API) Masters(w http.ResponseWriter, r *http.Request) {
	const op = "api.Masters"

	if v, ok := a.cache.Get(cacheKeyMasters); ok {
		render.JSON(w, r, response.OK(v))
		return
	}
	ms, err := a.masters.ListActive(r.Context())
	if err != nil {
		a.writeDomainError(w, r, op, err)
		return
	}
	dto := toMasterDTOs(ms)
	a.cache.Set(cacheKeyMasters, dto, a.cacheTTL)
	render.JSON(w, r, response.OK(dto))
}

// Services — GET /services, через кэш.
func (a *API) Services(w http.ResponseWriter, r *http.Request) {
	const op = "api.Services"

	if v, ok := a.cache.Get(cacheKeyServices); ok {
		render.JSON(w, r, response.OK(v))
		return
	}
	ss, err := a.catalog.ListActiveServices(r.Context())
	if err != nil {
		a.writeDomainError(w, r, op, err)
		return
	}
	dto := toServiceDTOs(ss)
	a.cache.Set(cacheKeyServices, dto, a.cacheTTL)
	render.JSON(w, r, response.OK(dto))
}

// Slots — GET /slots?masterId=&serviceId=&date=YYYY-MM-DD
func (a *API) Slots(w http.ResponseWriter, r *http.Request) {
	const op = "api.Slots"

	masterID := int64(intParam(r, "masterId", 0))
	serviceID := int64(intParam(r, "serviceId", 0))
	if masterID <= 0 || serviceID <= 0 {
		a.writeError(w, r, http.StatusBadRequest, response.INVALID_INPUT, "masterId and serviceId are required")
		return
	}

	date, err := time.ParseInLocation("2006-01-02", r.URL.Query().Get("date"), a.loc)
	if err != nil {
		a.writeError(w, r, http.StatusBadRequest, response.INVALID_INPUT, "date must be YYYY-MM-DD")
		return
	}

	slots, err := a.slots.GetSlots(r.Context(), masterID, serviceID, date)
	if err != nil {
		a.writeDomainError(w, r, op, err)
		return
	}
	render.JSON(w, r, response.OK(toSlotDTOs(slots)))
}
