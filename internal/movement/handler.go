package movement

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fleethub/fleet-management/internal"
	"github.com/fleethub/fleet-management/internal/transport"
	"github.com/fleethub/fleet-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Create(actorID int64, dto MovementDTO) (*Movement, error)
	Update(id int64, dto MovementDTO) (*Movement, error)
	Delete(id int64) error
	GetByID(id int64) (*Movement, error)
	List(filter ListFilter) (*ListResponse, error)
	ByCarCode(carCode string) ([]*Movement, error)
	ByDriverName(driverName string) ([]*Movement, error)
	Recent() ([]*Movement, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     svc,
	}
}

func (h *Handler) ListMovements(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)

	resp, err := h.Service.List(filter)
	if err != nil {
		h.Logger.Error("ListMovements: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to list movements")
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetMovement(w http.ResponseWriter, r *http.Request) {
	id, err := h.movementID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid movement ID")
		return
	}

	m, err := h.Service.GetByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) CreateMovement(w http.ResponseWriter, r *http.Request) {
	actorID := internal.UserIDFromContext(r.Context())
	if actorID == 0 {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto MovementDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := h.Service.Create(actorID, dto)
	if err != nil {
		var ve ValidationError
		if errors.As(err, &ve) {
			h.WriteError(w, http.StatusBadRequest, ve.Msg)
			return
		}
		h.Logger.Error("CreateMovement: service error", "error", err, "car_code", dto.CarCode)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, m)
}

func (h *Handler) UpdateMovement(w http.ResponseWriter, r *http.Request) {
	id, err := h.movementID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid movement ID")
		return
	}

	var dto MovementDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := h.Service.Update(id, dto)
	if err != nil {
		var ve ValidationError
		if errors.As(err, &ve) {
			h.WriteError(w, http.StatusBadRequest, ve.Msg)
			return
		}
		h.Logger.Error("UpdateMovement: service error", "error", err, "movement_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) DeleteMovement(w http.ResponseWriter, r *http.Request) {
	id, err := h.movementID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid movement ID")
		return
	}

	if err := h.Service.Delete(id); err != nil {
		h.Logger.Error("DeleteMovement: service error", "error", err, "movement_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Movement record removed"})
}

func (h *Handler) ListByCarCode(w http.ResponseWriter, r *http.Request) {
	carCode := chi.URLParam(r, "carCode")
	if carCode == "" {
		h.WriteError(w, http.StatusBadRequest, "car code is required")
		return
	}

	movements, err := h.Service.ByCarCode(carCode)
	if err != nil {
		h.Logger.Error("ListByCarCode: service error", "error", err, "car_code", carCode)
		h.WriteError(w, http.StatusInternalServerError, "failed to list movements")
		return
	}

	h.WriteJSON(w, http.StatusOK, movements)
}

func (h *Handler) ListByDriverName(w http.ResponseWriter, r *http.Request) {
	driverName := chi.URLParam(r, "driverName")
	if driverName == "" {
		h.WriteError(w, http.StatusBadRequest, "driver name is required")
		return
	}

	movements, err := h.Service.ByDriverName(driverName)
	if err != nil {
		h.Logger.Error("ListByDriverName: service error", "error", err, "driver", driverName)
		h.WriteError(w, http.StatusInternalServerError, "failed to list movements")
		return
	}

	h.WriteJSON(w, http.StatusOK, movements)
}

func (h *Handler) ListRecent(w http.ResponseWriter, r *http.Request) {
	movements, err := h.Service.Recent()
	if err != nil {
		h.Logger.Error("ListRecent: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to list movements")
		return
	}

	h.WriteJSON(w, http.StatusOK, movements)
}

func (h *Handler) movementID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func filterFromQuery(r *http.Request) ListFilter {
	q := r.URL.Query()

	filter := ListFilter{
		CarCode:        q.Get("carCode"),
		DriverName:     q.Get("driverName"),
		SupervisorName: q.Get("supervisorName"),
		Department:     q.Get("department"),
		Client:         q.Get("client"),
	}

	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
		filter.Limit = limit
	}
	if start, err := time.Parse(time.RFC3339, q.Get("startDate")); err == nil {
		filter.StartDate = &start
	} else if start, err := time.Parse("2006-01-02", q.Get("startDate")); err == nil {
		filter.StartDate = &start
	}
	if end, err := time.Parse(time.RFC3339, q.Get("endDate")); err == nil {
		filter.EndDate = &end
	} else if end, err := time.Parse("2006-01-02", q.Get("endDate")); err == nil {
		filter.EndDate = &end
	}

	return filter
}
