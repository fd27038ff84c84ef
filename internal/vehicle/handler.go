package vehicle

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/fleethub/fleet-management/internal/transport"
	"github.com/fleethub/fleet-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Create(dto CreateVehicleDTO) (*VehicleResponse, error)
	GetAll() ([]VehicleResponse, error)
	GetByID(id int64) (*VehicleResponse, error)
	GetByCarCode(carCode string) (*VehicleResponse, error)
	NeedingOilChange() ([]VehicleResponse, error)
	Update(id int64, dto UpdateVehicleDTO) (*VehicleResponse, error)
	Delete(id int64) error
	AddMaintenance(vehicleID int64, dto MaintenanceRecordDTO) (*VehicleResponse, error)
	UpdateMaintenance(vehicleID, recordID int64, dto MaintenanceRecordDTO) (*VehicleResponse, error)
	DeleteMaintenance(vehicleID, recordID int64) (*VehicleResponse, error)
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

func (h *Handler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var dto CreateVehicleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	v, err := h.Service.Create(dto)
	if err != nil {
		var ve ValidationError
		if errors.As(err, &ve) {
			h.WriteError(w, http.StatusBadRequest, ve.Msg)
			return
		}
		h.Logger.Error("CreateVehicle: service error", "error", err, "car_code", dto.CarCode)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, v)
}

func (h *Handler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.Service.GetAll()
	if err != nil {
		h.Logger.Error("ListVehicles: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to list vehicles")
		return
	}

	h.WriteJSON(w, http.StatusOK, vehicles)
}

func (h *Handler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := h.vehicleID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid vehicle ID")
		return
	}

	v, err := h.Service.GetByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) GetVehicleByCarCode(w http.ResponseWriter, r *http.Request) {
	carCode := chi.URLParam(r, "carCode")
	if carCode == "" {
		h.WriteError(w, http.StatusBadRequest, "car code is required")
		return
	}

	v, err := h.Service.GetByCarCode(carCode)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) ListNeedingOilChange(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.Service.NeedingOilChange()
	if err != nil {
		h.Logger.Error("ListNeedingOilChange: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to list vehicles")
		return
	}

	h.WriteJSON(w, http.StatusOK, vehicles)
}

func (h *Handler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := h.vehicleID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid vehicle ID")
		return
	}

	var dto UpdateVehicleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	v, err := h.Service.Update(id, dto)
	if err != nil {
		var ve ValidationError
		if errors.As(err, &ve) {
			h.WriteError(w, http.StatusBadRequest, ve.Msg)
			return
		}
		h.Logger.Error("UpdateVehicle: service error", "error", err, "vehicle_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := h.vehicleID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid vehicle ID")
		return
	}

	if err := h.Service.Delete(id); err != nil {
		h.Logger.Error("DeleteVehicle: service error", "error", err, "vehicle_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Vehicle removed"})
}

func (h *Handler) AddMaintenance(w http.ResponseWriter, r *http.Request) {
	id, err := h.vehicleID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid vehicle ID")
		return
	}

	var dto MaintenanceRecordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	v, err := h.Service.AddMaintenance(id, dto)
	if err != nil {
		var ve ValidationError
		if errors.As(err, &ve) {
			h.WriteError(w, http.StatusBadRequest, ve.Msg)
			return
		}
		h.Logger.Error("AddMaintenance: service error", "error", err, "vehicle_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, v)
}

func (h *Handler) UpdateMaintenance(w http.ResponseWriter, r *http.Request) {
	id, err := h.vehicleID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid vehicle ID")
		return
	}

	recordID, err := strconv.ParseInt(chi.URLParam(r, "recordId"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid maintenance record ID")
		return
	}

	var dto MaintenanceRecordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	v, err := h.Service.UpdateMaintenance(id, recordID, dto)
	if err != nil {
		var ve ValidationError
		if errors.As(err, &ve) {
			h.WriteError(w, http.StatusBadRequest, ve.Msg)
			return
		}
		h.Logger.Error("UpdateMaintenance: service error", "error", err, "vehicle_id", id, "record_id", recordID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) DeleteMaintenance(w http.ResponseWriter, r *http.Request) {
	id, err := h.vehicleID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid vehicle ID")
		return
	}

	recordID, err := strconv.ParseInt(chi.URLParam(r, "recordId"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid maintenance record ID")
		return
	}

	v, err := h.Service.DeleteMaintenance(id, recordID)
	if err != nil {
		h.Logger.Error("DeleteMaintenance: service error", "error", err, "vehicle_id", id, "record_id", recordID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) vehicleID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
