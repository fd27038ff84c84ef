package directory

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
	ListDrivers() ([]*Driver, error)
	GetDriver(id int64) (*Driver, error)
	CreateDriver(dto DriverDTO) (*Driver, error)
	UpdateDriver(id int64, dto DriverDTO) (*Driver, error)
	DeleteDriver(id int64) error

	ListClients() ([]*Client, error)
	GetClient(id int64) (*Client, error)
	CreateClient(dto ClientDTO) (*Client, error)
	UpdateClient(id int64, dto ClientDTO) (*Client, error)
	DeleteClient(id int64) error

	ListRoutes() ([]*Route, error)
	GetRoute(id int64) (*Route, error)
	CreateRoute(dto RouteDTO) (*Route, error)
	UpdateRoute(id int64, dto RouteDTO) (*Route, error)
	DeleteRoute(id int64) error

	ListDepartments() ([]*Department, error)
	GetDepartment(id int64) (*Department, error)
	CreateDepartment(dto DepartmentDTO) (*Department, error)
	UpdateDepartment(id int64, dto DepartmentDTO) (*Department, error)
	DeleteDepartment(id int64) error

	ListSupervisors() ([]*Supervisor, error)
	GetSupervisor(id int64) (*Supervisor, error)
	CreateSupervisor(dto SupervisorDTO) (*Supervisor, error)
	UpdateSupervisor(id int64, dto SupervisorDTO) (*Supervisor, error)
	DeleteSupervisor(id int64) error
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

// list wraps the repetitive list-endpoint shape shared by all five
// reference lists.
func list[T any](h *Handler, w http.ResponseWriter, fetch func() ([]T, error)) {
	items, err := fetch()
	if err != nil {
		h.Logger.Error("directory list failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to list records")
		return
	}
	h.WriteJSON(w, http.StatusOK, items)
}

func get[T any](h *Handler, w http.ResponseWriter, r *http.Request, fetch func(int64) (T, error)) {
	id, err := recordID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid record ID")
		return
	}
	item, err := fetch(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, item)
}

func create[D, T any](h *Handler, w http.ResponseWriter, r *http.Request, do func(D) (T, error)) {
	var dto D
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	item, err := do(dto)
	if err != nil {
		var ve ValidationError
		if errors.As(err, &ve) {
			h.WriteError(w, http.StatusBadRequest, ve.Msg)
			return
		}
		h.Logger.Error("directory create failed", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, item)
}

func update[D, T any](h *Handler, w http.ResponseWriter, r *http.Request, do func(int64, D) (T, error)) {
	id, err := recordID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid record ID")
		return
	}
	var dto D
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	item, err := do(id, dto)
	if err != nil {
		var ve ValidationError
		if errors.As(err, &ve) {
			h.WriteError(w, http.StatusBadRequest, ve.Msg)
			return
		}
		h.Logger.Error("directory update failed", "error", err, "record_id", id)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, item)
}

func remove(h *Handler, w http.ResponseWriter, r *http.Request, do func(int64) error) {
	id, err := recordID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid record ID")
		return
	}
	if err := do(id); err != nil {
		h.Logger.Error("directory delete failed", "error", err, "record_id", id)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Record removed"})
}

func (h *Handler) ListDrivers(w http.ResponseWriter, r *http.Request) {
	list(h, w, h.Service.ListDrivers)
}

func (h *Handler) GetDriver(w http.ResponseWriter, r *http.Request) {
	get(h, w, r, h.Service.GetDriver)
}

func (h *Handler) CreateDriver(w http.ResponseWriter, r *http.Request) {
	create(h, w, r, h.Service.CreateDriver)
}

func (h *Handler) UpdateDriver(w http.ResponseWriter, r *http.Request) {
	update(h, w, r, h.Service.UpdateDriver)
}

func (h *Handler) DeleteDriver(w http.ResponseWriter, r *http.Request) {
	remove(h, w, r, h.Service.DeleteDriver)
}

func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	list(h, w, h.Service.ListClients)
}

func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	get(h, w, r, h.Service.GetClient)
}

func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	create(h, w, r, h.Service.CreateClient)
}

func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	update(h, w, r, h.Service.UpdateClient)
}

func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	remove(h, w, r, h.Service.DeleteClient)
}

func (h *Handler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	list(h, w, h.Service.ListRoutes)
}

func (h *Handler) GetRoute(w http.ResponseWriter, r *http.Request) {
	get(h, w, r, h.Service.GetRoute)
}

func (h *Handler) CreateRoute(w http.ResponseWriter, r *http.Request) {
	create(h, w, r, h.Service.CreateRoute)
}

func (h *Handler) UpdateRoute(w http.ResponseWriter, r *http.Request) {
	update(h, w, r, h.Service.UpdateRoute)
}

func (h *Handler) DeleteRoute(w http.ResponseWriter, r *http.Request) {
	remove(h, w, r, h.Service.DeleteRoute)
}

func (h *Handler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	list(h, w, h.Service.ListDepartments)
}

func (h *Handler) GetDepartment(w http.ResponseWriter, r *http.Request) {
	get(h, w, r, h.Service.GetDepartment)
}

func (h *Handler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	create(h, w, r, h.Service.CreateDepartment)
}

func (h *Handler) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	update(h, w, r, h.Service.UpdateDepartment)
}

func (h *Handler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	remove(h, w, r, h.Service.DeleteDepartment)
}

func (h *Handler) ListSupervisors(w http.ResponseWriter, r *http.Request) {
	list(h, w, h.Service.ListSupervisors)
}

func (h *Handler) GetSupervisor(w http.ResponseWriter, r *http.Request) {
	get(h, w, r, h.Service.GetSupervisor)
}

func (h *Handler) CreateSupervisor(w http.ResponseWriter, r *http.Request) {
	create(h, w, r, h.Service.CreateSupervisor)
}

func (h *Handler) UpdateSupervisor(w http.ResponseWriter, r *http.Request) {
	update(h, w, r, h.Service.UpdateSupervisor)
}

func (h *Handler) DeleteSupervisor(w http.ResponseWriter, r *http.Request) {
	remove(h, w, r, h.Service.DeleteSupervisor)
}

func recordID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
