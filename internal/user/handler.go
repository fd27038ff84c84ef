package user

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/fleethub/fleet-management/internal/auth"
	"github.com/fleethub/fleet-management/internal/transport"
	"github.com/fleethub/fleet-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListUsers() ([]UserResponse, error)
	GetByID(id int64) (*UserResponse, error)
	UpdatePermissions(actor *auth.Principal, targetID int64, dto UpdatePermissionsDTO) (*UserResponse, error)
	DeleteUser(actor *auth.Principal, targetID int64) error
	LimitReached() (bool, error)
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

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.ListUsers()
	if err != nil {
		h.Logger.Error("ListUsers: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	h.WriteJSON(w, http.StatusOK, users)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := h.userID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	u, err := h.Service.GetByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) UpdatePermissions(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.PrincipalFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.userID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	var dto UpdatePermissionsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.Service.UpdatePermissions(actor, id, dto)
	if err != nil {
		h.Logger.Error("UpdatePermissions: service error", "error", err, "target_id", id, "actor_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.PrincipalFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.userID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	if err := h.Service.DeleteUser(actor, id); err != nil {
		h.Logger.Error("DeleteUser: service error", "error", err, "target_id", id, "actor_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "User removed"})
}

func (h *Handler) CheckLimit(w http.ResponseWriter, r *http.Request) {
	reached, err := h.Service.LimitReached()
	if err != nil {
		h.Logger.Error("CheckLimit: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to check user limit")
		return
	}

	h.WriteJSON(w, http.StatusOK, LimitResponse{IsLimitReached: reached})
}

func (h *Handler) userID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
