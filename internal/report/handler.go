package report

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/fleethub/fleet-management/internal/movement"
	"github.com/fleethub/fleet-management/internal/transport"
	"github.com/fleethub/fleet-management/pkg/logger"
	"github.com/go-chi/chi"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ServiceAPI interface {
	MovementReport(filter movement.ListFilter) (*Export, error)
	MaintenanceReport(vehicleID int64) (*Export, error)
	FleetStatusReport() (*Export, error)
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

func (h *Handler) MovementReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := movement.ListFilter{
		CarCode:        q.Get("carCode"),
		DriverName:     q.Get("driverName"),
		SupervisorName: q.Get("supervisorName"),
		Department:     q.Get("department"),
		Client:         q.Get("client"),
	}
	if start, err := parseDate(q.Get("startDate")); err == nil {
		filter.StartDate = &start
	}
	if end, err := parseDate(q.Get("endDate")); err == nil {
		filter.EndDate = &end
	}

	export, err := h.Service.MovementReport(filter)
	if err != nil {
		h.Logger.Error("MovementReport: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.writeWorkbook(w, export)
}

func (h *Handler) MaintenanceReport(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := strconv.ParseInt(chi.URLParam(r, "vehicleId"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid vehicle ID")
		return
	}

	export, err := h.Service.MaintenanceReport(vehicleID)
	if err != nil {
		h.Logger.Error("MaintenanceReport: service error", "error", err, "vehicle_id", vehicleID)
		h.HandleServiceError(w, err)
		return
	}

	h.writeWorkbook(w, export)
}

func (h *Handler) FleetStatusReport(w http.ResponseWriter, r *http.Request) {
	export, err := h.Service.FleetStatusReport()
	if err != nil {
		h.Logger.Error("FleetStatusReport: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.writeWorkbook(w, export)
}

// writeWorkbook streams the workbook to the client. Headers go out
// before the body, so a late write failure can only be logged.
func (h *Handler) writeWorkbook(w http.ResponseWriter, export *Export) {
	defer export.File.Close()

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", export.Filename))

	if _, err := export.File.WriteTo(w); err != nil {
		h.Logger.Error("failed to stream workbook", "error", err, "filename", export.Filename)
	}
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
