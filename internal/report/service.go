package report

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/fleethub/fleet-management/internal/movement"
	"github.com/fleethub/fleet-management/internal/vehicle"
	"github.com/xuri/excelize/v2"
)

// MovementSource supplies the filtered, unpaginated movement set a
// report covers.
type MovementSource interface {
	AllFiltered(filter movement.ListFilter) ([]*movement.Movement, error)
}

// VehicleSource supplies vehicles with their maintenance history and
// derived oil-change fields already computed.
type VehicleSource interface {
	GetByID(id int64) (*vehicle.VehicleResponse, error)
	GetAll() ([]vehicle.VehicleResponse, error)
}

type Service struct {
	movements MovementSource
	vehicles  VehicleSource
	logger    *slog.Logger
}

func NewService(movements MovementSource, vehicles VehicleSource, logger *slog.Logger) *Service {
	return &Service{
		movements: movements,
		vehicles:  vehicles,
		logger:    logger,
	}
}

// Export bundles a rendered workbook with the filename the client
// should save it under.
type Export struct {
	File     *excelize.File
	Filename string
}

var movementColumns = []column{
	{"Date", 15},
	{"Car Code", 12},
	{"Plate Number", 15},
	{"Driver Name", 20},
	{"Supervisor Name", 20},
	{"Department", 15},
	{"Client", 20},
	{"Route", 20},
	{"Departure Time", 20},
	{"Arrival Time", 20},
	{"Odometer Reading", 18},
	{"Fuel Cost", 15},
	{"Notes", 30},
}

// MovementReport renders every movement matching the filter, newest
// first, as a single worksheet.
func (s *Service) MovementReport(filter movement.ListFilter) (*Export, error) {
	movements, err := s.movements.AllFiltered(filter)
	if err != nil {
		return nil, err
	}

	f, err := newWorkbook("Vehicle Movements", movementColumns)
	if err != nil {
		return nil, fmt.Errorf("failed to build workbook: %w", err)
	}

	for i, m := range movements {
		row := []interface{}{
			formatDate(m.Date),
			m.CarCode,
			m.PlateNumber,
			m.DriverName,
			m.SupervisorName,
			m.Department,
			m.Client,
			m.Route,
			formatDateTime(m.DepartureTime),
			formatDateTime(m.ArrivalTime),
			m.OdometerReading,
			m.FuelCost,
			m.Notes,
		}
		if err := writeRow(f, "Vehicle Movements", i+2, row); err != nil {
			return nil, fmt.Errorf("failed to write report row: %w", err)
		}
	}

	s.logger.Info("movement report generated", "rows", len(movements))
	return &Export{File: f, Filename: "vehicle_movements_report.xlsx"}, nil
}

var (
	infoColumns = []column{
		{"Property", 25},
		{"Value", 35},
	}
	maintenanceColumns = []column{
		{"Date", 15},
		{"Type", 20},
		{"Description", 35},
		{"Cost", 15},
		{"Location", 25},
		{"Odometer Reading", 18},
		{"Performed By", 20},
	}
	summaryColumns = []column{
		{"Category", 25},
		{"Total Cost", 15},
		{"Count", 10},
	}
)

// MaintenanceReport renders a three-sheet workbook for one vehicle:
// its profile, the maintenance history newest first, and per-type cost
// totals.
func (s *Service) MaintenanceReport(vehicleID int64) (*Export, error) {
	v, err := s.vehicles.GetByID(vehicleID)
	if err != nil {
		return nil, err
	}

	f, err := newWorkbook("Vehicle Information", infoColumns)
	if err != nil {
		return nil, fmt.Errorf("failed to build workbook: %w", err)
	}

	simNumber := v.SimNumber
	if simNumber == "" {
		simNumber = "N/A"
	}
	info := [][2]interface{}{
		{"Car Code", v.CarCode},
		{"Plate Number", v.PlateNumber},
		{"Make", v.Make},
		{"Model", v.Model},
		{"Year", v.Year},
		{"Chassis Number", v.ChassisNumber},
		{"Engine Number", v.EngineNumber},
		{"SIM Number", simNumber},
		{"Owner Name", v.OwnerName},
		{"License Expiry Date", formatDate(v.LicenseExpiryDate)},
		{"Insurance Expiry Date", formatDate(v.InsuranceExpiryDate)},
		{"Last Oil Change Odometer", v.LastOilChangeOdometer},
		{"Current Odometer", v.CurrentOdometer},
		{"Distance Since Last Oil Change", v.DistanceSinceLastOilChange},
		{"Oil Change Needed", yesNo(v.NeedsOilChange)},
		{"Status", v.Status},
	}
	for i, pair := range info {
		if err := writeRow(f, "Vehicle Information", i+2, pair[:]); err != nil {
			return nil, fmt.Errorf("failed to write report row: %w", err)
		}
	}

	if err := addSheet(f, "Maintenance History", maintenanceColumns); err != nil {
		return nil, fmt.Errorf("failed to build workbook: %w", err)
	}
	if len(v.Maintenance) == 0 {
		if err := writeRow(f, "Maintenance History", 2, []interface{}{"", "", "No maintenance records found"}); err != nil {
			return nil, fmt.Errorf("failed to write report row: %w", err)
		}
	}
	for i, rec := range v.Maintenance {
		row := []interface{}{
			formatDate(rec.Date),
			rec.Type,
			rec.Description,
			rec.Cost,
			rec.Location,
			rec.OdometerReading,
			rec.PerformedBy,
		}
		if err := writeRow(f, "Maintenance History", i+2, row); err != nil {
			return nil, fmt.Errorf("failed to write report row: %w", err)
		}
	}

	if err := addSheet(f, "Maintenance Summary", summaryColumns); err != nil {
		return nil, fmt.Errorf("failed to build workbook: %w", err)
	}
	if err := s.writeMaintenanceSummary(f, v.Maintenance); err != nil {
		return nil, err
	}

	s.logger.Info("maintenance report generated",
		"vehicle_id", vehicleID,
		"car_code", v.CarCode,
		"records", len(v.Maintenance))

	return &Export{
		File:     f,
		Filename: fmt.Sprintf("vehicle_%s_maintenance_report.xlsx", v.CarCode),
	}, nil
}

func (s *Service) writeMaintenanceSummary(f *excelize.File, records []vehicle.MaintenanceRecord) error {
	const sheet = "Maintenance Summary"

	if len(records) == 0 {
		return writeRow(f, sheet, 2, []interface{}{"No maintenance records found"})
	}

	type bucket struct {
		cost  float64
		count int
	}
	perType := make(map[string]*bucket)
	order := []string{}
	var totalCost float64

	for _, rec := range records {
		totalCost += rec.Cost
		b, ok := perType[rec.Type]
		if !ok {
			b = &bucket{}
			perType[rec.Type] = b
			order = append(order, rec.Type)
		}
		b.cost += rec.Cost
		b.count++
	}

	rowIdx := 2
	for _, recType := range order {
		b := perType[recType]
		row := []interface{}{recType, fmt.Sprintf("%.2f", b.cost), b.count}
		if err := writeRow(f, sheet, rowIdx, row); err != nil {
			return err
		}
		rowIdx++
	}

	totalRow := []interface{}{"TOTAL MAINTENANCE COST", fmt.Sprintf("%.2f", totalCost), len(records)}
	if err := writeRow(f, sheet, rowIdx, totalRow); err != nil {
		return err
	}
	alert, err := alertStyle(f)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, fmt.Sprintf("B%d", rowIdx), fmt.Sprintf("B%d", rowIdx), alert)
}

var fleetColumns = []column{
	{"Car Code", 12},
	{"Plate Number", 15},
	{"Make & Model", 20},
	{"Year", 8},
	{"Status", 12},
	{"Current Odometer", 18},
	{"Last Oil Change", 18},
	{"Since Last Oil Change", 20},
	{"Oil Change Needed", 18},
	{"License Expiry", 15},
	{"Insurance Expiry", 15},
	{"Owner", 20},
}

// FleetStatusReport renders the whole fleet, one row per vehicle, with
// overdue oil changes and imminent document expiries flagged in red.
func (s *Service) FleetStatusReport() (*Export, error) {
	vehicles, err := s.vehicles.GetAll()
	if err != nil {
		return nil, err
	}

	const sheet = "Fleet Status"
	f, err := newWorkbook(sheet, fleetColumns)
	if err != nil {
		return nil, fmt.Errorf("failed to build workbook: %w", err)
	}

	alert, err := alertStyle(f)
	if err != nil {
		return nil, fmt.Errorf("failed to build workbook: %w", err)
	}
	warningCutoff := time.Now().Add(expiryWarningWindow)

	for i, v := range vehicles {
		rowIdx := i + 2
		row := []interface{}{
			v.CarCode,
			v.PlateNumber,
			fmt.Sprintf("%s %s", v.Make, v.Model),
			v.Year,
			v.Status,
			v.CurrentOdometer,
			v.LastOilChangeOdometer,
			v.DistanceSinceLastOilChange,
			yesNo(v.NeedsOilChange),
			formatDate(v.LicenseExpiryDate),
			formatDate(v.InsuranceExpiryDate),
			v.OwnerName,
		}
		if err := writeRow(f, sheet, rowIdx, row); err != nil {
			return nil, fmt.Errorf("failed to write report row: %w", err)
		}

		if v.NeedsOilChange {
			cell := fmt.Sprintf("I%d", rowIdx)
			if err := f.SetCellStyle(sheet, cell, cell, alert); err != nil {
				return nil, fmt.Errorf("failed to style report row: %w", err)
			}
		}
		if !v.LicenseExpiryDate.IsZero() && !v.LicenseExpiryDate.After(warningCutoff) {
			cell := fmt.Sprintf("J%d", rowIdx)
			if err := f.SetCellStyle(sheet, cell, cell, alert); err != nil {
				return nil, fmt.Errorf("failed to style report row: %w", err)
			}
		}
		if !v.InsuranceExpiryDate.IsZero() && !v.InsuranceExpiryDate.After(warningCutoff) {
			cell := fmt.Sprintf("K%d", rowIdx)
			if err := f.SetCellStyle(sheet, cell, cell, alert); err != nil {
				return nil, fmt.Errorf("failed to style report row: %w", err)
			}
		}
	}

	s.logger.Info("fleet status report generated", "vehicles", len(vehicles))
	return &Export{File: f, Filename: "fleet_status_report.xlsx"}, nil
}
