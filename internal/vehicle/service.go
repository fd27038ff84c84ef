package vehicle

import (
	"fmt"
	"log/slog"
)

type Repository interface {
	Create(v *Vehicle) error
	GetAll() ([]*Vehicle, error)
	GetByID(id int64) (*Vehicle, error)
	GetByCarCode(carCode string) (*Vehicle, error)
	GetByPlateNumber(plateNumber string) (*Vehicle, error)
	Update(v *Vehicle) error
	UpdateOdometer(id int64, odometer int64) error
	Delete(id int64) error
	AddMaintenance(rec *MaintenanceRecord) error
	UpdateMaintenance(rec *MaintenanceRecord) error
	DeleteMaintenance(vehicleID, recordID int64) error
}

// MovementChecker reports whether any movement records reference a
// vehicle. Implemented by the movement store and wired in at startup.
type MovementChecker interface {
	AnyForVehicle(vehicleID int64) (bool, error)
}

type Service struct {
	repo      Repository
	movements MovementChecker
	logger    *slog.Logger
}

func NewService(repo Repository, movements MovementChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		movements: movements,
		logger:    logger,
	}
}

func (s *Service) Create(dto CreateVehicleDTO) (*VehicleResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByCarCode(dto.CarCode); err != nil {
		return nil, fmt.Errorf("failed to check car code: %w", err)
	} else if existing != nil {
		return nil, ErrDuplicateCarCode
	}

	if existing, err := s.repo.GetByPlateNumber(dto.PlateNumber); err != nil {
		return nil, fmt.Errorf("failed to check plate number: %w", err)
	} else if existing != nil {
		return nil, ErrDuplicatePlate
	}

	status := dto.Status
	if status == "" {
		status = StatusActive
	}

	v := &Vehicle{
		CarCode:               dto.CarCode,
		PlateNumber:           dto.PlateNumber,
		Make:                  dto.Make,
		Model:                 dto.Model,
		Year:                  dto.Year,
		ChassisNumber:         dto.ChassisNumber,
		EngineNumber:          dto.EngineNumber,
		SimNumber:             dto.SimNumber,
		OwnerName:             dto.OwnerName,
		LicenseExpiryDate:     dto.LicenseExpiryDate,
		InsuranceExpiryDate:   dto.InsuranceExpiryDate,
		Status:                status,
		CurrentOdometer:       dto.CurrentOdometer,
		LastOilChangeOdometer: dto.LastOilChangeOdometer,
	}

	if err := s.repo.Create(v); err != nil {
		s.logger.Error("failed to create vehicle", "error", err, "car_code", dto.CarCode)
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	s.logger.Info("vehicle created", "vehicle_id", v.ID, "car_code", v.CarCode)
	resp := v.ToResponse()
	return &resp, nil
}

func (s *Service) GetAll() ([]VehicleResponse, error) {
	vehicles, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list vehicles", "error", err)
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}

	responses := make([]VehicleResponse, len(vehicles))
	for i, v := range vehicles {
		responses[i] = v.ToResponse()
	}
	return responses, nil
}

func (s *Service) GetByID(id int64) (*VehicleResponse, error) {
	v, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	resp := v.ToResponse()
	return &resp, nil
}

func (s *Service) GetByCarCode(carCode string) (*VehicleResponse, error) {
	v, err := s.repo.GetByCarCode(carCode)
	if err != nil {
		return nil, fmt.Errorf("failed to look up vehicle: %w", err)
	}
	if v == nil {
		return nil, ErrNotFound
	}

	resp := v.ToResponse()
	return &resp, nil
}

// NeedingOilChange returns the vehicles whose distance since the last
// oil change has reached the threshold.
func (s *Service) NeedingOilChange() ([]VehicleResponse, error) {
	vehicles, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list vehicles", "error", err)
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}

	due := []VehicleResponse{}
	for _, v := range vehicles {
		if v.NeedsOilChange() {
			due = append(due, v.ToResponse())
		}
	}
	return due, nil
}

// Update applies a partial update. Changing currentOdometer or
// lastOilChangeOdometer here writes the given values directly; nothing
// is re-derived from maintenance history.
func (s *Service) Update(id int64, dto UpdateVehicleDTO) (*VehicleResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	v, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.CarCode != nil && *dto.CarCode != v.CarCode {
		if existing, err := s.repo.GetByCarCode(*dto.CarCode); err != nil {
			return nil, fmt.Errorf("failed to check car code: %w", err)
		} else if existing != nil && existing.ID != id {
			return nil, ErrDuplicateCarCode
		}
	}

	if dto.PlateNumber != nil && *dto.PlateNumber != v.PlateNumber {
		if existing, err := s.repo.GetByPlateNumber(*dto.PlateNumber); err != nil {
			return nil, fmt.Errorf("failed to check plate number: %w", err)
		} else if existing != nil && existing.ID != id {
			return nil, ErrDuplicatePlate
		}
	}

	if err := dto.Apply(v); err != nil {
		return nil, err
	}

	if err := s.repo.Update(v); err != nil {
		s.logger.Error("failed to update vehicle", "error", err, "vehicle_id", id)
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}

	s.logger.Info("vehicle updated", "vehicle_id", id, "car_code", v.CarCode)
	resp := v.ToResponse()
	return &resp, nil
}

// Delete refuses to remove a vehicle that movement records still
// reference; the vehicle should be marked inactive instead.
func (s *Service) Delete(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}

	referenced, err := s.movements.AnyForVehicle(id)
	if err != nil {
		return fmt.Errorf("failed to check movement history: %w", err)
	}
	if referenced {
		return ErrHasMovements
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete vehicle", "error", err, "vehicle_id", id)
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}

	s.logger.Info("vehicle deleted", "vehicle_id", id)
	return nil
}

// FindByCarCode returns the stored entity. Used by the movement service
// to check status and read the odometer before recording a trip.
func (s *Service) FindByCarCode(carCode string) (*Vehicle, error) {
	v, err := s.repo.GetByCarCode(carCode)
	if err != nil {
		return nil, fmt.Errorf("failed to look up vehicle: %w", err)
	}
	if v == nil {
		return nil, ErrNotFound
	}
	return v, nil
}

// RecordMovementOdometer feeds a trip's arrival reading into the
// odometer. The odometer only ratchets upward; a reading at or below
// the stored value leaves it untouched.
func (s *Service) RecordMovementOdometer(vehicleID int64, reading int64) error {
	v, err := s.repo.GetByID(vehicleID)
	if err != nil {
		return err
	}

	if !v.RatchetOdometer(reading) {
		return nil
	}

	if err := s.repo.UpdateOdometer(vehicleID, v.CurrentOdometer); err != nil {
		s.logger.Error("failed to update odometer", "error", err, "vehicle_id", vehicleID)
		return fmt.Errorf("failed to update odometer: %w", err)
	}

	s.logger.Info("odometer advanced", "vehicle_id", vehicleID, "odometer", v.CurrentOdometer)
	return nil
}

// AddMaintenance appends a record. An oil-change record overwrites
// lastOilChangeOdometer with its reading regardless of its date, so the
// most recently entered oil change wins.
func (s *Service) AddMaintenance(vehicleID int64, dto MaintenanceRecordDTO) (*VehicleResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	v, err := s.repo.GetByID(vehicleID)
	if err != nil {
		return nil, err
	}

	rec := &MaintenanceRecord{
		VehicleID:       vehicleID,
		Date:            dto.Date,
		Type:            dto.Type,
		Description:     dto.Description,
		Cost:            dto.Cost,
		Location:        dto.Location,
		OdometerReading: dto.OdometerReading,
		PerformedBy:     dto.PerformedBy,
	}

	if err := s.repo.AddMaintenance(rec); err != nil {
		s.logger.Error("failed to add maintenance record", "error", err, "vehicle_id", vehicleID)
		return nil, fmt.Errorf("failed to add maintenance record: %w", err)
	}

	changed := v.RatchetOdometer(rec.OdometerReading)
	if rec.IsOilChange() {
		v.LastOilChangeOdometer = rec.OdometerReading
		changed = true
	}
	if changed {
		if err := s.repo.Update(v); err != nil {
			s.logger.Error("failed to update odometer fields", "error", err, "vehicle_id", vehicleID)
			return nil, fmt.Errorf("failed to update odometer fields: %w", err)
		}
	}

	s.logger.Info("maintenance record added",
		"vehicle_id", vehicleID,
		"record_id", rec.ID,
		"type", rec.Type,
		"oil_change", rec.IsOilChange())

	return s.GetByID(vehicleID)
}

// UpdateMaintenance rewrites a record. As with AddMaintenance, an
// oil-change record applies its reading unconditionally.
func (s *Service) UpdateMaintenance(vehicleID, recordID int64, dto MaintenanceRecordDTO) (*VehicleResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	v, err := s.repo.GetByID(vehicleID)
	if err != nil {
		return nil, err
	}

	rec := findRecord(v.Maintenance, recordID)
	if rec == nil {
		return nil, ErrMaintenanceNotFound
	}

	rec.Date = dto.Date
	rec.Type = dto.Type
	rec.Description = dto.Description
	rec.Cost = dto.Cost
	rec.Location = dto.Location
	rec.OdometerReading = dto.OdometerReading
	rec.PerformedBy = dto.PerformedBy

	if err := s.repo.UpdateMaintenance(rec); err != nil {
		s.logger.Error("failed to update maintenance record", "error", err, "record_id", recordID)
		return nil, fmt.Errorf("failed to update maintenance record: %w", err)
	}

	if rec.IsOilChange() {
		v.LastOilChangeOdometer = rec.OdometerReading
		if err := s.repo.Update(v); err != nil {
			s.logger.Error("failed to update oil change odometer", "error", err, "vehicle_id", vehicleID)
			return nil, fmt.Errorf("failed to update oil change odometer: %w", err)
		}
	}

	s.logger.Info("maintenance record updated", "vehicle_id", vehicleID, "record_id", recordID)
	return s.GetByID(vehicleID)
}

// DeleteMaintenance removes a record. Deleting an oil-change record
// re-derives lastOilChangeOdometer from the remaining oil-change
// records by greatest date. When none remain the stored value is kept,
// so the due-for-oil-change state survives the deletion.
func (s *Service) DeleteMaintenance(vehicleID, recordID int64) (*VehicleResponse, error) {
	v, err := s.repo.GetByID(vehicleID)
	if err != nil {
		return nil, err
	}

	rec := findRecord(v.Maintenance, recordID)
	if rec == nil {
		return nil, ErrMaintenanceNotFound
	}
	wasOilChange := rec.IsOilChange()

	if err := s.repo.DeleteMaintenance(vehicleID, recordID); err != nil {
		s.logger.Error("failed to delete maintenance record", "error", err, "record_id", recordID)
		return nil, fmt.Errorf("failed to delete maintenance record: %w", err)
	}

	if wasOilChange {
		remaining := make([]MaintenanceRecord, 0, len(v.Maintenance))
		for _, m := range v.Maintenance {
			if m.ID != recordID {
				remaining = append(remaining, m)
			}
		}
		if latest := LatestOilChange(remaining); latest != nil {
			v.LastOilChangeOdometer = latest.OdometerReading
			if err := s.repo.Update(v); err != nil {
				s.logger.Error("failed to update oil change odometer", "error", err, "vehicle_id", vehicleID)
				return nil, fmt.Errorf("failed to update oil change odometer: %w", err)
			}
		}
	}

	s.logger.Info("maintenance record deleted",
		"vehicle_id", vehicleID,
		"record_id", recordID,
		"oil_change", wasOilChange)

	return s.GetByID(vehicleID)
}

func findRecord(records []MaintenanceRecord, id int64) *MaintenanceRecord {
	for i := range records {
		if records[i].ID == id {
			return &records[i]
		}
	}
	return nil
}
