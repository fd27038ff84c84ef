package movement

import (
	"fmt"
	"log/slog"
	"time"
)

type Repository interface {
	Create(m *Movement) error
	GetByID(id int64) (*Movement, error)
	Update(m *Movement) error
	Delete(id int64) error
	List(filter ListFilter) ([]*Movement, int64, error)
	ListAll(filter ListFilter) ([]*Movement, error)
	GetByCarCode(carCode string) ([]*Movement, error)
	GetByDriverName(driverName string) ([]*Movement, error)
	GetSince(since time.Time) ([]*Movement, error)
	AnyForVehicle(vehicleID int64) (bool, error)
}

// recentWindow is how far back the recent-movements listing reaches.
const recentWindow = 30 * 24 * time.Hour

type Service struct {
	repo   Repository
	fleet  FleetService
	logger *slog.Logger
}

func NewService(repo Repository, fleet FleetService, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		fleet:  fleet,
		logger: logger,
	}
}

// Create records a trip. The vehicle must exist and be active; its
// odometer is fed the trip reading and ratchets upward only.
func (s *Service) Create(actorID int64, dto MovementDTO) (*Movement, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	v, err := s.fleet.VehicleByCarCode(dto.CarCode)
	if err != nil {
		return nil, err
	}
	if !v.IsActive() {
		return nil, NotActiveError(v.Status)
	}

	date := dto.Date
	if date.IsZero() {
		date = time.Now()
	}

	m := &Movement{
		VehicleID:       v.ID,
		CarCode:         v.CarCode,
		PlateNumber:     v.PlateNumber,
		DriverName:      dto.DriverName,
		SupervisorName:  dto.SupervisorName,
		Department:      dto.Department,
		Client:          dto.Client,
		Route:           dto.Route,
		Date:            date,
		DepartureTime:   dto.DepartureTime,
		ArrivalTime:     dto.ArrivalTime,
		OdometerReading: dto.OdometerReading,
		FuelCost:        dto.FuelCost,
		Notes:           dto.Notes,
		CreatedBy:       actorID,
	}

	if err := s.fleet.RecordOdometer(v.ID, dto.OdometerReading); err != nil {
		return nil, fmt.Errorf("failed to record odometer: %w", err)
	}

	if err := s.repo.Create(m); err != nil {
		s.logger.Error("failed to create movement", "error", err, "car_code", dto.CarCode)
		return nil, fmt.Errorf("failed to create movement: %w", err)
	}

	s.logger.Info("movement created",
		"movement_id", m.ID,
		"car_code", m.CarCode,
		"driver", m.DriverName,
		"created_by", actorID)

	return m, nil
}

// Update replaces a trip's fields. Changing the car code re-resolves
// the vehicle, which again must be active; the odometer of whichever
// vehicle ends up referenced is fed the new reading.
func (s *Service) Update(id int64, dto MovementDTO) (*Movement, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	m, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	var v *VehicleRef
	if dto.CarCode != m.CarCode {
		v, err = s.fleet.VehicleByCarCode(dto.CarCode)
		if err != nil {
			return nil, err
		}
		if !v.IsActive() {
			return nil, NotActiveError(v.Status)
		}
		m.VehicleID = v.ID
		m.PlateNumber = v.PlateNumber
	} else {
		v, err = s.fleet.VehicleByCarCode(m.CarCode)
		if err != nil {
			return nil, err
		}
	}

	m.CarCode = dto.CarCode
	m.DriverName = dto.DriverName
	m.SupervisorName = dto.SupervisorName
	m.Department = dto.Department
	m.Client = dto.Client
	m.Route = dto.Route
	if !dto.Date.IsZero() {
		m.Date = dto.Date
	}
	m.DepartureTime = dto.DepartureTime
	m.ArrivalTime = dto.ArrivalTime
	m.OdometerReading = dto.OdometerReading
	m.FuelCost = dto.FuelCost
	m.Notes = dto.Notes

	if err := s.fleet.RecordOdometer(v.ID, dto.OdometerReading); err != nil {
		return nil, fmt.Errorf("failed to record odometer: %w", err)
	}

	if err := s.repo.Update(m); err != nil {
		s.logger.Error("failed to update movement", "error", err, "movement_id", id)
		return nil, fmt.Errorf("failed to update movement: %w", err)
	}

	s.logger.Info("movement updated", "movement_id", id, "car_code", m.CarCode)
	return m, nil
}

func (s *Service) Delete(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete movement", "error", err, "movement_id", id)
		return fmt.Errorf("failed to delete movement: %w", err)
	}

	s.logger.Info("movement deleted", "movement_id", id)
	return nil
}

func (s *Service) GetByID(id int64) (*Movement, error) {
	return s.repo.GetByID(id)
}

func (s *Service) List(filter ListFilter) (*ListResponse, error) {
	filter.Normalize()

	movements, total, err := s.repo.List(filter)
	if err != nil {
		s.logger.Error("failed to list movements", "error", err)
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}

	if movements == nil {
		movements = []*Movement{}
	}
	return &ListResponse{
		Movements:  movements,
		Pagination: NewPagination(total, filter.Page, filter.Limit),
	}, nil
}

// AllFiltered returns every movement matching the filter with no
// pagination. Report exports use this; listings never should.
func (s *Service) AllFiltered(filter ListFilter) ([]*Movement, error) {
	movements, err := s.repo.ListAll(filter)
	if err != nil {
		s.logger.Error("failed to list movements for export", "error", err)
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	if movements == nil {
		movements = []*Movement{}
	}
	return movements, nil
}

func (s *Service) ByCarCode(carCode string) ([]*Movement, error) {
	movements, err := s.repo.GetByCarCode(carCode)
	if err != nil {
		s.logger.Error("failed to list movements by car code", "error", err, "car_code", carCode)
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	if movements == nil {
		movements = []*Movement{}
	}
	return movements, nil
}

func (s *Service) ByDriverName(driverName string) ([]*Movement, error) {
	movements, err := s.repo.GetByDriverName(driverName)
	if err != nil {
		s.logger.Error("failed to list movements by driver", "error", err, "driver", driverName)
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	if movements == nil {
		movements = []*Movement{}
	}
	return movements, nil
}

// Recent lists trips from the last thirty days, newest first.
func (s *Service) Recent() ([]*Movement, error) {
	movements, err := s.repo.GetSince(time.Now().Add(-recentWindow))
	if err != nil {
		s.logger.Error("failed to list recent movements", "error", err)
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	if movements == nil {
		movements = []*Movement{}
	}
	return movements, nil
}
