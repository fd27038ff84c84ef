package postgres

import (
	"errors"
	"time"

	"github.com/fleethub/fleet-management/internal/movement"
	"gorm.io/gorm"
)

type MovementRepository struct {
	db *gorm.DB
}

func NewMovementRepository(db *gorm.DB) *MovementRepository {
	return &MovementRepository{db: db}
}

func (r *MovementRepository) Create(m *movement.Movement) error {
	return r.db.Create(m).Error
}

func (r *MovementRepository) GetByID(id int64) (*movement.Movement, error) {
	var m movement.Movement
	err := r.db.Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, movement.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *MovementRepository) Update(m *movement.Movement) error {
	return r.db.Model(&movement.Movement{}).
		Where("id = ?", m.ID).
		Updates(map[string]interface{}{
			"vehicle_id":       m.VehicleID,
			"car_code":         m.CarCode,
			"plate_number":     m.PlateNumber,
			"driver_name":      m.DriverName,
			"supervisor_name":  m.SupervisorName,
			"department":       m.Department,
			"client":           m.Client,
			"route":            m.Route,
			"date":             m.Date,
			"departure_time":   m.DepartureTime,
			"arrival_time":     m.ArrivalTime,
			"odometer_reading": m.OdometerReading,
			"fuel_cost":        m.FuelCost,
			"notes":            m.Notes,
			"updated_at":       time.Now(),
		}).Error
}

func (r *MovementRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&movement.Movement{}).Error
}

// List applies the filter twice, once for the page and once for the
// total, so the pagination envelope reflects the filtered set.
func (r *MovementRepository) List(filter movement.ListFilter) ([]*movement.Movement, int64, error) {
	var total int64
	if err := r.filtered(filter).Model(&movement.Movement{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var movements []*movement.Movement
	err := r.filtered(filter).
		Order("date DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Find(&movements).Error
	if err != nil {
		return nil, 0, err
	}

	return movements, total, nil
}

// ListAll is the unpaginated variant backing report exports.
func (r *MovementRepository) ListAll(filter movement.ListFilter) ([]*movement.Movement, error) {
	var movements []*movement.Movement
	err := r.filtered(filter).Order("date DESC").Find(&movements).Error
	return movements, err
}

func (r *MovementRepository) filtered(filter movement.ListFilter) *gorm.DB {
	q := r.db
	if filter.CarCode != "" {
		q = q.Where("car_code = ?", filter.CarCode)
	}
	if filter.DriverName != "" {
		q = q.Where("driver_name ILIKE ?", "%"+filter.DriverName+"%")
	}
	if filter.SupervisorName != "" {
		q = q.Where("supervisor_name ILIKE ?", "%"+filter.SupervisorName+"%")
	}
	if filter.Department != "" {
		q = q.Where("department = ?", filter.Department)
	}
	if filter.Client != "" {
		q = q.Where("client = ?", filter.Client)
	}
	if filter.StartDate != nil {
		q = q.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("date <= ?", *filter.EndDate)
	}
	return q
}

func (r *MovementRepository) GetByCarCode(carCode string) ([]*movement.Movement, error) {
	var movements []*movement.Movement
	err := r.db.Where("car_code = ?", carCode).Order("date DESC").Find(&movements).Error
	return movements, err
}

func (r *MovementRepository) GetByDriverName(driverName string) ([]*movement.Movement, error) {
	var movements []*movement.Movement
	err := r.db.Where("driver_name ILIKE ?", "%"+driverName+"%").
		Order("date DESC").
		Find(&movements).Error
	return movements, err
}

func (r *MovementRepository) GetSince(since time.Time) ([]*movement.Movement, error) {
	var movements []*movement.Movement
	err := r.db.Where("date >= ?", since).Order("date DESC").Find(&movements).Error
	return movements, err
}

// AnyForVehicle satisfies the vehicle package's movement checker; it
// backs the delete guard on vehicles with trip history.
func (r *MovementRepository) AnyForVehicle(vehicleID int64) (bool, error) {
	var count int64
	err := r.db.Model(&movement.Movement{}).
		Where("vehicle_id = ?", vehicleID).
		Count(&count).Error
	return count > 0, err
}
