package postgres

import (
	"errors"
	"time"

	"github.com/fleethub/fleet-management/internal/vehicle"
	"gorm.io/gorm"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) vehicle.Repository {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) Create(v *vehicle.Vehicle) error {
	return r.db.Create(v).Error
}

func (r *VehicleRepository) GetAll() ([]*vehicle.Vehicle, error) {
	var vehicles []*vehicle.Vehicle
	err := r.db.
		Preload("Maintenance", func(db *gorm.DB) *gorm.DB {
			return db.Order("maintenance_records.id DESC")
		}).
		Order("car_code ASC").
		Find(&vehicles).Error
	return vehicles, err
}

func (r *VehicleRepository) GetByID(id int64) (*vehicle.Vehicle, error) {
	var v vehicle.Vehicle
	err := r.db.
		Preload("Maintenance", func(db *gorm.DB) *gorm.DB {
			return db.Order("maintenance_records.id DESC")
		}).
		Where("id = ?", id).
		First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, vehicle.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

// GetByCarCode returns nil without error when no vehicle matches, so
// the service can tell "absent" apart from a storage failure.
func (r *VehicleRepository) GetByCarCode(carCode string) (*vehicle.Vehicle, error) {
	var v vehicle.Vehicle
	err := r.db.
		Preload("Maintenance", func(db *gorm.DB) *gorm.DB {
			return db.Order("maintenance_records.id DESC")
		}).
		Where("car_code = ?", carCode).
		First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *VehicleRepository) GetByPlateNumber(plateNumber string) (*vehicle.Vehicle, error) {
	var v vehicle.Vehicle
	err := r.db.Where("plate_number = ?", plateNumber).First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *VehicleRepository) Update(v *vehicle.Vehicle) error {
	return r.db.Model(&vehicle.Vehicle{}).
		Where("id = ?", v.ID).
		Updates(map[string]interface{}{
			"car_code":                 v.CarCode,
			"plate_number":             v.PlateNumber,
			"make":                     v.Make,
			"model":                    v.Model,
			"year":                     v.Year,
			"chassis_number":           v.ChassisNumber,
			"engine_number":            v.EngineNumber,
			"sim_number":               v.SimNumber,
			"owner_name":               v.OwnerName,
			"license_expiry_date":      v.LicenseExpiryDate,
			"insurance_expiry_date":    v.InsuranceExpiryDate,
			"status":                   v.Status,
			"current_odometer":         v.CurrentOdometer,
			"last_oil_change_odometer": v.LastOilChangeOdometer,
			"updated_at":               time.Now(),
		}).Error
}

func (r *VehicleRepository) UpdateOdometer(id int64, odometer int64) error {
	return r.db.Model(&vehicle.Vehicle{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"current_odometer": odometer,
			"updated_at":       time.Now(),
		}).Error
}

func (r *VehicleRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("vehicle_id = ?", id).Delete(&vehicle.MaintenanceRecord{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&vehicle.Vehicle{}).Error
	})
}

func (r *VehicleRepository) AddMaintenance(rec *vehicle.MaintenanceRecord) error {
	return r.db.Create(rec).Error
}

func (r *VehicleRepository) UpdateMaintenance(rec *vehicle.MaintenanceRecord) error {
	return r.db.Model(&vehicle.MaintenanceRecord{}).
		Where("id = ? AND vehicle_id = ?", rec.ID, rec.VehicleID).
		Updates(map[string]interface{}{
			"date":             rec.Date,
			"type":             rec.Type,
			"description":      rec.Description,
			"cost":             rec.Cost,
			"location":         rec.Location,
			"odometer_reading": rec.OdometerReading,
			"performed_by":     rec.PerformedBy,
			"updated_at":       time.Now(),
		}).Error
}

func (r *VehicleRepository) DeleteMaintenance(vehicleID, recordID int64) error {
	return r.db.Where("id = ? AND vehicle_id = ?", recordID, vehicleID).
		Delete(&vehicle.MaintenanceRecord{}).Error
}
