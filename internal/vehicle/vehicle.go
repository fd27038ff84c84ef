package vehicle

import (
	"strings"
	"time"

	"github.com/fleethub/fleet-management/internal"
)

const (
	StatusActive      = "active"
	StatusMaintenance = "maintenance"
	StatusInactive    = "inactive"
)

// OilChangeThresholdKm is the distance after which a vehicle is due for
// an oil change.
const OilChangeThresholdKm = 3500

type Vehicle struct {
	ID                    int64               `json:"id" gorm:"primaryKey"`
	CarCode               string              `json:"carCode" gorm:"column:car_code;uniqueIndex;not null"`
	PlateNumber           string              `json:"plateNumber" gorm:"column:plate_number;uniqueIndex;not null"`
	Make                  string              `json:"make" gorm:"not null"`
	Model                 string              `json:"model" gorm:"not null"`
	Year                  int                 `json:"year" gorm:"not null"`
	ChassisNumber         string              `json:"chassisNumber" gorm:"column:chassis_number"`
	EngineNumber          string              `json:"engineNumber" gorm:"column:engine_number"`
	SimNumber             string              `json:"simNumber" gorm:"column:sim_number"`
	OwnerName             string              `json:"ownerName" gorm:"column:owner_name"`
	LicenseExpiryDate     time.Time           `json:"licenseExpiryDate" gorm:"column:license_expiry_date"`
	InsuranceExpiryDate   time.Time           `json:"insuranceExpiryDate" gorm:"column:insurance_expiry_date"`
	Status                string              `json:"status" gorm:"default:active"`
	CurrentOdometer       int64               `json:"currentOdometer" gorm:"column:current_odometer"`
	LastOilChangeOdometer int64               `json:"lastOilChangeOdometer" gorm:"column:last_oil_change_odometer"`
	Maintenance           []MaintenanceRecord `json:"maintenance" gorm:"foreignKey:VehicleID"`
	CreatedAt             time.Time           `json:"created_at"`
	UpdatedAt             time.Time           `json:"updated_at"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

type MaintenanceRecord struct {
	ID              int64     `json:"id" gorm:"primaryKey"`
	VehicleID       int64     `json:"-" gorm:"column:vehicle_id;index;not null"`
	Date            time.Time `json:"date" gorm:"not null"`
	Type            string    `json:"type" gorm:"not null"`
	Description     string    `json:"description"`
	Cost            float64   `json:"cost"`
	Location        string    `json:"location"`
	OdometerReading int64     `json:"odometerReading" gorm:"column:odometer_reading"`
	PerformedBy     string    `json:"performedBy" gorm:"column:performed_by"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (MaintenanceRecord) TableName() string {
	return "maintenance_records"
}

// IsOilChange reports whether the record type denotes an oil change,
// matched as a case-insensitive substring.
func (m *MaintenanceRecord) IsOilChange() bool {
	return IsOilChangeType(m.Type)
}

func IsOilChangeType(recordType string) bool {
	return strings.Contains(strings.ToLower(recordType), "oil change")
}

// DistanceSinceLastOilChange is derived from the two stored odometer
// values; it is never persisted on its own.
func (v *Vehicle) DistanceSinceLastOilChange() int64 {
	return v.CurrentOdometer - v.LastOilChangeOdometer
}

func (v *Vehicle) NeedsOilChange() bool {
	return v.DistanceSinceLastOilChange() >= OilChangeThresholdKm
}

func (v *Vehicle) IsActive() bool {
	return v.Status == StatusActive
}

// RatchetOdometer raises the current odometer to reading if reading is
// higher. Lower readings are ignored: the odometer never moves backward.
// Reports whether the value changed.
func (v *Vehicle) RatchetOdometer(reading int64) bool {
	if reading > v.CurrentOdometer {
		v.CurrentOdometer = reading
		return true
	}
	return false
}

// LatestOilChange returns the oil-change record with the greatest date
// among the given records, or nil when none qualify. Used only when an
// oil-change record is deleted; adds and updates intentionally follow
// edit order instead.
func LatestOilChange(records []MaintenanceRecord) *MaintenanceRecord {
	var latest *MaintenanceRecord
	for i := range records {
		if !records[i].IsOilChange() {
			continue
		}
		if latest == nil || records[i].Date.After(latest.Date) {
			latest = &records[i]
		}
	}
	return latest
}

var (
	ErrNotFound            = internal.NewNotFoundError("Vehicle not found", internal.ErrCodeVehicleNotFound)
	ErrMaintenanceNotFound = internal.NewNotFoundError("Maintenance record not found", internal.ErrCodeMaintenanceNotFound)
	ErrDuplicateCarCode    = internal.NewConflictError("Vehicle with this car code already exists", internal.ErrCodeDuplicateCarCode)
	ErrDuplicatePlate      = internal.NewConflictError("Vehicle with this plate number already exists", internal.ErrCodeDuplicatePlate)
	ErrHasMovements        = internal.NewBlockedError("Cannot delete vehicle that has movement records. Update status to inactive instead.", internal.ErrCodeVehicleHasHistory)
	ErrOdometerInvariant   = internal.NewValidationFieldError("currentOdometer", "current odometer cannot be below the last oil change odometer", internal.ErrCodeInvalidOdometer)
)
