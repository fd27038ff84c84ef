package movement

import (
	"fmt"
	"time"

	"github.com/fleethub/fleet-management/internal"
)

// Movement is a single trip record. Car code and plate number are
// denormalized from the vehicle at write time so the row stays readable
// even if the vehicle is later renamed.
type Movement struct {
	ID              int64     `json:"id" gorm:"primaryKey"`
	VehicleID       int64     `json:"vehicleId" gorm:"column:vehicle_id;index;not null"`
	CarCode         string    `json:"carCode" gorm:"column:car_code;index;not null"`
	PlateNumber     string    `json:"plateNumber" gorm:"column:plate_number;not null"`
	DriverName      string    `json:"driverName" gorm:"column:driver_name;index;not null"`
	SupervisorName  string    `json:"supervisorName" gorm:"column:supervisor_name;index;not null"`
	Department      string    `json:"department" gorm:"not null"`
	Client          string    `json:"client" gorm:"not null"`
	Route           string    `json:"route" gorm:"not null"`
	Date            time.Time `json:"date" gorm:"index;not null"`
	DepartureTime   time.Time `json:"departureTime" gorm:"column:departure_time;not null"`
	ArrivalTime     time.Time `json:"arrivalTime" gorm:"column:arrival_time;not null"`
	OdometerReading int64     `json:"odometerReading" gorm:"column:odometer_reading;not null"`
	FuelCost        float64   `json:"fuelCost" gorm:"column:fuel_cost"`
	Notes           string    `json:"notes"`
	CreatedBy       int64     `json:"createdBy" gorm:"column:created_by"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Movement) TableName() string {
	return "movements"
}

// VehicleRef is the slice of a vehicle the movement service needs:
// enough to denormalize identity, check status and feed the odometer.
type VehicleRef struct {
	ID              int64
	CarCode         string
	PlateNumber     string
	Status          string
	CurrentOdometer int64
}

func (v *VehicleRef) IsActive() bool {
	return v.Status == "active"
}

// FleetService is implemented by the vehicle service and wired in at
// startup; movements never touch vehicle storage directly.
type FleetService interface {
	VehicleByCarCode(carCode string) (*VehicleRef, error)
	RecordOdometer(vehicleID int64, reading int64) error
}

var ErrNotFound = internal.NewNotFoundError("Movement record not found", internal.ErrCodeMovementNotFound)

// NotActiveError reports a trip against a vehicle that is not in
// service, echoing the vehicle's actual status in the message.
func NotActiveError(status string) *internal.AppError {
	return internal.NewBlockedError(
		fmt.Sprintf("Vehicle is currently %s and cannot be used", status),
		internal.ErrCodeVehicleNotActive,
	)
}
