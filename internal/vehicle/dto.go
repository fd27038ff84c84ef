package vehicle

import (
	"fmt"
	"time"
)

type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string {
	return e.Msg
}

type CreateVehicleDTO struct {
	CarCode               string    `json:"carCode"`
	PlateNumber           string    `json:"plateNumber"`
	Make                  string    `json:"make"`
	Model                 string    `json:"model"`
	Year                  int       `json:"year"`
	ChassisNumber         string    `json:"chassisNumber"`
	EngineNumber          string    `json:"engineNumber"`
	SimNumber             string    `json:"simNumber"`
	OwnerName             string    `json:"ownerName"`
	LicenseExpiryDate     time.Time `json:"licenseExpiryDate"`
	InsuranceExpiryDate   time.Time `json:"insuranceExpiryDate"`
	Status                string    `json:"status"`
	CurrentOdometer       int64     `json:"currentOdometer"`
	LastOilChangeOdometer int64     `json:"lastOilChangeOdometer"`
}

func (d *CreateVehicleDTO) Validate() error {
	if d.CarCode == "" {
		return ValidationError{Msg: "car code is required"}
	}
	if d.PlateNumber == "" {
		return ValidationError{Msg: "plate number is required"}
	}
	if d.Make == "" {
		return ValidationError{Msg: "make is required"}
	}
	if d.Model == "" {
		return ValidationError{Msg: "model is required"}
	}
	if d.Year < 1900 || d.Year > time.Now().Year()+1 {
		return ValidationError{Msg: fmt.Sprintf("year %d is out of range", d.Year)}
	}
	if d.CurrentOdometer < 0 {
		return ValidationError{Msg: "current odometer cannot be negative"}
	}
	if d.LastOilChangeOdometer < 0 {
		return ValidationError{Msg: "last oil change odometer cannot be negative"}
	}
	if d.CurrentOdometer < d.LastOilChangeOdometer {
		return ErrOdometerInvariant
	}
	if d.Status != "" && !validStatus(d.Status) {
		return ValidationError{Msg: fmt.Sprintf("invalid status %q", d.Status)}
	}
	return nil
}

// UpdateVehicleDTO carries a partial vehicle update; nil fields keep
// their stored value.
type UpdateVehicleDTO struct {
	CarCode               *string    `json:"carCode,omitempty"`
	PlateNumber           *string    `json:"plateNumber,omitempty"`
	Make                  *string    `json:"make,omitempty"`
	Model                 *string    `json:"model,omitempty"`
	Year                  *int       `json:"year,omitempty"`
	ChassisNumber         *string    `json:"chassisNumber,omitempty"`
	EngineNumber          *string    `json:"engineNumber,omitempty"`
	SimNumber             *string    `json:"simNumber,omitempty"`
	OwnerName             *string    `json:"ownerName,omitempty"`
	LicenseExpiryDate     *time.Time `json:"licenseExpiryDate,omitempty"`
	InsuranceExpiryDate   *time.Time `json:"insuranceExpiryDate,omitempty"`
	Status                *string    `json:"status,omitempty"`
	CurrentOdometer       *int64     `json:"currentOdometer,omitempty"`
	LastOilChangeOdometer *int64     `json:"lastOilChangeOdometer,omitempty"`
}

func (d *UpdateVehicleDTO) Validate() error {
	if d.CarCode != nil && *d.CarCode == "" {
		return ValidationError{Msg: "car code cannot be empty"}
	}
	if d.PlateNumber != nil && *d.PlateNumber == "" {
		return ValidationError{Msg: "plate number cannot be empty"}
	}
	if d.Year != nil && (*d.Year < 1900 || *d.Year > time.Now().Year()+1) {
		return ValidationError{Msg: fmt.Sprintf("year %d is out of range", *d.Year)}
	}
	if d.CurrentOdometer != nil && *d.CurrentOdometer < 0 {
		return ValidationError{Msg: "current odometer cannot be negative"}
	}
	if d.LastOilChangeOdometer != nil && *d.LastOilChangeOdometer < 0 {
		return ValidationError{Msg: "last oil change odometer cannot be negative"}
	}
	if d.Status != nil && !validStatus(*d.Status) {
		return ValidationError{Msg: fmt.Sprintf("invalid status %q", *d.Status)}
	}
	return nil
}

// Apply merges the update into an existing vehicle. The odometer pair is
// checked after merging so the invariant holds against the resulting
// values, not just the incoming ones.
func (d *UpdateVehicleDTO) Apply(v *Vehicle) error {
	if d.CarCode != nil {
		v.CarCode = *d.CarCode
	}
	if d.PlateNumber != nil {
		v.PlateNumber = *d.PlateNumber
	}
	if d.Make != nil {
		v.Make = *d.Make
	}
	if d.Model != nil {
		v.Model = *d.Model
	}
	if d.Year != nil {
		v.Year = *d.Year
	}
	if d.ChassisNumber != nil {
		v.ChassisNumber = *d.ChassisNumber
	}
	if d.EngineNumber != nil {
		v.EngineNumber = *d.EngineNumber
	}
	if d.SimNumber != nil {
		v.SimNumber = *d.SimNumber
	}
	if d.OwnerName != nil {
		v.OwnerName = *d.OwnerName
	}
	if d.LicenseExpiryDate != nil {
		v.LicenseExpiryDate = *d.LicenseExpiryDate
	}
	if d.InsuranceExpiryDate != nil {
		v.InsuranceExpiryDate = *d.InsuranceExpiryDate
	}
	if d.Status != nil {
		v.Status = *d.Status
	}
	if d.CurrentOdometer != nil {
		v.CurrentOdometer = *d.CurrentOdometer
	}
	if d.LastOilChangeOdometer != nil {
		v.LastOilChangeOdometer = *d.LastOilChangeOdometer
	}
	if v.CurrentOdometer < v.LastOilChangeOdometer {
		return ErrOdometerInvariant
	}
	return nil
}

type MaintenanceRecordDTO struct {
	Date            time.Time `json:"date"`
	Type            string    `json:"type"`
	Description     string    `json:"description"`
	Cost            float64   `json:"cost"`
	Location        string    `json:"location"`
	OdometerReading int64     `json:"odometerReading"`
	PerformedBy     string    `json:"performedBy"`
}

func (d *MaintenanceRecordDTO) Validate() error {
	if d.Type == "" {
		return ValidationError{Msg: "maintenance type is required"}
	}
	if d.Date.IsZero() {
		return ValidationError{Msg: "maintenance date is required"}
	}
	if d.Cost < 0 {
		return ValidationError{Msg: "cost cannot be negative"}
	}
	if d.OdometerReading < 0 {
		return ValidationError{Msg: "odometer reading cannot be negative"}
	}
	return nil
}

// VehicleResponse is the transport shape for a vehicle, carrying the two
// derived oil-change fields alongside the stored ones.
type VehicleResponse struct {
	ID                         int64               `json:"id"`
	CarCode                    string              `json:"carCode"`
	PlateNumber                string              `json:"plateNumber"`
	Make                       string              `json:"make"`
	Model                      string              `json:"model"`
	Year                       int                 `json:"year"`
	ChassisNumber              string              `json:"chassisNumber"`
	EngineNumber               string              `json:"engineNumber"`
	SimNumber                  string              `json:"simNumber"`
	OwnerName                  string              `json:"ownerName"`
	LicenseExpiryDate          time.Time           `json:"licenseExpiryDate"`
	InsuranceExpiryDate        time.Time           `json:"insuranceExpiryDate"`
	Status                     string              `json:"status"`
	CurrentOdometer            int64               `json:"currentOdometer"`
	LastOilChangeOdometer      int64               `json:"lastOilChangeOdometer"`
	DistanceSinceLastOilChange int64               `json:"distanceSinceLastOilChange"`
	NeedsOilChange             bool                `json:"needsOilChange"`
	Maintenance                []MaintenanceRecord `json:"maintenance"`
	CreatedAt                  time.Time           `json:"created_at"`
	UpdatedAt                  time.Time           `json:"updated_at"`
}

func (v *Vehicle) ToResponse() VehicleResponse {
	maintenance := v.Maintenance
	if maintenance == nil {
		maintenance = []MaintenanceRecord{}
	}
	return VehicleResponse{
		ID:                         v.ID,
		CarCode:                    v.CarCode,
		PlateNumber:                v.PlateNumber,
		Make:                       v.Make,
		Model:                      v.Model,
		Year:                       v.Year,
		ChassisNumber:              v.ChassisNumber,
		EngineNumber:               v.EngineNumber,
		SimNumber:                  v.SimNumber,
		OwnerName:                  v.OwnerName,
		LicenseExpiryDate:          v.LicenseExpiryDate,
		InsuranceExpiryDate:        v.InsuranceExpiryDate,
		Status:                     v.Status,
		CurrentOdometer:            v.CurrentOdometer,
		LastOilChangeOdometer:      v.LastOilChangeOdometer,
		DistanceSinceLastOilChange: v.DistanceSinceLastOilChange(),
		NeedsOilChange:             v.NeedsOilChange(),
		Maintenance:                maintenance,
		CreatedAt:                  v.CreatedAt,
		UpdatedAt:                  v.UpdatedAt,
	}
}

func validStatus(s string) bool {
	switch s {
	case StatusActive, StatusMaintenance, StatusInactive:
		return true
	}
	return false
}
