// Package directory holds the fleet's reference lists: drivers,
// clients, routes, departments and supervisors. Movements store these
// as plain text, so the lists exist to feed pickers and keep naming
// consistent rather than to enforce referential integrity.
package directory

import (
	"time"

	"github.com/fleethub/fleet-management/internal"
)

const (
	DriverStatusActive   = "active"
	DriverStatusInactive = "inactive"
)

type Driver struct {
	ID                int64     `json:"id" gorm:"primaryKey"`
	Name              string    `json:"name" gorm:"not null"`
	LicenseNumber     string    `json:"licenseNumber" gorm:"column:license_number;uniqueIndex;not null"`
	LicenseExpiryDate time.Time `json:"licenseExpiryDate" gorm:"column:license_expiry_date;not null"`
	ContactNumber     string    `json:"contactNumber" gorm:"column:contact_number;not null"`
	Department        string    `json:"department"`
	Status            string    `json:"status" gorm:"default:active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (Driver) TableName() string { return "drivers" }

type Client struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"uniqueIndex;not null"`
	ContactPerson string    `json:"contactPerson" gorm:"column:contact_person"`
	ContactEmail  string    `json:"contactEmail" gorm:"column:contact_email"`
	ContactPhone  string    `json:"contactPhone" gorm:"column:contact_phone"`
	Address       string    `json:"address"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Client) TableName() string { return "clients" }

type Route struct {
	ID            int64   `json:"id" gorm:"primaryKey"`
	Name          string  `json:"name" gorm:"uniqueIndex;not null"`
	StartLocation string  `json:"startLocation" gorm:"column:start_location;not null"`
	EndLocation   string  `json:"endLocation" gorm:"column:end_location;not null"`
	DistanceKm    float64 `json:"distance" gorm:"column:distance_km;not null"`
	// EstimatedTime is in minutes.
	EstimatedTime int       `json:"estimatedTime" gorm:"column:estimated_time;not null"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Route) TableName() string { return "routes" }

type Department struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Department) TableName() string { return "departments" }

type Supervisor struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"uniqueIndex;not null"`
	ContactNumber string    `json:"contactNumber" gorm:"column:contact_number"`
	Department    string    `json:"department"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Supervisor) TableName() string { return "supervisors" }

var (
	ErrNotFound         = internal.NewNotFoundError("Record not found", internal.ErrCodeRecordNotFound)
	ErrDuplicateName    = internal.NewConflictError("A record with this name already exists", internal.ErrCodeDuplicateName)
	ErrDuplicateLicense = internal.NewConflictError("A driver with this license number already exists", internal.ErrCodeDuplicateLicense)
)
