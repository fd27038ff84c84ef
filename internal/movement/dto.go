package movement

import (
	"time"
)

type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string {
	return e.Msg
}

// MovementDTO carries a full trip payload. Updates are whole-record
// replacements, so the same shape serves both create and update.
type MovementDTO struct {
	CarCode         string    `json:"carCode"`
	DriverName      string    `json:"driverName"`
	SupervisorName  string    `json:"supervisorName"`
	Department      string    `json:"department"`
	Client          string    `json:"client"`
	Route           string    `json:"route"`
	Date            time.Time `json:"date"`
	DepartureTime   time.Time `json:"departureTime"`
	ArrivalTime     time.Time `json:"arrivalTime"`
	OdometerReading int64     `json:"odometerReading"`
	FuelCost        float64   `json:"fuelCost"`
	Notes           string    `json:"notes"`
}

func (d *MovementDTO) Validate() error {
	if d.CarCode == "" {
		return ValidationError{Msg: "car code is required"}
	}
	if d.DriverName == "" {
		return ValidationError{Msg: "driver name is required"}
	}
	if d.SupervisorName == "" {
		return ValidationError{Msg: "supervisor name is required"}
	}
	if d.Department == "" {
		return ValidationError{Msg: "department is required"}
	}
	if d.Client == "" {
		return ValidationError{Msg: "client is required"}
	}
	if d.Route == "" {
		return ValidationError{Msg: "route is required"}
	}
	if d.DepartureTime.IsZero() {
		return ValidationError{Msg: "departure time is required"}
	}
	if d.ArrivalTime.IsZero() {
		return ValidationError{Msg: "arrival time is required"}
	}
	if d.ArrivalTime.Before(d.DepartureTime) {
		return ValidationError{Msg: "arrival time cannot be before departure time"}
	}
	if d.OdometerReading < 0 {
		return ValidationError{Msg: "odometer reading cannot be negative"}
	}
	if d.FuelCost < 0 {
		return ValidationError{Msg: "fuel cost cannot be negative"}
	}
	return nil
}

// ListFilter narrows a movement listing. Name filters match as
// case-insensitive substrings; the rest match exactly.
type ListFilter struct {
	CarCode        string
	DriverName     string
	SupervisorName string
	Department     string
	Client         string
	StartDate      *time.Time
	EndDate        *time.Time
	Page           int
	Limit          int
}

func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}
}

func (f *ListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type Pagination struct {
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

func NewPagination(total int64, page, limit int) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: page,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

type ListResponse struct {
	Movements  []*Movement `json:"movements"`
	Pagination Pagination  `json:"pagination"`
}
