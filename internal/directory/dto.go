package directory

import "time"

type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string {
	return e.Msg
}

type DriverDTO struct {
	Name              string    `json:"name"`
	LicenseNumber     string    `json:"licenseNumber"`
	LicenseExpiryDate time.Time `json:"licenseExpiryDate"`
	ContactNumber     string    `json:"contactNumber"`
	Department        string    `json:"department"`
	Status            string    `json:"status"`
}

func (d *DriverDTO) Validate() error {
	if d.Name == "" {
		return ValidationError{Msg: "driver name is required"}
	}
	if d.LicenseNumber == "" {
		return ValidationError{Msg: "license number is required"}
	}
	if d.LicenseExpiryDate.IsZero() {
		return ValidationError{Msg: "license expiry date is required"}
	}
	if d.ContactNumber == "" {
		return ValidationError{Msg: "contact number is required"}
	}
	if d.Status != "" && d.Status != DriverStatusActive && d.Status != DriverStatusInactive {
		return ValidationError{Msg: "status must be active or inactive"}
	}
	return nil
}

type ClientDTO struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contactPerson"`
	ContactEmail  string `json:"contactEmail"`
	ContactPhone  string `json:"contactPhone"`
	Address       string `json:"address"`
}

func (d *ClientDTO) Validate() error {
	if d.Name == "" {
		return ValidationError{Msg: "client name is required"}
	}
	return nil
}

type RouteDTO struct {
	Name          string  `json:"name"`
	StartLocation string  `json:"startLocation"`
	EndLocation   string  `json:"endLocation"`
	DistanceKm    float64 `json:"distance"`
	EstimatedTime int     `json:"estimatedTime"`
	Description   string  `json:"description"`
}

func (d *RouteDTO) Validate() error {
	if d.Name == "" {
		return ValidationError{Msg: "route name is required"}
	}
	if d.StartLocation == "" {
		return ValidationError{Msg: "start location is required"}
	}
	if d.EndLocation == "" {
		return ValidationError{Msg: "end location is required"}
	}
	if d.DistanceKm <= 0 {
		return ValidationError{Msg: "distance must be positive"}
	}
	if d.EstimatedTime <= 0 {
		return ValidationError{Msg: "estimated time must be positive"}
	}
	return nil
}

type DepartmentDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (d *DepartmentDTO) Validate() error {
	if d.Name == "" {
		return ValidationError{Msg: "department name is required"}
	}
	return nil
}

type SupervisorDTO struct {
	Name          string `json:"name"`
	ContactNumber string `json:"contactNumber"`
	Department    string `json:"department"`
}

func (d *SupervisorDTO) Validate() error {
	if d.Name == "" {
		return ValidationError{Msg: "supervisor name is required"}
	}
	return nil
}
