package directory

import (
	"fmt"
	"log/slog"
)

type Repository interface {
	ListDrivers() ([]*Driver, error)
	GetDriver(id int64) (*Driver, error)
	GetDriverByLicense(licenseNumber string) (*Driver, error)
	CreateDriver(d *Driver) error
	UpdateDriver(d *Driver) error
	DeleteDriver(id int64) error

	ListClients() ([]*Client, error)
	GetClient(id int64) (*Client, error)
	GetClientByName(name string) (*Client, error)
	CreateClient(c *Client) error
	UpdateClient(c *Client) error
	DeleteClient(id int64) error

	ListRoutes() ([]*Route, error)
	GetRoute(id int64) (*Route, error)
	GetRouteByName(name string) (*Route, error)
	CreateRoute(rt *Route) error
	UpdateRoute(rt *Route) error
	DeleteRoute(id int64) error

	ListDepartments() ([]*Department, error)
	GetDepartment(id int64) (*Department, error)
	GetDepartmentByName(name string) (*Department, error)
	CreateDepartment(d *Department) error
	UpdateDepartment(d *Department) error
	DeleteDepartment(id int64) error

	ListSupervisors() ([]*Supervisor, error)
	GetSupervisor(id int64) (*Supervisor, error)
	GetSupervisorByName(name string) (*Supervisor, error)
	CreateSupervisor(s *Supervisor) error
	UpdateSupervisor(s *Supervisor) error
	DeleteSupervisor(id int64) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) ListDrivers() ([]*Driver, error) {
	drivers, err := s.repo.ListDrivers()
	if err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}
	if drivers == nil {
		drivers = []*Driver{}
	}
	return drivers, nil
}

func (s *Service) GetDriver(id int64) (*Driver, error) {
	return s.repo.GetDriver(id)
}

func (s *Service) CreateDriver(dto DriverDTO) (*Driver, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetDriverByLicense(dto.LicenseNumber); err != nil {
		return nil, fmt.Errorf("failed to check license number: %w", err)
	} else if existing != nil {
		return nil, ErrDuplicateLicense
	}

	status := dto.Status
	if status == "" {
		status = DriverStatusActive
	}

	d := &Driver{
		Name:              dto.Name,
		LicenseNumber:     dto.LicenseNumber,
		LicenseExpiryDate: dto.LicenseExpiryDate,
		ContactNumber:     dto.ContactNumber,
		Department:        dto.Department,
		Status:            status,
	}
	if err := s.repo.CreateDriver(d); err != nil {
		s.logger.Error("failed to create driver", "error", err, "name", dto.Name)
		return nil, fmt.Errorf("failed to create driver: %w", err)
	}

	s.logger.Info("driver created", "driver_id", d.ID, "name", d.Name)
	return d, nil
}

func (s *Service) UpdateDriver(id int64, dto DriverDTO) (*Driver, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	d, err := s.repo.GetDriver(id)
	if err != nil {
		return nil, err
	}

	if dto.LicenseNumber != d.LicenseNumber {
		if existing, err := s.repo.GetDriverByLicense(dto.LicenseNumber); err != nil {
			return nil, fmt.Errorf("failed to check license number: %w", err)
		} else if existing != nil && existing.ID != id {
			return nil, ErrDuplicateLicense
		}
	}

	d.Name = dto.Name
	d.LicenseNumber = dto.LicenseNumber
	d.LicenseExpiryDate = dto.LicenseExpiryDate
	d.ContactNumber = dto.ContactNumber
	d.Department = dto.Department
	if dto.Status != "" {
		d.Status = dto.Status
	}

	if err := s.repo.UpdateDriver(d); err != nil {
		s.logger.Error("failed to update driver", "error", err, "driver_id", id)
		return nil, fmt.Errorf("failed to update driver: %w", err)
	}
	return d, nil
}

func (s *Service) DeleteDriver(id int64) error {
	if _, err := s.repo.GetDriver(id); err != nil {
		return err
	}
	return s.repo.DeleteDriver(id)
}

func (s *Service) ListClients() ([]*Client, error) {
	clients, err := s.repo.ListClients()
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	if clients == nil {
		clients = []*Client{}
	}
	return clients, nil
}

func (s *Service) GetClient(id int64) (*Client, error) {
	return s.repo.GetClient(id)
}

func (s *Service) CreateClient(dto ClientDTO) (*Client, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetClientByName(dto.Name); err != nil {
		return nil, fmt.Errorf("failed to check client name: %w", err)
	} else if existing != nil {
		return nil, ErrDuplicateName
	}

	c := &Client{
		Name:          dto.Name,
		ContactPerson: dto.ContactPerson,
		ContactEmail:  dto.ContactEmail,
		ContactPhone:  dto.ContactPhone,
		Address:       dto.Address,
	}
	if err := s.repo.CreateClient(c); err != nil {
		s.logger.Error("failed to create client", "error", err, "name", dto.Name)
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	s.logger.Info("client created", "client_id", c.ID, "name", c.Name)
	return c, nil
}

func (s *Service) UpdateClient(id int64, dto ClientDTO) (*Client, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c, err := s.repo.GetClient(id)
	if err != nil {
		return nil, err
	}

	if dto.Name != c.Name {
		if existing, err := s.repo.GetClientByName(dto.Name); err != nil {
			return nil, fmt.Errorf("failed to check client name: %w", err)
		} else if existing != nil && existing.ID != id {
			return nil, ErrDuplicateName
		}
	}

	c.Name = dto.Name
	c.ContactPerson = dto.ContactPerson
	c.ContactEmail = dto.ContactEmail
	c.ContactPhone = dto.ContactPhone
	c.Address = dto.Address

	if err := s.repo.UpdateClient(c); err != nil {
		s.logger.Error("failed to update client", "error", err, "client_id", id)
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return c, nil
}

func (s *Service) DeleteClient(id int64) error {
	if _, err := s.repo.GetClient(id); err != nil {
		return err
	}
	return s.repo.DeleteClient(id)
}

func (s *Service) ListRoutes() ([]*Route, error) {
	routes, err := s.repo.ListRoutes()
	if err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}
	if routes == nil {
		routes = []*Route{}
	}
	return routes, nil
}

func (s *Service) GetRoute(id int64) (*Route, error) {
	return s.repo.GetRoute(id)
}

func (s *Service) CreateRoute(dto RouteDTO) (*Route, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetRouteByName(dto.Name); err != nil {
		return nil, fmt.Errorf("failed to check route name: %w", err)
	} else if existing != nil {
		return nil, ErrDuplicateName
	}

	rt := &Route{
		Name:          dto.Name,
		StartLocation: dto.StartLocation,
		EndLocation:   dto.EndLocation,
		DistanceKm:    dto.DistanceKm,
		EstimatedTime: dto.EstimatedTime,
		Description:   dto.Description,
	}
	if err := s.repo.CreateRoute(rt); err != nil {
		s.logger.Error("failed to create route", "error", err, "name", dto.Name)
		return nil, fmt.Errorf("failed to create route: %w", err)
	}

	s.logger.Info("route created", "route_id", rt.ID, "name", rt.Name)
	return rt, nil
}

func (s *Service) UpdateRoute(id int64, dto RouteDTO) (*Route, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	rt, err := s.repo.GetRoute(id)
	if err != nil {
		return nil, err
	}

	if dto.Name != rt.Name {
		if existing, err := s.repo.GetRouteByName(dto.Name); err != nil {
			return nil, fmt.Errorf("failed to check route name: %w", err)
		} else if existing != nil && existing.ID != id {
			return nil, ErrDuplicateName
		}
	}

	rt.Name = dto.Name
	rt.StartLocation = dto.StartLocation
	rt.EndLocation = dto.EndLocation
	rt.DistanceKm = dto.DistanceKm
	rt.EstimatedTime = dto.EstimatedTime
	rt.Description = dto.Description

	if err := s.repo.UpdateRoute(rt); err != nil {
		s.logger.Error("failed to update route", "error", err, "route_id", id)
		return nil, fmt.Errorf("failed to update route: %w", err)
	}
	return rt, nil
}

func (s *Service) DeleteRoute(id int64) error {
	if _, err := s.repo.GetRoute(id); err != nil {
		return err
	}
	return s.repo.DeleteRoute(id)
}

func (s *Service) ListDepartments() ([]*Department, error) {
	departments, err := s.repo.ListDepartments()
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	if departments == nil {
		departments = []*Department{}
	}
	return departments, nil
}

func (s *Service) GetDepartment(id int64) (*Department, error) {
	return s.repo.GetDepartment(id)
}

func (s *Service) CreateDepartment(dto DepartmentDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetDepartmentByName(dto.Name); err != nil {
		return nil, fmt.Errorf("failed to check department name: %w", err)
	} else if existing != nil {
		return nil, ErrDuplicateName
	}

	d := &Department{Name: dto.Name, Description: dto.Description}
	if err := s.repo.CreateDepartment(d); err != nil {
		s.logger.Error("failed to create department", "error", err, "name", dto.Name)
		return nil, fmt.Errorf("failed to create department: %w", err)
	}

	s.logger.Info("department created", "department_id", d.ID, "name", d.Name)
	return d, nil
}

func (s *Service) UpdateDepartment(id int64, dto DepartmentDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	d, err := s.repo.GetDepartment(id)
	if err != nil {
		return nil, err
	}

	if dto.Name != d.Name {
		if existing, err := s.repo.GetDepartmentByName(dto.Name); err != nil {
			return nil, fmt.Errorf("failed to check department name: %w", err)
		} else if existing != nil && existing.ID != id {
			return nil, ErrDuplicateName
		}
	}

	d.Name = dto.Name
	d.Description = dto.Description

	if err := s.repo.UpdateDepartment(d); err != nil {
		s.logger.Error("failed to update department", "error", err, "department_id", id)
		return nil, fmt.Errorf("failed to update department: %w", err)
	}
	return d, nil
}

func (s *Service) DeleteDepartment(id int64) error {
	if _, err := s.repo.GetDepartment(id); err != nil {
		return err
	}
	return s.repo.DeleteDepartment(id)
}

func (s *Service) ListSupervisors() ([]*Supervisor, error) {
	supervisors, err := s.repo.ListSupervisors()
	if err != nil {
		return nil, fmt.Errorf("failed to list supervisors: %w", err)
	}
	if supervisors == nil {
		supervisors = []*Supervisor{}
	}
	return supervisors, nil
}

func (s *Service) GetSupervisor(id int64) (*Supervisor, error) {
	return s.repo.GetSupervisor(id)
}

func (s *Service) CreateSupervisor(dto SupervisorDTO) (*Supervisor, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetSupervisorByName(dto.Name); err != nil {
		return nil, fmt.Errorf("failed to check supervisor name: %w", err)
	} else if existing != nil {
		return nil, ErrDuplicateName
	}

	sup := &Supervisor{
		Name:          dto.Name,
		ContactNumber: dto.ContactNumber,
		Department:    dto.Department,
	}
	if err := s.repo.CreateSupervisor(sup); err != nil {
		s.logger.Error("failed to create supervisor", "error", err, "name", dto.Name)
		return nil, fmt.Errorf("failed to create supervisor: %w", err)
	}

	s.logger.Info("supervisor created", "supervisor_id", sup.ID, "name", sup.Name)
	return sup, nil
}

func (s *Service) UpdateSupervisor(id int64, dto SupervisorDTO) (*Supervisor, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	sup, err := s.repo.GetSupervisor(id)
	if err != nil {
		return nil, err
	}

	if dto.Name != sup.Name {
		if existing, err := s.repo.GetSupervisorByName(dto.Name); err != nil {
			return nil, fmt.Errorf("failed to check supervisor name: %w", err)
		} else if existing != nil && existing.ID != id {
			return nil, ErrDuplicateName
		}
	}

	sup.Name = dto.Name
	sup.ContactNumber = dto.ContactNumber
	sup.Department = dto.Department

	if err := s.repo.UpdateSupervisor(sup); err != nil {
		s.logger.Error("failed to update supervisor", "error", err, "supervisor_id", id)
		return nil, fmt.Errorf("failed to update supervisor: %w", err)
	}
	return sup, nil
}

func (s *Service) DeleteSupervisor(id int64) error {
	if _, err := s.repo.GetSupervisor(id); err != nil {
		return err
	}
	return s.repo.DeleteSupervisor(id)
}
