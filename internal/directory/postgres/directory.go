package postgres

import (
	"errors"

	"github.com/fleethub/fleet-management/internal/directory"
	"gorm.io/gorm"
)

type DirectoryRepository struct {
	db *gorm.DB
}

func NewDirectoryRepository(db *gorm.DB) directory.Repository {
	return &DirectoryRepository{db: db}
}

func (r *DirectoryRepository) ListDrivers() ([]*directory.Driver, error) {
	var drivers []*directory.Driver
	err := r.db.Order("name ASC").Find(&drivers).Error
	return drivers, err
}

func (r *DirectoryRepository) GetDriver(id int64) (*directory.Driver, error) {
	var d directory.Driver
	if err := r.db.Where("id = ?", id).First(&d).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &d, nil
}

func (r *DirectoryRepository) GetDriverByLicense(licenseNumber string) (*directory.Driver, error) {
	var d directory.Driver
	err := r.db.Where("license_number = ?", licenseNumber).First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *DirectoryRepository) CreateDriver(d *directory.Driver) error {
	return r.db.Create(d).Error
}

func (r *DirectoryRepository) UpdateDriver(d *directory.Driver) error {
	return r.db.Save(d).Error
}

func (r *DirectoryRepository) DeleteDriver(id int64) error {
	return r.db.Where("id = ?", id).Delete(&directory.Driver{}).Error
}

func (r *DirectoryRepository) ListClients() ([]*directory.Client, error) {
	var clients []*directory.Client
	err := r.db.Order("name ASC").Find(&clients).Error
	return clients, err
}

func (r *DirectoryRepository) GetClient(id int64) (*directory.Client, error) {
	var c directory.Client
	if err := r.db.Where("id = ?", id).First(&c).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &c, nil
}

func (r *DirectoryRepository) GetClientByName(name string) (*directory.Client, error) {
	var c directory.Client
	err := r.db.Where("name = ?", name).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *DirectoryRepository) CreateClient(c *directory.Client) error {
	return r.db.Create(c).Error
}

func (r *DirectoryRepository) UpdateClient(c *directory.Client) error {
	return r.db.Save(c).Error
}

func (r *DirectoryRepository) DeleteClient(id int64) error {
	return r.db.Where("id = ?", id).Delete(&directory.Client{}).Error
}

func (r *DirectoryRepository) ListRoutes() ([]*directory.Route, error) {
	var routes []*directory.Route
	err := r.db.Order("name ASC").Find(&routes).Error
	return routes, err
}

func (r *DirectoryRepository) GetRoute(id int64) (*directory.Route, error) {
	var rt directory.Route
	if err := r.db.Where("id = ?", id).First(&rt).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &rt, nil
}

func (r *DirectoryRepository) GetRouteByName(name string) (*directory.Route, error) {
	var rt directory.Route
	err := r.db.Where("name = ?", name).First(&rt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rt, nil
}

func (r *DirectoryRepository) CreateRoute(rt *directory.Route) error {
	return r.db.Create(rt).Error
}

func (r *DirectoryRepository) UpdateRoute(rt *directory.Route) error {
	return r.db.Save(rt).Error
}

func (r *DirectoryRepository) DeleteRoute(id int64) error {
	return r.db.Where("id = ?", id).Delete(&directory.Route{}).Error
}

func (r *DirectoryRepository) ListDepartments() ([]*directory.Department, error) {
	var departments []*directory.Department
	err := r.db.Order("name ASC").Find(&departments).Error
	return departments, err
}

func (r *DirectoryRepository) GetDepartment(id int64) (*directory.Department, error) {
	var d directory.Department
	if err := r.db.Where("id = ?", id).First(&d).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &d, nil
}

func (r *DirectoryRepository) GetDepartmentByName(name string) (*directory.Department, error) {
	var d directory.Department
	err := r.db.Where("name = ?", name).First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *DirectoryRepository) CreateDepartment(d *directory.Department) error {
	return r.db.Create(d).Error
}

func (r *DirectoryRepository) UpdateDepartment(d *directory.Department) error {
	return r.db.Save(d).Error
}

func (r *DirectoryRepository) DeleteDepartment(id int64) error {
	return r.db.Where("id = ?", id).Delete(&directory.Department{}).Error
}

func (r *DirectoryRepository) ListSupervisors() ([]*directory.Supervisor, error) {
	var supervisors []*directory.Supervisor
	err := r.db.Order("name ASC").Find(&supervisors).Error
	return supervisors, err
}

func (r *DirectoryRepository) GetSupervisor(id int64) (*directory.Supervisor, error) {
	var s directory.Supervisor
	if err := r.db.Where("id = ?", id).First(&s).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &s, nil
}

func (r *DirectoryRepository) GetSupervisorByName(name string) (*directory.Supervisor, error) {
	var s directory.Supervisor
	err := r.db.Where("name = ?", name).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *DirectoryRepository) CreateSupervisor(s *directory.Supervisor) error {
	return r.db.Create(s).Error
}

func (r *DirectoryRepository) UpdateSupervisor(s *directory.Supervisor) error {
	return r.db.Save(s).Error
}

func (r *DirectoryRepository) DeleteSupervisor(id int64) error {
	return r.db.Where("id = ?", id).Delete(&directory.Supervisor{}).Error
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return directory.ErrNotFound
	}
	return err
}
