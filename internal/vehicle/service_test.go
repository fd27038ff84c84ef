package vehicle_test

import (
	"errors"
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fleethub/fleet-management/internal/vehicle"
)

// Mock repository for testing
type mockVehicleRepository struct {
	vehicles     map[int64]*vehicle.Vehicle
	maintenance  map[int64][]vehicle.MaintenanceRecord
	createError  error
	getError     error
	updateError  error
	deleteError  error
	nextID       int64
	nextRecordID int64
}

func newMockVehicleRepository() *mockVehicleRepository {
	return &mockVehicleRepository{
		vehicles:     make(map[int64]*vehicle.Vehicle),
		maintenance:  make(map[int64][]vehicle.MaintenanceRecord),
		nextID:       1,
		nextRecordID: 1,
	}
}

func (m *mockVehicleRepository) Create(v *vehicle.Vehicle) error {
	if m.createError != nil {
		return m.createError
	}
	v.ID = m.nextID
	m.nextID++
	v.CreatedAt = time.Now()
	v.UpdatedAt = time.Now()
	copied := *v
	m.vehicles[v.ID] = &copied
	return nil
}

func (m *mockVehicleRepository) GetAll() ([]*vehicle.Vehicle, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	all := make([]*vehicle.Vehicle, 0, len(m.vehicles))
	for id := int64(1); id < m.nextID; id++ {
		if v, ok := m.vehicles[id]; ok {
			copied := *v
			copied.Maintenance = append([]vehicle.MaintenanceRecord{}, m.maintenance[id]...)
			all = append(all, &copied)
		}
	}
	return all, nil
}

func (m *mockVehicleRepository) GetByID(id int64) (*vehicle.Vehicle, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	v, exists := m.vehicles[id]
	if !exists {
		return nil, vehicle.ErrNotFound
	}
	copied := *v
	copied.Maintenance = append([]vehicle.MaintenanceRecord{}, m.maintenance[id]...)
	return &copied, nil
}

func (m *mockVehicleRepository) GetByCarCode(carCode string) (*vehicle.Vehicle, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	for _, v := range m.vehicles {
		if v.CarCode == carCode {
			copied := *v
			copied.Maintenance = append([]vehicle.MaintenanceRecord{}, m.maintenance[v.ID]...)
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockVehicleRepository) GetByPlateNumber(plateNumber string) (*vehicle.Vehicle, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	for _, v := range m.vehicles {
		if v.PlateNumber == plateNumber {
			copied := *v
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockVehicleRepository) Update(v *vehicle.Vehicle) error {
	if m.updateError != nil {
		return m.updateError
	}
	stored, exists := m.vehicles[v.ID]
	if !exists {
		return errors.New("vehicle not found")
	}
	copied := *v
	copied.Maintenance = nil
	copied.CreatedAt = stored.CreatedAt
	copied.UpdatedAt = time.Now()
	m.vehicles[v.ID] = &copied
	return nil
}

func (m *mockVehicleRepository) UpdateOdometer(id int64, odometer int64) error {
	if m.updateError != nil {
		return m.updateError
	}
	if v, exists := m.vehicles[id]; exists {
		v.CurrentOdometer = odometer
		v.UpdatedAt = time.Now()
	}
	return nil
}

func (m *mockVehicleRepository) Delete(id int64) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	delete(m.vehicles, id)
	delete(m.maintenance, id)
	return nil
}

func (m *mockVehicleRepository) AddMaintenance(rec *vehicle.MaintenanceRecord) error {
	rec.ID = m.nextRecordID
	m.nextRecordID++
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = time.Now()
	m.maintenance[rec.VehicleID] = append(m.maintenance[rec.VehicleID], *rec)
	return nil
}

func (m *mockVehicleRepository) UpdateMaintenance(rec *vehicle.MaintenanceRecord) error {
	records := m.maintenance[rec.VehicleID]
	for i := range records {
		if records[i].ID == rec.ID {
			records[i] = *rec
			return nil
		}
	}
	return errors.New("maintenance record not found")
}

func (m *mockVehicleRepository) DeleteMaintenance(vehicleID, recordID int64) error {
	records := m.maintenance[vehicleID]
	for i := range records {
		if records[i].ID == recordID {
			m.maintenance[vehicleID] = append(records[:i], records[i+1:]...)
			return nil
		}
	}
	return errors.New("maintenance record not found")
}

// Mock movement checker for testing
type mockMovementChecker struct {
	hasMovements bool
	checkError   error
}

func (m *mockMovementChecker) AnyForVehicle(vehicleID int64) (bool, error) {
	if m.checkError != nil {
		return false, m.checkError
	}
	return m.hasMovements, nil
}

var _ = Describe("VehicleService", func() {
	var (
		vehicleService *vehicle.Service
		mockRepo       *mockVehicleRepository
		mockMovements  *mockMovementChecker
		logger         *slog.Logger
	)

	newVehicle := func(carCode, plate string, current, lastOilChange int64) *vehicle.VehicleResponse {
		resp, err := vehicleService.Create(vehicle.CreateVehicleDTO{
			CarCode:               carCode,
			PlateNumber:           plate,
			Make:                  "Toyota",
			Model:                 "Hilux",
			Year:                  2020,
			CurrentOdometer:       current,
			LastOilChangeOdometer: lastOilChange,
		})
		Expect(err).ToNot(HaveOccurred())
		return resp
	}

	BeforeEach(func() {
		mockRepo = newMockVehicleRepository()
		mockMovements = &mockMovementChecker{}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		vehicleService = vehicle.NewService(mockRepo, mockMovements, logger)
	})

	Describe("Create", func() {
		It("should create a vehicle with derived oil change fields", func() {
			// Given / When
			result := newVehicle("V-001", "ABC-123", 5000, 1000)

			// Then
			Expect(result.ID).To(BeNumerically(">", 0))
			Expect(result.Status).To(Equal(vehicle.StatusActive))
			Expect(result.DistanceSinceLastOilChange).To(Equal(int64(4000)))
			Expect(result.NeedsOilChange).To(BeTrue())
		})

		It("should not flag a vehicle below the oil change threshold", func() {
			result := newVehicle("V-001", "ABC-123", 4499, 1000)

			Expect(result.DistanceSinceLastOilChange).To(Equal(int64(3499)))
			Expect(result.NeedsOilChange).To(BeFalse())
		})

		It("should reject a duplicate car code", func() {
			newVehicle("V-001", "ABC-123", 0, 0)

			_, err := vehicleService.Create(vehicle.CreateVehicleDTO{
				CarCode:     "V-001",
				PlateNumber: "XYZ-999",
				Make:        "Toyota",
				Model:       "Hilux",
				Year:        2020,
			})

			Expect(err).To(MatchError(vehicle.ErrDuplicateCarCode))
		})

		It("should reject a duplicate plate number", func() {
			newVehicle("V-001", "ABC-123", 0, 0)

			_, err := vehicleService.Create(vehicle.CreateVehicleDTO{
				CarCode:     "V-002",
				PlateNumber: "ABC-123",
				Make:        "Toyota",
				Model:       "Hilux",
				Year:        2020,
			})

			Expect(err).To(MatchError(vehicle.ErrDuplicatePlate))
		})

		It("should reject an odometer below the last oil change odometer", func() {
			_, err := vehicleService.Create(vehicle.CreateVehicleDTO{
				CarCode:               "V-001",
				PlateNumber:           "ABC-123",
				Make:                  "Toyota",
				Model:                 "Hilux",
				Year:                  2020,
				CurrentOdometer:       900,
				LastOilChangeOdometer: 1000,
			})

			Expect(err).To(MatchError(vehicle.ErrOdometerInvariant))
		})
	})

	Describe("RecordMovementOdometer", func() {
		It("should advance the odometer for a higher reading", func() {
			created := newVehicle("V-001", "ABC-123", 5000, 1000)

			err := vehicleService.RecordMovementOdometer(created.ID, 6000)

			Expect(err).ToNot(HaveOccurred())
			result, err := vehicleService.GetByID(created.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(result.CurrentOdometer).To(Equal(int64(6000)))
		})

		It("should ignore a lower reading", func() {
			created := newVehicle("V-001", "ABC-123", 5000, 1000)

			err := vehicleService.RecordMovementOdometer(created.ID, 1000)

			Expect(err).ToNot(HaveOccurred())
			result, err := vehicleService.GetByID(created.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(result.CurrentOdometer).To(Equal(int64(5000)))
		})

		It("should ignore a reading equal to the current odometer", func() {
			created := newVehicle("V-001", "ABC-123", 5000, 1000)

			err := vehicleService.RecordMovementOdometer(created.ID, 5000)

			Expect(err).ToNot(HaveOccurred())
			result, err := vehicleService.GetByID(created.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(result.CurrentOdometer).To(Equal(int64(5000)))
		})
	})

	Describe("Update", func() {
		It("should write odometer fields directly without re-deriving", func() {
			created := newVehicle("V-001", "ABC-123", 5000, 1000)
			last := int64(4800)

			result, err := vehicleService.Update(created.ID, vehicle.UpdateVehicleDTO{
				LastOilChangeOdometer: &last,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.LastOilChangeOdometer).To(Equal(int64(4800)))
			Expect(result.DistanceSinceLastOilChange).To(Equal(int64(200)))
			Expect(result.NeedsOilChange).To(BeFalse())
		})

		It("should reject a merged state violating the odometer invariant", func() {
			created := newVehicle("V-001", "ABC-123", 5000, 1000)
			last := int64(5500)

			_, err := vehicleService.Update(created.ID, vehicle.UpdateVehicleDTO{
				LastOilChangeOdometer: &last,
			})

			Expect(err).To(MatchError(vehicle.ErrOdometerInvariant))
		})

		It("should reject changing the car code to one already taken", func() {
			newVehicle("V-001", "ABC-123", 0, 0)
			created := newVehicle("V-002", "XYZ-999", 0, 0)
			code := "V-001"

			_, err := vehicleService.Update(created.ID, vehicle.UpdateVehicleDTO{CarCode: &code})

			Expect(err).To(MatchError(vehicle.ErrDuplicateCarCode))
		})

		It("should allow re-submitting the vehicle's own car code", func() {
			created := newVehicle("V-001", "ABC-123", 0, 0)
			code := "V-001"

			_, err := vehicleService.Update(created.ID, vehicle.UpdateVehicleDTO{CarCode: &code})

			Expect(err).ToNot(HaveOccurred())
		})
	})

	Describe("Delete", func() {
		It("should delete a vehicle without movement history", func() {
			created := newVehicle("V-001", "ABC-123", 0, 0)

			err := vehicleService.Delete(created.ID)

			Expect(err).ToNot(HaveOccurred())
			_, err = vehicleService.GetByID(created.ID)
			Expect(err).To(MatchError(vehicle.ErrNotFound))
		})

		It("should block deletion when movement records reference the vehicle", func() {
			created := newVehicle("V-001", "ABC-123", 0, 0)
			mockMovements.hasMovements = true

			err := vehicleService.Delete(created.ID)

			Expect(err).To(MatchError(vehicle.ErrHasMovements))
			_, getErr := vehicleService.GetByID(created.ID)
			Expect(getErr).ToNot(HaveOccurred())
		})
	})

	Describe("AddMaintenance", func() {
		It("should set lastOilChangeOdometer from an oil change record", func() {
			created := newVehicle("V-001", "ABC-123", 5000, 1000)

			result, err := vehicleService.AddMaintenance(created.ID, vehicle.MaintenanceRecordDTO{
				Date:            time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
				Type:            "Oil Change",
				OdometerReading: 5200,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.LastOilChangeOdometer).To(Equal(int64(5200)))
			Expect(result.CurrentOdometer).To(Equal(int64(5200)))
			Expect(result.NeedsOilChange).To(BeFalse())
			Expect(result.Maintenance).To(HaveLen(1))
		})

		It("should match the oil change type case-insensitively as a substring", func() {
			created := newVehicle("V-001", "ABC-123", 5000, 1000)

			result, err := vehicleService.AddMaintenance(created.ID, vehicle.MaintenanceRecordDTO{
				Date:            time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
				Type:            "full OIL CHANGE and filter",
				OdometerReading: 4100,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.LastOilChangeOdometer).To(Equal(int64(4100)))
		})

		It("should leave lastOilChangeOdometer alone for other record types", func() {
			created := newVehicle("V-001", "ABC-123", 5000, 1000)

			result, err := vehicleService.AddMaintenance(created.ID, vehicle.MaintenanceRecordDTO{
				Date:            time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
				Type:            "Brake Service",
				OdometerReading: 5200,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.LastOilChangeOdometer).To(Equal(int64(1000)))
		})

		It("should let the most recently entered oil change win over an older-dated one", func() {
			created := newVehicle("V-001", "ABC-123", 5000, 1000)

			_, err := vehicleService.AddMaintenance(created.ID, vehicle.MaintenanceRecordDTO{
				Date:            time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
				Type:            "Oil Change",
				OdometerReading: 4500,
			})
			Expect(err).ToNot(HaveOccurred())

			// Entered later but dated earlier; entry order wins on add.
			result, err := vehicleService.AddMaintenance(created.ID, vehicle.MaintenanceRecordDTO{
				Date:            time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
				Type:            "Oil Change",
				OdometerReading: 3000,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.LastOilChangeOdometer).To(Equal(int64(3000)))
		})
	})

	Describe("UpdateMaintenance", func() {
		It("should apply an oil change reading unconditionally", func() {
			created := newVehicle("V-001", "ABC-123", 5000, 1000)
			result, err := vehicleService.AddMaintenance(created.ID, vehicle.MaintenanceRecordDTO{
				Date:            time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
				Type:            "Brake Service",
				OdometerReading: 4200,
			})
			Expect(err).ToNot(HaveOccurred())
			recordID := result.Maintenance[0].ID

			// Reclassifying the record as an oil change pulls its reading in.
			updated, err := vehicleService.UpdateMaintenance(created.ID, recordID, vehicle.MaintenanceRecordDTO{
				Date:            time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
				Type:            "Oil Change",
				OdometerReading: 4200,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.LastOilChangeOdometer).To(Equal(int64(4200)))
		})

		It("should return not found for an unknown record", func() {
			created := newVehicle("V-001", "ABC-123", 0, 0)

			_, err := vehicleService.UpdateMaintenance(created.ID, 999, vehicle.MaintenanceRecordDTO{
				Date: time.Now(),
				Type: "Oil Change",
			})

			Expect(err).To(MatchError(vehicle.ErrMaintenanceNotFound))
		})
	})

	Describe("DeleteMaintenance", func() {
		It("should re-derive from the remaining oil change record with the greatest date", func() {
			created := newVehicle("V-001", "ABC-123", 9000, 1000)

			first, err := vehicleService.AddMaintenance(created.ID, vehicle.MaintenanceRecordDTO{
				Date:            time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
				Type:            "Oil Change",
				OdometerReading: 6000,
			})
			Expect(err).ToNot(HaveOccurred())
			firstID := first.Maintenance[0].ID

			second, err := vehicleService.AddMaintenance(created.ID, vehicle.MaintenanceRecordDTO{
				Date:            time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
				Type:            "Oil Change",
				OdometerReading: 8000,
			})
			Expect(err).ToNot(HaveOccurred())

			var secondID int64
			for _, rec := range second.Maintenance {
				if rec.ID != firstID {
					secondID = rec.ID
				}
			}

			// Deleting the later-dated record falls back to the earlier one.
			result, err := vehicleService.DeleteMaintenance(created.ID, secondID)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.LastOilChangeOdometer).To(Equal(int64(6000)))
			Expect(result.Maintenance).To(HaveLen(1))
		})

		It("should keep the stored value when no oil change records remain", func() {
			created := newVehicle("V-001", "ABC-123", 9000, 1000)

			added, err := vehicleService.AddMaintenance(created.ID, vehicle.MaintenanceRecordDTO{
				Date:            time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
				Type:            "Oil Change",
				OdometerReading: 5200,
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(added.LastOilChangeOdometer).To(Equal(int64(5200)))

			// The value survives the record's deletion; history is gone but
			// the due-for-oil-change state is not reset.
			result, err := vehicleService.DeleteMaintenance(created.ID, added.Maintenance[0].ID)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Maintenance).To(BeEmpty())
			Expect(result.LastOilChangeOdometer).To(Equal(int64(5200)))
		})

		It("should ignore non oil change records when re-deriving", func() {
			created := newVehicle("V-001", "ABC-123", 9000, 1000)

			oil, err := vehicleService.AddMaintenance(created.ID, vehicle.MaintenanceRecordDTO{
				Date:            time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
				Type:            "Oil Change",
				OdometerReading: 7000,
			})
			Expect(err).ToNot(HaveOccurred())
			oilID := oil.Maintenance[0].ID

			_, err = vehicleService.AddMaintenance(created.ID, vehicle.MaintenanceRecordDTO{
				Date:            time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
				Type:            "Tire Rotation",
				OdometerReading: 8500,
			})
			Expect(err).ToNot(HaveOccurred())

			var oilID2 int64
			_, err = vehicleService.AddMaintenance(created.ID, vehicle.MaintenanceRecordDTO{
				Date:            time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
				Type:            "Oil Change",
				OdometerReading: 7800,
			})
			Expect(err).ToNot(HaveOccurred())
			refreshed, err := vehicleService.GetByID(created.ID)
			Expect(err).ToNot(HaveOccurred())
			for _, rec := range refreshed.Maintenance {
				if rec.ID != oilID && rec.IsOilChange() {
					oilID2 = rec.ID
				}
			}

			result, err := vehicleService.DeleteMaintenance(created.ID, oilID2)

			Expect(err).ToNot(HaveOccurred())
			// Tire rotation at 8500 is newer but does not count.
			Expect(result.LastOilChangeOdometer).To(Equal(int64(7000)))
		})
	})

	Describe("NeedingOilChange", func() {
		It("should return only vehicles at or past the threshold", func() {
			newVehicle("V-001", "ABC-123", 5000, 1000)
			newVehicle("V-002", "XYZ-999", 5000, 4000)
			newVehicle("V-003", "QRS-555", 3500, 0)

			due, err := vehicleService.NeedingOilChange()

			Expect(err).ToNot(HaveOccurred())
			Expect(due).To(HaveLen(2))
			codes := []string{due[0].CarCode, due[1].CarCode}
			Expect(codes).To(ConsistOf("V-001", "V-003"))
		})
	})

	Describe("GetByCarCode", func() {
		It("should return not found for an unknown code", func() {
			_, err := vehicleService.GetByCarCode("NOPE")

			Expect(err).To(MatchError(vehicle.ErrNotFound))
		})
	})
})
