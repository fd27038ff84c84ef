package movement_test

import (
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fleethub/fleet-management/internal/movement"
	"github.com/fleethub/fleet-management/internal/vehicle"
)

// Mock repository for testing
type mockMovementRepository struct {
	movements   map[int64]*movement.Movement
	createError error
	listError   error
	nextID      int64
}

func newMockMovementRepository() *mockMovementRepository {
	return &mockMovementRepository{
		movements: make(map[int64]*movement.Movement),
		nextID:    1,
	}
}

func (m *mockMovementRepository) Create(mv *movement.Movement) error {
	if m.createError != nil {
		return m.createError
	}
	mv.ID = m.nextID
	m.nextID++
	mv.CreatedAt = time.Now()
	mv.UpdatedAt = time.Now()
	copied := *mv
	m.movements[mv.ID] = &copied
	return nil
}

func (m *mockMovementRepository) GetByID(id int64) (*movement.Movement, error) {
	mv, exists := m.movements[id]
	if !exists {
		return nil, movement.ErrNotFound
	}
	copied := *mv
	return &copied, nil
}

func (m *mockMovementRepository) Update(mv *movement.Movement) error {
	if _, exists := m.movements[mv.ID]; !exists {
		return movement.ErrNotFound
	}
	copied := *mv
	m.movements[mv.ID] = &copied
	return nil
}

func (m *mockMovementRepository) Delete(id int64) error {
	delete(m.movements, id)
	return nil
}

func (m *mockMovementRepository) List(filter movement.ListFilter) ([]*movement.Movement, int64, error) {
	if m.listError != nil {
		return nil, 0, m.listError
	}
	matched := m.all(func(mv *movement.Movement) bool {
		if filter.CarCode != "" && mv.CarCode != filter.CarCode {
			return false
		}
		if filter.Department != "" && mv.Department != filter.Department {
			return false
		}
		if filter.Client != "" && mv.Client != filter.Client {
			return false
		}
		if filter.StartDate != nil && mv.Date.Before(*filter.StartDate) {
			return false
		}
		if filter.EndDate != nil && mv.Date.After(*filter.EndDate) {
			return false
		}
		return true
	})
	total := int64(len(matched))

	start := filter.Offset()
	if start >= len(matched) {
		return []*movement.Movement{}, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (m *mockMovementRepository) ListAll(filter movement.ListFilter) ([]*movement.Movement, error) {
	matched, _, err := m.List(movement.ListFilter{
		CarCode:    filter.CarCode,
		Department: filter.Department,
		Client:     filter.Client,
		StartDate:  filter.StartDate,
		EndDate:    filter.EndDate,
		Page:       1,
		Limit:      len(m.movements) + 1,
	})
	return matched, err
}

func (m *mockMovementRepository) GetByCarCode(carCode string) ([]*movement.Movement, error) {
	return m.all(func(mv *movement.Movement) bool { return mv.CarCode == carCode }), nil
}

func (m *mockMovementRepository) GetByDriverName(driverName string) ([]*movement.Movement, error) {
	return m.all(func(mv *movement.Movement) bool { return mv.DriverName == driverName }), nil
}

func (m *mockMovementRepository) GetSince(since time.Time) ([]*movement.Movement, error) {
	return m.all(func(mv *movement.Movement) bool { return !mv.Date.Before(since) }), nil
}

func (m *mockMovementRepository) AnyForVehicle(vehicleID int64) (bool, error) {
	return len(m.all(func(mv *movement.Movement) bool { return mv.VehicleID == vehicleID })) > 0, nil
}

func (m *mockMovementRepository) all(keep func(*movement.Movement) bool) []*movement.Movement {
	matched := make([]*movement.Movement, 0, len(m.movements))
	for id := int64(1); id < m.nextID; id++ {
		if mv, ok := m.movements[id]; ok && keep(mv) {
			copied := *mv
			matched = append(matched, &copied)
		}
	}
	return matched
}

// Mock fleet service for testing
type mockFleetService struct {
	vehicles         map[string]*movement.VehicleRef
	recordedReadings map[int64][]int64
	recordError      error
}

func newMockFleetService() *mockFleetService {
	return &mockFleetService{
		vehicles:         make(map[string]*movement.VehicleRef),
		recordedReadings: make(map[int64][]int64),
	}
}

func (m *mockFleetService) VehicleByCarCode(carCode string) (*movement.VehicleRef, error) {
	v, exists := m.vehicles[carCode]
	if !exists {
		return nil, vehicle.ErrNotFound
	}
	return v, nil
}

func (m *mockFleetService) RecordOdometer(vehicleID int64, reading int64) error {
	if m.recordError != nil {
		return m.recordError
	}
	m.recordedReadings[vehicleID] = append(m.recordedReadings[vehicleID], reading)
	return nil
}

var _ = Describe("MovementService", func() {
	var (
		movementService *movement.Service
		mockRepo        *mockMovementRepository
		mockFleet       *mockFleetService
		logger          *slog.Logger
	)

	validDTO := func(carCode string) movement.MovementDTO {
		return movement.MovementDTO{
			CarCode:         carCode,
			DriverName:      "Ahmed Hassan",
			SupervisorName:  "Omar Farouk",
			Department:      "Logistics",
			Client:          "Acme Corp",
			Route:           "Warehouse to Port",
			Date:            time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
			DepartureTime:   time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
			ArrivalTime:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			OdometerReading: 6000,
			FuelCost:        150,
		}
	}

	BeforeEach(func() {
		mockRepo = newMockMovementRepository()
		mockFleet = newMockFleetService()
		mockFleet.vehicles["V-001"] = &movement.VehicleRef{
			ID:              1,
			CarCode:         "V-001",
			PlateNumber:     "ABC-123",
			Status:          "active",
			CurrentOdometer: 5000,
		}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		movementService = movement.NewService(mockRepo, mockFleet, logger)
	})

	Describe("Create", func() {
		It("should record a trip against an active vehicle", func() {
			// Given
			actorID := int64(42)
			dto := validDTO("V-001")

			// When
			result, err := movementService.Create(actorID, dto)

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(result.ID).To(BeNumerically(">", 0))
			Expect(result.VehicleID).To(Equal(int64(1)))
			Expect(result.PlateNumber).To(Equal("ABC-123"))
			Expect(result.CreatedBy).To(Equal(actorID))
		})

		It("should feed the trip reading into the vehicle odometer", func() {
			_, err := movementService.Create(42, validDTO("V-001"))

			Expect(err).ToNot(HaveOccurred())
			Expect(mockFleet.recordedReadings[1]).To(Equal([]int64{6000}))
		})

		It("should reject a trip for an unknown car code", func() {
			_, err := movementService.Create(42, validDTO("NOPE"))

			Expect(err).To(MatchError(vehicle.ErrNotFound))
		})

		It("should reject a trip for a vehicle in maintenance", func() {
			mockFleet.vehicles["V-002"] = &movement.VehicleRef{
				ID:          2,
				CarCode:     "V-002",
				PlateNumber: "XYZ-999",
				Status:      "maintenance",
			}

			_, err := movementService.Create(42, validDTO("V-002"))

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("currently maintenance"))
		})

		It("should reject an arrival before departure", func() {
			dto := validDTO("V-001")
			dto.ArrivalTime = dto.DepartureTime.Add(-time.Hour)

			_, err := movementService.Create(42, dto)

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("arrival time"))
		})

		It("should reject a negative fuel cost", func() {
			dto := validDTO("V-001")
			dto.FuelCost = -5

			_, err := movementService.Create(42, dto)

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("fuel cost"))
		})
	})

	Describe("Update", func() {
		It("should re-resolve the vehicle when the car code changes", func() {
			created, err := movementService.Create(42, validDTO("V-001"))
			Expect(err).ToNot(HaveOccurred())

			mockFleet.vehicles["V-002"] = &movement.VehicleRef{
				ID:          2,
				CarCode:     "V-002",
				PlateNumber: "XYZ-999",
				Status:      "active",
			}
			dto := validDTO("V-002")
			dto.OdometerReading = 7000

			result, err := movementService.Update(created.ID, dto)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.VehicleID).To(Equal(int64(2)))
			Expect(result.PlateNumber).To(Equal("XYZ-999"))
			Expect(mockFleet.recordedReadings[2]).To(Equal([]int64{7000}))
		})

		It("should reject switching to an inactive vehicle", func() {
			created, err := movementService.Create(42, validDTO("V-001"))
			Expect(err).ToNot(HaveOccurred())

			mockFleet.vehicles["V-003"] = &movement.VehicleRef{
				ID:      3,
				CarCode: "V-003",
				Status:  "inactive",
			}

			_, err = movementService.Update(created.ID, validDTO("V-003"))

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("currently inactive"))
		})

		It("should return not found for an unknown movement", func() {
			_, err := movementService.Update(999, validDTO("V-001"))

			Expect(err).To(MatchError(movement.ErrNotFound))
		})
	})

	Describe("Delete", func() {
		It("should remove an existing movement", func() {
			created, err := movementService.Create(42, validDTO("V-001"))
			Expect(err).ToNot(HaveOccurred())

			Expect(movementService.Delete(created.ID)).To(Succeed())

			_, err = movementService.GetByID(created.ID)
			Expect(err).To(MatchError(movement.ErrNotFound))
		})

		It("should return not found for an unknown movement", func() {
			Expect(movementService.Delete(999)).To(MatchError(movement.ErrNotFound))
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			for i := 0; i < 3; i++ {
				dto := validDTO("V-001")
				dto.Date = time.Date(2025, 6, 1+i, 0, 0, 0, 0, time.UTC)
				_, err := movementService.Create(42, dto)
				Expect(err).ToNot(HaveOccurred())
			}
		})

		It("should paginate with the filtered total", func() {
			resp, err := movementService.List(movement.ListFilter{Page: 1, Limit: 2})

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Movements).To(HaveLen(2))
			Expect(resp.Pagination.Total).To(Equal(int64(3)))
			Expect(resp.Pagination.TotalPages).To(Equal(2))
			Expect(resp.Pagination.HasNextPage).To(BeTrue())
			Expect(resp.Pagination.HasPrevPage).To(BeFalse())
		})

		It("should apply a date range filter", func() {
			start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
			resp, err := movementService.List(movement.ListFilter{StartDate: &start})

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Movements).To(HaveLen(2))
			Expect(resp.Pagination.Total).To(Equal(int64(2)))
		})

		It("should default page and limit", func() {
			resp, err := movementService.List(movement.ListFilter{})

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Pagination.CurrentPage).To(Equal(1))
			Expect(resp.Movements).To(HaveLen(3))
		})
	})

	Describe("Recent", func() {
		It("should include only trips within the last thirty days", func() {
			old := validDTO("V-001")
			old.Date = time.Now().AddDate(0, 0, -45)
			_, err := movementService.Create(42, old)
			Expect(err).ToNot(HaveOccurred())

			fresh := validDTO("V-001")
			fresh.Date = time.Now().AddDate(0, 0, -5)
			_, err = movementService.Create(42, fresh)
			Expect(err).ToNot(HaveOccurred())

			recent, err := movementService.Recent()

			Expect(err).ToNot(HaveOccurred())
			Expect(recent).To(HaveLen(1))
			Expect(recent[0].Date).To(BeTemporally("~", fresh.Date, time.Second))
		})
	})
})
