package report_test

import (
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fleethub/fleet-management/internal/movement"
	"github.com/fleethub/fleet-management/internal/report"
	"github.com/fleethub/fleet-management/internal/vehicle"
)

// Mock movement source for testing
type mockMovementSource struct {
	movements []*movement.Movement
	err       error
}

func (m *mockMovementSource) AllFiltered(filter movement.ListFilter) ([]*movement.Movement, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.movements, nil
}

// Mock vehicle source for testing
type mockVehicleSource struct {
	vehicles map[int64]*vehicle.VehicleResponse
}

func (m *mockVehicleSource) GetByID(id int64) (*vehicle.VehicleResponse, error) {
	v, exists := m.vehicles[id]
	if !exists {
		return nil, vehicle.ErrNotFound
	}
	return v, nil
}

func (m *mockVehicleSource) GetAll() ([]vehicle.VehicleResponse, error) {
	all := make([]vehicle.VehicleResponse, 0, len(m.vehicles))
	for id := int64(1); id <= int64(len(m.vehicles)); id++ {
		if v, ok := m.vehicles[id]; ok {
			all = append(all, *v)
		}
	}
	return all, nil
}

var _ = Describe("ReportService", func() {
	var (
		reportService *report.Service
		mockMovements *mockMovementSource
		mockVehicles  *mockVehicleSource
		logger        *slog.Logger
	)

	BeforeEach(func() {
		mockMovements = &mockMovementSource{}
		mockVehicles = &mockVehicleSource{vehicles: make(map[int64]*vehicle.VehicleResponse)}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		reportService = report.NewService(mockMovements, mockVehicles, logger)
	})

	Describe("MovementReport", func() {
		It("should render headers and one row per movement", func() {
			mockMovements.movements = []*movement.Movement{
				{
					Date:            time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
					CarCode:         "V-001",
					PlateNumber:     "ABC-123",
					DriverName:      "Ahmed Hassan",
					SupervisorName:  "Omar Farouk",
					Department:      "Logistics",
					Client:          "Acme Corp",
					Route:           "Warehouse to Port",
					DepartureTime:   time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
					ArrivalTime:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
					OdometerReading: 6000,
					FuelCost:        150,
					Notes:           "routine",
				},
			}

			export, err := reportService.MovementReport(movement.ListFilter{})

			Expect(err).ToNot(HaveOccurred())
			Expect(export.Filename).To(Equal("vehicle_movements_report.xlsx"))
			defer export.File.Close()

			header, err := export.File.GetCellValue("Vehicle Movements", "A1")
			Expect(err).ToNot(HaveOccurred())
			Expect(header).To(Equal("Date"))

			carCode, err := export.File.GetCellValue("Vehicle Movements", "B2")
			Expect(err).ToNot(HaveOccurred())
			Expect(carCode).To(Equal("V-001"))

			driver, err := export.File.GetCellValue("Vehicle Movements", "D2")
			Expect(err).ToNot(HaveOccurred())
			Expect(driver).To(Equal("Ahmed Hassan"))
		})

		It("should produce an empty sheet when nothing matches", func() {
			export, err := reportService.MovementReport(movement.ListFilter{})

			Expect(err).ToNot(HaveOccurred())
			defer export.File.Close()

			rows, err := export.File.GetRows("Vehicle Movements")
			Expect(err).ToNot(HaveOccurred())
			Expect(rows).To(HaveLen(1))
		})
	})

	Describe("MaintenanceReport", func() {
		It("should render the vehicle profile, history and summary sheets", func() {
			mockVehicles.vehicles[1] = &vehicle.VehicleResponse{
				ID:                         1,
				CarCode:                    "V-001",
				PlateNumber:                "ABC-123",
				Make:                       "Toyota",
				Model:                      "Hilux",
				Year:                       2020,
				Status:                     "active",
				CurrentOdometer:            9000,
				LastOilChangeOdometer:      6000,
				DistanceSinceLastOilChange: 3000,
				Maintenance: []vehicle.MaintenanceRecord{
					{
						Date:            time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
						Type:            "Oil Change",
						Cost:            120,
						OdometerReading: 6000,
					},
					{
						Date:            time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
						Type:            "Oil Change",
						Cost:            110,
						OdometerReading: 3000,
					},
					{
						Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
						Type: "Brake Service",
						Cost: 300,
					},
				},
			}

			export, err := reportService.MaintenanceReport(1)

			Expect(err).ToNot(HaveOccurred())
			Expect(export.Filename).To(Equal("vehicle_V-001_maintenance_report.xlsx"))
			defer export.File.Close()

			carCode, err := export.File.GetCellValue("Vehicle Information", "B2")
			Expect(err).ToNot(HaveOccurred())
			Expect(carCode).To(Equal("V-001"))

			historyRows, err := export.File.GetRows("Maintenance History")
			Expect(err).ToNot(HaveOccurred())
			Expect(historyRows).To(HaveLen(4))

			summaryRows, err := export.File.GetRows("Maintenance Summary")
			Expect(err).ToNot(HaveOccurred())
			// Header, two type buckets and the total row.
			Expect(summaryRows).To(HaveLen(4))
			Expect(summaryRows[3][0]).To(Equal("TOTAL MAINTENANCE COST"))
			Expect(summaryRows[3][1]).To(Equal("530.00"))
		})

		It("should return not found for an unknown vehicle", func() {
			_, err := reportService.MaintenanceReport(999)

			Expect(err).To(MatchError(vehicle.ErrNotFound))
		})
	})

	Describe("FleetStatusReport", func() {
		It("should render one row per vehicle with the oil change flag", func() {
			mockVehicles.vehicles[1] = &vehicle.VehicleResponse{
				ID:                         1,
				CarCode:                    "V-001",
				Make:                       "Toyota",
				Model:                      "Hilux",
				Status:                     "active",
				CurrentOdometer:            9000,
				LastOilChangeOdometer:      1000,
				DistanceSinceLastOilChange: 8000,
				NeedsOilChange:             true,
			}
			mockVehicles.vehicles[2] = &vehicle.VehicleResponse{
				ID:      2,
				CarCode: "V-002",
				Make:    "Ford",
				Model:   "Ranger",
				Status:  "maintenance",
			}

			export, err := reportService.FleetStatusReport()

			Expect(err).ToNot(HaveOccurred())
			Expect(export.Filename).To(Equal("fleet_status_report.xlsx"))
			defer export.File.Close()

			rows, err := export.File.GetRows("Fleet Status")
			Expect(err).ToNot(HaveOccurred())
			Expect(rows).To(HaveLen(3))

			flag, err := export.File.GetCellValue("Fleet Status", "I2")
			Expect(err).ToNot(HaveOccurred())
			Expect(flag).To(Equal("YES"))

			flag, err = export.File.GetCellValue("Fleet Status", "I3")
			Expect(err).ToNot(HaveOccurred())
			Expect(flag).To(Equal("No"))
		})
	})
})
