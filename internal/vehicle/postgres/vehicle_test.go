package postgres_test

import (
	"testing"
	"time"

	"github.com/fleethub/fleet-management/internal/vehicle"
	vehiclePostgres "github.com/fleethub/fleet-management/internal/vehicle/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestVehiclePostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Vehicle Postgres Suite")
}

var _ = Describe("Vehicle PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo vehicle.Repository
	)

	BeforeEach(func() {
		var err error
		// Use SQLite in-memory database for testing
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&vehicle.Vehicle{}, &vehicle.MaintenanceRecord{})
		Expect(err).NotTo(HaveOccurred())

		repo = vehiclePostgres.NewVehicleRepository(db)
	})

	newVehicle := func(carCode, plate string) *vehicle.Vehicle {
		return &vehicle.Vehicle{
			CarCode:     carCode,
			PlateNumber: plate,
			Make:        "Toyota",
			Model:       "Hilux",
			Year:        2020,
			Status:      vehicle.StatusActive,
		}
	}

	Describe("GetByID", func() {
		It("should return maintenance in insertion order, newest entry first", func() {
			// Given
			v := newVehicle("TRK-01", "B 1234 XYZ")
			Expect(repo.Create(v)).To(Succeed())

			// An older-dated record entered after a newer-dated one
			// must still come back first.
			records := []*vehicle.MaintenanceRecord{
				{VehicleID: v.ID, Date: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), Type: "Oil Change", OdometerReading: 5000},
				{VehicleID: v.ID, Date: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), Type: "Brake Service", OdometerReading: 6200},
				{VehicleID: v.ID, Date: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), Type: "Tire Rotation", OdometerReading: 4100},
			}
			for _, rec := range records {
				Expect(repo.AddMaintenance(rec)).To(Succeed())
			}

			// When
			got, err := repo.GetByID(v.ID)

			// Then
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Maintenance).To(HaveLen(3))
			Expect(got.Maintenance[0].Type).To(Equal("Tire Rotation"))
			Expect(got.Maintenance[1].Type).To(Equal("Brake Service"))
			Expect(got.Maintenance[2].Type).To(Equal("Oil Change"))
		})

		It("should map a missing vehicle to the not-found error", func() {
			// When
			_, err := repo.GetByID(999)

			// Then
			Expect(err).To(Equal(vehicle.ErrNotFound))
		})
	})

	Describe("GetByCarCode", func() {
		It("should return nil without error when no vehicle matches", func() {
			// When
			got, err := repo.GetByCarCode("NOPE-00")

			// Then
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeNil())
		})
	})
})
