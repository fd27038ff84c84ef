package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fleethub/fleet-management/internal"
	"github.com/fleethub/fleet-management/internal/auth"
	authstore "github.com/fleethub/fleet-management/internal/auth/postgres"
	"github.com/fleethub/fleet-management/internal/directory"
	directorystore "github.com/fleethub/fleet-management/internal/directory/postgres"
	"github.com/fleethub/fleet-management/internal/movement"
	movementstore "github.com/fleethub/fleet-management/internal/movement/postgres"
	"github.com/fleethub/fleet-management/internal/report"
	"github.com/fleethub/fleet-management/internal/transport/rest"
	"github.com/fleethub/fleet-management/internal/transport/swagger"
	"github.com/fleethub/fleet-management/internal/user"
	userstore "github.com/fleethub/fleet-management/internal/user/postgres"
	"github.com/fleethub/fleet-management/internal/vehicle"
	vehiclestore "github.com/fleethub/fleet-management/internal/vehicle/postgres"
	"github.com/fleethub/fleet-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	ORM    *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if err := setupRoutes(deps); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up routes: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func setupRoutes(deps *Dependencies) error {
	if err := swagger.ValidateSpec(context.Background(), "./api/openapi.yml"); err != nil {
		return err
	}

	// Repositories
	authRepo := authstore.NewRepository(deps.ORM)
	userRepo := userstore.NewUserRepository(deps.ORM)
	vehicleRepo := vehiclestore.NewVehicleRepository(deps.ORM)
	movementRepo := movementstore.NewMovementRepository(deps.ORM)
	directoryRepo := directorystore.NewDirectoryRepository(deps.ORM)

	// Policy and authorization
	policy := auth.NewUserPolicy()
	authorizer := auth.NewAuthorizer(deps.Logger)

	// Services
	tokenGen := auth.NewJWTTokenGenerator(
		deps.Config.Security.AccessTokenSecret,
		deps.Config.Security.RefreshTokenSecret,
		deps.Config.Security.AccessTokenDuration,
		deps.Config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authRepo, tokenGen, policy, deps.Config.Security.BCryptCost, deps.Logger)
	userService := user.NewService(userRepo, policy, deps.Logger)
	vehicleService := vehicle.NewService(vehicleRepo, movementRepo, deps.Logger)
	movementService := movement.NewService(movementRepo, &fleetAdapter{vehicles: vehicleService}, deps.Logger)
	directoryService := directory.NewService(directoryRepo, deps.Logger)
	reportService := report.NewService(movementService, vehicleService, deps.Logger)

	handlers := rest.Handlers{
		Auth:      auth.NewHandler(authService),
		User:      user.NewHandler(userService),
		Vehicle:   vehicle.NewHandler(vehicleService),
		Movement:  movement.NewHandler(movementService),
		Directory: directory.NewHandler(directoryService),
		Report:    report.NewHandler(reportService),
	}

	var allowedOrigins []string
	if deps.Config.Server.AllowedOrigins != "" {
		for _, origin := range strings.Split(deps.Config.Server.AllowedOrigins, ",") {
			allowedOrigins = append(allowedOrigins, strings.TrimSpace(origin))
		}
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, handlers, authorizer, allowedOrigins, deps.Logger)
	return nil
}

// fleetAdapter bridges the vehicle service into the movement package's
// view of the fleet without the two packages importing each other.
type fleetAdapter struct {
	vehicles *vehicle.Service
}

func (a *fleetAdapter) VehicleByCarCode(carCode string) (*movement.VehicleRef, error) {
	v, err := a.vehicles.FindByCarCode(carCode)
	if err != nil {
		return nil, err
	}
	return &movement.VehicleRef{
		ID:              v.ID,
		CarCode:         v.CarCode,
		PlateNumber:     v.PlateNumber,
		Status:          v.Status,
		CurrentOdometer: v.CurrentOdometer,
	}, nil
}

func (a *fleetAdapter) RecordOdometer(vehicleID int64, reading int64) error {
	return a.vehicles.RecordMovementOdometer(vehicleID, reading)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	orm, err := initORM(config.Database, db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ORM: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: logger.L(),
		DB:     db,
		ORM:    orm,
		Router: chi.NewRouter(),
	}, nil
}

func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	driver := cfg.Driver
	if driver == "" || driver == "postgres" {
		driver = "pgx"
	}
	if driver == "sqlite" {
		driver = "sqlite3"
	}

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initORM layers gorm over the already open connection so both see the
// same pool settings. SQLite keeps local development self-contained.
func initORM(cfg internal.DatabaseConfig, db *sqlx.DB) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if cfg.Driver == "sqlite" {
		dialector = gormsqlite.Dialector{Conn: db.DB}
	} else {
		dialector = gormpostgres.New(gormpostgres.Config{Conn: db.DB})
	}

	return gorm.Open(dialector, &gorm.Config{})
}
