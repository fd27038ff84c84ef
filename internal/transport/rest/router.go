package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/fleethub/fleet-management/internal/auth"
	"github.com/fleethub/fleet-management/internal/directory"
	"github.com/fleethub/fleet-management/internal/movement"
	"github.com/fleethub/fleet-management/internal/report"
	"github.com/fleethub/fleet-management/internal/transport/middleware"
	"github.com/fleethub/fleet-management/internal/transport/swagger"
	"github.com/fleethub/fleet-management/internal/user"
	"github.com/fleethub/fleet-management/internal/vehicle"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

type Handlers struct {
	Auth      *auth.Handler
	User      *user.Handler
	Vehicle   *vehicle.Handler
	Movement  *movement.Handler
	Directory *directory.Handler
	Report    *report.Handler
}

// RegisterAllRoutes wires every handler under /api with the capability
// middleware each route group needs.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, handlers Handlers, authorizer *auth.Authorizer, allowedOrigins []string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.Logging(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", handlers.Auth.Register)
			sr.Post("/login", handlers.Auth.Login)
			sr.Post("/refresh", handlers.Auth.RefreshToken)

			sr.Group(func(ar chi.Router) {
				ar.Use(handlers.Auth.AuthMiddleware)
				ar.Get("/me", handlers.Auth.Me)
			})
		})

		r.Group(func(pr chi.Router) {
			pr.Use(handlers.Auth.AuthMiddleware)

			pr.Route("/users", func(ur chi.Router) {
				ur.Use(authorizer.RequireAdmin())
				ur.Get("/", handlers.User.ListUsers)
				ur.Get("/limit", handlers.User.CheckLimit)
				ur.Get("/{id}", handlers.User.GetUser)
				ur.Put("/{id}/permissions", handlers.User.UpdatePermissions)
				ur.Delete("/{id}", handlers.User.DeleteUser)
			})

			pr.Route("/vehicles", func(vr chi.Router) {
				vr.Group(func(gr chi.Router) {
					gr.Use(authorizer.RequireCapability(auth.CapabilityView))
					gr.Get("/", handlers.Vehicle.ListVehicles)
					gr.Get("/oil-change-needed", handlers.Vehicle.ListNeedingOilChange)
					gr.Get("/code/{carCode}", handlers.Vehicle.GetVehicleByCarCode)
					gr.Get("/{id}", handlers.Vehicle.GetVehicle)
				})

				vr.Group(func(er chi.Router) {
					er.Use(authorizer.RequireCapability(auth.CapabilityEdit))
					er.Post("/", handlers.Vehicle.CreateVehicle)
					er.Put("/{id}", handlers.Vehicle.UpdateVehicle)
					er.Delete("/{id}", handlers.Vehicle.DeleteVehicle)
					er.Post("/{id}/maintenance", handlers.Vehicle.AddMaintenance)
					er.Put("/{id}/maintenance/{recordId}", handlers.Vehicle.UpdateMaintenance)
					er.Delete("/{id}/maintenance/{recordId}", handlers.Vehicle.DeleteMaintenance)
				})
			})

			pr.Route("/movements", func(mr chi.Router) {
				mr.Group(func(gr chi.Router) {
					gr.Use(authorizer.RequireCapability(auth.CapabilityView))
					gr.Get("/", handlers.Movement.ListMovements)
					gr.Get("/recent", handlers.Movement.ListRecent)
					gr.Get("/car/{carCode}", handlers.Movement.ListByCarCode)
					gr.Get("/driver/{driverName}", handlers.Movement.ListByDriverName)
					gr.Get("/{id}", handlers.Movement.GetMovement)
				})

				mr.Group(func(er chi.Router) {
					er.Use(authorizer.RequireCapability(auth.CapabilityEdit))
					er.Post("/", handlers.Movement.CreateMovement)
					er.Put("/{id}", handlers.Movement.UpdateMovement)
					er.Delete("/{id}", handlers.Movement.DeleteMovement)
				})
			})

			pr.Route("/reports", func(rr chi.Router) {
				rr.Use(authorizer.RequireCapability(auth.CapabilityExport))
				rr.Get("/movements", handlers.Report.MovementReport)
				rr.Get("/maintenance/{vehicleId}", handlers.Report.MaintenanceReport)
				rr.Get("/fleet-status", handlers.Report.FleetStatusReport)
			})

			pr.Route("/directory", func(dr chi.Router) {
				dr.Group(func(gr chi.Router) {
					gr.Use(authorizer.RequireCapability(auth.CapabilityView))
					gr.Get("/drivers", handlers.Directory.ListDrivers)
					gr.Get("/drivers/{id}", handlers.Directory.GetDriver)
					gr.Get("/clients", handlers.Directory.ListClients)
					gr.Get("/clients/{id}", handlers.Directory.GetClient)
					gr.Get("/routes", handlers.Directory.ListRoutes)
					gr.Get("/routes/{id}", handlers.Directory.GetRoute)
					gr.Get("/departments", handlers.Directory.ListDepartments)
					gr.Get("/departments/{id}", handlers.Directory.GetDepartment)
					gr.Get("/supervisors", handlers.Directory.ListSupervisors)
					gr.Get("/supervisors/{id}", handlers.Directory.GetSupervisor)
				})

				dr.Group(func(er chi.Router) {
					er.Use(authorizer.RequireCapability(auth.CapabilityEdit))
					er.Post("/drivers", handlers.Directory.CreateDriver)
					er.Put("/drivers/{id}", handlers.Directory.UpdateDriver)
					er.Delete("/drivers/{id}", handlers.Directory.DeleteDriver)
					er.Post("/clients", handlers.Directory.CreateClient)
					er.Put("/clients/{id}", handlers.Directory.UpdateClient)
					er.Delete("/clients/{id}", handlers.Directory.DeleteClient)
					er.Post("/routes", handlers.Directory.CreateRoute)
					er.Put("/routes/{id}", handlers.Directory.UpdateRoute)
					er.Delete("/routes/{id}", handlers.Directory.DeleteRoute)
					er.Post("/departments", handlers.Directory.CreateDepartment)
					er.Put("/departments/{id}", handlers.Directory.UpdateDepartment)
					er.Delete("/departments/{id}", handlers.Directory.DeleteDepartment)
					er.Post("/supervisors", handlers.Directory.CreateSupervisor)
					er.Put("/supervisors/{id}", handlers.Directory.UpdateSupervisor)
					er.Delete("/supervisors/{id}", handlers.Directory.DeleteSupervisor)
				})
			})
		})
	})
}
