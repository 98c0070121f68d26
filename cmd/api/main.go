package main

import (
	"guestserver/cmd/internal/config"
	"guestserver/cmd/internal/domain/sqlite"
	"guestserver/cmd/internal/domain/sqlite/repository"
	"guestserver/cmd/internal/integration/appointment"
	"guestserver/cmd/internal/integration/user"
	"guestserver/cmd/internal/routes"
	"guestserver/cmd/internal/service"
	"guestserver/cmd/internal/utils/validators"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

func main() {
	validate := validator.New()
	registerValidators(validate)

	err := godotenv.Load()
	if err != nil {
		log.Warnf("no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration", err)
	}

	// Init SQLite
	db, err := sqlite.Init(cfg.DatabasePath)
	if err != nil {
		log.Fatal("failed to initialize database", err)
	}

	// Remote service gateways
	apptClient := appointment.NewClient(cfg.AppointmentServiceURL, cfg.GatewayTimeout, cfg.TrustAllCerts)
	userClient := user.NewClient(cfg.UserServiceURL, cfg.GatewayTimeout, cfg.TrustAllCerts)

	// Getting repositories
	guestRepo := repository.NewGuestRepository(db)

	// Getting services
	guestService := service.NewGuestService(guestRepo, apptClient, userClient, validate)

	// Getting routes
	guestRoutes := routes.NewGuestDefault(guestService)

	e := echo.New()
	e.Use(middleware.CORS())

	// Appointment proxies
	e.GET("/appointments", guestRoutes.GetAppointments)
	e.GET("/appointments/host/:host_id", guestRoutes.GetHostAppointments)
	e.GET("/appointments/:appointment_id", guestRoutes.GetAppointment)

	// Guests
	e.POST("/appointments/:appointment_id/guests", guestRoutes.CreateGuest)
	e.GET("/appointments/:appointment_id/guests", guestRoutes.GetGuests)
	e.GET("/appointments/:appointment_id/guests/:guest_id", guestRoutes.GetGuest)
	e.GET("/appointments/:appointment_id/guests/:guest_id/guest_status", guestRoutes.GetGuestStatus)
	e.PATCH("/appointments/:appointment_id/guests/:guest_id/guest_status", guestRoutes.UpdateGuestStatus)
	e.DELETE("/appointments/:appointment_id/guests/:guest_id", guestRoutes.DeleteGuest)

	err = e.Start(":" + cfg.Port)
	if err != nil {
		e.Logger.Fatal(err)
	}
}

func registerValidators(validate *validator.Validate) {
	_ = validate.RegisterValidation("gueststatus", validators.IsGuestStatus)
}
