package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"parkhub/internal/config"
	"parkhub/internal/database"
	"parkhub/internal/middleware"
	"parkhub/internal/modules/auth"
	"parkhub/internal/modules/booking"
	"parkhub/internal/modules/events"
	"parkhub/internal/modules/parking"
	"parkhub/internal/modules/payment"
	"parkhub/internal/modules/user"
	"parkhub/internal/modules/vehicle"
	jwtsvc "parkhub/internal/pkg/jwt"
	"parkhub/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	slotRepo := repository.NewSlotRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	hub := events.NewHub()
	defer hub.Close()

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	vehicleService := vehicle.NewService(vehicleRepo, bookingRepo)
	vehicleHandler := vehicle.NewHandler(vehicleService)

	parkingService := parking.NewService(db, slotRepo, hub)
	parkingHandler := parking.NewHandler(parkingService)

	bookingService := booking.NewService(bookingRepo, parkingService)
	bookingHandler := booking.NewHandler(bookingService)

	paymentService := payment.NewService(db, paymentRepo, nil, hub)
	paymentHandler := payment.NewHandler(paymentService)

	userService := user.NewService(userRepo, vehicleRepo)
	userHandler := user.NewHandler(userService)

	eventsHandler := events.NewHandler(hub)

	sweeper := booking.NewSweeper(bookingRepo, cfg.SweepInterval)
	stopSweeper := sweeper.Start(context.Background())
	defer close(stopSweeper)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		parkingHandler.RegisterPublicRoutes(v1)
		eventsHandler.RegisterRoutes(v1)

		// any authenticated user
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			vehicleHandler.RegisterRoutes(protected)
			parkingHandler.RegisterUserRoutes(protected)
			bookingHandler.RegisterUserRoutes(protected)
			paymentHandler.RegisterRoutes(protected)
		}

		// admin or attendant
		staff := v1.Group("/")
		staff.Use(middleware.Auth(j), middleware.Staff())
		{
			parkingHandler.RegisterStaffRoutes(staff)
			bookingHandler.RegisterStaffRoutes(staff)
		}

		// admin only
		admin := v1.Group("/")
		admin.Use(middleware.Auth(j), middleware.AdminOnly())
		{
			parkingHandler.RegisterAdminRoutes(admin)
			userHandler.RegisterRoutes(admin)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
