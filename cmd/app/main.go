package main

import (
	"log"

	"CareBowAPI/external/abstractapi"
	"CareBowAPI/external/opsqueue"
	"CareBowAPI/external/resend"

	"CareBowAPI/internal/config"
	"CareBowAPI/internal/db"
	"CareBowAPI/internal/middleware"
	"CareBowAPI/internal/repository"
	"CareBowAPI/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	middleware.SetSecret(cfg.JWTSecret)

	// ======================
	// INFRA
	// ======================
	pool, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	// ======================
	// EXTERNALS
	// ======================
	var emailValidator services.EmailValidator
	if cfg.UseEmailReputation {
		emailValidator, err = abstractapi.NewReputationValidator(cfg.AbstractEmailAPIKey)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		emailValidator = services.NewLocalValidator()
	}

	var decisions services.DecisionNotifier = services.LogNotifier{}
	if cfg.ResendAPIKey != "" {
		mailer, err := resend.NewResendMailer(cfg.ResendAPIKey, "CareBow<care@carebow.dev>")
		if err != nil {
			log.Fatal(err)
		}
		decisions = mailer
	}

	var ops services.OpsNotifier = services.LogNotifier{}
	if cfg.AMQPURL != "" {
		pub, err := opsqueue.NewPublisher(cfg.AMQPURL, cfg.OpsExchange)
		if err != nil {
			// Booking creation must not depend on the queue being up.
			log.Printf("opsqueue unavailable, falling back to log notifier: %v", err)
		} else {
			defer pub.Close()
			ops = pub
		}
	}

	// ======================
	// REPOSITORIES
	// ======================
	userRepo := repository.NewUserRepository(pool)
	familyRepo := repository.NewFamilyRepository(pool)
	caregiverRepo := repository.NewCaregiverRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	// ======================
	// SERVICES
	// ======================
	authSvc := services.NewAuthService(userRepo, familyRepo, caregiverRepo, emailValidator)
	familySvc := services.NewFamilyService(familyRepo)
	caregiverSvc := services.NewCaregiverService(caregiverRepo, decisions)
	bookingSvc := services.NewBookingService(bookingRepo, familyRepo, ops)

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	resolver := middleware.NewResolver(userRepo)
	withIdentity := middleware.WithIdentity(resolver)

	api := e.Group("/care-link")
	api.Use(withIdentity)

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerAuthRoutes(api, authSvc)
	registerCaregiverRoutes(api, caregiverSvc)
	registerFamilyRoutes(api, familySvc)
	registerProfileRoutes(api, familySvc, caregiverSvc, authSvc)
	registerBookingRoutes(api, bookingSvc)
	registerPageRoutes(e, withIdentity)

	// ======================
	// SERVER
	// ======================
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
