package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/speaker-engagement/internal/config"
	"github.com/iliyamo/speaker-engagement/internal/database"
	"github.com/iliyamo/speaker-engagement/internal/engine"
	"github.com/iliyamo/speaker-engagement/internal/handler"
	"github.com/iliyamo/speaker-engagement/internal/middleware"
	"github.com/iliyamo/speaker-engagement/internal/repository"
	"github.com/iliyamo/speaker-engagement/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	redisClient := config.NewRedisClient()
	if redisClient == nil {
		log.Println("redis unavailable; caching and rate limiting disabled")
	}

	speakers := repository.NewSpeakerRepo(db)
	blocks := repository.NewAvailabilityRepo(db)
	bookings := repository.NewBookingRepo(db)
	contracts := repository.NewContractRepo(db)
	payments := repository.NewPaymentRepo(db)
	tiers := repository.NewDiscountRepo(db)
	seqs := repository.NewSequenceRepo(db)

	booker := engine.NewBooker(speakers, blocks, bookings)
	availability := engine.NewAvailability(speakers, blocks)
	contractSvc := engine.NewContracts(speakers, contracts, payments, seqs)
	paymentSvc := engine.NewPayments(speakers, contracts, payments, seqs)
	discountSvc := engine.NewDiscounts(tiers)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RateLimit(redisClient, config.RateLimit()))

	router.RegisterRoutes(e, handler.NewDiscountHandler(discountSvc))
	router.RegisterEngagement(e,
		handler.NewAvailabilityHandler(availability),
		handler.NewBookingHandler(booker),
		handler.NewContractHandler(contractSvc),
		handler.NewPaymentHandler(paymentSvc),
		cfg.JWTSecret,
		redisClient,
		config.CacheTTL(),
	)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
