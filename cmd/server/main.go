package main // Entry point package

import (
	"log"  // Logging library
	"time" // clock injection for the booking service

	"github.com/joho/godotenv"    // loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/meeting-room-reservation/internal/booking"    // scheduling core
	"github.com/iliyamo/meeting-room-reservation/internal/config"     // internal config loader
	"github.com/iliyamo/meeting-room-reservation/internal/database"   // MySQL connector
	"github.com/iliyamo/meeting-room-reservation/internal/handler"    // HTTP handlers
	"github.com/iliyamo/meeting-room-reservation/internal/middleware" // rate limiting and caching middleware
	"github.com/iliyamo/meeting-room-reservation/internal/queue"      // reservation event consumer
	"github.com/iliyamo/meeting-room-reservation/internal/repository" // data access layer
	"github.com/iliyamo/meeting-room-reservation/internal/router"     // route registration
)

func main() {
	// Load a local .env when present; in production the variables come
	// from the real environment and the file is simply absent.
	_ = godotenv.Load()

	cfg := config.Load() // load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer db.Close()

	// Repositories share the single connection pool.
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	reservationRepo := repository.NewReservationRepo(db)

	// The booking service runs against the MySQL store with the real clock.
	svc := booking.NewService(reservationRepo, time.Now)

	e := echo.New()

	// Redis-backed rate limiting and response caching.  A nil client
	// (Redis unreachable) disables both features; the API keeps working.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and caching disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	roomHandler := handler.NewRoomHandler(roomRepo)
	reservationHandler := handler.NewReservationHandler(svc)

	router.RegisterRoutes(e) // health check
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterRooms(e, roomHandler, cfg.JWTSecret)
	router.RegisterReservations(e, reservationHandler, cfg.JWTSecret)

	// Background consumer for reservation.booked events; reconnects on
	// broker failure and never takes the API down with it.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // print startup info

	if err := e.Start(addr); err != nil { // start HTTP server
		log.Fatal(err) // log and exit if server fails
	}
}
