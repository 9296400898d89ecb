package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/vestbyenif/volunteer-api/internal/config"
	"github.com/vestbyenif/volunteer-api/internal/database"
	"github.com/vestbyenif/volunteer-api/internal/handler"
	"github.com/vestbyenif/volunteer-api/internal/middleware"
	"github.com/vestbyenif/volunteer-api/internal/queue"
	"github.com/vestbyenif/volunteer-api/internal/repository"
	"github.com/vestbyenif/volunteer-api/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBDriver, database.DialectConfig{
		User: cfg.DBUser,
		Pass: cfg.DBPass,
		Host: cfg.DBHost,
		Port: cfg.DBPort,
		Name: cfg.DBName,
		Path: cfg.DBPath,
		URL:  cfg.DBURL,
	})
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	registry := repository.NewFamilyRegistry(db)
	families := repository.NewFamilyRepo(db, registry)
	events := repository.NewEventRepo(db, registry)
	tasks := repository.NewTaskRepo(db)
	slots := repository.NewTimeSlotRepo(db)
	signups := repository.NewSignupRepo(db)
	migrator := repository.NewMigrator(db)

	auth := handler.NewAuthHandler(cfg)
	admin := handler.NewAdminHandler(families, events, tasks, slots, signups, migrator, registry)
	public := &handler.PublicHandler{Events: events, Tasks: tasks, Slots: slots, Signups: signups}

	e := echo.New()

	// Redis backs the rate limiter and the response cache for public
	// reads.  Both degrade to no-ops when Redis is unreachable.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and response caching disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth, cfg.JWTSecret)
	router.RegisterPublic(e, public, cache)
	router.RegisterAdmin(e, admin, cfg.JWTSecret)

	// Background consumer appends confirmed signups to logs/signups.log.
	// It reconnects on broker failures and never takes the server down.
	go func() {
		if err := queue.StartSignupConsumer(); err != nil {
			log.Printf("signup consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, driver=%s)", addr, cfg.Env, cfg.DBDriver)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
