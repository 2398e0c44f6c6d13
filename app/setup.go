package app

import (
	"fmt"
	"log"
	"os"

	"github.com/sahilchouksey/student-management-api/api"
	"github.com/sahilchouksey/student-management-api/config"
	"github.com/sahilchouksey/student-management-api/database"
	"github.com/sahilchouksey/student-management-api/model"
	"github.com/sahilchouksey/student-management-api/router"
	"github.com/sahilchouksey/student-management-api/services/cron"
	"github.com/sahilchouksey/student-management-api/utils/cache"
	"github.com/sahilchouksey/student-management-api/utils/middleware"
)

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// The status tables are hand-maintained; refuse to boot on an inconsistent one
	if err := model.ValidateStatusTables(); err != nil {
		return err
	}

	// Initialize GORM database connection
	store, err := database.StartGORM()
	if err != nil {
		print("Check whether the Postgres is running or not\n")
		return err
	}

	if err := store.Init(); err != nil {
		print("Failed to initialize database tables\n")
		return err
	}

	// Seed the initial admin credential if configured
	if err := database.RunSeeds(store.DB()); err != nil {
		log.Println("Warning: seeding failed:", err)
	}

	// Redis backs refresh sessions, caches and the login rate limiter
	redisCache, err := cache.NewRedisCache(getEnv.REDIS_URL)
	if err != nil {
		print("Check whether Redis is running or not\n")
		return err
	}

	// Initialize Cron Manager (only if enabled via environment variable)
	var cronManager *cron.CronManager
	if os.Getenv("CRON_ENABLED") != "false" { // Default to enabled
		cronManager = cron.NewCronManager(store.DB())
		if err := cronManager.Start(); err != nil {
			print("Warning: Failed to start cron jobs\n")
			print("Error: ", err.Error(), "\n")
			// Don't fail the app, just log the warning
		}
	}

	// Defer Closing DB, redis and stopping cron jobs
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		redisCache.Close()
		store.Close()
	}()

	// Init API
	var server *api.APIServer = api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	// Attach Middleware
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000"
	}
	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins: allowedOrigins,
	})

	// Setup Routes
	router.SetupRoutes(app, store, redisCache)

	// Get the PORT & Start the Server
	return server.Run()

}
