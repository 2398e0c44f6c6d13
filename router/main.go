package router

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/student-management-api/config"
	"github.com/sahilchouksey/student-management-api/database"
	"github.com/sahilchouksey/student-management-api/handlers"
	attendance_handlers "github.com/sahilchouksey/student-management-api/handlers/attendance"
	auth_handlers "github.com/sahilchouksey/student-management-api/handlers/auth"
	course_handlers "github.com/sahilchouksey/student-management-api/handlers/course"
	department_handlers "github.com/sahilchouksey/student-management-api/handlers/department"
	enrollment_handlers "github.com/sahilchouksey/student-management-api/handlers/enrollment"
	instructor_handlers "github.com/sahilchouksey/student-management-api/handlers/instructor"
	marks_handlers "github.com/sahilchouksey/student-management-api/handlers/marks"
	notification_handlers "github.com/sahilchouksey/student-management-api/handlers/notification"
	payment_handlers "github.com/sahilchouksey/student-management-api/handlers/payment"
	student_handlers "github.com/sahilchouksey/student-management-api/handlers/student"
	"github.com/sahilchouksey/student-management-api/model"
	"github.com/sahilchouksey/student-management-api/services"
	"github.com/sahilchouksey/student-management-api/utils/auth"
	"github.com/sahilchouksey/student-management-api/utils/cache"
	"github.com/sahilchouksey/student-management-api/utils/middleware"
)

// SetupRoutes wires middleware, services and handlers onto the app
func SetupRoutes(app *fiber.App, store database.Storage, redisCache *cache.RedisCache) {
	getEnv, err := config.Get()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	if getEnv.JWT_ACCESS_SECRET == "" || getEnv.JWT_REFRESH_SECRET == "" {
		log.Fatal("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET environment variables must be set")
	}

	jwtIssuer := getEnv.JWT_ISSUER
	if jwtIssuer == "" {
		jwtIssuer = "student-management-api"
	}

	tokenManager := auth.NewTokenManager(auth.TokenConfig{
		AccessSecret:  getEnv.JWT_ACCESS_SECRET,
		RefreshSecret: getEnv.JWT_REFRESH_SECRET,
		AccessExpiry:  getEnv.JWT_ACCESS_EXPIRE,
		RefreshExpiry: getEnv.JWT_REFRESH_EXPIRE,
		Issuer:        jwtIssuer,
	})

	db := store.DB()

	// Refresh sessions live in redis; without redis, login and refresh cannot
	// hold rotation state, so redis is required here unlike the caches.
	if redisCache == nil {
		log.Fatal("Redis is required for refresh session storage")
	}
	sessionRegistry := auth.NewSessionRegistry(redisCache)

	// Services
	userStore := services.NewUserStore(db)
	authService := services.NewAuthService(userStore, sessionRegistry, tokenManager)
	departmentService := services.NewDepartmentService(db, redisCache)
	studentService := services.NewStudentService(db, redisCache)
	instructorService := services.NewInstructorService(db, redisCache)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenManager, db)
	loginLimiter := middleware.NewLoginRateLimiter(redisCache)

	// Handlers
	authHandler := auth_handlers.NewAuthHandler(authService)
	departmentHandler := department_handlers.NewDepartmentHandler(departmentService)
	studentHandler := student_handlers.NewStudentHandler(studentService)
	instructorHandler := instructor_handlers.NewInstructorHandler(instructorService)
	courseHandler := course_handlers.NewCourseHandler(db)
	enrollmentHandler := enrollment_handlers.NewEnrollmentHandler(db)
	paymentHandler := payment_handlers.NewPaymentHandler(db)
	attendanceHandler := attendance_handlers.NewAttendanceHandler(db)
	markHandler := marks_handlers.NewMarkHandler(db)
	notificationHandler := notification_handlers.NewNotificationHandler(db)

	// Health check (unauthenticated)
	app.Get("/health", handlers.HealthCheck(store))

	v1 := app.Group("/api/v1")

	// Auth routes
	authRoutes := v1.Group("/auth")
	// Register is open: the first admin comes from the seed, everyone else
	// self-registers and gets 409 on a taken email.
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", loginLimiter.Limit(), authHandler.Login)
	authRoutes.Post("/refresh", authHandler.Refresh)
	authRoutes.Post("/logout", authMiddleware.Required(), authHandler.Logout)
	authRoutes.Get("/me", authMiddleware.Required(), authHandler.Me)
	authRoutes.Patch("/change-password", authMiddleware.Required(), authHandler.ChangePassword)

	// Everything below requires a valid access token
	protected := v1.Group("", authMiddleware.Required())

	adminOnly := authMiddleware.RequireRole(model.RoleAdmin)
	staffOnly := authMiddleware.RequireRole(model.RoleAdmin, model.RoleInstructor)

	// Department routes
	departmentRoutes := protected.Group("/departments")
	departmentRoutes.Post("/", adminOnly, departmentHandler.Create)
	departmentRoutes.Get("/", departmentHandler.GetAll)
	departmentRoutes.Get("/:id", departmentHandler.GetByID)
	departmentRoutes.Patch("/:id", adminOnly, departmentHandler.Update)
	departmentRoutes.Delete("/:id", adminOnly, departmentHandler.Delete)
	departmentRoutes.Patch("/:id/status", adminOnly, departmentHandler.ChangeStatus)
	departmentRoutes.Patch("/:id/head", adminOnly, departmentHandler.AssignHead)

	// Student routes
	studentRoutes := protected.Group("/students")
	studentRoutes.Post("/", adminOnly, studentHandler.Create)
	studentRoutes.Get("/", staffOnly, studentHandler.GetAll)
	studentRoutes.Get("/:id", studentHandler.GetByID)
	studentRoutes.Patch("/:id", adminOnly, studentHandler.Update)
	studentRoutes.Delete("/:id", adminOnly, studentHandler.Delete)
	studentRoutes.Patch("/:id/status", adminOnly, studentHandler.ChangeStatus)
	studentRoutes.Get("/:id/courses", studentHandler.Courses)
	studentRoutes.Get("/:id/payments", studentHandler.Payments)
	studentRoutes.Get("/:id/attendance", studentHandler.Attendance)

	// Instructor routes
	instructorRoutes := protected.Group("/instructors")
	instructorRoutes.Post("/", adminOnly, instructorHandler.Create)
	instructorRoutes.Get("/", instructorHandler.GetAll)
	instructorRoutes.Get("/:id", instructorHandler.GetByID)
	instructorRoutes.Patch("/:id", adminOnly, instructorHandler.Update)
	instructorRoutes.Delete("/:id", adminOnly, instructorHandler.Delete)
	instructorRoutes.Patch("/:id/status", adminOnly, instructorHandler.ChangeStatus)

	// Course routes
	courseRoutes := protected.Group("/courses")
	courseRoutes.Post("/", adminOnly, courseHandler.Create)
	courseRoutes.Get("/", courseHandler.GetAll)
	courseRoutes.Get("/:id", courseHandler.GetByID)
	courseRoutes.Patch("/:id", adminOnly, courseHandler.Update)
	courseRoutes.Delete("/:id", adminOnly, courseHandler.Delete)
	courseRoutes.Get("/:id/schedules", courseHandler.Schedules)
	courseRoutes.Post("/:id/schedules", adminOnly, courseHandler.AddSchedule)

	// Enrollment routes
	enrollmentRoutes := protected.Group("/enrollments")
	enrollmentRoutes.Post("/", staffOnly, enrollmentHandler.Create)
	enrollmentRoutes.Get("/", staffOnly, enrollmentHandler.GetAll)
	enrollmentRoutes.Get("/:id", enrollmentHandler.GetByID)
	enrollmentRoutes.Patch("/:id/status", staffOnly, enrollmentHandler.ChangeStatus)

	// Payment routes
	paymentRoutes := protected.Group("/payments")
	paymentRoutes.Post("/", adminOnly, paymentHandler.Create)
	paymentRoutes.Get("/", adminOnly, paymentHandler.GetAll)
	paymentRoutes.Get("/:id", paymentHandler.GetByID)
	paymentRoutes.Patch("/:id/status", adminOnly, paymentHandler.ChangeStatus)

	// Attendance routes
	attendanceRoutes := protected.Group("/attendance")
	attendanceRoutes.Post("/", staffOnly, attendanceHandler.Mark)
	attendanceRoutes.Get("/", staffOnly, attendanceHandler.GetAll)
	attendanceRoutes.Patch("/:id", staffOnly, attendanceHandler.Update)

	// Mark routes
	markRoutes := protected.Group("/marks")
	markRoutes.Post("/", staffOnly, markHandler.Record)
	markRoutes.Get("/", markHandler.GetAll)
	markRoutes.Patch("/:id", staffOnly, markHandler.Update)

	// Notification routes
	notificationRoutes := protected.Group("/notifications")
	notificationRoutes.Post("/", adminOnly, notificationHandler.Create)
	notificationRoutes.Get("/", notificationHandler.List)
	notificationRoutes.Patch("/:id/read", notificationHandler.MarkRead)
}
