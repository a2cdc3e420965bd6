package app

import (
	"database/sql"
	"path/filepath"

	"github.com/justinnewbold/PattyShack-sub001/internal/auth"
	"github.com/justinnewbold/PattyShack-sub001/internal/availability"
	"github.com/justinnewbold/PattyShack-sub001/internal/company"
	"github.com/justinnewbold/PattyShack-sub001/internal/employee"
	"github.com/justinnewbold/PattyShack-sub001/internal/forecast"
	"github.com/justinnewbold/PattyShack-sub001/internal/labor"
	"github.com/justinnewbold/PattyShack-sub001/internal/messaging/kafka"
	"github.com/justinnewbold/PattyShack-sub001/internal/rbac"
	"github.com/justinnewbold/PattyShack-sub001/internal/rbac/infra"
	"github.com/justinnewbold/PattyShack-sub001/internal/schedule"
	"github.com/justinnewbold/PattyShack-sub001/internal/shared/counter"
	"github.com/justinnewbold/PattyShack-sub001/internal/shift"
	"github.com/justinnewbold/PattyShack-sub001/internal/timeoff"
	"github.com/justinnewbold/PattyShack-sub001/internal/trade"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	availabilityRepo := availability.NewRepository(gormDB)
	companyRepo := company.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	forecastRepo := forecast.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	scheduleRepo := schedule.NewRepository(gormDB)
	shiftRepo := shift.NewRepository(gormDB)
	timeoffRepo := timeoff.NewRepository(gormDB)
	tradeRepo := trade.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	authService := auth.NewService(authRepo, rbacService, employeeRepo)
	availabilityService := availability.NewService(db, availabilityRepo)
	companyService := company.NewService(companyRepo)
	employeeService := employee.NewService(db, employeeRepo, counterRepo)
	forecastService := forecast.NewService(db, forecastRepo)
	laborService := labor.NewService(shiftRepo)
	scheduleService := schedule.NewService(db, scheduleRepo, shiftRepo, availabilityService, outboxRepo)
	shiftService := shift.NewService(db, shiftRepo)
	timeoffService := timeoff.NewService(db, timeoffRepo)
	tradeService := trade.NewService(db, tradeRepo, shiftRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	availabilityHandler := availability.NewHandler(availabilityService)
	companyHandler := company.NewHandler(companyService)
	employeeHandler := employee.NewHandler(employeeService)
	forecastHandler := forecast.NewHandler(forecastService, rdb)
	laborHandler := labor.NewHandler(laborService)
	rbacHandler := rbac.NewHandler(rbacService)
	scheduleHandler := schedule.NewHandler(scheduleService, rdb)
	shiftHandler := shift.NewHandler(shiftService)
	timeoffHandler := timeoff.NewHandler(timeoffService)
	tradeHandler := trade.NewHandler(tradeService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		availability.RegisterRoutes(api, availabilityHandler, rbacService)
		company.RegisterRoutes(api, companyHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		forecast.RegisterRoutes(api, forecastHandler, rbacService)
		labor.RegisterRoutes(api, laborHandler, rbacService)
		rbac.RegisterRoutes(api, rbacHandler, rbacService)
		schedule.RegisterRoutes(api, scheduleHandler, rbacService, rdb)
		shift.RegisterRoutes(api, shiftHandler, rbacService)
		timeoff.RegisterRoutes(api, timeoffHandler, rbacService)
		trade.RegisterRoutes(api, tradeHandler, rbacService)
	}

	return nil
}
