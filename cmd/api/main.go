package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/hrstack/hrms-backend-go/internal/config"
	appHTTP "github.com/hrstack/hrms-backend-go/internal/handler/http"
	"github.com/hrstack/hrms-backend-go/internal/pkg/database"
	"github.com/hrstack/hrms-backend-go/internal/pkg/email"
	"github.com/hrstack/hrms-backend-go/internal/pkg/jwt"
	"github.com/hrstack/hrms-backend-go/internal/pkg/payslip"
	"github.com/hrstack/hrms-backend-go/internal/pkg/storage"
	"github.com/hrstack/hrms-backend-go/internal/repository/postgresql"
	attendanceService "github.com/hrstack/hrms-backend-go/internal/service/attendance"
	authService "github.com/hrstack/hrms-backend-go/internal/service/auth"
	dashboardService "github.com/hrstack/hrms-backend-go/internal/service/dashboard"
	employeeService "github.com/hrstack/hrms-backend-go/internal/service/employee"
	payrollService "github.com/hrstack/hrms-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.App.LogLevel),
	})).With(slog.String("app", "hrms-backend"))
	slog.SetDefault(logger)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath)
	if err != nil {
		log.Fatal("Failed to initialize local storage: ", err)
	}

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service: ", err)
	}

	payslipGenerator := payslip.NewGenerator("HRStack")

	auth := authService.NewAuthService(userRepo, jwtService, logger)
	employees := employeeService.NewEmployeeService(db, employeeRepo, userRepo, emailService, cfg.App.FrontendURL, logger)
	attendances := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, logger)
	payrolls := payrollService.NewPayrollService(payrollRepo, employeeRepo, attendanceRepo, payslipGenerator, fileStorage, logger)
	dashboards := dashboardService.NewDashboardService(dashboardRepo, employeeRepo, attendanceRepo, payrollRepo, logger)

	router := appHTTP.NewRouter(cfg, jwtService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(jwtService, auth),
		Employee:   appHTTP.NewEmployeeHandler(employees),
		Attendance: appHTTP.NewAttendanceHandler(attendances),
		Payroll:    appHTTP.NewPayrollHandler(payrolls),
		Dashboard:  appHTTP.NewDashboardHandler(dashboards),
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("server starting", "addr", addr, "env", cfg.App.Env)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error: ", err)
	}
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
