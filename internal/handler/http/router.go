package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/hrstack/hrms-backend-go/internal/config"
	"github.com/hrstack/hrms-backend-go/internal/handler/http/middleware"
	"github.com/hrstack/hrms-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth       AuthHandler
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Payroll    PayrollHandler
	Dashboard  DashboardHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms-backend"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

				r.Get("/me", h.Auth.Profile)
				r.Put("/me", h.Auth.UpdateProfile)
				r.Put("/me/password", h.Auth.ChangePassword)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/{id}", h.Employee.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)

					r.Get("/", h.Employee.List)
					r.Post("/", h.Employee.Create)
					r.Put("/{id}", h.Employee.Update)
					r.Get("/stats/overview", h.Employee.Stats)
				})

				r.With(middleware.RequireAdmin).Delete("/{id}", h.Employee.Delete)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", h.Attendance.ClockIn)
				r.Post("/clock-out", h.Attendance.ClockOut)
				r.Post("/break/start", h.Attendance.StartBreak)
				r.Post("/break/end", h.Attendance.EndBreak)
				r.Get("/today", h.Attendance.Today)
				r.Get("/", h.Attendance.List)
				r.Get("/summary/{employeeId}", h.Attendance.Summary)

				r.With(middleware.RequireHR).Post("/mark", h.Attendance.Mark)
				r.With(middleware.RequireHR).Get("/report", h.Attendance.Report)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/", h.Payroll.List)
				r.Get("/{id}", h.Payroll.Get)
				r.Get("/{id}/payslip", h.Payroll.Payslip)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)

					r.Post("/generate", h.Payroll.Generate)
					r.Put("/{id}/status", h.Payroll.UpdateStatus)
					r.Get("/summary/stats", h.Payroll.SummaryStats)
				})
			})

			r.Route("/dashboard", func(r chi.Router) {
				// Self-service rollup for any authenticated account.
				r.Get("/my-summary", h.Dashboard.MySummary)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)

					r.Get("/overview", h.Dashboard.Overview)
					r.Get("/attendance-trends", h.Dashboard.AttendanceTrends)
					r.Get("/employee-metrics", h.Dashboard.EmployeeMetrics)
					r.Get("/payroll-analytics", h.Dashboard.PayrollAnalytics)
				})
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"success":false,"error":{"code":"NOT_FOUND","message":"Route not found"}}`, http.StatusNotFound)
	})

	return r
}
