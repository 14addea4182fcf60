package http

import (
	"log/slog"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-payroll/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	Logger         *slog.Logger
	LogLevel       slog.Level
	AllowedOrigins []string
}

func NewRouter(
	cfg RouterConfig,
	JWTService jwt.Service,
	guard auth.Guard,
	attendanceHandler AttendanceHandler,
	masterHandler MasterHandler,
	payrollHandler PayrollHandler,
	leaveHandler LeaveHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(cfg.Logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/punch", attendanceHandler.Punch)
				r.Get("/my", attendanceHandler.ListMy)
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", masterHandler.ListHolidays)
				r.Get("/check", masterHandler.CheckHoliday)
			})

			r.Get("/payrates/my", masterHandler.MyPayRates)

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/", payrollHandler.List)

				r.With(middleware.RequireCapability(guard, auth.CapPayrollGenerate)).
					Post("/generate", payrollHandler.Generate)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Get("/", leaveHandler.List)
				r.Post("/", leaveHandler.Submit)
			})
		})
	})
	return r
}
