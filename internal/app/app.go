package app

import (
	"io"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/attendance-payroll/internal/config"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/payroll"
	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-payroll/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/attendance-payroll/internal/service/attendance"
	leaveService "github.com/cmlabs-hris/attendance-payroll/internal/service/leave"
	"github.com/cmlabs-hris/attendance-payroll/internal/service/master"
	payrollService "github.com/cmlabs-hris/attendance-payroll/internal/service/payroll"
	"github.com/go-chi/httplog/v3"
)

const (
	appName    = "attendance-payroll"
	appVersion = "v1.0.0"
)

// Services holds the wired application services shared by the API server
// and the admin CLI.
type Services struct {
	Guard      auth.Guard
	Attendance attendance.AttendanceService
	Master     master.MasterService
	Payroll    payroll.PayrollService
	Leave      leave.LeaveService
}

func NewServices(cfg *config.Config, db *database.DB) Services {
	tx := postgresql.NewTransactor(db)
	guard := auth.DefaultGuard()
	loc := cfg.Payroll.Location()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payRateRepo := postgresql.NewPayRateRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)

	attendanceSvc := attendanceService.NewAttendanceService(tx, attendanceRepo, holidayRepo, guard, loc)
	masterSvc := master.NewMasterService(payRateRepo, holidayRepo, guard)
	payrollSvc := payrollService.NewPayrollService(
		tx,
		payrollRepo,
		employeeRepo,
		attendanceSvc,
		masterSvc,
		guard,
		payrollService.Options{
			Workers:               cfg.Payroll.Workers,
			CountWeekendsAsAbsent: cfg.Payroll.CountWeekendsAsAbsent,
		},
	)
	leaveSvc := leaveService.NewLeaveService(tx, leaveRequestRepo, guard)

	return Services{
		Guard:      guard,
		Attendance: attendanceSvc,
		Master:     masterSvc,
		Payroll:    payrollSvc,
		Leave:      leaveSvc,
	}
}

// ParseLevel maps LOG_LEVEL to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds the process logger: JSON records in the ECS schema used
// by the HTTP request logger.
func NewLogger(w io.Writer, cfg config.AppConfig) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       ParseLevel(cfg.LogLevel),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", appName),
		slog.String("version", appVersion),
		slog.String("env", cfg.Env),
	)
}
