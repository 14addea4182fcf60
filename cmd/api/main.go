package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/attendance-payroll/internal/app"
	"github.com/cmlabs-hris/attendance-payroll/internal/config"
	appHTTP "github.com/cmlabs-hris/attendance-payroll/internal/handler/http"
	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/jwt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}
	if err := cfg.ValidateAPI(); err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := app.NewLogger(os.Stdout, cfg.App)
	slog.SetDefault(logger)

	db, err := database.NewPostgreSQLDBWithPool(cfg.DatabaseURL(), database.PoolConfig{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	services := app.NewServices(cfg, db)

	attendanceHandler := appHTTP.NewAttendanceHandler(services.Attendance)
	masterHandler := appHTTP.NewMasterHandler(services.Master)
	payrollHandler := appHTTP.NewPayrollHandler(services.Payroll)
	leaveHandler := appHTTP.NewLeaveHandler(services.Leave)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Logger:         logger,
			LogLevel:       app.ParseLevel(cfg.App.LogLevel),
			AllowedOrigins: cfg.App.CORSAllowedOrigins,
		},
		jwtService,
		services.Guard,
		attendanceHandler,
		masterHandler,
		payrollHandler,
		leaveHandler,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Payroll.AutoGenerate {
		scheduler := cron.NewScheduler()
		cron.NewPayrollJobs(services.Payroll, cfg.Payroll.Location()).RegisterJobs(scheduler)
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "port", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped unexpectedly", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
	slog.Info("server stopped")
}
