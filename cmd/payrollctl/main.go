package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cmlabs-hris/attendance-payroll/internal/app"
	"github.com/cmlabs-hris/attendance-payroll/internal/config"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/payroll"
	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/jwt"
)

var rootCmd = &cobra.Command{
	Use:   "payrollctl",
	Short: "Administration tool for the attendance and payroll service",
	Long:  `payrollctl runs database migrations, generates payroll for a pay period and inspects stored payroll history.`,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()
		if err := database.MigrateUp(cfg.DatabaseURL()); err != nil {
			fail("Error running migrations", err)
		}
		fmt.Println("Migrations applied")
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()
		if err := database.MigrateDown(cfg.DatabaseURL()); err != nil {
			fail("Error rolling back migration", err)
		}
		fmt.Println("Rolled back one migration")
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the current migration version",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()
		status, err := database.GetMigrationStatus(cfg.DatabaseURL())
		if err != nil {
			fail("Error reading migration status", err)
		}
		fmt.Printf("Version: %d\n", status.CurrentVersion)
		if status.Dirty {
			fmt.Println("Warning: database is in a dirty state")
		}
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate payroll for every active employee for one month",
	Run: func(cmd *cobra.Command, args []string) {
		asJSON, _ := cmd.Flags().GetBool("json")

		cfg := mustLoadConfig()
		req := generateRequest(cmd, payroll.PeriodOf(time.Now().In(cfg.Payroll.Location())).Previous())
		if _, err := req.Validate(); err != nil {
			fail("Invalid period", err)
		}

		ctx, stop := signalContext()
		defer stop()

		services, db := mustServices(cfg)
		defer db.Close()

		summary, err := services.Payroll.Generate(ctx, auth.SystemPrincipal(), req)
		if err != nil {
			fail("Error generating payroll", err)
		}

		if asJSON {
			printJSON(summary)
			return
		}

		fmt.Printf("Run %s for %s\n", summary.RunID, summary.Period)
		fmt.Printf("Generated: %d (created %d, updated %d)\n", summary.Generated, summary.Created, summary.Updated)
		fmt.Printf("Total hours: %s\n", summary.TotalHours.StringFixed(2))
		if len(summary.Warnings) > 0 {
			fmt.Printf("\nWarnings (%d):\n", len(summary.Warnings))
			for _, w := range summary.Warnings {
				fmt.Printf("  [%s] %s (%s): %s\n", w.Kind, w.EmployeeName, w.EmployeeID, w.Message)
			}
		}
	},
}

var payrollCmd = &cobra.Command{
	Use:   "payroll",
	Short: "Show stored payroll history",
	Run: func(cmd *cobra.Command, args []string) {
		employeeID, _ := cmd.Flags().GetString("employee")
		month, _ := cmd.Flags().GetInt("month")
		year, _ := cmd.Flags().GetInt("year")
		asJSON, _ := cmd.Flags().GetBool("json")

		req := payroll.ViewPayrollRequest{EmployeeID: employeeID}
		if cmd.Flags().Changed("month") {
			req.Month = &month
		}
		if cmd.Flags().Changed("year") {
			req.Year = &year
		}

		cfg := mustLoadConfig()
		ctx, stop := signalContext()
		defer stop()

		services, db := mustServices(cfg)
		defer db.Close()

		rows, err := services.Payroll.ViewPayroll(ctx, auth.SystemPrincipal(), req)
		if err != nil {
			fail("Error loading payroll", err)
		}

		if asJSON {
			printJSON(rows)
			return
		}
		if len(rows) == 0 {
			fmt.Println("No payroll records found")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PERIOD\tEMPLOYEE\tGROSS\tDEDUCTIONS\tNET")
		for _, p := range rows {
			name := p.EmployeeID
			if p.EmployeeName != nil {
				name = *p.EmployeeName
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				p.PayPeriod,
				name,
				p.GrossSalary.StringFixed(2),
				p.TotalDeductions.StringFixed(2),
				p.NetSalary.StringFixed(2),
			)
			for _, d := range p.Deductions {
				fmt.Fprintf(w, "\t  %d. %s\t\t%s\t\n", d.Position, d.Label, d.SalaryDeduction.StringFixed(2))
			}
		}
		w.Flush()
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an access token for local testing",
	Run: func(cmd *cobra.Command, args []string) {
		userID, _ := cmd.Flags().GetString("user")
		employeeID, _ := cmd.Flags().GetString("employee")
		role, _ := cmd.Flags().GetString("role")

		cfg := mustLoadConfig()
		if err := cfg.ValidateAPI(); err != nil {
			fail("Error loading config", err)
		}

		jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
		token, expiresAt, err := jwtService.GenerateAccessToken(auth.Principal{
			UserID:     userID,
			EmployeeID: employeeID,
			Role:       auth.Role(role),
		})
		if err != nil {
			fail("Error issuing token", err)
		}

		fmt.Println(token)
		fmt.Fprintf(os.Stderr, "expires at %s\n", time.Unix(expiresAt, 0).Format(time.RFC3339))
	},
}

func init() {
	generateCmd.Flags().Int("month", 0, "Month to generate (1-12), defaults to the previous month")
	generateCmd.Flags().Int("year", 0, "Year to generate, defaults to the year of the previous month")
	generateCmd.Flags().Bool("json", false, "Print the run summary as JSON")

	payrollCmd.Flags().String("employee", "", "Employee ID, empty for all employees")
	payrollCmd.Flags().Int("month", 0, "Filter by month (requires --year)")
	payrollCmd.Flags().Int("year", 0, "Filter by year")
	payrollCmd.Flags().Bool("json", false, "Print records as JSON")

	tokenCmd.Flags().String("user", "", "User ID")
	tokenCmd.Flags().String("employee", "", "Employee ID linked to the user")
	tokenCmd.Flags().String("role", string(auth.RoleEmployee), "Role: admin or employee")
	_ = tokenCmd.MarkFlagRequired("user")

	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateVersionCmd)

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(payrollCmd)
	rootCmd.AddCommand(tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// generateRequest takes --month and --year when given, even if invalid, and
// fills the rest from fallback.
func generateRequest(cmd *cobra.Command, fallback payroll.Period) payroll.GeneratePayrollRequest {
	req := payroll.GeneratePayrollRequest{Month: int(fallback.Month), Year: fallback.Year}
	if cmd.Flags().Changed("month") {
		req.Month, _ = cmd.Flags().GetInt("month")
	}
	if cmd.Flags().Changed("year") {
		req.Year, _ = cmd.Flags().GetInt("year")
	}
	return req
}

func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fail("Error loading config", err)
	}
	return cfg
}

func mustServices(cfg *config.Config) (app.Services, *database.DB) {
	db, err := database.NewPostgreSQLDBWithPool(cfg.DatabaseURL(), database.PoolConfig{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		fail("Error connecting to database", err)
	}
	return app.NewServices(cfg, db), db
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fail("Error encoding output", err)
	}
}

func fail(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}
