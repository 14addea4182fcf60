package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/payroll"
	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// Upsert relies on xmax being zero only for freshly inserted tuples.
func (r *payrollRepository) Upsert(ctx context.Context, p payroll.Payroll) (payroll.Payroll, bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payrolls (employee_id, pay_period, gross_salary, total_deductions, net_salary)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT ON CONSTRAINT uk_payroll_employee_period DO UPDATE SET
			gross_salary = EXCLUDED.gross_salary,
			total_deductions = EXCLUDED.total_deductions,
			net_salary = EXCLUDED.net_salary,
			updated_at = NOW()
		RETURNING id, employee_id, pay_period, gross_salary, total_deductions, net_salary,
			created_at, updated_at, (xmax = 0) AS inserted
	`

	var saved payroll.Payroll
	var created bool
	err := q.QueryRow(ctx, query,
		p.EmployeeID, p.PayPeriod, p.GrossSalary, p.TotalDeductions, p.NetSalary,
	).Scan(
		&saved.ID, &saved.EmployeeID, &saved.PayPeriod, &saved.GrossSalary, &saved.TotalDeductions,
		&saved.NetSalary, &saved.CreatedAt, &saved.UpdatedAt, &created,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return payroll.Payroll{}, false, employee.ErrEmployeeNotFound
		}
		return payroll.Payroll{}, false, fmt.Errorf("failed to upsert payroll: %w", err)
	}

	return saved, created, nil
}

func (r *payrollRepository) ReplaceDeductions(ctx context.Context, payrollID string, rows []payroll.Deduction) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM deductions WHERE payroll_id = $1`, payrollID); err != nil {
		return fmt.Errorf("failed to delete deductions: %w", err)
	}
	if len(rows) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, d := range rows {
		batch.Queue(
			`INSERT INTO deductions (payroll_id, position, label, salary_deduction) VALUES ($1, $2, $3, $4)`,
			payrollID, d.Position, d.Label, d.SalaryDeduction,
		)
	}

	if err := q.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert deductions: %w", err)
	}
	return nil
}

func (r *payrollRepository) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("p.employee_id = $%d", argIdx))
		args = append(args, filter.EmployeeID)
		argIdx++
	}
	if filter.Year != nil {
		conditions = append(conditions, fmt.Sprintf("EXTRACT(YEAR FROM p.pay_period) = $%d", argIdx))
		args = append(args, *filter.Year)
		argIdx++
	}
	if filter.Month != nil {
		conditions = append(conditions, fmt.Sprintf("EXTRACT(MONTH FROM p.pay_period) = $%d", argIdx))
		args = append(args, *filter.Month)
		argIdx++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT p.id, p.employee_id, p.pay_period, p.gross_salary, p.total_deductions, p.net_salary,
			p.created_at, p.updated_at, e.first_name || ' ' || e.last_name AS employee_name
		FROM payrolls p
		JOIN employees e ON e.id = p.employee_id
		%s
		ORDER BY p.pay_period DESC, employee_name
	`, whereClause)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payrolls: %w", err)
	}
	defer rows.Close()

	var payrolls []payroll.Payroll
	for rows.Next() {
		var p payroll.Payroll
		err := rows.Scan(
			&p.ID, &p.EmployeeID, &p.PayPeriod, &p.GrossSalary, &p.TotalDeductions, &p.NetSalary,
			&p.CreatedAt, &p.UpdatedAt, &p.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll: %w", err)
		}
		payrolls = append(payrolls, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payrolls: %w", err)
	}

	return payrolls, nil
}

func (r *payrollRepository) GetDeductions(ctx context.Context, payrollIDs []string) (map[string][]payroll.Deduction, error) {
	result := make(map[string][]payroll.Deduction, len(payrollIDs))
	if len(payrollIDs) == 0 {
		return result, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, payroll_id, position, label, salary_deduction
		FROM deductions
		WHERE payroll_id = ANY($1::uuid[])
		ORDER BY payroll_id, position
	`

	rows, err := q.Query(ctx, query, payrollIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get deductions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d payroll.Deduction
		if err := rows.Scan(&d.ID, &d.PayrollID, &d.Position, &d.Label, &d.SalaryDeduction); err != nil {
			return nil, fmt.Errorf("failed to scan deduction: %w", err)
		}
		result[d.PayrollID] = append(result[d.PayrollID], d)
	}
	return result, rows.Err()
}
