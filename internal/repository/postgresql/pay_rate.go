package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/master/payrate"
	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payRateRepositoryImpl struct {
	db *database.DB
}

func NewPayRateRepository(db *database.DB) payrate.PayRateRepository {
	return &payRateRepositoryImpl{db: db}
}

const payRateColumns = `id, employee_id, pay_rate, hours_per_day, created_at, updated_at`

// GetLatestByEmployeeID resolves duplicate rows by newest created_at.
func (r *payRateRepositoryImpl) GetLatestByEmployeeID(ctx context.Context, employeeID string) (payrate.PayRate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payRateColumns + `
		FROM pay_rates
		WHERE employee_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	var p payrate.PayRate
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&p.ID, &p.EmployeeID, &p.PayRate, &p.HoursPerDay, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payrate.PayRate{}, payrate.ErrPayRateNotFound
		}
		return payrate.PayRate{}, fmt.Errorf("failed to get pay rate: %w", err)
	}
	return p, nil
}

func (r *payRateRepositoryImpl) ListByEmployeeID(ctx context.Context, employeeID string) ([]payrate.PayRate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payRateColumns + `
		FROM pay_rates
		WHERE employee_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay rates: %w", err)
	}
	defer rows.Close()

	var rates []payrate.PayRate
	for rows.Next() {
		var p payrate.PayRate
		if err := rows.Scan(&p.ID, &p.EmployeeID, &p.PayRate, &p.HoursPerDay, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pay rate: %w", err)
		}
		rates = append(rates, p)
	}
	return rates, rows.Err()
}
