package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (employee_id, start_date, end_date, reason, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, employee_id, start_date, end_date, reason, status, created_at, updated_at
	`

	var created leave.LeaveRequest
	err := q.QueryRow(ctx, query,
		request.EmployeeID, request.StartDate, request.EndDate, request.Reason, request.Status,
	).Scan(
		&created.ID, &created.EmployeeID, &created.StartDate, &created.EndDate,
		&created.Reason, &created.Status, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return leave.LeaveRequest{}, employee.ErrEmployeeNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return created, nil
}

func (r *leaveRequestRepositoryImpl) LockEmployee(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('leave_requests:' || $1::text))`, employeeID); err != nil {
		return fmt.Errorf("failed to lock leave requests: %w", err)
	}
	return nil
}

func (r *leaveRequestRepositoryImpl) CountStartingInMonth(ctx context.Context, employeeID string, monthStart time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM leave_requests
		WHERE employee_id = $1
			AND start_date >= date_trunc('month', $2::date)
			AND start_date < date_trunc('month', $2::date) + INTERVAL '1 month'
	`

	var count int
	if err := q.QueryRow(ctx, query, employeeID, monthStart).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count leave requests: %w", err)
	}
	return count, nil
}

func (r *leaveRequestRepositoryImpl) List(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.id, l.employee_id, l.start_date, l.end_date, l.reason, l.status, l.created_at, l.updated_at,
			e.first_name || ' ' || e.last_name AS employee_name
		FROM leave_requests l
		JOIN employees e ON e.id = l.employee_id
		WHERE ($1 = '' OR l.employee_id::text = $1)
		ORDER BY l.start_date DESC, l.created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var l leave.LeaveRequest
		err := rows.Scan(
			&l.ID, &l.EmployeeID, &l.StartDate, &l.EndDate, &l.Reason, &l.Status,
			&l.CreatedAt, &l.UpdatedAt, &l.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, l)
	}
	return requests, rows.Err()
}
