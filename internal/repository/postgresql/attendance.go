package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `id, employee_id, date, time_in, time_out, total_hours, created_at, updated_at`

func scanAttendance(row pgx.Row, rec *attendance.AttendanceRecord) error {
	return row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Date, &rec.TimeIn, &rec.TimeOut,
		&rec.TotalHours, &rec.CreatedAt, &rec.UpdatedAt,
	)
}

// GetOrCreateForUpdate must run inside a transaction for the lock to hold.
func (r *attendanceRepositoryImpl) GetOrCreateForUpdate(ctx context.Context, employeeID string, date time.Time) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	insert := `
		INSERT INTO attendance_records (employee_id, date)
		VALUES ($1, $2)
		ON CONFLICT ON CONSTRAINT uk_attendance_employee_date DO NOTHING
	`
	if _, err := q.Exec(ctx, insert, employeeID, date); err != nil {
		if isForeignKeyViolation(err) {
			return attendance.AttendanceRecord{}, employee.ErrEmployeeNotFound
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1 AND date = $2
		FOR UPDATE
	`

	var rec attendance.AttendanceRecord
	if err := scanAttendance(q.QueryRow(ctx, query, employeeID, date), &rec); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceRecord{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to lock attendance record: %w", err)
	}
	return rec, nil
}

func (r *attendanceRepositoryImpl) UpdatePunches(ctx context.Context, rec attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET time_in = $1, time_out = $2, total_hours = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING ` + attendanceColumns

	var updated attendance.AttendanceRecord
	err := scanAttendance(q.QueryRow(ctx, query, rec.TimeIn, rec.TimeOut, rec.TotalHours, rec.ID), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceRecord{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to update attendance record: %w", err)
	}
	return updated, nil
}

func (r *attendanceRepositoryImpl) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.AttendanceRecord
	for rows.Next() {
		var rec attendance.AttendanceRecord
		if err := scanAttendance(rows, &rec); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
