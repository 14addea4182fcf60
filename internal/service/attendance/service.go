package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/master/holiday"
	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/database"
)

type AttendanceServiceImpl struct {
	tx             database.Transactor
	attendanceRepo attendance.AttendanceRepository
	holidayRepo    holiday.HolidayRepository
	guard          auth.Guard
	loc            *time.Location
	now            func() time.Time
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	holidayRepo holiday.HolidayRepository,
	guard auth.Guard,
	loc *time.Location,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:             tx,
		attendanceRepo: attendanceRepo,
		holidayRepo:    holidayRepo,
		guard:          guard,
		loc:            loc,
		now:            time.Now,
	}
}

// RecordPunch implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RecordPunch(ctx context.Context, principal auth.Principal, req attendance.RecordPunchRequest) (attendance.AttendanceResponse, error) {
	if err := s.guard.Require(principal, auth.CapAttendanceRecord); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !principal.HasEmployee() {
		return attendance.AttendanceResponse{}, auth.ErrNoEmployeeLinked
	}

	now := s.now().In(s.loc)
	today := attendance.DateOf(now)

	isHoliday, err := s.holidayRepo.ExistsOnDate(ctx, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check holiday: %w", err)
	}
	if isHoliday {
		return attendance.AttendanceResponse{}, attendance.ErrHolidayPunch
	}

	var saved attendance.AttendanceRecord
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		rec, err := s.attendanceRepo.GetOrCreateForUpdate(ctx, principal.EmployeeID, today)
		if err != nil {
			return err
		}

		if err := applyPunch(&rec, attendance.PunchKind(req.Kind), now); err != nil {
			return err
		}

		saved, err = s.attendanceRepo.UpdatePunches(ctx, rec)
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Recorded punch", "employee_id", principal.EmployeeID, "kind", req.Kind, "date", today.Format("2006-01-02"))
	return attendance.ToResponse(saved, s.loc), nil
}

// applyPunch enforces the one time-in, one time-out rule on rec.
func applyPunch(rec *attendance.AttendanceRecord, kind attendance.PunchKind, at time.Time) error {
	switch kind {
	case attendance.PunchTimeIn:
		if rec.HasTimeIn() {
			return attendance.ErrAlreadyTimedIn
		}
		rec.TimeIn = &at
	case attendance.PunchTimeOut:
		if !rec.HasTimeIn() {
			return attendance.ErrNotTimedIn
		}
		if rec.HasTimeOut() {
			return attendance.ErrAlreadyTimedOut
		}
		rec.TimeOut = &at
		hours := attendance.ComputeTotalHours(*rec.TimeIn, at)
		rec.TotalHours = &hours
	default:
		return attendance.ErrInvalidPunchKind
	}
	return nil
}

// HoursFor implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) HoursFor(ctx context.Context, employeeID string, r attendance.DateRange) ([]attendance.AttendanceRecord, error) {
	records, err := s.attendanceRepo.ListByEmployeeAndRange(ctx, employeeID, r.From, r.To)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance for employee %s: %w", employeeID, err)
	}
	return records, nil
}

// ListMine implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListMine(ctx context.Context, principal auth.Principal, req attendance.ListMyAttendanceRequest) ([]attendance.AttendanceResponse, error) {
	if err := s.guard.Require(principal, auth.CapAttendanceViewOwn); err != nil {
		return nil, err
	}
	if !principal.HasEmployee() {
		return nil, auth.ErrNoEmployeeLinked
	}

	r, err := req.Validate()
	if err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.ListByEmployeeAndRange(ctx, principal.EmployeeID, r.From, r.To)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, attendance.ToResponse(rec, s.loc))
	}
	return responses, nil
}
