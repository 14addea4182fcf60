package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/master/payrate"
	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrMissingPrincipal):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrForbidden):
		Forbidden(w, err.Error())
	case errors.Is(err, auth.ErrNoEmployeeLinked):
		Forbidden(w, "User is not linked to an employee record")

	// Not found
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, payrate.ErrPayRateNotFound):
		NotFound(w, "Pay rate not found")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyTimedIn):
		Conflict(w, "Time in already recorded for today")
	case errors.Is(err, attendance.ErrAlreadyTimedOut):
		Conflict(w, "Time out already recorded for today")
	case errors.Is(err, attendance.ErrNotTimedIn):
		BadRequest(w, "You need to time in first", nil)
	case errors.Is(err, attendance.ErrHolidayPunch):
		BadRequest(w, "Attendance cannot be recorded on a holiday", nil)
	case errors.Is(err, attendance.ErrInvalidPunchKind):
		BadRequest(w, err.Error(), nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrMonthlyLeaveLimit):
		BadRequest(w, "You can only submit up to 3 leave requests per month", nil)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
