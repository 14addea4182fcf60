package leave

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/database"
)

type LeaveServiceImpl struct {
	tx          database.Transactor
	requestRepo leave.LeaveRequestRepository
	guard       auth.Guard
}

func NewLeaveService(tx database.Transactor, requestRepo leave.LeaveRequestRepository, guard auth.Guard) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:          tx,
		requestRepo: requestRepo,
		guard:       guard,
	}
}

// Submit implements leave.LeaveService.
func (s *LeaveServiceImpl) Submit(ctx context.Context, principal auth.Principal, req leave.SubmitLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := s.guard.Require(principal, auth.CapLeaveCreate); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !principal.HasEmployee() {
		return leave.LeaveRequestResponse{}, auth.ErrNoEmployeeLinked
	}

	start, end := req.Dates()

	var created leave.LeaveRequest
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.requestRepo.LockEmployee(ctx, principal.EmployeeID); err != nil {
			return err
		}

		count, err := s.requestRepo.CountStartingInMonth(ctx, principal.EmployeeID, start)
		if err != nil {
			return err
		}
		if count >= leave.MaxRequestsPerMonth {
			return fmt.Errorf("%w: %d requests already filed for %s", leave.ErrMonthlyLeaveLimit, count, start.Format("January 2006"))
		}

		created, err = s.requestRepo.Create(ctx, leave.LeaveRequest{
			EmployeeID: principal.EmployeeID,
			StartDate:  start,
			EndDate:    end,
			Reason:     req.Reason,
			Status:     leave.LeaveRequestStatusPending,
		})
		return err
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	slog.Info("Leave request submitted", "employee_id", principal.EmployeeID, "leave_request_id", created.ID)
	return leave.ToResponse(created), nil
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, principal auth.Principal) ([]leave.LeaveRequestResponse, error) {
	employeeID := principal.EmployeeID
	if s.guard.Allows(principal, auth.CapLeaveViewAll) {
		employeeID = ""
	} else if !principal.HasEmployee() {
		return nil, auth.ErrNoEmployeeLinked
	}

	requests, err := s.requestRepo.List(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.ToResponse(r))
	}
	return responses, nil
}
