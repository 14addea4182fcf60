package leave

import (
	"context"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/auth"
)

type LeaveService interface {
	Submit(ctx context.Context, principal auth.Principal, req SubmitLeaveRequest) (LeaveRequestResponse, error)
	List(ctx context.Context, principal auth.Principal) ([]LeaveRequestResponse, error)
}
