package master

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/master/holiday"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/master/payrate"
)

type MasterService interface {
	// Rate catalog
	RateFor(ctx context.Context, employeeID string) (*payrate.PayRate, error)
	MyPayRates(ctx context.Context, principal auth.Principal) ([]payrate.PayRateResponse, error)

	// Holiday calendar
	IsHoliday(ctx context.Context, date time.Time) (bool, error)
	CheckHoliday(ctx context.Context, principal auth.Principal, req holiday.CheckHolidayRequest) (holiday.CheckHolidayResponse, error)
	ListHolidays(ctx context.Context, principal auth.Principal, req holiday.ListHolidaysRequest) ([]holiday.HolidayResponse, error)
}

type masterServiceImpl struct {
	payRateRepo payrate.PayRateRepository
	holidayRepo holiday.HolidayRepository
	guard       auth.Guard
}

func NewMasterService(
	payRateRepo payrate.PayRateRepository,
	holidayRepo holiday.HolidayRepository,
	guard auth.Guard,
) MasterService {
	return &masterServiceImpl{
		payRateRepo: payRateRepo,
		holidayRepo: holidayRepo,
		guard:       guard,
	}
}

// RateFor returns nil without error when the employee has no pay rate.
func (s *masterServiceImpl) RateFor(ctx context.Context, employeeID string) (*payrate.PayRate, error) {
	rate, err := s.payRateRepo.GetLatestByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, payrate.ErrPayRateNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rate, nil
}

func (s *masterServiceImpl) MyPayRates(ctx context.Context, principal auth.Principal) ([]payrate.PayRateResponse, error) {
	if err := s.guard.Require(principal, auth.CapPayRateViewOwn); err != nil {
		return nil, err
	}
	if !principal.HasEmployee() {
		return nil, auth.ErrNoEmployeeLinked
	}

	rates, err := s.payRateRepo.ListByEmployeeID(ctx, principal.EmployeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]payrate.PayRateResponse, 0, len(rates))
	for _, r := range rates {
		responses = append(responses, payrate.ToResponse(r))
	}
	return responses, nil
}

func (s *masterServiceImpl) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	y, m, d := date.Date()
	return s.holidayRepo.ExistsOnDate(ctx, time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func (s *masterServiceImpl) CheckHoliday(ctx context.Context, principal auth.Principal, req holiday.CheckHolidayRequest) (holiday.CheckHolidayResponse, error) {
	if err := s.guard.Require(principal, auth.CapHolidayView); err != nil {
		return holiday.CheckHolidayResponse{}, err
	}

	date, err := req.Validate()
	if err != nil {
		return holiday.CheckHolidayResponse{}, err
	}

	isHoliday, err := s.IsHoliday(ctx, date)
	if err != nil {
		return holiday.CheckHolidayResponse{}, err
	}

	return holiday.CheckHolidayResponse{Date: date.Format("2006-01-02"), IsHoliday: isHoliday}, nil
}

func (s *masterServiceImpl) ListHolidays(ctx context.Context, principal auth.Principal, req holiday.ListHolidaysRequest) ([]holiday.HolidayResponse, error) {
	if err := s.guard.Require(principal, auth.CapHolidayView); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	from := time.Date(req.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(req.Year, time.December, 31, 0, 0, 0, 0, time.UTC)

	holidays, err := s.holidayRepo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	responses := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, holiday.ToResponse(h))
	}
	return responses, nil
}
