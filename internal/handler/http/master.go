package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/master/holiday"
	"github.com/cmlabs-hris/attendance-payroll/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-payroll/internal/service/master"
)

type MasterHandler interface {
	ListHolidays(w http.ResponseWriter, r *http.Request)
	CheckHoliday(w http.ResponseWriter, r *http.Request)
	MyPayRates(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	masterService master.MasterService
}

func NewMasterHandler(masterService master.MasterService) MasterHandler {
	return &masterHandlerImpl{masterService: masterService}
}

func (h *masterHandlerImpl) ListHolidays(w http.ResponseWriter, r *http.Request) {
	principal, err := auth.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	year, err := optionalIntQuery(r, "year")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req := holiday.ListHolidaysRequest{Year: time.Now().Year()}
	if year != nil {
		req.Year = *year
	}

	result, err := h.masterService.ListHolidays(r.Context(), principal, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) CheckHoliday(w http.ResponseWriter, r *http.Request) {
	principal, err := auth.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	req := holiday.CheckHolidayRequest{Date: r.URL.Query().Get("date")}

	result, err := h.masterService.CheckHoliday(r.Context(), principal, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) MyPayRates(w http.ResponseWriter, r *http.Request) {
	principal, err := auth.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.masterService.MyPayRates(r.Context(), principal)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
