package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-payroll/internal/handler/http/response"
)

type AttendanceHandler interface {
	Punch(w http.ResponseWriter, r *http.Request)
	ListMy(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

func (h *attendanceHandlerImpl) Punch(w http.ResponseWriter, r *http.Request) {
	principal, err := auth.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.RecordPunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.attendanceService.RecordPunch(r.Context(), principal, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := "Time in recorded"
	if attendance.PunchKind(req.Kind) == attendance.PunchTimeOut {
		message = "Time out recorded"
	}
	response.Created(w, message, result)
}

func (h *attendanceHandlerImpl) ListMy(w http.ResponseWriter, r *http.Request) {
	principal, err := auth.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	req := attendance.ListMyAttendanceRequest{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}

	result, err := h.attendanceService.ListMine(r.Context(), principal, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
