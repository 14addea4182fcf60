package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/payroll"
	"github.com/cmlabs-hris/attendance-payroll/internal/handler/http/response"
)

type PayrollHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

func (h *payrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	principal, err := auth.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req payroll.GeneratePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	summary, err := h.payrollService.Generate(r.Context(), principal, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := fmt.Sprintf("Payroll generated for %d employees", summary.Generated)
	if len(summary.Warnings) > 0 {
		message = fmt.Sprintf("%s with %d warnings", message, len(summary.Warnings))
	}
	response.SuccessWithMessage(w, message, summary)
}

func (h *payrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	principal, err := auth.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	req := payroll.ViewPayrollRequest{EmployeeID: r.URL.Query().Get("employee_id")}
	if req.Month, err = optionalIntQuery(r, "month"); err != nil {
		response.HandleError(w, err)
		return
	}
	if req.Year, err = optionalIntQuery(r, "year"); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.ViewPayroll(r.Context(), principal, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
