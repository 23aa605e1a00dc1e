package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/employee-admin/internal/api/metrics"
	"github.com/99minutos/employee-admin/internal/core/domain"
	"github.com/99minutos/employee-admin/internal/core/ports"
)

// EmployeeHandler handles HTTP requests for employee records.
type EmployeeHandler struct {
	service ports.EmployeeService
	metrics *metrics.Metrics
}

func NewEmployeeHandler(service ports.EmployeeService, m *metrics.Metrics) *EmployeeHandler {
	return &EmployeeHandler{service: service, metrics: m}
}

// Create handles POST /api/employees.
//
// @Summary      Create an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      employeeRequest  true  "Employee details"
// @Success      201   {object}  employeeResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /employees [post]
func (h *EmployeeHandler) Create(c echo.Context) error {
	req, err := bindEmployee(c)
	if err != nil {
		return err
	}

	employee, err := h.service.Create(c.Request().Context(), toEmployeeFields(req))
	h.observe("create", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toEmployeeResponse(employee))
}

// List handles GET /api/employees.
//
// @Summary      List employees, newest first
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   employeeResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /employees [get]
func (h *EmployeeHandler) List(c echo.Context) error {
	employees, err := h.service.List(c.Request().Context())
	h.observe("list", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEmployeeListResponse(employees))
}

// Get handles GET /api/employees/:id.
//
// @Summary      Get an employee by id
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Employee id"
// @Success      200  {object}  employeeResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /employees/{id} [get]
func (h *EmployeeHandler) Get(c echo.Context) error {
	employee, err := h.service.Get(c.Request().Context(), c.Param("id"))
	h.observe("get", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEmployeeResponse(employee))
}

// Update handles PUT /api/employees/:id.
//
// @Summary      Replace an employee's fields
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Employee id"
// @Param        body  body      employeeRequest  true  "Employee details"
// @Success      200   {object}  employeeResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /employees/{id} [put]
func (h *EmployeeHandler) Update(c echo.Context) error {
	req, err := bindEmployee(c)
	if err != nil {
		return err
	}

	employee, err := h.service.Update(c.Request().Context(), c.Param("id"), toEmployeeFields(req))
	h.observe("update", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEmployeeResponse(employee))
}

// Delete handles DELETE /api/employees/:id.
//
// @Summary      Delete an employee
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Employee id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c echo.Context) error {
	err := h.service.Delete(c.Request().Context(), c.Param("id"))
	h.observe("delete", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "employee deleted successfully"})
}

func bindEmployee(c echo.Context) (employeeRequest, error) {
	var req employeeRequest
	if err := c.Bind(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.trim()
	if err := c.Validate(&req); err != nil {
		return req, err
	}
	return req, nil
}

func (h *EmployeeHandler) observe(operation string, err error) {
	var ve *domain.ValidationError
	result := "success"
	switch {
	case err == nil:
	case errors.As(err, &ve):
		return
	case errors.Is(err, domain.ErrEmployeeNotFound):
		result = "not_found"
	case errors.Is(err, domain.ErrEmployeeEmailTaken):
		result = "conflict"
	default:
		result = "error"
	}
	h.metrics.EmployeeOperationsTotal.WithLabelValues(operation, result).Inc()
}
