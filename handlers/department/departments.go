package department

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/student-management-api/services"
	"github.com/sahilchouksey/student-management-api/utils/response"
	"github.com/sahilchouksey/student-management-api/utils/validation"
)

// DepartmentHandler handles department requests
type DepartmentHandler struct {
	service   *services.DepartmentService
	validator *validation.Validator
}

// NewDepartmentHandler creates a new department handler
func NewDepartmentHandler(service *services.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// CreateDepartmentRequest represents a department creation request
type CreateDepartmentRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Building string `json:"building" validate:"max=100"`
}

// Create handles department creation
func (h *DepartmentHandler) Create(c *fiber.Ctx) error {
	var req CreateDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	department, err := h.service.Create(c.Context(), services.CreateDepartmentInput{
		Name:     req.Name,
		Building: req.Building,
	})
	if err != nil {
		return response.FromAppError(c, err)
	}

	return response.Created(c, department)
}

// GetAll lists active departments
func (h *DepartmentHandler) GetAll(c *fiber.Ctx) error {
	departments, err := h.service.GetAll(c.Context())
	if err != nil {
		return response.FromAppError(c, err)
	}

	return response.Success(c, departments)
}

// GetByID fetches one department
func (h *DepartmentHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid department id")
	}

	department, err := h.service.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.FromAppError(c, err)
	}

	return response.Success(c, department)
}

// UpdateDepartmentRequest represents a department update request
type UpdateDepartmentRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=100"`
	Building *string `json:"building" validate:"omitempty,max=100"`
}

// Update handles department updates
func (h *DepartmentHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid department id")
	}

	var req UpdateDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	department, err := h.service.Update(c.Context(), uint(id), services.UpdateDepartmentInput{
		Name:     req.Name,
		Building: req.Building,
	})
	if err != nil {
		return response.FromAppError(c, err)
	}

	return response.SuccessWithMessage(c, "Department updated successfully", department)
}

// Delete soft-deletes a department
func (h *DepartmentHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid department id")
	}

	department, err := h.service.SoftDelete(c.Context(), uint(id))
	if err != nil {
		return response.FromAppError(c, err)
	}

	return response.SuccessWithMessage(c, "Department deleted successfully", department)
}

// ChangeStatusRequest represents a status change request
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ChangeStatus applies the department status transition table
func (h *DepartmentHandler) ChangeStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid department id")
	}

	var req ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	department, err := h.service.ChangeStatus(c.Context(), uint(id), req.Status)
	if err != nil {
		return response.FromAppError(c, err)
	}

	return response.SuccessWithMessage(c, "Status updated successfully", department)
}

// AssignHeadRequest names the instructor to put in charge
type AssignHeadRequest struct {
	InstructorID uint `json:"instructorId" validate:"required"`
}

// AssignHead sets the head-of-department instructor
func (h *DepartmentHandler) AssignHead(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid department id")
	}

	var req AssignHeadRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	department, err := h.service.AssignHead(c.Context(), uint(id), req.InstructorID)
	if err != nil {
		return response.FromAppError(c, err)
	}

	return response.SuccessWithMessage(c, "Head of department assigned", department)
}
