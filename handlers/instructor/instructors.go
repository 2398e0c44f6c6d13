package instructor

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/student-management-api/services"
	"github.com/sahilchouksey/student-management-api/utils/response"
	"github.com/sahilchouksey/student-management-api/utils/validation"
)

const dateLayout = "2006-01-02"

// InstructorHandler handles instructor requests
type InstructorHandler struct {
	service   *services.InstructorService
	validator *validation.Validator
}

// NewInstructorHandler creates a new instructor handler
func NewInstructorHandler(service *services.InstructorService) *InstructorHandler {
	return &InstructorHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// CreateInstructorRequest represents an instructor creation request
type CreateInstructorRequest struct {
	FirstName    string `json:"firstName" validate:"required,min=2,max=50"`
	LastName     string `json:"lastName" validate:"required,min=2,max=50"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"omitempty,min=10,max=15"`
	DOB          string `json:"dob" validate:"omitempty"`
	Gender       string `json:"gender" validate:"omitempty,oneof=male female other"`
	Address      string `json:"address" validate:"omitempty,max=255"`
	DepartmentID uint   `json:"departmentId" validate:"required"`
}

// Create handles instructor creation
func (h *InstructorHandler) Create(c *fiber.Ctx) error {
	var req CreateInstructorRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	var dob *time.Time
	if req.DOB != "" {
		parsed, err := time.Parse(dateLayout, req.DOB)
		if err != nil {
			return response.BadRequest(c, "dob must be in YYYY-MM-DD format")
		}
		dob = &parsed
	}

	instructor, err := h.service.Create(c.Context(), services.CreateInstructorInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		DOB:          dob,
		Gender:       req.Gender,
		Address:      req.Address,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		return response.FromAppError(c, err)
	}

	return response.Created(c, instructor)
}

// GetAll lists active instructors; supports ?status= and ?department= filters
func (h *InstructorHandler) GetAll(c *fiber.Ctx) error {
	filter := services.InstructorFilter{
		Status: c.Query("status"),
	}
	if dept := c.Query("department"); dept != "" {
		id, err := strconv.Atoi(dept)
		if err != nil || id <= 0 {
			return response.BadRequest(c, "Invalid department filter")
		}
		filter.DepartmentID = uint(id)
	}

	instructors, err := h.service.GetAll(c.Context(), filter)
	if err != nil {
		return response.FromAppError(c, err)
	}

	return response.Success(c, instructors)
}

// GetByID fetches one instructor
func (h *InstructorHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid instructor id")
	}

	instructor, err := h.service.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.FromAppError(c, err)
	}

	return response.Success(c, instructor)
}

// UpdateInstructorRequest represents an instructor update request
type UpdateInstructorRequest struct {
	FirstName    *string `json:"firstName" validate:"omitempty,min=2,max=50"`
	LastName     *string `json:"lastName" validate:"omitempty,min=2,max=50"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Phone        *string `json:"phone" validate:"omitempty,min=10,max=15"`
	Address      *string `json:"address" validate:"omitempty,max=255"`
	DepartmentID *uint   `json:"departmentId"`
}

// Update handles instructor updates
func (h *InstructorHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid instructor id")
	}

	var req UpdateInstructorRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	instructor, err := h.service.Update(c.Context(), uint(id), services.UpdateInstructorInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		return response.FromAppError(c, err)
	}

	return response.SuccessWithMessage(c, "Instructor updated successfully", instructor)
}

// Delete soft-deletes an instructor and deactivates the linked credential
func (h *InstructorHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid instructor id")
	}

	instructor, err := h.service.SoftDelete(c.Context(), uint(id))
	if err != nil {
		return response.FromAppError(c, err)
	}

	return response.SuccessWithMessage(c, "Instructor deleted successfully", instructor)
}

// ChangeStatusRequest represents a status change request
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ChangeStatus applies the instructor status transition table
func (h *InstructorHandler) ChangeStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid instructor id")
	}

	var req ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	instructor, err := h.service.ChangeStatus(c.Context(), uint(id), req.Status)
	if err != nil {
		return response.FromAppError(c, err)
	}

	return response.SuccessWithMessage(c, "Status updated successfully", instructor)
}
