package student

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/student-management-api/services"
	"github.com/sahilchouksey/student-management-api/utils/response"
	"github.com/sahilchouksey/student-management-api/utils/validation"
)

// dateLayout is the wire format for date-only fields
const dateLayout = "2006-01-02"

// StudentHandler handles student requests
type StudentHandler struct {
	service   *services.StudentService
	validator *validation.Validator
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(service *services.StudentService) *StudentHandler {
	return &StudentHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// CreateStudentRequest represents a student creation request
type CreateStudentRequest struct {
	FirstName    string `json:"firstName" validate:"required,min=2,max=50"`
	LastName     string `json:"lastName" validate:"required,min=2,max=50"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"omitempty,min=10,max=15"`
	DOB          string `json:"dob" validate:"omitempty"`
	Gender       string `json:"gender" validate:"omitempty,oneof=male female other"`
	Address      string `json:"address" validate:"omitempty,max=255"`
	DepartmentID uint   `json:"departmentId" validate:"required"`
}

// Create handles student creation; the linked login credential is created in
// the same transaction by the service
func (h *StudentHandler) Create(c *fiber.Ctx) error {
	var req CreateStudentRequest
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

	student, err := h.service.Create(c.Context(), services.CreateStudentInput{
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

	return response.Created(c, student)
}

// GetAll lists active students; supports ?status= and ?department= filters
func (h *StudentHandler) GetAll(c *fiber.Ctx) error {
	filter := services.StudentFilter{
		Status: c.Query("status"),
	}
	if dept := c.Query("department"); dept != "" {
		id, err := strconv.Atoi(dept)
		if err != nil || id <= 0 {
			return response.BadRequest(c, "Invalid department filter")
		}
		filter.DepartmentID = uint(id)
	}

	students, err := h.service.GetAll(c.Context(), filter)
	if err != nil {
		return response.FromAppError(c, err)
	}

	return response.Success(c, students)
}

// GetByID fetches one student
func (h *StudentHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid student id")
	}

	student, err := h.service.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.FromAppError(c, err)
	}

	return response.Success(c, student)
}

// UpdateStudentRequest represents a student update request
type UpdateStudentRequest struct {
	FirstName    *string `json:"firstName" validate:"omitempty,min=2,max=50"`
	LastName     *string `json:"lastName" validate:"omitempty,min=2,max=50"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Phone        *string `json:"phone" validate:"omitempty,min=10,max=15"`
	Address      *string `json:"address" validate:"omitempty,max=255"`
	DepartmentID *uint   `json:"departmentId"`
}

// Update handles student updates
func (h *StudentHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid student id")
	}

	var req UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	student, err := h.service.Update(c.Context(), uint(id), services.UpdateStudentInput{
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

	return response.SuccessWithMessage(c, "Student updated successfully", student)
}

// Delete soft-deletes a student and deactivates the linked credential
func (h *StudentHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid student id")
	}

	student, err := h.service.SoftDelete(c.Context(), uint(id))
	if err != nil {
		return response.FromAppError(c, err)
	}

	return response.SuccessWithMessage(c, "Student deleted successfully", student)
}

// ChangeStatusRequest represents a status change request
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ChangeStatus applies the student status transition table
func (h *StudentHandler) ChangeStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid student id")
	}

	var req ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	student, err := h.service.ChangeStatus(c.Context(), uint(id), req.Status)
	if err != nil {
		return response.FromAppError(c, err)
	}

	return response.SuccessWithMessage(c, "Status updated successfully", student)
}

// Courses lists the student's enrollments
func (h *StudentHandler) Courses(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid student id")
	}

	enrollments, err := h.service.Courses(c.Context(), uint(id))
	if err != nil {
		return response.FromAppError(c, err)
	}

	return response.Success(c, enrollments)
}

// Payments lists the student's payment history
func (h *StudentHandler) Payments(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid student id")
	}

	payments, err := h.service.Payments(c.Context(), uint(id))
	if err != nil {
		return response.FromAppError(c, err)
	}

	return response.Success(c, payments)
}

// Attendance lists the student's attendance records
func (h *StudentHandler) Attendance(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid student id")
	}

	records, err := h.service.Attendance(c.Context(), uint(id))
	if err != nil {
		return response.FromAppError(c, err)
	}

	return response.Success(c, records)
}
