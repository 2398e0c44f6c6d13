package enrollment

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/student-management-api/model"
	"github.com/sahilchouksey/student-management-api/services"
	"github.com/sahilchouksey/student-management-api/utils/response"
	"github.com/sahilchouksey/student-management-api/utils/validation"
	"gorm.io/gorm"
)

// EnrollmentHandler handles enrollment requests
type EnrollmentHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewEnrollmentHandler creates a new enrollment handler
func NewEnrollmentHandler(db *gorm.DB) *EnrollmentHandler {
	return &EnrollmentHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateEnrollmentRequest represents an enrollment request
type CreateEnrollmentRequest struct {
	StudentID uint `json:"studentId" validate:"required"`
	CourseID  uint `json:"courseId" validate:"required"`
}

// Create enrolls a student in a course. The composite unique index turns a
// second enrollment into a conflict.
func (h *EnrollmentHandler) Create(c *fiber.Ctx) error {
	var req CreateEnrollmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	ctx := c.Context()

	var student model.Student
	if err := h.db.WithContext(ctx).Where("id = ? AND is_active = ?", req.StudentID, true).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Student not found")
		}
		return response.InternalServerError(c, "Failed to create enrollment")
	}

	if student.Status != model.StudentActive {
		return response.BadRequest(c, "Only active students can enroll")
	}

	var course model.Course
	if err := h.db.WithContext(ctx).First(&course, req.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to create enrollment")
	}

	enrollment := model.Enrollment{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		Status:    model.EnrollmentEnrolled,
	}

	if err := h.db.WithContext(ctx).Create(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return response.Conflict(c, "Student is already enrolled in this course")
		}
		return response.InternalServerError(c, "Failed to create enrollment")
	}

	return response.Created(c, enrollment)
}

// GetAll lists enrollments; supports ?student= and ?course= filters
func (h *EnrollmentHandler) GetAll(c *fiber.Ctx) error {
	query := h.db.WithContext(c.Context()).Model(&model.Enrollment{})

	if student := c.QueryInt("student"); student > 0 {
		query = query.Where("student_id = ?", student)
	}
	if course := c.QueryInt("course"); course > 0 {
		query = query.Where("course_id = ?", course)
	}

	var enrollments []model.Enrollment
	if err := query.Preload("Student").Preload("Course").Order("created_at DESC").Find(&enrollments).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch enrollments")
	}

	return response.Success(c, enrollments)
}

// GetByID fetches one enrollment
func (h *EnrollmentHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid enrollment id")
	}

	var enrollment model.Enrollment
	err = h.db.WithContext(c.Context()).
		Preload("Student").
		Preload("Course").
		First(&enrollment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Enrollment not found")
		}
		return response.InternalServerError(c, "Failed to fetch enrollment")
	}

	return response.Success(c, enrollment)
}

// ChangeStatusRequest represents a status change request
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ChangeStatus applies the enrollment status transition table
func (h *EnrollmentHandler) ChangeStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid enrollment id")
	}

	var req ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	ctx := c.Context()
	status := strings.ToLower(req.Status)

	var enrollment model.Enrollment
	if err := h.db.WithContext(ctx).First(&enrollment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Enrollment not found")
		}
		return response.InternalServerError(c, "Failed to update enrollment")
	}

	if err := services.CheckTransition(model.EntityEnrollment, enrollment.Status, status); err != nil {
		return response.FromAppError(c, err)
	}

	enrollment.Status = status
	if err := h.db.WithContext(ctx).Save(&enrollment).Error; err != nil {
		return response.InternalServerError(c, "Failed to update enrollment")
	}

	return response.SuccessWithMessage(c, "Status updated successfully", enrollment)
}
