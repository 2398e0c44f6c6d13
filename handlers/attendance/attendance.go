package attendance

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/student-management-api/model"
	"github.com/sahilchouksey/student-management-api/utils/response"
	"github.com/sahilchouksey/student-management-api/utils/validation"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// AttendanceHandler handles attendance requests
type AttendanceHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(db *gorm.DB) *AttendanceHandler {
	return &AttendanceHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// MarkAttendanceRequest represents one attendance record
type MarkAttendanceRequest struct {
	StudentID uint   `json:"studentId" validate:"required"`
	CourseID  uint   `json:"courseId" validate:"required"`
	Date      string `json:"date" validate:"required"`
	Status    string `json:"status" validate:"required,oneof=present absent late"`
}

// Mark records attendance for one student in one course on one date. Marking
// the same slot twice is a conflict, enforced by the composite unique index.
func (h *AttendanceHandler) Mark(c *fiber.Ctx) error {
	var req MarkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return response.BadRequest(c, "date must be in YYYY-MM-DD format")
	}

	ctx := c.Context()

	var enrolled int64
	err = h.db.WithContext(ctx).Model(&model.Enrollment{}).
		Where("student_id = ? AND course_id = ? AND status = ?", req.StudentID, req.CourseID, model.EnrollmentEnrolled).
		Count(&enrolled).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to mark attendance")
	}
	if enrolled == 0 {
		return response.BadRequest(c, "Student is not enrolled in this course")
	}

	record := model.Attendance{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		Date:      date,
		Status:    strings.ToLower(req.Status),
	}

	if err := h.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return response.Conflict(c, "Attendance already marked for this date")
		}
		return response.InternalServerError(c, "Failed to mark attendance")
	}

	return response.Created(c, record)
}

// GetAll lists attendance; supports ?student=, ?course= and ?date= filters
func (h *AttendanceHandler) GetAll(c *fiber.Ctx) error {
	query := h.db.WithContext(c.Context()).Model(&model.Attendance{})

	if student := c.QueryInt("student"); student > 0 {
		query = query.Where("student_id = ?", student)
	}
	if course := c.QueryInt("course"); course > 0 {
		query = query.Where("course_id = ?", course)
	}
	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			return response.BadRequest(c, "date must be in YYYY-MM-DD format")
		}
		query = query.Where("date = ?", date)
	}

	var records []model.Attendance
	if err := query.Preload("Student").Preload("Course").Order("date DESC").Find(&records).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch attendance")
	}

	return response.Success(c, records)
}

// UpdateAttendanceRequest corrects a previously marked record
type UpdateAttendanceRequest struct {
	Status string `json:"status" validate:"required,oneof=present absent late"`
}

// Update corrects the status of an existing attendance record
func (h *AttendanceHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid attendance id")
	}

	var req UpdateAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	ctx := c.Context()

	var record model.Attendance
	if err := h.db.WithContext(ctx).First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Attendance record not found")
		}
		return response.InternalServerError(c, "Failed to update attendance")
	}

	record.Status = strings.ToLower(req.Status)
	if err := h.db.WithContext(ctx).Save(&record).Error; err != nil {
		return response.InternalServerError(c, "Failed to update attendance")
	}

	return response.SuccessWithMessage(c, "Attendance updated successfully", record)
}
