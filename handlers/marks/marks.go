package marks

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

// MarkHandler handles exam mark requests
type MarkHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewMarkHandler creates a new mark handler
func NewMarkHandler(db *gorm.DB) *MarkHandler {
	return &MarkHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// RecordMarkRequest represents one exam score
type RecordMarkRequest struct {
	StudentID uint    `json:"studentId" validate:"required"`
	CourseID  uint    `json:"courseId" validate:"required"`
	ExamType  string  `json:"examType" validate:"required,oneof=mid final assignment quiz"`
	Score     float64 `json:"score" validate:"gte=0"`
	MaxScore  float64 `json:"maxScore" validate:"required,gt=0"`
	ExamDate  string  `json:"examDate" validate:"required"`
}

// Record stores an exam score for an enrolled student
func (h *MarkHandler) Record(c *fiber.Ctx) error {
	var req RecordMarkRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	if req.Score > req.MaxScore {
		return response.BadRequest(c, "score cannot exceed maxScore")
	}

	examDate, err := time.Parse(dateLayout, req.ExamDate)
	if err != nil {
		return response.BadRequest(c, "examDate must be in YYYY-MM-DD format")
	}

	ctx := c.Context()

	var enrolled int64
	err = h.db.WithContext(ctx).Model(&model.Enrollment{}).
		Where("student_id = ? AND course_id = ?", req.StudentID, req.CourseID).
		Count(&enrolled).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to record mark")
	}
	if enrolled == 0 {
		return response.BadRequest(c, "Student is not enrolled in this course")
	}

	mark := model.Mark{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		ExamType:  strings.ToLower(req.ExamType),
		Score:     req.Score,
		MaxScore:  req.MaxScore,
		ExamDate:  examDate,
	}

	if err := h.db.WithContext(ctx).Create(&mark).Error; err != nil {
		return response.InternalServerError(c, "Failed to record mark")
	}

	return response.Created(c, mark)
}

// GetAll lists marks; supports ?student=, ?course= and ?examType= filters
func (h *MarkHandler) GetAll(c *fiber.Ctx) error {
	query := h.db.WithContext(c.Context()).Model(&model.Mark{})

	if student := c.QueryInt("student"); student > 0 {
		query = query.Where("student_id = ?", student)
	}
	if course := c.QueryInt("course"); course > 0 {
		query = query.Where("course_id = ?", course)
	}
	if examType := c.Query("examType"); examType != "" {
		query = query.Where("exam_type = ?", strings.ToLower(examType))
	}

	var marks []model.Mark
	if err := query.Preload("Student").Preload("Course").Order("exam_date DESC").Find(&marks).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch marks")
	}

	return response.Success(c, marks)
}

// UpdateMarkRequest corrects a previously recorded score
type UpdateMarkRequest struct {
	Score    *float64 `json:"score" validate:"omitempty,gte=0"`
	MaxScore *float64 `json:"maxScore" validate:"omitempty,gt=0"`
}

// Update corrects a recorded mark
func (h *MarkHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid mark id")
	}

	var req UpdateMarkRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	ctx := c.Context()

	var mark model.Mark
	if err := h.db.WithContext(ctx).First(&mark, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Mark not found")
		}
		return response.InternalServerError(c, "Failed to update mark")
	}

	if req.Score != nil {
		mark.Score = *req.Score
	}
	if req.MaxScore != nil {
		mark.MaxScore = *req.MaxScore
	}
	if mark.Score > mark.MaxScore {
		return response.BadRequest(c, "score cannot exceed maxScore")
	}

	if err := h.db.WithContext(ctx).Save(&mark).Error; err != nil {
		return response.InternalServerError(c, "Failed to update mark")
	}

	return response.SuccessWithMessage(c, "Mark updated successfully", mark)
}
