package course

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/student-management-api/model"
	"github.com/sahilchouksey/student-management-api/utils/response"
	"github.com/sahilchouksey/student-management-api/utils/validation"
	"gorm.io/gorm"
)

// CourseHandler handles course requests
type CourseHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(db *gorm.DB) *CourseHandler {
	return &CourseHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateCourseRequest represents a course creation request
type CreateCourseRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	Code         string `json:"code" validate:"required,min=2,max=20"`
	Description  string `json:"description" validate:"omitempty,max=1000"`
	Credits      int    `json:"credits" validate:"required,gte=1"`
	Semester     string `json:"semester" validate:"required"`
	DepartmentID uint   `json:"departmentId" validate:"required"`
	InstructorID uint   `json:"instructorId" validate:"required"`
}

// Create handles course creation. The code is stored uppercased; a duplicate
// code is a conflict, not a validation error.
func (h *CourseHandler) Create(c *fiber.Ctx) error {
	var req CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	ctx := c.Context()

	var department model.Department
	if err := h.db.WithContext(ctx).Where("id = ? AND is_active = ?", req.DepartmentID, true).First(&department).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Department not found")
		}
		return response.InternalServerError(c, "Failed to create course")
	}

	var instructor model.Instructor
	if err := h.db.WithContext(ctx).Where("id = ? AND is_active = ?", req.InstructorID, true).First(&instructor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Instructor not found")
		}
		return response.InternalServerError(c, "Failed to create course")
	}

	course := model.Course{
		Name:         req.Name,
		Code:         strings.ToUpper(strings.TrimSpace(req.Code)),
		Description:  req.Description,
		Credits:      req.Credits,
		Semester:     req.Semester,
		DepartmentID: req.DepartmentID,
		InstructorID: req.InstructorID,
	}

	if err := h.db.WithContext(ctx).Create(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return response.Conflict(c, "Course code already exists")
		}
		return response.InternalServerError(c, "Failed to create course")
	}

	return response.Created(c, course)
}

// GetAll lists courses; supports ?department= and ?semester= filters
func (h *CourseHandler) GetAll(c *fiber.Ctx) error {
	query := h.db.WithContext(c.Context()).Model(&model.Course{})

	if dept := c.QueryInt("department"); dept > 0 {
		query = query.Where("department_id = ?", dept)
	}
	if semester := c.Query("semester"); semester != "" {
		query = query.Where("semester = ?", semester)
	}

	var courses []model.Course
	if err := query.Preload("Department").Preload("Instructor").Order("code").Find(&courses).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch courses")
	}

	return response.Success(c, courses)
}

// GetByID fetches one course with its schedules
func (h *CourseHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid course id")
	}

	var course model.Course
	err = h.db.WithContext(c.Context()).
		Preload("Department").
		Preload("Instructor").
		Preload("Schedules").
		First(&course, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	return response.Success(c, course)
}

// UpdateCourseRequest represents a course update request
type UpdateCourseRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=2,max=100"`
	Description  *string `json:"description" validate:"omitempty,max=1000"`
	Credits      *int    `json:"credits" validate:"omitempty,gte=1"`
	Semester     *string `json:"semester"`
	InstructorID *uint   `json:"instructorId"`
}

// Update handles course updates. The code is immutable once assigned.
func (h *CourseHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid course id")
	}

	var req UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	ctx := c.Context()

	var course model.Course
	if err := h.db.WithContext(ctx).First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to update course")
	}

	if req.Name != nil {
		course.Name = *req.Name
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Credits != nil {
		course.Credits = *req.Credits
	}
	if req.Semester != nil {
		course.Semester = *req.Semester
	}
	if req.InstructorID != nil {
		var instructor model.Instructor
		if err := h.db.WithContext(ctx).Where("id = ? AND is_active = ?", *req.InstructorID, true).First(&instructor).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NotFound(c, "Instructor not found")
			}
			return response.InternalServerError(c, "Failed to update course")
		}
		course.InstructorID = *req.InstructorID
	}

	if err := h.db.WithContext(ctx).Save(&course).Error; err != nil {
		return response.InternalServerError(c, "Failed to update course")
	}

	return response.SuccessWithMessage(c, "Course updated successfully", course)
}

// Delete removes a course. Enrollments and schedules go with it via the
// cascade constraint.
func (h *CourseHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid course id")
	}

	result := h.db.WithContext(c.Context()).Delete(&model.Course{}, id)
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to delete course")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Course not found")
	}

	return response.SuccessWithMessage(c, "Course deleted successfully", nil)
}

// CreateScheduleRequest represents a weekly class slot
type CreateScheduleRequest struct {
	DayOfWeek string `json:"dayOfWeek" validate:"required,oneof=Mon Tue Wed Thu Fri Sat"`
	StartTime string `json:"startTime" validate:"required,len=5"`
	EndTime   string `json:"endTime" validate:"required,len=5"`
	Room      string `json:"room" validate:"omitempty,max=50"`
}

// AddSchedule attaches a weekly time slot to a course
func (h *CourseHandler) AddSchedule(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid course id")
	}

	var req CreateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	if req.StartTime >= req.EndTime {
		return response.BadRequest(c, "startTime must be before endTime")
	}

	ctx := c.Context()

	var course model.Course
	if err := h.db.WithContext(ctx).First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to add schedule")
	}

	schedule := model.ClassSchedule{
		CourseID:     course.ID,
		InstructorID: course.InstructorID,
		DayOfWeek:    req.DayOfWeek,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Room:         req.Room,
	}

	if err := h.db.WithContext(ctx).Create(&schedule).Error; err != nil {
		return response.InternalServerError(c, "Failed to add schedule")
	}

	return response.Created(c, schedule)
}

// Schedules lists a course's weekly time slots
func (h *CourseHandler) Schedules(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid course id")
	}

	var schedules []model.ClassSchedule
	err = h.db.WithContext(c.Context()).
		Where("course_id = ?", id).
		Order("day_of_week, start_time").
		Find(&schedules).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch schedules")
	}

	return response.Success(c, schedules)
}
