package notification

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/student-management-api/model"
	"github.com/sahilchouksey/student-management-api/utils/middleware"
	"github.com/sahilchouksey/student-management-api/utils/response"
	"github.com/sahilchouksey/student-management-api/utils/validation"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NotificationHandler handles in-app notification requests
type NotificationHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateNotificationRequest represents an admin-sent notification
type CreateNotificationRequest struct {
	UserID  uint           `json:"userId" validate:"required"`
	Title   string         `json:"title" validate:"required,max=200"`
	Message string         `json:"message" validate:"required"`
	Data    datatypes.JSON `json:"data"`
}

// Create sends a notification to one user
func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	var req CreateNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	ctx := c.Context()

	var user model.User
	if err := h.db.WithContext(ctx).First(&user, req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to create notification")
	}

	notification := model.Notification{
		UserID:  req.UserID,
		Title:   req.Title,
		Message: req.Message,
		Data:    req.Data,
	}

	if err := h.db.WithContext(ctx).Create(&notification).Error; err != nil {
		return response.InternalServerError(c, "Failed to create notification")
	}

	return response.Created(c, notification)
}

// List returns the caller's notifications, newest first. ?unread=true narrows
// to unread ones.
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Missing authorization token")
	}

	query := h.db.WithContext(c.Context()).Where("user_id = ?", userID)
	if c.Query("unread") == "true" {
		query = query.Where("read_at IS NULL")
	}

	var notifications []model.Notification
	if err := query.Order("created_at DESC").Limit(100).Find(&notifications).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch notifications")
	}

	return response.Success(c, notifications)
}

// MarkRead marks one of the caller's notifications as read. Re-marking an
// already read notification is a no-op.
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Missing authorization token")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid notification id")
	}

	ctx := c.Context()

	var notification model.Notification
	err = h.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Notification not found")
		}
		return response.InternalServerError(c, "Failed to update notification")
	}

	if notification.ReadAt == nil {
		now := time.Now()
		notification.ReadAt = &now
		if err := h.db.WithContext(ctx).Save(&notification).Error; err != nil {
			return response.InternalServerError(c, "Failed to update notification")
		}
	}

	return response.SuccessWithMessage(c, "Notification marked as read", notification)
}
