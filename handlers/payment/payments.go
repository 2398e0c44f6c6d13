package payment

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

// PaymentHandler handles payment requests
type PaymentHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(db *gorm.DB) *PaymentHandler {
	return &PaymentHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreatePaymentRequest represents a payment creation request
type CreatePaymentRequest struct {
	StudentID   uint    `json:"studentId" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Method      string  `json:"method" validate:"required,oneof=online cash bank"`
	Description string  `json:"description" validate:"omitempty,max=255"`
}

// Create records a pending payment for a student
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	var req CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	ctx := c.Context()

	var student model.Student
	if err := h.db.WithContext(ctx).First(&student, req.StudentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Student not found")
		}
		return response.InternalServerError(c, "Failed to create payment")
	}

	payment := model.Payment{
		StudentID:   req.StudentID,
		Amount:      req.Amount,
		Method:      req.Method,
		Description: req.Description,
		Status:      model.PaymentPending,
	}

	if err := h.db.WithContext(ctx).Create(&payment).Error; err != nil {
		return response.InternalServerError(c, "Failed to create payment")
	}

	return response.Created(c, payment)
}

// GetAll lists payments; supports ?student= and ?status= filters
func (h *PaymentHandler) GetAll(c *fiber.Ctx) error {
	query := h.db.WithContext(c.Context()).Model(&model.Payment{})

	if student := c.QueryInt("student"); student > 0 {
		query = query.Where("student_id = ?", student)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", strings.ToLower(status))
	}

	var payments []model.Payment
	if err := query.Preload("Student").Order("payment_date DESC").Find(&payments).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch payments")
	}

	return response.Success(c, payments)
}

// GetByID fetches one payment
func (h *PaymentHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid payment id")
	}

	var payment model.Payment
	err = h.db.WithContext(c.Context()).Preload("Student").First(&payment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Payment not found")
		}
		return response.InternalServerError(c, "Failed to fetch payment")
	}

	return response.Success(c, payment)
}

// ChangeStatusRequest represents a status change request
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ChangeStatus applies the payment status transition table. A failed payment
// may go back to pending for retry; a paid one is final.
func (h *PaymentHandler) ChangeStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid payment id")
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

	var payment model.Payment
	if err := h.db.WithContext(ctx).First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Payment not found")
		}
		return response.InternalServerError(c, "Failed to update payment")
	}

	if err := services.CheckTransition(model.EntityPayment, payment.Status, status); err != nil {
		return response.FromAppError(c, err)
	}

	payment.Status = status
	if err := h.db.WithContext(ctx).Save(&payment).Error; err != nil {
		return response.InternalServerError(c, "Failed to update payment")
	}

	return response.SuccessWithMessage(c, "Status updated successfully", payment)
}
