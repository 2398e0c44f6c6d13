package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/student-management-api/services"
	"github.com/sahilchouksey/student-management-api/utils/response"
	"github.com/sahilchouksey/student-management-api/utils/validation"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	authService *services.AuthService
	validator   *validation.Validator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validation.NewValidator(),
	}
}

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	Role         string `json:"role" validate:"required,oneof=admin student instructor"`
	StudentID    *uint  `json:"studentId,omitempty"`
	InstructorID *uint  `json:"instructorId,omitempty"`
}

// Register handles user registration
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	user, err := h.authService.Register(c.Context(), services.RegisterInput{
		Email:        req.Email,
		Password:     req.Password,
		Role:         req.Role,
		StudentID:    req.StudentID,
		InstructorID: req.InstructorID,
	})
	if err != nil {
		return response.FromAppError(c, err)
	}

	return response.Created(c, user)
}
