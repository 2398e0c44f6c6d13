package model

import (
	"time"
)

// Payment methods
const (
	PaymentMethodOnline = "online"
	PaymentMethodCash   = "cash"
	PaymentMethodBank   = "bank"
)

// Payment is one fee payment by a student.
type Payment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	StudentID   uint      `gorm:"not null;index" json:"student_id"`
	Amount      float64   `gorm:"not null" json:"amount"`
	PaymentDate time.Time `gorm:"autoCreateTime" json:"payment_date"`
	Method      string    `gorm:"type:varchar(10);not null" json:"method"`
	Description string    `json:"description,omitempty"`
	Status      string    `gorm:"type:varchar(20);default:'pending'" json:"status"`

	// Relationships
	Student Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

// ValidPaymentMethod reports whether method is a known payment method
func ValidPaymentMethod(method string) bool {
	return method == PaymentMethodOnline || method == PaymentMethodCash || method == PaymentMethodBank
}
