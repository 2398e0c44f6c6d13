package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sahilchouksey/student-management-api/model"
	"github.com/sahilchouksey/student-management-api/utils/apperror"
	"github.com/sahilchouksey/student-management-api/utils/auth"
	"github.com/sahilchouksey/student-management-api/utils/cache"
	"gorm.io/gorm"
)

// defaultStudentPassword is the initial credential password for admin-created
// students; students are expected to change it on first login.
const defaultStudentPassword = "Student@123"

// StudentService handles student CRUD, lifecycle and credential sync
type StudentService struct {
	db    *gorm.DB
	cache *cache.RedisCache
}

// NewStudentService creates a student service. cache may be nil.
func NewStudentService(db *gorm.DB, redisCache *cache.RedisCache) *StudentService {
	return &StudentService{db: db, cache: redisCache}
}

// CreateStudentInput carries a validated create request
type CreateStudentInput struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	DOB          *time.Time
	Gender       string
	Address      string
	DepartmentID uint
}

// Create inserts the student profile and its linked credential in one
// transaction; either both rows exist afterwards or neither does.
func (s *StudentService) Create(ctx context.Context, in CreateStudentInput) (*model.Student, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	hash, err := auth.HashPassword(defaultStudentPassword)
	if err != nil {
		return nil, err
	}

	student := model.Student{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        email,
		Phone:        in.Phone,
		DOB:          in.DOB,
		Gender:       in.Gender,
		Address:      in.Address,
		DepartmentID: in.DepartmentID,
		Status:       model.StudentActive,
		IsActive:     true,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var department model.Department
		if err := tx.Where("id = ? AND is_active = ?", in.DepartmentID, true).First(&department).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("Department not found")
			}
			return err
		}

		if err := tx.Create(&student).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperror.Conflict("Student with this email already exists")
			}
			return err
		}

		user := model.User{
			Email:        email,
			PasswordHash: hash,
			Role:         model.RoleStudent,
			IsActive:     true,
			StudentID:    &student.ID,
		}
		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperror.Conflict("Email already in use")
			}
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, 0)
	return &student, nil
}

// StudentFilter narrows GetAll results
type StudentFilter struct {
	Status       string
	DepartmentID uint
}

// GetAll lists active students with optional filters, cached per filter
func (s *StudentService) GetAll(ctx context.Context, filter StudentFilter) ([]model.Student, error) {
	filter.Status = strings.ToLower(filter.Status)
	cacheKey := fmt.Sprintf("students:list:%s:%d", filter.Status, filter.DepartmentID)

	var students []model.Student
	if s.cache != nil {
		if err := s.cache.GetJSON(ctx, cacheKey, &students); err == nil {
			return students, nil
		}
	}

	query := s.db.WithContext(ctx).Where("is_active = ?", true)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.DepartmentID != 0 {
		query = query.Where("department_id = ?", filter.DepartmentID)
	}

	err := query.Preload("Department").Order("created_at DESC").Find(&students).Error
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, cacheKey, students, listCacheTTL)
	}

	return students, nil
}

// GetByID fetches one student by id, soft-deleted records included. Soft delete
// is non-destructive: a direct lookup still returns the row.
func (s *StudentService) GetByID(ctx context.Context, id uint) (*model.Student, error) {
	cacheKey := fmt.Sprintf("students:detail:%d", id)

	var student model.Student
	if s.cache != nil {
		if err := s.cache.GetJSON(ctx, cacheKey, &student); err == nil {
			return &student, nil
		}
	}

	err := s.db.WithContext(ctx).Preload("Department").First(&student, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Student not found")
		}
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, cacheKey, student, listCacheTTL)
	}

	return &student, nil
}

// UpdateStudentInput carries a validated update request; nil fields are untouched
type UpdateStudentInput struct {
	FirstName    *string
	LastName     *string
	Email        *string
	Phone        *string
	Address      *string
	DepartmentID *uint
}

// Update mutates profile fields. An email change propagates to the linked
// credential inside the same transaction.
func (s *StudentService) Update(ctx context.Context, id uint, in UpdateStudentInput) (*model.Student, error) {
	var student model.Student

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&student, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("Student not found")
			}
			return err
		}

		if in.Email != nil {
			email := strings.ToLower(strings.TrimSpace(*in.Email))
			if email != student.Email {
				var count int64
				if err := tx.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
					return err
				}
				if count > 0 {
					return apperror.Conflict("Email already in use")
				}

				if err := tx.Model(&model.User{}).
					Where("student_id = ?", student.ID).
					Update("email", email).Error; err != nil {
					return err
				}
				student.Email = email
			}
		}

		if in.FirstName != nil {
			student.FirstName = *in.FirstName
		}
		if in.LastName != nil {
			student.LastName = *in.LastName
		}
		if in.Phone != nil {
			student.Phone = *in.Phone
		}
		if in.Address != nil {
			student.Address = *in.Address
		}
		if in.DepartmentID != nil {
			student.DepartmentID = *in.DepartmentID
		}

		if err := tx.Save(&student).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperror.Conflict("Email already in use")
			}
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return &student, nil
}

// SoftDelete marks the student inactive, forces status to suspended and
// deactivates the linked credential, all in one transaction.
func (s *StudentService) SoftDelete(ctx context.Context, id uint) (*model.Student, error) {
	var student model.Student

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&student, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("Student not found")
			}
			return err
		}

		student.IsActive = false
		student.Status = model.StudentSuspended
		if err := tx.Save(&student).Error; err != nil {
			return err
		}

		return tx.Model(&model.User{}).
			Where("student_id = ?", student.ID).
			Update("is_active", false).Error
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return &student, nil
}

// ChangeStatus applies the student transition table and syncs the linked
// credential's active flag from the status→access table.
func (s *StudentService) ChangeStatus(ctx context.Context, id uint, status string) (*model.Student, error) {
	status = strings.ToLower(status)

	var student model.Student
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&student, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("Student not found")
			}
			return err
		}

		if err := CheckTransition(model.EntityStudent, student.Status, status); err != nil {
			return err
		}

		student.Status = status
		if err := tx.Save(&student).Error; err != nil {
			return err
		}

		return tx.Model(&model.User{}).
			Where("student_id = ?", student.ID).
			Update("is_active", AccessForStatus(model.EntityStudent, status)).Error
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return &student, nil
}

// Courses returns the student's enrollments with their courses
func (s *StudentService) Courses(ctx context.Context, id uint) ([]model.Enrollment, error) {
	if err := s.mustExist(ctx, id); err != nil {
		return nil, err
	}

	var enrollments []model.Enrollment
	err := s.db.WithContext(ctx).
		Where("student_id = ?", id).
		Preload("Course").
		Find(&enrollments).Error
	return enrollments, err
}

// Payments returns the student's payment history
func (s *StudentService) Payments(ctx context.Context, id uint) ([]model.Payment, error) {
	if err := s.mustExist(ctx, id); err != nil {
		return nil, err
	}

	var payments []model.Payment
	err := s.db.WithContext(ctx).
		Where("student_id = ?", id).
		Order("payment_date DESC").
		Find(&payments).Error
	return payments, err
}

// Attendance returns the student's attendance records
func (s *StudentService) Attendance(ctx context.Context, id uint) ([]model.Attendance, error) {
	if err := s.mustExist(ctx, id); err != nil {
		return nil, err
	}

	var records []model.Attendance
	err := s.db.WithContext(ctx).
		Where("student_id = ?", id).
		Preload("Course").
		Order("date DESC").
		Find(&records).Error
	return records, err
}

func (s *StudentService) mustExist(ctx context.Context, id uint) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Student{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperror.NotFound("Student not found")
	}
	return nil
}

func (s *StudentService) invalidate(ctx context.Context, id uint) {
	if s.cache == nil {
		return
	}
	if id != 0 {
		_ = s.cache.Delete(ctx, fmt.Sprintf("students:detail:%d", id))
	}
	keys, err := s.cache.Keys(ctx, "students:list:*")
	if err == nil && len(keys) > 0 {
		_ = s.cache.Delete(ctx, keys...)
	}
}
