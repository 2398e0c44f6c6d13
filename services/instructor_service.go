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

const defaultInstructorPassword = "Instructor@123"

// InstructorService handles instructor CRUD, lifecycle and credential sync
type InstructorService struct {
	db    *gorm.DB
	cache *cache.RedisCache
}

// NewInstructorService creates an instructor service. cache may be nil.
func NewInstructorService(db *gorm.DB, redisCache *cache.RedisCache) *InstructorService {
	return &InstructorService{db: db, cache: redisCache}
}

// CreateInstructorInput carries a validated create request
type CreateInstructorInput struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	DOB          *time.Time
	Gender       string
	Address      string
	DepartmentID uint
}

// Create inserts the instructor profile and its linked credential transactionally
func (s *InstructorService) Create(ctx context.Context, in CreateInstructorInput) (*model.Instructor, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	hash, err := auth.HashPassword(defaultInstructorPassword)
	if err != nil {
		return nil, err
	}

	instructor := model.Instructor{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        email,
		Phone:        in.Phone,
		DOB:          in.DOB,
		Gender:       in.Gender,
		Address:      in.Address,
		DepartmentID: in.DepartmentID,
		Status:       model.InstructorActive,
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

		if err := tx.Create(&instructor).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperror.Conflict("Instructor with this email already exists")
			}
			return err
		}

		user := model.User{
			Email:        email,
			PasswordHash: hash,
			Role:         model.RoleInstructor,
			IsActive:     true,
			InstructorID: &instructor.ID,
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

	s.invalidate(ctx)
	return &instructor, nil
}

// InstructorFilter narrows GetAll results
type InstructorFilter struct {
	Status       string
	DepartmentID uint
}

// GetAll lists active instructors with optional filters, cached per filter
func (s *InstructorService) GetAll(ctx context.Context, filter InstructorFilter) ([]model.Instructor, error) {
	filter.Status = strings.ToLower(filter.Status)
	cacheKey := fmt.Sprintf("instructors:list:%s:%d", filter.Status, filter.DepartmentID)

	var instructors []model.Instructor
	if s.cache != nil {
		if err := s.cache.GetJSON(ctx, cacheKey, &instructors); err == nil {
			return instructors, nil
		}
	}

	query := s.db.WithContext(ctx).Where("is_active = ?", true)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.DepartmentID != 0 {
		query = query.Where("department_id = ?", filter.DepartmentID)
	}

	err := query.Preload("Department").Order("created_at DESC").Find(&instructors).Error
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, cacheKey, instructors, listCacheTTL)
	}

	return instructors, nil
}

// GetByID fetches one instructor by id, soft-deleted records included
func (s *InstructorService) GetByID(ctx context.Context, id uint) (*model.Instructor, error) {
	var instructor model.Instructor
	err := s.db.WithContext(ctx).Preload("Department").First(&instructor, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Instructor not found")
		}
		return nil, err
	}
	return &instructor, nil
}

// UpdateInstructorInput carries a validated update request; nil fields are untouched
type UpdateInstructorInput struct {
	FirstName    *string
	LastName     *string
	Email        *string
	Phone        *string
	Address      *string
	DepartmentID *uint
}

// Update mutates profile fields; an email change propagates to the credential
func (s *InstructorService) Update(ctx context.Context, id uint, in UpdateInstructorInput) (*model.Instructor, error) {
	var instructor model.Instructor

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&instructor, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("Instructor not found")
			}
			return err
		}

		if in.Email != nil {
			email := strings.ToLower(strings.TrimSpace(*in.Email))
			if email != instructor.Email {
				var count int64
				if err := tx.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
					return err
				}
				if count > 0 {
					return apperror.Conflict("Email already in use")
				}

				if err := tx.Model(&model.User{}).
					Where("instructor_id = ?", instructor.ID).
					Update("email", email).Error; err != nil {
					return err
				}
				instructor.Email = email
			}
		}

		if in.FirstName != nil {
			instructor.FirstName = *in.FirstName
		}
		if in.LastName != nil {
			instructor.LastName = *in.LastName
		}
		if in.Phone != nil {
			instructor.Phone = *in.Phone
		}
		if in.Address != nil {
			instructor.Address = *in.Address
		}
		if in.DepartmentID != nil {
			instructor.DepartmentID = *in.DepartmentID
		}

		if err := tx.Save(&instructor).Error; err != nil {
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

	s.invalidate(ctx)
	return &instructor, nil
}

// SoftDelete marks the instructor inactive and deactivates the credential
func (s *InstructorService) SoftDelete(ctx context.Context, id uint) (*model.Instructor, error) {
	var instructor model.Instructor

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&instructor, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("Instructor not found")
			}
			return err
		}

		instructor.IsActive = false
		if err := tx.Save(&instructor).Error; err != nil {
			return err
		}

		return tx.Model(&model.User{}).
			Where("instructor_id = ?", instructor.ID).
			Update("is_active", false).Error
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return &instructor, nil
}

// ChangeStatus applies the instructor transition table and syncs credential access
func (s *InstructorService) ChangeStatus(ctx context.Context, id uint, status string) (*model.Instructor, error) {
	status = strings.ToLower(status)

	var instructor model.Instructor
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&instructor, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("Instructor not found")
			}
			return err
		}

		if err := CheckTransition(model.EntityInstructor, instructor.Status, status); err != nil {
			return err
		}

		instructor.Status = status
		if err := tx.Save(&instructor).Error; err != nil {
			return err
		}

		return tx.Model(&model.User{}).
			Where("instructor_id = ?", instructor.ID).
			Update("is_active", AccessForStatus(model.EntityInstructor, status)).Error
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return &instructor, nil
}

func (s *InstructorService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	keys, err := s.cache.Keys(ctx, "instructors:list:*")
	if err == nil && len(keys) > 0 {
		_ = s.cache.Delete(ctx, keys...)
	}
}
