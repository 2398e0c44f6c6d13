package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sahilchouksey/student-management-api/model"
	"github.com/sahilchouksey/student-management-api/utils/apperror"
	"github.com/sahilchouksey/student-management-api/utils/cache"
	"gorm.io/gorm"
)

const listCacheTTL = 5 * time.Minute

// DepartmentService handles department CRUD and lifecycle
type DepartmentService struct {
	db    *gorm.DB
	cache *cache.RedisCache
}

// NewDepartmentService creates a department service. cache may be nil;
// caching is a best-effort side read, never a correctness dependency.
func NewDepartmentService(db *gorm.DB, redisCache *cache.RedisCache) *DepartmentService {
	return &DepartmentService{db: db, cache: redisCache}
}

// CreateDepartmentInput carries a validated create request
type CreateDepartmentInput struct {
	Name     string
	Building string
}

// Create inserts a department. Name uniqueness is case-insensitive: the
// lowercased NameKey carries the unique index.
func (s *DepartmentService) Create(ctx context.Context, in CreateDepartmentInput) (*model.Department, error) {
	department := model.Department{
		Name:     strings.TrimSpace(in.Name),
		NameKey:  strings.ToLower(strings.TrimSpace(in.Name)),
		Building: in.Building,
		Status:   model.DepartmentActive,
		IsActive: true,
	}

	if err := s.db.WithContext(ctx).Create(&department).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("Department already exists")
		}
		return nil, err
	}

	s.invalidate(ctx, 0)
	return &department, nil
}

// GetAll lists active departments, cached for five minutes
func (s *DepartmentService) GetAll(ctx context.Context) ([]model.Department, error) {
	const cacheKey = "departments:list"

	var departments []model.Department
	if s.cache != nil {
		if err := s.cache.GetJSON(ctx, cacheKey, &departments); err == nil {
			return departments, nil
		}
	}

	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Preload("HeadOfDepartment").
		Order("created_at DESC").
		Find(&departments).Error
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, cacheKey, departments, listCacheTTL)
	}

	return departments, nil
}

// GetByID fetches one active department, cached
func (s *DepartmentService) GetByID(ctx context.Context, id uint) (*model.Department, error) {
	cacheKey := fmt.Sprintf("departments:%d", id)

	var department model.Department
	if s.cache != nil {
		if err := s.cache.GetJSON(ctx, cacheKey, &department); err == nil {
			return &department, nil
		}
	}

	err := s.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		Preload("HeadOfDepartment").
		First(&department).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Department not found")
		}
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, cacheKey, department, listCacheTTL)
	}

	return &department, nil
}

// UpdateDepartmentInput carries a validated update request; nil fields are untouched
type UpdateDepartmentInput struct {
	Name     *string
	Building *string
}

// Update mutates name/building. A name change re-checks case-insensitive uniqueness.
func (s *DepartmentService) Update(ctx context.Context, id uint, in UpdateDepartmentInput) (*model.Department, error) {
	var department model.Department
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&department).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Department not found")
		}
		return nil, err
	}

	if in.Name != nil {
		department.Name = strings.TrimSpace(*in.Name)
		department.NameKey = strings.ToLower(department.Name)
	}
	if in.Building != nil {
		department.Building = *in.Building
	}

	if err := s.db.WithContext(ctx).Save(&department).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("Department name already exists")
		}
		return nil, err
	}

	s.invalidate(ctx, id)
	return &department, nil
}

// SoftDelete marks the department inactive; the record stays queryable by id
// through direct lookups that opt out of the active filter.
func (s *DepartmentService) SoftDelete(ctx context.Context, id uint) (*model.Department, error) {
	var department model.Department
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&department).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Department not found")
		}
		return nil, err
	}

	department.IsActive = false
	if err := s.db.WithContext(ctx).Save(&department).Error; err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return &department, nil
}

// ChangeStatus applies the department transition table
func (s *DepartmentService) ChangeStatus(ctx context.Context, id uint, status string) (*model.Department, error) {
	status = strings.ToLower(status)

	var department model.Department
	err := s.db.WithContext(ctx).First(&department, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Department not found")
		}
		return nil, err
	}

	if err := CheckTransition(model.EntityDepartment, department.Status, status); err != nil {
		return nil, err
	}

	department.Status = status
	if err := s.db.WithContext(ctx).Save(&department).Error; err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return &department, nil
}

// AssignHead sets the head-of-department instructor
func (s *DepartmentService) AssignHead(ctx context.Context, id, instructorID uint) (*model.Department, error) {
	var department model.Department
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&department).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Department not found")
		}
		return nil, err
	}

	var instructor model.Instructor
	if err := s.db.WithContext(ctx).First(&instructor, instructorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Instructor not found")
		}
		return nil, err
	}

	department.HeadOfDepartmentID = &instructor.ID
	if err := s.db.WithContext(ctx).Save(&department).Error; err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return &department, nil
}

func (s *DepartmentService) invalidate(ctx context.Context, id uint) {
	if s.cache == nil {
		return
	}
	keys := []string{"departments:list"}
	if id != 0 {
		keys = append(keys, fmt.Sprintf("departments:%d", id))
	}
	_ = s.cache.Delete(ctx, keys...)
}
