package repository

import (
	"context"

	"gorm.io/gorm"

	"consite/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Save(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindAll(ctx context.Context, offset, limit int) ([]model.User, int64, error)
	FindBySite(ctx context.Context, siteID uint, offset, limit int) ([]model.User, error)
	FindActiveBySiteAndRole(ctx context.Context, siteID uint, role model.Role) ([]model.User, error)
	DetachAllFromSite(ctx context.Context, siteID uint) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// Save persists an existing user.
func (r *userRepository) Save(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// FindByID finds a user by ID.
func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindAll lists users with offset pagination, returning the total row count.
func (r *userRepository) FindAll(ctx context.Context, offset, limit int) ([]model.User, int64, error) {
	var users []model.User
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := r.db.WithContext(ctx).Offset(offset).Limit(limit).Order("id").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// FindBySite lists users allocated to a site.
func (r *userRepository) FindBySite(ctx context.Context, siteID uint, offset, limit int) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Where("site_id = ?", siteID).
		Offset(offset).Limit(limit).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindActiveBySiteAndRole lists active users of a role allocated to a site.
func (r *userRepository) FindActiveBySiteAndRole(ctx context.Context, siteID uint, role model.Role) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).
		Where("site_id = ? AND role = ? AND is_active = ?", siteID, role, true).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// DetachAllFromSite clears the site reference for every user on the site.
func (r *userRepository) DetachAllFromSite(ctx context.Context, siteID uint) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("site_id = ?", siteID).
		Update("site_id", nil).Error
}
