package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"consite/internal/errors"
	"consite/internal/model"
	"consite/internal/repository"
)

// RegisterInput carries the fields for a new account registration.
type RegisterInput struct {
	FirstName    string
	LastName     string
	Email        string
	MobileNumber string
	Password     string
	Role         model.Role
	IsActive     *bool
}

// UserService handles account management operations.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, error)
	GetAll(ctx context.Context, page, size int) ([]model.User, int64, error)
	Activate(ctx context.Context, userID uint) error
	Deactivate(ctx context.Context, userID uint) error
	ResetPassword(ctx context.Context, email, password string) error
}

type userService struct {
	users repository.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

// Register creates a new account with a hashed password. Accounts start
// inactive unless explicitly activated at registration.
func (s *userService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if !input.Role.Valid() {
		return nil, errors.BadRequest("not a valid user role")
	}

	existing, err := s.users.FindByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return nil, errors.Conflict("email already exists")
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, errors.Internal("failed to check account existence")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, errors.Internal("failed to hash password")
	}

	user := &model.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		MobileNumber: input.MobileNumber,
		PasswordHash: string(hashedPassword),
		Role:         input.Role,
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, errors.Internal("failed to register the user")
	}

	return user, nil
}

// GetAll lists users with offset pagination.
func (s *userService) GetAll(ctx context.Context, page, size int) ([]model.User, int64, error) {
	users, total, err := s.users.FindAll(ctx, page*size, size)
	if err != nil {
		return nil, 0, errors.Internal("failed to list users")
	}
	if len(users) == 0 {
		return nil, 0, errors.NotFound("no users have been found in the system")
	}
	return users, total, nil
}

// Activate enables a deactivated account.
func (s *userService) Activate(ctx context.Context, userID uint) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return errors.NotFound("invalid user id")
	}

	if user.IsActive {
		return errors.Conflict("user is already activated")
	}

	user.IsActive = true
	if err := s.users.Save(ctx, user); err != nil {
		return errors.Internal("failed to activate the user")
	}
	return nil
}

// Deactivate disables an active account; the user can no longer authenticate.
func (s *userService) Deactivate(ctx context.Context, userID uint) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return errors.NotFound("invalid user id")
	}

	if !user.IsActive {
		return errors.Conflict("user is already deactivated")
	}

	user.IsActive = false
	if err := s.users.Save(ctx, user); err != nil {
		return errors.Internal("failed to deactivate the user")
	}
	return nil
}

// ResetPassword replaces the password hash for the account with this email.
func (s *userService) ResetPassword(ctx context.Context, email, password string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return errors.NotFound("provided email address is invalid")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return errors.Internal("failed to hash password")
	}

	user.PasswordHash = string(hashedPassword)
	if err := s.users.Save(ctx, user); err != nil {
		return errors.Internal("failed to reset the password")
	}
	return nil
}
