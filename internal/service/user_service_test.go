package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"consite/internal/errors"
	"consite/internal/model"
)

func TestUserService_Register(t *testing.T) {
	tests := []struct {
		name         string
		input        RegisterInput
		setupMock    func(*MockUserRepository)
		expectedKind errors.Kind
		checkUser    func(*testing.T, *model.User)
	}{
		{
			name: "registers an inactive account by default",
			input: RegisterInput{
				FirstName:    "Amina",
				LastName:     "Khalil",
				Email:        "amina@example.com",
				MobileNumber: "0712345678",
				Password:     "password123",
				Role:         model.RoleSupplier,
			},
			setupMock: func(users *MockUserRepository) {
				users.On("FindByEmail", mock.Anything, "amina@example.com").Return(nil, gorm.ErrRecordNotFound)
				users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			checkUser: func(t *testing.T, user *model.User) {
				assert.False(t, user.IsActive)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
			},
		},
		{
			name: "explicit activation at registration",
			input: RegisterInput{
				Email:    "admin@example.com",
				Password: "password123",
				Role:     model.RoleAdmin,
				IsActive: boolPtr(true),
			},
			setupMock: func(users *MockUserRepository) {
				users.On("FindByEmail", mock.Anything, "admin@example.com").Return(nil, gorm.ErrRecordNotFound)
				users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			checkUser: func(t *testing.T, user *model.User) {
				assert.True(t, user.IsActive)
			},
		},
		{
			name: "unknown role",
			input: RegisterInput{
				Email:    "amina@example.com",
				Password: "password123",
				Role:     model.Role("INTERN"),
			},
			setupMock:    func(users *MockUserRepository) {},
			expectedKind: errors.KindBadRequest,
		},
		{
			name: "duplicate email",
			input: RegisterInput{
				Email:    "amina@example.com",
				Password: "password123",
				Role:     model.RoleSupplier,
			},
			setupMock: func(users *MockUserRepository) {
				users.On("FindByEmail", mock.Anything, "amina@example.com").
					Return(&model.User{ID: 1, Email: "amina@example.com"}, nil)
			},
			expectedKind: errors.KindConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			tt.setupMock(users)

			service := NewUserService(users)
			user, err := service.Register(context.Background(), tt.input)

			if tt.expectedKind != "" {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedKind, errors.KindOf(err))
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				tt.checkUser(t, user)
			}

			users.AssertExpectations(t)
		})
	}
}

func TestUserService_ActivateDeactivate(t *testing.T) {
	t.Run("activates an inactive account", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1}, nil)
		users.On("Save", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.IsActive
		})).Return(nil)

		service := NewUserService(users)
		assert.NoError(t, service.Activate(context.Background(), 1))
		users.AssertExpectations(t)
	})

	t.Run("activating twice conflicts", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, IsActive: true}, nil)

		service := NewUserService(users)
		err := service.Activate(context.Background(), 1)

		assert.Equal(t, errors.KindConflict, errors.KindOf(err))
	})

	t.Run("deactivates an active account", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, IsActive: true}, nil)
		users.On("Save", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return !u.IsActive
		})).Return(nil)

		service := NewUserService(users)
		assert.NoError(t, service.Deactivate(context.Background(), 1))
	})

	t.Run("deactivating twice conflicts", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1}, nil)

		service := NewUserService(users)
		err := service.Deactivate(context.Background(), 1)

		assert.Equal(t, errors.KindConflict, errors.KindOf(err))
	})
}

func TestUserService_ResetPassword(t *testing.T) {
	t.Run("replaces the hash", func(t *testing.T) {
		users := new(MockUserRepository)
		user := &model.User{ID: 1, Email: "amina@example.com", PasswordHash: "old-hash"}
		users.On("FindByEmail", mock.Anything, "amina@example.com").Return(user, nil)
		users.On("Save", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("new-password")) == nil
		})).Return(nil)

		service := NewUserService(users)
		assert.NoError(t, service.ResetPassword(context.Background(), "amina@example.com", "new-password"))
		users.AssertExpectations(t)
	})

	t.Run("unknown email", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

		service := NewUserService(users)
		err := service.ResetPassword(context.Background(), "nobody@example.com", "new-password")

		assert.Equal(t, errors.KindNotFound, errors.KindOf(err))
	})
}

func boolPtr(v bool) *bool { return &v }
