package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"consite/internal/auth"
	"consite/internal/errors"
	"consite/internal/model"
	"consite/internal/repository"
)

func newAuthFixture(users *MockUserRepository, sessions *MockSessionRepository, tokenStore *MockTokenStore) AuthService {
	tx := &stubTxManager{reg: repository.Registry{Users: users, Sessions: sessions}}
	return NewAuthService(users, sessions, tx, auth.NewJWTService("test-secret"), tokenStore)
}

func activeUser(email, password string) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), 10)
	return &model.User{
		ID:           7,
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleSiteManager,
		IsActive:     true,
	}
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name         string
		email        string
		password     string
		setupMock    func(*MockUserRepository, *MockSessionRepository)
		expectedKind errors.Kind
		expectedMsg  string
	}{
		{
			name:     "successful login",
			email:    "manager@example.com",
			password: "password123",
			setupMock: func(users *MockUserRepository, sessions *MockSessionRepository) {
				users.On("FindByEmail", mock.Anything, "manager@example.com").
					Return(activeUser("manager@example.com", "password123"), nil)
				sessions.On("FindByUser", mock.Anything, uint(7)).Return(nil, gorm.ErrRecordNotFound)
				sessions.On("Save", mock.Anything, mock.AnythingOfType("*model.AuthSession")).Return(nil)
			},
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "password123",
			setupMock: func(users *MockUserRepository, sessions *MockSessionRepository) {
				users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedKind: errors.KindNotFound,
			expectedMsg:  "invalid email or password",
		},
		{
			name:     "wrong password",
			email:    "manager@example.com",
			password: "not-the-password",
			setupMock: func(users *MockUserRepository, sessions *MockSessionRepository) {
				users.On("FindByEmail", mock.Anything, "manager@example.com").
					Return(activeUser("manager@example.com", "password123"), nil)
			},
			expectedKind: errors.KindNotFound,
			expectedMsg:  "invalid email or password",
		},
		{
			name:     "inactive account",
			email:    "waiting@example.com",
			password: "password123",
			setupMock: func(users *MockUserRepository, sessions *MockSessionRepository) {
				user := activeUser("waiting@example.com", "password123")
				user.IsActive = false
				users.On("FindByEmail", mock.Anything, "waiting@example.com").Return(user, nil)
			},
			expectedKind: errors.KindForbidden,
			expectedMsg:  "your account is not activated yet",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			sessions := new(MockSessionRepository)
			tt.setupMock(users, sessions)

			service := newAuthFixture(users, sessions, new(MockTokenStore))
			session, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedKind != "" {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedKind, errors.KindOf(err))
				assert.EqualError(t, err, tt.expectedMsg)
				assert.Nil(t, session)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, session.AccessToken)
				assert.NotEmpty(t, session.RefreshToken)
				assert.Equal(t, model.RoleSiteManager, session.UserRole)
			}

			users.AssertExpectations(t)
			sessions.AssertExpectations(t)
		})
	}
}

// Unknown email and wrong password must be indistinguishable so login cannot
// be used to enumerate accounts.
func TestAuthService_Login_NoAccountEnumeration(t *testing.T) {
	users := new(MockUserRepository)
	sessions := new(MockSessionRepository)
	users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("FindByEmail", mock.Anything, "known@example.com").
		Return(activeUser("known@example.com", "password123"), nil)

	service := newAuthFixture(users, sessions, new(MockTokenStore))

	_, errUnknown := service.Login(context.Background(), "nobody@example.com", "whatever")
	_, errWrongPass := service.Login(context.Background(), "known@example.com", "whatever")

	assert.EqualError(t, errUnknown, errWrongPass.Error())
	assert.Equal(t, errors.KindOf(errUnknown), errors.KindOf(errWrongPass))
}

// A second login overwrites the user's single session row instead of
// inserting another one.
func TestAuthService_Login_OverwritesExistingSession(t *testing.T) {
	users := new(MockUserRepository)
	sessions := new(MockSessionRepository)
	existing := &model.AuthSession{UserID: 7, Token: "stale-token", Expired: true, Revoked: true}

	users.On("FindByEmail", mock.Anything, "manager@example.com").
		Return(activeUser("manager@example.com", "password123"), nil)
	sessions.On("FindByUser", mock.Anything, uint(7)).Return(existing, nil)
	sessions.On("Save", mock.Anything, mock.MatchedBy(func(s *model.AuthSession) bool {
		return s == existing && s.Token != "stale-token" && !s.Expired && !s.Revoked
	})).Return(nil)

	service := newAuthFixture(users, sessions, new(MockTokenStore))
	session, err := service.Login(context.Background(), "manager@example.com", "password123")

	assert.NoError(t, err)
	assert.NotNil(t, session)
	sessions.AssertExpectations(t)
}

func TestAuthService_Refresh(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	user := activeUser("manager@example.com", "password123")
	refreshToken, _ := jwtService.GenerateRefreshToken(user)

	tests := []struct {
		name         string
		token        string
		setupMock    func(*MockUserRepository, *MockSessionRepository)
		expectedKind errors.Kind
	}{
		{
			name:  "successful refresh keeps the refresh token",
			token: refreshToken,
			setupMock: func(users *MockUserRepository, sessions *MockSessionRepository) {
				users.On("FindByEmail", mock.Anything, "manager@example.com").Return(user, nil)
				sessions.On("FindByUser", mock.Anything, uint(7)).Return(nil, gorm.ErrRecordNotFound)
				sessions.On("Save", mock.Anything, mock.AnythingOfType("*model.AuthSession")).Return(nil)
			},
		},
		{
			name:         "garbage token",
			token:        "not-a-jwt",
			setupMock:    func(users *MockUserRepository, sessions *MockSessionRepository) {},
			expectedKind: errors.KindBadRequest,
		},
		{
			name:  "account no longer exists",
			token: refreshToken,
			setupMock: func(users *MockUserRepository, sessions *MockSessionRepository) {
				users.On("FindByEmail", mock.Anything, "manager@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedKind: errors.KindNotFound,
		},
		{
			name:  "account deactivated since issuance",
			token: refreshToken,
			setupMock: func(users *MockUserRepository, sessions *MockSessionRepository) {
				inactive := activeUser("manager@example.com", "password123")
				inactive.IsActive = false
				users.On("FindByEmail", mock.Anything, "manager@example.com").Return(inactive, nil)
			},
			expectedKind: errors.KindBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			sessions := new(MockSessionRepository)
			tt.setupMock(users, sessions)

			service := newAuthFixture(users, sessions, new(MockTokenStore))
			session, err := service.Refresh(context.Background(), tt.token)

			if tt.expectedKind != "" {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedKind, errors.KindOf(err))
				assert.Nil(t, session)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, session.AccessToken)
				assert.Equal(t, tt.token, session.RefreshToken)
			}

			users.AssertExpectations(t)
			sessions.AssertExpectations(t)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("revokes the session and blacklists the token", func(t *testing.T) {
		users := new(MockUserRepository)
		sessions := new(MockSessionRepository)
		tokenStore := new(MockTokenStore)
		session := &model.AuthSession{UserID: 7, Token: "the-token"}

		sessions.On("FindByToken", mock.Anything, "the-token").Return(session, nil)
		sessions.On("Save", mock.Anything, mock.MatchedBy(func(s *model.AuthSession) bool {
			return s.Expired && s.Revoked
		})).Return(nil)
		tokenStore.On("BlacklistAccessToken", mock.Anything, "the-token", auth.AccessTokenExpiry).Return(nil)

		service := newAuthFixture(users, sessions, tokenStore)
		err := service.Logout(context.Background(), "the-token")

		assert.NoError(t, err)
		sessions.AssertExpectations(t)
		tokenStore.AssertExpectations(t)
	})

	t.Run("unknown token", func(t *testing.T) {
		users := new(MockUserRepository)
		sessions := new(MockSessionRepository)
		sessions.On("FindByToken", mock.Anything, "unknown-token").Return(nil, gorm.ErrRecordNotFound)

		service := newAuthFixture(users, sessions, new(MockTokenStore))
		err := service.Logout(context.Background(), "unknown-token")

		assert.Error(t, err)
		assert.Equal(t, errors.KindBadRequest, errors.KindOf(err))
		assert.EqualError(t, err, "invalid logout")
	})
}

// A token whose session row has been revoked no longer resolves a caller,
// even though the JWT signature is still valid.
func TestAuthService_CallerFromToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	user := activeUser("manager@example.com", "password123")
	accessToken, _ := jwtService.GenerateAccessToken(user)

	tests := []struct {
		name         string
		token        string
		setupMock    func(*MockUserRepository, *MockSessionRepository, *MockTokenStore)
		expectedKind errors.Kind
	}{
		{
			name:  "live session resolves the caller",
			token: accessToken,
			setupMock: func(users *MockUserRepository, sessions *MockSessionRepository, tokenStore *MockTokenStore) {
				tokenStore.On("IsAccessTokenBlacklisted", mock.Anything, accessToken).Return(false, nil)
				sessions.On("FindByToken", mock.Anything, accessToken).
					Return(&model.AuthSession{UserID: 7, Token: accessToken}, nil)
				users.On("FindByEmail", mock.Anything, "manager@example.com").Return(user, nil)
			},
		},
		{
			name:         "garbage token",
			token:        "not-a-jwt",
			setupMock:    func(users *MockUserRepository, sessions *MockSessionRepository, tokenStore *MockTokenStore) {},
			expectedKind: errors.KindUnauthorized,
		},
		{
			name:  "blacklisted token",
			token: accessToken,
			setupMock: func(users *MockUserRepository, sessions *MockSessionRepository, tokenStore *MockTokenStore) {
				tokenStore.On("IsAccessTokenBlacklisted", mock.Anything, accessToken).Return(true, nil)
			},
			expectedKind: errors.KindUnauthorized,
		},
		{
			name:  "revoked session row",
			token: accessToken,
			setupMock: func(users *MockUserRepository, sessions *MockSessionRepository, tokenStore *MockTokenStore) {
				tokenStore.On("IsAccessTokenBlacklisted", mock.Anything, accessToken).Return(false, nil)
				sessions.On("FindByToken", mock.Anything, accessToken).
					Return(&model.AuthSession{UserID: 7, Token: accessToken, Expired: true, Revoked: true}, nil)
			},
			expectedKind: errors.KindUnauthorized,
		},
		{
			name:  "no session row",
			token: accessToken,
			setupMock: func(users *MockUserRepository, sessions *MockSessionRepository, tokenStore *MockTokenStore) {
				tokenStore.On("IsAccessTokenBlacklisted", mock.Anything, accessToken).Return(false, nil)
				sessions.On("FindByToken", mock.Anything, accessToken).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedKind: errors.KindUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			sessions := new(MockSessionRepository)
			tokenStore := new(MockTokenStore)
			tt.setupMock(users, sessions, tokenStore)

			service := newAuthFixture(users, sessions, tokenStore)
			caller, err := service.CallerFromToken(context.Background(), tt.token)

			if tt.expectedKind != "" {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedKind, errors.KindOf(err))
				assert.Nil(t, caller)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, user.Email, caller.Email)
			}

			users.AssertExpectations(t)
			sessions.AssertExpectations(t)
			tokenStore.AssertExpectations(t)
		})
	}
}

// Logging out and then presenting the same access token must fail caller
// resolution through the revoked session row alone, even if the blacklist
// write was lost.
func TestAuthService_LogoutThenCallerFromToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	user := activeUser("manager@example.com", "password123")
	accessToken, _ := jwtService.GenerateAccessToken(user)

	users := new(MockUserRepository)
	sessions := new(MockSessionRepository)
	tokenStore := new(MockTokenStore)
	session := &model.AuthSession{UserID: 7, Token: accessToken}

	sessions.On("FindByToken", mock.Anything, accessToken).Return(session, nil)
	sessions.On("Save", mock.Anything, session).Return(nil)
	tokenStore.On("BlacklistAccessToken", mock.Anything, accessToken, auth.AccessTokenExpiry).
		Return(assert.AnError)
	tokenStore.On("IsAccessTokenBlacklisted", mock.Anything, accessToken).Return(false, nil)

	service := newAuthFixture(users, sessions, tokenStore)

	assert.NoError(t, service.Logout(context.Background(), accessToken))

	caller, err := service.CallerFromToken(context.Background(), accessToken)
	assert.Nil(t, caller)
	assert.Equal(t, errors.KindUnauthorized, errors.KindOf(err))
}
