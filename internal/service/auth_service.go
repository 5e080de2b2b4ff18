package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"consite/internal/auth"
	"consite/internal/errors"
	"consite/internal/model"
	"consite/internal/repository"
)

const bcryptCost = 10

// Session is the pair of tokens issued on a successful authentication.
type Session struct {
	AccessToken  string
	RefreshToken string
	UserRole     model.Role
}

// AuthService owns the authentication session lifecycle: issuing, rotating
// and revoking tokens, and resolving the caller behind an in-flight request.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*Session, error)
	Refresh(ctx context.Context, refreshToken string) (*Session, error)
	Logout(ctx context.Context, accessToken string) error
	CallerFromToken(ctx context.Context, accessToken string) (*model.User, error)
}

type authService struct {
	users      repository.UserRepository
	sessions   repository.SessionRepository
	tx         repository.TxManager
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	tx repository.TxManager,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
) AuthService {
	return &authService{
		users:      users,
		sessions:   sessions,
		tx:         tx,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Login authenticates a user by email and password and issues a session.
// Unknown email and wrong password collapse to the same error so callers
// cannot probe which accounts exist.
func (s *authService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, errors.NotFound("invalid email or password")
	}

	if !user.IsActive {
		return nil, errors.Forbidden("your account is not activated yet")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.NotFound("invalid email or password")
	}

	return s.issueSession(ctx, user)
}

// issueSession generates the access/refresh token pair and overwrites the
// user's single session row. The read-then-overwrite-or-insert runs inside
// one transaction so concurrent logins cannot leave two live rows.
func (s *authService) issueSession(ctx context.Context, user *model.User) (*Session, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, errors.Internal("something went wrong with generating the token")
	}

	refreshToken, err := s.jwtService.GenerateRefreshToken(user)
	if err != nil {
		return nil, errors.Internal("something went wrong with generating the token")
	}

	if err := s.storeAccessToken(ctx, user, accessToken); err != nil {
		return nil, err
	}

	return &Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		UserRole:     user.Role,
	}, nil
}

func (s *authService) storeAccessToken(ctx context.Context, user *model.User, accessToken string) error {
	return s.tx.WithTransaction(ctx, func(ctx context.Context, reg repository.Registry) error {
		session, err := reg.Sessions.FindByUser(ctx, user.ID)
		if err != nil {
			session = &model.AuthSession{UserID: user.ID}
		}
		session.Token = accessToken
		session.Expired = false
		session.Revoked = false
		return reg.Sessions.Save(ctx, session)
	})
}

// Refresh validates a refresh token and issues a new access token. The
// refresh token itself is returned unchanged.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil || claims.Subject == "" {
		return nil, errors.BadRequest("the token provided is invalid")
	}

	user, err := s.users.FindByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, errors.NotFound("we couldn't find this account")
	}

	if !user.IsActive {
		return nil, errors.BadRequest("your account is not activated yet")
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, errors.Internal("something went wrong with generating the token")
	}

	if err := s.storeAccessToken(ctx, user, accessToken); err != nil {
		return nil, err
	}

	return &Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		UserRole:     user.Role,
	}, nil
}

// Logout revokes the session behind the given access token. Revoked is
// terminal for that token; the next login overwrites the row with a fresh one.
func (s *authService) Logout(ctx context.Context, accessToken string) error {
	session, err := s.sessions.FindByToken(ctx, accessToken)
	if err != nil {
		return errors.BadRequest("invalid logout")
	}

	session.Expired = true
	session.Revoked = true
	if err := s.sessions.Save(ctx, session); err != nil {
		return errors.Internal("failed to revoke the session")
	}

	// Best effort fast path; the session row stays authoritative.
	_ = s.tokenStore.BlacklistAccessToken(ctx, accessToken, auth.AccessTokenExpiry)

	return nil
}

// CallerFromToken resolves the caller identity from the access token of the
// in-flight request. Resolution is request-scoped: nothing here reads from
// or writes to shared process state.
func (s *authService) CallerFromToken(ctx context.Context, accessToken string) (*model.User, error) {
	claims, err := s.jwtService.ValidateToken(accessToken)
	if err != nil {
		return nil, errors.Unauthorized("the token provided is invalid")
	}

	if blacklisted, _ := s.tokenStore.IsAccessTokenBlacklisted(ctx, accessToken); blacklisted {
		return nil, errors.Unauthorized("the session has been revoked")
	}

	session, err := s.sessions.FindByToken(ctx, accessToken)
	if err != nil {
		return nil, errors.Unauthorized("no active session for this token")
	}
	if session.Revoked || session.Expired {
		return nil, errors.Unauthorized("the session has been revoked")
	}

	user, err := s.users.FindByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, errors.NotFound("we couldn't find this account")
	}

	return user, nil
}
