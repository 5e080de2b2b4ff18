package auth

import (
	"context"

	"consite/internal/errors"
	"consite/internal/model"
)

type contextKey int

const (
	callerKey contextKey = iota
	tokenKey
)

// WithCaller returns a context carrying the resolved caller identity.
// Identity is always request-scoped, never held in shared process state.
func WithCaller(ctx context.Context, caller *model.User) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}

// CallerFrom returns the caller attached to the request context.
func CallerFrom(ctx context.Context) (*model.User, error) {
	caller, ok := ctx.Value(callerKey).(*model.User)
	if !ok || caller == nil {
		return nil, errors.Unauthorized("no authenticated caller in request context")
	}
	return caller, nil
}

// WithToken returns a context carrying the raw access token of the in-flight
// request.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFrom returns the raw access token attached to the request context.
func TokenFrom(ctx context.Context) (string, error) {
	token, ok := ctx.Value(tokenKey).(string)
	if !ok || token == "" {
		return "", errors.Unauthorized("no access token in request context")
	}
	return token, nil
}
