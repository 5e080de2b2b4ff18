package router

import (
	goerrors "errors"
	"strings"

	"github.com/labstack/echo/v4"

	"consite/internal/auth"
	"consite/internal/authz"
	"consite/internal/errors"
	"consite/internal/model"
	"consite/internal/service"
)

// ResolveCaller resolves the caller identity from the bearer token of the
// in-flight request and attaches it to the request context. The token has
// already passed signature validation in the echo-jwt middleware; this step
// adds session revocation and account lookup.
func ResolveCaller(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				return respondError(errors.Unauthorized("missing bearer token"))
			}

			caller, err := authService.CallerFromToken(c.Request().Context(), token)
			if err != nil {
				return respondError(err)
			}

			ctx := auth.WithCaller(c.Request().Context(), caller)
			ctx = auth.WithToken(ctx, token)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// RequirePermission gates a route on the caller's role owning the permission.
func RequirePermission(permission model.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller, err := auth.CallerFrom(c.Request().Context())
			if err != nil {
				return respondError(err)
			}

			if err := authz.Authorize(caller.Role, permission); err != nil {
				var denied *authz.DeniedError
				if goerrors.As(err, &denied) {
					c.Logger().Warnf("authorization denied for user %d: %s (%s)",
						caller.ID, denied.Reason, denied.Detail)
				}
				return respondError(err)
			}
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func respondError(err error) *echo.HTTPError {
	mapped := errors.MapToHTTP(err)
	return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
}
