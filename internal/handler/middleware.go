package handler

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/royi-klein/ClinicalTrial/internal/domain"
	"github.com/royi-klein/ClinicalTrial/internal/service"
)

const (
	contextKeySession = "session"
	bearerPrefix      = "Bearer "
)

// RequestLogger logs each HTTP request with structured fields.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// Run the error handler now so the logged status is the one sent.
				c.Error(err)
			}

			slog.Info("http request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)

			return nil
		}
	}
}

// BearerAuth validates the Bearer token and injects the session into echo context.
func BearerAuth(auth *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, bearerPrefix)
			if !ok || token == "" {
				return fmt.Errorf("%w: %w", domain.ErrUnauthorized, errMissingToken)
			}

			session, err := auth.ValidateToken(token)
			if err != nil {
				return fmt.Errorf("%w: %w", errInvalidToken, err)
			}

			c.Set(contextKeySession, session)
			return next(c)
		}
	}
}

// GetSession extracts the authenticated session from echo context.
func GetSession(c echo.Context) (*service.Session, bool) {
	s, ok := c.Get(contextKeySession).(*service.Session)
	return s, ok
}
