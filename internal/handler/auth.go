package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/royi-klein/ClinicalTrial/internal/domain"
	"github.com/royi-klein/ClinicalTrial/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Message  string `json:"message"`
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Login exchanges a username and password for a bearer token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorBody{
			Error:   "Bad Request",
			Message: "Username and password required",
		})
	}

	result, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Message:  "Login successful",
		Token:    result.Token,
		Username: result.Username,
	})
}

// Logout ends the session of the presented token.
func (h *AuthHandler) Logout(c echo.Context) error {
	session, ok := GetSession(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	h.auth.Logout(session.ID)

	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// Me returns the currently authenticated user.
func (h *AuthHandler) Me(c echo.Context) error {
	session, ok := GetSession(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	return c.JSON(http.StatusOK, map[string]any{"user": session})
}
