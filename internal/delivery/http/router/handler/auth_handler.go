// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"

	"pulpit/internal/delivery/http/middleware"
	"pulpit/internal/delivery/http/response"
	"pulpit/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// registerRequest is the payload for account registration.
type registerRequest struct {
	FullName   string  `json:"full_name" validate:"required,max=255"`
	Email      string  `json:"email" validate:"required,email"`
	Phone      *string `json:"phone,omitempty" validate:"omitempty,min=7,max=32"`
	Password   string  `json:"password" validate:"required,min=8"`
	ColorTheme string  `json:"color_theme"`
	Lang       string  `json:"lang"`
}

// loginRequest identifies an account by email or phone. The use case
// rejects the case where both are empty.
type loginRequest struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" validate:"required"`
}

// sessionResponse pairs the sanitized account with its bearer token.
type sessionResponse struct {
	User  *userResponse `json:"user"`
	Token string        `json:"token"`
}

// AuthHandler holds dependencies for session-related handlers.
type AuthHandler struct {
	authUC usecase.AuthUsecase
	userUC usecase.UserUsecase
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(authUC usecase.AuthUsecase, userUC usecase.UserUsecase) *AuthHandler {
	return &AuthHandler{authUC: authUC, userUC: userUC}
}

// Register handles the account registration request. Registration doubles
// as a first login: the response carries a live session token.
func (h *AuthHandler) Register(c echo.Context) error {
	var input registerRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.userUC.CreateUser(c.Request().Context(), usecase.CreateUserInput{
		FullName:   input.FullName,
		Email:      input.Email,
		Phone:      input.Phone,
		Password:   input.Password,
		ColorTheme: input.ColorTheme,
		Lang:       input.Lang,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, sessionResponse{
		User:  newUserResponse(output.User),
		Token: output.Token.Token,
	}, "User registered successfully")
}

// Login handles the credential login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var input loginRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.authUC.Login(c.Request().Context(), usecase.LoginInput{
		Email:    input.Email,
		Phone:    input.Phone,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, sessionResponse{
		User:  newUserResponse(output.User),
		Token: output.Token.Token,
	}, "Login successful")
}

// Logout revokes the session the request authenticated with. Runs behind
// the auth gate, so the token on the context is always present.
func (h *AuthHandler) Logout(c echo.Context) error {
	token := middleware.CurrentToken(c)
	if token == nil {
		return response.Unauthorized(c, "INVALID_TOKEN", "No session on request")
	}

	if err := h.authUC.Logout(c.Request().Context(), token); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Successfully logged out"}, "Logout successful")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
