package handler

import (
	"net/http"
	"strconv"
	"time"

	"pulpit/internal/delivery/http/middleware"
	"pulpit/internal/delivery/http/response"
	"pulpit/internal/domain/entity"
	"pulpit/internal/domain/repository"
	"pulpit/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// userResponse is the outward shape of an account. The stored password
// hash and the soft-delete marker never leave the service.
type userResponse struct {
	ID         int64     `json:"id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Phone      *string   `json:"phone,omitempty"`
	ColorTheme string    `json:"color_theme,omitempty"`
	Lang       string    `json:"lang,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func newUserResponse(user *entity.User) *userResponse {
	if user == nil {
		return nil
	}

	return &userResponse{
		ID:         user.ID,
		FullName:   user.FullName,
		Email:      user.Email,
		Phone:      user.Phone,
		ColorTheme: user.ColorTheme,
		Lang:       user.Lang,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}

// updateProfileRequest carries the optional profile mutations. Absent
// fields keep their stored values.
type updateProfileRequest struct {
	FullName   *string `json:"full_name,omitempty" validate:"omitempty,max=255"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string `json:"phone,omitempty" validate:"omitempty,min=7,max=32"`
	Password   *string `json:"password,omitempty" validate:"omitempty,min=8"`
	ColorTheme *string `json:"color_theme,omitempty"`
	Lang       *string `json:"lang,omitempty"`
}

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	uc usecase.UserUsecase
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// GetProfile returns the authenticated user's own account.
func (h *UserHandler) GetProfile(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Unauthorized(c, "INVALID_TOKEN", "No user on request")
	}

	return response.Success(c, http.StatusOK, newUserResponse(user), "Profile retrieved successfully")
}

// GetUserByID looks up any active account by id.
func (h *UserHandler) GetUserByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "User id must be an integer")
	}

	user, err := h.uc.FindUserByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newUserResponse(user), "User retrieved successfully")
}

// UpdateProfile mutates the authenticated user's account.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Unauthorized(c, "INVALID_TOKEN", "No user on request")
	}

	var input updateProfileRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	err := h.uc.UpdateUser(c.Request().Context(), user, repository.UpdateUserArgs{
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

	return response.Success(c, http.StatusOK, map[string]string{"message": "Profile updated"}, "Profile updated successfully")
}

// DeleteAccount soft-deletes the authenticated user's account and revokes
// its session.
func (h *UserHandler) DeleteAccount(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Unauthorized(c, "INVALID_TOKEN", "No user on request")
	}

	if err := h.uc.DeleteUser(c.Request().Context(), user); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Account deleted"}, "Account deleted successfully")
}
