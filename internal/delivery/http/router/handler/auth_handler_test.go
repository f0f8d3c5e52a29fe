package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pulpit/internal/delivery/http/validator"
	"pulpit/internal/domain/entity"
	"pulpit/internal/mocks"
	"pulpit/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newEchoContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register(t *testing.T) {
	authUC := new(mocks.MockAuthUsecase)
	userUC := new(mocks.MockUserUsecase)
	h := NewAuthHandler(authUC, userUC)

	user := &entity.User{ID: 7, FullName: "Alice", Email: "alice@example.com", PasswordHash: "$argon2id$secret"}
	token := &entity.SessionToken{ID: 1, UserID: 7, Token: "aa11"}
	userUC.On("CreateUser", mock.Anything, mock.MatchedBy(func(input usecase.CreateUserInput) bool {
		return input.Email == "alice@example.com" && input.Password == "longenough1"
	})).Return(&usecase.CreateUserOutput{User: user, Token: token}, nil)

	c, rec := newEchoContext(t, http.MethodPost, "/auth/register",
		`{"full_name":"Alice","email":"alice@example.com","password":"longenough1"}`)

	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token":"aa11"`)
	// The stored hash never leaves the service.
	assert.NotContains(t, rec.Body.String(), "password_hash")
	assert.NotContains(t, rec.Body.String(), "$argon2id$secret")
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	authUC := new(mocks.MockAuthUsecase)
	userUC := new(mocks.MockUserUsecase)
	h := NewAuthHandler(authUC, userUC)

	cases := []struct {
		name string
		body string
	}{
		{"missing email", `{"full_name":"Alice","password":"longenough1"}`},
		{"bad email", `{"full_name":"Alice","email":"nope","password":"longenough1"}`},
		{"short password", `{"full_name":"Alice","email":"alice@example.com","password":"short"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newEchoContext(t, http.MethodPost, "/auth/register", tc.body)

			err := h.Register(c)

			require.Error(t, err)
			var httpErr *echo.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusBadRequest, httpErr.Code)
			userUC.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	authUC := new(mocks.MockAuthUsecase)
	userUC := new(mocks.MockUserUsecase)
	h := NewAuthHandler(authUC, userUC)

	user := &entity.User{ID: 7, Email: "alice@example.com", PasswordHash: "$argon2id$secret"}
	token := &entity.SessionToken{ID: 1, UserID: 7, Token: "bb22"}
	authUC.On("Login", mock.Anything, usecase.LoginInput{Email: "alice@example.com", Password: "longenough1"}).
		Return(&usecase.LoginOutput{User: user, Token: token}, nil)

	c, rec := newEchoContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"longenough1"}`)

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token":"bb22"`)
	assert.NotContains(t, rec.Body.String(), "$argon2id$secret")
}

func TestAuthHandler_Login_UsecaseFailurePropagates(t *testing.T) {
	authUC := new(mocks.MockAuthUsecase)
	userUC := new(mocks.MockUserUsecase)
	h := NewAuthHandler(authUC, userUC)

	authUC.On("Login", mock.Anything, mock.Anything).
		Return(nil, assert.AnError)

	c, _ := newEchoContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"wrongpassword"}`)

	err := h.Login(c)

	// Business failures flow to the central error handler untouched.
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestAuthHandler_Logout(t *testing.T) {
	authUC := new(mocks.MockAuthUsecase)
	userUC := new(mocks.MockUserUsecase)
	h := NewAuthHandler(authUC, userUC)

	token := &entity.SessionToken{ID: 1, UserID: 7, Token: "aa11"}
	authUC.On("Logout", mock.Anything, token).Return(nil)

	c, rec := newEchoContext(t, http.MethodPost, "/auth/logout", "")
	c.Set("authToken", token)

	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	authUC.AssertExpectations(t)
}

func TestAuthHandler_Logout_NoSession(t *testing.T) {
	authUC := new(mocks.MockAuthUsecase)
	userUC := new(mocks.MockUserUsecase)
	h := NewAuthHandler(authUC, userUC)

	c, rec := newEchoContext(t, http.MethodPost, "/auth/logout", "")

	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	authUC.AssertNotCalled(t, "Logout", mock.Anything, mock.Anything)
}

func TestHealthCheck(t *testing.T) {
	c, rec := newEchoContext(t, http.MethodGet, "/health", "")

	require.NoError(t, HealthCheck(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
