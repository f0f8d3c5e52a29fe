package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "pulpit/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func handleError(err error) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
	m.HandleHTTPError(err, c)

	return rec
}

func TestErrorMiddleware_AppError(t *testing.T) {
	// Login-attempt failures map to 400, never 401.
	cases := []struct {
		err  error
		code int
		body string
	}{
		{domainerrors.ErrUserNotFound, http.StatusBadRequest, "USER_NOT_FOUND"},
		{domainerrors.ErrInvalidPassword, http.StatusBadRequest, "INVALID_PASSWORD"},
		{domainerrors.ErrUserAlreadyExists, http.StatusBadRequest, "USER_ALREADY_EXISTS"},
		{domainerrors.ErrInvalidCredentials, http.StatusBadRequest, "INVALID_CREDENTIALS"},
		{domainerrors.ErrUserLookupNotFound, http.StatusNotFound, "USER_LOOKUP_NOT_FOUND"},
	}

	for _, tc := range cases {
		rec := handleError(tc.err)

		assert.Equal(t, tc.code, rec.Code)
		assert.Contains(t, rec.Body.String(), tc.body)
	}
}

func TestErrorMiddleware_WrappedAppError(t *testing.T) {
	err := errors.Wrap(domainerrors.ErrUserAlreadyExists.WrapMessage("email taken"), "create user failed")

	rec := handleError(err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "USER_ALREADY_EXISTS")
	assert.Contains(t, rec.Body.String(), "User already exists")
}

func TestErrorMiddleware_EchoHTTPError(t *testing.T) {
	rec := handleError(echo.NewHTTPError(http.StatusBadRequest, "field validation failed"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "field validation failed")
}

func TestErrorMiddleware_UnknownError(t *testing.T) {
	rec := handleError(errors.New("pq: connection reset"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
	// Raw driver errors stay server-side.
	assert.NotContains(t, rec.Body.String(), "connection reset")
}
