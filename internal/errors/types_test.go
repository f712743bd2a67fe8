package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("conversation")

	assert.Equal(t, ErrCodeResourceNotFound, err.Code)
	assert.Equal(t, "conversation not found", err.Message)
	assert.Equal(t, http.StatusNotFound, err.HTTPCode)
	assert.True(t, IsNotFound(err))
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("user_id and message are required")

	assert.Equal(t, ErrCodeValidationFailed, err.Code)
	assert.Equal(t, http.StatusBadRequest, err.HTTPCode)
	assert.False(t, IsNotFound(err))
}

func TestNewStorageError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStorageError("failed to get user", cause)

	assert.Equal(t, ErrCodeDatabaseError, err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode)
	assert.Equal(t, "failed to get user: connection refused", err.Error())
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestIsNotFoundWrapped(t *testing.T) {
	// 包装后仍可识别
	err := fmt.Errorf("resolve conversation: %w", NewNotFoundError("conversation"))
	assert.True(t, IsNotFound(err))

	assert.False(t, IsNotFound(errors.New("plain error")))
	assert.False(t, IsNotFound(nil))
}

func TestGetAppError(t *testing.T) {
	appErr := NewValidationError("bad input")
	assert.Equal(t, appErr, GetAppError(appErr))

	// 非AppError包装为500系统错误
	wrapped := GetAppError(errors.New("boom"))
	assert.Equal(t, ErrCodeInternalServer, wrapped.Code)
	assert.Equal(t, http.StatusInternalServerError, wrapped.HTTPCode)
	assert.NotNil(t, wrapped.Cause)
}

func TestWithDetails(t *testing.T) {
	err := NewValidationError("invalid user fields").WithDetails(map[string]string{"first_name": "required"})
	assert.NotNil(t, err.Details)
}
