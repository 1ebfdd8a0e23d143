package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, Validation("Title and content are required").HTTPStatus())
	assert.Equal(t, http.StatusBadRequest, New(ErrFileSizeTooLarge, "too big").HTTPStatus())
	assert.Equal(t, http.StatusNotFound, NotFound("Video not found").HTTPStatus())
	assert.Equal(t, http.StatusUnauthorized, Unauthorized("bad token").HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, Storage("write failed", stderrors.New("disk full")).HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(ErrorCode(9999)))
}

func TestGetAppErrorThroughWrapping(t *testing.T) {
	cause := stderrors.New("connection reset")
	appErr := Database("query failed", cause)
	wrapped := fmt.Errorf("list videos: %w", appErr)

	got, ok := GetAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrDatabase, got.Code)
	assert.True(t, stderrors.Is(wrapped, cause))
	assert.Equal(t, "[4000] query failed: connection reset", got.Error())

	_, ok = GetAppError(cause)
	assert.False(t, ok)
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsNotFound(NotFound("Photo not found")))
	assert.True(t, IsNotFound(New(ErrRecordNotFound, "gone")))
	assert.False(t, IsNotFound(Validation("x")))
	assert.True(t, IsValidation(New(ErrFileTypeNotAllowed, "bad type")))
	assert.False(t, IsValidation(stderrors.New("plain")))
}

func TestGetErrorMessage(t *testing.T) {
	assert.Equal(t, "Internal server error", GetErrorMessage(ErrInternalServer))
	assert.Equal(t, "服务器内部错误", GetErrorMessageWithLang(ErrInternalServer, "zh-CN"))
	assert.Equal(t, "Unknown error", GetErrorMessage(ErrorCode(42)))
}
