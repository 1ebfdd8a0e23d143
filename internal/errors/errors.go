// Package errors 定义应用统一错误类型
// 服务层返回 *AppError，由处理器在请求边界翻译为HTTP状态码
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/weiwangfds/easterblog/internal/i18n"
)

// ErrorCode 错误码类型
type ErrorCode int

// 定义错误码常量
const (
	// 通用错误码 (1000-1999)
	ErrInternalServer ErrorCode = 1000 // 服务器内部错误
	ErrInvalidParams  ErrorCode = 1001 // 参数错误
	ErrUnauthorized   ErrorCode = 1002 // 未授权
	ErrNotFound       ErrorCode = 1004 // 资源未找到

	// 上传相关错误码 (2000-2999)
	ErrFileRequired       ErrorCode = 2000 // 未上传文件
	ErrFileEmpty          ErrorCode = 2001 // 文件为空
	ErrFileSizeTooLarge   ErrorCode = 2006 // 文件大小超限
	ErrFileTypeNotAllowed ErrorCode = 2007 // 文件类型不允许

	// 存储相关错误码 (3000-3999)
	ErrStorageWrite    ErrorCode = 3000 // 存储写入失败
	ErrStorageDelete   ErrorCode = 3001 // 存储删除失败
	ErrStorageProvider ErrorCode = 3002 // 存储提供商不支持或配置错误

	// 数据库相关错误码 (4000-4999)
	ErrDatabase       ErrorCode = 4000 // 数据库错误
	ErrRecordNotFound ErrorCode = 4006 // 记录未找到
)

// AppError 应用错误结构体
type AppError struct {
	// 错误码
	Code ErrorCode `json:"code"`
	// 错误消息，面向调用方
	Message string `json:"message"`
	// 详细错误信息，仅用于日志
	Details string `json:"details,omitempty"`
	// 原始错误
	OriginalError error `json:"-"`
}

// Error 实现error接口
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%d] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 返回原始错误，支持 errors.Is / errors.As
func (e *AppError) Unwrap() error {
	return e.OriginalError
}

// HTTPStatus 返回错误对应的HTTP状态码
func (e *AppError) HTTPStatus() int {
	return HTTPStatus(e.Code)
}

// New 创建新的应用错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装原始错误
func Wrap(code ErrorCode, message string, err error) *AppError {
	appErr := &AppError{
		Code:          code,
		Message:       message,
		OriginalError: err,
	}
	if err != nil {
		appErr.Details = err.Error()
	}
	return appErr
}

// Validation 创建参数校验错误 (400)
func Validation(message string) *AppError {
	return New(ErrInvalidParams, message)
}

// NotFound 创建资源不存在错误 (404)
func NotFound(message string) *AppError {
	return New(ErrNotFound, message)
}

// Unauthorized 创建未授权错误 (401)
func Unauthorized(message string) *AppError {
	return New(ErrUnauthorized, message)
}

// Storage 创建存储错误 (500)
func Storage(message string, err error) *AppError {
	return Wrap(ErrStorageWrite, message, err)
}

// Internal 创建服务器内部错误 (500)
func Internal(message string, err error) *AppError {
	return Wrap(ErrInternalServer, message, err)
}

// Database 创建数据库错误 (500)
func Database(message string, err error) *AppError {
	return Wrap(ErrDatabase, message, err)
}

// GetAppError 从错误链中提取应用错误
func GetAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsNotFound 判断错误是否为资源不存在
func IsNotFound(err error) bool {
	appErr, ok := GetAppError(err)
	return ok && HTTPStatus(appErr.Code) == http.StatusNotFound
}

// IsValidation 判断错误是否为参数校验错误
func IsValidation(err error) bool {
	appErr, ok := GetAppError(err)
	return ok && HTTPStatus(appErr.Code) == http.StatusBadRequest
}

// HTTPStatus 错误码到HTTP状态码的映射
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrInvalidParams, ErrFileRequired, ErrFileEmpty, ErrFileSizeTooLarge, ErrFileTypeNotAllowed:
		return http.StatusBadRequest
	case ErrUnauthorized:
		return http.StatusUnauthorized
	case ErrNotFound, ErrRecordNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// 错误码到i18n键的映射
var errorCodeToKeyMap = map[ErrorCode]string{
	ErrInternalServer:     "internal_server_error",
	ErrInvalidParams:      "invalid_params",
	ErrUnauthorized:       "unauthorized",
	ErrNotFound:           "not_found",
	ErrFileRequired:       "file_required",
	ErrFileEmpty:          "file_empty",
	ErrFileSizeTooLarge:   "file_too_large",
	ErrFileTypeNotAllowed: "file_type_not_allowed",
	ErrStorageWrite:       "storage_write_failed",
	ErrStorageDelete:      "storage_write_failed",
	ErrStorageProvider:    "internal_server_error",
	ErrDatabase:           "database_error",
	ErrRecordNotFound:     "not_found",
}

// GetErrorMessage 根据错误码获取默认语言的错误消息
func GetErrorMessage(code ErrorCode) string {
	return GetErrorMessageWithLang(code, i18n.GetInstance().GetDefaultLanguage())
}

// GetErrorMessageWithLang 根据错误码和语言获取错误消息
func GetErrorMessageWithLang(code ErrorCode, lang string) string {
	key, exists := errorCodeToKeyMap[code]
	if !exists {
		key = "unknown_error"
	}
	return i18n.GetInstance().Translate(key, lang)
}
