package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound 短码不存在或链接已停用
	ErrNotFound = errors.New("not found")
	// ErrExpired 链接已过期
	ErrExpired = errors.New("expired")
	// ErrStorageUnavailable 底层存储不可读或不可写
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrAllocationExhausted 在限定次数内找不到可用短码
	ErrAllocationExhausted = errors.New("short code allocation exhausted")
	// ErrValidation 创建请求字段缺失或格式错误
	ErrValidation = errors.New("validation error")

	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
)

// ValidationError 描述单个字段的校验失败
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is 让 errors.Is(err, ErrValidation) 成立
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Invalid 构造一个字段校验错误
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
