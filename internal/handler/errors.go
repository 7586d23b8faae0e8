package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shorturl-platform/internal/model"
)

// ErrorResponse 错误响应
type ErrorResponse struct {
	Error   string `json:"error" example:"not_found"`
	Message string `json:"message" example:"链接不存在或已禁用"`
}

func respond(c *gin.Context, status int, kind, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: kind, Message: message})
}

func badRequest(c *gin.Context, err error) {
	respond(c, http.StatusBadRequest, "bad_request", "无效的请求数据: "+err.Error())
}

// respondError 将领域错误映射为状态码, 存储错误只记录日志, 不向客户端暴露细节
func respondError(c *gin.Context, logger *zap.SugaredLogger, err error) {
	var ve *model.ValidationError
	switch {
	case errors.As(err, &ve):
		respond(c, http.StatusBadRequest, "validation_error", ve.Error())
	case errors.Is(err, model.ErrNotFound):
		respond(c, http.StatusNotFound, "not_found", "链接不存在或已禁用")
	case errors.Is(err, model.ErrExpired):
		respond(c, http.StatusGone, "expired", "链接已过期")
	case errors.Is(err, model.ErrUsernameTaken):
		respond(c, http.StatusConflict, "validation_error", "用户名已存在")
	case errors.Is(err, model.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, "unauthorized", "用户名或密码错误")
	case errors.Is(err, model.ErrAccountDisabled):
		respond(c, http.StatusForbidden, "forbidden", "账户已被禁用")
	case errors.Is(err, model.ErrAllocationExhausted):
		logger.Errorw("短码分配失败", "path", c.Request.URL.Path, "error", err)
		respond(c, http.StatusServiceUnavailable, "allocation_exhausted", "暂时无法分配短码, 请稍后重试")
	case errors.Is(err, model.ErrStorageUnavailable):
		logger.Errorw("存储不可用", "path", c.Request.URL.Path, "error", err)
		respond(c, http.StatusInternalServerError, "storage_unavailable", "存储暂时不可用")
	default:
		logger.Errorw("请求处理失败", "path", c.Request.URL.Path, "error", err)
		respond(c, http.StatusInternalServerError, "internal_error", "服务器内部错误")
	}
}
