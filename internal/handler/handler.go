package handler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shorturl-platform/internal/analytics"
	"shorturl-platform/internal/click"
	"shorturl-platform/internal/link"
	"shorturl-platform/internal/middleware"
	"shorturl-platform/internal/model"
	"shorturl-platform/internal/resolver"
	"shorturl-platform/internal/shortcode"
)

// ShortLinkHandler 处理器
type ShortLinkHandler struct {
	links      *link.Service
	resolver   *resolver.Resolver
	pipeline   *click.Pipeline
	analytics  *analytics.Aggregator
	cloakDelay time.Duration
	logger     *zap.SugaredLogger
}

// NewShortLinkHandler 创建处理器实例
func NewShortLinkHandler(
	links *link.Service,
	res *resolver.Resolver,
	pipeline *click.Pipeline,
	aggregator *analytics.Aggregator,
	cloakDelay time.Duration,
	logger *zap.SugaredLogger,
) *ShortLinkHandler {
	return &ShortLinkHandler{
		links:      links,
		resolver:   res,
		pipeline:   pipeline,
		analytics:  aggregator,
		cloakDelay: cloakDelay,
		logger:     logger.Named("link_handler"),
	}
}

// HealthCheck godoc
// @Summary 健康检查
// @Tags System
// @Produce  json
// @Success 200 {object} map[string]any
// @Router /health [get]
func (h *ShortLinkHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
}

// CreateShortLinkRequest 创建短链接请求
type CreateShortLinkRequest struct {
	OriginalURL      string     `json:"original_url" example:"https://github.com/gin-gonic/gin"`
	Title            string     `json:"title" example:"Gin"`
	Description      string     `json:"description"`
	CampaignID       string     `json:"campaign_id"`
	DomainID         string     `json:"domain_id"`
	IsCloaked        bool       `json:"is_cloaked"`
	CloakTitle       string     `json:"cloak_title"`
	CloakDescription string     `json:"cloak_description"`
	Password         string     `json:"password"`
	ExpiresAt        *time.Time `json:"expires_at" example:"2030-01-01T00:00:00Z"`
}

// LinkResponse 链接及其完整短链接地址
type LinkResponse struct {
	model.Link
	ShortURL string `json:"short_url" example:"http://localhost:8080/xxxxxx"`
}

// CreateShortLink godoc
// @Summary 创建短链接
// @Description 为一个长 URL 创建一个新的短链接
// @Tags ShortLink
// @Security ApiKeyAuth
// @Accept  json
// @Produce  json
// @Param   link  body   CreateShortLinkRequest  true  "短链接参数"
// @Success 201 {object} LinkResponse "成功响应"
// @Failure 400 {object} ErrorResponse "请求无效"
// @Failure 503 {object} ErrorResponse "短码分配失败"
// @Failure 500 {object} ErrorResponse "服务器内部错误"
// @Router /api/links [post]
func (h *ShortLinkHandler) CreateShortLink(c *gin.Context) {
	var req CreateShortLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	l, err := h.links.Create(ctx, c.GetString(middleware.ContextUserID), link.CreateInput{
		OriginalURL:      req.OriginalURL,
		Title:            req.Title,
		Description:      req.Description,
		CampaignID:       req.CampaignID,
		DomainID:         req.DomainID,
		IsCloaked:        req.IsCloaked,
		CloakTitle:       req.CloakTitle,
		CloakDescription: req.CloakDescription,
		Password:         req.Password,
		ExpiresAt:        req.ExpiresAt,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	resp, err := h.linkResponse(c, l)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// RedirectToOriginal godoc
// @Summary 访问短链接
// @Description 直接跳转 (302) 或返回伪装页面 (200 text/html)
// @Tags ShortLink
// @Produce  html
// @Param   code  path  string  true  "短码"
// @Success 200 {string} string "伪装页面"
// @Success 302 {string} string "跳转到原始链接"
// @Failure 404 {object} ErrorResponse "链接不存在或已禁用"
// @Failure 410 {object} ErrorResponse "链接已过期"
// @Router /{code} [get]
func (h *ShortLinkHandler) RedirectToOriginal(c *gin.Context) {
	code := c.Param("code")
	if !shortcode.Valid(code) {
		respondError(c, h.logger, model.ErrNotFound)
		return
	}

	res, err := h.resolver.Resolve(c.Request.Context(), code, click.RequestMeta{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Referer:   c.Request.Referer(),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if res.Outcome == resolver.OutcomeCloaked {
		var page bytes.Buffer
		if err := resolver.RenderCloakPage(&page, res.Link, h.cloakDelay); err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", page.Bytes())
		return
	}

	c.Redirect(http.StatusFound, res.Link.OriginalURL)
}

// GetAllLinks godoc
// @Summary 获取我的短链接
// @Tags ShortLink
// @Security ApiKeyAuth
// @Produce  json
// @Success 200 {array} LinkResponse
// @Failure 401 {object} ErrorResponse "未认证"
// @Router /api/links [get]
func (h *ShortLinkHandler) GetAllLinks(c *gin.Context) {
	links, err := h.links.List(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	resp := make([]LinkResponse, 0, len(links))
	for _, l := range links {
		r, err := h.linkResponse(c, l)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		resp = append(resp, r)
	}
	c.JSON(http.StatusOK, resp)
}

// GetAnalytics godoc
// @Summary 点击统计
// @Description 汇总当前用户所有链接的点击数据, 每次实时计算
// @Tags Analytics
// @Security ApiKeyAuth
// @Produce  json
// @Success 200 {object} analytics.Summary
// @Failure 401 {object} ErrorResponse "未认证"
// @Failure 500 {object} ErrorResponse "存储不可用"
// @Router /api/analytics [get]
func (h *ShortLinkHandler) GetAnalytics(c *gin.Context) {
	summary, err := h.analytics.Aggregate(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Reconcile godoc
// @Summary 校正点击计数
// @Description 按点击日志重新计算每个链接的 click_count
// @Tags Admin
// @Security ApiKeyAuth
// @Produce  json
// @Success 200 {object} map[string]int
// @Failure 403 {object} ErrorResponse "需要管理员权限"
// @Router /api/admin/reconcile [post]
func (h *ShortLinkHandler) Reconcile(c *gin.Context) {
	fixed, err := h.pipeline.Reconcile(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fixed": fixed})
}

func (h *ShortLinkHandler) linkResponse(c *gin.Context, l model.Link) (LinkResponse, error) {
	shortURL, err := h.links.ShortURL(c.Request.Context(), l)
	if err != nil {
		return LinkResponse{}, err
	}
	return LinkResponse{Link: l, ShortURL: shortURL}, nil
}
