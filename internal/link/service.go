// Package link 负责短链接的创建与查询。
package link

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"shorturl-platform/internal/model"
	"shorturl-platform/internal/shortcode"
	"shorturl-platform/internal/store"
)

const maxTitleLength = 255

// CreateInput 创建短链接的输入
type CreateInput struct {
	OriginalURL      string
	Title            string
	Description      string
	CampaignID       string
	DomainID         string
	IsCloaked        bool
	CloakTitle       string
	CloakDescription string
	Password         string
	ExpiresAt        *time.Time
}

// Service 短链接服务
type Service struct {
	store      *store.Store
	allocator  *shortcode.Allocator
	codeLength int
	baseURL    string
	logger     *zap.SugaredLogger
	now        func() time.Time
}

// NewService 创建短链接服务
func NewService(s *store.Store, allocator *shortcode.Allocator, codeLength int, baseURL string, logger *zap.SugaredLogger) *Service {
	return &Service{
		store:      s,
		allocator:  allocator,
		codeLength: codeLength,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger.Named("link_service"),
		now:        time.Now,
	}
}

// Create 校验输入, 分配短码并持久化新链接。
// 短码在链接表写锁内分配, 并发创建不会写入重复短码。
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (model.Link, error) {
	const op = "link.Service.Create"

	if err := s.validate(ctx, userID, &in); err != nil {
		return model.Link{}, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now().UTC()
	l := model.Link{
		ID:          uuid.NewString(),
		UserID:      userID,
		OriginalURL: in.OriginalURL,
		Title:       in.Title,
		Description: in.Description,
		CampaignID:  in.CampaignID,
		DomainID:    in.DomainID,
		IsCloaked:   in.IsCloaked,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.IsCloaked {
		l.CloakTitle = in.CloakTitle
		l.CloakDescription = in.CloakDescription
	}
	if in.ExpiresAt != nil {
		expires := in.ExpiresAt.UTC()
		l.ExpiresAt = &expires
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return model.Link{}, fmt.Errorf("%s: 密码加密失败: %w", op, err)
		}
		l.PasswordHash = string(hash)
	}

	err := s.store.Links.Update(ctx, func(links []model.Link) ([]model.Link, error) {
		code, err := s.allocator.Claim(links, s.codeLength)
		if err != nil {
			return nil, err
		}
		l.ShortCode = code
		return append(links, l), nil
	})
	if err != nil {
		return model.Link{}, fmt.Errorf("%s: %w", op, err)
	}

	s.logger.Infow("短链接创建成功", "link_id", l.ID, "short_code", l.ShortCode, "user_id", userID)
	return l, nil
}

func (s *Service) validate(ctx context.Context, userID string, in *CreateInput) error {
	in.OriginalURL = strings.TrimSpace(in.OriginalURL)
	if in.OriginalURL == "" {
		return model.Invalid("original_url", "is required")
	}
	u, err := url.ParseRequestURI(in.OriginalURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return model.Invalid("original_url", "must be an absolute http or https URL")
	}
	if utf8.RuneCountInString(in.Title) > maxTitleLength {
		return model.Invalid("title", fmt.Sprintf("must be at most %d characters", maxTitleLength))
	}
	if utf8.RuneCountInString(in.CloakTitle) > maxTitleLength {
		return model.Invalid("cloak_title", fmt.Sprintf("must be at most %d characters", maxTitleLength))
	}

	if in.CampaignID != "" {
		_, found, err := s.store.Campaigns.Find(ctx, func(c model.Campaign) bool {
			return c.ID == in.CampaignID && c.UserID == userID
		})
		if err != nil {
			return err
		}
		if !found {
			return model.Invalid("campaign_id", "unknown campaign")
		}
	}
	if in.DomainID != "" {
		_, found, err := s.store.Domains.Find(ctx, func(d model.Domain) bool {
			return d.ID == in.DomainID && d.UserID == userID
		})
		if err != nil {
			return err
		}
		if !found {
			return model.Invalid("domain_id", "unknown domain")
		}
	}
	return nil
}

// List 返回用户的全部链接, 按创建顺序
func (s *Service) List(ctx context.Context, userID string) ([]model.Link, error) {
	const op = "link.Service.List"

	links, err := s.store.Links.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	owned := make([]model.Link, 0, len(links))
	for _, l := range links {
		if l.UserID == userID {
			owned = append(owned, l)
		}
	}
	return owned, nil
}

// ShortURL 拼接短链接地址: 绑定了自定义域名时使用该域名
func (s *Service) ShortURL(ctx context.Context, l model.Link) (string, error) {
	const op = "link.Service.ShortURL"

	if l.DomainID != "" {
		d, found, err := s.store.Domains.Find(ctx, func(d model.Domain) bool { return d.ID == l.DomainID })
		if err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
		if found && d.Host != "" {
			return "https://" + d.Host + "/" + l.ShortCode, nil
		}
	}
	return s.baseURL + "/" + l.ShortCode, nil
}
