package model

import (
	"time"
)

// LinkColumns 是 links 表的固定列顺序
var LinkColumns = []string{
	"id", "user_id", "original_url", "short_code", "title", "description",
	"campaign_id", "domain_id", "is_cloaked", "cloak_title", "cloak_description",
	"password_hash", "expires_at", "is_active", "click_count", "created_at", "updated_at",
}

// Link 短链接记录
type Link struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	OriginalURL      string     `json:"original_url"`
	ShortCode        string     `json:"short_code"`
	Title            string     `json:"title,omitempty"`
	Description      string     `json:"description,omitempty"`
	CampaignID       string     `json:"campaign_id,omitempty"`
	DomainID         string     `json:"domain_id,omitempty"`
	IsCloaked        bool       `json:"is_cloaked"`
	CloakTitle       string     `json:"cloak_title,omitempty"`
	CloakDescription string     `json:"cloak_description,omitempty"`
	PasswordHash     string     `json:"-"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
	IsActive         bool       `json:"is_active"`
	ClickCount       int64      `json:"click_count"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// HasPassword 链接是否设置了访问密码
func (l Link) HasPassword() bool {
	return l.PasswordHash != ""
}

// ExpiredAt 判断链接在 now 时刻是否已过期
func (l Link) ExpiredAt(now time.Time) bool {
	return l.ExpiresAt != nil && l.ExpiresAt.Before(now)
}

// DisplayTitle 没有标题时退回原始 URL
func (l Link) DisplayTitle() string {
	if l.Title != "" {
		return l.Title
	}
	return l.OriginalURL
}

func (l Link) Row() Row {
	return Row{
		"id":                l.ID,
		"user_id":           l.UserID,
		"original_url":      l.OriginalURL,
		"short_code":        l.ShortCode,
		"title":             l.Title,
		"description":       l.Description,
		"campaign_id":       l.CampaignID,
		"domain_id":         l.DomainID,
		"is_cloaked":        formatBool(l.IsCloaked),
		"cloak_title":       l.CloakTitle,
		"cloak_description": l.CloakDescription,
		"password_hash":     l.PasswordHash,
		"expires_at":        formatOptTime(l.ExpiresAt),
		"is_active":         formatBool(l.IsActive),
		"click_count":       formatInt(l.ClickCount),
		"created_at":        formatTime(l.CreatedAt),
		"updated_at":        formatTime(l.UpdatedAt),
	}
}

func LinkFromRow(r Row) (Link, error) {
	l := Link{
		ID:               r["id"],
		UserID:           r["user_id"],
		OriginalURL:      r["original_url"],
		ShortCode:        r["short_code"],
		Title:            r["title"],
		Description:      r["description"],
		CampaignID:       r["campaign_id"],
		DomainID:         r["domain_id"],
		CloakTitle:       r["cloak_title"],
		CloakDescription: r["cloak_description"],
		PasswordHash:     r["password_hash"],
	}

	var err error
	if l.IsCloaked, err = parseBool(r, "is_cloaked"); err != nil {
		return Link{}, err
	}
	if l.IsActive, err = parseBool(r, "is_active"); err != nil {
		return Link{}, err
	}
	if l.ClickCount, err = parseInt(r, "click_count"); err != nil {
		return Link{}, err
	}
	if l.ExpiresAt, err = parseOptTime(r, "expires_at"); err != nil {
		return Link{}, err
	}
	if l.CreatedAt, err = parseTime(r, "created_at"); err != nil {
		return Link{}, err
	}
	if l.UpdatedAt, err = parseTime(r, "updated_at"); err != nil {
		return Link{}, err
	}
	return l, nil
}
