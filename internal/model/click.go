package model

import (
	"time"
)

// ClickColumns 是 clicks 表的固定列顺序
var ClickColumns = []string{
	"id", "link_id", "campaign_id", "ip_address", "user_agent", "referer",
	"device_type", "browser", "os", "created_at",
}

// Click 一次成功访问的点击记录, 写入后不再修改
type Click struct {
	ID         string    `json:"id"`
	LinkID     string    `json:"link_id"`
	CampaignID string    `json:"campaign_id,omitempty"`
	IPAddress  string    `json:"ip_address"`
	UserAgent  string    `json:"user_agent"`
	Referer    string    `json:"referer,omitempty"`
	DeviceType string    `json:"device_type"`
	Browser    string    `json:"browser"`
	OS         string    `json:"os"`
	CreatedAt  time.Time `json:"created_at"`
}

func (c Click) Row() Row {
	return Row{
		"id":          c.ID,
		"link_id":     c.LinkID,
		"campaign_id": c.CampaignID,
		"ip_address":  c.IPAddress,
		"user_agent":  c.UserAgent,
		"referer":     c.Referer,
		"device_type": c.DeviceType,
		"browser":     c.Browser,
		"os":          c.OS,
		"created_at":  formatTime(c.CreatedAt),
	}
}

func ClickFromRow(r Row) (Click, error) {
	createdAt, err := parseTime(r, "created_at")
	if err != nil {
		return Click{}, err
	}
	return Click{
		ID:         r["id"],
		LinkID:     r["link_id"],
		CampaignID: r["campaign_id"],
		IPAddress:  r["ip_address"],
		UserAgent:  r["user_agent"],
		Referer:    r["referer"],
		DeviceType: r["device_type"],
		Browser:    r["browser"],
		OS:         r["os"],
		CreatedAt:  createdAt,
	}, nil
}
