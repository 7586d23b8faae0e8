package model

import (
	"time"
)

var CampaignColumns = []string{"id", "user_id", "name", "created_at"}

// Campaign 营销活动, 核心只读取其 id 用于点击冗余
type Campaign struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (c Campaign) Row() Row {
	return Row{
		"id":         c.ID,
		"user_id":    c.UserID,
		"name":       c.Name,
		"created_at": formatTime(c.CreatedAt),
	}
}

func CampaignFromRow(r Row) (Campaign, error) {
	createdAt, err := parseTime(r, "created_at")
	if err != nil {
		return Campaign{}, err
	}
	return Campaign{ID: r["id"], UserID: r["user_id"], Name: r["name"], CreatedAt: createdAt}, nil
}

var DomainColumns = []string{"id", "user_id", "host", "created_at"}

// Domain 自定义短链域名, 用于拼接短链接地址
type Domain struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Host      string    `json:"host"`
	CreatedAt time.Time `json:"created_at"`
}

func (d Domain) Row() Row {
	return Row{
		"id":         d.ID,
		"user_id":    d.UserID,
		"host":       d.Host,
		"created_at": formatTime(d.CreatedAt),
	}
}

func DomainFromRow(r Row) (Domain, error) {
	createdAt, err := parseTime(r, "created_at")
	if err != nil {
		return Domain{}, err
	}
	return Domain{ID: r["id"], UserID: r["user_id"], Host: r["host"], CreatedAt: createdAt}, nil
}
