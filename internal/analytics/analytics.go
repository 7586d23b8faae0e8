// Package analytics 按用户汇总点击统计, 只读, 每次调用都重新计算。
package analytics

import (
	"context"
	"fmt"
	"slices"

	"shorturl-platform/internal/model"
)

// TopLinksLimit 排行榜长度
const TopLinksLimit = 5

// Summary 统计结果
type Summary struct {
	TotalClicks  int           `json:"totalClicks"`
	UniqueClicks int           `json:"uniqueClicks"`
	TopLinks     []TopLink     `json:"topLinks"`
	DeviceTypes  []DeviceCount `json:"deviceTypes"`
	ClicksByDay  []DayCount    `json:"clicksByDay"`
}

type TopLink struct {
	ShortCode string `json:"short_code"`
	Title     string `json:"title"`
	Clicks    int64  `json:"clicks"`
}

type DeviceCount struct {
	Device string `json:"device"`
	Clicks int    `json:"clicks"`
}

type DayCount struct {
	Date   string `json:"date"`
	Clicks int    `json:"clicks"`
}

// Loader 读取整张表
type Loader[T any] interface {
	LoadAll(ctx context.Context) ([]T, error)
}

// Aggregator 统计聚合器
type Aggregator struct {
	links  Loader[model.Link]
	clicks Loader[model.Click]
}

func NewAggregator(links Loader[model.Link], clicks Loader[model.Click]) *Aggregator {
	return &Aggregator{links: links, clicks: clicks}
}

// Aggregate 计算 userID 名下链接的统计。
// 不做时间范围过滤, 总是基于完整点击历史。
func (a *Aggregator) Aggregate(ctx context.Context, userID string) (*Summary, error) {
	const op = "analytics.Aggregator.Aggregate"

	links, err := a.links.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	clicks, err := a.clicks.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	owned := make(map[string]struct{})
	var ownedLinks []model.Link
	for _, l := range links {
		if l.UserID == userID {
			owned[l.ID] = struct{}{}
			ownedLinks = append(ownedLinks, l)
		}
	}

	summary := &Summary{
		TopLinks:    topLinks(ownedLinks),
		DeviceTypes: []DeviceCount{},
		ClicksByDay: []DayCount{},
	}

	ips := make(map[string]struct{})
	deviceIdx := make(map[string]int)
	dayIdx := make(map[string]int)

	for _, c := range clicks {
		if _, ok := owned[c.LinkID]; !ok {
			continue
		}
		summary.TotalClicks++
		ips[c.IPAddress] = struct{}{}

		if i, ok := deviceIdx[c.DeviceType]; ok {
			summary.DeviceTypes[i].Clicks++
		} else {
			deviceIdx[c.DeviceType] = len(summary.DeviceTypes)
			summary.DeviceTypes = append(summary.DeviceTypes, DeviceCount{Device: c.DeviceType, Clicks: 1})
		}

		day := c.CreatedAt.UTC().Format("2006-01-02")
		if i, ok := dayIdx[day]; ok {
			summary.ClicksByDay[i].Clicks++
		} else {
			dayIdx[day] = len(summary.ClicksByDay)
			summary.ClicksByDay = append(summary.ClicksByDay, DayCount{Date: day, Clicks: 1})
		}
	}
	summary.UniqueClicks = len(ips)

	return summary, nil
}

// topLinks 按 click_count 降序取前五, 并列时保持插入顺序
func topLinks(links []model.Link) []TopLink {
	sorted := slices.Clone(links)
	slices.SortStableFunc(sorted, func(a, b model.Link) int {
		switch {
		case a.ClickCount > b.ClickCount:
			return -1
		case a.ClickCount < b.ClickCount:
			return 1
		default:
			return 0
		}
	})
	if len(sorted) > TopLinksLimit {
		sorted = sorted[:TopLinksLimit]
	}

	top := make([]TopLink, 0, len(sorted))
	for _, l := range sorted {
		top = append(top, TopLink{ShortCode: l.ShortCode, Title: l.DisplayTitle(), Clicks: l.ClickCount})
	}
	return top
}
