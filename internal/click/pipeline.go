// Package click 记录点击事件并维护链接的点击计数。
package click

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shorturl-platform/internal/model"
	"shorturl-platform/internal/store"
)

// RequestMeta 一次访问的请求元数据
type RequestMeta struct {
	IP        string
	UserAgent string
	Referer   string
}

// Pipeline 点击写入管道。
// click_count 只是点击日志的缓存投影, 随时可以用 Reconcile 重新计算。
type Pipeline struct {
	store  *store.Store
	logger *zap.SugaredLogger
	now    func() time.Time

	// 保证点击追加和计数更新两步写入不与其他 Record 交错
	mu sync.Mutex
}

// NewPipeline 创建点击管道
func NewPipeline(s *store.Store, logger *zap.SugaredLogger) *Pipeline {
	return &Pipeline{
		store:  s,
		logger: logger.Named("click_pipeline"),
		now:    time.Now,
	}
}

// Record 为一次成功解析的访问写入点击记录, 并将链接的 click_count 加 1
func (p *Pipeline) Record(ctx context.Context, link model.Link, meta RequestMeta) (model.Click, error) {
	const op = "click.Pipeline.Record"

	device := Classify(meta.UserAgent)
	now := p.now().UTC()

	c := model.Click{
		ID:         uuid.NewString(),
		LinkID:     link.ID,
		CampaignID: link.CampaignID,
		IPAddress:  meta.IP,
		UserAgent:  meta.UserAgent,
		Referer:    meta.Referer,
		DeviceType: device.Type,
		Browser:    device.Browser,
		OS:         device.OS,
		CreatedAt:  now,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.store.Clicks.Append(ctx, c); err != nil {
		return model.Click{}, fmt.Errorf("%s: 写入点击记录失败: %w", op, err)
	}

	err := p.store.Links.Update(ctx, func(links []model.Link) ([]model.Link, error) {
		for i := range links {
			if links[i].ID == link.ID {
				links[i].ClickCount++
				links[i].UpdatedAt = now
				return links, nil
			}
		}
		return nil, model.ErrNotFound
	})
	if err != nil {
		// 点击已落盘而计数未更新, 由 Reconcile 修复
		p.logger.Errorw("更新点击计数失败", "link_id", link.ID, "click_id", c.ID, "error", err)
		return c, fmt.Errorf("%s: 更新点击计数失败: %w", op, err)
	}

	return c, nil
}

// Reconcile 以点击日志为准重算所有链接的 click_count, 返回被修正的链接数
func (p *Pipeline) Reconcile(ctx context.Context) (int, error) {
	const op = "click.Pipeline.Reconcile"

	p.mu.Lock()
	defer p.mu.Unlock()

	clicks, err := p.store.Clicks.LoadAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	counts := make(map[string]int64)
	for _, c := range clicks {
		counts[c.LinkID]++
	}

	changed := 0
	err = p.store.Links.Update(ctx, func(links []model.Link) ([]model.Link, error) {
		changed = 0
		for i := range links {
			if want := counts[links[i].ID]; links[i].ClickCount != want {
				p.logger.Warnw("点击计数不一致, 已修正", "link_id", links[i].ID, "cached", links[i].ClickCount, "actual", want)
				links[i].ClickCount = want
				changed++
			}
		}
		return links, nil
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	p.logger.Infof("点击计数校对完成, 修正 %d 个链接", changed)
	return changed, nil
}
