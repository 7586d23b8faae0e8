// Package resolver 把入站短码解析为 未找到 / 已过期 / 伪装页 / 重定向 四种结果之一。
package resolver

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"shorturl-platform/internal/click"
	"shorturl-platform/internal/model"
)

// Outcome 解析结果
type Outcome int

const (
	OutcomeNotFound Outcome = iota
	OutcomeExpired
	OutcomeCloaked
	OutcomeRedirect
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNotFound:
		return "not_found"
	case OutcomeExpired:
		return "expired"
	case OutcomeCloaked:
		return "cloaked"
	case OutcomeRedirect:
		return "redirect"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result 解析结果及命中的链接
type Result struct {
	Outcome Outcome
	Link    model.Link
	Click   model.Click
}

// LinkFinder 在链接表中查找
type LinkFinder interface {
	Find(ctx context.Context, match func(model.Link) bool) (model.Link, bool, error)
}

// ClickRecorder 点击写入管道
type ClickRecorder interface {
	Record(ctx context.Context, link model.Link, meta click.RequestMeta) (model.Click, error)
}

// LinkCache 短码查找的读穿透缓存, 可以为 nil
type LinkCache interface {
	Get(ctx context.Context, code string) (model.Link, bool)
	Set(ctx context.Context, link model.Link)
}

// Resolver 短码解析器
type Resolver struct {
	links  LinkFinder
	clicks ClickRecorder
	cache  LinkCache
	logger *zap.SugaredLogger
	now    func() time.Time
}

// New 创建解析器, cache 为 nil 时直接查表
func New(links LinkFinder, clicks ClickRecorder, cache LinkCache, logger *zap.SugaredLogger) *Resolver {
	return &Resolver{
		links:  links,
		clicks: clicks,
		cache:  cache,
		logger: logger.Named("resolver"),
		now:    time.Now,
	}
}

// Resolve 解析短码。未找到或已过期时同时返回 model.ErrNotFound / model.ErrExpired,
// 这两种情况下不记录点击。
func (r *Resolver) Resolve(ctx context.Context, code string, meta click.RequestMeta) (Result, error) {
	const op = "resolver.Resolver.Resolve"

	link, found, err := r.lookup(ctx, code)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return Result{Outcome: OutcomeNotFound}, model.ErrNotFound
	}

	if link.ExpiredAt(r.now()) {
		return Result{Outcome: OutcomeExpired, Link: link}, model.ErrExpired
	}

	if link.HasPassword() {
		r.logger.Debugw("链接设置了密码, 当前不做校验", "short_code", link.ShortCode)
	}

	c, err := r.clicks.Record(ctx, link, meta)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}

	outcome := OutcomeRedirect
	if link.IsCloaked {
		outcome = OutcomeCloaked
	}
	return Result{Outcome: outcome, Link: link, Click: c}, nil
}

func (r *Resolver) lookup(ctx context.Context, code string) (model.Link, bool, error) {
	if r.cache != nil {
		if link, ok := r.cache.Get(ctx, code); ok && link.IsActive {
			return link, true, nil
		}
	}

	link, found, err := r.links.Find(ctx, func(l model.Link) bool {
		return l.ShortCode == code && l.IsActive
	})
	if err != nil || !found {
		return model.Link{}, false, err
	}

	if r.cache != nil {
		r.cache.Set(ctx, link)
	}
	return link, true, nil
}
