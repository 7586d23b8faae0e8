package shortcode

import (
	"context"
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"

	"shorturl-platform/internal/model"
)

const (
	// Charset 包含用于生成短码的所有字符
	Charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// DefaultLength 默认短码长度
	DefaultLength = 6
	// MinLength 和 MaxLength 限定短码长度范围
	MinLength = 6
	MaxLength = 8
	// DefaultMaxAttempts 单次分配的最大尝试次数
	DefaultMaxAttempts = 10
)

// LinkLoader 读取当前全部链接
type LinkLoader interface {
	LoadAll(ctx context.Context) ([]model.Link, error)
}

// Allocator 负责生成在链接表中不存在的短码
type Allocator struct {
	links       LinkLoader
	maxAttempts int
	random      func(length int) (string, error)
	logger      *zap.SugaredLogger
}

// Option 配置 Allocator
type Option func(*Allocator)

// WithMaxAttempts 设置单次分配的最大尝试次数
func WithMaxAttempts(n int) Option {
	return func(a *Allocator) {
		if n > 0 {
			a.maxAttempts = n
		}
	}
}

// WithRandom 替换随机串来源
func WithRandom(random func(length int) (string, error)) Option {
	return func(a *Allocator) {
		a.random = random
	}
}

// NewAllocator 创建一个新的短码分配器
func NewAllocator(links LinkLoader, logger *zap.SugaredLogger, opts ...Option) *Allocator {
	a := &Allocator{
		links:       links,
		maxAttempts: DefaultMaxAttempts,
		random:      generateRandomString,
		logger:      logger.Named("shortcode_allocator"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Allocate 扫描整张链接表, 返回当前未被占用的短码。
// 只保证单次调用内不冲突; 并发创建必须使用 Claim。
func (a *Allocator) Allocate(ctx context.Context, length int) (string, error) {
	const op = "shortcode.Allocator.Allocate"

	links, err := a.links.LoadAll(ctx)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	code, err := a.Claim(links, length)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return code, nil
}

// Claim 针对给定的链接快照挑选一个空闲短码。
// 调用方在链接表写锁内调用它, 检查与插入因此是原子的。
func (a *Allocator) Claim(links []model.Link, length int) (string, error) {
	const op = "shortcode.Allocator.Claim"

	if length == 0 {
		length = DefaultLength
	}
	if length < MinLength || length > MaxLength {
		return "", fmt.Errorf("%s: %w", op, model.Invalid("length", fmt.Sprintf("must be between %d and %d", MinLength, MaxLength)))
	}

	taken := make(map[string]struct{}, len(links))
	for _, l := range links {
		taken[l.ShortCode] = struct{}{}
	}

	for i := 0; i < a.maxAttempts; i++ {
		code, err := a.random(length)
		if err != nil {
			return "", fmt.Errorf("%s: 生成随机串失败: %w", op, err)
		}
		if _, exists := taken[code]; !exists {
			return code, nil
		}
	}

	a.logger.Warnf("已尝试 %d 次生成短码，但均存在冲突。", a.maxAttempts)
	return "", fmt.Errorf("%s: %w", op, model.ErrAllocationExhausted)
}

// generateRandomString 使用加密安全的随机源从 Charset 中均匀抽取字符
func generateRandomString(length int) (string, error) {
	return gonanoid.Generate(Charset, length)
}

// Valid 判断 code 是否是合法格式的短码
func Valid(code string) bool {
	if len(code) < MinLength || len(code) > MaxLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}
