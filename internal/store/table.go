package store

import (
	"context"
	"fmt"
	"sync"

	"shorturl-platform/internal/model"
)

// Table 是介质上的一张类型化表。
// 同一张表的写入严格串行, 读取可以并发, 读到的总是最近提交的快照。
type Table[T any] struct {
	name    string
	columns []string
	medium  Medium
	encode  func(T) model.Row
	decode  func(model.Row) (T, error)

	mu sync.RWMutex
}

func newTable[T any](name string, columns []string, medium Medium, encode func(T) model.Row, decode func(model.Row) (T, error)) *Table[T] {
	return &Table[T]{
		name:    name,
		columns: columns,
		medium:  medium,
		encode:  encode,
		decode:  decode,
	}
}

// Name 表名
func (t *Table[T]) Name() string {
	return t.name
}

// LoadAll 按插入顺序返回全部行
func (t *Table[T]) LoadAll(ctx context.Context) ([]T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.load(ctx)
}

// Find 返回第一条满足 match 的行
func (t *Table[T]) Find(ctx context.Context, match func(T) bool) (T, bool, error) {
	var zero T

	items, err := t.LoadAll(ctx)
	if err != nil {
		return zero, false, err
	}
	for _, item := range items {
		if match(item) {
			return item, true, nil
		}
	}
	return zero, false, nil
}

// Append 追加一行: 读全表、追加、重写全表, 整个过程持有写锁
func (t *Table[T]) Append(ctx context.Context, item T) error {
	return t.Update(ctx, func(items []T) ([]T, error) {
		return append(items, item), nil
	})
}

// ReplaceAll 用 items 整体替换表内容
func (t *Table[T]) ReplaceAll(ctx context.Context, items []T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.write(context.WithoutCancel(ctx), items)
}

// Update 在写锁内执行读-改-写。fn 返回错误时不写入。
// 写入不随 ctx 取消而中断, 已开始的重写总会完成。
func (t *Table[T]) Update(ctx context.Context, fn func([]T) ([]T, error)) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	ctx = context.WithoutCancel(ctx)

	items, err := t.load(ctx)
	if err != nil {
		return err
	}
	next, err := fn(items)
	if err != nil {
		return err
	}
	return t.write(ctx, next)
}

func (t *Table[T]) load(ctx context.Context) ([]T, error) {
	op := "store.Table[" + t.name + "].load"

	rows, err := t.medium.Read(ctx, t.name, t.columns)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items := make([]T, 0, len(rows))
	for i, row := range rows {
		item, err := t.decode(row)
		if err != nil {
			return nil, unavailable(op, fmt.Errorf("第 %d 行: %w", i+1, err))
		}
		items = append(items, item)
	}
	return items, nil
}

func (t *Table[T]) write(ctx context.Context, items []T) error {
	op := "store.Table[" + t.name + "].write"

	rows := make([]model.Row, len(items))
	for i, item := range items {
		rows[i] = t.encode(item)
	}
	if err := t.medium.Write(ctx, t.name, t.columns, rows); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
