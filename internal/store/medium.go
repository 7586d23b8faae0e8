// Package store 实现记录存储: 在扁平行介质之上提供按表串行写入的类型化表。
package store

import (
	"context"
	"fmt"

	"shorturl-platform/internal/model"
)

// Medium 是底层存储介质。Write 总是整表重写。
type Medium interface {
	Read(ctx context.Context, table string, columns []string) ([]model.Row, error)
	Write(ctx context.Context, table string, columns []string, rows []model.Row) error
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, model.ErrStorageUnavailable, err)
}
