package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"shorturl-platform/internal/model"
)

// FileMedium 每张表一个 CSV 文件, 首行为表头, 行顺序即插入顺序
type FileMedium struct {
	dir string
}

// NewFileMedium 在 dir 下创建文件介质, 目录不存在时自动创建
func NewFileMedium(dir string) (*FileMedium, error) {
	const op = "store.NewFileMedium"

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, unavailable(op, err)
	}
	return &FileMedium{dir: dir}, nil
}

func (m *FileMedium) path(table string) string {
	return filepath.Join(m.dir, table+".csv")
}

func (m *FileMedium) Read(_ context.Context, table string, columns []string) ([]model.Row, error) {
	const op = "store.FileMedium.Read"

	f, err := os.Open(m.path(table))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, unavailable(op, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, unavailable(op, err)
	}

	var rows []model.Row
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, unavailable(op, err)
		}

		row := make(model.Row, len(columns))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Write 先写同目录临时文件再 rename, 读者只会看到完整的旧表或新表
func (m *FileMedium) Write(_ context.Context, table string, columns []string, rows []model.Row) error {
	const op = "store.FileMedium.Write"

	tmp, err := os.CreateTemp(m.dir, table+".*.tmp")
	if err != nil {
		return unavailable(op, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := writeCSV(tmp, columns, rows); err != nil {
		tmp.Close()
		return unavailable(op, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return unavailable(op, err)
	}
	if err := tmp.Close(); err != nil {
		return unavailable(op, err)
	}
	if err := os.Rename(tmpName, m.path(table)); err != nil {
		return unavailable(op, err)
	}
	return nil
}

func writeCSV(w io.Writer, columns []string, rows []model.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}

	record := make([]string, len(columns))
	for _, row := range rows {
		for i, name := range columns {
			record[i] = row[name]
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("写入行失败: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
