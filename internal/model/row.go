package model

import (
	"fmt"
	"strconv"
	"time"
)

// 表名
const (
	TableLinks     = "links"
	TableClicks    = "clicks"
	TableCampaigns = "campaigns"
	TableDomains   = "domains"
	TableUsers     = "users"
)

// Row 是存储介质保存的扁平行: 字段名到字符串值的映射。
// 类型转换只发生在各实体的 Row / FromRow 中。
type Row map[string]string

func formatBool(b bool) string {
	return strconv.FormatBool(b)
}

func formatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func formatOptTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func parseBool(r Row, key string) (bool, error) {
	v := r[key]
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("字段 %s: %w", key, err)
	}
	return b, nil
}

func parseInt(r Row, key string) (int64, error) {
	v := r[key]
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("字段 %s: %w", key, err)
	}
	return n, nil
}

func parseTime(r Row, key string) (time.Time, error) {
	v := r[key]
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("字段 %s: %w", key, err)
	}
	return t.UTC(), nil
}

func parseOptTime(r Row, key string) (*time.Time, error) {
	if r[key] == "" {
		return nil, nil
	}
	t, err := parseTime(r, key)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
