package analytics

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shorturl-platform/internal/model"
)

type rows[T any] struct {
	items []T
	err   error
}

func (r rows[T]) LoadAll(context.Context) ([]T, error) {
	return r.items, r.err
}

func day(d, h int) time.Time {
	return time.Date(2026, 4, d, h, 0, 0, 0, time.UTC)
}

func TestAggregate(t *testing.T) {
	links := []model.Link{
		{ID: "a", UserID: "alice", ShortCode: "aaaaaa", Title: "Alpha", OriginalURL: "https://a.example", ClickCount: 2},
		{ID: "b", UserID: "alice", ShortCode: "bbbbbb", OriginalURL: "https://b.example", ClickCount: 1},
		{ID: "x", UserID: "bob", ShortCode: "xxxxxx", OriginalURL: "https://x.example", ClickCount: 9},
	}
	clicks := []model.Click{
		{LinkID: "a", IPAddress: "1.1.1.1", DeviceType: "mobile", CreatedAt: day(2, 23)},
		{LinkID: "x", IPAddress: "9.9.9.9", DeviceType: "bot", CreatedAt: day(1, 1)},
		{LinkID: "b", IPAddress: "1.1.1.1", DeviceType: "desktop", CreatedAt: day(1, 8)},
		{LinkID: "a", IPAddress: "2.2.2.2", DeviceType: "mobile", CreatedAt: day(2, 9)},
	}

	agg := NewAggregator(rows[model.Link]{items: links}, rows[model.Click]{items: clicks})
	got, err := agg.Aggregate(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, 3, got.TotalClicks)
	assert.Equal(t, 2, got.UniqueClicks)
	assert.Equal(t, []TopLink{
		{ShortCode: "aaaaaa", Title: "Alpha", Clicks: 2},
		{ShortCode: "bbbbbb", Title: "https://b.example", Clicks: 1},
	}, got.TopLinks)
	assert.Equal(t, []DeviceCount{{Device: "mobile", Clicks: 2}, {Device: "desktop", Clicks: 1}}, got.DeviceTypes)
	assert.Equal(t, []DayCount{{Date: "2026-04-02", Clicks: 2}, {Date: "2026-04-01", Clicks: 1}}, got.ClicksByDay)
}

func TestAggregateTopLinksLimitAndTies(t *testing.T) {
	var links []model.Link
	counts := []int64{3, 5, 3, 0, 5, 1, 3}
	for i, c := range counts {
		links = append(links, model.Link{ID: fmt.Sprint(i), UserID: "u", ShortCode: fmt.Sprintf("code%02d", i), ClickCount: c})
	}

	agg := NewAggregator(rows[model.Link]{items: links}, rows[model.Click]{})
	got, err := agg.Aggregate(context.Background(), "u")
	require.NoError(t, err)

	var codes []string
	for _, l := range got.TopLinks {
		codes = append(codes, l.ShortCode)
	}
	assert.Equal(t, []string{"code01", "code04", "code00", "code02", "code06"}, codes)
}

func TestAggregateUsesUTCDates(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	links := []model.Link{{ID: "a", UserID: "u"}}
	clicks := []model.Click{{LinkID: "a", CreatedAt: time.Date(2026, 4, 2, 3, 0, 0, 0, tokyo)}}

	agg := NewAggregator(rows[model.Link]{items: links}, rows[model.Click]{items: clicks})
	got, err := agg.Aggregate(context.Background(), "u")
	require.NoError(t, err)
	assert.Equal(t, []DayCount{{Date: "2026-04-01", Clicks: 1}}, got.ClicksByDay)
}

func TestAggregateEmpty(t *testing.T) {
	agg := NewAggregator(rows[model.Link]{}, rows[model.Click]{})
	got, err := agg.Aggregate(context.Background(), "nobody")
	require.NoError(t, err)

	assert.Zero(t, got.TotalClicks)
	assert.Zero(t, got.UniqueClicks)
	assert.NotNil(t, got.TopLinks)
	assert.NotNil(t, got.DeviceTypes)
	assert.NotNil(t, got.ClicksByDay)
}

func TestAggregateIsIdempotent(t *testing.T) {
	links := []model.Link{{ID: "a", UserID: "u", ShortCode: "aaaaaa", ClickCount: 1}}
	clicks := []model.Click{{LinkID: "a", IPAddress: "1.1.1.1", DeviceType: "desktop", CreatedAt: day(3, 3)}}
	agg := NewAggregator(rows[model.Link]{items: links}, rows[model.Click]{items: clicks})

	first, err := agg.Aggregate(context.Background(), "u")
	require.NoError(t, err)
	second, err := agg.Aggregate(context.Background(), "u")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.LessOrEqual(t, first.UniqueClicks, first.TotalClicks)
}

func TestAggregatePropagatesErrors(t *testing.T) {
	agg := NewAggregator(rows[model.Link]{err: model.ErrStorageUnavailable}, rows[model.Click]{})
	_, err := agg.Aggregate(context.Background(), "u")
	assert.ErrorIs(t, err, model.ErrStorageUnavailable)

	agg = NewAggregator(rows[model.Link]{}, rows[model.Click]{err: model.ErrStorageUnavailable})
	_, err = agg.Aggregate(context.Background(), "u")
	assert.ErrorIs(t, err, model.ErrStorageUnavailable)
}
