package click

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shorturl-platform/internal/model"
	"shorturl-platform/internal/store"
)

const iphoneUA = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	medium, err := store.NewFileMedium(t.TempDir())
	require.NoError(t, err)
	return store.New(medium)
}

func seedLink(t *testing.T, s *store.Store, l model.Link) model.Link {
	t.Helper()
	require.NoError(t, s.Links.Append(context.Background(), l))
	return l
}

func loadLink(t *testing.T, s *store.Store, id string) model.Link {
	t.Helper()
	l, ok, err := s.Links.Find(context.Background(), func(l model.Link) bool { return l.ID == id })
	require.NoError(t, err)
	require.True(t, ok)
	return l
}

func TestRecord(t *testing.T) {
	s := newTestStore(t)
	fixed := time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)
	p := NewPipeline(s, zap.NewNop().Sugar())
	p.now = func() time.Time { return fixed }

	l := seedLink(t, s, model.Link{ID: "l1", ShortCode: "abcdef", CampaignID: "camp1", IsActive: true})

	c, err := p.Record(context.Background(), l, RequestMeta{IP: "10.0.0.1", UserAgent: iphoneUA, Referer: "https://news.example"})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "camp1", c.CampaignID)
	assert.Equal(t, DeviceMobile, c.DeviceType)
	assert.Equal(t, "Safari", c.Browser)
	assert.Equal(t, "iOS", c.OS)
	assert.Equal(t, fixed, c.CreatedAt)

	clicks, err := s.Clicks.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, clicks, 1)
	assert.Equal(t, c, clicks[0])

	got := loadLink(t, s, "l1")
	assert.EqualValues(t, 1, got.ClickCount)
	assert.Equal(t, fixed, got.UpdatedAt)
}

func TestRecordConcurrentKeepsCounterExact(t *testing.T) {
	s := newTestStore(t)
	p := NewPipeline(s, zap.NewNop().Sugar())
	a := seedLink(t, s, model.Link{ID: "a", ShortCode: "aaaaaa", IsActive: true})
	b := seedLink(t, s, model.Link{ID: "b", ShortCode: "bbbbbb", IsActive: true})

	const n = 25
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, err := p.Record(context.Background(), a, RequestMeta{IP: fmt.Sprintf("10.0.0.%d", i)})
			assert.NoError(t, err)
		}(i)
		go func(i int) {
			defer wg.Done()
			_, err := p.Record(context.Background(), b, RequestMeta{IP: fmt.Sprintf("10.0.1.%d", i)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	clicks, err := s.Clicks.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, clicks, 2*n)

	assert.EqualValues(t, n, loadLink(t, s, "a").ClickCount)
	assert.EqualValues(t, n, loadLink(t, s, "b").ClickCount)
}

func TestRecordMissingLinkKeepsClick(t *testing.T) {
	s := newTestStore(t)
	p := NewPipeline(s, zap.NewNop().Sugar())

	_, err := p.Record(context.Background(), model.Link{ID: "ghost"}, RequestMeta{IP: "10.0.0.1"})
	assert.ErrorIs(t, err, model.ErrNotFound)

	clicks, err := s.Clicks.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, clicks, 1)
}

func TestReconcile(t *testing.T) {
	s := newTestStore(t)
	p := NewPipeline(s, zap.NewNop().Sugar())
	ctx := context.Background()

	seedLink(t, s, model.Link{ID: "a", ShortCode: "aaaaaa", ClickCount: 7})
	seedLink(t, s, model.Link{ID: "b", ShortCode: "bbbbbb", ClickCount: 1})
	seedLink(t, s, model.Link{ID: "c", ShortCode: "cccccc", ClickCount: 0})
	for _, id := range []string{"a", "a", "b"} {
		require.NoError(t, s.Clicks.Append(ctx, model.Click{ID: "c-" + id + fmt.Sprint(time.Now().UnixNano()), LinkID: id}))
	}

	changed, err := p.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, changed)

	assert.EqualValues(t, 2, loadLink(t, s, "a").ClickCount)
	assert.EqualValues(t, 1, loadLink(t, s, "b").ClickCount)
	assert.EqualValues(t, 0, loadLink(t, s, "c").ClickCount)

	changed, err = p.Reconcile(ctx)
	require.NoError(t, err)
	assert.Zero(t, changed)
}
