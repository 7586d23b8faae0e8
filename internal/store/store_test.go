package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"shorturl-platform/internal/config"
	"shorturl-platform/internal/model"
	"shorturl-platform/pkg/database"
)

// StoreTestSuite 对两种介质运行同一组用例
type StoreTestSuite struct {
	suite.Suite
	newMedium func(t *testing.T) Medium
	store     *Store
}

func (s *StoreTestSuite) SetupTest() {
	s.store = New(s.newMedium(s.T()))
}

func (s *StoreTestSuite) TearDownTest() {
	s.NoError(s.store.Close())
}

func TestFileStore(t *testing.T) {
	suite.Run(t, &StoreTestSuite{newMedium: func(t *testing.T) Medium {
		m, err := NewFileMedium(t.TempDir())
		require.NoError(t, err)
		return m
	}})
}

func TestSQLiteStore(t *testing.T) {
	suite.Run(t, &StoreTestSuite{newMedium: func(t *testing.T) Medium {
		db, err := database.InitSQLite(filepath.Join(t.TempDir(), "store.db"))
		require.NoError(t, err)
		m, err := NewGormMedium(db)
		require.NoError(t, err)
		return m
	}})
}

func link(id, code string) model.Link {
	return model.Link{
		ID:          id,
		UserID:      "u1",
		OriginalURL: "https://example.com/" + id,
		ShortCode:   code,
		IsActive:    true,
		CreatedAt:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *StoreTestSuite) TestEmptyTable() {
	links, err := s.store.Links.LoadAll(context.Background())
	s.NoError(err)
	s.Empty(links)
}

func (s *StoreTestSuite) TestAppendKeepsInsertionOrder() {
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		s.Require().NoError(s.store.Links.Append(ctx, link(fmt.Sprintf("l%d", i), fmt.Sprintf("code0%d", i))))
	}

	links, err := s.store.Links.LoadAll(ctx)
	s.Require().NoError(err)
	s.Require().Len(links, 5)
	for i, l := range links {
		s.Equal(fmt.Sprintf("l%d", i), l.ID)
		s.True(l.IsActive)
	}
}

func (s *StoreTestSuite) TestReplaceAll() {
	ctx := context.Background()
	s.Require().NoError(s.store.Links.Append(ctx, link("a", "aaaaaa")))
	s.Require().NoError(s.store.Links.Append(ctx, link("b", "bbbbbb")))

	s.Require().NoError(s.store.Links.ReplaceAll(ctx, []model.Link{link("c", "cccccc")}))

	links, err := s.store.Links.LoadAll(ctx)
	s.Require().NoError(err)
	s.Require().Len(links, 1)
	s.Equal("c", links[0].ID)

	s.Require().NoError(s.store.Links.ReplaceAll(ctx, nil))
	links, err = s.store.Links.LoadAll(ctx)
	s.Require().NoError(err)
	s.Empty(links)
}

func (s *StoreTestSuite) TestUpdateAbortsOnError() {
	ctx := context.Background()
	s.Require().NoError(s.store.Links.Append(ctx, link("a", "aaaaaa")))

	boom := errors.New("boom")
	err := s.store.Links.Update(ctx, func(links []model.Link) ([]model.Link, error) {
		return nil, boom
	})
	s.ErrorIs(err, boom)

	links, err := s.store.Links.LoadAll(ctx)
	s.Require().NoError(err)
	s.Len(links, 1)
}

func (s *StoreTestSuite) TestConcurrentAppendsLoseNothing() {
	ctx := context.Background()
	const n = 40

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.NoError(s.store.Clicks.Append(ctx, model.Click{ID: fmt.Sprintf("c%d", i), LinkID: "a"}))
		}(i)
	}
	wg.Wait()

	clicks, err := s.store.Clicks.LoadAll(ctx)
	s.Require().NoError(err)
	s.Len(clicks, n)

	seen := make(map[string]bool)
	for _, c := range clicks {
		s.False(seen[c.ID], "重复行 %s", c.ID)
		seen[c.ID] = true
	}
}

func (s *StoreTestSuite) TestConcurrentUpdatesSerialize() {
	ctx := context.Background()
	s.Require().NoError(s.store.Links.Append(ctx, link("a", "aaaaaa")))
	const n = 30

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.NoError(s.store.Links.Update(ctx, func(links []model.Link) ([]model.Link, error) {
				links[0].ClickCount++
				return links, nil
			}))
		}()
	}
	wg.Wait()

	got, ok, err := s.store.Links.Find(ctx, func(l model.Link) bool { return l.ID == "a" })
	s.Require().NoError(err)
	s.Require().True(ok)
	s.EqualValues(n, got.ClickCount)
}

func (s *StoreTestSuite) TestTablesAreIndependent() {
	ctx := context.Background()
	s.Require().NoError(s.store.Links.Append(ctx, link("a", "aaaaaa")))
	s.Require().NoError(s.store.Users.Append(ctx, model.User{ID: "u1", Username: "alice", IsActive: true}))

	users, err := s.store.Users.LoadAll(ctx)
	s.Require().NoError(err)
	s.Require().Len(users, 1)
	s.Equal("alice", users[0].Username)

	links, err := s.store.Links.LoadAll(ctx)
	s.Require().NoError(err)
	s.Len(links, 1)
}

func (s *StoreTestSuite) TestWriteSurvivesCanceledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s.Require().NoError(s.store.Links.Append(ctx, link("a", "aaaaaa")))

	links, err := s.store.Links.LoadAll(context.Background())
	s.Require().NoError(err)
	s.Len(links, 1)
}

func TestFileMediumCorruptRowIsUnavailable(t *testing.T) {
	dir := t.TempDir()
	content := "id,click_count\nl1,not-a-number\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "links.csv"), []byte(content), 0o644))

	m, err := NewFileMedium(dir)
	require.NoError(t, err)

	_, err = New(m).Links.LoadAll(context.Background())
	assert.ErrorIs(t, err, model.ErrStorageUnavailable)
}

func TestFileMediumUnreadableIsUnavailable(t *testing.T) {
	dir := t.TempDir()
	// 同名目录让打开文件失败
	require.NoError(t, os.Mkdir(filepath.Join(dir, "links.csv"), 0o755))

	m, err := NewFileMedium(dir)
	require.NoError(t, err)

	_, err = New(m).Links.LoadAll(context.Background())
	assert.ErrorIs(t, err, model.ErrStorageUnavailable)
}

func TestFileMediumToleratesColumnReorder(t *testing.T) {
	dir := t.TempDir()
	content := "short_code,id,is_active\nabcdef,l1,true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "links.csv"), []byte(content), 0o644))

	m, err := NewFileMedium(dir)
	require.NoError(t, err)

	links, err := New(m).Links.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "l1", links[0].ID)
	assert.Equal(t, "abcdef", links[0].ShortCode)
	assert.True(t, links[0].IsActive)
}

func TestOpenFileDriver(t *testing.T) {
	cfg := config.Default()
	cfg.Store.DataDir = filepath.Join(t.TempDir(), "data")

	s, err := Open(cfg)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Links.Append(context.Background(), link("a", "aaaaaa")))
	_, err = os.Stat(filepath.Join(cfg.Store.DataDir, "links.csv"))
	assert.NoError(t, err)
}

func TestOpenSQLiteDriver(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Driver = config.DriverSQLite
	cfg.Store.SQLitePath = filepath.Join(t.TempDir(), "nested", "shorturl.db")

	s, err := Open(cfg)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Links.Append(context.Background(), link("a", "aaaaaa")))
	links, err := s.Links.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, links, 1)
}
