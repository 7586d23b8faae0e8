package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gavv/httpexpect/v2"
)

func newExpect(t *testing.T, server *httptest.Server) *httpexpect.Expect {
	return httpexpect.WithConfig(httpexpect.Config{
		BaseURL:  server.URL,
		Reporter: httpexpect.NewAssertReporter(t),
		Client: &http.Client{
			// 短链接返回 302, 测试需要直接检查跳转响应
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	})
}

func TestEndToEnd(t *testing.T) {
	env := setupTest(t)
	server := httptest.NewServer(env.router)
	defer server.Close()

	e := newExpect(t, server)

	token := e.POST("/auth/register").
		WithJSON(map[string]string{"username": "carol", "email": "carol@example.com", "password": "secret123"}).
		Expect().
		Status(http.StatusCreated).
		JSON().Object().Value("token").String().NotEmpty().Raw()

	e.GET("/api/analytics").
		Expect().
		Status(http.StatusUnauthorized).
		JSON().Object().HasValue("error", "unauthorized")

	created := e.POST("/api/links").
		WithHeader("Authorization", "Bearer "+token).
		WithJSON(map[string]any{"original_url": "https://example.com/landing", "title": "landing"}).
		Expect().
		Status(http.StatusCreated).
		JSON().Object()
	created.Value("click_count").Number().IsEqual(0)
	created.Value("is_active").Boolean().IsTrue()
	created.Value("short_code").String().Length().IsEqual(6)

	shortCode := created.Value("short_code").String().Raw()
	created.Value("short_url").String().IsEqual("http://sho.rt/" + shortCode)

	e.GET("/" + shortCode).
		WithHeader("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36").
		Expect().
		Status(http.StatusFound).
		Header("Location").IsEqual("https://example.com/landing")

	summary := e.GET("/api/analytics").
		WithHeader("Authorization", "Bearer "+token).
		Expect().
		Status(http.StatusOK).
		JSON().Object()
	summary.Value("totalClicks").Number().IsEqual(1)
	summary.Value("uniqueClicks").Number().IsEqual(1)
	summary.Value("topLinks").Array().Length().IsEqual(1)
	summary.Value("topLinks").Array().Value(0).Object().HasValue("short_code", shortCode).HasValue("clicks", 1)
	summary.Value("deviceTypes").Array().Value(0).Object().HasValue("device", "desktop")

	links := e.GET("/api/links").
		WithHeader("Authorization", "Bearer "+token).
		Expect().
		Status(http.StatusOK).
		JSON().Array()
	links.Length().IsEqual(1)
	links.Value(0).Object().HasValue("click_count", 1)

	e.GET("/ZZZZZZ").
		Expect().
		Status(http.StatusNotFound).
		JSON().Object().HasValue("error", "not_found")
}
