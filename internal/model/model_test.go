package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkRowEncoding(t *testing.T) {
	expires := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	link := Link{
		ID:          "l1",
		ShortCode:   "aB3dE9",
		OriginalURL: "https://example.com",
		IsCloaked:   true,
		ExpiresAt:   &expires,
		IsActive:    true,
		ClickCount:  42,
	}

	row := link.Row()
	assert.Equal(t, "true", row["is_cloaked"])
	assert.Equal(t, "42", row["click_count"])
	assert.Equal(t, "2026-01-02T03:04:05Z", row["expires_at"])
	assert.Equal(t, "", row["created_at"], "零值时间编码为空串")
	assert.Len(t, row, len(LinkColumns))

	decoded, err := LinkFromRow(row)
	require.NoError(t, err)
	assert.Equal(t, link, decoded)
}

func TestLinkFromRowRejectsBadFields(t *testing.T) {
	_, err := LinkFromRow(Row{"id": "l1", "click_count": "many"})
	assert.ErrorContains(t, err, "click_count")

	_, err = LinkFromRow(Row{"id": "l1", "is_active": "yes"})
	assert.ErrorContains(t, err, "is_active")
}

func TestLinkExpiredAt(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.False(t, Link{}.ExpiredAt(now))
	assert.True(t, Link{ExpiresAt: &past}.ExpiredAt(now))
	assert.False(t, Link{ExpiresAt: &future}.ExpiredAt(now))
}

func TestDisplayTitle(t *testing.T) {
	assert.Equal(t, "Docs", Link{Title: "Docs", OriginalURL: "https://x.io"}.DisplayTitle())
	assert.Equal(t, "https://x.io", Link{OriginalURL: "https://x.io"}.DisplayTitle())
}

func TestUserPassword(t *testing.T) {
	var u User
	require.NoError(t, u.SetPassword("secret"))
	assert.NotEqual(t, "secret", u.PasswordHash)
	assert.True(t, u.CheckPassword("secret"))
	assert.False(t, u.CheckPassword("wrong"))

	decoded, err := UserFromRow(u.Row())
	require.NoError(t, err)
	assert.True(t, decoded.CheckPassword("secret"))
}

func TestValidationErrorMatchesSentinel(t *testing.T) {
	err := Invalid("original_url", "is required")
	assert.True(t, errors.Is(err, ErrValidation))

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "original_url", ve.Field)
}
