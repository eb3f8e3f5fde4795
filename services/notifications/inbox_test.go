package notifications

import (
	"context"
	"testing"
	"time"

	"tincadia/catalog"
	"tincadia/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource []models.Notification

func (f fakeSource) ListNotifications(context.Context) ([]models.Notification, error) {
	return f, nil
}

func TestListCategorizesAndFilters(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	src := fakeSource{
		{ID: "1", Type: "payment_approved", CreatedAt: base},
		{ID: "2", Type: "PAYMENT_DECLINED", Read: true, CreatedAt: base.Add(time.Hour)},
		{ID: "3", Type: "interpreter_request", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "4", Type: "something_new", CreatedAt: base.Add(3 * time.Hour)},
	}
	inbox := NewInbox(src, c)

	page, err := inbox.List(context.Background(), "", false, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 4)
	assert.Equal(t, "4", page.Items[0].ID)
	assert.Equal(t, "general", page.Items[0].Category)
	assert.Equal(t, map[string]int{"payments": 2, "interpreters": 1, "general": 1}, page.Counts)
	assert.Equal(t, 3, page.Unread)

	page, err = inbox.List(context.Background(), "payments", true, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "1", page.Items[0].ID)
	assert.Equal(t, "#16a34a", page.Items[0].Color)
}
