package service

import (
	"context"
	"testing"
	"time"

	"postflow/internal/api/dto"
	"postflow/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPost(t *testing.T, svc *PostServiceImpl, post *model.Post) *model.Post {
	t.Helper()
	saved, err := svc.stores.ForSession(true).SavePost(context.Background(), post)
	require.NoError(t, err)
	return saved
}

func newTestPostService(t *testing.T) *PostServiceImpl {
	t.Helper()
	return NewPostService(newTestProvider(t), nil).(*PostServiceImpl)
}

func TestGetPostNotFound(t *testing.T) {
	svc := newTestPostService(t)
	_, err := svc.GetPost(context.Background(), "u", true, "missing")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestUpdatePostMaintainsInvariants(t *testing.T) {
	ctx := context.Background()
	svc := newTestPostService(t)
	saved := seedPost(t, svc, &model.Post{OwnerID: "u", Platform: model.PlatformTwitter, Status: model.StatusDraft, Content: "antes"})

	_, err := svc.UpdatePost(ctx, "u", true, saved.ID, &dto.UpdatePostDTO{Content: "x", Status: "scheduled"})
	assert.ErrorIs(t, err, ErrScheduleRequired)

	when := time.Now().Add(time.Hour)
	updated, err := svc.UpdatePost(ctx, "u", true, saved.ID, &dto.UpdatePostDTO{Content: "después", Status: "scheduled", ScheduledAt: &when})
	require.NoError(t, err)
	assert.NotNil(t, updated.ScheduledAt)
	assert.Nil(t, updated.Analytics)

	// 转 published 合成一次指标，回退 draft 又清掉
	updated, err = svc.UpdatePost(ctx, "u", true, saved.ID, &dto.UpdatePostDTO{Content: "después", Status: "published"})
	require.NoError(t, err)
	assert.Nil(t, updated.ScheduledAt)
	assert.NotNil(t, updated.Analytics)

	updated, err = svc.UpdatePost(ctx, "u", true, saved.ID, &dto.UpdatePostDTO{Content: "después", Status: "draft"})
	require.NoError(t, err)
	assert.Nil(t, updated.Analytics)
}

func TestCalendarMonthGroupsByDay(t *testing.T) {
	ctx := context.Background()
	svc := newTestPostService(t)

	when := time.Date(2026, time.September, 15, 10, 0, 0, 0, time.UTC)
	seedPost(t, svc, &model.Post{OwnerID: "u", Platform: model.PlatformTwitter, Status: model.StatusScheduled, ScheduledAt: &when, Content: "programado"})
	seedPost(t, svc, &model.Post{OwnerID: "u", Platform: model.PlatformFacebook, Status: model.StatusDraft, Content: "borrador"})

	days, err := svc.CalendarMonth(ctx, "u", true, 2026, time.September)
	require.NoError(t, err)
	require.Contains(t, days, "2026-09-15")
	assert.Equal(t, "programado", days["2026-09-15"][0].Content)

	days, err = svc.CalendarMonth(ctx, "u", true, 2027, time.January)
	require.NoError(t, err)
	assert.NotContains(t, days, "2026-09-15")
}

func TestAnalyticsSummaryAggregatesPerPlatform(t *testing.T) {
	ctx := context.Background()
	svc := newTestPostService(t)

	seedPost(t, svc, &model.Post{OwnerID: "u", Platform: model.PlatformTwitter, Status: model.StatusPublished, Content: "a"})
	seedPost(t, svc, &model.Post{OwnerID: "u", Platform: model.PlatformTwitter, Status: model.StatusDraft, Content: "b"})
	seedPost(t, svc, &model.Post{OwnerID: "u", Platform: model.PlatformLinkedIn, Status: model.StatusPublished, Content: "c"})

	summary, err := svc.AnalyticsSummary(ctx, "u", true)
	require.NoError(t, err)

	tw := summary["twitter"]
	require.NotNil(t, tw)
	assert.Equal(t, 2, tw.TotalPosts)
	assert.Equal(t, 1, tw.PublishedCount)
	assert.Equal(t, 1, tw.DraftCount)

	ig := summary["instagram"]
	require.NotNil(t, ig)
	assert.Equal(t, 0, ig.TotalPosts)
}

func TestPublishRequiresConnection(t *testing.T) {
	ctx := context.Background()
	svc := newTestPostService(t)
	saved := seedPost(t, svc, &model.Post{OwnerID: "u", Platform: model.PlatformFacebook, Status: model.StatusDraft, Content: "hola"})

	_, err := svc.Publish(ctx, "u", true, saved.ID)
	assert.ErrorIs(t, err, ErrNotConnected)
}
