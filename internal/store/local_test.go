package store

import (
	"context"
	"testing"
	"time"

	"postflow/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	s, err := NewLocalStore(t.TempDir(), NewLocalNotifier())
	require.NoError(t, err)
	return s
}

func TestLocalStorePostRoundtrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	saved, err := s.SavePost(ctx, &model.Post{
		OwnerID:  "owner-1",
		Content:  "hello world",
		Platform: model.PlatformTwitter,
		Status:   model.StatusDraft,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	// 重新打开，验证确实落盘了
	reopened, err := NewLocalStore(s.dir, NewLocalNotifier())
	require.NoError(t, err)
	posts, err := reopened.ListPosts(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, saved.ID, posts[0].ID)
	assert.Equal(t, "hello world", posts[0].Content)
}

func TestLocalStoreStatusInvariants(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	when := time.Now().Add(48 * time.Hour)

	tests := []struct {
		name          string
		post          *model.Post
		wantScheduled bool
		wantAnalytics bool
	}{
		{
			name:          "draft drops schedule and analytics",
			post:          &model.Post{OwnerID: "o", Platform: model.PlatformTwitter, Status: model.StatusDraft, ScheduledAt: &when, Analytics: &model.PostAnalytics{Likes: 7}},
			wantScheduled: false,
			wantAnalytics: false,
		},
		{
			name:          "scheduled keeps its date",
			post:          &model.Post{OwnerID: "o", Platform: model.PlatformTwitter, Status: model.StatusScheduled, ScheduledAt: &when},
			wantScheduled: true,
			wantAnalytics: false,
		},
		{
			name:          "published gets analytics exactly once",
			post:          &model.Post{OwnerID: "o", Platform: model.PlatformTwitter, Status: model.StatusPublished},
			wantScheduled: false,
			wantAnalytics: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saved, err := s.SavePost(ctx, tt.post)
			require.NoError(t, err)
			assert.Equal(t, tt.wantScheduled, saved.ScheduledAt != nil)
			assert.Equal(t, tt.wantAnalytics, saved.Analytics != nil)
			if saved.Analytics != nil {
				assert.Less(t, saved.Analytics.EngagementRate, 5.0)
			}
		})
	}
}

func TestLocalStoreUpdateUnknownPostIsNoop(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	saved, err := s.SavePost(ctx, &model.Post{OwnerID: "o", Platform: model.PlatformLinkedIn, Status: model.StatusDraft, Content: "original"})
	require.NoError(t, err)

	err = s.UpdatePost(ctx, &model.Post{ID: "no-such-id", OwnerID: "o", Content: "ghost"})
	require.NoError(t, err)

	posts, err := s.ListPosts(ctx, "o")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, saved.ID, posts[0].ID)
	assert.Equal(t, "original", posts[0].Content)
}

func TestLocalStoreDeleteUnknownPostIsNoop(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.SavePost(ctx, &model.Post{OwnerID: "o", Platform: model.PlatformFacebook, Status: model.StatusDraft})
	require.NoError(t, err)

	require.NoError(t, s.DeletePost(ctx, "o", "no-such-id"))

	posts, err := s.ListPosts(ctx, "o")
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestLocalStoreConnectionUpsert(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	first := &model.Connection{Platform: model.PlatformFacebook, Credentials: map[string]string{"pageId": "123", "accessToken": "tok"}}
	first.DeriveConnected()
	require.NoError(t, s.SaveConnection(ctx, "o", first))

	second := &model.Connection{Platform: model.PlatformFacebook, Credentials: map[string]string{}}
	second.DeriveConnected()
	require.NoError(t, s.SaveConnection(ctx, "o", second))

	conns, err := s.ListConnections(ctx, "o")
	require.NoError(t, err)
	require.Len(t, conns, 1)
	assert.False(t, conns[0].Connected)

	got, err := s.GetConnection(ctx, "o", model.PlatformFacebook)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.Credentials)
}

func TestLocalStoreSeedIfEmpty(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.SeedIfEmpty(ctx, "fresh"))

	profile, err := s.GetProfile(ctx, "fresh")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "TechNova", profile.Name)

	posts, err := s.ListPosts(ctx, "fresh")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, model.StatusPublished, posts[0].Status)
	assert.NotNil(t, posts[0].Analytics)

	// 已有数据时不再重复播种
	require.NoError(t, s.SeedIfEmpty(ctx, "fresh"))
	posts, err = s.ListPosts(ctx, "fresh")
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestLocalNotifierPublishesOnWrite(t *testing.T) {
	ctx := context.Background()
	notifier := NewLocalNotifier()
	s, err := NewLocalStore(t.TempDir(), notifier)
	require.NoError(t, err)

	ch, cancel := notifier.Subscribe("o")
	defer cancel()

	_, err = s.SavePost(ctx, &model.Post{OwnerID: "o", Platform: model.PlatformTwitter, Status: model.StatusDraft})
	require.NoError(t, err)

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a change notification after save")
	}
}
