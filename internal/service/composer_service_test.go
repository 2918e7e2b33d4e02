package service

import (
	"context"
	"testing"
	"time"

	"postflow/internal/api/dto"
	"postflow/internal/model"
	"postflow/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T) *store.Provider {
	t.Helper()
	local, err := store.NewLocalStore(t.TempDir(), store.NewLocalNotifier())
	require.NoError(t, err)
	return store.NewProvider(local, nil)
}

func newTestComposer(t *testing.T) (*ComposerServiceImpl, *store.Provider) {
	t.Helper()
	stores := newTestProvider(t)
	svc := NewComposerService(stores, nil).(*ComposerServiceImpl)
	return svc, stores
}

// seedReadySession 模拟生成完成后的会话状态
func seedReadySession(svc *ComposerServiceImpl, userID string, drafts map[model.Platform]string, active model.Platform) {
	platforms := make([]model.Platform, 0, len(drafts))
	for _, p := range model.AllPlatforms() {
		if _, ok := drafts[p]; ok {
			platforms = append(platforms, p)
		}
	}
	svc.mu.Lock()
	svc.sessions[userID] = &composerSession{
		State:     StateReady,
		Topic:     "lanzamiento",
		Platforms: platforms,
		Drafts:    drafts,
		Active:    active,
	}
	svc.mu.Unlock()
}

func TestConfigureValidatesPlatforms(t *testing.T) {
	svc, _ := newTestComposer(t)

	_, err := svc.Configure(context.Background(), "u", &dto.ComposerConfigureDTO{
		Topic:     "tema",
		Platforms: []string{"myspace"},
	})
	assert.ErrorIs(t, err, ErrPlatformInvalid)

	snapshot, err := svc.Configure(context.Background(), "u", &dto.ComposerConfigureDTO{
		Topic:     "tema",
		Platforms: []string{"twitter", "twitter", "facebook"},
	})
	require.NoError(t, err)
	assert.Equal(t, StateConfiguring, snapshot.State)
	assert.Equal(t, []string{"twitter", "facebook"}, snapshot.Platforms)
}

func TestConfigureMediaSourcesAreExclusive(t *testing.T) {
	svc, _ := newTestComposer(t)

	// ai 来源时忽略传入的 media_url，等生成阶段再填
	snapshot, err := svc.Configure(context.Background(), "u", &dto.ComposerConfigureDTO{
		Topic:       "tema",
		Platforms:   []string{"instagram"},
		MediaSource: "ai",
		MediaURL:    "https://cdn.example.com/manual.png",
	})
	require.NoError(t, err)
	assert.Empty(t, snapshot.MediaURL)

	snapshot, err = svc.Configure(context.Background(), "u", &dto.ComposerConfigureDTO{
		Topic:       "tema",
		Platforms:   []string{"instagram"},
		MediaSource: "upload",
		MediaURL:    "https://cdn.example.com/manual.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/manual.png", snapshot.MediaURL)
}

func TestGenerateWithoutSession(t *testing.T) {
	svc, _ := newTestComposer(t)
	_, err := svc.Generate(context.Background(), "nobody", true)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestEditDraftSurvivesTabSwitch(t *testing.T) {
	svc, _ := newTestComposer(t)
	seedReadySession(svc, "u", map[model.Platform]string{
		model.PlatformTwitter:  "tweet original",
		model.PlatformLinkedIn: "post original",
	}, model.PlatformTwitter)

	_, err := svc.EditDraft("u", &dto.ComposerEditDTO{Platform: "twitter", Content: "tweet editado"})
	require.NoError(t, err)

	snapshot, err := svc.SwitchTab("u", &dto.ComposerSwitchTabDTO{Platform: "linkedin"})
	require.NoError(t, err)
	assert.Equal(t, "linkedin", snapshot.ActivePlatform)

	// 切回来，编辑过的内容还在
	snapshot, err = svc.SwitchTab("u", &dto.ComposerSwitchTabDTO{Platform: "twitter"})
	require.NoError(t, err)
	assert.Equal(t, "tweet editado", snapshot.Drafts["twitter"])

	_, err = svc.SwitchTab("u", &dto.ComposerSwitchTabDTO{Platform: "instagram"})
	assert.ErrorIs(t, err, ErrDraftNotReady)
}

func TestSaveActivePersistsOnlyActiveTab(t *testing.T) {
	ctx := context.Background()
	svc, stores := newTestComposer(t)
	seedReadySession(svc, "u", map[model.Platform]string{
		model.PlatformTwitter:   "variante twitter",
		model.PlatformLinkedIn:  "variante linkedin",
		model.PlatformInstagram: "variante instagram",
	}, model.PlatformTwitter)

	saved, err := svc.SaveActive(ctx, "u", true, &dto.ComposerSaveDTO{Status: "draft"})
	require.NoError(t, err)
	assert.Equal(t, model.PlatformTwitter, saved.Platform)
	assert.Equal(t, "variante twitter", saved.Content)

	posts, err := stores.ForSession(true).ListPosts(ctx, "u")
	require.NoError(t, err)
	require.Len(t, posts, 1)

	// 切换标签再存，得到第二条独立记录
	_, err = svc.SwitchTab("u", &dto.ComposerSwitchTabDTO{Platform: "linkedin"})
	require.NoError(t, err)
	second, err := svc.SaveActive(ctx, "u", true, &dto.ComposerSaveDTO{Status: "draft"})
	require.NoError(t, err)
	assert.Equal(t, model.PlatformLinkedIn, second.Platform)
	assert.Equal(t, "variante linkedin", second.Content)
	assert.NotEqual(t, saved.ID, second.ID)

	posts, err = stores.ForSession(true).ListPosts(ctx, "u")
	require.NoError(t, err)
	assert.Len(t, posts, 2)
}

func TestSaveActiveScheduledNeedsTimestamp(t *testing.T) {
	svc, _ := newTestComposer(t)
	seedReadySession(svc, "u", map[model.Platform]string{model.PlatformTwitter: "contenido"}, model.PlatformTwitter)

	_, err := svc.SaveActive(context.Background(), "u", true, &dto.ComposerSaveDTO{Status: "scheduled"})
	assert.ErrorIs(t, err, ErrScheduleRequired)

	when := time.Now().Add(24 * time.Hour)
	saved, err := svc.SaveActive(context.Background(), "u", true, &dto.ComposerSaveDTO{Status: "scheduled", ScheduledAt: &when})
	require.NoError(t, err)
	require.NotNil(t, saved.ScheduledAt)
}

func TestSaveActiveSessionResetRules(t *testing.T) {
	svc, _ := newTestComposer(t)
	seedReadySession(svc, "u", map[model.Platform]string{model.PlatformTwitter: "contenido"}, model.PlatformTwitter)

	// 草稿保存：会话保留，可以继续编辑
	_, err := svc.SaveActive(context.Background(), "u", true, &dto.ComposerSaveDTO{Status: "draft"})
	require.NoError(t, err)
	snapshot := svc.Session("u")
	assert.Equal(t, StateSaved, snapshot.State)
	assert.Equal(t, "contenido", snapshot.Drafts["twitter"])

	// published 保存：会话清空
	saved, err := svc.SaveActive(context.Background(), "u", true, &dto.ComposerSaveDTO{Status: "published"})
	require.NoError(t, err)
	assert.NotNil(t, saved.Analytics)
	snapshot = svc.Session("u")
	assert.Equal(t, StateIdle, snapshot.State)
	assert.Empty(t, snapshot.Drafts)
	assert.Empty(t, snapshot.Topic)
}

func TestSaveActiveWithoutDrafts(t *testing.T) {
	svc, _ := newTestComposer(t)

	_, err := svc.SaveActive(context.Background(), "u", true, &dto.ComposerSaveDTO{Status: "draft"})
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = svc.Configure(context.Background(), "u", &dto.ComposerConfigureDTO{Topic: "tema", Platforms: []string{"twitter"}})
	require.NoError(t, err)
	_, err = svc.SaveActive(context.Background(), "u", true, &dto.ComposerSaveDTO{Status: "draft"})
	assert.ErrorIs(t, err, ErrDraftNotReady)
}

func TestScoreDegradesWithoutModel(t *testing.T) {
	svc, _ := newTestComposer(t)
	seedReadySession(svc, "u", map[model.Platform]string{model.PlatformTwitter: "contenido"}, model.PlatformTwitter)

	score, err := svc.Score(context.Background(), "u")
	require.NoError(t, err)
	assert.Equal(t, 50, score.Score)
	assert.NotEmpty(t, score.Suggestion)
}
