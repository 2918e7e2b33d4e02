package store

import (
	"context"
	"errors"
	"testing"

	"postflow/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// downStore 模拟托管库整体不可达
type downStore struct {
	err error
}

func (s *downStore) GetUser(context.Context, string) (*model.User, error) { return nil, s.err }
func (s *downStore) SaveUser(context.Context, *model.User) error          { return s.err }
func (s *downStore) GetProfile(context.Context, string) (*model.CompanyProfile, error) {
	return nil, s.err
}
func (s *downStore) SaveProfile(context.Context, *model.CompanyProfile) error { return s.err }
func (s *downStore) ListPosts(context.Context, string) ([]*model.Post, error) { return nil, s.err }
func (s *downStore) GetPost(context.Context, string, string) (*model.Post, error) {
	return nil, s.err
}
func (s *downStore) SavePost(context.Context, *model.Post) (*model.Post, error) { return nil, s.err }
func (s *downStore) UpdatePost(context.Context, *model.Post) error              { return s.err }
func (s *downStore) DeletePost(context.Context, string, string) error           { return s.err }
func (s *downStore) GetConnection(context.Context, string, model.Platform) (*model.Connection, error) {
	return nil, s.err
}
func (s *downStore) ListConnections(context.Context, string) ([]*model.Connection, error) {
	return nil, s.err
}
func (s *downStore) SaveConnection(context.Context, string, *model.Connection) error { return s.err }
func (s *downStore) SeedIfEmpty(context.Context, string) error                       { return s.err }

func TestFallbackReadsDegradeToLocal(t *testing.T) {
	ctx := context.Background()
	local := newTestStore(t)
	fb := NewFallbackStore(&downStore{err: errors.New("connection refused")}, local)

	profile := &model.CompanyProfile{OwnerID: "o", Name: "TechNova"}
	require.NoError(t, local.SaveProfile(ctx, profile))

	got, err := fb.GetProfile(ctx, "o")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "TechNova", got.Name)

	posts, err := fb.ListPosts(ctx, "o")
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestFallbackWritesSurfaceUnavailable(t *testing.T) {
	ctx := context.Background()
	local := newTestStore(t)
	fb := NewFallbackStore(&downStore{err: errors.New("connection refused")}, local)

	// 写操作不落本地副本，统一返回哨兵错误而非驱动原始错误
	err := fb.SaveProfile(ctx, &model.CompanyProfile{OwnerID: "o", Name: "x"})
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = fb.SavePost(ctx, &model.Post{OwnerID: "o", Content: "x", Platform: model.PlatformTwitter, Status: model.StatusDraft})
	assert.ErrorIs(t, err, ErrUnavailable)

	assert.ErrorIs(t, fb.UpdatePost(ctx, &model.Post{ID: "p", OwnerID: "o"}), ErrUnavailable)
	assert.ErrorIs(t, fb.DeletePost(ctx, "o", "p"), ErrUnavailable)
	assert.ErrorIs(t, fb.SaveConnection(ctx, "o", &model.Connection{Platform: model.PlatformFacebook}), ErrUnavailable)
	assert.ErrorIs(t, fb.SeedIfEmpty(ctx, "o"), ErrUnavailable)

	// 本地副本未被写分叉
	got, err := local.GetProfile(ctx, "o")
	require.NoError(t, err)
	assert.Nil(t, got)
}
