package store

import (
	"context"
	"errors"
	log "log/slog"

	"postflow/internal/model"
)

// ErrUnavailable 托管库写入失败时统一返回的哨兵错误
// 原始驱动错误只进日志，不透给调用方。
var ErrUnavailable = errors.New("存储暂时不可用，已有数据未受影响，请重试")

// FallbackStore 托管库读失败时回退到本地文件的包装
// 写操作只走托管库：静默写到落后副本会造成两边分叉，宁可直接报错。
type FallbackStore struct {
	hosted Store
	local  Store
}

func NewFallbackStore(hosted Store, local Store) *FallbackStore {
	return &FallbackStore{hosted: hosted, local: local}
}

var _ Store = (*FallbackStore)(nil)

func (s *FallbackStore) fallback(ctx context.Context, op string, err error) {
	log.WarnContext(ctx, "hosted store read failed, falling back to local", "op", op, "error", err)
}

func (s *FallbackStore) writeErr(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	log.ErrorContext(ctx, "hosted store write failed", "op", op, "error", err)
	return ErrUnavailable
}

func (s *FallbackStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.hosted.GetUser(ctx, id)
	if err != nil {
		s.fallback(ctx, "GetUser", err)
		return s.local.GetUser(ctx, id)
	}
	return user, nil
}

func (s *FallbackStore) SaveUser(ctx context.Context, user *model.User) error {
	return s.writeErr(ctx, "SaveUser", s.hosted.SaveUser(ctx, user))
}

func (s *FallbackStore) GetProfile(ctx context.Context, ownerID string) (*model.CompanyProfile, error) {
	profile, err := s.hosted.GetProfile(ctx, ownerID)
	if err != nil {
		s.fallback(ctx, "GetProfile", err)
		return s.local.GetProfile(ctx, ownerID)
	}
	return profile, nil
}

func (s *FallbackStore) SaveProfile(ctx context.Context, profile *model.CompanyProfile) error {
	return s.writeErr(ctx, "SaveProfile", s.hosted.SaveProfile(ctx, profile))
}

func (s *FallbackStore) ListPosts(ctx context.Context, ownerID string) ([]*model.Post, error) {
	posts, err := s.hosted.ListPosts(ctx, ownerID)
	if err != nil {
		s.fallback(ctx, "ListPosts", err)
		return s.local.ListPosts(ctx, ownerID)
	}
	return posts, nil
}

func (s *FallbackStore) GetPost(ctx context.Context, ownerID string, id string) (*model.Post, error) {
	post, err := s.hosted.GetPost(ctx, ownerID, id)
	if err != nil {
		s.fallback(ctx, "GetPost", err)
		return s.local.GetPost(ctx, ownerID, id)
	}
	return post, nil
}

func (s *FallbackStore) SavePost(ctx context.Context, post *model.Post) (*model.Post, error) {
	saved, err := s.hosted.SavePost(ctx, post)
	if err != nil {
		return nil, s.writeErr(ctx, "SavePost", err)
	}
	return saved, nil
}

func (s *FallbackStore) UpdatePost(ctx context.Context, post *model.Post) error {
	return s.writeErr(ctx, "UpdatePost", s.hosted.UpdatePost(ctx, post))
}

func (s *FallbackStore) DeletePost(ctx context.Context, ownerID string, id string) error {
	return s.writeErr(ctx, "DeletePost", s.hosted.DeletePost(ctx, ownerID, id))
}

func (s *FallbackStore) GetConnection(ctx context.Context, ownerID string, platform model.Platform) (*model.Connection, error) {
	conn, err := s.hosted.GetConnection(ctx, ownerID, platform)
	if err != nil {
		s.fallback(ctx, "GetConnection", err)
		return s.local.GetConnection(ctx, ownerID, platform)
	}
	return conn, nil
}

func (s *FallbackStore) ListConnections(ctx context.Context, ownerID string) ([]*model.Connection, error) {
	conns, err := s.hosted.ListConnections(ctx, ownerID)
	if err != nil {
		s.fallback(ctx, "ListConnections", err)
		return s.local.ListConnections(ctx, ownerID)
	}
	return conns, nil
}

func (s *FallbackStore) SaveConnection(ctx context.Context, ownerID string, conn *model.Connection) error {
	return s.writeErr(ctx, "SaveConnection", s.hosted.SaveConnection(ctx, ownerID, conn))
}

func (s *FallbackStore) SeedIfEmpty(ctx context.Context, ownerID string) error {
	return s.writeErr(ctx, "SeedIfEmpty", s.hosted.SeedIfEmpty(ctx, ownerID))
}
