package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"postflow/internal/model"

	"github.com/goccy/go-json"
)

// ownerData 单个用户的全部领域记录，对应一个 JSON 文件
// 反序列化老文件时缺失的新字段一律按零值处理，没有版本号。
type ownerData struct {
	User        *model.User           `json:"user,omitempty"`
	Profile     *model.CompanyProfile `json:"profile,omitempty"`
	Posts       []*model.Post         `json:"posts"`
	Connections []*model.Connection   `json:"connections"`
}

// LocalStore 单机 JSON 文件存储，按用户一文件
// 写入走临时文件+rename，失败时磁盘上的旧记录保持原样。
type LocalStore struct {
	dir      string
	notifier Notifier

	mu    sync.RWMutex
	cache map[string]*ownerData
}

func NewLocalStore(dir string, notifier Notifier) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create local store dir: %w", err)
	}
	return &LocalStore{
		dir:      dir,
		notifier: notifier,
		cache:    make(map[string]*ownerData),
	}, nil
}

var _ Store = (*LocalStore)(nil)

func (s *LocalStore) filePath(ownerID string) string {
	return filepath.Join(s.dir, ownerID+".json")
}

// load 需要持有读锁或写锁
func (s *LocalStore) load(ownerID string) (*ownerData, error) {
	if data, ok := s.cache[ownerID]; ok {
		return data, nil
	}

	data := &ownerData{}
	raw, err := os.ReadFile(s.filePath(ownerID))
	if err != nil {
		if os.IsNotExist(err) {
			return data, nil
		}
		return nil, err
	}
	if err = json.Unmarshal(raw, data); err != nil {
		return nil, err
	}
	return data, nil
}

// persist 先写临时文件再原子替换，成功后才更新缓存
func (s *LocalStore) persist(ctx context.Context, ownerID string, data *ownerData) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	target := s.filePath(ownerID)
	tmp := target + ".tmp"
	if err = os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	if err = os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	s.cache[ownerID] = data
	s.notifier.Publish(ctx, ownerID)
	return nil
}

func (s *LocalStore) GetUser(_ context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := s.load(id)
	if err != nil {
		return nil, err
	}
	return data.User, nil
}

func (s *LocalStore) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load(user.ID)
	if err != nil {
		return err
	}
	next := *data
	next.User = user
	return s.persist(ctx, user.ID, &next)
}

func (s *LocalStore) GetProfile(_ context.Context, ownerID string) (*model.CompanyProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := s.load(ownerID)
	if err != nil {
		return nil, err
	}
	return data.Profile, nil
}

func (s *LocalStore) SaveProfile(ctx context.Context, profile *model.CompanyProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load(profile.OwnerID)
	if err != nil {
		return err
	}
	next := *data
	next.Profile = profile
	return s.persist(ctx, profile.OwnerID, &next)
}

func (s *LocalStore) ListPosts(_ context.Context, ownerID string) ([]*model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := s.load(ownerID)
	if err != nil {
		return nil, err
	}
	posts := make([]*model.Post, len(data.Posts))
	copy(posts, data.Posts)
	return posts, nil
}

func (s *LocalStore) GetPost(_ context.Context, ownerID string, id string) (*model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := s.load(ownerID)
	if err != nil {
		return nil, err
	}
	for _, p := range data.Posts {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (s *LocalStore) SavePost(ctx context.Context, post *model.Post) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load(post.OwnerID)
	if err != nil {
		return nil, err
	}

	finalizeNew(post)

	next := *data
	next.Posts = append(append([]*model.Post{}, data.Posts...), post)
	if err = s.persist(ctx, post.OwnerID, &next); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *LocalStore) UpdatePost(ctx context.Context, post *model.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load(post.OwnerID)
	if err != nil {
		return err
	}

	idx := -1
	for i, p := range data.Posts {
		if p.ID == post.ID {
			idx = i
			break
		}
	}
	// 未知 ID 视为空操作
	if idx == -1 {
		return nil
	}

	next := *data
	next.Posts = append([]*model.Post{}, data.Posts...)
	next.Posts[idx] = post
	return s.persist(ctx, post.OwnerID, &next)
}

func (s *LocalStore) DeletePost(ctx context.Context, ownerID string, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load(ownerID)
	if err != nil {
		return err
	}

	kept := make([]*model.Post, 0, len(data.Posts))
	for _, p := range data.Posts {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	// 没有删掉任何内容就不落盘也不广播
	if len(kept) == len(data.Posts) {
		return nil
	}

	next := *data
	next.Posts = kept
	return s.persist(ctx, ownerID, &next)
}

func (s *LocalStore) GetConnection(_ context.Context, ownerID string, platform model.Platform) (*model.Connection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := s.load(ownerID)
	if err != nil {
		return nil, err
	}
	for _, c := range data.Connections {
		if c.Platform == platform {
			return c, nil
		}
	}
	return nil, nil
}

func (s *LocalStore) ListConnections(_ context.Context, ownerID string) ([]*model.Connection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := s.load(ownerID)
	if err != nil {
		return nil, err
	}
	conns := make([]*model.Connection, len(data.Connections))
	copy(conns, data.Connections)
	return conns, nil
}

func (s *LocalStore) SaveConnection(ctx context.Context, ownerID string, conn *model.Connection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load(ownerID)
	if err != nil {
		return err
	}

	next := *data
	next.Connections = append([]*model.Connection{}, data.Connections...)

	replaced := false
	for i, c := range next.Connections {
		if c.Platform == conn.Platform {
			next.Connections[i] = conn
			replaced = true
			break
		}
	}
	if !replaced {
		next.Connections = append(next.Connections, conn)
	}
	return s.persist(ctx, ownerID, &next)
}

func (s *LocalStore) SeedIfEmpty(ctx context.Context, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load(ownerID)
	if err != nil {
		return err
	}
	if data.Profile != nil || len(data.Posts) > 0 {
		return nil
	}

	next := *data
	seedOwnerData(&next, ownerID)
	return s.persist(ctx, ownerID, &next)
}
