package store

import (
	"context"
	"math/rand"
	"time"

	"postflow/internal/model"

	"github.com/google/uuid"
)

// Store 领域记录的统一持久化接口
// 两个实现：本地 JSON 文件（单机/访客）与 Mongo 托管文档库（交互式登录）。
// 读操作一律软失败：记录不存在返回 nil, nil，不是异常。
// 写操作失败必须保持既有记录不变。
type Store interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
	SaveUser(ctx context.Context, user *model.User) error

	GetProfile(ctx context.Context, ownerID string) (*model.CompanyProfile, error)
	SaveProfile(ctx context.Context, profile *model.CompanyProfile) error

	ListPosts(ctx context.Context, ownerID string) ([]*model.Post, error)
	GetPost(ctx context.Context, ownerID string, id string) (*model.Post, error)
	SavePost(ctx context.Context, post *model.Post) (*model.Post, error)
	UpdatePost(ctx context.Context, post *model.Post) error
	DeletePost(ctx context.Context, ownerID string, id string) error

	GetConnection(ctx context.Context, ownerID string, platform model.Platform) (*model.Connection, error)
	ListConnections(ctx context.Context, ownerID string) ([]*model.Connection, error)
	SaveConnection(ctx context.Context, ownerID string, conn *model.Connection) error

	SeedIfEmpty(ctx context.Context, ownerID string) error
}

// finalizeNew 落库前补全新帖子：分配 ID、创建时间，并维护状态不变量
// published 且无指标时合成一份演示指标。
func finalizeNew(post *model.Post) {
	post.ID = uuid.NewString()
	post.CreatedAt = time.Now()

	if post.Status != model.StatusScheduled {
		post.ScheduledAt = nil
	}

	if post.Status == model.StatusPublished && post.Analytics == nil {
		post.Analytics = SynthesizeAnalytics()
	}
	if post.Status != model.StatusPublished {
		post.Analytics = nil
	}
}

// SynthesizeAnalytics 发布时生成一次演示指标，之后不再重算
func SynthesizeAnalytics() *model.PostAnalytics {
	impressions := rand.Intn(5000)
	return &model.PostAnalytics{
		Likes:          rand.Intn(500),
		Shares:         rand.Intn(100),
		Comments:       rand.Intn(50),
		Impressions:    impressions,
		EngagementRate: float64(rand.Intn(500)) / 100,
	}
}

// Provider 按会话类型选择存储实现
// 访客身份永远只落本地文件；交互式会话在 Mongo 可用时走托管库（带本地读回退）。
type Provider struct {
	local  *LocalStore
	hosted Store
}

func NewProvider(local *LocalStore, hosted Store) *Provider {
	return &Provider{local: local, hosted: hosted}
}

// ForSession 返回该会话应使用的存储
func (p *Provider) ForSession(guest bool) Store {
	if guest || p.hosted == nil {
		return p.local
	}
	return p.hosted
}

// Local 本地存储实例（访客登录需要直接写入）
func (p *Provider) Local() *LocalStore {
	return p.local
}
