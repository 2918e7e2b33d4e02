package model

import (
	"time"
)

// PostStatus 帖子状态
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusScheduled PostStatus = "scheduled"
	StatusPublished PostStatus = "published"
)

func (s PostStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusScheduled, StatusPublished:
		return true
	}
	return false
}

// Post 已持久化的帖子记录
// 不变量：ScheduledAt 有值 当且仅当 Status == scheduled；
// Status == published 时 Analytics 必定存在。
type Post struct {
	ID          string         `json:"id" bson:"_id"`
	OwnerID     string         `json:"owner_id" bson:"owner_id"`
	Content     string         `json:"content" bson:"content"`
	Platform    Platform       `json:"platform" bson:"platform"`
	Status      PostStatus     `json:"status" bson:"status"`
	ScheduledAt *time.Time     `json:"scheduled_at,omitempty" bson:"scheduled_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at" bson:"created_at"`
	MediaURL    string         `json:"media_url,omitempty" bson:"media_url,omitempty"`
	RemoteID    string         `json:"remote_id,omitempty" bson:"remote_id,omitempty"`
	Analytics   *PostAnalytics `json:"analytics,omitempty" bson:"analytics,omitempty"`
}

// PostAnalytics 互动指标，发布时生成一次，之后不再重算
type PostAnalytics struct {
	Likes          int     `json:"likes" bson:"likes"`
	Shares         int     `json:"shares" bson:"shares"`
	Comments       int     `json:"comments" bson:"comments"`
	Impressions    int     `json:"impressions" bson:"impressions"`
	EngagementRate float64 `json:"engagement_rate" bson:"engagement_rate"`
}

// Connection 单个平台的凭据与连接状态
// Connected 为派生值：保存时所有必填凭据字段非空才为 true。
type Connection struct {
	Platform    Platform          `json:"platform" bson:"platform"`
	Connected   bool              `json:"connected" bson:"connected"`
	Credentials map[string]string `json:"credentials" bson:"credentials"`
}

// DeriveConnected 按平台必填字段重算连接状态
func (c *Connection) DeriveConnected() {
	spec := c.Platform.Spec()
	for _, field := range spec.RequiredCreds {
		if c.Credentials[field] == "" {
			c.Connected = false
			return
		}
	}
	c.Connected = len(spec.RequiredCreds) > 0
}
