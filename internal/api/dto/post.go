package dto

import "time"

type UpdatePostDTO struct {
	Content     string     `json:"content" binding:"required" validate:"min=1,max=5000"`
	Status      string     `json:"status" binding:"required" validate:"oneof=draft scheduled published"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

// AnalyticsSummaryDTO 仪表盘用的汇总指标
type AnalyticsSummaryDTO struct {
	TotalPosts        int     `json:"total_posts"`
	DraftCount        int     `json:"draft_count"`
	ScheduledCount    int     `json:"scheduled_count"`
	PublishedCount    int     `json:"published_count"`
	TotalLikes        int     `json:"total_likes"`
	TotalShares       int     `json:"total_shares"`
	TotalComments     int     `json:"total_comments"`
	TotalImpressions  int     `json:"total_impressions"`
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
}

// PublishDTO 已保存帖子的发布请求
type PublishDTO struct {
	PostID string `json:"post_id" binding:"required"`
}

type PublishResultDTO struct {
	OK       bool   `json:"ok"`
	RemoteID string `json:"remote_id,omitempty"`
	Error    string `json:"error,omitempty"`
}
