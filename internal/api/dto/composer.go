package dto

import "time"

type ComposerConfigureDTO struct {
	Topic       string   `json:"topic" binding:"required" validate:"min=1,max=500"`
	Platforms   []string `json:"platforms" binding:"required" validate:"min=1,dive,oneof=twitter linkedin instagram facebook"`
	MediaSource string   `json:"media_source" validate:"omitempty,oneof=none upload ai"`
	MediaURL    string   `json:"media_url,omitempty"`
	ImageStyle  string   `json:"image_style,omitempty" validate:"max=100"`
	ImagePrompt string   `json:"image_prompt,omitempty" validate:"max=1000"`
}

type ComposerEditDTO struct {
	Platform string `json:"platform" binding:"required" validate:"oneof=twitter linkedin instagram facebook"`
	Content  string `json:"content" binding:"required" validate:"min=1,max=5000"`
}

type ComposerSwitchTabDTO struct {
	Platform string `json:"platform" binding:"required" validate:"oneof=twitter linkedin instagram facebook"`
}

type ComposerSaveDTO struct {
	Status      string     `json:"status" binding:"required" validate:"oneof=draft scheduled published"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

type ScoreDTO struct {
	Score      int    `json:"score"`
	Suggestion string `json:"suggestion"`
}

// ComposerSessionDTO 创作会话的完整快照，前端据此渲染
type ComposerSessionDTO struct {
	State          string            `json:"state"`
	Topic          string            `json:"topic,omitempty"`
	Platforms      []string          `json:"platforms,omitempty"`
	ActivePlatform string            `json:"active_platform,omitempty"`
	Drafts         map[string]string `json:"drafts,omitempty"`
	MediaSource    string            `json:"media_source,omitempty"`
	MediaURL       string            `json:"media_url,omitempty"`
}
