package dto

type MediaDTO struct {
	ObjectName   string `json:"object_name"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}
