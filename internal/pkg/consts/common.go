package consts

const (
	MimePrefixImage = "image"
)

const (
	DefaultAvatarURL = "https://ui-avatars.com/api/?name=%s&background=4f46e5&color=fff"
)

// MediaSource 创作会话的媒体来源
const (
	MediaSourceNone   = "none"
	MediaSourceUpload = "upload"
	MediaSourceAI     = "ai"
)
