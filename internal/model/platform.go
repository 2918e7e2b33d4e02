package model

// Platform 支持的社交平台（封闭枚举）
type Platform string

const (
	PlatformTwitter   Platform = "twitter"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
)

// PlatformSpec 单个平台的配置项：新增平台只需在表里加一行
type PlatformSpec struct {
	Display       string
	CharLimit     int
	PromptStyle   string   // 生成提示词中的平台风格约束（描述性，非硬截断）
	RequiredCreds []string // Connected 判定所需的凭据字段
	PublishWired  bool     // 是否接入了真实发布接口
}

var platformSpecs = map[Platform]PlatformSpec{
	PlatformTwitter: {
		Display:       "Twitter",
		CharLimit:     280,
		PromptStyle:   "短小精悍的推文，280字符以内，带2-3个话题标签",
		RequiredCreds: []string{"apiKey", "apiSecret", "accessToken"},
		PublishWired:  false,
	},
	PlatformLinkedIn: {
		Display:       "LinkedIn",
		CharLimit:     3000,
		PromptStyle:   "专业、有洞察力的职场内容，适度分段，少量话题标签",
		RequiredCreds: []string{"accessToken", "organizationId"},
		PublishWired:  false,
	},
	PlatformInstagram: {
		Display:       "Instagram",
		CharLimit:     2200,
		PromptStyle:   "视觉导向的文案，带表情符号和结尾的话题标签块",
		RequiredCreds: []string{"pageId", "accessToken"},
		PublishWired:  true,
	},
	PlatformFacebook: {
		Display:       "Facebook",
		CharLimit:     5000,
		PromptStyle:   "口语化、社区感强的内容，鼓励互动",
		RequiredCreds: []string{"pageId", "accessToken"},
		PublishWired:  true,
	},
}

// AllPlatforms 返回固定顺序的平台列表
func AllPlatforms() []Platform {
	return []Platform{PlatformTwitter, PlatformLinkedIn, PlatformInstagram, PlatformFacebook}
}

// ParsePlatform 解析平台标识；未知平台返回 false
func ParsePlatform(s string) (Platform, bool) {
	p := Platform(s)
	_, ok := platformSpecs[p]
	return p, ok
}

func (p Platform) Valid() bool {
	_, ok := platformSpecs[p]
	return ok
}

// Spec 返回平台配置；调用方须保证平台合法
func (p Platform) Spec() PlatformSpec {
	return platformSpecs[p]
}
