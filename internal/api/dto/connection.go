package dto

type SaveConnectionDTO struct {
	Credentials map[string]string `json:"credentials" binding:"required"`
}

// VerifyConnectionDTO 不带凭据时校验已保存的那份
type VerifyConnectionDTO struct {
	Credentials map[string]string `json:"credentials"`
}

type VerifyResultDTO struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// ConnectionDTO 凭据值不回传，只标记哪些字段已填
type ConnectionDTO struct {
	Platform     string   `json:"platform"`
	Display      string   `json:"display"`
	Connected    bool     `json:"connected"`
	FilledCreds  []string `json:"filled_creds"`
	RequiredCred []string `json:"required_creds"`
	PublishWired bool     `json:"publish_wired"`
}
