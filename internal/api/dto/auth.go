package dto

type LoginDTO struct {
	Email    string `json:"email" binding:"required" validate:"email"`
	Password string `json:"password" binding:"required" validate:"min=6,max=64"`
}

type UserDTO struct {
	ID          string `json:"id"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Guest       bool   `json:"guest"`
}

// SessionDTO 登录成功后返回的令牌与用户信息
type SessionDTO struct {
	Token string   `json:"token"`
	User  *UserDTO `json:"user"`
}
