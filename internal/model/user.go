package model

import (
	"time"
)

// User 领域用户：交互式账号与访客共用的会话身份
type User struct {
	ID          string    `json:"id" bson:"_id"`
	Email       string    `json:"email" bson:"email"`
	DisplayName string    `json:"display_name" bson:"display_name"`
	AvatarURL   string    `json:"avatar_url,omitempty" bson:"avatar_url,omitempty"`
	Guest       bool      `json:"guest" bson:"guest"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// Account 交互式登录账号，仅存 MySQL；访客不会落库
type Account struct {
	ID          uint64  `gorm:"primaryKey"`
	Email       *string `gorm:"type:varchar(255);uniqueIndex:idx_email"`
	Password    *string `gorm:"type:varchar(255)"`
	DisplayName string  `gorm:"type:varchar(100)"`
	AvatarURL   string  `gorm:"type:varchar(512)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Account) TableName() string {
	return "accounts"
}
