package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const JWTExpirationTime = time.Hour * 24

// JWTSecret 进程启动时从配置注入
var JWTSecret = "postflow-dev"

// UserClaims Token 中携带的业务信息
// Guest 会话只允许访问本地存储，不会触达托管文档库。
type UserClaims struct {
	UserID string `json:"user_id"`
	Guest  bool   `json:"guest"`
	jwt.RegisteredClaims
}
