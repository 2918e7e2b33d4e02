package social

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"postflow/internal/model"
)

// VerifyResult 凭据校验结果，message 面向用户展示
type VerifyResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// PublishResult 发布结果；OK 为 false 时 Error 包含用户可读的原因
type PublishResult struct {
	OK       bool   `json:"ok"`
	RemoteID string `json:"remote_id,omitempty"`
	Error    string `json:"error,omitempty"`
}

var numericID = regexp.MustCompile(`^\d+$`)

// Connector 对接社交平台开放接口
// 校验只做轻量读请求，绝不改动远端状态。
type Connector struct {
	graph *graphClient
}

func NewConnector(graphBaseURL string) *Connector {
	return &Connector{graph: newGraphClient(graphBaseURL)}
}

// Verify 用给定凭据做一次轻量读请求，区分缺字段、格式错误、令牌失效、ID 类型用错几种情况
func (s *Connector) Verify(ctx context.Context, platform model.Platform, credentials map[string]string) (*VerifyResult, error) {
	switch platform {
	case model.PlatformFacebook:
		return s.verifyFacebook(ctx, credentials)
	case model.PlatformInstagram:
		return s.verifyInstagram(ctx, credentials)
	case model.PlatformLinkedIn:
		return &VerifyResult{OK: true, Message: "Verificación simulada (LinkedIn requiere integración de backend adicional)."}, nil
	case model.PlatformTwitter:
		return &VerifyResult{OK: true, Message: "Verificación simulada (Twitter requiere OAuth 1.0)."}, nil
	default:
		return &VerifyResult{OK: false, Message: "Plataforma no soportada."}, nil
	}
}

// Publish 把内容发到目标平台
// 未连接或媒体不符合要求时直接返回失败结果，不发起任何网络请求。
func (s *Connector) Publish(ctx context.Context, platform model.Platform, content string, mediaURL string, conn *model.Connection) (*PublishResult, error) {
	if conn == nil || !conn.Connected {
		return &PublishResult{OK: false, Error: fmt.Sprintf("No estás conectado a %s. Ve a Configuración.", platform.Spec().Display)}, nil
	}

	switch platform {
	case model.PlatformFacebook:
		return s.publishFacebook(ctx, content, mediaURL, conn.Credentials)
	case model.PlatformInstagram:
		return s.publishInstagram(ctx, content, mediaURL, conn.Credentials)
	default:
		return &PublishResult{OK: false, Error: fmt.Sprintf("La publicación automática en %s aún no está soportada.", platform.Spec().Display)}, nil
	}
}

// publicMediaURL 发布附图必须是公网地址；本地编码的图片（data URI）直接拒绝
func publicMediaURL(mediaURL string) (string, bool) {
	u := strings.TrimSpace(mediaURL)
	if u == "" {
		return "", false
	}
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		return "", false
	}
	return u, true
}

func cred(credentials map[string]string, key string) string {
	// 用户复制粘贴常带多余空格，先清理再用
	return strings.TrimSpace(credentials[key])
}
