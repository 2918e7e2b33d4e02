package handler

import (
	log "log/slog"
	"net/http"
	"time"

	"postflow/internal/pkg/response"
	"postflow/internal/pkg/security"
	"postflow/internal/service"
	"postflow/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// changedEvent 只表示"有变化"，客户端收到后整单重拉，不做增量
var changedEvent = []byte(`{"event":"changed"}`)

type WsHandler struct {
	notifier store.Notifier
}

func NewWsHandler(notifier store.Notifier) *WsHandler {
	return &WsHandler{notifier: notifier}
}

// Changes 推送当前用户领域记录的变更通知
func (s *WsHandler) Changes(c *gin.Context) {
	// 浏览器 WebSocket 无法带自定义 Header，令牌走查询参数
	token := c.Query("token")
	if token == "" {
		response.Error(c, service.UnauthorizedError)
		return
	}
	claims, err := security.ValidateToken(token)
	if err != nil {
		log.Warn("WS 鉴权失败", "err", err)
		response.Error(c, service.UnauthorizedError)
		return
	}
	userID := claims.UserID

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WS 协议升级失败", "err", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	changes, cancel := s.notifier.Subscribe(userID)
	defer cancel()

	log.Info("用户 WS 连接已建立", "userID", userID)

	stopChan := make(chan struct{})

	// 读循环：监听客户端主动断开
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				close(stopChan)
				return
			}
		}
	}()

	for {
		select {
		case _, ok := <-changes:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(websocket.TextMessage, changedEvent); err != nil {
				log.Error("WS 推送失败", "userID", userID, "err", err)
				return
			}
		case <-stopChan:
			log.Info("用户 WS 连接已断开", "userID", userID)
			return
		}
	}
}
