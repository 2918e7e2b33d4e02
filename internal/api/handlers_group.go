package api

import "postflow/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	AuthHandler       *handler.AuthHandler
	ProfileHandler    *handler.ProfileHandler
	PostHandler       *handler.PostHandler
	ComposerHandler   *handler.ComposerHandler
	ConnectionHandler *handler.ConnectionHandler
	MediaHandler      *handler.MediaHandler
	WsHandler         *handler.WsHandler
}
