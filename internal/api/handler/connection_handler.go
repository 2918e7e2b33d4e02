package handler

import (
	"errors"
	"io"

	"postflow/internal/api/dto"
	"postflow/internal/api/middleware"
	"postflow/internal/pkg/response"
	"postflow/internal/service"

	"github.com/gin-gonic/gin"
)

type ConnectionHandler struct {
	connectionSvc service.ConnectionService
}

func NewConnectionHandler(connectionSvc service.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{connectionSvc: connectionSvc}
}

func (s *ConnectionHandler) ListConnections(c *gin.Context) {
	userID, guest := middleware.SessionUser(c)
	conns, err := s.connectionSvc.ListConnections(c.Request.Context(), userID, guest)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, conns)
}

func (s *ConnectionHandler) SaveConnection(c *gin.Context) {
	var saveDTO dto.SaveConnectionDTO
	if err := c.ShouldBind(&saveDTO); err != nil {
		response.Error(c, err)
		return
	}

	userID, guest := middleware.SessionUser(c)
	conn, err := s.connectionSvc.SaveConnection(c.Request.Context(), userID, guest, c.Param("platform"), &saveDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, conn)
}

func (s *ConnectionHandler) Disconnect(c *gin.Context) {
	userID, guest := middleware.SessionUser(c)
	if err := s.connectionSvc.Disconnect(c.Request.Context(), userID, guest, c.Param("platform")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Verify 只读校验，不会动远端任何状态；空请求体表示校验已保存的凭据
func (s *ConnectionHandler) Verify(c *gin.Context) {
	var verifyDTO dto.VerifyConnectionDTO
	if err := c.ShouldBind(&verifyDTO); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, err)
		return
	}

	userID, guest := middleware.SessionUser(c)
	result, err := s.connectionSvc.Verify(c.Request.Context(), userID, guest, c.Param("platform"), &verifyDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
