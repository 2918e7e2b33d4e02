package handler

import (
	"postflow/internal/api/dto"
	"postflow/internal/api/middleware"
	"postflow/internal/pkg/response"
	"postflow/internal/pkg/util"
	"postflow/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authSvc service.AuthService
}

func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

func (s *AuthHandler) Login(c *gin.Context) {
	var loginDTO dto.LoginDTO
	if err := c.ShouldBind(&loginDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&loginDTO); err != nil {
		response.Error(c, err)
		return
	}

	session, err := s.authSvc.Login(c.Request.Context(), &loginDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, session)
}

// GuestLogin 无需凭据，数据只存本地
func (s *AuthHandler) GuestLogin(c *gin.Context) {
	session, err := s.authSvc.GuestLogin(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, session)
}

func (s *AuthHandler) Logout(c *gin.Context) {
	token := c.GetString(middleware.CtxToken)
	if err := s.authSvc.Logout(c.Request.Context(), token); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *AuthHandler) Me(c *gin.Context) {
	userID, guest := middleware.SessionUser(c)
	user, err := s.authSvc.Me(c.Request.Context(), userID, guest)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}
