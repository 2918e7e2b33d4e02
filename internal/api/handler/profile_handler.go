package handler

import (
	"postflow/internal/api/dto"
	"postflow/internal/api/middleware"
	"postflow/internal/pkg/response"
	"postflow/internal/pkg/util"
	"postflow/internal/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileSvc service.ProfileService
}

func NewProfileHandler(profileSvc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileSvc: profileSvc}
}

// GetProfile 未配置档案时返回空数据，前端据此引导用户填写
func (s *ProfileHandler) GetProfile(c *gin.Context) {
	userID, guest := middleware.SessionUser(c)
	profile, err := s.profileSvc.GetProfile(c.Request.Context(), userID, guest)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

func (s *ProfileHandler) SaveProfile(c *gin.Context) {
	var profileDTO dto.ProfileDTO
	if err := c.ShouldBind(&profileDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&profileDTO); err != nil {
		response.Error(c, err)
		return
	}

	userID, guest := middleware.SessionUser(c)
	profile, err := s.profileSvc.SaveProfile(c.Request.Context(), userID, guest, &profileDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}
