package handler

import (
	"postflow/internal/api/dto"
	"postflow/internal/api/middleware"
	"postflow/internal/pkg/response"
	"postflow/internal/pkg/util"
	"postflow/internal/service"

	"github.com/gin-gonic/gin"
)

type ComposerHandler struct {
	composerSvc service.ComposerService
}

func NewComposerHandler(composerSvc service.ComposerService) *ComposerHandler {
	return &ComposerHandler{composerSvc: composerSvc}
}

func (s *ComposerHandler) Configure(c *gin.Context) {
	var configDTO dto.ComposerConfigureDTO
	if err := c.ShouldBind(&configDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&configDTO); err != nil {
		response.Error(c, err)
		return
	}

	userID, _ := middleware.SessionUser(c)
	session, err := s.composerSvc.Configure(c.Request.Context(), userID, &configDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, session)
}

func (s *ComposerHandler) Generate(c *gin.Context) {
	userID, guest := middleware.SessionUser(c)
	session, err := s.composerSvc.Generate(c.Request.Context(), userID, guest)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, session)
}

func (s *ComposerHandler) EditDraft(c *gin.Context) {
	var editDTO dto.ComposerEditDTO
	if err := c.ShouldBind(&editDTO); err != nil {
		response.Error(c, err)
		return
	}

	userID, _ := middleware.SessionUser(c)
	session, err := s.composerSvc.EditDraft(userID, &editDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, session)
}

func (s *ComposerHandler) SwitchTab(c *gin.Context) {
	var tabDTO dto.ComposerSwitchTabDTO
	if err := c.ShouldBind(&tabDTO); err != nil {
		response.Error(c, err)
		return
	}

	userID, _ := middleware.SessionUser(c)
	session, err := s.composerSvc.SwitchTab(userID, &tabDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, session)
}

func (s *ComposerHandler) Score(c *gin.Context) {
	userID, _ := middleware.SessionUser(c)
	score, err := s.composerSvc.Score(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, score)
}

func (s *ComposerHandler) SaveActive(c *gin.Context) {
	var saveDTO dto.ComposerSaveDTO
	if err := c.ShouldBind(&saveDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&saveDTO); err != nil {
		response.Error(c, err)
		return
	}

	userID, guest := middleware.SessionUser(c)
	post, err := s.composerSvc.SaveActive(c.Request.Context(), userID, guest, &saveDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *ComposerHandler) Session(c *gin.Context) {
	userID, _ := middleware.SessionUser(c)
	response.Success(c, s.composerSvc.Session(userID))
}
