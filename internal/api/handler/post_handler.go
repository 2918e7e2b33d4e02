package handler

import (
	"strconv"
	"time"

	"postflow/internal/api/dto"
	"postflow/internal/api/middleware"
	"postflow/internal/pkg/response"
	"postflow/internal/pkg/util"
	"postflow/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{postSvc: postSvc}
}

func (s *PostHandler) ListPosts(c *gin.Context) {
	userID, guest := middleware.SessionUser(c)
	posts, err := s.postSvc.ListPosts(c.Request.Context(), userID, guest)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *PostHandler) GetPost(c *gin.Context) {
	userID, guest := middleware.SessionUser(c)
	post, err := s.postSvc.GetPost(c.Request.Context(), userID, guest, c.Param("post_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) UpdatePost(c *gin.Context) {
	var updateDTO dto.UpdatePostDTO
	if err := c.ShouldBind(&updateDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&updateDTO); err != nil {
		response.Error(c, err)
		return
	}

	userID, guest := middleware.SessionUser(c)
	post, err := s.postSvc.UpdatePost(c.Request.Context(), userID, guest, c.Param("post_id"), &updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) DeletePost(c *gin.Context) {
	userID, guest := middleware.SessionUser(c)
	if err := s.postSvc.DeletePost(c.Request.Context(), userID, guest, c.Param("post_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Calendar 月历视图，缺省为当月
func (s *PostHandler) Calendar(c *gin.Context) {
	now := time.Now()
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil || month < 1 || month > 12 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	userID, guest := middleware.SessionUser(c)
	days, err := s.postSvc.CalendarMonth(c.Request.Context(), userID, guest, year, time.Month(month))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, days)
}

func (s *PostHandler) AnalyticsSummary(c *gin.Context) {
	userID, guest := middleware.SessionUser(c)
	summary, err := s.postSvc.AnalyticsSummary(c.Request.Context(), userID, guest)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, summary)
}

// Publish 把一条已保存的帖子直接发到对应平台
func (s *PostHandler) Publish(c *gin.Context) {
	var publishDTO dto.PublishDTO
	if err := c.ShouldBind(&publishDTO); err != nil {
		response.Error(c, err)
		return
	}

	userID, guest := middleware.SessionUser(c)
	result, err := s.postSvc.Publish(c.Request.Context(), userID, guest, publishDTO.PostID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
