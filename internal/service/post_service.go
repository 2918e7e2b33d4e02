package service

import (
	"context"
	"time"

	"postflow/internal/api/dto"
	"postflow/internal/model"
	"postflow/internal/pkg/social"
	"postflow/internal/store"
)

type PostService interface {
	ListPosts(ctx context.Context, userID string, guest bool) ([]*model.Post, error)
	GetPost(ctx context.Context, userID string, guest bool, postID string) (*model.Post, error)
	UpdatePost(ctx context.Context, userID string, guest bool, postID string, updateDTO *dto.UpdatePostDTO) (*model.Post, error)
	DeletePost(ctx context.Context, userID string, guest bool, postID string) error
	CalendarMonth(ctx context.Context, userID string, guest bool, year int, month time.Month) (map[string][]*model.Post, error)
	AnalyticsSummary(ctx context.Context, userID string, guest bool) (map[string]*dto.AnalyticsSummaryDTO, error)
	Publish(ctx context.Context, userID string, guest bool, postID string) (*dto.PublishResultDTO, error)
}

type PostServiceImpl struct {
	stores    *store.Provider
	connector *social.Connector
}

func NewPostService(stores *store.Provider, connector *social.Connector) PostService {
	return &PostServiceImpl{
		stores:    stores,
		connector: connector,
	}
}

func (s *PostServiceImpl) ListPosts(ctx context.Context, userID string, guest bool) ([]*model.Post, error) {
	return s.stores.ForSession(guest).ListPosts(ctx, userID)
}

func (s *PostServiceImpl) GetPost(ctx context.Context, userID string, guest bool, postID string) (*model.Post, error) {
	post, err := s.stores.ForSession(guest).GetPost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// UpdatePost 编辑已保存的帖子，状态迁移时维护排期/指标不变量
func (s *PostServiceImpl) UpdatePost(ctx context.Context, userID string, guest bool, postID string, updateDTO *dto.UpdatePostDTO) (*model.Post, error) {
	post, err := s.GetPost(ctx, userID, guest, postID)
	if err != nil {
		return nil, err
	}

	status := model.PostStatus(updateDTO.Status)
	if !status.Valid() {
		return nil, ErrStatusInvalid
	}
	if status == model.StatusScheduled && updateDTO.ScheduledAt == nil {
		return nil, ErrScheduleRequired
	}

	post.Content = updateDTO.Content
	post.Status = status
	if status == model.StatusScheduled {
		post.ScheduledAt = updateDTO.ScheduledAt
	} else {
		post.ScheduledAt = nil
	}
	if status == model.StatusPublished && post.Analytics == nil {
		post.Analytics = store.SynthesizeAnalytics()
	}
	if status != model.StatusPublished {
		post.Analytics = nil
		post.RemoteID = ""
	}

	if err = s.stores.ForSession(guest).UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostServiceImpl) DeletePost(ctx context.Context, userID string, guest bool, postID string) error {
	return s.stores.ForSession(guest).DeletePost(ctx, userID, postID)
}

// CalendarMonth 按天归组当月的排期与已发布帖子，键为 2006-01-02
func (s *PostServiceImpl) CalendarMonth(ctx context.Context, userID string, guest bool, year int, month time.Month) (map[string][]*model.Post, error) {
	posts, err := s.stores.ForSession(guest).ListPosts(ctx, userID)
	if err != nil {
		return nil, err
	}

	days := make(map[string][]*model.Post)
	for _, post := range posts {
		at := post.CreatedAt
		if post.Status == model.StatusScheduled && post.ScheduledAt != nil {
			at = *post.ScheduledAt
		}
		if at.Year() != year || at.Month() != month {
			continue
		}
		key := at.Format("2006-01-02")
		days[key] = append(days[key], post)
	}
	return days, nil
}

// AnalyticsSummary 按平台聚合已存帖子的演示指标
func (s *PostServiceImpl) AnalyticsSummary(ctx context.Context, userID string, guest bool) (map[string]*dto.AnalyticsSummaryDTO, error) {
	posts, err := s.stores.ForSession(guest).ListPosts(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := make(map[string]*dto.AnalyticsSummaryDTO)
	engagement := make(map[string]float64)
	measured := make(map[string]int)
	for _, p := range model.AllPlatforms() {
		summary[string(p)] = &dto.AnalyticsSummaryDTO{}
	}

	for _, post := range posts {
		key := string(post.Platform)
		agg := summary[key]
		if agg == nil {
			continue
		}
		agg.TotalPosts++
		switch post.Status {
		case model.StatusDraft:
			agg.DraftCount++
		case model.StatusScheduled:
			agg.ScheduledCount++
		case model.StatusPublished:
			agg.PublishedCount++
		}
		if post.Analytics != nil {
			agg.TotalLikes += post.Analytics.Likes
			agg.TotalShares += post.Analytics.Shares
			agg.TotalComments += post.Analytics.Comments
			agg.TotalImpressions += post.Analytics.Impressions
			engagement[key] += post.Analytics.EngagementRate
			measured[key]++
		}
	}

	for key, agg := range summary {
		if measured[key] > 0 {
			agg.AvgEngagementRate = engagement[key] / float64(measured[key])
		}
	}
	return summary, nil
}

// Publish 把已保存的帖子直接发到平台，成功后回写远端 ID 与状态
func (s *PostServiceImpl) Publish(ctx context.Context, userID string, guest bool, postID string) (*dto.PublishResultDTO, error) {
	post, err := s.GetPost(ctx, userID, guest, postID)
	if err != nil {
		return nil, err
	}

	st := s.stores.ForSession(guest)
	conn, err := st.GetConnection(ctx, userID, post.Platform)
	if err != nil {
		return nil, err
	}
	if conn == nil || !conn.Connected {
		return nil, ErrNotConnected
	}

	result, err := s.connector.Publish(ctx, post.Platform, post.Content, post.MediaURL, conn)
	if err != nil {
		return nil, err
	}
	if !result.OK {
		return &dto.PublishResultDTO{OK: false, Error: result.Error}, nil
	}

	post.Status = model.StatusPublished
	post.ScheduledAt = nil
	post.RemoteID = result.RemoteID
	if post.Analytics == nil {
		post.Analytics = store.SynthesizeAnalytics()
	}
	if err = st.UpdatePost(ctx, post); err != nil {
		return nil, err
	}

	return &dto.PublishResultDTO{OK: true, RemoteID: result.RemoteID}, nil
}
