package service

import (
	"context"
	"errors"
	log "log/slog"
	"sync"
	"time"

	"postflow/internal/api/dto"
	"postflow/internal/model"
	"postflow/internal/pkg/consts"
	"postflow/internal/pkg/llm"
	"postflow/internal/pkg/minio"
	"postflow/internal/pkg/redis"
	"postflow/internal/pkg/social"
	"postflow/internal/pkg/util"
	"postflow/internal/store"

	"github.com/google/uuid"
)

// 创作会话状态机
const (
	StateIdle        = "idle"
	StateConfiguring = "configuring"
	StateGenerating  = "generating"
	StateReady       = "ready"
	StateEditing     = "editing"
	StateSaved       = "saved"
)

const generateLockTTL = 2 * time.Minute

// composerSession 单用户的创作会话，仅存内存
type composerSession struct {
	State       string
	Topic       string
	Platforms   []model.Platform
	MediaSource string
	MediaURL    string
	MediaObject string
	ImageStyle  string
	ImagePrompt string
	Drafts      map[model.Platform]string
	Active      model.Platform
}

type ComposerService interface {
	Configure(ctx context.Context, userID string, configDTO *dto.ComposerConfigureDTO) (*dto.ComposerSessionDTO, error)
	Generate(ctx context.Context, userID string, guest bool) (*dto.ComposerSessionDTO, error)
	EditDraft(userID string, editDTO *dto.ComposerEditDTO) (*dto.ComposerSessionDTO, error)
	SwitchTab(userID string, tabDTO *dto.ComposerSwitchTabDTO) (*dto.ComposerSessionDTO, error)
	Score(ctx context.Context, userID string) (*dto.ScoreDTO, error)
	SaveActive(ctx context.Context, userID string, guest bool, saveDTO *dto.ComposerSaveDTO) (*model.Post, error)
	Session(userID string) *dto.ComposerSessionDTO
}

type ComposerServiceImpl struct {
	stores    *store.Provider
	connector *social.Connector

	mu       sync.Mutex
	sessions map[string]*composerSession
}

func NewComposerService(stores *store.Provider, connector *social.Connector) ComposerService {
	return &ComposerServiceImpl{
		stores:    stores,
		connector: connector,
		sessions:  make(map[string]*composerSession),
	}
}

// Configure 开始或重置一次创作：主题、目标平台与媒体来源
// 上传媒体与 AI 配图互斥：选了 ai 就忽略传入的 media_url。
func (s *ComposerServiceImpl) Configure(_ context.Context, userID string, configDTO *dto.ComposerConfigureDTO) (*dto.ComposerSessionDTO, error) {
	platforms := make([]model.Platform, 0, len(configDTO.Platforms))
	seen := make(map[model.Platform]bool)
	for _, raw := range configDTO.Platforms {
		p, ok := model.ParsePlatform(raw)
		if !ok {
			return nil, ErrPlatformInvalid
		}
		if !seen[p] {
			seen[p] = true
			platforms = append(platforms, p)
		}
	}
	if len(platforms) == 0 {
		return nil, ErrNoPlatform
	}

	mediaSource := configDTO.MediaSource
	if mediaSource == "" {
		mediaSource = consts.MediaSourceNone
	}
	mediaURL := ""
	if mediaSource == consts.MediaSourceUpload {
		mediaURL = configDTO.MediaURL
	}

	session := &composerSession{
		State:       StateConfiguring,
		Topic:       configDTO.Topic,
		Platforms:   platforms,
		MediaSource: mediaSource,
		MediaURL:    mediaURL,
		ImageStyle:  configDTO.ImageStyle,
		ImagePrompt: configDTO.ImagePrompt,
		Drafts:      make(map[model.Platform]string),
	}

	s.mu.Lock()
	s.sessions[userID] = session
	snapshot := toSessionDTO(session)
	s.mu.Unlock()
	return snapshot, nil
}

// Generate 为所有目标平台生成文案，媒体来源为 ai 时再生成配图
// 文案与配图是两次独立调用：配图失败只记录，不丢弃已生成的文案。
func (s *ComposerServiceImpl) Generate(ctx context.Context, userID string, guest bool) (*dto.ComposerSessionDTO, error) {
	s.mu.Lock()
	session := s.sessions[userID]
	if session == nil {
		s.mu.Unlock()
		return nil, ErrNoSession
	}
	if session.Topic == "" {
		s.mu.Unlock()
		return nil, ErrTopicEmpty
	}
	if len(session.Platforms) == 0 {
		s.mu.Unlock()
		return nil, ErrNoPlatform
	}
	topic := session.Topic
	platforms := append([]model.Platform{}, session.Platforms...)
	mediaSource := session.MediaSource
	imageStyle := session.ImageStyle
	imagePrompt := session.ImagePrompt
	session.State = StateGenerating
	s.mu.Unlock()

	profile, err := s.stores.ForSession(guest).GetProfile(ctx, userID)
	if err != nil {
		s.setState(userID, StateConfiguring)
		return nil, err
	}
	if profile == nil {
		s.setState(userID, StateConfiguring)
		return nil, ErrProfileMissing
	}

	// 同一用户同一时刻只允许一次生成
	lockKey := consts.ComposerGenLock + userID
	locked, err := redis.TryLock(ctx, lockKey, userID, generateLockTTL, 0)
	if err != nil {
		s.setState(userID, StateConfiguring)
		return nil, err
	}
	if !locked {
		s.setState(userID, StateConfiguring)
		return nil, ErrGenInFlight
	}
	defer redis.UnLock(ctx, lockKey, userID)

	drafts, err := llm.GenerateDrafts(ctx, topic, profile, platforms)
	if err != nil {
		s.setState(userID, StateConfiguring)
		return nil, mapGenerationError(err)
	}

	mediaURL, mediaObject := "", ""
	if mediaSource == consts.MediaSourceAI {
		mediaURL, mediaObject = s.generateAndHostImage(ctx, topic, imageStyle, imagePrompt)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	session = s.sessions[userID]
	if session == nil {
		return nil, ErrNoSession
	}
	session.Drafts = drafts
	session.Active = platforms[0]
	session.State = StateReady
	if mediaURL != "" {
		session.MediaURL = mediaURL
		session.MediaObject = mediaObject
	}
	return toSessionDTO(session), nil
}

// generateAndHostImage 生成配图并转存到对象存储，失败只降级不报错
func (s *ComposerServiceImpl) generateAndHostImage(ctx context.Context, topic string, style string, customPrompt string) (string, string) {
	image, err := llm.GenerateImage(ctx, topic, style, customPrompt)
	if err != nil {
		log.WarnContext(ctx, "配图生成失败，继续保留文案", "err", err)
		return "", ""
	}
	if image == nil {
		return "", ""
	}

	objectName := "ai/" + uuid.NewString() + util.ExtForMime(image.MIME)
	if _, err = minio.UploadBytes(ctx, objectName, image.Data, image.MIME); err != nil {
		log.WarnContext(ctx, "配图转存失败，继续保留文案", "err", err)
		return "", ""
	}

	// 进临时索引，保存成功后移除，超时未用由清理任务回收
	deadline := time.Now().Add(24 * time.Hour).Unix()
	if err = redis.HSet(ctx, consts.MediaTempKey, objectName, deadline); err != nil {
		log.WarnContext(ctx, "临时媒体索引写入失败", "object", objectName, "err", err)
	}

	return minio.GetPublicURL(objectName), objectName
}

// EditDraft 编辑某个平台的草稿，编辑结果跨切换保留
func (s *ComposerServiceImpl) EditDraft(userID string, editDTO *dto.ComposerEditDTO) (*dto.ComposerSessionDTO, error) {
	p, ok := model.ParsePlatform(editDTO.Platform)
	if !ok {
		return nil, ErrPlatformInvalid
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	session := s.sessions[userID]
	if session == nil {
		return nil, ErrNoSession
	}
	if _, ok = session.Drafts[p]; !ok {
		return nil, ErrDraftNotReady
	}

	session.Drafts[p] = editDTO.Content
	session.State = StateEditing
	return toSessionDTO(session), nil
}

func (s *ComposerServiceImpl) SwitchTab(userID string, tabDTO *dto.ComposerSwitchTabDTO) (*dto.ComposerSessionDTO, error) {
	p, ok := model.ParsePlatform(tabDTO.Platform)
	if !ok {
		return nil, ErrPlatformInvalid
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	session := s.sessions[userID]
	if session == nil {
		return nil, ErrNoSession
	}
	if _, ok = session.Drafts[p]; !ok {
		return nil, ErrDraftNotReady
	}

	session.Active = p
	return toSessionDTO(session), nil
}

// Score 对当前活动草稿做建议性打分，任何失败都降级，绝不阻塞保存
func (s *ComposerServiceImpl) Score(ctx context.Context, userID string) (*dto.ScoreDTO, error) {
	s.mu.Lock()
	session := s.sessions[userID]
	if session == nil {
		s.mu.Unlock()
		return nil, ErrNoSession
	}
	content, ok := session.Drafts[session.Active]
	active := session.Active
	s.mu.Unlock()
	if !ok || content == "" {
		return nil, ErrDraftNotReady
	}

	score := llm.ScorePost(ctx, content, active)
	return &dto.ScoreDTO{Score: score.Score, Suggestion: score.Suggestion}, nil
}

// SaveActive 只保存当前活动标签的草稿，生成了几个平台就要切几次、存几次
// 非草稿保存后会话清空，草稿保存则保留会话继续编辑。
func (s *ComposerServiceImpl) SaveActive(ctx context.Context, userID string, guest bool, saveDTO *dto.ComposerSaveDTO) (*model.Post, error) {
	s.mu.Lock()
	session := s.sessions[userID]
	if session == nil {
		s.mu.Unlock()
		return nil, ErrNoSession
	}
	content, ok := session.Drafts[session.Active]
	if !ok || content == "" {
		s.mu.Unlock()
		return nil, ErrDraftNotReady
	}

	status := model.PostStatus(saveDTO.Status)
	if !status.Valid() {
		s.mu.Unlock()
		return nil, ErrStatusInvalid
	}
	if status == model.StatusScheduled && saveDTO.ScheduledAt == nil {
		s.mu.Unlock()
		return nil, ErrScheduleRequired
	}

	post := &model.Post{
		OwnerID:     userID,
		Content:     content,
		Platform:    session.Active,
		Status:      status,
		ScheduledAt: saveDTO.ScheduledAt,
		MediaURL:    session.MediaURL,
	}
	mediaObject := session.MediaObject
	s.mu.Unlock()

	st := s.stores.ForSession(guest)
	saved, err := st.SavePost(ctx, post)
	if err != nil {
		return nil, err
	}

	// 媒体已被引用，移出临时清理索引
	if mediaObject != "" {
		if err = redis.HDel(ctx, consts.MediaTempKey, mediaObject); err != nil {
			log.WarnContext(ctx, "临时媒体索引移除失败", "object", mediaObject, "err", err)
		}
	}

	// 已连接平台的 published 保存顺带尝试直接发布，失败不影响已落库的记录
	if status == model.StatusPublished {
		s.bestEffortPublish(ctx, st, userID, saved)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	session = s.sessions[userID]
	if session != nil {
		if status == model.StatusDraft {
			session.State = StateSaved
		} else {
			s.sessions[userID] = &composerSession{State: StateIdle, Drafts: make(map[model.Platform]string)}
		}
	}
	return saved, nil
}

func (s *ComposerServiceImpl) bestEffortPublish(ctx context.Context, st store.Store, userID string, post *model.Post) {
	conn, err := st.GetConnection(ctx, userID, post.Platform)
	if err != nil || conn == nil || !conn.Connected {
		return
	}

	result, err := s.connector.Publish(ctx, post.Platform, post.Content, post.MediaURL, conn)
	if err != nil || !result.OK {
		log.WarnContext(ctx, "发布尝试失败，帖子已按 published 保留", "platform", post.Platform, "err", err)
		return
	}

	post.RemoteID = result.RemoteID
	if err = st.UpdatePost(ctx, post); err != nil {
		log.WarnContext(ctx, "远端 ID 回写失败", "post_id", post.ID, "err", err)
	}
}

func (s *ComposerServiceImpl) Session(userID string) *dto.ComposerSessionDTO {
	s.mu.Lock()
	defer s.mu.Unlock()
	session := s.sessions[userID]
	if session == nil {
		return &dto.ComposerSessionDTO{State: StateIdle}
	}
	return toSessionDTO(session)
}

func (s *ComposerServiceImpl) setState(userID string, state string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session := s.sessions[userID]; session != nil {
		session.State = state
	}
}

func mapGenerationError(err error) error {
	switch {
	case errors.Is(err, llm.ErrMissingKey):
		return ErrGenMissingKey
	case errors.Is(err, llm.ErrUnparseable):
		return ErrGenUnparseable
	default:
		return ErrGenProviderRejected
	}
}

func toSessionDTO(session *composerSession) *dto.ComposerSessionDTO {
	platforms := make([]string, 0, len(session.Platforms))
	for _, p := range session.Platforms {
		platforms = append(platforms, string(p))
	}
	drafts := make(map[string]string, len(session.Drafts))
	for p, content := range session.Drafts {
		drafts[string(p)] = content
	}

	return &dto.ComposerSessionDTO{
		State:          session.State,
		Topic:          session.Topic,
		Platforms:      platforms,
		ActivePlatform: string(session.Active),
		Drafts:         drafts,
		MediaSource:    session.MediaSource,
		MediaURL:       session.MediaURL,
	}
}
