package service

import (
	"context"

	"postflow/internal/api/dto"
	"postflow/internal/model"
	"postflow/internal/pkg/social"
	"postflow/internal/store"
)

type ConnectionService interface {
	ListConnections(ctx context.Context, userID string, guest bool) ([]*dto.ConnectionDTO, error)
	SaveConnection(ctx context.Context, userID string, guest bool, platform string, saveDTO *dto.SaveConnectionDTO) (*dto.ConnectionDTO, error)
	Disconnect(ctx context.Context, userID string, guest bool, platform string) error
	Verify(ctx context.Context, userID string, guest bool, platform string, verifyDTO *dto.VerifyConnectionDTO) (*dto.VerifyResultDTO, error)
}

type ConnectionServiceImpl struct {
	stores    *store.Provider
	connector *social.Connector
}

func NewConnectionService(stores *store.Provider, connector *social.Connector) ConnectionService {
	return &ConnectionServiceImpl{
		stores:    stores,
		connector: connector,
	}
}

// ListConnections 每个平台都返回一条，未配置的平台 Connected 为 false
func (s *ConnectionServiceImpl) ListConnections(ctx context.Context, userID string, guest bool) ([]*dto.ConnectionDTO, error) {
	saved, err := s.stores.ForSession(guest).ListConnections(ctx, userID)
	if err != nil {
		return nil, err
	}

	byPlatform := make(map[model.Platform]*model.Connection, len(saved))
	for _, conn := range saved {
		byPlatform[conn.Platform] = conn
	}

	result := make([]*dto.ConnectionDTO, 0, len(model.AllPlatforms()))
	for _, p := range model.AllPlatforms() {
		conn := byPlatform[p]
		if conn == nil {
			conn = &model.Connection{Platform: p, Credentials: map[string]string{}}
		}
		result = append(result, toConnectionDTO(conn))
	}
	return result, nil
}

func (s *ConnectionServiceImpl) SaveConnection(ctx context.Context, userID string, guest bool, platform string, saveDTO *dto.SaveConnectionDTO) (*dto.ConnectionDTO, error) {
	p, ok := model.ParsePlatform(platform)
	if !ok {
		return nil, ErrPlatformInvalid
	}

	conn := &model.Connection{
		Platform:    p,
		Credentials: saveDTO.Credentials,
	}
	conn.DeriveConnected()

	if err := s.stores.ForSession(guest).SaveConnection(ctx, userID, conn); err != nil {
		return nil, err
	}
	return toConnectionDTO(conn), nil
}

// Disconnect 断开即清空凭据
func (s *ConnectionServiceImpl) Disconnect(ctx context.Context, userID string, guest bool, platform string) error {
	p, ok := model.ParsePlatform(platform)
	if !ok {
		return ErrPlatformInvalid
	}

	conn := &model.Connection{
		Platform:    p,
		Connected:   false,
		Credentials: map[string]string{},
	}
	return s.stores.ForSession(guest).SaveConnection(ctx, userID, conn)
}

// Verify 校验凭据；请求未携带凭据时校验已保存的那份
func (s *ConnectionServiceImpl) Verify(ctx context.Context, userID string, guest bool, platform string, verifyDTO *dto.VerifyConnectionDTO) (*dto.VerifyResultDTO, error) {
	p, ok := model.ParsePlatform(platform)
	if !ok {
		return nil, ErrPlatformInvalid
	}

	credentials := verifyDTO.Credentials
	if len(credentials) == 0 {
		saved, err := s.stores.ForSession(guest).GetConnection(ctx, userID, p)
		if err != nil {
			return nil, err
		}
		if saved != nil {
			credentials = saved.Credentials
		}
	}

	result, err := s.connector.Verify(ctx, p, credentials)
	if err != nil {
		return nil, err
	}
	return &dto.VerifyResultDTO{OK: result.OK, Message: result.Message}, nil
}

func toConnectionDTO(conn *model.Connection) *dto.ConnectionDTO {
	spec := conn.Platform.Spec()

	filled := make([]string, 0, len(conn.Credentials))
	for _, field := range spec.RequiredCreds {
		if conn.Credentials[field] != "" {
			filled = append(filled, field)
		}
	}

	return &dto.ConnectionDTO{
		Platform:     string(conn.Platform),
		Display:      spec.Display,
		Connected:    conn.Connected,
		FilledCreds:  filled,
		RequiredCred: spec.RequiredCreds,
		PublishWired: spec.PublishWired,
	}
}
