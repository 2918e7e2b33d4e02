package service

import (
	"context"

	"postflow/internal/api/dto"
	"postflow/internal/model"
	"postflow/internal/store"

	"github.com/jinzhu/copier"
)

type ProfileService interface {
	GetProfile(ctx context.Context, userID string, guest bool) (*model.CompanyProfile, error)
	SaveProfile(ctx context.Context, userID string, guest bool, profileDTO *dto.ProfileDTO) (*model.CompanyProfile, error)
}

type ProfileServiceImpl struct {
	stores *store.Provider
}

func NewProfileService(stores *store.Provider) ProfileService {
	return &ProfileServiceImpl{stores: stores}
}

func (s *ProfileServiceImpl) GetProfile(ctx context.Context, userID string, guest bool) (*model.CompanyProfile, error) {
	return s.stores.ForSession(guest).GetProfile(ctx, userID)
}

func (s *ProfileServiceImpl) SaveProfile(ctx context.Context, userID string, guest bool, profileDTO *dto.ProfileDTO) (*model.CompanyProfile, error) {
	profile := &model.CompanyProfile{}
	if err := copier.Copy(profile, profileDTO); err != nil {
		return nil, err
	}
	profile.OwnerID = userID

	if err := s.stores.ForSession(guest).SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
