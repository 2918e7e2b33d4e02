package repository

import (
	"context"
	"errors"

	"postflow/internal/model"

	"gorm.io/gorm"
)

type AccountRepo interface {
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)
	CreateAccount(ctx context.Context, account *model.Account) error
}

type AccountRepoImpl struct {
	db *gorm.DB
}

func NewAccountRepo(db *gorm.DB) AccountRepo {
	return &AccountRepoImpl{db: db}
}

func (s *AccountRepoImpl) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	account := &model.Account{}
	result := s.db.WithContext(ctx).
		Where("email = ?", email).
		First(account)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return account, nil
}

func (s *AccountRepoImpl) CreateAccount(ctx context.Context, account *model.Account) error {
	return s.db.WithContext(ctx).Create(account).Error
}
