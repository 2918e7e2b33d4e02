package service

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"postflow/internal/api/dto"
	"postflow/internal/model"
	"postflow/internal/pkg/consts"
	"postflow/internal/pkg/redis"
	"postflow/internal/pkg/security"
	"postflow/internal/repository"
	"postflow/internal/store"

	"fmt"

	"github.com/google/uuid"
)

type AuthService interface {
	Login(ctx context.Context, loginDTO *dto.LoginDTO) (*dto.SessionDTO, error)
	GuestLogin(ctx context.Context) (*dto.SessionDTO, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, userID string, guest bool) (*dto.UserDTO, error)
}

type AuthServiceImpl struct {
	accountRepo repository.AccountRepo
	stores      *store.Provider
}

func NewAuthService(accountRepo repository.AccountRepo, stores *store.Provider) AuthService {
	return &AuthServiceImpl{
		accountRepo: accountRepo,
		stores:      stores,
	}
}

// Login 邮箱登录，账号不存在时按该邮箱自动注册
func (s *AuthServiceImpl) Login(ctx context.Context, loginDTO *dto.LoginDTO) (*dto.SessionDTO, error) {
	account, err := s.accountRepo.GetAccountByEmail(ctx, loginDTO.Email)
	if err != nil {
		return nil, err
	}

	if account == nil {
		account, err = s.createAccount(ctx, loginDTO)
		if err != nil {
			return nil, err
		}
	} else {
		if account.Password == nil {
			return nil, ErrCredentialIncorrect
		}
		if err = security.CheckPasswordHash(loginDTO.Password, *account.Password); err != nil {
			return nil, ErrCredentialIncorrect
		}
	}

	user := &model.User{
		ID:          strconv.FormatUint(account.ID, 10),
		Email:       loginDTO.Email,
		DisplayName: account.DisplayName,
		AvatarURL:   account.AvatarURL,
		Guest:       false,
		CreatedAt:   account.CreatedAt,
	}
	return s.openSession(ctx, user)
}

// GuestLogin 访客模式：不建账号，身份只存在于本地存储
func (s *AuthServiceImpl) GuestLogin(ctx context.Context) (*dto.SessionDTO, error) {
	user := &model.User{
		ID:          uuid.NewString(),
		DisplayName: "Invitado",
		AvatarURL:   fmt.Sprintf(consts.DefaultAvatarURL, "Invitado"),
		Guest:       true,
		CreatedAt:   time.Now(),
	}
	return s.openSession(ctx, user)
}

// openSession 写入用户记录、播种演示数据并签发令牌
func (s *AuthServiceImpl) openSession(ctx context.Context, user *model.User) (*dto.SessionDTO, error) {
	st := s.stores.ForSession(user.Guest)

	if err := st.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	if err := st.SeedIfEmpty(ctx, user.ID); err != nil {
		return nil, err
	}

	token, err := security.GenerateToken(user.ID, user.Guest)
	if err != nil {
		return nil, err
	}
	return &dto.SessionDTO{
		Token: token,
		User:  toUserDTO(user),
	}, nil
}

// Logout 把令牌签名拉入黑名单，重复登出不报错
func (s *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return err
	}
	return redis.SetWithExpiration(ctx, signature, true, security.JWTExpirationTime)
}

func (s *AuthServiceImpl) Me(ctx context.Context, userID string, guest bool) (*dto.UserDTO, error) {
	user, err := s.stores.ForSession(guest).GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return toUserDTO(user), nil
}

func (s *AuthServiceImpl) createAccount(ctx context.Context, loginDTO *dto.LoginDTO) (*model.Account, error) {
	passwordHash, err := security.HashPassword(loginDTO.Password)
	if err != nil {
		return nil, err
	}

	email := loginDTO.Email
	displayName := email
	if i := strings.Index(email, "@"); i > 0 {
		displayName = email[:i]
	}

	account := &model.Account{
		Email:       &email,
		Password:    &passwordHash,
		DisplayName: displayName,
		AvatarURL:   fmt.Sprintf(consts.DefaultAvatarURL, url.QueryEscape(email)),
	}
	if err = s.accountRepo.CreateAccount(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func toUserDTO(user *model.User) *dto.UserDTO {
	return &dto.UserDTO{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		AvatarURL:   user.AvatarURL,
		Guest:       user.Guest,
	}
}
