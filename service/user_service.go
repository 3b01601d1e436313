package service

import (
	"errors"
	"time"

	"inkwell/config"
	"inkwell/dao"
	"inkwell/internal/auth"
	"inkwell/model"
	"inkwell/utils"

	"github.com/go-redis/redis/v8"
)

// ErrUserExists covers a racing duplicate on registration, where the
// violated constraint (email or username) is not distinguishable.
var ErrUserExists = errors.New("user already exists")

// UserService bundles the DAO, session storage and authentication helpers.
type UserService struct {
	dao     *dao.UserDAO
	Session *auth.SessionManager
}

// NewUserService 创建一个新的 UserService 实例
func NewUserService(dao *dao.UserDAO, rdb *redis.Client) *UserService {
	return &UserService{
		dao:     dao,
		Session: auth.NewSessionManager(rdb),
	}
}

// Register persists a freshly created user after hashing the password.
func (s *UserService) Register(email, username, password string) (*model.User, error) {
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Email:        email,
		Username:     username,
		PasswordHash: hashed,
	}
	if err := s.dao.CreateUser(user); err != nil {
		if dao.IsDuplicateKey(err) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

// Login handles email/password authentication and issues a token pair.
func (s *UserService) Login(email, password, device string) (string, string, error) {
	user, err := s.dao.GetByEmail(email)
	if err != nil || user.ID == 0 {
		return "", "", ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := auth.GenerateTokens(user.ID, device)
	if err != nil {
		return "", "", err
	}

	ttl := time.Duration(config.GlobalConfig.JWT.RefreshExpire) * time.Second
	if err := s.Session.SaveRefreshToken(user.ID, device, refreshToken, ttl); err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// RotateRefreshToken 校验 refresh token、执行黑名单写入，并颁发新的 token 对。
func (s *UserService) RotateRefreshToken(refreshToken, headerDevice string) (string, string, error) {
	if refreshToken == "" {
		return "", "", errors.New("missing refresh token")
	}

	claims, err := auth.ParseToken(refreshToken)
	if err != nil {
		return "", "", errors.New("refresh token invalid")
	}

	// 可选：若客户端提供 X-Device，需与 Token claims 匹配。
	if headerDevice != "" && headerDevice != claims.Device {
		return "", "", errors.New("device mismatch")
	}

	stored, err := s.Session.GetRefreshToken(claims.UserID, claims.Device)
	if err != nil || stored != refreshToken {
		return "", "", errors.New("refresh token expired or rotated")
	}

	accessToken, newRefresh, err := auth.GenerateTokens(claims.UserID, claims.Device)
	if err != nil {
		return "", "", err
	}

	ttl := time.Duration(config.GlobalConfig.JWT.RefreshExpire) * time.Second
	if err := s.Session.SaveRefreshToken(claims.UserID, claims.Device, newRefresh, ttl); err != nil {
		return "", "", err
	}

	// 将旧 refresh token 加入黑名单，防止被重放。
	_ = s.Session.AddBlackList(refreshToken, ttl)

	return accessToken, newRefresh, nil
}

// Current returns the authenticated user's own record.
func (s *UserService) Current(userID uint64) (*model.User, error) {
	user, err := s.dao.GetByID(userID)
	if err != nil {
		if dao.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateUserInput 更新用户入参，nil 表示不修改
type UpdateUserInput struct {
	Email    *string
	Username *string
	Password *string
	Bio      *string
	Image    *string
}

// UpdateUser mutates the user's own record, guarding email/username
// uniqueness, and returns the updated user.
func (s *UserService) UpdateUser(userID uint64, in UpdateUserInput) (*model.User, error) {
	user, err := s.dao.GetByID(userID)
	if err != nil {
		if dao.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if in.Email != nil && *in.Email != user.Email {
		if _, err := s.dao.GetByEmail(*in.Email); err == nil {
			return nil, ErrEmailTaken
		} else if !dao.IsNotFound(err) {
			return nil, err
		}
		user.Email = *in.Email
	}
	if in.Username != nil && *in.Username != user.Username {
		if _, err := s.dao.GetByUsername(*in.Username); err == nil {
			return nil, ErrUsernameTaken
		} else if !dao.IsNotFound(err) {
			return nil, err
		}
		user.Username = *in.Username
	}
	if in.Password != nil {
		hashed, err := utils.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashed
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	if in.Image != nil {
		user.Image = *in.Image
	}

	if err := s.dao.UpdateUser(user); err != nil {
		if dao.IsDuplicateKey(err) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return user, nil
}
