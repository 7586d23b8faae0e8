// Package user 管理账户注册、登录和管理员初始化。
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shorturl-platform/internal/model"
	"shorturl-platform/internal/store"
)

// RegisterInput 注册信息
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Service 用户服务
type Service struct {
	users  *store.Table[model.User]
	logger *zap.SugaredLogger
	now    func() time.Time
}

// NewService 创建用户服务
func NewService(users *store.Table[model.User], logger *zap.SugaredLogger) *Service {
	return &Service{users: users, logger: logger.Named("user_service"), now: time.Now}
}

// Register 创建普通用户, 用户名不区分大小写唯一
func (s *Service) Register(ctx context.Context, in RegisterInput) (model.User, error) {
	const op = "user.Service.Register"

	u := model.User{
		ID:        uuid.NewString(),
		Username:  strings.TrimSpace(in.Username),
		Email:     strings.TrimSpace(in.Email),
		Role:      model.RoleUser,
		IsActive:  true,
		CreatedAt: s.now().UTC(),
	}
	if err := u.SetPassword(in.Password); err != nil {
		return model.User{}, fmt.Errorf("%s: 密码加密失败: %w", op, err)
	}

	if err := s.insert(ctx, u); err != nil {
		return model.User{}, fmt.Errorf("%s: %w", op, err)
	}

	s.logger.Infow("用户注册成功", "user_id", u.ID, "username", u.Username)
	return u, nil
}

// Authenticate 校验用户名密码并更新最后登录时间。
// 用户不存在和密码错误都返回 model.ErrInvalidCredentials。
func (s *Service) Authenticate(ctx context.Context, username, password string) (model.User, error) {
	const op = "user.Service.Authenticate"

	var authed model.User
	err := s.users.Update(ctx, func(users []model.User) ([]model.User, error) {
		for i := range users {
			if !strings.EqualFold(users[i].Username, username) {
				continue
			}
			if !users[i].CheckPassword(password) {
				return nil, model.ErrInvalidCredentials
			}
			if !users[i].IsActive {
				return nil, model.ErrAccountDisabled
			}
			now := s.now().UTC()
			users[i].LastLogin = &now
			authed = users[i]
			return users, nil
		}
		return nil, model.ErrInvalidCredentials
	})
	if err != nil {
		return model.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return authed, nil
}

// Get 按 ID 查询用户
func (s *Service) Get(ctx context.Context, id string) (model.User, error) {
	const op = "user.Service.Get"

	u, found, err := s.users.Find(ctx, func(u model.User) bool { return u.ID == id })
	if err != nil {
		return model.User{}, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return model.User{}, fmt.Errorf("%s: %w", op, model.ErrNotFound)
	}
	return u, nil
}

// EnsureAdmin 管理员账户不存在时创建, 已存在则不做修改
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	const op = "user.Service.EnsureAdmin"

	if username == "" || password == "" {
		return false, nil
	}

	admin := model.User{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     username + "@shorturl.local",
		Role:      model.RoleAdmin,
		IsActive:  true,
		CreatedAt: s.now().UTC(),
	}
	if err := admin.SetPassword(password); err != nil {
		return false, fmt.Errorf("%s: 密码加密失败: %w", op, err)
	}

	err := s.insert(ctx, admin)
	if errors.Is(err, model.ErrUsernameTaken) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	s.logger.Infow("默认管理员创建成功", "username", username)
	return true, nil
}

func (s *Service) insert(ctx context.Context, u model.User) error {
	return s.users.Update(ctx, func(users []model.User) ([]model.User, error) {
		for _, existing := range users {
			if strings.EqualFold(existing.Username, u.Username) {
				return nil, model.ErrUsernameTaken
			}
		}
		return append(users, u), nil
	})
}
