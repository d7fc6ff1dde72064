package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sweeps_admin/internal/domain/auth/model"
	"sweeps_admin/internal/domain/auth/repository"
	"sweeps_admin/internal/pkg/session"
	"sweeps_admin/pkg/logger"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotAllowed 账号密码正确，但邮箱不在管理员白名单中
	ErrNotAllowed   = errors.New("account is not authorized for the admin dashboard")
	ErrWeakPassword = errors.New("password must be at least 8 characters")
)

// AuthService 管理员认证服务接口
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *session.Identity, error)
	Logout(ctx context.Context, token string) error
	UpsertAdmin(ctx context.Context, email, password string) (*model.AdminUser, error)
}

// dummyHash 账号不存在时参与比对的哈希，使未知邮箱与错误密码耗时一致
var dummyHash = sync.OnceValue(func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte("sweeps-admin-placeholder"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return hash
})

type authService struct {
	repo      repository.AdminUserRepository
	sessions  *session.Manager
	adminSite string
	now       func() time.Time
	compare   func(hash, password []byte) error
}

// NewAuthService 创建认证服务，adminSite 为 admin_users 表所在站点
func NewAuthService(repo repository.AdminUserRepository, sessions *session.Manager, adminSite string) AuthService {
	return &authService{
		repo:      repo,
		sessions:  sessions,
		adminSite: adminSite,
		now:       time.Now,
		compare:   bcrypt.CompareHashAndPassword,
	}
}

// Login 校验密码并签发会话
func (s *authService) Login(ctx context.Context, email, password string) (string, *session.Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	// 1. 校验账号密码
	user, err := s.repo.GetByEmail(ctx, s.adminSite, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = s.compare(dummyHash(), []byte(password))
			logger.Log.Warn("admin login rejected", zap.String("email", email))
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("load admin user: %w", err)
	}
	if err := s.compare([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Warn("admin login rejected", zap.String("email", email))
		return "", nil, ErrInvalidCredentials
	}

	// 2. 签发会话
	token, identity, err := s.sessions.Issue(ctx, email)
	if err != nil {
		return "", nil, err
	}

	// 3. 白名单之外的账号立即下线
	if !s.sessions.Allowed(email) {
		if err := s.sessions.Revoke(ctx, identity.SessionID); err != nil {
			logger.Log.Error("revoke session failed", zap.String("email", email), zap.Error(err))
		}
		logger.Log.Warn("login outside admin allow-list", zap.String("email", email))
		return "", nil, ErrNotAllowed
	}

	if err := s.repo.TouchLastLogin(ctx, s.adminSite, user.ID, s.now().UTC()); err != nil {
		logger.Log.Warn("update last login failed", zap.String("email", email), zap.Error(err))
	}
	logger.Log.Info("admin signed in", zap.String("email", email))
	return token, identity, nil
}

// Logout 吊销当前会话，无效 token 视为已登出
func (s *authService) Logout(ctx context.Context, token string) error {
	identity, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrInvalidSession) {
			return nil
		}
		return err
	}
	if err := s.sessions.Revoke(ctx, identity.SessionID); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	logger.Log.Info("admin signed out", zap.String("email", identity.Email))
	return nil
}

// UpsertAdmin 创建管理员或重置其密码
func (s *authService) UpsertAdmin(ctx context.Context, email, password string) (*model.AdminUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if len(password) < 8 {
		return nil, ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.GetByEmail(ctx, s.adminSite, email)
	switch {
	case err == nil:
		if err := s.repo.UpdatePassword(ctx, s.adminSite, user.ID, string(hash)); err != nil {
			return nil, fmt.Errorf("update admin password: %w", err)
		}
		user.PasswordHash = string(hash)
		return user, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = &model.AdminUser{Email: email, PasswordHash: string(hash)}
		if err := s.repo.Create(ctx, s.adminSite, user); err != nil {
			return nil, fmt.Errorf("create admin user: %w", err)
		}
		return user, nil
	default:
		return nil, fmt.Errorf("load admin user: %w", err)
	}
}
