package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sweeps_admin/pkg/utils"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidSession token 无效或会话已失效
var ErrInvalidSession = errors.New("invalid session")

// Identity 已登录的管理员
type Identity struct {
	SessionID string    `json:"-"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Manager 会话管理：签发 JWT，并在 Store 中登记 jti 以支持强制下线
type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
	allow  map[string]struct{}
}

func NewManager(store Store, secret []byte, ttl time.Duration, adminEmails []string) *Manager {
	allow := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		if e = normalize(e); e != "" {
			allow[e] = struct{}{}
		}
	}
	return &Manager{store: store, secret: secret, ttl: ttl, allow: allow}
}

// TTL 会话有效期
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Allowed 邮箱是否在管理员白名单中
func (m *Manager) Allowed(email string) bool {
	_, ok := m.allow[normalize(email)]
	return ok
}

// Issue 创建会话
func (m *Manager) Issue(ctx context.Context, email string) (string, *Identity, error) {
	email = normalize(email)
	id := uuid.NewString()

	token, expireAt, err := utils.GenerateToken(m.secret, id, email, m.ttl)
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}
	if err := m.store.Save(ctx, id, email, m.ttl); err != nil {
		return "", nil, fmt.Errorf("save session: %w", err)
	}

	return token, &Identity{SessionID: id, Email: email, ExpiresAt: expireAt}, nil
}

// Resolve 校验 token 并确认会话仍然有效
func (m *Manager) Resolve(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}

	claims, err := utils.ParseToken(m.secret, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	email, err := m.store.Get(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	if email != claims.Email {
		return nil, ErrInvalidSession
	}

	return &Identity{
		SessionID: claims.ID,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Revoke 吊销会话
func (m *Manager) Revoke(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return m.store.Delete(ctx, sessionID)
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
