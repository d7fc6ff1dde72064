package service

import (
	"context"
	"errors"
	"sweeps_admin/internal/domain/auth/model"
	"sweeps_admin/internal/pkg/session"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MockAdminUserRepository is a mock of AdminUserRepository
type MockAdminUserRepository struct {
	mock.Mock
}

func (m *MockAdminUserRepository) GetByEmail(ctx context.Context, site, email string) (*model.AdminUser, error) {
	args := m.Called(site, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdminUser), args.Error(1)
}

func (m *MockAdminUserRepository) Create(ctx context.Context, site string, user *model.AdminUser) error {
	args := m.Called(site, user)
	return args.Error(0)
}

func (m *MockAdminUserRepository) UpdatePassword(ctx context.Context, site, id, hash string) error {
	args := m.Called(site, id, hash)
	return args.Error(0)
}

func (m *MockAdminUserRepository) TouchLastLogin(ctx context.Context, site, id string, at time.Time) error {
	args := m.Called(site, id, at)
	return args.Error(0)
}

const adminSite = "sweepsfan"

func createTestAdmin(t *testing.T, email, password string) *model.AdminUser {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.AdminUser{Email: email, PasswordHash: string(hash)}
	u.ID = "admin-1"
	return u
}

func newTestService(repo *MockAdminUserRepository, allow ...string) (AuthService, *session.Manager) {
	sessions := session.NewManager(session.NewMemoryStore(), []byte("0123456789abcdef0123456789abcdef"), time.Hour, allow)
	return NewAuthService(repo, sessions, adminSite), sessions
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("allow-listed admin gets a live session", func(t *testing.T) {
		repo := new(MockAdminUserRepository)
		svc, sessions := newTestService(repo, "admin@example.com")

		repo.On("GetByEmail", adminSite, "admin@example.com").Return(createTestAdmin(t, "admin@example.com", "correct horse"), nil)
		repo.On("TouchLastLogin", adminSite, "admin-1", mock.AnythingOfType("time.Time")).Return(nil)

		token, identity, err := svc.Login(ctx, " Admin@Example.com ", "correct horse")
		require.NoError(t, err)
		assert.Equal(t, "admin@example.com", identity.Email)

		resolved, err := sessions.Resolve(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, identity.SessionID, resolved.SessionID)
		repo.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockAdminUserRepository)
		svc, _ := newTestService(repo, "admin@example.com")

		repo.On("GetByEmail", adminSite, "admin@example.com").Return(createTestAdmin(t, "admin@example.com", "correct horse"), nil)

		_, _, err := svc.Login(ctx, "admin@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		repo.AssertNotCalled(t, "TouchLastLogin", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown account", func(t *testing.T) {
		repo := new(MockAdminUserRepository)
		svc, _ := newTestService(repo, "admin@example.com")

		repo.On("GetByEmail", adminSite, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

		_, _, err := svc.Login(ctx, "ghost@example.com", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown account still pays for a hash comparison", func(t *testing.T) {
		repo := new(MockAdminUserRepository)
		sessions := session.NewManager(session.NewMemoryStore(), []byte("0123456789abcdef0123456789abcdef"), time.Hour, nil)
		var compared [][]byte
		svc := &authService{repo: repo, sessions: sessions, adminSite: adminSite, now: time.Now,
			compare: func(hash, password []byte) error {
				compared = append(compared, hash)
				return bcrypt.CompareHashAndPassword(hash, password)
			},
		}

		repo.On("GetByEmail", adminSite, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

		_, _, err := svc.Login(ctx, "ghost@example.com", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		require.Len(t, compared, 1)
		cost, err := bcrypt.Cost(compared[0])
		require.NoError(t, err)
		assert.Equal(t, bcrypt.DefaultCost, cost)
	})

	t.Run("valid credentials outside allow-list", func(t *testing.T) {
		repo := new(MockAdminUserRepository)
		svc, _ := newTestService(repo, "admin@example.com")

		repo.On("GetByEmail", adminSite, "intern@example.com").Return(createTestAdmin(t, "intern@example.com", "correct horse"), nil)

		token, identity, err := svc.Login(ctx, "intern@example.com", "correct horse")
		assert.ErrorIs(t, err, ErrNotAllowed)
		assert.Empty(t, token)
		assert.Nil(t, identity)
	})

	t.Run("store failure", func(t *testing.T) {
		repo := new(MockAdminUserRepository)
		svc, _ := newTestService(repo, "admin@example.com")

		repo.On("GetByEmail", adminSite, "admin@example.com").Return(nil, errors.New("connection refused"))

		_, _, err := svc.Login(ctx, "admin@example.com", "x")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAdminUserRepository)
	svc, sessions := newTestService(repo, "admin@example.com")

	token, _, err := sessions.Issue(ctx, "admin@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token))
	_, err = sessions.Resolve(ctx, token)
	assert.ErrorIs(t, err, session.ErrInvalidSession)

	// 重复登出和空 token 都不报错
	assert.NoError(t, svc.Logout(ctx, token))
	assert.NoError(t, svc.Logout(ctx, ""))
}

func TestUpsertAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates new admin", func(t *testing.T) {
		repo := new(MockAdminUserRepository)
		svc, _ := newTestService(repo)

		repo.On("GetByEmail", adminSite, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
		repo.On("Create", adminSite, mock.MatchedBy(func(u *model.AdminUser) bool {
			return u.Email == "new@example.com" && bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret-pass")) == nil
		})).Return(nil)

		user, err := svc.UpsertAdmin(ctx, "New@Example.com", "s3cret-pass")
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", user.Email)
		repo.AssertExpectations(t)
	})

	t.Run("resets existing password", func(t *testing.T) {
		repo := new(MockAdminUserRepository)
		svc, _ := newTestService(repo)

		repo.On("GetByEmail", adminSite, "admin@example.com").Return(createTestAdmin(t, "admin@example.com", "old-password"), nil)
		repo.On("UpdatePassword", adminSite, "admin-1", mock.AnythingOfType("string")).Return(nil)

		_, err := svc.UpsertAdmin(ctx, "admin@example.com", "new-password")
		require.NoError(t, err)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("short password", func(t *testing.T) {
		svc, _ := newTestService(new(MockAdminUserRepository))
		_, err := svc.UpsertAdmin(ctx, "a@example.com", "short")
		assert.ErrorIs(t, err, ErrWeakPassword)
	})
}
