package tenant

import (
	"errors"
	"fmt"
	"sweeps_admin/internal/pkg/config"
	"sweeps_admin/internal/pkg/uploader"
	"sweeps_admin/pkg/database"
	"sweeps_admin/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrUnknownSite 请求的站点不在配置表中
var ErrUnknownSite = errors.New("unknown site")

// DBResolver 按站点 ID 获取数据库句柄，仓储层通过它访问各站点数据库
type DBResolver interface {
	DB(site string) (*gorm.DB, error)
}

// Site 一个抽奖站点（租户）：独立的数据库和对象存储
type Site struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	URL     string            `json:"url"`
	Color   string            `json:"color"`
	DB      *gorm.DB          `json:"-"`
	Storage uploader.Uploader `json:"-"`
}

// Registry 站点表，启动时构建，之后只读
type Registry struct {
	sites map[string]*Site
	order []string
}

// NewRegistry 由站点列表构建注册表，保留传入顺序
func NewRegistry(sites ...*Site) (*Registry, error) {
	r := &Registry{sites: make(map[string]*Site, len(sites))}
	for _, s := range sites {
		if s.ID == "" {
			return nil, errors.New("site id is required")
		}
		if _, ok := r.sites[s.ID]; ok {
			return nil, fmt.Errorf("duplicate site id %q", s.ID)
		}
		r.sites[s.ID] = s
		r.order = append(r.order, s.ID)
	}
	return r, nil
}

// Open 按配置为每个站点打开数据库连接和对象存储
func Open(cfg *config.Config) (*Registry, error) {
	sites := make([]*Site, 0, len(cfg.Sites))
	for _, sc := range cfg.Sites {
		db, err := database.OpenPostgres(sc.Database, cfg.App.Debug)
		if err != nil {
			closeAll(sites)
			return nil, fmt.Errorf("site %s: %w", sc.ID, err)
		}

		store, err := uploader.New(sc.Storage)
		if err != nil {
			closeAll(append(sites, &Site{DB: db}))
			return nil, fmt.Errorf("site %s: %w", sc.ID, err)
		}

		sites = append(sites, &Site{
			ID:      sc.ID,
			Name:    sc.Name,
			URL:     sc.URL,
			Color:   sc.Color,
			DB:      db,
			Storage: store,
		})
		logger.Log.Info("site registered", zap.String("site", sc.ID), zap.String("storage", sc.Storage.Driver))
	}
	return NewRegistry(sites...)
}

// Get 按 ID 获取站点
func (r *Registry) Get(id string) (*Site, error) {
	s, ok := r.sites[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSite, id)
	}
	return s, nil
}

// DB 站点的数据库句柄
func (r *Registry) DB(id string) (*gorm.DB, error) {
	s, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	return s.DB, nil
}

// Storage 站点的对象存储
func (r *Registry) Storage(id string) (uploader.Uploader, error) {
	s, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	return s.Storage, nil
}

// List 按配置顺序返回所有站点
func (r *Registry) List() []*Site {
	out := make([]*Site, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.sites[id])
	}
	return out
}

// Close 关闭所有数据库连接
func (r *Registry) Close() {
	closeAll(r.List())
}

func closeAll(sites []*Site) {
	for _, s := range sites {
		if s.DB == nil {
			continue
		}
		if sqlDB, err := s.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
