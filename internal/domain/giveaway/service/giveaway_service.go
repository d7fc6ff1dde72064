package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sweeps_admin/internal/domain/giveaway/model"
	"sweeps_admin/internal/domain/giveaway/repository"
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

var (
	ErrGiveawayNotFound = errors.New("giveaway not found")
	ErrInvalidGiveaway  = errors.New("invalid giveaway")
	ErrSlugTaken        = errors.New("slug is already used by another giveaway")
)

// GiveawayService 活动服务接口
type GiveawayService interface {
	List(ctx context.Context, site string, status model.Status) ([]model.GiveawayWithCount, error)
	ListActive(ctx context.Context, site string) ([]model.Giveaway, error)
	Get(ctx context.Context, site, id string) (*model.GiveawayWithCount, error)
	Create(ctx context.Context, site string, input model.GiveawayInput) (*model.Giveaway, error)
	Update(ctx context.Context, site, id string, input model.GiveawayInput) (*model.Giveaway, error)
	Delete(ctx context.Context, site, id string) error
	CloseExpired(ctx context.Context, site string) (int64, error)
}

type giveawayService struct {
	repo repository.GiveawayRepository
	now  func() time.Time
}

// NewGiveawayService 创建活动服务
func NewGiveawayService(repo repository.GiveawayRepository) GiveawayService {
	return &giveawayService{repo: repo, now: time.Now}
}

// List 活动列表，附带参与人数
func (s *giveawayService) List(ctx context.Context, site string, status model.Status) ([]model.GiveawayWithCount, error) {
	switch status {
	case "":
		status = model.StatusAll
	case model.StatusAll, model.StatusActive, model.StatusEnded:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidGiveaway, status)
	}

	giveaways, err := s.repo.List(ctx, site, status)
	if err != nil {
		return nil, fmt.Errorf("list giveaways: %w", err)
	}

	ids := make([]string, len(giveaways))
	for i, g := range giveaways {
		ids[i] = g.ID
	}
	counts, err := s.repo.CountEntries(ctx, site, ids)
	if err != nil {
		return nil, fmt.Errorf("count entries: %w", err)
	}

	result := make([]model.GiveawayWithCount, len(giveaways))
	for i, g := range giveaways {
		result[i] = model.GiveawayWithCount{Giveaway: g, EntryCount: counts[g.ID]}
	}
	return result, nil
}

func (s *giveawayService) ListActive(ctx context.Context, site string) ([]model.Giveaway, error) {
	giveaways, err := s.repo.ListActive(ctx, site)
	if err != nil {
		return nil, fmt.Errorf("list active giveaways: %w", err)
	}
	return giveaways, nil
}

// Get 获取单个活动
func (s *giveawayService) Get(ctx context.Context, site, id string) (*model.GiveawayWithCount, error) {
	g, err := s.find(ctx, site, id)
	if err != nil {
		return nil, err
	}

	counts, err := s.repo.CountEntries(ctx, site, []string{id})
	if err != nil {
		return nil, fmt.Errorf("count entries: %w", err)
	}
	return &model.GiveawayWithCount{Giveaway: *g, EntryCount: counts[id]}, nil
}

// Create 创建活动，slug 为空时根据标题生成
func (s *giveawayService) Create(ctx context.Context, site string, input model.GiveawayInput) (*model.Giveaway, error) {
	g := &model.Giveaway{MaxEntriesPerDay: 1, IsActive: true}
	if input.Title == nil || input.PrizeName == nil || input.StartDate == nil || input.EndDate == nil {
		return nil, fmt.Errorf("%w: title, prize_name, start_date and end_date are required", ErrInvalidGiveaway)
	}
	apply(g, input)

	if err := validate(g); err != nil {
		return nil, err
	}

	if g.Slug == nil || strings.TrimSpace(*g.Slug) == "" {
		generated, err := s.uniqueSlug(ctx, site, g.Title)
		if err != nil {
			return nil, err
		}
		g.Slug = &generated
	} else if err := s.checkSlug(ctx, site, *g.Slug, ""); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, site, g); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("create giveaway: %w", err)
	}
	return g, nil
}

// Update 部分更新，只写入传入的字段
func (s *giveawayService) Update(ctx context.Context, site, id string, input model.GiveawayInput) (*model.Giveaway, error) {
	g, err := s.find(ctx, site, id)
	if err != nil {
		return nil, err
	}

	apply(g, input)
	if err := validate(g); err != nil {
		return nil, err
	}
	if input.Slug != nil {
		if strings.TrimSpace(*input.Slug) == "" {
			g.Slug = nil
		} else if err := s.checkSlug(ctx, site, *input.Slug, id); err != nil {
			return nil, err
		}
	}

	fields := changedFields(g, input)
	fields["updated_at"] = s.now()
	if err := s.repo.Update(ctx, site, id, fields); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrGiveawayNotFound
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("update giveaway: %w", err)
	}

	return s.find(ctx, site, id)
}

// Delete 删除活动
func (s *giveawayService) Delete(ctx context.Context, site, id string) error {
	if err := s.repo.Delete(ctx, site, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGiveawayNotFound
		}
		return fmt.Errorf("delete giveaway: %w", err)
	}
	return nil
}

// CloseExpired 关闭已结束的活动，返回关闭数量
func (s *giveawayService) CloseExpired(ctx context.Context, site string) (int64, error) {
	n, err := s.repo.CloseExpired(ctx, site, s.now())
	if err != nil {
		return 0, fmt.Errorf("close expired giveaways: %w", err)
	}
	return n, nil
}

func (s *giveawayService) find(ctx context.Context, site, id string) (*model.Giveaway, error) {
	g, err := s.repo.GetByID(ctx, site, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGiveawayNotFound
		}
		return nil, fmt.Errorf("get giveaway: %w", err)
	}
	return g, nil
}

func (s *giveawayService) checkSlug(ctx context.Context, site, value, excludeID string) error {
	taken, err := s.repo.SlugExists(ctx, site, value, excludeID)
	if err != nil {
		return fmt.Errorf("check slug: %w", err)
	}
	if taken {
		return ErrSlugTaken
	}
	return nil
}

// uniqueSlug 标题生成的 slug 冲突时追加数字后缀
func (s *giveawayService) uniqueSlug(ctx context.Context, site, title string) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = "giveaway"
	}

	candidate := base
	for i := 2; i < 100; i++ {
		taken, err := s.repo.SlugExists(ctx, site, candidate, "")
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", ErrSlugTaken
}

func apply(g *model.Giveaway, in model.GiveawayInput) {
	if in.Title != nil {
		g.Title = strings.TrimSpace(*in.Title)
	}
	if in.PrizeName != nil {
		g.PrizeName = strings.TrimSpace(*in.PrizeName)
	}
	if in.PrizeValue != nil {
		g.PrizeValue = in.PrizeValue
	}
	if in.ClearPrizeValue {
		g.PrizeValue = nil
	}
	if in.StartDate != nil {
		g.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		g.EndDate = *in.EndDate
	}
	if in.MaxEntriesPerDay != nil {
		g.MaxEntriesPerDay = *in.MaxEntriesPerDay
	}
	if in.IsActive != nil {
		g.IsActive = *in.IsActive
	}
	if in.Slug != nil {
		v := strings.TrimSpace(*in.Slug)
		g.Slug = &v
	}
	if in.HeroImage != nil {
		g.HeroImage = in.HeroImage
	}
	if in.Description1 != nil {
		g.Description1 = in.Description1
	}
	if in.Description2 != nil {
		g.Description2 = in.Description2
	}
	if in.SponsorName != nil {
		g.SponsorName = in.SponsorName
	}
}

func validate(g *model.Giveaway) error {
	switch {
	case g.Title == "":
		return fmt.Errorf("%w: title is required", ErrInvalidGiveaway)
	case g.PrizeName == "":
		return fmt.Errorf("%w: prize_name is required", ErrInvalidGiveaway)
	case g.EndDate.Before(g.StartDate):
		return fmt.Errorf("%w: end_date must not be before start_date", ErrInvalidGiveaway)
	case g.MaxEntriesPerDay < 1:
		return fmt.Errorf("%w: max_entries_per_day must be at least 1", ErrInvalidGiveaway)
	case g.PrizeValue != nil && *g.PrizeValue < 0:
		return fmt.Errorf("%w: prize_value must not be negative", ErrInvalidGiveaway)
	}
	return nil
}

// changedFields 把输入中出现的字段转换为列更新
func changedFields(g *model.Giveaway, in model.GiveawayInput) map[string]interface{} {
	fields := make(map[string]interface{})
	if in.Title != nil {
		fields["title"] = g.Title
	}
	if in.PrizeName != nil {
		fields["prize_name"] = g.PrizeName
	}
	if in.PrizeValue != nil || in.ClearPrizeValue {
		fields["prize_value"] = g.PrizeValue
	}
	if in.StartDate != nil {
		fields["start_date"] = g.StartDate
	}
	if in.EndDate != nil {
		fields["end_date"] = g.EndDate
	}
	if in.MaxEntriesPerDay != nil {
		fields["max_entries_per_day"] = g.MaxEntriesPerDay
	}
	if in.IsActive != nil {
		fields["is_active"] = g.IsActive
	}
	if in.Slug != nil {
		fields["slug"] = g.Slug
	}
	if in.HeroImage != nil {
		fields["hero_image"] = g.HeroImage
	}
	if in.Description1 != nil {
		fields["description_1"] = g.Description1
	}
	if in.Description2 != nil {
		fields["description_2"] = g.Description2
	}
	if in.SponsorName != nil {
		fields["sponsor_name"] = g.SponsorName
	}
	return fields
}
