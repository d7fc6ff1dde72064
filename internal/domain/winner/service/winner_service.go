package service

import (
	"context"
	"errors"
	"fmt"
	entryModel "sweeps_admin/internal/domain/entry/model"
	giveawayModel "sweeps_admin/internal/domain/giveaway/model"
	"sweeps_admin/internal/domain/winner/draw"
	"sweeps_admin/internal/domain/winner/model"
	"sweeps_admin/internal/domain/winner/repository"
	"sweeps_admin/internal/pkg/lock"
	"sweeps_admin/pkg/logger"
	"sweeps_admin/pkg/metrics"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// drawLockTTL 抽奖锁的最长持有时间，足够覆盖一次抽奖的数据库往返
const drawLockTTL = 30 * time.Second

var (
	ErrGiveawayNotFound  = errors.New("giveaway not found")
	ErrWinnerNotFound    = errors.New("winner not found")
	ErrNoEntries         = errors.New("no entries found for this giveaway")
	ErrNoEligibleEntries = errors.New("no eligible entries: all participants have already won")
	ErrAlreadyWon        = errors.New("entry already won this giveaway")
	ErrDrawInProgress    = errors.New("a draw for this giveaway is already in progress")
)

// EntrySource 抽奖需要的参与记录查询
type EntrySource interface {
	ListByGiveaway(ctx context.Context, site, giveawayID string) ([]entryModel.Entry, error)
}

// GiveawaySource 抽奖需要的活动查询
type GiveawaySource interface {
	GetByID(ctx context.Context, site, id string) (*giveawayModel.Giveaway, error)
}

// WinnerService 中奖服务接口
type WinnerService interface {
	Draw(ctx context.Context, site, giveawayID string) (*model.Winner, error)
	List(ctx context.Context, site, giveawayID string) ([]model.Winner, error)
	MarkNotified(ctx context.Context, site, id string) (*model.Winner, error)
	MarkClaimed(ctx context.Context, site, id string) (*model.Winner, error)
}

type winnerService struct {
	repo      repository.WinnerRepository
	entries   EntrySource
	giveaways GiveawaySource
	locker    lock.Locker
	selector  *draw.Selector
	metrics   *metrics.MetricsCollector
	now       func() time.Time
}

// NewWinnerService 创建中奖服务
func NewWinnerService(
	repo repository.WinnerRepository,
	entries EntrySource,
	giveaways GiveawaySource,
	locker lock.Locker,
	selector *draw.Selector,
	collector *metrics.MetricsCollector,
) WinnerService {
	return &winnerService{
		repo:      repo,
		entries:   entries,
		giveaways: giveaways,
		locker:    locker,
		selector:  selector,
		metrics:   collector,
		now:       time.Now,
	}
}

// Draw 抽取一名中奖者
// 同一活动的并发抽奖由锁串行化，唯一约束兜底
func (s *winnerService) Draw(ctx context.Context, site, giveawayID string) (*model.Winner, error) {
	winner, err := s.draw(ctx, site, giveawayID)

	outcome := drawOutcome(err)
	if s.metrics != nil {
		s.metrics.RecordDraw(site, outcome)
	}

	if err != nil {
		if outcome == "error" {
			logger.Log.Error("draw failed", zap.String("site", site), zap.String("giveaway_id", giveawayID), zap.Error(err))
		} else {
			logger.Log.Info("draw finished without winner", zap.String("site", site), zap.String("giveaway_id", giveawayID), zap.String("outcome", outcome))
		}
		return nil, err
	}

	logger.Log.Info("winner drawn",
		zap.String("site", site),
		zap.String("giveaway_id", giveawayID),
		zap.String("winner_id", winner.ID),
		zap.String("entry_id", winner.EntryID),
	)
	return winner, nil
}

func (s *winnerService) draw(ctx context.Context, site, giveawayID string) (*model.Winner, error) {
	// 1. 同一活动同一时间只允许一个抽奖
	release, err := s.locker.Acquire(ctx, fmt.Sprintf("draw:%s:%s", site, giveawayID), drawLockTTL)
	if err != nil {
		if errors.Is(err, lock.ErrLocked) {
			return nil, ErrDrawInProgress
		}
		return nil, fmt.Errorf("acquire draw lock: %w", err)
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			logger.Log.Warn("release draw lock failed", zap.String("site", site), zap.String("giveaway_id", giveawayID), zap.Error(err))
		}
	}()

	// 2. 活动必须存在
	giveaway, err := s.giveaways.GetByID(ctx, site, giveawayID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGiveawayNotFound
		}
		return nil, fmt.Errorf("load giveaway: %w", err)
	}

	// 3. 全部参与记录
	entries, err := s.entries.ListByGiveaway(ctx, site, giveawayID)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	// 4. 排除已中奖邮箱
	winnerEmails, err := s.repo.EmailsByGiveaway(ctx, site, giveawayID)
	if err != nil {
		return nil, fmt.Errorf("load winner emails: %w", err)
	}
	eligible := draw.Eligible(entries, winnerEmails)
	if len(eligible) == 0 {
		return nil, ErrNoEligibleEntries
	}

	// 5. 随机选择并写入
	picked := s.selector.Pick(eligible)
	winner := &model.Winner{
		GiveawayID: giveawayID,
		EntryID:    picked.ID,
		Email:      picked.Email,
		DrawnAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, site, winner); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyWon
		}
		return nil, fmt.Errorf("record winner: %w", err)
	}

	winner.Status = winner.DeriveStatus()
	winner.Giveaway = giveaway
	return winner, nil
}

// List 中奖记录
func (s *winnerService) List(ctx context.Context, site, giveawayID string) ([]model.Winner, error) {
	winners, err := s.repo.List(ctx, site, giveawayID)
	if err != nil {
		return nil, fmt.Errorf("list winners: %w", err)
	}
	return winners, nil
}

// MarkNotified 标记已通知
func (s *winnerService) MarkNotified(ctx context.Context, site, id string) (*model.Winner, error) {
	return s.mark(ctx, site, id, s.repo.MarkNotified)
}

// MarkClaimed 标记已领奖
func (s *winnerService) MarkClaimed(ctx context.Context, site, id string) (*model.Winner, error) {
	return s.mark(ctx, site, id, s.repo.MarkClaimed)
}

func (s *winnerService) mark(ctx context.Context, site, id string, update func(context.Context, string, string, time.Time) error) (*model.Winner, error) {
	if _, err := s.find(ctx, site, id); err != nil {
		return nil, err
	}
	if err := update(ctx, site, id, s.now().UTC()); err != nil {
		return nil, fmt.Errorf("update winner: %w", err)
	}
	return s.find(ctx, site, id)
}

func (s *winnerService) find(ctx context.Context, site, id string) (*model.Winner, error) {
	w, err := s.repo.GetByID(ctx, site, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWinnerNotFound
		}
		return nil, fmt.Errorf("get winner: %w", err)
	}
	return w, nil
}

func drawOutcome(err error) string {
	switch {
	case err == nil:
		return "won"
	case errors.Is(err, ErrNoEntries):
		return "no_entries"
	case errors.Is(err, ErrNoEligibleEntries):
		return "no_eligible"
	case errors.Is(err, ErrAlreadyWon):
		return "already_won"
	case errors.Is(err, ErrDrawInProgress):
		return "in_progress"
	case errors.Is(err, ErrGiveawayNotFound):
		return "not_found"
	default:
		return "error"
	}
}
