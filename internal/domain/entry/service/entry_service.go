package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sweeps_admin/internal/domain/entry/model"
	"sweeps_admin/internal/domain/entry/repository"
	"sweeps_admin/pkg/utils"
	"time"
)

const exportBatchSize = 500

// ExportHeader CSV 表头
var ExportHeader = []string{"Email", "Giveaway", "Confirmation Number", "Entry Date", "IP Address"}

// ListResult 参与记录分页结果
type ListResult struct {
	utils.PageResult
	UniqueEmails int64 `json:"unique_emails"`
}

// EntryService 参与记录服务接口
type EntryService interface {
	List(ctx context.Context, site string, filter model.Filter, page utils.Pagination) (*ListResult, error)
	Export(ctx context.Context, site string, filter model.Filter, w io.Writer) error
	ExportFilename(site string) string
}

type entryService struct {
	repo repository.EntryRepository
	now  func() time.Time
}

// NewEntryService 创建参与记录服务
func NewEntryService(repo repository.EntryRepository) EntryService {
	return &entryService{repo: repo, now: time.Now}
}

// List 分页查询
func (s *entryService) List(ctx context.Context, site string, filter model.Filter, page utils.Pagination) (*ListResult, error) {
	offset, limit := page.GetPageOffset()

	entries, total, err := s.repo.List(ctx, site, filter, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	unique, err := s.repo.CountDistinctEmails(ctx, site, filter)
	if err != nil {
		return nil, fmt.Errorf("count unique emails: %w", err)
	}

	return &ListResult{
		PageResult: utils.PageResult{
			List:  entries,
			Total: total,
			Page:  page.Page,
			Limit: page.Limit,
		},
		UniqueEmails: unique,
	}, nil
}

// Export 以 CSV 格式写出所有符合条件的参与记录
func (s *entryService) Export(ctx context.Context, site string, filter model.Filter, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return err
	}

	err := s.repo.Each(ctx, site, filter, exportBatchSize, func(entries []model.Entry) error {
		for _, e := range entries {
			if err := cw.Write(ExportRow(e)); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
	if err != nil {
		return fmt.Errorf("export entries: %w", err)
	}

	cw.Flush()
	return cw.Error()
}

// ExportFilename entries-<site>-<YYYY-MM-DD>.csv
func (s *entryService) ExportFilename(site string) string {
	return fmt.Sprintf("entries-%s-%s.csv", site, s.now().Format("2006-01-02"))
}

// ExportRow 一条参与记录对应的 CSV 行
func ExportRow(e model.Entry) []string {
	giveaway := "Unknown"
	if e.Giveaway != nil && e.Giveaway.Title != "" {
		giveaway = e.Giveaway.Title
	}
	ip := "N/A"
	if e.IPAddress != nil && *e.IPAddress != "" {
		ip = *e.IPAddress
	}
	return []string{
		e.Email,
		giveaway,
		e.ConfirmationNumber,
		e.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		ip,
	}
}
