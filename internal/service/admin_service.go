package service

import (
	"context"
	"encoding/json"

	"tg-assist-be/internal/dto"
	"tg-assist-be/internal/pkg/logger"
	"tg-assist-be/internal/repository/contract"
)

type IAdminService interface {
	GetLogs(level string, limit, offset int) ([]logger.LogEntry, error)
	GetStoredFiles(ctx context.Context, limit, offset int) (*dto.StoredFileListResponse, error)
	GetAuditTrail(ctx context.Context, limit, offset int) (*dto.AuditListResponse, error)
}

type adminService struct {
	logger logger.ILogger
	files  contract.FileRecordRepository
	logs   contract.SystemLogRepository
}

func NewAdminService(log logger.ILogger, files contract.FileRecordRepository, logs contract.SystemLogRepository) IAdminService {
	return &adminService{
		logger: log,
		files:  files,
		logs:   logs,
	}
}

func (s *adminService) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return s.logger.GetLogs(level, limit, offset)
}

func (s *adminService) GetStoredFiles(ctx context.Context, limit, offset int) (*dto.StoredFileListResponse, error) {
	res := &dto.StoredFileListResponse{Files: []dto.StoredFileResponse{}}
	if s.files == nil {
		return res, nil
	}

	records, total, err := s.files.FindAllMeta(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	res.Total = total
	for _, rec := range records {
		res.Files = append(res.Files, dto.StoredFileResponse{
			Pin:         rec.Pin,
			Filename:    rec.Filename,
			OwnerChatId: rec.OwnerChatId,
			CreatedAt:   rec.CreatedAt,
		})
	}
	return res, nil
}

func (s *adminService) GetAuditTrail(ctx context.Context, limit, offset int) (*dto.AuditListResponse, error) {
	res := &dto.AuditListResponse{Entries: []dto.AuditEntryResponse{}}
	if s.logs == nil {
		return res, nil
	}

	entries, total, err := s.logs.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	res.Total = total
	for _, entry := range entries {
		item := dto.AuditEntryResponse{
			Level:     entry.Level,
			Module:    entry.Module,
			Message:   entry.Message,
			CreatedAt: entry.CreatedAt,
		}
		if len(entry.Details) > 0 {
			var details map[string]interface{}
			if err := json.Unmarshal(entry.Details, &details); err == nil {
				item.Details = details
			}
		}
		res.Entries = append(res.Entries, item)
	}
	return res, nil
}
