package contract

import (
	"context"

	"tg-assist-be/internal/entity"
)

type FileRecordRepository interface {
	Create(ctx context.Context, record *entity.FileRecord) error
	// ExistsWithPin reports whether any live record already uses the pin.
	ExistsWithPin(ctx context.Context, pin string) (bool, error)
	// FindByPin returns (nil, nil) when no record matches.
	FindByPin(ctx context.Context, pin string) (*entity.FileRecord, error)
	// FindAllMeta lists records without their payload bytes.
	FindAllMeta(ctx context.Context, limit, offset int) ([]*entity.FileRecord, int64, error)
}
