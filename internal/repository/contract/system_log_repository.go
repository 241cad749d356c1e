package contract

import (
	"context"

	"tg-assist-be/internal/entity"
)

type SystemLogRepository interface {
	Create(ctx context.Context, entry *entity.SystemLog) error
	FindAll(ctx context.Context, limit, offset int) ([]*entity.SystemLog, int64, error)
}
