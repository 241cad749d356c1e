package implementation

import (
	"context"

	"tg-assist-be/internal/entity"
	"tg-assist-be/internal/repository/contract"

	"gorm.io/gorm"
)

type SystemLogRepositoryImpl struct {
	db *gorm.DB
}

func NewSystemLogRepository(db *gorm.DB) contract.SystemLogRepository {
	return &SystemLogRepositoryImpl{db: db}
}

func (r *SystemLogRepositoryImpl) Create(ctx context.Context, entry *entity.SystemLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *SystemLogRepositoryImpl) FindAll(ctx context.Context, limit, offset int) ([]*entity.SystemLog, int64, error) {
	var entries []*entity.SystemLog
	var total int64

	db := r.db.WithContext(ctx).Model(&entity.SystemLog{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error

	return entries, total, err
}
