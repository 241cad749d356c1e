package implementation

import (
	"context"
	"errors"

	"tg-assist-be/internal/entity"
	"tg-assist-be/internal/repository/contract"

	"gorm.io/gorm"
)

type FileRecordRepositoryImpl struct {
	db *gorm.DB
}

func NewFileRecordRepository(db *gorm.DB) contract.FileRecordRepository {
	return &FileRecordRepositoryImpl{db: db}
}

func (r *FileRecordRepositoryImpl) Create(ctx context.Context, record *entity.FileRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *FileRecordRepositoryImpl) ExistsWithPin(ctx context.Context, pin string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.FileRecord{}).
		Where("pin = ?", pin).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *FileRecordRepositoryImpl) FindByPin(ctx context.Context, pin string) (*entity.FileRecord, error) {
	var record entity.FileRecord
	err := r.db.WithContext(ctx).
		Where("pin = ?", pin).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *FileRecordRepositoryImpl) FindAllMeta(ctx context.Context, limit, offset int) ([]*entity.FileRecord, int64, error) {
	var records []*entity.FileRecord
	var total int64

	db := r.db.WithContext(ctx).Model(&entity.FileRecord{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Select("id", "pin", "filename", "owner_chat_id", "created_at").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error

	return records, total, err
}
