package repository

import (
	"context"

	"bbs-manager/internal/models"

	"gorm.io/gorm"
)

// RecordRepository handles BBS record persistence.
type RecordRepository interface {
	Create(ctx context.Context, rec *models.BBSRecord) error
	FindByID(ctx context.Context, id uint) (*models.BBSRecord, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]models.BBSRecord, error)
	Update(ctx context.Context, rec *models.BBSRecord) error
	Delete(ctx context.Context, rec *models.BBSRecord) error
}

type recordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) RecordRepository {
	return &recordRepository{db: db}
}

func (r *recordRepository) Create(ctx context.Context, rec *models.BBSRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *recordRepository) FindByID(ctx context.Context, id uint) (*models.BBSRecord, error) {
	var rec models.BBSRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListByOwner returns the owner's records in insertion order.
func (r *recordRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.BBSRecord, error) {
	var recs []models.BBSRecord
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id asc").Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *recordRepository) Update(ctx context.Context, rec *models.BBSRecord) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *recordRepository) Delete(ctx context.Context, rec *models.BBSRecord) error {
	return r.db.WithContext(ctx).Delete(rec).Error
}
