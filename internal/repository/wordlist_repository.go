// internal/repository/wordlist_repository.go
package repository

import (
	"context"
	"errors"
	"log/slog"

	"go_5_word_memorizer/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WordListRepository interface {
	Create(ctx context.Context, tx *gorm.DB, list *model.WordList) error
	FindByID(ctx context.Context, db *gorm.DB, tenantID, listID uuid.UUID) (*model.WordList, error)
	FindByTenant(ctx context.Context, db *gorm.DB, tenantID uuid.UUID) ([]*model.WordList, error)
	CheckNameExists(ctx context.Context, db *gorm.DB, tenantID uuid.UUID, name string) (bool, error)
	Delete(ctx context.Context, tx *gorm.DB, tenantID, listID uuid.UUID) error
}

type gormWordListRepository struct {
	logger *slog.Logger
}

func NewGormWordListRepository(logger *slog.Logger) WordListRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &gormWordListRepository{logger: logger}
}

func (r *gormWordListRepository) Create(ctx context.Context, tx *gorm.DB, list *model.WordList) error {
	result := tx.WithContext(ctx).Create(list)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return model.ErrConflict
		}
		return result.Error
	}
	return nil
}

func (r *gormWordListRepository) FindByID(ctx context.Context, db *gorm.DB, tenantID, listID uuid.UUID) (*model.WordList, error) {
	var list model.WordList
	result := db.WithContext(ctx).
		Where("tenant_id = ? AND list_id = ?", tenantID, listID).
		First(&list)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &list, nil
}

func (r *gormWordListRepository) FindByTenant(ctx context.Context, db *gorm.DB, tenantID uuid.UUID) ([]*model.WordList, error) {
	var lists []*model.WordList
	result := db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at ASC").
		Find(&lists)
	if result.Error != nil {
		return nil, result.Error
	}
	return lists, nil
}

func (r *gormWordListRepository) CheckNameExists(ctx context.Context, db *gorm.DB, tenantID uuid.UUID, name string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&model.WordList{}).
		Where("tenant_id = ? AND name = ?", tenantID, name).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *gormWordListRepository) Delete(ctx context.Context, tx *gorm.DB, tenantID, listID uuid.UUID) error {
	result := tx.WithContext(ctx).
		Where("tenant_id = ? AND list_id = ?", tenantID, listID).
		Delete(&model.WordList{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
