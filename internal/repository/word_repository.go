// internal/repository/word_repository.go
package repository

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"go_5_word_memorizer/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WordRepository interface {
	Create(ctx context.Context, tx *gorm.DB, word *model.Word) error // トランザクション対応
	FindByID(ctx context.Context, db *gorm.DB, tenantID, wordID uuid.UUID) (*model.Word, error)
	FindByTenant(ctx context.Context, db *gorm.DB, tenantID uuid.UUID) ([]*model.Word, error)
	CheckTermExists(ctx context.Context, db *gorm.DB, tenantID uuid.UUID, term string, excludeWordID *uuid.UUID) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, tenantID, wordID uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, tenantID, wordID uuid.UUID) error
	// FindReviewable は復習対象の単語（次回復習日を過ぎたもの、または未復習のもの）を返します。
	// listIDがnilならテナント全体が対象です。
	FindReviewable(ctx context.Context, db *gorm.DB, tenantID uuid.UUID, listID *uuid.UUID, today time.Time, limit int) ([]*model.Word, error)
	// UpdateSchedules はFinalizeの更新レコードを一括で書き戻します。
	// 1件でも失敗すればバッチ全体がエラーになります（呼び出し側でトランザクションを張ること）。
	UpdateSchedules(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, updates []model.ScheduleUpdate) error
}

type gormWordRepository struct {
	logger *slog.Logger
}

func NewGormWordRepository(logger *slog.Logger) WordRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &gormWordRepository{logger: logger}
}

func (r *gormWordRepository) Create(ctx context.Context, tx *gorm.DB, word *model.Word) error {
	result := tx.WithContext(ctx).Create(word)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return model.ErrConflict
		}
		return result.Error
	}
	return nil
}

func (r *gormWordRepository) FindByID(ctx context.Context, db *gorm.DB, tenantID, wordID uuid.UUID) (*model.Word, error) {
	var word model.Word
	result := db.WithContext(ctx).
		Where("tenant_id = ? AND word_id = ?", tenantID, wordID).
		First(&word)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &word, nil
}

func (r *gormWordRepository) FindByTenant(ctx context.Context, db *gorm.DB, tenantID uuid.UUID) ([]*model.Word, error) {
	var words []*model.Word
	result := db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at ASC").
		Find(&words)
	if result.Error != nil {
		return nil, result.Error
	}
	return words, nil
}

func (r *gormWordRepository) CheckTermExists(ctx context.Context, db *gorm.DB, tenantID uuid.UUID, term string, excludeWordID *uuid.UUID) (bool, error) {
	var count int64
	query := db.WithContext(ctx).Model(&model.Word{}).
		Where("tenant_id = ? AND term = ?", tenantID, term)
	if excludeWordID != nil {
		query = query.Where("word_id != ?", *excludeWordID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *gormWordRepository) Update(ctx context.Context, tx *gorm.DB, tenantID, wordID uuid.UUID, updates map[string]interface{}) error {
	result := tx.WithContext(ctx).Model(&model.Word{}).
		Where("tenant_id = ? AND word_id = ?", tenantID, wordID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormWordRepository) Delete(ctx context.Context, tx *gorm.DB, tenantID, wordID uuid.UUID) error {
	// GORMのDeleteは論理削除 (DeletedAtを設定)
	result := tx.WithContext(ctx).
		Where("tenant_id = ? AND word_id = ?", tenantID, wordID).
		Delete(&model.Word{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormWordRepository) FindReviewable(ctx context.Context, db *gorm.DB, tenantID uuid.UUID, listID *uuid.UUID, today time.Time, limit int) ([]*model.Word, error) {
	var candidates []*model.Word

	query := db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if listID != nil {
		query = query.Where("word_list_id = ?", *listID)
	}
	if err := query.Find(&candidates).Error; err != nil {
		return nil, err
	}

	// 復習期日 (last_review + interval日) の判定はDB方言に依存しないようGo側で行う。
	// 一度も復習していない単語は常に対象
	var due []*model.Word
	for _, w := range candidates {
		if w.LastReview == nil || !w.LastReview.AddDate(0, 0, w.Interval).After(today) {
			due = append(due, w)
		}
	}

	// 優先順位: 未復習 > E-Factorが低い(=苦手) > 復習日が古い
	sort.SliceStable(due, func(i, j int) bool {
		if (due[i].LastReview == nil) != (due[j].LastReview == nil) {
			return due[i].LastReview == nil
		}
		if due[i].Ease != due[j].Ease {
			return due[i].Ease < due[j].Ease
		}
		if due[i].LastReview != nil && due[j].LastReview != nil {
			return due[i].LastReview.Before(*due[j].LastReview)
		}
		return false
	})

	if len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (r *gormWordRepository) UpdateSchedules(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, updates []model.ScheduleUpdate) error {
	for _, u := range updates {
		result := tx.WithContext(ctx).Model(&model.Word{}).
			Where("tenant_id = ? AND word_id = ?", tenantID, u.WordID).
			Updates(map[string]interface{}{
				"ease":        u.Ease,
				"interval":    u.Interval,
				"repetition":  u.Repetition,
				"last_review": u.LastReview,
				"progress":    u.Progress,
			})
		if result.Error != nil {
			return result.Error
		}
		// テナント不一致・削除済み単語は存在しないものとして扱い、バッチごと失敗させる
		if result.RowsAffected == 0 {
			r.logger.Warn("Schedule update targeted a missing word",
				slog.String("word_id", u.WordID.String()))
			return model.ErrNotFound
		}
	}
	return nil
}
