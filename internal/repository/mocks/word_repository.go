// internal/repository/mocks/word_repository.go
// WordRepository の testify モック実装（テスト専用）
package mocks

import (
	"context"
	"time"

	"go_5_word_memorizer/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type WordRepository struct {
	mock.Mock
}

func (m *WordRepository) Create(ctx context.Context, tx *gorm.DB, word *model.Word) error {
	args := m.Called(ctx, tx, word)
	return args.Error(0)
}

func (m *WordRepository) FindByID(ctx context.Context, db *gorm.DB, tenantID, wordID uuid.UUID) (*model.Word, error) {
	args := m.Called(ctx, db, tenantID, wordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Word), args.Error(1)
}

func (m *WordRepository) FindByTenant(ctx context.Context, db *gorm.DB, tenantID uuid.UUID) ([]*model.Word, error) {
	args := m.Called(ctx, db, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Word), args.Error(1)
}

func (m *WordRepository) CheckTermExists(ctx context.Context, db *gorm.DB, tenantID uuid.UUID, term string, excludeWordID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, db, tenantID, term, excludeWordID)
	return args.Bool(0), args.Error(1)
}

func (m *WordRepository) Update(ctx context.Context, tx *gorm.DB, tenantID, wordID uuid.UUID, updates map[string]interface{}) error {
	args := m.Called(ctx, tx, tenantID, wordID, updates)
	return args.Error(0)
}

func (m *WordRepository) Delete(ctx context.Context, tx *gorm.DB, tenantID, wordID uuid.UUID) error {
	args := m.Called(ctx, tx, tenantID, wordID)
	return args.Error(0)
}

func (m *WordRepository) FindReviewable(ctx context.Context, db *gorm.DB, tenantID uuid.UUID, listID *uuid.UUID, today time.Time, limit int) ([]*model.Word, error) {
	args := m.Called(ctx, db, tenantID, listID, today, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Word), args.Error(1)
}

func (m *WordRepository) UpdateSchedules(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, updates []model.ScheduleUpdate) error {
	args := m.Called(ctx, tx, tenantID, updates)
	return args.Error(0)
}
