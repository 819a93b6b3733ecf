// internal/repository/mocks/wordlist_repository.go
package mocks

import (
	"context"

	"go_5_word_memorizer/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type WordListRepository struct {
	mock.Mock
}

func (m *WordListRepository) Create(ctx context.Context, tx *gorm.DB, list *model.WordList) error {
	args := m.Called(ctx, tx, list)
	return args.Error(0)
}

func (m *WordListRepository) FindByID(ctx context.Context, db *gorm.DB, tenantID, listID uuid.UUID) (*model.WordList, error) {
	args := m.Called(ctx, db, tenantID, listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WordList), args.Error(1)
}

func (m *WordListRepository) FindByTenant(ctx context.Context, db *gorm.DB, tenantID uuid.UUID) ([]*model.WordList, error) {
	args := m.Called(ctx, db, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.WordList), args.Error(1)
}

func (m *WordListRepository) CheckNameExists(ctx context.Context, db *gorm.DB, tenantID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, db, tenantID, name)
	return args.Bool(0), args.Error(1)
}

func (m *WordListRepository) Delete(ctx context.Context, tx *gorm.DB, tenantID, listID uuid.UUID) error {
	args := m.Called(ctx, tx, tenantID, listID)
	return args.Error(0)
}
