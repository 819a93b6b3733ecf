// internal/service/mocks/word_service.go
package mocks

import (
	"context"

	"go_5_word_memorizer/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type WordService struct {
	mock.Mock
}

func (m *WordService) CreateWord(ctx context.Context, tenantID uuid.UUID, req *model.PostWordRequest) (*model.Word, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Word), args.Error(1)
}

func (m *WordService) GetWord(ctx context.Context, tenantID, wordID uuid.UUID) (*model.Word, error) {
	args := m.Called(ctx, tenantID, wordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Word), args.Error(1)
}

func (m *WordService) ListWords(ctx context.Context, tenantID uuid.UUID) ([]*model.Word, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Word), args.Error(1)
}

func (m *WordService) ReplaceWord(ctx context.Context, tenantID, wordID uuid.UUID, req *model.PutWordRequest) (*model.Word, error) {
	args := m.Called(ctx, tenantID, wordID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Word), args.Error(1)
}

func (m *WordService) PatchWord(ctx context.Context, tenantID, wordID uuid.UUID, req *model.PatchWordRequest) (*model.Word, error) {
	args := m.Called(ctx, tenantID, wordID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Word), args.Error(1)
}

func (m *WordService) DeleteWord(ctx context.Context, tenantID, wordID uuid.UUID) error {
	args := m.Called(ctx, tenantID, wordID)
	return args.Error(0)
}
