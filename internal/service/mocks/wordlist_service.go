// internal/service/mocks/wordlist_service.go
package mocks

import (
	"context"

	"go_5_word_memorizer/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type WordListService struct {
	mock.Mock
}

func (m *WordListService) CreateWordList(ctx context.Context, tenantID uuid.UUID, req *model.PostWordListRequest) (*model.WordList, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WordList), args.Error(1)
}

func (m *WordListService) GetWordList(ctx context.Context, tenantID, listID uuid.UUID) (*model.WordList, error) {
	args := m.Called(ctx, tenantID, listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WordList), args.Error(1)
}

func (m *WordListService) ListWordLists(ctx context.Context, tenantID uuid.UUID) ([]*model.WordList, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.WordList), args.Error(1)
}

func (m *WordListService) DeleteWordList(ctx context.Context, tenantID, listID uuid.UUID) error {
	args := m.Called(ctx, tenantID, listID)
	return args.Error(0)
}
