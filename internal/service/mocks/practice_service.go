// internal/service/mocks/practice_service.go
package mocks

import (
	"context"

	"go_5_word_memorizer/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type PracticeService struct {
	mock.Mock
}

func (m *PracticeService) StartSession(ctx context.Context, tenantID uuid.UUID, req *model.StartPracticeRequest) (*model.PracticeSessionResponse, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PracticeSessionResponse), args.Error(1)
}

func (m *PracticeService) GetSession(ctx context.Context, tenantID, sessionID uuid.UUID) (*model.PracticeSessionResponse, error) {
	args := m.Called(ctx, tenantID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PracticeSessionResponse), args.Error(1)
}

func (m *PracticeService) SubmitAnswer(ctx context.Context, tenantID, sessionID uuid.UUID, req *model.SubmitAnswerRequest) (*model.SubmitAnswerResponse, error) {
	args := m.Called(ctx, tenantID, sessionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SubmitAnswerResponse), args.Error(1)
}

func (m *PracticeService) RestartSession(ctx context.Context, tenantID, sessionID uuid.UUID) (*model.PracticeSessionResponse, error) {
	args := m.Called(ctx, tenantID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PracticeSessionResponse), args.Error(1)
}

func (m *PracticeService) FinalizeSession(ctx context.Context, tenantID, sessionID uuid.UUID) (*model.FinalizePracticeResponse, error) {
	args := m.Called(ctx, tenantID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FinalizePracticeResponse), args.Error(1)
}

func (m *PracticeService) AbandonSession(ctx context.Context, tenantID, sessionID uuid.UUID) error {
	args := m.Called(ctx, tenantID, sessionID)
	return args.Error(0)
}
