// internal/repository/mocks/token_repository.go
package mocks

import (
	"context"

	"go_5_word_memorizer/internal/model"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type TokenRepository struct {
	mock.Mock
}

func (m *TokenRepository) CreateVerificationToken(ctx context.Context, tx *gorm.DB, token *model.UserVerificationToken) error {
	args := m.Called(ctx, tx, token)
	return args.Error(0)
}

func (m *TokenRepository) FindVerificationToken(ctx context.Context, db *gorm.DB, token string) (*model.UserVerificationToken, error) {
	args := m.Called(ctx, db, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserVerificationToken), args.Error(1)
}

func (m *TokenRepository) DeleteVerificationToken(ctx context.Context, tx *gorm.DB, token string) error {
	args := m.Called(ctx, tx, token)
	return args.Error(0)
}

func (m *TokenRepository) CreatePasswordResetToken(ctx context.Context, tx *gorm.DB, token *model.PasswordResetToken) error {
	args := m.Called(ctx, tx, token)
	return args.Error(0)
}

func (m *TokenRepository) FindPasswordResetToken(ctx context.Context, db *gorm.DB, token string) (*model.PasswordResetToken, error) {
	args := m.Called(ctx, db, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PasswordResetToken), args.Error(1)
}

func (m *TokenRepository) DeletePasswordResetToken(ctx context.Context, tx *gorm.DB, token string) error {
	args := m.Called(ctx, tx, token)
	return args.Error(0)
}
