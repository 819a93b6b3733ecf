// internal/repository/mocks/tenant_repository.go
package mocks

import (
	"context"

	"go_5_word_memorizer/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type TenantRepository struct {
	mock.Mock
}

func (m *TenantRepository) Create(ctx context.Context, tx *gorm.DB, tenant *model.Tenant) error {
	args := m.Called(ctx, tx, tenant)
	return args.Error(0)
}

func (m *TenantRepository) FindByID(ctx context.Context, db *gorm.DB, tenantID uuid.UUID) (*model.Tenant, error) {
	args := m.Called(ctx, db, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tenant), args.Error(1)
}

func (m *TenantRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.Tenant, error) {
	args := m.Called(ctx, db, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tenant), args.Error(1)
}

func (m *TenantRepository) FindByName(ctx context.Context, db *gorm.DB, name string) (*model.Tenant, error) {
	args := m.Called(ctx, db, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tenant), args.Error(1)
}

func (m *TenantRepository) Update(ctx context.Context, tx *gorm.DB, tenant *model.Tenant) error {
	args := m.Called(ctx, tx, tenant)
	return args.Error(0)
}
