// internal/service/wordlist_service_test.go
package service

import (
	"context"
	"errors"
	"testing"

	"go_5_word_memorizer/internal/model"
	"go_5_word_memorizer/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDBList(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Word{}, &model.WordList{}))
	return db
}

func Test_wordListService_CreateWordList(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	tests := []struct {
		name      string
		req       *model.PostWordListRequest
		setupMock func(listRepo *mocks.WordListRepository)
		wantCode  string
	}{
		{
			name: "正常系: リスト作成成功",
			req:  &model.PostWordListRequest{Name: "基本英単語", Mode: "translation"},
			setupMock: func(listRepo *mocks.WordListRepository) {
				listRepo.On("CheckNameExists", ctx, mock.Anything, tenantID, "基本英単語").
					Return(false, nil).Once()
				listRepo.On("Create", ctx, mock.Anything, mock.AnythingOfType("*model.WordList")).
					Return(nil).Once()
			},
		},
		{
			name: "異常系: リスト名の重複",
			req:  &model.PostWordListRequest{Name: "基本英単語", Mode: "translation"},
			setupMock: func(listRepo *mocks.WordListRepository) {
				listRepo.On("CheckNameExists", ctx, mock.Anything, tenantID, "基本英単語").
					Return(true, nil).Once()
			},
			wantCode: "DUPLICATE_NAME",
		},
		{
			name: "異常系: 重複確認でDBエラー",
			req:  &model.PostWordListRequest{Name: "基本英単語", Mode: "translation"},
			setupMock: func(listRepo *mocks.WordListRepository) {
				listRepo.On("CheckNameExists", ctx, mock.Anything, tenantID, "基本英単語").
					Return(false, errors.New("db error")).Once()
			},
			wantCode: "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDBList(t)
			listRepo := new(mocks.WordListRepository)
			tt.setupMock(listRepo)

			s := NewWordListService(db, listRepo)
			got, err := s.CreateWordList(ctx, tenantID, tt.req)

			if tt.wantCode != "" {
				require.Error(t, err)
				var appErr *model.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.wantCode, appErr.Detail.Code)
			} else {
				require.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, tt.req.Name, got.Name)
				assert.Equal(t, model.WordListMode(tt.req.Mode), got.Mode)
				assert.Equal(t, tenantID, got.TenantID)
				assert.NotEqual(t, uuid.Nil, got.ListID)
			}
			listRepo.AssertExpectations(t)
		})
	}
}

func Test_wordListService_GetWordList(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	listID := uuid.New()

	t.Run("正常系: リスト取得成功", func(t *testing.T) {
		db := setupTestDBList(t)
		listRepo := new(mocks.WordListRepository)
		listRepo.On("FindByID", ctx, db, tenantID, listID).
			Return(&model.WordList{ListID: listID, TenantID: tenantID, Name: "基本英単語"}, nil).Once()

		s := NewWordListService(db, listRepo)
		got, err := s.GetWordList(ctx, tenantID, listID)

		require.NoError(t, err)
		assert.Equal(t, listID, got.ListID)
		listRepo.AssertExpectations(t)
	})

	t.Run("異常系: リストが存在しない", func(t *testing.T) {
		db := setupTestDBList(t)
		listRepo := new(mocks.WordListRepository)
		listRepo.On("FindByID", ctx, db, tenantID, listID).
			Return(nil, model.ErrNotFound).Once()

		s := NewWordListService(db, listRepo)
		_, err := s.GetWordList(ctx, tenantID, listID)

		require.Error(t, err)
		var appErr *model.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Detail.Code)
		listRepo.AssertExpectations(t)
	})
}

func Test_wordListService_DeleteWordList(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	listID := uuid.New()

	t.Run("正常系: 削除後に所属単語がリスト未所属へ戻る", func(t *testing.T) {
		db := setupTestDBList(t)

		// リストに所属する単語を1件用意しておく
		word := model.Word{
			WordID:     uuid.New(),
			TenantID:   tenantID,
			WordListID: &listID,
			Term:       "apple",
			Definition: "りんご",
			Ease:       2.5,
			Interval:   1,
		}
		require.NoError(t, db.Create(&word).Error)

		listRepo := new(mocks.WordListRepository)
		listRepo.On("FindByID", ctx, mock.Anything, tenantID, listID).
			Return(&model.WordList{ListID: listID, TenantID: tenantID, Name: "基本英単語"}, nil).Once()
		listRepo.On("Delete", ctx, mock.Anything, tenantID, listID).
			Return(nil).Once()

		s := NewWordListService(db, listRepo)
		require.NoError(t, s.DeleteWordList(ctx, tenantID, listID))

		var got model.Word
		require.NoError(t, db.First(&got, "word_id = ?", word.WordID).Error)
		assert.Nil(t, got.WordListID)
		listRepo.AssertExpectations(t)
	})

	t.Run("異常系: リストが存在しない", func(t *testing.T) {
		db := setupTestDBList(t)
		listRepo := new(mocks.WordListRepository)
		listRepo.On("FindByID", ctx, mock.Anything, tenantID, listID).
			Return(nil, model.ErrNotFound).Once()

		s := NewWordListService(db, listRepo)
		err := s.DeleteWordList(ctx, tenantID, listID)

		require.Error(t, err)
		var appErr *model.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Detail.Code)
		listRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		listRepo.AssertExpectations(t)
	})
}
