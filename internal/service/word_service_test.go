// internal/service/word_service_test.go
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

func setupTestDBWord(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Word{}, &model.WordList{}))
	return db
}

func Test_wordService_CreateWord(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	listID := uuid.New()

	tests := []struct {
		name      string
		req       *model.PostWordRequest
		setupMock func(wordRepo *mocks.WordRepository, listRepo *mocks.WordListRepository)
		wantCode  string
	}{
		{
			name: "正常系: 単語作成成功",
			req:  &model.PostWordRequest{Term: "apple", Definition: "りんご"},
			setupMock: func(wordRepo *mocks.WordRepository, listRepo *mocks.WordListRepository) {
				wordRepo.On("CheckTermExists", ctx, mock.Anything, tenantID, "apple", (*uuid.UUID)(nil)).
					Return(false, nil).Once()
				wordRepo.On("Create", ctx, mock.Anything, mock.AnythingOfType("*model.Word")).
					Return(nil).Once()
			},
		},
		{
			name: "正常系: リスト所属の単語作成成功",
			req:  &model.PostWordRequest{Term: "apple", Definition: "りんご", WordListID: &listID},
			setupMock: func(wordRepo *mocks.WordRepository, listRepo *mocks.WordListRepository) {
				listRepo.On("FindByID", ctx, mock.Anything, tenantID, listID).
					Return(&model.WordList{ListID: listID, TenantID: tenantID, Name: "basic"}, nil).Once()
				wordRepo.On("CheckTermExists", ctx, mock.Anything, tenantID, "apple", (*uuid.UUID)(nil)).
					Return(false, nil).Once()
				wordRepo.On("Create", ctx, mock.Anything, mock.AnythingOfType("*model.Word")).
					Return(nil).Once()
			},
		},
		{
			name: "異常系: 単語の重複",
			req:  &model.PostWordRequest{Term: "apple", Definition: "りんご"},
			setupMock: func(wordRepo *mocks.WordRepository, listRepo *mocks.WordListRepository) {
				wordRepo.On("CheckTermExists", ctx, mock.Anything, tenantID, "apple", (*uuid.UUID)(nil)).
					Return(true, nil).Once()
			},
			wantCode: "DUPLICATE_TERM",
		},
		{
			name: "異常系: 存在しないリストを指定",
			req:  &model.PostWordRequest{Term: "apple", Definition: "りんご", WordListID: &listID},
			setupMock: func(wordRepo *mocks.WordRepository, listRepo *mocks.WordListRepository) {
				listRepo.On("FindByID", ctx, mock.Anything, tenantID, listID).
					Return(nil, model.ErrNotFound).Once()
			},
			wantCode: "NOT_FOUND",
		},
		{
			name: "異常系: リポジトリでDBエラー",
			req:  &model.PostWordRequest{Term: "apple", Definition: "りんご"},
			setupMock: func(wordRepo *mocks.WordRepository, listRepo *mocks.WordListRepository) {
				wordRepo.On("CheckTermExists", ctx, mock.Anything, tenantID, "apple", (*uuid.UUID)(nil)).
					Return(false, errors.New("db error")).Once()
			},
			wantCode: "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDBWord(t)
			wordRepo := new(mocks.WordRepository)
			listRepo := new(mocks.WordListRepository)
			tt.setupMock(wordRepo, listRepo)

			svc := NewWordService(db, wordRepo, listRepo)
			word, err := svc.CreateWord(ctx, tenantID, tt.req)

			if tt.wantCode != "" {
				require.Error(t, err)
				var appErr *model.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.wantCode, appErr.Detail.Code)
				assert.Nil(t, word)
			} else {
				require.NoError(t, err)
				require.NotNil(t, word)
				assert.Equal(t, tt.req.Term, word.Term)
				assert.Equal(t, tt.req.Definition, word.Definition)
				assert.Equal(t, tenantID, word.TenantID)
				// 新規単語はスケジューリング状態のデフォルト値で始まる
				assert.Equal(t, 2.5, word.Ease)
				assert.Equal(t, 1, word.Interval)
				assert.Equal(t, 0, word.Repetition)
				assert.Nil(t, word.LastReview)
			}
			wordRepo.AssertExpectations(t)
			listRepo.AssertExpectations(t)
		})
	}
}

func Test_wordService_GetWord(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	wordID := uuid.New()

	t.Run("正常系: 単語取得成功", func(t *testing.T) {
		db := setupTestDBWord(t)
		wordRepo := new(mocks.WordRepository)
		wordRepo.On("FindByID", ctx, db, tenantID, wordID).
			Return(&model.Word{WordID: wordID, TenantID: tenantID, Term: "apple", Definition: "りんご"}, nil).Once()

		svc := NewWordService(db, wordRepo, new(mocks.WordListRepository))
		word, err := svc.GetWord(ctx, tenantID, wordID)

		require.NoError(t, err)
		assert.Equal(t, "apple", word.Term)
		wordRepo.AssertExpectations(t)
	})

	t.Run("異常系: 単語が存在しない", func(t *testing.T) {
		db := setupTestDBWord(t)
		wordRepo := new(mocks.WordRepository)
		wordRepo.On("FindByID", ctx, db, tenantID, wordID).
			Return(nil, model.ErrNotFound).Once()

		svc := NewWordService(db, wordRepo, new(mocks.WordListRepository))
		word, err := svc.GetWord(ctx, tenantID, wordID)

		require.Error(t, err)
		assert.Nil(t, word)
		var appErr *model.AppError
		require.ErrorAs(t, err, &appErr)
		assert.ErrorIs(t, appErr.Unwrap(), model.ErrNotFound)
		wordRepo.AssertExpectations(t)
	})
}

func Test_wordService_PatchWord(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	wordID := uuid.New()

	existing := &model.Word{WordID: wordID, TenantID: tenantID, Term: "aple", Definition: "りんご", Ease: 2.5, Interval: 1}

	t.Run("正常系: 単語名の修正", func(t *testing.T) {
		db := setupTestDBWord(t)
		wordRepo := new(mocks.WordRepository)
		newTerm := "apple"

		updated := *existing
		updated.Term = newTerm

		wordRepo.On("FindByID", ctx, mock.Anything, tenantID, wordID).
			Return(existing, nil).Once()
		wordRepo.On("CheckTermExists", ctx, mock.Anything, tenantID, newTerm, &wordID).
			Return(false, nil).Once()
		wordRepo.On("Update", ctx, mock.Anything, tenantID, wordID, mock.Anything).
			Return(nil).Once()
		wordRepo.On("FindByID", ctx, mock.Anything, tenantID, wordID).
			Return(&updated, nil).Once()

		svc := NewWordService(db, wordRepo, new(mocks.WordListRepository))
		word, err := svc.PatchWord(ctx, tenantID, wordID, &model.PatchWordRequest{Term: &newTerm})

		require.NoError(t, err)
		assert.Equal(t, "apple", word.Term)
		wordRepo.AssertExpectations(t)
	})

	t.Run("異常系: 変更後の単語名が重複", func(t *testing.T) {
		db := setupTestDBWord(t)
		wordRepo := new(mocks.WordRepository)
		newTerm := "apple"

		wordRepo.On("FindByID", ctx, mock.Anything, tenantID, wordID).
			Return(existing, nil).Once()
		wordRepo.On("CheckTermExists", ctx, mock.Anything, tenantID, newTerm, &wordID).
			Return(true, nil).Once()

		svc := NewWordService(db, wordRepo, new(mocks.WordListRepository))
		word, err := svc.PatchWord(ctx, tenantID, wordID, &model.PatchWordRequest{Term: &newTerm})

		require.Error(t, err)
		assert.Nil(t, word)
		var appErr *model.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "DUPLICATE_TERM", appErr.Detail.Code)
		wordRepo.AssertExpectations(t)
	})
}

func Test_wordService_DeleteWord(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	wordID := uuid.New()

	t.Run("正常系: 単語削除成功", func(t *testing.T) {
		db := setupTestDBWord(t)
		wordRepo := new(mocks.WordRepository)
		wordRepo.On("FindByID", ctx, mock.Anything, tenantID, wordID).
			Return(&model.Word{WordID: wordID, TenantID: tenantID}, nil).Once()
		wordRepo.On("Delete", ctx, mock.Anything, tenantID, wordID).
			Return(nil).Once()

		svc := NewWordService(db, wordRepo, new(mocks.WordListRepository))
		require.NoError(t, svc.DeleteWord(ctx, tenantID, wordID))
		wordRepo.AssertExpectations(t)
	})

	t.Run("異常系: 単語が存在しない", func(t *testing.T) {
		db := setupTestDBWord(t)
		wordRepo := new(mocks.WordRepository)
		wordRepo.On("FindByID", ctx, mock.Anything, tenantID, wordID).
			Return(nil, model.ErrNotFound).Once()

		svc := NewWordService(db, wordRepo, new(mocks.WordListRepository))
		err := svc.DeleteWord(ctx, tenantID, wordID)

		require.Error(t, err)
		var appErr *model.AppError
		require.ErrorAs(t, err, &appErr)
		assert.ErrorIs(t, appErr.Unwrap(), model.ErrNotFound)
		wordRepo.AssertExpectations(t)
	})
}
