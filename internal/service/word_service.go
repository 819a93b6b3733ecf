// internal/service/word_service.go
package service

import (
	"context"
	"errors"

	"go_5_word_memorizer/internal/middleware"
	"go_5_word_memorizer/internal/model"
	"go_5_word_memorizer/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WordService interface {
	CreateWord(ctx context.Context, tenantID uuid.UUID, req *model.PostWordRequest) (*model.Word, error)
	GetWord(ctx context.Context, tenantID, wordID uuid.UUID) (*model.Word, error)
	ListWords(ctx context.Context, tenantID uuid.UUID) ([]*model.Word, error)
	ReplaceWord(ctx context.Context, tenantID, wordID uuid.UUID, req *model.PutWordRequest) (*model.Word, error)
	PatchWord(ctx context.Context, tenantID, wordID uuid.UUID, req *model.PatchWordRequest) (*model.Word, error)
	DeleteWord(ctx context.Context, tenantID, wordID uuid.UUID) error
}

type wordService struct {
	db       *gorm.DB // トランザクション用にDB接続を持つ
	wordRepo repository.WordRepository
	listRepo repository.WordListRepository
}

func NewWordService(db *gorm.DB, wordRepo repository.WordRepository, listRepo repository.WordListRepository) WordService {
	return &wordService{
		db:       db,
		wordRepo: wordRepo,
		listRepo: listRepo,
	}
}

func (s *wordService) CreateWord(ctx context.Context, tenantID uuid.UUID, req *model.PostWordRequest) (*model.Word, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID)

	var createdWord *model.Word

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. リスト指定がある場合は所有権を確認
		if req.WordListID != nil {
			if _, err := s.listRepo.FindByID(ctx, tx, tenantID, *req.WordListID); err != nil {
				if errors.Is(err, model.ErrNotFound) {
					return model.NewAppError("NOT_FOUND", "指定された単語リストが見つかりません。", "word_list_id", model.ErrNotFound)
				}
				logger.Error("Error checking word list in transaction", "error", err)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "単語リストの確認に失敗しました。", "", err)
			}
		}

		// 2. 重複チェック
		exists, err := s.wordRepo.CheckTermExists(ctx, tx, tenantID, req.Term, nil)
		if err != nil {
			logger.Error("Error checking term existence in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の重複確認に失敗しました。", "", err)
		}
		if exists {
			return model.NewAppError("DUPLICATE_TERM", "この単語は既に登録されています。", "term", model.ErrConflict)
		}

		// 3. 単語を作成 (スケジューリング状態はデフォルト値で開始)
		word := &model.Word{
			WordID:     uuid.New(),
			TenantID:   tenantID,
			WordListID: req.WordListID,
			Term:       req.Term,
			Definition: req.Definition,
			Phonetic:   req.Phonetic,
			Ease:       2.5,
			Interval:   1,
			Repetition: 0,
		}
		if err := s.wordRepo.Create(ctx, tx, word); err != nil {
			if errors.Is(err, model.ErrConflict) {
				return model.NewAppError("DUPLICATE_TERM", "この単語は既に登録されています。", "term", model.ErrConflict)
			}
			logger.Error("Error creating word in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の作成に失敗しました。", "", err)
		}

		createdWord = word
		return nil // コミット
	})

	if err != nil {
		return nil, err
	}

	logger.Info("Word created", "word_id", createdWord.WordID)
	return createdWord, nil
}

func (s *wordService) GetWord(ctx context.Context, tenantID, wordID uuid.UUID) (*model.Word, error) {
	// サービス層でDB接続(s.db)を渡す
	word, err := s.wordRepo.FindByID(ctx, s.db, tenantID, wordID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "単語が見つかりません。", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "単語の取得に失敗しました。", "", err)
	}
	return word, nil
}

func (s *wordService) ListWords(ctx context.Context, tenantID uuid.UUID) ([]*model.Word, error) {
	words, err := s.wordRepo.FindByTenant(ctx, s.db, tenantID)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error listing words", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "単語一覧の取得に失敗しました。", "", err)
	}
	return words, nil
}

func (s *wordService) ReplaceWord(ctx context.Context, tenantID, wordID uuid.UUID, req *model.PutWordRequest) (*model.Word, error) {
	updates := map[string]interface{}{
		"term":       req.Term,
		"definition": req.Definition,
		"phonetic":   req.Phonetic,
	}
	return s.updateWord(ctx, tenantID, wordID, req.Term, updates)
}

func (s *wordService) PatchWord(ctx context.Context, tenantID, wordID uuid.UUID, req *model.PatchWordRequest) (*model.Word, error) {
	updates := make(map[string]interface{})
	newTerm := ""
	if req.Term != nil {
		updates["term"] = *req.Term
		newTerm = *req.Term
	}
	if req.Definition != nil {
		updates["definition"] = *req.Definition
	}
	if req.Phonetic != nil {
		updates["phonetic"] = *req.Phonetic
	}
	return s.updateWord(ctx, tenantID, wordID, newTerm, updates)
}

// updateWord はPUT/PATCH共通の更新処理です。
// newTerm が非空かつ既存と異なる場合のみ重複チェックを行います。
func (s *wordService) updateWord(ctx context.Context, tenantID, wordID uuid.UUID, newTerm string, updates map[string]interface{}) (*model.Word, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID, "word_id", wordID)

	var updatedWord *model.Word

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. 存在確認
		word, err := s.wordRepo.FindByID(ctx, tx, tenantID, wordID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "単語が見つかりません。", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の取得に失敗しました。", "", err)
		}

		// 2. 単語名が変わる場合のみ重複チェック
		if newTerm != "" && newTerm != word.Term {
			exists, err := s.wordRepo.CheckTermExists(ctx, tx, tenantID, newTerm, &wordID)
			if err != nil {
				logger.Error("Error checking term existence during update", "error", err)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の重複確認に失敗しました。", "", err)
			}
			if exists {
				return model.NewAppError("DUPLICATE_TERM", "この単語は既に登録されています。", "term", model.ErrConflict)
			}
		}

		// 3. 更新実行 (更新内容がある場合のみ)
		if len(updates) > 0 {
			if err := s.wordRepo.Update(ctx, tx, tenantID, wordID, updates); err != nil {
				if errors.Is(err, model.ErrNotFound) {
					return model.NewAppError("NOT_FOUND", "単語が見つかりません。", "", model.ErrNotFound)
				}
				logger.Error("Error updating word in transaction", "error", err)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の更新に失敗しました。", "", err)
			}
		}

		// 更新後のデータを取得 (トランザクション内で取得するのが確実)
		updatedWord, err = s.wordRepo.FindByID(ctx, tx, tenantID, wordID)
		if err != nil {
			logger.Error("Error fetching updated word in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "更新後の単語の取得に失敗しました。", "", err)
		}

		return nil // コミット
	})

	if err != nil {
		return nil, err
	}

	return updatedWord, nil
}

func (s *wordService) DeleteWord(ctx context.Context, tenantID, wordID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID, "word_id", wordID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. 存在確認 (論理削除されていないか)
		if _, err := s.wordRepo.FindByID(ctx, tx, tenantID, wordID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "単語が見つかりません。", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の取得に失敗しました。", "", err)
		}

		// 2. 論理削除を実行
		if err := s.wordRepo.Delete(ctx, tx, tenantID, wordID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "単語が見つかりません。", "", model.ErrNotFound)
			}
			logger.Error("Error deleting word", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の削除に失敗しました。", "", err)
		}
		return nil // コミット
	})

	if err == nil {
		logger.Info("Word deleted")
	}
	return err
}
