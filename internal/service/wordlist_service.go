// internal/service/wordlist_service.go
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

type WordListService interface {
	CreateWordList(ctx context.Context, tenantID uuid.UUID, req *model.PostWordListRequest) (*model.WordList, error)
	GetWordList(ctx context.Context, tenantID, listID uuid.UUID) (*model.WordList, error)
	ListWordLists(ctx context.Context, tenantID uuid.UUID) ([]*model.WordList, error)
	DeleteWordList(ctx context.Context, tenantID, listID uuid.UUID) error
}

type wordListService struct {
	db       *gorm.DB
	listRepo repository.WordListRepository
}

func NewWordListService(db *gorm.DB, listRepo repository.WordListRepository) WordListService {
	return &wordListService{
		db:       db,
		listRepo: listRepo,
	}
}

func (s *wordListService) CreateWordList(ctx context.Context, tenantID uuid.UUID, req *model.PostWordListRequest) (*model.WordList, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID)

	var createdList *model.WordList

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 同名リストの重複チェック
		exists, err := s.listRepo.CheckNameExists(ctx, tx, tenantID, req.Name)
		if err != nil {
			logger.Error("Error checking list name existence", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "リスト名の重複確認に失敗しました。", "", err)
		}
		if exists {
			return model.NewAppError("DUPLICATE_NAME", "この名前のリストは既に存在します。", "name", model.ErrConflict)
		}

		list := &model.WordList{
			ListID:   uuid.New(),
			TenantID: tenantID,
			Name:     req.Name,
			Mode:     model.WordListMode(req.Mode),
		}
		if err := s.listRepo.Create(ctx, tx, list); err != nil {
			if errors.Is(err, model.ErrConflict) {
				return model.NewAppError("DUPLICATE_NAME", "この名前のリストは既に存在します。", "name", model.ErrConflict)
			}
			logger.Error("Error creating word list", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "リストの作成に失敗しました。", "", err)
		}

		createdList = list
		return nil
	})

	if err != nil {
		return nil, err
	}

	logger.Info("Word list created", "list_id", createdList.ListID)
	return createdList, nil
}

func (s *wordListService) GetWordList(ctx context.Context, tenantID, listID uuid.UUID) (*model.WordList, error) {
	list, err := s.listRepo.FindByID(ctx, s.db, tenantID, listID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "リストが見つかりません。", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "リストの取得に失敗しました。", "", err)
	}
	return list, nil
}

func (s *wordListService) ListWordLists(ctx context.Context, tenantID uuid.UUID) ([]*model.WordList, error) {
	lists, err := s.listRepo.FindByTenant(ctx, s.db, tenantID)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error listing word lists", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "リスト一覧の取得に失敗しました。", "", err)
	}
	return lists, nil
}

func (s *wordListService) DeleteWordList(ctx context.Context, tenantID, listID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID, "list_id", listID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.listRepo.FindByID(ctx, tx, tenantID, listID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "リストが見つかりません。", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "リストの取得に失敗しました。", "", err)
		}

		if err := s.listRepo.Delete(ctx, tx, tenantID, listID); err != nil {
			logger.Error("Error deleting word list", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "リストの削除に失敗しました。", "", err)
		}

		// リスト削除後、所属していた単語はリスト未所属に戻す
		result := tx.Model(&model.Word{}).
			Where("tenant_id = ? AND word_list_id = ?", tenantID, listID).
			Update("word_list_id", nil)
		if result.Error != nil {
			logger.Error("Error detaching words from deleted list", "error", result.Error)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "リスト所属の解除に失敗しました。", "", result.Error)
		}

		return nil
	})

	if err == nil {
		logger.Info("Word list deleted")
	}
	return err
}
