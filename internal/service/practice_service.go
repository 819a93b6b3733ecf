// internal/service/practice_service.go
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go_5_word_memorizer/internal/config"
	"go_5_word_memorizer/internal/middleware"
	"go_5_word_memorizer/internal/model"
	"go_5_word_memorizer/internal/repository"
	"go_5_word_memorizer/internal/session"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PracticeService は練習セッションのライフサイクルを管理します。
// セッション本体 (session.Session) はメモリ上に保持し、確定時のみDBへ書き戻します。
type PracticeService interface {
	StartSession(ctx context.Context, tenantID uuid.UUID, req *model.StartPracticeRequest) (*model.PracticeSessionResponse, error)
	GetSession(ctx context.Context, tenantID, sessionID uuid.UUID) (*model.PracticeSessionResponse, error)
	SubmitAnswer(ctx context.Context, tenantID, sessionID uuid.UUID, req *model.SubmitAnswerRequest) (*model.SubmitAnswerResponse, error)
	RestartSession(ctx context.Context, tenantID, sessionID uuid.UUID) (*model.PracticeSessionResponse, error)
	FinalizeSession(ctx context.Context, tenantID, sessionID uuid.UUID) (*model.FinalizePracticeResponse, error)
	AbandonSession(ctx context.Context, tenantID, sessionID uuid.UUID) error
}

type practiceService struct {
	db       *gorm.DB
	wordRepo repository.WordRepository
	listRepo repository.WordListRepository
	cfg      *config.Config

	// mu は sessions マップと各セッションの操作を保護します。
	// session.Session 自体は同期機構を持たないため、必ずこのロック越しに触ること。
	mu       sync.Mutex
	sessions map[uuid.UUID]*session.Session
}

func NewPracticeService(db *gorm.DB, wordRepo repository.WordRepository, listRepo repository.WordListRepository, cfg *config.Config) PracticeService {
	return &practiceService{
		db:       db,
		wordRepo: wordRepo,
		listRepo: listRepo,
		cfg:      cfg,
		sessions: make(map[uuid.UUID]*session.Session),
	}
}

func (s *practiceService) StartSession(ctx context.Context, tenantID uuid.UUID, req *model.StartPracticeRequest) (*model.PracticeSessionResponse, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID)

	// リスト指定がある場合は所有権を確認する
	if req.WordListID != nil {
		if _, err := s.listRepo.FindByID(ctx, s.db, tenantID, *req.WordListID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return nil, model.NewAppError("NOT_FOUND", "指定された単語リストが見つかりません。", "word_list_id", model.ErrNotFound)
			}
			logger.Error("Failed to check word list ownership", "error", err)
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "単語リストの確認に失敗しました。", "", err)
		}
	}

	words, err := s.wordRepo.FindReviewable(ctx, s.db, tenantID, req.WordListID, time.Now(), s.cfg.App.ReviewLimit)
	if err != nil {
		logger.Error("Failed to find reviewable words", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習対象の単語の取得に失敗しました。", "", err)
	}
	if len(words) == 0 {
		return nil, model.NewAppError("NOT_FOUND", "復習対象の単語がありません。", "", model.ErrNotFound)
	}

	snapshot := make([]model.Word, 0, len(words))
	for _, w := range words {
		snapshot = append(snapshot, *w)
	}

	sess, err := session.New(tenantID, snapshot, session.DefaultStages())
	if err != nil {
		logger.Error("Failed to create practice session", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "セッションの作成に失敗しました。", "", err)
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	resp := buildSessionResponse(sess)
	s.mu.Unlock()

	logger.Info("Practice session started", "session_id", sess.ID, "word_count", len(snapshot))
	return resp, nil
}

func (s *practiceService) GetSession(ctx context.Context, tenantID, sessionID uuid.UUID) (*model.PracticeSessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookupLocked(tenantID, sessionID)
	if err != nil {
		return nil, err
	}
	return buildSessionResponse(sess), nil
}

func (s *practiceService) SubmitAnswer(ctx context.Context, tenantID, sessionID uuid.UUID, req *model.SubmitAnswerRequest) (*model.SubmitAnswerResponse, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID, "session_id", sessionID)

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookupLocked(tenantID, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Finished() {
		return nil, model.NewAppError("SESSION_FINISHED", "セッションはすでに完了しています。", "", model.ErrSessionGone)
	}

	// 現在のステージ種別に応じて回答をグレードへ分類する
	kind := sess.CurrentKind()
	var grade float64
	if kind.IsSpell() {
		word, ok := sess.WordByID(req.WordID)
		if !ok {
			return nil, model.NewAppError("NOT_FOUND", "指定された単語はこのステージの対象外です。", "word_id", model.ErrNotFound)
		}
		grade = session.ClassifySpell(kind.Answer(word), req.Response)
	} else {
		grade, err = session.ClassifyRecall(req.Response)
		if err != nil {
			return nil, model.NewAppError("VALIDATION_ERROR", "回答は unknown / partial / known のいずれかで指定してください。", "response", model.ErrInvalidInput)
		}
	}

	if err := sess.RecordGrade(req.WordID, grade); err != nil {
		switch {
		case errors.Is(err, session.ErrUnknownWord):
			return nil, model.NewAppError("NOT_FOUND", "指定された単語はこのステージの対象外です。", "word_id", model.ErrNotFound)
		case errors.Is(err, session.ErrFinished):
			return nil, model.NewAppError("SESSION_FINISHED", "セッションはすでに完了しています。", "", model.ErrSessionGone)
		default:
			logger.Error("Failed to record grade", "error", err)
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "回答の記録に失敗しました。", "", err)
		}
	}

	aggregate := sess.Grade(req.WordID)

	// ステージ内の全単語が採点済みなら自動で次ステージへ進める
	stageAdvanced := false
	if !sess.Finished() && sess.StageComplete() {
		if err := sess.Advance(); err != nil {
			logger.Error("Failed to advance stage", "error", err)
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "ステージの進行に失敗しました。", "", err)
		}
		stageAdvanced = true
	}

	return &model.SubmitAnswerResponse{
		Grade:         aggregate,
		StageAdvanced: stageAdvanced,
		Finished:      sess.Finished(),
	}, nil
}

func (s *practiceService) RestartSession(ctx context.Context, tenantID, sessionID uuid.UUID) (*model.PracticeSessionResponse, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID, "session_id", sessionID)

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookupLocked(tenantID, sessionID)
	if err != nil {
		return nil, err
	}

	sess.Restart()
	logger.Info("Practice session restarted")
	return buildSessionResponse(sess), nil
}

func (s *practiceService) FinalizeSession(ctx context.Context, tenantID, sessionID uuid.UUID) (*model.FinalizePracticeResponse, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID, "session_id", sessionID)

	s.mu.Lock()
	sess, err := s.lookupLocked(tenantID, sessionID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	updates, skipped := sess.Finalize(time.Now())
	s.mu.Unlock()

	if len(skipped) > 0 {
		logger.Warn("Skipping ungraded words during finalize", "skipped_word_ids", skipped)
	}

	if len(updates) > 0 {
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return s.wordRepo.UpdateSchedules(ctx, tx, tenantID, updates)
		})
		if err != nil {
			// バッチ全体が失敗する (部分適用はしない)。セッションは保持したまま返す。
			if errors.Is(err, model.ErrNotFound) {
				logger.Warn("Finalize failed: word missing during schedule update", "error", err)
				return nil, model.NewAppError("NOT_FOUND", "更新対象の単語が見つかりませんでした。", "", model.ErrNotFound)
			}
			logger.Error("Failed to persist schedule updates", "error", err)
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "学習結果の保存に失敗しました。", "", err)
		}
	}

	// 永続化に成功したのでセッションを破棄する
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	logger.Info("Practice session finalized", "updated", len(updates), "skipped", len(skipped))
	return &model.FinalizePracticeResponse{
		UpdatedCount: len(updates),
		SkippedCount: len(skipped),
	}, nil
}

func (s *practiceService) AbandonSession(ctx context.Context, tenantID, sessionID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID, "session_id", sessionID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookupLocked(tenantID, sessionID); err != nil {
		return err
	}

	// 破棄 = ロールバック。採点結果は一切DBへ反映されない。
	delete(s.sessions, sessionID)
	logger.Info("Practice session abandoned")
	return nil
}

// lookupLocked はロック保持中にセッションを検索します。
// 他テナントのセッションIDを指定された場合も存在しない扱いにします。
func (s *practiceService) lookupLocked(tenantID, sessionID uuid.UUID) (*session.Session, error) {
	sess, ok := s.sessions[sessionID]
	if !ok || sess.TenantID != tenantID {
		return nil, model.NewAppError("SESSION_GONE", "セッションが存在しないか、すでに終了しています。", "", model.ErrSessionGone)
	}
	return sess, nil
}

// buildSessionResponse は現在のステージの出題ビューを組み立てます
func buildSessionResponse(sess *session.Session) *model.PracticeSessionResponse {
	resp := &model.PracticeSessionResponse{
		SessionID:   sess.ID,
		Stage:       sess.StageNumber(),
		TotalStages: sess.TotalStages(),
		Finished:    sess.Finished(),
	}
	if sess.Finished() {
		resp.Words = []model.PracticeWordView{}
		return resp
	}

	kind := sess.CurrentKind()
	resp.StageKind = kind.String()
	words := sess.StageWords()
	resp.Words = make([]model.PracticeWordView, 0, len(words))
	for _, w := range words {
		resp.Words = append(resp.Words, model.PracticeWordView{
			WordID: w.WordID,
			Prompt: kind.Prompt(w),
		})
	}
	return resp
}
