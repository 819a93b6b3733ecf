// internal/session/session.go
package session

import (
	"errors"
	"fmt"
	"time"

	"go_5_word_memorizer/internal/model"
	"go_5_word_memorizer/internal/sm2"

	"github.com/google/uuid"
)

// UngradedGrade は「まだ一度も採点されていない」ことを示す番兵値です
const UngradedGrade = -1.0

// CompletedProgress はセッション完走時にワークフローが設定する習熟マーカーです
const CompletedProgress = 5

// セッション操作のエラー
var (
	ErrNoWords         = errors.New("session requires at least one word")
	ErrNoStages        = errors.New("session requires at least one stage")
	ErrFinished        = errors.New("session already finished")
	ErrUnknownWord     = errors.New("word is not part of the current stage")
	ErrStageIncomplete = errors.New("current stage is not complete")
	ErrGradeOutOfRange = errors.New("grade must be within [0,5]")
)

// Session は1回の練習セッションの状態を保持するコーディネータです。
// グレードマップ・ステージポインタなど全ての状態はメモリ上にのみ存在し、
// Finalizeの結果を永続化するまでDBには一切書き込まれません（中断＝完全ロールバック）。
//
// Session自体は排他制御を持ちません。1セッション＝1ユーザーの逐次操作が前提で、
// 並行アクセスの保護は呼び出し側（サービス層）の責務です。
type Session struct {
	ID       uuid.UUID
	TenantID uuid.UUID

	words      []model.Word // セッション開始時点のコピー（ストアが所有する実体とは別物）
	grades     map[uuid.UUID]float64
	stages     []StageKind
	stageIndex int

	// 現在のステージで採点済みの単語。ステージ遷移判定に使う
	stageGraded map[uuid.UUID]bool

	// スペルステージ対象の「よく知っている」単語のサブセット。
	// 最初のスペルステージ進入時に一度だけ確定し、以降は変化しない
	known       []model.Word
	knownFrozen bool
}

// New は新しいセッションを生成します。単語リストは内部でコピーされます。
// 全単語のグレードは番兵値(-1)で初期化されます。
func New(tenantID uuid.UUID, words []model.Word, stages []StageKind) (*Session, error) {
	if len(words) == 0 {
		return nil, ErrNoWords
	}
	if len(stages) == 0 {
		return nil, ErrNoStages
	}

	copied := make([]model.Word, len(words))
	copy(copied, words)

	grades := make(map[uuid.UUID]float64, len(copied))
	for _, w := range copied {
		grades[w.WordID] = UngradedGrade
	}

	return &Session{
		ID:          uuid.New(),
		TenantID:    tenantID,
		words:       copied,
		grades:      grades,
		stages:      stages,
		stageGraded: make(map[uuid.UUID]bool),
	}, nil
}

// DefaultStages は練習フローの標準構成です:
// 表面の想起 → 裏面の想起 → (集計グレード5の単語のみ) 表面スペル → 裏面スペル
func DefaultStages() []StageKind {
	return []StageKind{StageRecallTerm, StageRecallDefinition, StageSpellTerm, StageSpellDefinition}
}

// Finished はセッションが最終ステージを通過したかどうかを返します
func (s *Session) Finished() bool {
	return s.stageIndex >= len(s.stages)
}

// StageNumber は現在のステージ番号（1始まり）を返します
func (s *Session) StageNumber() int {
	if s.Finished() {
		return len(s.stages)
	}
	return s.stageIndex + 1
}

// TotalStages はステージ総数を返します
func (s *Session) TotalStages() int {
	return len(s.stages)
}

// CurrentKind は現在のステージ種別を返します。終了後は最後のステージを返します
func (s *Session) CurrentKind() StageKind {
	if s.Finished() {
		return s.stages[len(s.stages)-1]
	}
	return s.stages[s.stageIndex]
}

// StageWords は現在のステージの対象単語を返します。
// 想起ステージは全単語、スペルステージは確定済みのサブセットです。
func (s *Session) StageWords() []model.Word {
	if !s.Finished() && s.CurrentKind().IsSpell() {
		return s.known
	}
	return s.words
}

// WordByID は現在のステージ対象から単語を検索します
func (s *Session) WordByID(wordID uuid.UUID) (model.Word, bool) {
	for _, w := range s.StageWords() {
		if w.WordID == wordID {
			return w, true
		}
	}
	return model.Word{}, false
}

// Grade は指定単語の現在の集計グレードを返します（未採点なら-1）
func (s *Session) Grade(wordID uuid.UUID) float64 {
	g, ok := s.grades[wordID]
	if !ok {
		return UngradedGrade
	}
	return g
}

// RecordGrade は1回のグレーディングイベントを集計に畳み込みます。
// 集計は「初回はそのまま、以降は既存値との二点平均」という漸化式で、
// イベントの発生順に逐次適用されます:
//
//	new = old == -1 ? g : (old + g) / 2
//
// 真の算術平均ではなく後のイベントほど重みが大きくなりますが、
// これは元の挙動をそのまま維持しています（session_test.go参照）。
func (s *Session) RecordGrade(wordID uuid.UUID, grade float64) error {
	if s.Finished() {
		return ErrFinished
	}
	if grade < sm2.MinGrade || grade > sm2.MaxGrade {
		return fmt.Errorf("%w: got %v", ErrGradeOutOfRange, grade)
	}
	if _, ok := s.WordByID(wordID); !ok {
		return ErrUnknownWord
	}

	old, ok := s.grades[wordID]
	if !ok || old == UngradedGrade {
		s.grades[wordID] = grade
	} else {
		s.grades[wordID] = (old + grade) / 2
	}
	s.stageGraded[wordID] = true
	return nil
}

// StageComplete は現在のステージの全対象単語が採点済みかどうかを返します
func (s *Session) StageComplete() bool {
	if s.Finished() {
		return true
	}
	for _, w := range s.StageWords() {
		if !s.stageGraded[w.WordID] {
			return false
		}
	}
	return true
}

// Advance は次のステージへ進みます。現在のステージが未完了ならエラーです。
// スペルステージへ最初に進入した時点で、集計グレードがちょうど5の単語を
// サブセットとして確定します。対象が空のステージはスキップされます。
func (s *Session) Advance() error {
	if s.Finished() {
		return ErrFinished
	}
	if !s.StageComplete() {
		return ErrStageIncomplete
	}

	for {
		s.stageIndex++
		s.stageGraded = make(map[uuid.UUID]bool)
		if s.Finished() {
			return nil
		}

		if s.CurrentKind().IsSpell() && !s.knownFrozen {
			s.freezeKnown()
		}
		if len(s.StageWords()) > 0 {
			return nil
		}
		// 対象単語のないステージは完了扱いで次へ
	}
}

// freezeKnown は集計グレードがちょうど5の単語をスペルステージ対象として確定します
func (s *Session) freezeKnown() {
	s.known = nil
	for _, w := range s.words {
		if s.grades[w.WordID] == 5 {
			s.known = append(s.known, w)
		}
	}
	s.knownFrozen = true
}

// Restart はグレードマップとステージポインタを初期状態に戻します
func (s *Session) Restart() {
	for _, w := range s.words {
		s.grades[w.WordID] = UngradedGrade
	}
	s.stageIndex = 0
	s.stageGraded = make(map[uuid.UUID]bool)
	s.known = nil
	s.knownFrozen = false
}

// Finalize は全単語に対してスケジューラを1回ずつ適用し、永続化用の
// 更新レコードを組み立てます。番兵値のままの単語は更新対象から除外され、
// そのIDが第2戻り値として返ります（バッチ全体は失敗させません）。
// 純粋関数的で、同じグレードマップに対して何度呼んでも同じ結果になります。
func (s *Session) Finalize(now time.Time) ([]model.ScheduleUpdate, []uuid.UUID) {
	updates := make([]model.ScheduleUpdate, 0, len(s.words))
	var skipped []uuid.UUID

	for _, w := range s.words {
		grade := s.grades[w.WordID]
		if grade == UngradedGrade {
			skipped = append(skipped, w.WordID)
			continue
		}

		res := sm2.Process(sm2.StateOf(w.Ease, w.Interval, w.Repetition), grade)
		updates = append(updates, model.ScheduleUpdate{
			WordID:     w.WordID,
			Ease:       res.Ease,
			Interval:   res.Interval,
			Repetition: res.Repetition,
			LastReview: now,
			Progress:   CompletedProgress,
		})
	}

	return updates, skipped
}
