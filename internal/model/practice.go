// internal/model/practice.go
package model

import "github.com/google/uuid"

// StartPracticeRequest は練習セッション開始リクエストのDTO。
// WordListIDを省略した場合はテナントの全単語が対象になります。
type StartPracticeRequest struct {
	WordListID *uuid.UUID `json:"word_list_id,omitempty"`
}

// PracticeWordView はステージ中にクライアントへ提示する1単語分のビューです。
// 現在のステージの向きに応じたプロンプトのみを含み、答えは含めません。
type PracticeWordView struct {
	WordID uuid.UUID `json:"word_id"`
	Prompt string    `json:"prompt"`
}

// PracticeSessionResponse はセッションの現在状態のレスポンスDTO
type PracticeSessionResponse struct {
	SessionID   uuid.UUID          `json:"session_id"`
	Stage       int                `json:"stage"` // 1始まり
	StageKind   string             `json:"stage_kind"`
	TotalStages int                `json:"total_stages"`
	Finished    bool               `json:"finished"`
	Words       []PracticeWordView `json:"words"`
}

// SubmitAnswerRequest は1単語分の回答送信リクエストのDTO。
// 想起ステージではResponseは unknown / partial / known のいずれか、
// スペルステージでは入力されたテキストそのものです。
type SubmitAnswerRequest struct {
	WordID   uuid.UUID `json:"word_id" validate:"required"`
	Response string    `json:"response" validate:"required"`
}

// SubmitAnswerResponse は回答適用後のセッション進行状況です
type SubmitAnswerResponse struct {
	Grade         float64 `json:"grade"` // この単語の現在の集計グレード
	StageAdvanced bool    `json:"stage_advanced"`
	Finished      bool    `json:"finished"`
}

// FinalizePracticeResponse はFinalize結果のレスポンスDTO
type FinalizePracticeResponse struct {
	UpdatedCount int `json:"updated_count"`
	SkippedCount int `json:"skipped_count"`
}
