// internal/model/word.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Word は暗記対象の単語1件を表します。
// スケジューリング状態 (Ease/Interval/Repetition/LastReview) はSM-2の出力によってのみ
// 更新され、Progressはセッション完了時にワークフロー側が設定します。
type Word struct {
	WordID     uuid.UUID  `gorm:"type:uuid;primaryKey" json:"word_id"`
	TenantID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"-"`
	WordListID *uuid.UUID `gorm:"type:uuid;index" json:"word_list_id,omitempty"`
	Term       string     `gorm:"not null" json:"term"`       // 表面 (プロンプト)
	Definition string     `gorm:"not null" json:"definition"` // 裏面 (意味・定義)
	Phonetic   string     `json:"phonetic,omitempty"`         // 発音記号 (任意)

	// --- SM-2 スケジューリング状態 ---
	Ease       float64    `gorm:"not null;default:2.5" json:"ease"`
	Interval   int        `gorm:"not null;default:1" json:"interval"` // 次回復習までの日数
	Repetition int        `gorm:"not null;default:0" json:"repetition"`
	LastReview *time.Time `json:"last_review,omitempty"`
	Progress   int        `gorm:"not null;default:0" json:"progress"` // 0-5の粗い習熟マーカー

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"` // 論理削除用

	// 関連 (Preload用)
	WordList *WordList `gorm:"foreignKey:WordListID;references:ListID" json:"-"`
}

func (Word) TableName() string {
	return "words"
}

// 単語作成リクエストDTO
type PostWordRequest struct {
	Term       string     `json:"term" validate:"required,min=1,max=200"`
	Definition string     `json:"definition" validate:"required,min=1"`
	Phonetic   string     `json:"phonetic,omitempty" validate:"omitempty,max=200"`
	WordListID *uuid.UUID `json:"word_list_id,omitempty"`
}

// 単語更新（全体）リクエストDTO
type PutWordRequest struct {
	Term       string `json:"term" validate:"required,min=1,max=200"`
	Definition string `json:"definition" validate:"required,min=1"`
	Phonetic   string `json:"phonetic,omitempty" validate:"omitempty,max=200"`
}

// 単語更新（部分）リクエストDTO
type PatchWordRequest struct {
	Term       *string `json:"term,omitempty" validate:"omitempty,min=1,max=200"`
	Definition *string `json:"definition,omitempty" validate:"omitempty,min=1"`
	Phonetic   *string `json:"phonetic,omitempty" validate:"omitempty,max=200"`
}

// ScheduleUpdate はFinalize時に永続化層へ渡すスケジュール更新レコードです。
// 1単語につき必ず1件、バッチとして一括書き込みされます。
type ScheduleUpdate struct {
	WordID     uuid.UUID `json:"word_id"`
	Ease       float64   `json:"ease"`
	Interval   int       `json:"interval"`
	Repetition int       `json:"repetition"`
	LastReview time.Time `json:"last_review"`
	Progress   int       `json:"progress"`
}
