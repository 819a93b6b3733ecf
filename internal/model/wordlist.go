// internal/model/wordlist.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WordListMode は単語リストの学習モードを表します。
type WordListMode string

const (
	ModeTranslation WordListMode = "translation" // 訳語を覚えるモード
	ModeDefinition  WordListMode = "definition"  // 辞書定義を覚えるモード
)

// WordList はユーザーが作成した単語リストを表します
type WordList struct {
	ListID    uuid.UUID      `gorm:"type:uuid;primaryKey" json:"list_id"`
	TenantID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"-"`
	Name      string         `gorm:"not null" json:"name"`
	Mode      WordListMode   `gorm:"type:varchar(20);not null;default:translation" json:"mode"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// 関連 (Preload用)
	Words []Word `gorm:"foreignKey:WordListID;references:ListID" json:"-"`
}

func (WordList) TableName() string {
	return "word_lists"
}

// 単語リスト作成リクエストDTO
type PostWordListRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
	Mode string `json:"mode" validate:"required,oneof=translation definition"`
}
