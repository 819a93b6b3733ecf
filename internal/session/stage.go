// internal/session/stage.go
package session

import (
	"fmt"

	"go_5_word_memorizer/internal/model"
)

// StageKind は練習ステージの種別を表します
type StageKind int

const (
	// StageRecallTerm は表面（単語）を見て意味を思い出すステージ
	StageRecallTerm StageKind = iota
	// StageRecallDefinition は裏面（意味）を見て単語を思い出すステージ
	StageRecallDefinition
	// StageSpellTerm は意味を見て単語を入力するステージ
	StageSpellTerm
	// StageSpellDefinition は単語を見て意味を入力するステージ
	StageSpellDefinition
)

func (k StageKind) String() string {
	switch k {
	case StageRecallTerm:
		return "recall_term"
	case StageRecallDefinition:
		return "recall_definition"
	case StageSpellTerm:
		return "spell_term"
	case StageSpellDefinition:
		return "spell_definition"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// IsSpell はスペル（入力）ステージかどうかを返します
func (k StageKind) IsSpell() bool {
	return k == StageSpellTerm || k == StageSpellDefinition
}

// Prompt はステージの向きに応じてクライアントへ提示する面を返します
func (k StageKind) Prompt(w model.Word) string {
	switch k {
	case StageRecallTerm, StageSpellDefinition:
		return w.Term
	default:
		return w.Definition
	}
}

// Answer はステージの向きに応じた正答（入力と照合する面）を返します
func (k StageKind) Answer(w model.Word) string {
	switch k {
	case StageSpellTerm:
		return w.Term
	case StageSpellDefinition:
		return w.Definition
	default:
		return ""
	}
}

// 回答シグナルから離散グレードへの分類。
// 想起ステージは3択ボタン、スペルステージは入力テキストの完全一致で採点します。
const (
	GradeUnknown  = 0.0 // 「わからない」
	GradePartial  = 2.5 // 「なんとなく」
	GradeKnown    = 5.0 // 「知っている」
	GradeSpellHit = 5.0 // スペル完全一致
	GradeSpellMis = 2.0 // スペル不一致
)

// 想起ステージの回答シグナル
const (
	SignalUnknown = "unknown"
	SignalPartial = "partial"
	SignalKnown   = "known"
)

// ClassifyRecall は想起ステージの回答シグナルをグレードに変換します
func ClassifyRecall(signal string) (float64, error) {
	switch signal {
	case SignalUnknown:
		return GradeUnknown, nil
	case SignalPartial:
		return GradePartial, nil
	case SignalKnown:
		return GradeKnown, nil
	default:
		return 0, fmt.Errorf("%w: unknown recall signal %q", model.ErrInvalidInput, signal)
	}
}

// ClassifySpell は入力テキストを正答と照合してグレードに変換します
func ClassifySpell(expected, given string) float64 {
	if expected == given {
		return GradeSpellHit
	}
	return GradeSpellMis
}
