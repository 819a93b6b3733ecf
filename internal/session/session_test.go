// internal/session/session_test.go
package session

import (
	"testing"
	"time"

	"go_5_word_memorizer/internal/model"
	"go_5_word_memorizer/internal/sm2"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeWords(n int) []model.Word {
	words := make([]model.Word, n)
	for i := range words {
		words[i] = model.Word{
			WordID:     uuid.New(),
			Term:       "term",
			Definition: "definition",
			Ease:       2.5,
			Interval:   0,
			Repetition: 0,
		}
	}
	return words
}

func TestNew(t *testing.T) {
	tenantID := uuid.New()

	tests := []struct {
		name    string
		words   []model.Word
		stages  []StageKind
		wantErr error
	}{
		{name: "正常系: 単語とステージがあれば生成できる", words: makeWords(2), stages: DefaultStages(), wantErr: nil},
		{name: "異常系: 単語が空", words: nil, stages: DefaultStages(), wantErr: ErrNoWords},
		{name: "異常系: ステージが空", words: makeWords(1), stages: nil, wantErr: ErrNoStages},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tenantID, tt.words, tt.stages)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, s)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, s)
			assert.Equal(t, tenantID, s.TenantID)
			assert.False(t, s.Finished())
			// 全単語が番兵値で初期化される
			for _, w := range tt.words {
				assert.Equal(t, UngradedGrade, s.Grade(w.WordID))
			}
		})
	}
}

// 集計は「初回はそのまま、以降は二点平均」の漸化式 (g1 -> (g1+g2)/2)
func TestRecordGrade_Aggregation(t *testing.T) {
	words := makeWords(1)
	s, err := New(uuid.New(), words, []StageKind{StageRecallTerm, StageRecallDefinition, StageRecallTerm})
	require.NoError(t, err)
	id := words[0].WordID

	require.NoError(t, s.RecordGrade(id, 5))
	assert.Equal(t, 5.0, s.Grade(id))

	require.NoError(t, s.Advance())
	require.NoError(t, s.RecordGrade(id, 0))
	assert.Equal(t, 2.5, s.Grade(id))

	// 3回目は真の平均なら (5+0+2)/3 だが、漸化式では (2.5+2)/2
	require.NoError(t, s.Advance())
	require.NoError(t, s.RecordGrade(id, 2))
	assert.Equal(t, 2.25, s.Grade(id))
}

func TestRecordGrade_Validation(t *testing.T) {
	words := makeWords(1)
	s, err := New(uuid.New(), words, []StageKind{StageRecallTerm})
	require.NoError(t, err)

	tests := []struct {
		name    string
		wordID  uuid.UUID
		grade   float64
		wantErr error
	}{
		{name: "異常系: グレードが範囲外(負)", wordID: words[0].WordID, grade: -0.5, wantErr: ErrGradeOutOfRange},
		{name: "異常系: グレードが範囲外(5超)", wordID: words[0].WordID, grade: 5.5, wantErr: ErrGradeOutOfRange},
		{name: "異常系: セッション外の単語", wordID: uuid.New(), grade: 3, wantErr: ErrUnknownWord},
		{name: "正常系: 境界値0", wordID: words[0].WordID, grade: 0, wantErr: nil},
		{name: "正常系: 境界値5", wordID: words[0].WordID, grade: 5, wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.RecordGrade(tt.wordID, tt.grade)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAdvance(t *testing.T) {
	words := makeWords(2)
	s, err := New(uuid.New(), words, []StageKind{StageRecallTerm, StageRecallDefinition})
	require.NoError(t, err)

	// 未完了のステージからは進めない
	require.NoError(t, s.RecordGrade(words[0].WordID, 5))
	assert.ErrorIs(t, s.Advance(), ErrStageIncomplete)

	require.NoError(t, s.RecordGrade(words[1].WordID, 0))
	require.True(t, s.StageComplete())
	require.NoError(t, s.Advance())
	assert.Equal(t, 2, s.StageNumber())
	assert.Equal(t, StageRecallDefinition, s.CurrentKind())

	// 最終ステージ完了で終了状態になる
	require.NoError(t, s.RecordGrade(words[0].WordID, 5))
	require.NoError(t, s.RecordGrade(words[1].WordID, 0))
	require.NoError(t, s.Advance())
	assert.True(t, s.Finished())
	assert.ErrorIs(t, s.Advance(), ErrFinished)
	assert.ErrorIs(t, s.RecordGrade(words[0].WordID, 5), ErrFinished)
}

// スペルステージ進入時に集計グレード5の単語だけがサブセットとして確定する
func TestAdvance_FreezesKnownSubset(t *testing.T) {
	words := makeWords(3)
	s, err := New(uuid.New(), words, []StageKind{StageRecallTerm, StageSpellTerm})
	require.NoError(t, err)

	require.NoError(t, s.RecordGrade(words[0].WordID, 5))
	require.NoError(t, s.RecordGrade(words[1].WordID, 2.5))
	require.NoError(t, s.RecordGrade(words[2].WordID, 5))
	require.NoError(t, s.Advance())

	stageWords := s.StageWords()
	require.Len(t, stageWords, 2)
	assert.Equal(t, words[0].WordID, stageWords[0].WordID)
	assert.Equal(t, words[2].WordID, stageWords[1].WordID)

	// サブセットは確定後に変化しない: スペルで不一致になっても対象のまま
	require.NoError(t, s.RecordGrade(words[0].WordID, GradeSpellMis))
	assert.Len(t, s.StageWords(), 2)
}

// グレード5の単語が1つもない場合、スペルステージはスキップされる
func TestAdvance_SkipsEmptySpellStage(t *testing.T) {
	words := makeWords(2)
	s, err := New(uuid.New(), words, []StageKind{StageRecallTerm, StageSpellTerm, StageSpellDefinition})
	require.NoError(t, err)

	require.NoError(t, s.RecordGrade(words[0].WordID, 2.5))
	require.NoError(t, s.RecordGrade(words[1].WordID, 0))
	require.NoError(t, s.Advance())

	assert.True(t, s.Finished())
}

func TestRestart(t *testing.T) {
	words := makeWords(2)
	s, err := New(uuid.New(), words, []StageKind{StageRecallTerm, StageSpellTerm})
	require.NoError(t, err)

	require.NoError(t, s.RecordGrade(words[0].WordID, 5))
	require.NoError(t, s.RecordGrade(words[1].WordID, 5))
	require.NoError(t, s.Advance())

	s.Restart()
	assert.Equal(t, 1, s.StageNumber())
	assert.Equal(t, StageRecallTerm, s.CurrentKind())
	assert.False(t, s.Finished())
	for _, w := range words {
		assert.Equal(t, UngradedGrade, s.Grade(w.WordID))
	}
	// サブセットの確定も解除される
	assert.Len(t, s.StageWords(), 2)
}

// 採点済みの単語は必ず1件の更新レコードになり、未採点の単語は除外される
func TestFinalize(t *testing.T) {
	words := makeWords(3)
	words[1].Ease = 2.7
	words[1].Interval = 6
	words[1].Repetition = 2

	s, err := New(uuid.New(), words, []StageKind{StageRecallTerm})
	require.NoError(t, err)

	// A: 5 (正解), B: 2 (不正解), C: 未採点
	require.NoError(t, s.RecordGrade(words[0].WordID, 5))
	require.NoError(t, s.RecordGrade(words[1].WordID, 2))

	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	updates, skipped := s.Finalize(now)

	require.Len(t, updates, 2)
	require.Len(t, skipped, 1)
	assert.Equal(t, words[2].WordID, skipped[0])

	// A: 新規アイテムにgrade=5 -> ease 2.6 / interval 1 / repetition 1
	a := updates[0]
	assert.Equal(t, words[0].WordID, a.WordID)
	assert.InDelta(t, 2.6, a.Ease, 1e-9)
	assert.Equal(t, 1, a.Interval)
	assert.Equal(t, 1, a.Repetition)
	assert.Equal(t, now, a.LastReview)
	assert.Equal(t, CompletedProgress, a.Progress)

	// B: 不正解でリセット。easeは再計算されるが1.3未満にはならない
	b := updates[1]
	assert.Equal(t, words[1].WordID, b.WordID)
	assert.Equal(t, 1, b.Interval)
	assert.Equal(t, 0, b.Repetition)
	assert.InDelta(t, 2.7-0.54, b.Ease, 1e-9)
	assert.GreaterOrEqual(t, b.Ease, sm2.MinEase)
	assert.Equal(t, CompletedProgress, b.Progress)
}

// 同じグレードマップに対するFinalizeは何度呼んでも同じ結果（冪等）
func TestFinalize_Idempotent(t *testing.T) {
	words := makeWords(2)
	s, err := New(uuid.New(), words, []StageKind{StageRecallTerm})
	require.NoError(t, err)

	require.NoError(t, s.RecordGrade(words[0].WordID, 4))
	require.NoError(t, s.RecordGrade(words[1].WordID, 1))

	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	first, firstSkipped := s.Finalize(now)
	second, secondSkipped := s.Finalize(now)
	assert.Equal(t, first, second)
	assert.Equal(t, firstSkipped, secondSkipped)
}

func TestClassifyRecall(t *testing.T) {
	tests := []struct {
		name    string
		signal  string
		want    float64
		wantErr bool
	}{
		{name: "正常系: unknown -> 0", signal: SignalUnknown, want: 0},
		{name: "正常系: partial -> 2.5", signal: SignalPartial, want: 2.5},
		{name: "正常系: known -> 5", signal: SignalKnown, want: 5},
		{name: "異常系: 不明なシグナル", signal: "meh", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ClassifyRecall(tt.signal)
			if tt.wantErr {
				assert.ErrorIs(t, err, model.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifySpell(t *testing.T) {
	assert.Equal(t, GradeSpellHit, ClassifySpell("apple", "apple"))
	assert.Equal(t, GradeSpellMis, ClassifySpell("apple", "aple"))
	// 完全一致のみ正解（大文字小文字も区別する）
	assert.Equal(t, GradeSpellMis, ClassifySpell("apple", "Apple"))
}

func TestStageKind_Prompt(t *testing.T) {
	w := model.Word{Term: "apple", Definition: "りんご"}
	assert.Equal(t, "apple", StageRecallTerm.Prompt(w))
	assert.Equal(t, "りんご", StageRecallDefinition.Prompt(w))
	// スペルステージは答えの反対面を提示する
	assert.Equal(t, "りんご", StageSpellTerm.Prompt(w))
	assert.Equal(t, "apple", StageSpellDefinition.Prompt(w))
	assert.Equal(t, "apple", StageSpellTerm.Answer(w))
	assert.Equal(t, "りんご", StageSpellDefinition.Answer(w))
}
