// internal/sm2/sm2.go
package sm2

import "math"

// SM-2アルゴリズムの定数
const (
	// DefaultEase は新規アイテムの初期E-Factor
	DefaultEase = 2.5
	// MinEase はE-Factorの下限値。これ以上は下がらない
	MinEase = 1.3
	// PassThreshold は「正解」とみなすグレードの閾値 (3以上が正解)
	PassThreshold = 3.0
	// MinGrade / MaxGrade は有効なグレードの範囲
	MinGrade = 0.0
	MaxGrade = 5.0
)

// State はスケジューリング対象アイテムの現在の状態を表します。
type State struct {
	Ease       float64 // E-Factor (易しさ係数)
	Interval   int     // 現在の復習間隔 (日数)
	Repetition int     // 連続正解回数
}

// Result は1回のグレーディング後の新しいスケジューリング状態です。
type Result struct {
	Ease       float64
	Interval   int
	Repetition int
}

// NewState は新規アイテムのデフォルト状態を返します。
func NewState() State {
	return State{Ease: DefaultEase, Interval: 0, Repetition: 0}
}

// StateOf は永続化された値から State を構築します。
// Easeがゼロ値（未設定）の場合はデフォルトの2.5を適用します。
// デフォルト値の適用はここに集約し、呼び出し側に散らさないこと。
func StateOf(ease float64, interval, repetition int) State {
	if ease == 0 {
		ease = DefaultEase
	}
	if interval < 0 {
		interval = 0
	}
	if repetition < 0 {
		repetition = 0
	}
	return State{Ease: ease, Interval: interval, Repetition: repetition}
}

// ComputeEaseFactor はSM-2のオリジナル式で新しいE-Factorを計算します。
// newEF = oldEF + (0.1 - (5-grade) * (0.08 + (5-grade) * 0.02))
// 結果は1.3未満にはなりません。
func ComputeEaseFactor(oldEase, grade float64) float64 {
	newEase := oldEase + (0.1 - (5.0-grade)*(0.08+(5.0-grade)*0.02))
	return math.Max(MinEase, newEase)
}

// ComputeNextInterval は次の復習間隔（日数）を計算します。
//
//	repetition == 0 -> 1日  (I(1) = 1)
//	repetition == 1 -> 6日  (I(2) = 6)
//	それ以降        -> round(prevInterval * ease)  (I(n) = I(n-1) * EF)
//
// 最初の2回は固定間隔。乗算則は前回間隔が確定してから適用されます。
func ComputeNextInterval(repetition int, ease float64, prevInterval int) int {
	if repetition == 0 {
		return 1
	}
	if repetition == 1 {
		return 6
	}
	return int(math.Round(float64(prevInterval) * ease))
}

// Process は1回のグレーディングを状態に適用します。
// 純粋関数：副作用なし、同じ入力には常に同じ結果を返します。
// gradeは[0,5]の範囲であることが呼び出し側の契約です（範囲外は未定義）。
func Process(s State, grade float64) Result {
	newEase := ComputeEaseFactor(s.Ease, grade)

	// 不正解 (grade < 3) は連続正解回数をリセットし、翌日に再復習。
	// E-Factorの再計算は免除されない。
	if grade < PassThreshold {
		return Result{
			Ease:       newEase,
			Interval:   1,
			Repetition: 0,
		}
	}

	return Result{
		Ease:       newEase,
		Interval:   ComputeNextInterval(s.Repetition, newEase, s.Interval),
		Repetition: s.Repetition + 1,
	}
}
