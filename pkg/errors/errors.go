// Package errors は lalg 全体のエラーハンドリングと警告システムを提供します。
// 行列演算で発生する失敗を型付きのエラーとして表現し、errors.As で判別できるようにします。
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// デフォルトのハンドラは標準エラー出力にログを出す
		log.Printf("lalg-Warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler はライブラリ全体の警告ハンドラを設定します。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
// nil を渡すと従来のハンドラに戻ります。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが設定されている場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	警告型
//
// ===========================================================================

// ConvergenceWarning は最適化アルゴリズムが収束しなかった場合に発生する警告です。
type ConvergenceWarning struct {
	Algorithm  string
	Iterations int
	Message    string
}

func (w *ConvergenceWarning) Error() string {
	if w.Message != "" {
		return fmt.Sprintf("%s failed to converge after %d iterations: %s", w.Algorithm, w.Iterations, w.Message)
	}
	return fmt.Sprintf("%s failed to converge after %d iterations. Consider raising the iteration limit or using another method.", w.Algorithm, w.Iterations)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *ConvergenceWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("algorithm", w.Algorithm).
		Int("iterations", w.Iterations).
		Str("message", w.Message).
		Str("type", "ConvergenceWarning")
}

// NewConvergenceWarning は新しいConvergenceWarningを作成します。
func NewConvergenceWarning(algorithm string, iterations int, message string) *ConvergenceWarning {
	return &ConvergenceWarning{Algorithm: algorithm, Iterations: iterations, Message: message}
}

// ShortRowWarning はストリーム読み込みで列数に満たない行を0埋めした場合の警告です。
type ShortRowWarning struct {
	Row      int
	Expected int
	Got      int
}

func (w *ShortRowWarning) Error() string {
	return fmt.Sprintf("row %d has %d values, expected %d; missing values were set to 0", w.Row, w.Got, w.Expected)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *ShortRowWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Int("row", w.Row).
		Int("expected", w.Expected).
		Int("got", w.Got).
		Str("type", "ShortRowWarning")
}

// NewShortRowWarning は新しいShortRowWarningを作成します。
func NewShortRowWarning(row, expected, got int) *ShortRowWarning {
	return &ShortRowWarning{Row: row, Expected: expected, Got: got}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// ShapeError はオペランドの形状が演算と両立しない場合のエラーです。
// Right が nil の場合は単項演算（例: 正方行列が必要な inverse）を表します。
type ShapeError struct {
	Op     string
	Left   []int
	Right  []int
	Reason string
}

func (e *ShapeError) Error() string {
	msg := fmt.Sprintf("lalg: %s: incompatible shapes |%s|", e.Op, shapeString(e.Left))
	if e.Right != nil {
		msg += fmt.Sprintf(" and |%s|", shapeString(e.Right))
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ShapeError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Ints("left", e.Left).
		Ints("right", e.Right).
		Str("reason", e.Reason).
		Str("type", "ShapeError")
}

// NewShapeError は二項演算の形状不一致エラーを作成し、スタックトレースを付与します。
func NewShapeError(op string, leftRows, leftCols, rightRows, rightCols int) error {
	err := &ShapeError{
		Op:    op,
		Left:  []int{leftRows, leftCols},
		Right: []int{rightRows, rightCols},
	}
	return errors.WithStack(err)
}

// NewUnaryShapeError は単項演算の形状エラーを作成し、スタックトレースを付与します。
func NewUnaryShapeError(op string, rows, cols int, reason string) error {
	err := &ShapeError{Op: op, Left: []int{rows, cols}, Reason: reason}
	return errors.WithStack(err)
}

// SingularMatrixError は LU 分解で零ピボットが見つかった場合のエラーです。
// Status は LAPACK の info と同じく 1 始まりの対角要素の位置です。
type SingularMatrixError struct {
	Op     string
	Status int
}

func (e *SingularMatrixError) Error() string {
	return fmt.Sprintf("lalg: %s: matrix is singular and cannot be inverted (zero pivot at U(%d,%d))", e.Op, e.Status, e.Status)
}

// Is は ErrSingularMatrix との比較を可能にします。
func (e *SingularMatrixError) Is(target error) bool {
	return target == ErrSingularMatrix
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *SingularMatrixError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("status", e.Status).
		Str("type", "SingularMatrixError")
}

// NewSingularMatrixError は新しいSingularMatrixErrorを作成し、スタックトレースを付与します。
func NewSingularMatrixError(op string, status int) error {
	return errors.WithStack(&SingularMatrixError{Op: op, Status: status})
}

// NumericalFailure は数値カーネル内部の失敗を表します。
// Routine は失敗したカーネル（"getrf", "getri", "gesvd" など）、Status はその戻りコードです。
type NumericalFailure struct {
	Op      string
	Routine string
	Status  int
	Reason  string
}

func (e *NumericalFailure) Error() string {
	msg := fmt.Sprintf("lalg: %s: internal failure - %s() failed with %d", e.Op, e.Routine, e.Status)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NumericalFailure) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("routine", e.Routine).
		Int("status", e.Status).
		Str("reason", e.Reason).
		Str("type", "NumericalFailure")
}

// NewNumericalFailure は新しいNumericalFailureを作成し、スタックトレースを付与します。
func NewNumericalFailure(op, routine string, status int, reason string) error {
	return errors.WithStack(&NumericalFailure{Op: op, Routine: routine, Status: status, Reason: reason})
}

// IndexOutOfRange は要素・行・列のインデックスが範囲外の場合のエラーです。
type IndexOutOfRange struct {
	Op    string
	Index []int
	Shape []int
}

func (e *IndexOutOfRange) Error() string {
	if len(e.Index) == 1 && len(e.Shape) == 1 {
		return fmt.Sprintf("lalg: %s: index (%d) out of bounds, valid range is [-%d, %d)", e.Op, e.Index[0], e.Shape[0], e.Shape[0])
	}
	return fmt.Sprintf("lalg: %s: index (%s) out of bounds for matrix |%s|", e.Op, joinInts(e.Index, ","), shapeString(e.Shape))
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *IndexOutOfRange) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Ints("index", e.Index).
		Ints("shape", e.Shape).
		Str("type", "IndexOutOfRange")
}

// NewIndexOutOfRange は線形インデックスの範囲外エラーを作成します。
func NewIndexOutOfRange(op string, index, length int) error {
	return errors.WithStack(&IndexOutOfRange{Op: op, Index: []int{index}, Shape: []int{length}})
}

// NewIndexOutOfRange2D は (row, col) インデックスの範囲外エラーを作成します。
func NewIndexOutOfRange2D(op string, r, c, rows, cols int) error {
	return errors.WithStack(&IndexOutOfRange{Op: op, Index: []int{r, c}, Shape: []int{rows, cols}})
}

// ValidationError は入力パラメータの検証に失敗した場合のエラーです。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("lalg: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError は新しいValidationErrorを作成し、スタックトレースを付与します。
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

func shapeString(shape []int) string {
	return joinInts(shape, " x ")
}

func joinInts(v []int, sep string) string {
	s := ""
	for i, x := range v {
		if i > 0 {
			s += sep
		}
		s += fmt.Sprint(x)
	}
	return s
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrSingularMatrix は特異行列の場合のエラーです。SingularMatrixError は errors.Is でこれに一致します。
	ErrSingularMatrix = New("singular matrix")

	// ErrRunnerClosed は停止済みのランナーにタスクを投入した場合のエラーです。
	ErrRunnerClosed = New("task runner is closed")

	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")
)
