// Package errors はプロジェクト全体のエラーハンドリングを提供します。
// モデルファイルの読み込み失敗を、オフセットやレコード名などの構造化された情報とともに報告します。
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	バイナリ形式のエラー型
//
// ===========================================================================

// FormatError はバイナリモデルの読み込みがバッファの終端を超える場合、
// または宣言された件数・長さが不正な場合のエラーです。
type FormatError struct {
	Record    string // 読み込み中のレコード名（例: "TreeParam", "Node"）
	Offset    int    // 読み込みを開始したバイトオフセット
	Need      int    // 必要なバイト数（不明な場合は0）
	Available int    // Offset以降に残っているバイト数
	Reason    string // 追加の説明（任意）
}

func (e *FormatError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("xgbleaf: %s at offset %d: %s (need %d bytes, %d available)",
			e.Record, e.Offset, e.Reason, e.Need, e.Available)
	}
	return fmt.Sprintf("xgbleaf: %s at offset %d: need %d bytes, %d available",
		e.Record, e.Offset, e.Need, e.Available)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *FormatError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("record", e.Record).
		Int("offset", e.Offset).
		Int("need", e.Need).
		Int("available", e.Available).
		Str("reason", e.Reason).
		Str("type", "FormatError")
}

// NewFormatError は新しいFormatErrorを作成し、スタックトレースを付与します。
func NewFormatError(record string, offset, need, available int) error {
	err := &FormatError{Record: record, Offset: offset, Need: need, Available: available}
	return errors.WithStack(err)
}

// NewFormatErrorf は理由付きのFormatErrorを作成します。
// 件数が負の場合など、単純な長さ不足ではない不正を報告するために使います。
func NewFormatErrorf(record string, offset, need, available int, format string, args ...interface{}) error {
	err := &FormatError{
		Record:    record,
		Offset:    offset,
		Need:      need,
		Available: available,
		Reason:    fmt.Sprintf(format, args...),
	}
	return errors.WithStack(err)
}

// DecodeError は名前文字列（objective名、booster名）が有効なASCIIでない場合のエラーです。
type DecodeError struct {
	Field  string // フィールド名（例: "objective", "booster"）
	Offset int    // 文字列本体の開始オフセット
	Pos    int    // 不正なバイトの文字列内での位置
	Byte   byte   // 不正なバイト値
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("xgbleaf: %s name at offset %d: byte 0x%02x at position %d is not ASCII",
		e.Field, e.Offset, e.Byte, e.Pos)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DecodeError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("field", e.Field).
		Int("offset", e.Offset).
		Int("pos", e.Pos).
		Uint8("byte", e.Byte).
		Str("type", "DecodeError")
}

// NewDecodeError は新しいDecodeErrorを作成し、スタックトレースを付与します。
func NewDecodeError(field string, offset, pos int, b byte) error {
	err := &DecodeError{Field: field, Offset: offset, Pos: pos, Byte: b}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	入力検証のエラー型
//
// ===========================================================================

// DimensionError は入力データの次元が期待値と異なる場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("xgbleaf: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValidationError は入力パラメータの検証に失敗した場合のエラーです。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("xgbleaf: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
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

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}
