package table

import (
	"errors"
	"fmt"
)

var (
	// ErrSchemaMismatch はバッファ長がレコード長で割り切れない場合のエラー。
	// ほとんどの場合、選択したゲームのバージョンが間違っています。
	ErrSchemaMismatch = errors.New("テーブル長がレコード長で割り切れません")

	// ErrMissingDescriptor はレコード長が宣言されていない場合のエラー
	ErrMissingDescriptor = errors.New("レコード定義がありません")

	// ErrUnsupportedRecordType はデコード関数が解決できない場合のエラー
	ErrUnsupportedRecordType = errors.New("サポートされていないレコード型です")

	// ErrMalformedRecord はデコード後のレコードが不正な場合のエラー
	ErrMalformedRecord = errors.New("レコードが不正です")
)

// SchemaMismatchError はバッファ長とレコード長が一致しない場合のエラー
type SchemaMismatchError struct {
	Record       string // レコード名
	Length       int    // バッファ長
	RecordLength int    // 期待されるレコード長
}

// Error はエラーメッセージを返します
func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("%s: %s (length %d, record length 0x%02X)", ErrSchemaMismatch, e.Record, e.Length, e.RecordLength)
}

// Unwrap は ErrSchemaMismatch を返します
func (e *SchemaMismatchError) Unwrap() error {
	return ErrSchemaMismatch
}

// MalformedRecordError はレコード単位の検証に失敗した場合のエラー
type MalformedRecordError struct {
	Record string // レコード名
	Index  int    // テーブル内の位置
	Err    error  // 元のエラー
}

// Error はエラーメッセージを返します
func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("%s: %s[%d]: %v", ErrMalformedRecord, e.Record, e.Index, e.Err)
}

// Unwrap は元のエラーと ErrMalformedRecord を返します
func (e *MalformedRecordError) Unwrap() []error {
	return []error{ErrMalformedRecord, e.Err}
}
