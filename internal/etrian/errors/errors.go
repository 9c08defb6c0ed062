// Package errors はetrianコマンドのエラー型を提供します
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSchema はレコード名が登録されていない場合のエラー
	ErrUnknownSchema = errors.New("不明なレコード名です")

	// ErrMissingGame はゲームの指定が必要な場合のエラー
	ErrMissingGame = errors.New("このレコードには -g でゲームの指定が必要です")
)

// DecodeError はファイルの読み込みやデコードのエラー
type DecodeError struct {
	Op   string // 実行していた操作
	Path string // ファイルパス
	Err  error  // 元のエラー
}

// Error はエラーメッセージを返します
func (e *DecodeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap は元のエラーを返します
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NewDecodeError は新しいDecodeErrorを作成します
func NewDecodeError(op, path string, err error) *DecodeError {
	return &DecodeError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}
