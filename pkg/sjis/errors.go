package sjis

import "errors"

var (
	// ErrDecode はShift-JISからの変換に失敗した場合のエラー
	ErrDecode = errors.New("Shift-JISからの変換に失敗しました")

	// ErrEncode はShift-JISへの変換に失敗した場合のエラー
	ErrEncode = errors.New("Shift-JISへの変換に失敗しました")
)
