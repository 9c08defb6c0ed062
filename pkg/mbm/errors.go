package mbm

import "errors"

var (
	// ErrTruncatedHeader はヘッダが途中で切れている場合のエラー
	ErrTruncatedHeader = errors.New("MBMヘッダが途中で切れています")

	// ErrTruncatedEntry はエントリの文字列が途中で切れている場合のエラー
	ErrTruncatedEntry = errors.New("MBMエントリが途中で切れています")

	// ErrMalformedControlCode は制御コードの引数が途中で切れている場合のエラー
	ErrMalformedControlCode = errors.New("制御コードが不正です")
)
