package tbl

import "errors"

var (
	// ErrTruncatedHeader はエントリ数を読み込めない場合のエラー
	ErrTruncatedHeader = errors.New("TBLヘッダが途中で切れています")

	// ErrInvalidPointerWidth はポインタ幅が2でも4でもない場合のエラー
	ErrInvalidPointerWidth = errors.New("ポインタ幅が不正です")

	// ErrMissingNameTable は名前テーブルの合成に必要なファイルが指定されていない場合のエラー
	ErrMissingNameTable = errors.New("名前テーブルが足りません")
)
