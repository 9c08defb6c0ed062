package save

import "errors"

var (
	// ErrInvalidLength はセーブデータやキャラクターデータの長さが足りない場合のエラー
	ErrInvalidLength = errors.New("データの長さが不正です")

	// ErrInvalidPadding は復号後のパディングが不正な場合のエラー
	ErrInvalidPadding = errors.New("パディングが不正です")
)
