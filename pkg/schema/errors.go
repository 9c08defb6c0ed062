package schema

import "errors"

var (
	// ErrMissingModelExtension はモデルファイル名に .bam が含まれない場合のエラー
	ErrMissingModelExtension = errors.New("モデルファイル名に.bamが含まれていません")

	// ErrInvalidCoordinate は座標がフロアの範囲外の場合のエラー
	ErrInvalidCoordinate = errors.New("座標がフロアの範囲外です")
)
