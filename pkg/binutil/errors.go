package binutil

import "errors"

// ErrOutOfRange はオフセットがバッファの範囲外の場合のエラー
var ErrOutOfRange = errors.New("バッファの範囲外です")
