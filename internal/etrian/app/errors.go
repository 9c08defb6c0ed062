package app

import "errors"

var (
	// ErrReadFile はファイルの読み込みに失敗した場合のエラー
	ErrReadFile = errors.New("ファイルの読み込みに失敗しました")

	// ErrSaveFile はファイルの保存に失敗した場合のエラー
	ErrSaveFile = errors.New("ファイルの保存に失敗しました")

	// ErrRender は出力の生成に失敗した場合のエラー
	ErrRender = errors.New("出力の生成に失敗しました")
)
