// Package interfaces はetrianコマンドで使用するインターフェースを定義します
package interfaces

// FileSystem はファイルシステム操作のインターフェース
type FileSystem interface {
	FileExists(filename string) bool
	ReadFile(filename string) ([]byte, error)
	WriteFile(filename string, data []byte, perm uint32) error
	MkdirAll(path string, perm uint32) error
}

// Logger はログ出力のインターフェース
type Logger interface {
	Printf(format string, a ...any)
}
