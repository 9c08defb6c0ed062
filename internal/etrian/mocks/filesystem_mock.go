// Package mocks はテスト用のモック実装を提供します
package mocks

import (
	"errors"
)

// MockFileSystem はテスト用のファイルシステムモック
type MockFileSystem struct {
	Files map[string][]byte
	Dirs  map[string]bool

	// ReadError と WriteError はそれぞれ読み込みと書き込みで返すエラー
	ReadError  error
	WriteError error
}

// NewMockFileSystem は新しいMockFileSystemを作成します
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		Files: make(map[string][]byte),
		Dirs:  make(map[string]bool),
	}
}

// FileExists はファイルが存在するか確認します
func (fs *MockFileSystem) FileExists(filename string) bool {
	_, exists := fs.Files[filename]
	return exists
}

// ReadFile はファイルを読み込みます
func (fs *MockFileSystem) ReadFile(filename string) ([]byte, error) {
	if fs.ReadError != nil {
		return nil, fs.ReadError
	}
	data, exists := fs.Files[filename]
	if !exists {
		return nil, errors.New("file not found")
	}
	return data, nil
}

// WriteFile はファイルを書き込みます
func (fs *MockFileSystem) WriteFile(filename string, data []byte, perm uint32) error {
	if fs.WriteError != nil {
		return fs.WriteError
	}
	fs.Files[filename] = data
	return nil
}

// MkdirAll はディレクトリを作成します
func (fs *MockFileSystem) MkdirAll(path string, perm uint32) error {
	if fs.WriteError != nil {
		return fs.WriteError
	}
	fs.Dirs[path] = true
	return nil
}
