// Package fileutil はファイル操作のユーティリティ関数を提供します
package fileutil

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shiroemons/go-etrian/internal/etrian/interfaces"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// SaveToFileWithBOM はUTF-8 BOMありでファイルに保存します
func SaveToFileWithBOM(fs interfaces.FileSystem, outputPath string, content string) error {
	// 出力先ディレクトリを作成（存在しない場合）
	if err := fs.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("%w: %w", ErrCreateDirectory, err)
	}

	data := make([]byte, 0, len(utf8BOM)+len(content))
	data = append(data, utf8BOM...)
	data = append(data, content...)
	if err := fs.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteContent, err)
	}
	return nil
}

// GenerateOutputFilename は入力ファイル名から出力ファイル名を生成します。
// msg_item.mbm を mbm、yaml で書き出す場合は msg_item_mbm.yaml になります。
func GenerateOutputFilename(inputPath, kind, format string) string {
	// ファイル名の部分だけを取得（拡張子なし）
	baseName := filepath.Base(inputPath)
	baseName = strings.TrimSuffix(baseName, filepath.Ext(baseName))

	ext := "txt"
	if format == "yaml" {
		ext = "yaml"
	}
	return fmt.Sprintf("%s_%s.%s", baseName, kind, ext)
}
