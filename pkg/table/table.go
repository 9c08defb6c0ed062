// Package table は固定長レコードが並んだテーブルファイルをデコードします。
//
// レコードの型ごとに Descriptor（レコード長とデコード関数）を宣言し、
// Decode に渡すとバッファ全体をレコードのスライスに変換します。
//
//	var UseItem = table.Descriptor[schema.UseItem]{
//	    Name:   "useitem",
//	    Length: 0x10,
//	    Decode: schema.DecodeUseItem,
//	}
//	items, err := table.DecodeFile("useitemtable.tbl", UseItem)
package table

import (
	"fmt"
	"os"

	"github.com/shiroemons/go-etrian/pkg/binutil"
)

// DecodeFunc は1レコード分のバイト列を T に変換します。
// 渡されるバイト列は常に Descriptor.Length バイトのコピーです。
type DecodeFunc[T any] func(data []byte) (T, error)

// Descriptor はレコード型の固定長とデコード関数の組です
type Descriptor[T any] struct {
	// Name はエラーメッセージに使うレコード名
	Name string
	// Length は1レコードのバイト長
	Length int
	// Decode は1レコードをデコードする関数
	Decode DecodeFunc[T]
}

func (d Descriptor[T]) validate() error {
	if d.Length <= 0 {
		return fmt.Errorf("%w: %s (length %d)", ErrMissingDescriptor, d.Name, d.Length)
	}
	if d.Decode == nil {
		return fmt.Errorf("%w: %s", ErrUnsupportedRecordType, d.Name)
	}
	return nil
}

// Decode はバッファ全体を d のレコード列としてデコードします。
// バッファ長がレコード長で割り切れない場合は SchemaMismatchError を返します。
// いずれかのレコードのデコードに失敗した場合は MalformedRecordError を返し、
// 途中までの結果は返しません。
func Decode[T any](data []byte, d Descriptor[T]) ([]T, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	if len(data)%d.Length != 0 {
		return nil, &SchemaMismatchError{
			Record:       d.Name,
			Length:       len(data),
			RecordLength: d.Length,
		}
	}

	chunks := binutil.Split(data, d.Length, 0)
	records := make([]T, 0, len(chunks))
	for i, chunk := range chunks {
		record, err := d.Decode(chunk)
		if err != nil {
			return nil, &MalformedRecordError{Record: d.Name, Index: i, Err: err}
		}
		records = append(records, record)
	}
	return records, nil
}

// DecodeFile はファイル全体を読み込んでデコードします。
// ファイルの読み込みエラーはそのまま返します。
func DecodeFile[T any](path string, d Descriptor[T]) ([]T, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	records, err := Decode(data, d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// DecodeRegion は data の offset から count 個のレコードをデコードします。
// ヘッダの後ろに埋め込まれたテーブルのように、大きなコンテナの一部を
// 読むときに使います。範囲がバッファを超える場合は、範囲内に収まる
// 部分だけを対象とし、その長さがレコード長で割り切れなければ
// SchemaMismatchError を返します。
func DecodeRegion[T any](data []byte, count, offset int, d Descriptor[T]) ([]T, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	if count < 0 || offset < 0 {
		return nil, fmt.Errorf("%w: count %d offset 0x%X", binutil.ErrOutOfRange, count, offset)
	}
	if offset >= len(data) {
		return Decode([]byte{}, d)
	}
	end := offset + count*d.Length
	if end > len(data) {
		end = len(data)
	}
	return Decode(data[offset:end], d)
}
