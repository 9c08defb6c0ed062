// Package tbl はスキル名などの文字列テーブル（.tbl）を読み込みます。
//
// 先頭にエントリ数、続いてエントリ数分のポインタ、その後ろにヌル終端の
// Shift-JIS文字列がファイル順に並びます。ポインタは辿らずに読み飛ばします。
package tbl

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shiroemons/go-etrian/pkg/sjis"
)

// PointerWidth はエントリ数とポインタのバイト数
type PointerWidth int

const (
	// ShortPointers は16ビットのエントリ数とポインタ
	ShortPointers PointerWidth = 2
	// LongPointers は32ビットのエントリ数とポインタ
	LongPointers PointerWidth = 4
)

// Remap は1文字ごとの変換
type Remap func(rune) rune

type options struct {
	width PointerWidth
	remap Remap
}

// Option は読み込みのオプション
type Option func(*options)

// WithPointerWidth はポインタ幅を指定します。既定は ShortPointers です。
func WithPointerWidth(w PointerWidth) Option {
	return func(o *options) {
		o.width = w
	}
}

// WithLongPointers は32ビットのポインタを使うテーブルとして読み込みます
func WithLongPointers(long bool) Option {
	return func(o *options) {
		if long {
			o.width = LongPointers
		} else {
			o.width = ShortPointers
		}
	}
}

// WithRemap は文字の変換を指定します。既定は全角英数字を半角にする sjis.NarrowRune です。
// nil を渡すと変換しません。
func WithRemap(fn Remap) Option {
	return func(o *options) {
		o.remap = fn
	}
}

// Table は文字列テーブル
type Table struct {
	Width   PointerWidth
	Count   uint32 // ヘッダのエントリ数
	Entries []string
}

// Open はファイルを読み込んで解析します
func Open(path string, opts ...Option) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t, err := Parse(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Read は r の終端までを読み込んで解析します
func Read(r io.Reader, opts ...Option) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data, opts...)
}

// Parse はメモリ上のバイト列を解析します。
// 終端のない末尾の文字列はエントリに含めません。
func Parse(data []byte, opts ...Option) (*Table, error) {
	o := &options{width: ShortPointers, remap: sjis.NarrowRune}
	for _, opt := range opts {
		opt(o)
	}

	t := &Table{Width: o.width}
	switch o.width {
	case ShortPointers:
		if len(data) < 2 {
			return nil, fmt.Errorf("%w: %d bytes", ErrTruncatedHeader, len(data))
		}
		t.Count = uint32(binary.LittleEndian.Uint16(data))
	case LongPointers:
		if len(data) < 4 {
			return nil, fmt.Errorf("%w: %d bytes", ErrTruncatedHeader, len(data))
		}
		t.Count = binary.LittleEndian.Uint32(data)
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidPointerWidth, o.width)
	}

	start := uint64(o.width) + uint64(t.Count)*uint64(o.width)
	if start >= uint64(len(data)) {
		return t, nil
	}

	rest := data[start:]
	for {
		end := bytes.IndexByte(rest, 0)
		if end < 0 {
			break
		}
		str, err := sjis.Decode(rest[:end])
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", len(t.Entries), err)
		}
		if o.remap != nil {
			str = strings.Map(o.remap, str)
		}
		t.Entries = append(t.Entries, str)
		rest = rest[end+1:]
	}

	return t, nil
}

// Len はエントリ数を返します
func (t *Table) Len() int {
	return len(t.Entries)
}

// Get は i 番目のエントリを返します
func (t *Table) Get(i int) (string, bool) {
	if i < 0 || i >= len(t.Entries) {
		return "", false
	}
	return t.Entries[i], true
}
