// Package sjis はゲーム内テキストで使われるShift-JISの変換ヘルパーを提供します
package sjis

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Decode はShift-JISのバイト列をUTF-8文字列に変換します
func Decode(data []byte) (string, error) {
	ret, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), japanese.ShiftJIS.NewDecoder()))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return string(ret), nil
}

// Encode はUTF-8文字列をShift-JISのバイト列に変換します
func Encode(str string) ([]byte, error) {
	var buf bytes.Buffer
	w := transform.NewWriter(&buf, japanese.ShiftJIS.NewEncoder())
	if _, err := io.WriteString(w, str); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return buf.Bytes(), nil
}

// Narrow は全角文字を半角に変換します（全角英数字→ASCIIなど）
func Narrow(str string) string {
	return width.Narrow.String(str)
}

// NarrowRune は1文字を半角に変換します
func NarrowRune(r rune) rune {
	p := width.LookupRune(r)
	if n := p.Narrow(); n != 0 {
		return n
	}
	return r
}

// Widen は半角文字を全角に変換します
func Widen(str string) string {
	return width.Widen.String(str)
}

// NormalizeKC はNFKC正規化を行います
func NormalizeKC(str string) string {
	return norm.NFKC.String(str)
}

// DecodeTrimmed はゼロバイトを取り除いてからデコードし、半角に変換します。
// セーブデータの名前欄のように全角で固定長に格納された文字列向けです。
func DecodeTrimmed(data []byte) (string, error) {
	filtered := make([]byte, 0, len(data))
	for _, b := range data {
		if b != 0 {
			filtered = append(filtered, b)
		}
	}
	str, err := Decode(filtered)
	if err != nil {
		return "", err
	}
	return Narrow(str), nil
}

// EncodeFullwidth は文字列を全角に変換してShift-JISにエンコードし、
// maxChars*2 バイトに切り詰めるかゼロで埋めます。
func EncodeFullwidth(str string, maxChars int) ([]byte, error) {
	encoded, err := Encode(Widen(str))
	if err != nil {
		return nil, err
	}
	size := maxChars * 2
	out := make([]byte, size)
	copy(out, encoded)
	return out, nil
}
