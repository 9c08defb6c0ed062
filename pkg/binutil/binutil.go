// Package binutil はバイト列を固定長に分割したり、任意のオフセットから
// リトルエンディアンの値を読み書きするためのヘルパーを提供します。
//
// 読み込み関数はオフセットが範囲外の場合に ErrOutOfRange を返します。
package binutil

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/shiroemons/go-etrian/pkg/sjis"
)

// Split は data[offset:] を length バイトずつのチャンクに分割します。
// 末尾に length に満たない端数が残った場合は切り捨てます。
// 厳密な検証が必要な呼び出し側は、事前に剰余を確認してください。
// 返されるチャンクは元のバッファのコピーです。
func Split(data []byte, length, offset int) [][]byte {
	if length <= 0 || offset < 0 || offset >= len(data) {
		return nil
	}
	rest := data[offset:]
	count := len(rest) / length
	chunks := make([][]byte, 0, count)
	for i := 0; i < count; i++ {
		chunk := make([]byte, length)
		copy(chunk, rest[i*length:(i+1)*length])
		chunks = append(chunks, chunk)
	}
	return chunks
}

// OverwriteRange は buf の offset 以降を src で上書きします
func OverwriteRange(buf, src []byte, offset int) error {
	if offset < 0 || offset+len(src) > len(buf) {
		return fmt.Errorf("%w: offset 0x%X + %d > %d", ErrOutOfRange, offset, len(src), len(buf))
	}
	copy(buf[offset:], src)
	return nil
}

// Slice は data[offset:offset+length] のコピーを返します
func Slice(data []byte, offset, length int) ([]byte, error) {
	if err := check(data, offset, length); err != nil {
		return nil, err
	}
	out := make([]byte, length)
	copy(out, data[offset:offset+length])
	return out, nil
}

func check(data []byte, offset, size int) error {
	if offset < 0 || size < 0 || offset+size > len(data) {
		return fmt.Errorf("%w: offset 0x%X size %d len %d", ErrOutOfRange, offset, size, len(data))
	}
	return nil
}

// U8 は offset の1バイトを読み込みます
func U8(data []byte, offset int) (uint8, error) {
	if err := check(data, offset, 1); err != nil {
		return 0, err
	}
	return data[offset], nil
}

// S8 は offset の1バイトを符号付きで読み込みます
func S8(data []byte, offset int) (int8, error) {
	v, err := U8(data, offset)
	return int8(v), err
}

// U16 は offset からリトルエンディアンのuint16を読み込みます
func U16(data []byte, offset int) (uint16, error) {
	if err := check(data, offset, 2); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(data[offset:]), nil
}

// S16 は offset からリトルエンディアンのint16を読み込みます
func S16(data []byte, offset int) (int16, error) {
	v, err := U16(data, offset)
	return int16(v), err
}

// U32 は offset からリトルエンディアンのuint32を読み込みます
func U32(data []byte, offset int) (uint32, error) {
	if err := check(data, offset, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(data[offset:]), nil
}

// S32 は offset からリトルエンディアンのint32を読み込みます
func S32(data []byte, offset int) (int32, error) {
	v, err := U32(data, offset)
	return int32(v), err
}

// U64 は offset からリトルエンディアンのuint64を読み込みます
func U64(data []byte, offset int) (uint64, error) {
	if err := check(data, offset, 8); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(data[offset:]), nil
}

// S64 は offset からリトルエンディアンのint64を読み込みます
func S64(data []byte, offset int) (int64, error) {
	v, err := U64(data, offset)
	return int64(v), err
}

// ASCII は offset から length バイトをそのまま文字列として読み込みます
func ASCII(data []byte, offset, length int) (string, error) {
	if err := check(data, offset, length); err != nil {
		return "", err
	}
	return string(data[offset : offset+length]), nil
}

// ASCIIFixed は固定長フィールドを読み込み、最初のヌル文字以降を切り捨てます
func ASCIIFixed(data []byte, offset, length int) (string, error) {
	if err := check(data, offset, length); err != nil {
		return "", err
	}
	field := data[offset : offset+length]
	if n := bytes.IndexByte(field, 0); n >= 0 {
		field = field[:n]
	}
	return string(field), nil
}

// ShiftJIS は offset から length バイトをShift-JISとしてデコードします
func ShiftJIS(data []byte, offset, length int) (string, error) {
	if err := check(data, offset, length); err != nil {
		return "", err
	}
	return sjis.Decode(data[offset : offset+length])
}

// ShiftJISFixed は固定長フィールドを読み込み、最初のヌル文字以降を切り捨ててから
// Shift-JISとしてデコードします
func ShiftJISFixed(data []byte, offset, length int) (string, error) {
	if err := check(data, offset, length); err != nil {
		return "", err
	}
	field := data[offset : offset+length]
	if n := bytes.IndexByte(field, 0); n >= 0 {
		field = field[:n]
	}
	return sjis.Decode(field)
}
