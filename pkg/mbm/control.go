package mbm

import (
	"encoding/binary"
	"fmt"

	"github.com/shiroemons/go-etrian/pkg/sjis"
)

// 制御コードの開始バイト
const (
	MarkerControl    = 0x80
	MarkerControlAlt = 0xF8
)

// 引数の形が特殊な制御コードのタイプ
const (
	TypeLineBreak = 0x01 // 改行
	TypePageBreak = 0x02 // ページ送り
	TypeColor     = 0x04 // 文字色
	TypeSetTelop  = 0x12 // テロップ即時表示（Shift-JIS文字列引数）
	TypeVoiceCall = 0x13 // ボイス呼び出し（EOU, EO2U）
	TypeVoiceName = 0x1B // ボイス呼び出し（EO5, EON、ASCII文字列引数）
)

// shortArgumentsByType はタイプごとの16ビット引数の数
var shortArgumentsByType = map[byte]int{
	TypeLineBreak: 0,
	TypePageBreak: 0,
	0x03:          0,
	TypeColor:     1,
	0x05:          1,
	0x06:          1,
	0x07:          1,
	0x08:          1,
	0x09:          0,
	0x0A:          1,
	0x0B:          1,
	0x0C:          1,
	0x0D:          0,
	0x0E:          1,
	0x0F:          1,
	0x10:          1,
	0x11:          1,
	0x14:          0,
	0x15:          1,
	0x16:          2,
	0x17:          0,
	0x18:          0,
	0x19:          1,
	0x1A:          1,
	0x1C:          1,
}

// ShortArgumentCount はタイプの16ビット引数の数を返します。
// 表にないタイプの場合は ok が false になります。
func ShortArgumentCount(typ byte) (n int, ok bool) {
	n, ok = shortArgumentsByType[typ]
	return n, ok
}

// NumericArgument は制御コードの数値引数
type NumericArgument struct {
	Value    int16
	Position int // エントリ先頭からのオフセット
}

// ControlCode はテキスト中に埋め込まれた制御コード
type ControlCode struct {
	Marker         byte
	Type           byte
	Position       int  // エントリ先頭からのオフセット
	Length         int  // 引数を含むバイト数
	Known          bool // タイプが既知かどうか
	ShortArguments []NumericArgument
	IntArguments   []NumericArgument
	StringArgument string
}

// IsMarker は b が制御コードの開始バイトかどうかを返します
func IsMarker(b byte) bool {
	return b == MarkerControl || b == MarkerControlAlt
}

// parseControlCode は data[pos] から始まる制御コードを1つ読み込みます
func parseControlCode(data []byte, pos int) (ControlCode, error) {
	if pos+2 > len(data) {
		return ControlCode{}, malformed(pos, "type byte missing")
	}
	code := ControlCode{
		Marker:   data[pos],
		Type:     data[pos+1],
		Position: pos,
		Known:    true,
	}

	switch code.Type {
	case TypeVoiceCall:
		// 4バイト境界のスロットに16ビット値が2つ
		if pos+8 > len(data) {
			return ControlCode{}, malformed(pos, "voice call arguments truncated")
		}
		code.IntArguments = []NumericArgument{
			{Value: int16(binary.LittleEndian.Uint16(data[pos+2:])), Position: pos + 2},
			{Value: int16(binary.LittleEndian.Uint16(data[pos+6:])), Position: pos + 6},
		}
		code.Length = 8

	case TypeSetTelop:
		// 0x0000 で終わるShift-JIS文字列
		k := pos + 2
		var raw []byte
		for {
			if k+2 > len(data) {
				return ControlCode{}, malformed(pos, "telop string unterminated")
			}
			if binary.LittleEndian.Uint16(data[k:]) == 0 {
				break
			}
			raw = append(raw, data[k], data[k+1])
			k += 2
		}
		str, err := sjis.Decode(raw)
		if err != nil {
			return ControlCode{}, fmt.Errorf("%w: position 0x%X: %w", ErrMalformedControlCode, pos, err)
		}
		code.StringArgument = sjis.NormalizeKC(str)
		code.Length = k + 2 - pos

	case TypeVoiceName:
		// ヌル終端のASCII文字列。終端の次のバイトを偶数オフセットに切り上げた位置で
		// 制御コードが終わり、そこから次のトークンが始まる。
		// 終端と揃え用の0x00の後ろに追加の引数はない。
		k := pos + 2
		var raw []byte
		for {
			if k >= len(data) {
				return ControlCode{}, malformed(pos, "voice name unterminated")
			}
			if data[k] == 0 {
				break
			}
			raw = append(raw, data[k])
			k++
		}
		end := k + 1
		if end%2 == 1 {
			end++
		}
		code.StringArgument = sjis.NormalizeKC(string(raw))
		code.Length = end - pos

	default:
		n, ok := shortArgumentsByType[code.Type]
		if !ok {
			code.Known = false
			code.Length = 2
			return code, nil
		}
		if pos+2+2*n > len(data) {
			return ControlCode{}, malformed(pos, fmt.Sprintf("type 0x%02X expects %d arguments", code.Type, n))
		}
		for i := 0; i < n; i++ {
			p := pos + 2*(i+1)
			code.ShortArguments = append(code.ShortArguments, NumericArgument{
				Value:    int16(binary.LittleEndian.Uint16(data[p:])),
				Position: p,
			})
		}
		code.Length = 2 * (n + 1)
	}

	return code, nil
}

func malformed(pos int, reason string) error {
	return fmt.Errorf("%w: position 0x%X: %s", ErrMalformedControlCode, pos, reason)
}
