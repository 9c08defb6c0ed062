package mbm

import (
	"strings"

	"github.com/shiroemons/go-etrian/pkg/sjis"
)

// TokenKind はトークンの種類
type TokenKind int

const (
	// TokenText は通常のテキスト
	TokenText TokenKind = iota
	// TokenControl は制御コード
	TokenControl
)

// Token はエントリを分割した単位
type Token struct {
	Kind     TokenKind
	Position int
	Raw      []byte
	Code     *ControlCode // TokenControl のときのみ
}

// UnknownCode は未知の制御コードの位置
type UnknownCode struct {
	Position int
	Type     byte
}

// TokenStream はエントリのトークン列
type TokenStream struct {
	Tokens  []Token
	Unknown []UnknownCode
}

// Tokenize はエントリのバイト列をテキストと制御コードに分割します。
// 2バイト単位で走査し、先頭バイトが制御コードの開始バイトであれば
// 制御コードとして読み込みます。未知のタイプは引数なしの2バイトとして
// 読み飛ばし、Unknown に記録します。入力以外の状態を持たない純粋関数です。
func Tokenize(data []byte) (*TokenStream, error) {
	stream := &TokenStream{}
	textStart := -1

	flushText := func(end int) {
		if textStart < 0 {
			return
		}
		raw := make([]byte, end-textStart)
		copy(raw, data[textStart:end])
		stream.Tokens = append(stream.Tokens, Token{Kind: TokenText, Position: textStart, Raw: raw})
		textStart = -1
	}

	pos := 0
	for pos < len(data) {
		if !IsMarker(data[pos]) {
			if textStart < 0 {
				textStart = pos
			}
			pos += 2
			continue
		}

		flushText(pos)
		code, err := parseControlCode(data, pos)
		if err != nil {
			return nil, err
		}
		end := min(pos+code.Length, len(data))
		raw := make([]byte, end-pos)
		copy(raw, data[pos:end])
		stream.Tokens = append(stream.Tokens, Token{Kind: TokenControl, Position: pos, Raw: raw, Code: &code})
		if !code.Known {
			stream.Unknown = append(stream.Unknown, UnknownCode{Position: pos, Type: code.Type})
		}
		pos += code.Length
	}
	flushText(min(pos, len(data)))

	return stream, nil
}

// ControlCodes は制御コードだけを順に返します
func (s *TokenStream) ControlCodes() []ControlCode {
	codes := make([]ControlCode, 0, len(s.Tokens))
	for _, t := range s.Tokens {
		if t.Kind == TokenControl {
			codes = append(codes, *t.Code)
		}
	}
	return codes
}

// Text は制御コードを取り除いたテキストを返します。改行コードは "\n" になります。
func (s *TokenStream) Text() (string, error) {
	var b strings.Builder
	for _, t := range s.Tokens {
		switch t.Kind {
		case TokenText:
			str, err := sjis.Decode(t.Raw)
			if err != nil {
				return "", err
			}
			b.WriteString(str)
		case TokenControl:
			if t.Code.Type == TypeLineBreak {
				b.WriteString("\n")
			}
		}
	}
	return b.String(), nil
}
