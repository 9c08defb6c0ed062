// Package mbm は世界樹の迷宮シリーズのテキストアーカイブ（.mbm）を読み込みます。
//
// MBMは固定長ヘッダ、エントリテーブル、文字列領域の3つで構成されます。
// ヘッダのエントリ数は実際のファイルと一致しないことが多いため使わず、
// 最初の非ヌルエントリが指す文字列の位置をエントリテーブルの終端とみなします。
//
//	archive, err := mbm.Open("msg_item.mbm", mbm.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	for i, entry := range archive.Entries {
//	    if entry == nil {
//	        continue // 空きスロットも位置を保持する
//	    }
//	    text, _ := entry.Text()
//	    fmt.Println(i, text)
//	}
package mbm

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

const (
	// HeaderSize はヘッダのバイト数
	HeaderSize = 0x20
	// EntryRowSize はエントリテーブル1行のバイト数
	EntryRowSize = 0x10
	// TerminatorSize は各エントリ末尾の終端（0xFFFF）のバイト数
	TerminatorSize = 2
)

// Identifier はヘッダの識別子
var Identifier = [4]byte{'M', 'S', 'G', '2'}

// Version はヘッダのバージョン値
const Version uint32 = 0x00010000

// Header はMBMのヘッダ
type Header struct {
	Reserved0         uint32 // 常に0
	Identifier        [4]byte
	Version           uint32
	FileSize          uint32 // ヌルエントリを除いたファイルサイズ
	EntryCount        uint32 // 信用できない
	EntryTablePointer uint32
	Reserved1         uint32
	Reserved2         uint32
}

// Valid はヘッダの識別子とバージョンが想定どおりかを返します。
// Read はこの結果に関わらず解析を続けます。
func (h Header) Valid() bool {
	return h.Reserved0 == 0 && h.Identifier == Identifier && h.Version == Version
}

type entryRow struct {
	Index         int32
	Length        uint32
	StringPointer uint32
	Reserved      int32
}

func (r entryRow) isNull() bool {
	return r.Length == 0 || r.StringPointer == 0
}

// Entry はテキストアーカイブの1エントリ
type Entry struct {
	Index        int32
	Data         []byte // 終端を除いたバイト列
	ControlCodes []ControlCode
	tokens       *TokenStream
}

// Text は制御コードを取り除いたテキストを返します
func (e *Entry) Text() (string, error) {
	stream, err := e.stream()
	if err != nil {
		return "", err
	}
	return stream.Text()
}

// Tokens はエントリのトークン列を返します
func (e *Entry) Tokens() ([]Token, error) {
	stream, err := e.stream()
	if err != nil {
		return nil, err
	}
	return stream.Tokens, nil
}

// stream は読み込み時のトークン列を返します。
// 呼び出し側が組み立てた Entry の場合は Data から作り直します。
func (e *Entry) stream() (*TokenStream, error) {
	if e.tokens != nil {
		return e.tokens, nil
	}
	return Tokenize(e.Data)
}

// UnknownCodeWarning は未知の制御コードを読み飛ばしたことを表します
type UnknownCodeWarning struct {
	Slot     int   // エントリテーブル上の位置
	Index    int32 // エントリのインデックス
	Position int   // エントリ先頭からのオフセット
	Type     byte
}

// Archive はテキストアーカイブ全体
type Archive struct {
	Header Header

	// Entries はエントリテーブルの順に並んだエントリ。空きスロットは nil
	Entries []*Entry

	// NullEntriesWriteIndex は空きスロットにもインデックスが書かれているかどうか。
	// EO5とEONの形式で true になります。
	NullEntriesWriteIndex bool

	// EntryTableEnd は推定したエントリテーブルの終端
	EntryTableEnd int64

	// Warnings は読み飛ばした未知の制御コード
	Warnings []UnknownCodeWarning
}

// Entry はインデックスが index のエントリを返します
func (a *Archive) Entry(index int32) (*Entry, bool) {
	for _, e := range a.Entries {
		if e != nil && e.Index == index {
			return e, true
		}
	}
	return nil, false
}

// Open はファイルを読み込んで解析します
func Open(path string, opts ...Option) (*Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	archive, err := Read(bytes.NewReader(data), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return archive, nil
}

// Parse はメモリ上のバイト列を解析します
func Parse(data []byte, opts ...Option) (*Archive, error) {
	return Read(bytes.NewReader(data), opts...)
}

// Read は r からテキストアーカイブを読み込みます
func Read(r io.ReadSeeker, opts ...Option) (*Archive, error) {
	o := newOptions(opts)

	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	a := &Archive{EntryTableEnd: math.MaxInt64}
	if err := binary.Read(r, binary.LittleEndian, &a.Header); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTruncatedHeader, err)
	}
	if !a.Header.Valid() {
		o.logger.Printf("ヘッダが想定と異なります (identifier %q, version 0x%08X)\n", a.Header.Identifier[:], a.Header.Version)
	}

	pos := int64(a.Header.EntryTablePointer)
	if _, err := r.Seek(pos, io.SeekStart); err != nil {
		return nil, err
	}

	resolved := false
	for pos < a.EntryTableEnd {
		var row entryRow
		if err := binary.Read(r, binary.LittleEndian, &row); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				if !resolved {
					o.logger.Printf("空のMBMです\n")
					a.Entries = nil
					a.NullEntriesWriteIndex = false
				}
				break
			}
			return nil, err
		}
		pos += EntryRowSize

		if row.isNull() {
			a.Entries = append(a.Entries, nil)
			if row.Index != 0 {
				a.NullEntriesWriteIndex = true
			}
			continue
		}

		if !resolved {
			resolved = true
			a.EntryTableEnd = int64(row.StringPointer)
		}

		entry, err := readEntry(r, row, size)
		if err != nil {
			return nil, err
		}
		slot := len(a.Entries)
		for _, u := range entry.tokens.Unknown {
			o.logger.Printf("  未知の制御コード 0x%02X (entry %d, position 0x%X)\n", u.Type, entry.Index, u.Position)
			a.Warnings = append(a.Warnings, UnknownCodeWarning{
				Slot:     slot,
				Index:    entry.Index,
				Position: u.Position,
				Type:     u.Type,
			})
		}
		a.Entries = append(a.Entries, entry)

		if _, err := r.Seek(pos, io.SeekStart); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// readEntry は文字列領域からエントリを読み込みます。
// 文字列がファイルの末尾 size を越える場合は読み込む前にエラーを返します。
func readEntry(r io.ReadSeeker, row entryRow, size int64) (*Entry, error) {
	if end := int64(row.StringPointer) + int64(row.Length); end > size {
		return nil, fmt.Errorf("%w: entry %d at 0x%X ends at 0x%X beyond file size 0x%X", ErrTruncatedEntry, row.Index, row.StringPointer, end, size)
	}
	if _, err := r.Seek(int64(row.StringPointer), io.SeekStart); err != nil {
		return nil, err
	}
	raw := make([]byte, row.Length)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, fmt.Errorf("%w: entry %d at 0x%X: %w", ErrTruncatedEntry, row.Index, row.StringPointer, err)
	}
	data := raw[:max(len(raw)-TerminatorSize, 0)]

	tokens, err := Tokenize(data)
	if err != nil {
		return nil, fmt.Errorf("entry %d: %w", row.Index, err)
	}
	return &Entry{
		Index:        row.Index,
		Data:         data,
		ControlCodes: tokens.ControlCodes(),
		tokens:       tokens,
	}, nil
}
