package binutil

import (
	"bytes"
	"errors"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		length int
		offset int
		want   [][]byte
	}{
		{
			name:   "ちょうど割り切れる",
			data:   []byte{1, 2, 3, 4, 5, 6},
			length: 2,
			want:   [][]byte{{1, 2}, {3, 4}, {5, 6}},
		},
		{
			name:   "端数は切り捨て",
			data:   []byte{1, 2, 3, 4, 5},
			length: 2,
			want:   [][]byte{{1, 2}, {3, 4}},
		},
		{
			name:   "オフセット指定",
			data:   []byte{0xFF, 1, 2, 3, 4},
			length: 2,
			offset: 1,
			want:   [][]byte{{1, 2}, {3, 4}},
		},
		{
			name:   "長さ0",
			data:   []byte{1, 2},
			length: 0,
			want:   nil,
		},
		{
			name:   "空データ",
			data:   []byte{},
			length: 4,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.data, tt.length, tt.offset)
			if len(got) != len(tt.want) {
				t.Fatalf("Split() returned %d chunks, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if !bytes.Equal(got[i], tt.want[i]) {
					t.Errorf("chunk[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSplit_ReturnsCopies(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	chunks := Split(data, 2, 0)
	chunks[0][0] = 0xFF
	if data[0] != 1 {
		t.Error("Split() chunk aliases the source buffer")
	}
}

func TestOverwriteRange(t *testing.T) {
	buf := make([]byte, 8)
	want := []byte{0, 0, 0, 0, 0x01, 0x02, 0, 0}

	if err := OverwriteRange(buf, []byte{0x01, 0x02}, 4); err != nil {
		t.Fatalf("OverwriteRange() error = %v", err)
	}
	if !bytes.Equal(buf, want) {
		t.Errorf("OverwriteRange() = %v, want %v", buf, want)
	}

	// 同じ引数で2回適用しても結果は変わらない
	if err := OverwriteRange(buf, []byte{0x01, 0x02}, 4); err != nil {
		t.Fatalf("OverwriteRange() error = %v", err)
	}
	if !bytes.Equal(buf, want) {
		t.Errorf("second OverwriteRange() = %v, want %v", buf, want)
	}
}

func TestOverwriteRange_OutOfRange(t *testing.T) {
	buf := make([]byte, 4)
	err := OverwriteRange(buf, []byte{1, 2}, 3)
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("OverwriteRange() error = %v, want ErrOutOfRange", err)
	}
	if !bytes.Equal(buf, make([]byte, 4)) {
		t.Errorf("buffer modified on failure: %v", buf)
	}
}

func TestIntegerReaders(t *testing.T) {
	data := []byte{0xFE, 0xFF, 0xFF, 0xFF, 0x78, 0x56, 0x34, 0x12, 0x01, 0x00, 0x00, 0x00}

	if v, err := U8(data, 0); err != nil || v != 0xFE {
		t.Errorf("U8() = %v, %v", v, err)
	}
	if v, err := S8(data, 0); err != nil || v != -2 {
		t.Errorf("S8() = %v, %v", v, err)
	}
	if v, err := U16(data, 4); err != nil || v != 0x5678 {
		t.Errorf("U16() = 0x%X, %v", v, err)
	}
	if v, err := S16(data, 0); err != nil || v != -2 {
		t.Errorf("S16() = %v, %v", v, err)
	}
	if v, err := U32(data, 4); err != nil || v != 0x12345678 {
		t.Errorf("U32() = 0x%X, %v", v, err)
	}
	if v, err := S32(data, 0); err != nil || v != -2 {
		t.Errorf("S32() = %v, %v", v, err)
	}
	if v, err := U64(data, 4); err != nil || v != 0x0000000112345678 {
		t.Errorf("U64() = 0x%X, %v", v, err)
	}
	if v, err := S64(data, 0); err != nil || v != 0x12345678FFFFFFFE {
		t.Errorf("S64() = 0x%X, %v", v, err)
	}
	if _, err := U32(data, 10); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("U32() out of range error = %v", err)
	}
	if _, err := U8(data, -1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("U8() negative offset error = %v", err)
	}
}

func TestStringReaders(t *testing.T) {
	data := append([]byte("en001a.bam"), make([]byte, 6)...)

	got, err := ASCIIFixed(data, 0, 16)
	if err != nil || got != "en001a.bam" {
		t.Errorf("ASCIIFixed() = %q, %v", got, err)
	}
	got, err = ASCII(data, 0, 5)
	if err != nil || got != "en001" {
		t.Errorf("ASCII() = %q, %v", got, err)
	}

	sjisData := []byte{0x82, 0xA0, 0x82, 0xA2, 0x00, 0x00}
	got, err = ShiftJISFixed(sjisData, 0, 6)
	if err != nil || got != "あい" {
		t.Errorf("ShiftJISFixed() = %q, %v", got, err)
	}
	got, err = ShiftJIS(sjisData, 2, 2)
	if err != nil || got != "い" {
		t.Errorf("ShiftJIS() = %q, %v", got, err)
	}
}

func TestFields(t *testing.T) {
	data := []byte{0x01, 0x00, 0x02, 0x00, 0x03, 0x00, 0x00, 0x00}
	f := NewFields(data)

	if got := f.U16s(0, 2, 2); got[0] != 1 || got[1] != 2 {
		t.Errorf("U16s() = %v", got)
	}
	if got := f.U32(4); got != 3 {
		t.Errorf("U32() = %d", got)
	}
	if f.Err() != nil {
		t.Fatalf("Err() = %v", f.Err())
	}

	// 範囲外の読み込みでエラーが保持される
	_ = f.U32(6)
	_ = f.U8(0)
	if !errors.Is(f.Err(), ErrOutOfRange) {
		t.Errorf("Err() = %v, want ErrOutOfRange", f.Err())
	}
	if got := f.U8(0); got != 0 {
		t.Errorf("U8() after error = %d, want 0", got)
	}
}
