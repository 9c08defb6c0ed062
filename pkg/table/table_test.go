package table

import (
	"encoding/binary"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

type pair struct {
	A uint16
	B uint16
}

var pairDescriptor = Descriptor[pair]{
	Name:   "pair",
	Length: 4,
	Decode: func(data []byte) (pair, error) {
		return pair{
			A: binary.LittleEndian.Uint16(data[0:]),
			B: binary.LittleEndian.Uint16(data[2:]),
		}, nil
	},
}

func TestDecode_RecordRanges(t *testing.T) {
	for k := 0; k <= 5; k++ {
		data := make([]byte, k*pairDescriptor.Length)
		for i := 0; i < k; i++ {
			binary.LittleEndian.PutUint16(data[i*4:], uint16(i))
			binary.LittleEndian.PutUint16(data[i*4+2:], uint16(i*10))
		}

		records, err := Decode(data, pairDescriptor)
		if err != nil {
			t.Fatalf("k=%d: Decode() error = %v", k, err)
		}
		if len(records) != k {
			t.Fatalf("k=%d: got %d records", k, len(records))
		}
		for i, r := range records {
			if r.A != uint16(i) || r.B != uint16(i*10) {
				t.Errorf("k=%d: records[%d] = %+v", k, i, r)
			}
		}
	}
}

func TestDecode_SchemaMismatch(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5, 7, 9} {
		records, err := Decode(make([]byte, n), pairDescriptor)
		if !errors.Is(err, ErrSchemaMismatch) {
			t.Errorf("len=%d: error = %v, want ErrSchemaMismatch", n, err)
		}
		var mismatch *SchemaMismatchError
		if !errors.As(err, &mismatch) {
			t.Fatalf("len=%d: error is not *SchemaMismatchError", n)
		}
		if mismatch.Length != n || mismatch.RecordLength != 4 {
			t.Errorf("len=%d: mismatch = %+v", n, mismatch)
		}
		if records != nil {
			t.Errorf("len=%d: partial result returned: %v", n, records)
		}
	}
}

func TestDecode_DescriptorErrors(t *testing.T) {
	tests := []struct {
		name string
		desc Descriptor[pair]
		want error
	}{
		{
			name: "レコード長が0",
			desc: Descriptor[pair]{Name: "zero", Decode: pairDescriptor.Decode},
			want: ErrMissingDescriptor,
		},
		{
			name: "レコード長が負",
			desc: Descriptor[pair]{Name: "negative", Length: -4, Decode: pairDescriptor.Decode},
			want: ErrMissingDescriptor,
		},
		{
			name: "デコード関数なし",
			desc: Descriptor[pair]{Name: "nodecode", Length: 4},
			want: ErrUnsupportedRecordType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(make([]byte, 8), tt.desc)
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecode_MalformedRecordAborts(t *testing.T) {
	errBad := errors.New("bad record")
	desc := Descriptor[pair]{
		Name:   "strict",
		Length: 2,
		Decode: func(data []byte) (pair, error) {
			if data[0] == 0xFF {
				return pair{}, errBad
			}
			return pair{A: uint16(data[0])}, nil
		},
	}

	records, err := Decode([]byte{1, 0, 0xFF, 0, 3, 0}, desc)
	if records != nil {
		t.Errorf("partial result returned: %v", records)
	}
	if !errors.Is(err, ErrMalformedRecord) || !errors.Is(err, errBad) {
		t.Fatalf("Decode() error = %v", err)
	}
	var malformed *MalformedRecordError
	if !errors.As(err, &malformed) || malformed.Index != 1 {
		t.Errorf("MalformedRecordError = %+v", malformed)
	}
}

func TestDecode_ChunksAreCopies(t *testing.T) {
	var seen [][]byte
	desc := Descriptor[int]{
		Name:   "capture",
		Length: 2,
		Decode: func(data []byte) (int, error) {
			seen = append(seen, data)
			return 0, nil
		},
	}
	data := []byte{1, 2, 3, 4}
	if _, err := Decode(data, desc); err != nil {
		t.Fatal(err)
	}
	seen[0][0] = 0xFF
	if data[0] != 1 {
		t.Error("decode function received an alias of the source buffer")
	}
}

func TestDecodeRegion(t *testing.T) {
	// 4バイトのヘッダの後ろに2レコード、その後ろにゴミが続く
	data := []byte{
		0xAA, 0xAA, 0xAA, 0xAA,
		0x01, 0x00, 0x02, 0x00,
		0x03, 0x00, 0x04, 0x00,
		0xBB, 0xBB,
	}

	records, err := DecodeRegion(data, 2, 4, pairDescriptor)
	if err != nil {
		t.Fatalf("DecodeRegion() error = %v", err)
	}
	if len(records) != 2 || records[0].A != 1 || records[1].B != 4 {
		t.Errorf("DecodeRegion() = %+v", records)
	}

	// 範囲がバッファを超えると端数が残る
	if _, err := DecodeRegion(data, 3, 4, pairDescriptor); !errors.Is(err, ErrSchemaMismatch) {
		t.Errorf("DecodeRegion() overflow error = %v, want ErrSchemaMismatch", err)
	}

	records, err = DecodeRegion(data, 0, 4, pairDescriptor)
	if err != nil || len(records) != 0 {
		t.Errorf("DecodeRegion() count=0 = %v, %v", records, err)
	}

	if _, err := DecodeRegion(data, -1, 0, pairDescriptor); err == nil {
		t.Error("DecodeRegion() with negative count should fail")
	}
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pair.tbl")
	if err := os.WriteFile(path, []byte{1, 0, 2, 0, 3, 0, 4, 0}, 0644); err != nil {
		t.Fatal(err)
	}

	records, err := DecodeFile(path, pairDescriptor)
	if err != nil {
		t.Fatalf("DecodeFile() error = %v", err)
	}
	if len(records) != 2 {
		t.Errorf("DecodeFile() returned %d records", len(records))
	}

	_, err = DecodeFile(filepath.Join(dir, "missing.tbl"), pairDescriptor)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("DecodeFile() missing file error = %v, want fs.ErrNotExist", err)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	if err := Register(r, pairDescriptor); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := Register(r, Descriptor[pair]{Name: "broken"}); !errors.Is(err, ErrMissingDescriptor) {
		t.Errorf("Register() broken error = %v", err)
	}

	records, err := r.Decode("pair", []byte{5, 0, 6, 0})
	if err != nil {
		t.Fatalf("Registry.Decode() error = %v", err)
	}
	if got, ok := records[0].(pair); !ok || got.A != 5 || got.B != 6 {
		t.Errorf("Registry.Decode() = %#v", records)
	}

	if _, err := r.Decode("unknown", nil); !errors.Is(err, ErrMissingDescriptor) {
		t.Errorf("Registry.Decode() unknown error = %v", err)
	}

	if names := r.Names(); len(names) != 1 || names[0] != "pair" {
		t.Errorf("Names() = %v", names)
	}
}
