package binutil

// Fields は1レコード分のバイト列からフィールドを読み出します。
// 最初に発生したエラーを保持し、以降の読み込みはゼロ値を返します。
// すべて読み終えてから Err を一度だけ確認してください。
type Fields struct {
	data []byte
	err  error
}

// NewFields は新しいFieldsを作成します
func NewFields(data []byte) *Fields {
	return &Fields{data: data}
}

// Err は最初に発生したエラーを返します
func (f *Fields) Err() error {
	return f.err
}

// Len はレコードの長さを返します
func (f *Fields) Len() int {
	return len(f.data)
}

func (f *Fields) keep(err error) bool {
	if f.err != nil {
		return false
	}
	if err != nil {
		f.err = err
		return false
	}
	return true
}

// U8 は offset の1バイトを読み込みます
func (f *Fields) U8(offset int) uint8 {
	v, err := U8(f.data, offset)
	if !f.keep(err) {
		return 0
	}
	return v
}

// S8 は offset の1バイトを符号付きで読み込みます
func (f *Fields) S8(offset int) int8 {
	v, err := S8(f.data, offset)
	if !f.keep(err) {
		return 0
	}
	return v
}

// U16 は offset のuint16を読み込みます
func (f *Fields) U16(offset int) uint16 {
	v, err := U16(f.data, offset)
	if !f.keep(err) {
		return 0
	}
	return v
}

// S16 は offset のint16を読み込みます
func (f *Fields) S16(offset int) int16 {
	v, err := S16(f.data, offset)
	if !f.keep(err) {
		return 0
	}
	return v
}

// U32 は offset のuint32を読み込みます
func (f *Fields) U32(offset int) uint32 {
	v, err := U32(f.data, offset)
	if !f.keep(err) {
		return 0
	}
	return v
}

// S32 は offset のint32を読み込みます
func (f *Fields) S32(offset int) int32 {
	v, err := S32(f.data, offset)
	if !f.keep(err) {
		return 0
	}
	return v
}

// Bytes は offset から length バイトのコピーを返します
func (f *Fields) Bytes(offset, length int) []byte {
	v, err := Slice(f.data, offset, length)
	if !f.keep(err) {
		return nil
	}
	return v
}

// ASCIIFixed はヌル終端の固定長ASCIIフィールドを読み込みます
func (f *Fields) ASCIIFixed(offset, length int) string {
	v, err := ASCIIFixed(f.data, offset, length)
	if !f.keep(err) {
		return ""
	}
	return v
}

// U16s は offset から count 個のuint16を stride 間隔で読み込みます
func (f *Fields) U16s(offset, count, stride int) []uint16 {
	out := make([]uint16, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, f.U16(offset+i*stride))
	}
	return out
}

// U32s は offset から count 個のuint32を stride 間隔で読み込みます
func (f *Fields) U32s(offset, count, stride int) []uint32 {
	out := make([]uint32, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, f.U32(offset+i*stride))
	}
	return out
}
