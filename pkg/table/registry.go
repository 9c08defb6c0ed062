package table

import (
	"fmt"
	"sort"
	"sync"
)

// AnyDecoder は型を消去したテーブルデコーダです
type AnyDecoder struct {
	Name   string
	Length int
	decode func(data []byte) ([]any, error)
}

// Decode はバッファをレコード列としてデコードします
func (a AnyDecoder) Decode(data []byte) ([]any, error) {
	return a.decode(data)
}

// Erase は Descriptor を AnyDecoder に変換します
func Erase[T any](d Descriptor[T]) AnyDecoder {
	return AnyDecoder{
		Name:   d.Name,
		Length: d.Length,
		decode: func(data []byte) ([]any, error) {
			records, err := Decode(data, d)
			if err != nil {
				return nil, err
			}
			out := make([]any, len(records))
			for i, r := range records {
				out[i] = r
			}
			return out, nil
		},
	}
}

// Registry はレコード名からデコーダを引くための登録簿です。
// コマンドラインのようにレコード型を実行時に選ぶ場合に使います。
type Registry struct {
	mu       sync.RWMutex
	decoders map[string]AnyDecoder
}

// NewRegistry は空のRegistryを作成します
func NewRegistry() *Registry {
	return &Registry{decoders: make(map[string]AnyDecoder)}
}

// Register は Descriptor を名前で登録します。同名の登録は上書きされます。
func Register[T any](r *Registry, d Descriptor[T]) error {
	if err := d.validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decoders[d.Name] = Erase(d)
	return nil
}

// Lookup は名前に対応するデコーダを返します
func (r *Registry) Lookup(name string) (AnyDecoder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.decoders[name]
	if !ok {
		return AnyDecoder{}, fmt.Errorf("%w: %s", ErrMissingDescriptor, name)
	}
	return d, nil
}

// Decode は名前で選んだデコーダでバッファをデコードします
func (r *Registry) Decode(name string, data []byte) ([]any, error) {
	d, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return d.Decode(data)
}

// Names は登録済みの名前をソートして返します
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.decoders))
	for name := range r.decoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
