package save

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/shiroemons/go-etrian/pkg/binutil"
	"github.com/shiroemons/go-etrian/pkg/sjis"
)

// セーブデータのオフセット
const (
	offsetHour              = 0x0116
	offsetMinute            = 0x0117
	offsetDay               = 0x0118
	offsetEntal             = 0x0140
	offsetCharacters        = 0x0144
	offsetGuildName         = 0x2AB4
	offsetInventory         = 0x2ADC
	offsetKeyItems          = 0x2C30
	offsetStorage           = 0x2D20
	offsetStorageQuantities = 0x2F58
	offsetHoundName         = 0x304C
	offsetHawkName          = 0x3060
	offsetShopStock         = 0x4FD8
	offsetGlobalFlags       = 0x5168
	offsetItemCompendium    = 0x5DAC

	CharacterCount = 30
	InventorySize  = 85
	KeyItemsSize   = 60
	StorageSize    = 99

	guildNameLength      = 0x12
	petNameLength        = 0x14
	shopStockLength      = 400
	globalFlagsLength    = 3140
	itemCompendiumLength = 400

	// MinLength は SaveEO5 が読み込むすべての領域を含む長さ
	MinLength = offsetItemCompendium + itemCompendiumLength
)

// SaveEO5 は世界樹の迷宮Vのセーブデータ（復号済み）
type SaveEO5 struct {
	Hour   uint8
	Minute uint8
	Day    int32
	Ental  int32 // 所持金

	Characters []*CharacterEO5

	GuildName string
	HoundName string
	HawkName  string

	Inventory         []ItemEO5
	KeyItems          []ItemEO5
	Storage           []ItemEO5
	StorageQuantities []uint8

	ShopStock      []byte `yaml:"-"`
	GlobalFlags    []byte `yaml:"-"`
	ItemCompendium []byte `yaml:"-"`

	original []byte
}

// Open は復号済みのセーブデータファイルを読み込みます
func Open(path string) (*SaveEO5, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Decode は復号済みのセーブデータを読み込みます
func Decode(data []byte) (*SaveEO5, error) {
	if len(data) < MinLength {
		return nil, fmt.Errorf("%w: save is %d bytes, want at least %d", ErrInvalidLength, len(data), MinLength)
	}
	f := binutil.NewFields(data)
	s := &SaveEO5{
		Hour:              f.U8(offsetHour),
		Minute:            f.U8(offsetMinute),
		Day:               f.S32(offsetDay),
		Ental:             f.S32(offsetEntal),
		StorageQuantities: f.Bytes(offsetStorageQuantities, StorageSize),
		ShopStock:         f.Bytes(offsetShopStock, shopStockLength),
		GlobalFlags:       f.Bytes(offsetGlobalFlags, globalFlagsLength),
		ItemCompendium:    f.Bytes(offsetItemCompendium, itemCompendiumLength),
		original:          f.Bytes(0, len(data)),
	}
	if err := f.Err(); err != nil {
		return nil, err
	}

	for i, chunk := range binutil.Split(data[offsetCharacters:offsetCharacters+CharacterCount*CharacterLength], CharacterLength, 0) {
		c, err := DecodeCharacter(chunk)
		if err != nil {
			return nil, fmt.Errorf("character %d: %w", i, err)
		}
		s.Characters = append(s.Characters, c)
	}

	var err error
	if s.Inventory, err = decodeItems(data, offsetInventory, InventorySize); err != nil {
		return nil, err
	}
	if s.KeyItems, err = decodeItems(data, offsetKeyItems, KeyItemsSize); err != nil {
		return nil, err
	}
	if s.Storage, err = decodeItems(data, offsetStorage, StorageSize); err != nil {
		return nil, err
	}

	names := []struct {
		dst    *string
		offset int
		length int
	}{
		{&s.GuildName, offsetGuildName, guildNameLength},
		{&s.HoundName, offsetHoundName, petNameLength},
		{&s.HawkName, offsetHawkName, petNameLength},
	}
	for _, n := range names {
		if *n.dst, err = sjis.DecodeTrimmed(data[n.offset : n.offset+n.length]); err != nil {
			return nil, fmt.Errorf("name at 0x%X: %w", n.offset, err)
		}
	}
	return s, nil
}

func decodeItems(data []byte, offset, count int) ([]ItemEO5, error) {
	region, err := binutil.Slice(data, offset, count*ItemLength)
	if err != nil {
		return nil, err
	}
	items := make([]ItemEO5, 0, count)
	for _, chunk := range binutil.Split(region, ItemLength, 0) {
		item, err := decodeItem(chunk)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// ActiveCharacters は登録済みのキャラクターだけを返します
func (s *SaveEO5) ActiveCharacters() []*CharacterEO5 {
	var out []*CharacterEO5
	for _, c := range s.Characters {
		if c.Active() {
			out = append(out, c)
		}
	}
	return out
}

// Encode は読み込んだときのバイト列のコピーに、時刻、所持金、キャラクター、
// アイテム、倉庫の個数を書き戻します。名前欄は書き戻しません。
func (s *SaveEO5) Encode() ([]byte, error) {
	buf := make([]byte, len(s.original))
	copy(buf, s.original)

	buf[offsetHour] = s.Hour
	buf[offsetMinute] = s.Minute
	binary.LittleEndian.PutUint32(buf[offsetDay:], uint32(s.Day))
	binary.LittleEndian.PutUint32(buf[offsetEntal:], uint32(s.Ental))

	if len(s.Characters) > CharacterCount {
		return nil, fmt.Errorf("%w: %d characters, want at most %d", ErrInvalidLength, len(s.Characters), CharacterCount)
	}
	for i, c := range s.Characters {
		data, err := c.Encode()
		if err != nil {
			return nil, fmt.Errorf("character %d: %w", i, err)
		}
		if err := binutil.OverwriteRange(buf, data, offsetCharacters+i*CharacterLength); err != nil {
			return nil, err
		}
	}

	lists := []struct {
		items  []ItemEO5
		offset int
		limit  int
	}{
		{s.Inventory, offsetInventory, InventorySize},
		{s.KeyItems, offsetKeyItems, KeyItemsSize},
		{s.Storage, offsetStorage, StorageSize},
	}
	for _, l := range lists {
		if len(l.items) > l.limit {
			return nil, fmt.Errorf("%w: %d items at 0x%X, want at most %d", ErrInvalidLength, len(l.items), l.offset, l.limit)
		}
		for i, item := range l.items {
			if err := binutil.OverwriteRange(buf, item.encode(), l.offset+i*ItemLength); err != nil {
				return nil, err
			}
		}
	}

	if len(s.StorageQuantities) > StorageSize {
		return nil, fmt.Errorf("%w: %d storage quantities, want at most %d", ErrInvalidLength, len(s.StorageQuantities), StorageSize)
	}
	if err := binutil.OverwriteRange(buf, s.StorageQuantities, offsetStorageQuantities); err != nil {
		return nil, err
	}
	return buf, nil
}
