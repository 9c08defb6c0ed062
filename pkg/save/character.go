// Package save は世界樹の迷宮Vのセーブデータを読み書きします
package save

import (
	"encoding/binary"
	"fmt"

	"github.com/shiroemons/go-etrian/pkg/binutil"
	"github.com/shiroemons/go-etrian/pkg/schema"
	"github.com/shiroemons/go-etrian/pkg/sjis"
)

// ItemLength はItemEO5のバイト数
const ItemLength = 4

// ItemEO5 はアイテムとそのランク
type ItemEO5 struct {
	ItemID uint16
	Rank   uint16
}

func decodeItem(data []byte) (ItemEO5, error) {
	f := binutil.NewFields(data)
	item := ItemEO5{ItemID: f.U16(0), Rank: f.U16(2)}
	return item, f.Err()
}

func (i ItemEO5) encode() []byte {
	out := make([]byte, ItemLength)
	binary.LittleEndian.PutUint16(out, i.ItemID)
	binary.LittleEndian.PutUint16(out[2:], i.Rank)
	return out
}

// CustomizationColor は目や髪の色
type CustomizationColor struct {
	Red   uint8
	Green uint8
	Blue  uint8
}

// CharacterLength はCharacterEO5のバイト数
const CharacterLength = 0x150

// キャラクターデータのオフセット
const (
	offsetEquipment        = 0x010
	offsetStatBlocks       = 0x020
	offsetCurrentHp        = 0x0AC
	offsetCurrentTp        = 0x0AE
	offsetExp              = 0x0B0
	offsetName             = 0x0B4
	offsetRace             = 0x0C9
	offsetClassSkillLevels = 0x0CA
	offsetRaceSkillLevels  = 0x0DE
	offsetColors           = 0x0F6
	offsetPortraitID       = 0x108
	offsetVoiceID          = 0x10A
	offsetSkinColorID      = 0x10C
	offsetClassName        = 0x10E

	equipmentSlots  = 4
	statBlockCount  = 7
	colorCount      = 6
	nameLength      = 0x14
	nameMaxChars    = 10
	classNameLength = 0x20
	classNameChars  = 16
)

// StatBlocks の並び
const (
	RetireStats    = 0
	BaseStats      = 1
	SkillStats     = 2
	EquipmentStats = 3
	BattleStats    = 6
)

// Colors の並び
const (
	EyeLeftHi = iota
	EyeLeftLo
	EyeRightHi
	EyeRightLo
	HairHi
	HairLo
)

// CharacterEO5 はギルドに登録されたキャラクター
type CharacterEO5 struct {
	Status            uint8
	RegisteredID      uint8
	GuildListingOrder uint16
	Level             uint8
	MaxLevel          uint8
	AvailableSp       uint8
	RetireTier        uint8
	Class             uint8
	DisableStatus     uint32
	Equipment         []ItemEO5
	StatBlocks        []schema.StatBlock
	CurrentHp         int16
	CurrentTp         int16
	Exp               int32
	Name              string
	Race              uint8
	ClassSkillLevels  []uint8
	RaceSkillLevels   []uint8
	Colors            []CustomizationColor
	PortraitID        uint16
	VoiceID           uint16
	SkinColorID       uint16
	ClassName         string

	original []byte
}

// DecodeCharacter は CharacterLength バイトのキャラクターデータを読み込みます
func DecodeCharacter(data []byte) (*CharacterEO5, error) {
	if len(data) != CharacterLength {
		return nil, fmt.Errorf("%w: character is %d bytes, want %d", ErrInvalidLength, len(data), CharacterLength)
	}
	f := binutil.NewFields(data)
	c := &CharacterEO5{
		Status:            f.U8(0x000),
		RegisteredID:      f.U8(0x001),
		GuildListingOrder: f.U16(0x002),
		Level:             f.U8(0x004),
		MaxLevel:          f.U8(0x005),
		AvailableSp:       f.U8(0x006),
		RetireTier:        f.U8(0x007),
		Class:             f.U8(0x008),
		DisableStatus:     f.U32(0x00C),
		CurrentHp:         f.S16(offsetCurrentHp),
		CurrentTp:         f.S16(offsetCurrentTp),
		Exp:               f.S32(offsetExp),
		Race:              f.U8(offsetRace),
		ClassSkillLevels:  f.Bytes(offsetClassSkillLevels, offsetRaceSkillLevels-offsetClassSkillLevels),
		RaceSkillLevels:   f.Bytes(offsetRaceSkillLevels, offsetColors-offsetRaceSkillLevels),
		PortraitID:        f.U16(offsetPortraitID),
		VoiceID:           f.U16(offsetVoiceID),
		SkinColorID:       f.U16(offsetSkinColorID),
		original:          f.Bytes(0, CharacterLength),
	}
	if err := f.Err(); err != nil {
		return nil, err
	}

	for _, chunk := range binutil.Split(data[offsetEquipment:offsetEquipment+equipmentSlots*ItemLength], ItemLength, 0) {
		item, err := decodeItem(chunk)
		if err != nil {
			return nil, err
		}
		c.Equipment = append(c.Equipment, item)
	}
	for _, chunk := range binutil.Split(data[offsetStatBlocks:offsetStatBlocks+statBlockCount*schema.StatBlockLength], schema.StatBlockLength, 0) {
		s, err := schema.DecodeStatBlock(chunk)
		if err != nil {
			return nil, err
		}
		c.StatBlocks = append(c.StatBlocks, s)
	}
	for _, chunk := range binutil.Split(data[offsetColors:offsetColors+colorCount*3], 3, 0) {
		c.Colors = append(c.Colors, CustomizationColor{Red: chunk[0], Green: chunk[1], Blue: chunk[2]})
	}

	var err error
	if c.Name, err = sjis.DecodeTrimmed(data[offsetName : offsetName+nameLength]); err != nil {
		return nil, fmt.Errorf("name: %w", err)
	}
	if c.ClassName, err = sjis.DecodeTrimmed(data[offsetClassName : offsetClassName+classNameLength]); err != nil {
		return nil, fmt.Errorf("class name: %w", err)
	}
	return c, nil
}

// Active はキャラクターが登録済みかどうかを返します
func (c *CharacterEO5) Active() bool {
	return c.Status&0x1 != 0
}

func (c *CharacterEO5) String() string {
	if !c.Active() {
		return "(Null)"
	}
	return fmt.Sprintf("%s (Lv%d)", c.Name, c.Level)
}

// Encode は読み込んだときのバイト列のコピーに編集可能なフィールドを書き戻します。
// 名前は全角に変換され、最大10文字（クラス名は16文字）に切り詰められます。
// 能力値、色、現在HP/TPなど書き戻さないフィールドは読み込んだときの値のままです。
func (c *CharacterEO5) Encode() ([]byte, error) {
	buf := make([]byte, CharacterLength)
	copy(buf, c.original)

	buf[0x000] = c.Status
	buf[0x001] = c.RegisteredID
	binary.LittleEndian.PutUint16(buf[0x002:], c.GuildListingOrder)
	buf[0x004] = c.Level
	buf[0x005] = c.MaxLevel
	buf[0x006] = c.AvailableSp
	buf[0x007] = c.RetireTier
	buf[0x008] = c.Class
	binary.LittleEndian.PutUint32(buf[0x00C:], c.DisableStatus)

	for i, item := range c.Equipment {
		if i >= equipmentSlots {
			break
		}
		if err := binutil.OverwriteRange(buf, item.encode(), offsetEquipment+i*ItemLength); err != nil {
			return nil, err
		}
	}
	binary.LittleEndian.PutUint32(buf[offsetExp:], uint32(c.Exp))

	writes := []struct {
		name   string
		src    []byte
		offset int
		limit  int
	}{
		{"class skill levels", c.ClassSkillLevels, offsetClassSkillLevels, offsetRaceSkillLevels - offsetClassSkillLevels},
		{"race skill levels", c.RaceSkillLevels, offsetRaceSkillLevels, offsetColors - offsetRaceSkillLevels},
	}
	for _, w := range writes {
		if len(w.src) > w.limit {
			return nil, fmt.Errorf("%w: %s has %d entries, want at most %d", ErrInvalidLength, w.name, len(w.src), w.limit)
		}
		if err := binutil.OverwriteRange(buf, w.src, w.offset); err != nil {
			return nil, err
		}
	}

	name, err := sjis.EncodeFullwidth(c.Name, nameMaxChars)
	if err != nil {
		return nil, fmt.Errorf("name: %w", err)
	}
	if err := binutil.OverwriteRange(buf, name, offsetName); err != nil {
		return nil, err
	}
	className, err := sjis.EncodeFullwidth(c.ClassName, classNameChars)
	if err != nil {
		return nil, fmt.Errorf("class name: %w", err)
	}
	if err := binutil.OverwriteRange(buf, className, offsetClassName); err != nil {
		return nil, err
	}
	return buf, nil
}
