// Package schema はゲームごとのテーブルファイルのレコード定義です。
//
// 各レコード型は table.Descriptor としてレコード長とデコード関数を公開します。
// 同じ役割でもゲームによってレイアウトが異なるものは V1, V2 のように
// 別の型として定義します。
package schema

import (
	"encoding/binary"

	"github.com/shiroemons/go-etrian/pkg/binutil"
	"github.com/shiroemons/go-etrian/pkg/table"
)

// StatBlockLength はStatBlockのバイト数
const StatBlockLength = 0x14

// StatBlock は能力値
type StatBlock struct {
	MaxHp int32
	MaxTp int32
	Str   int16
	Vit   int16
	Agi   int16
	Luc   int16
	Tec   int16
	Wis   int16
}

// StatBlockTable はStatBlockが並んだテーブル
var StatBlockTable = table.Descriptor[StatBlock]{
	Name:   "statblock",
	Length: StatBlockLength,
	Decode: DecodeStatBlock,
}

// DecodeStatBlock は先頭 StatBlockLength バイトをStatBlockとして読み込みます
func DecodeStatBlock(data []byte) (StatBlock, error) {
	return readStatBlock(binutil.NewFields(data), 0)
}

func readStatBlock(f *binutil.Fields, offset int) (StatBlock, error) {
	s := StatBlock{
		MaxHp: f.S32(offset + 0x00),
		MaxTp: f.S32(offset + 0x04),
		Str:   f.S16(offset + 0x08),
		Vit:   f.S16(offset + 0x0A),
		Agi:   f.S16(offset + 0x0C),
		Luc:   f.S16(offset + 0x0E),
		Tec:   f.S16(offset + 0x10),
		Wis:   f.S16(offset + 0x12),
	}
	return s, f.Err()
}

// Encode はStatBlockをバイト列に変換します
func (s StatBlock) Encode() []byte {
	out := make([]byte, StatBlockLength)
	binary.LittleEndian.PutUint32(out[0x00:], uint32(s.MaxHp))
	binary.LittleEndian.PutUint32(out[0x04:], uint32(s.MaxTp))
	for i, v := range []int16{s.Str, s.Vit, s.Agi, s.Luc, s.Tec, s.Wis} {
		binary.LittleEndian.PutUint16(out[0x08+i*2:], uint16(v))
	}
	return out
}

// Drop は敵のドロップアイテム
type Drop struct {
	ItemID          uint16
	Chance          uint16
	RequirementArg  uint8
	RequirementType uint8
}

const dropLength = 6

func readDrop(f *binutil.Fields, offset int) Drop {
	return Drop{
		ItemID:          f.U16(offset),
		Chance:          f.U16(offset + 2),
		RequirementArg:  f.U8(offset + 4),
		RequirementType: f.U8(offset + 5),
	}
}

// VulnerabilityBlock は属性や状態異常への耐性
type VulnerabilityBlock struct {
	Cut           int16
	Bash          int16
	Stab          int16
	Fire          int16
	Ice           int16
	Volt          int16
	InstantDeath  int16
	Petrification int16
	Sleep         int16
	Panic         int16
	Plague        int16
	Poison        int16
	Blind         int16
	Curse         int16
	Paralysis     int16
	Stun          int16
	Head          int16
	Arm           int16
	Leg           int16
	Almighty      int16
}

func readVulnerabilities(f *binutil.Fields, offset int) VulnerabilityBlock {
	v := make([]int16, 20)
	for i := range v {
		v[i] = f.S16(offset + i*2)
	}
	return VulnerabilityBlock{
		Cut: v[0], Bash: v[1], Stab: v[2], Fire: v[3], Ice: v[4], Volt: v[5],
		InstantDeath: v[6], Petrification: v[7], Sleep: v[8], Panic: v[9],
		Plague: v[10], Poison: v[11], Blind: v[12], Curse: v[13],
		Paralysis: v[14], Stun: v[15], Head: v[16], Arm: v[17], Leg: v[18],
		Almighty: v[19],
	}
}
