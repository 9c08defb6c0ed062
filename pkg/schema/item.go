package schema

import (
	"github.com/shiroemons/go-etrian/pkg/binutil"
	"github.com/shiroemons/go-etrian/pkg/table"
)

// UseItem は消費アイテム（useitemtable.tbl）
type UseItem struct {
	SkillID    int16
	SkillLevel uint8
	Unk1       uint8
	Flags      int32
	BuyPrice   int32
	SellPrice  int32
}

// UseItemTable はUseItemのテーブル
var UseItemTable = table.Descriptor[UseItem]{
	Name:   "useitem",
	Length: 0x10,
	Decode: func(data []byte) (UseItem, error) {
		f := binutil.NewFields(data)
		u := UseItem{
			SkillID:    f.S16(0x0),
			SkillLevel: f.U8(0x2),
			Unk1:       f.U8(0x3),
			Flags:      f.S32(0x4),
			BuyPrice:   f.S32(0x8),
			SellPrice:  f.S32(0xC),
		}
		return u, f.Err()
	},
}

const unlockItemCount = 3

// UnlockEntryV1 は店に商品が並ぶ条件（素材3種とその個数）
type UnlockEntryV1 struct {
	ItemIDs     []uint16
	ItemAmounts []uint8
}

// UnlockEntryV1Table はUnlockEntryV1のテーブル
var UnlockEntryV1Table = table.Descriptor[UnlockEntryV1]{
	Name:   "unlock_v1",
	Length: 0x0A,
	Decode: func(data []byte) (UnlockEntryV1, error) {
		f := binutil.NewFields(data)
		u := UnlockEntryV1{
			ItemIDs:     f.U16s(0x0, unlockItemCount, 2),
			ItemAmounts: f.Bytes(0x6, unlockItemCount),
		}
		return u, f.Err()
	},
}

// UnlockEntryV2 はフラグ付きの UnlockEntryV1
type UnlockEntryV2 struct {
	Flag        uint16
	ItemIDs     []uint16
	ItemAmounts []uint8
}

// UnlockEntryV2Table はUnlockEntryV2のテーブル
var UnlockEntryV2Table = table.Descriptor[UnlockEntryV2]{
	Name:   "unlock_v2",
	Length: 0x0C,
	Decode: func(data []byte) (UnlockEntryV2, error) {
		f := binutil.NewFields(data)
		u := UnlockEntryV2{
			Flag:        f.U16(0x0),
			ItemIDs:     f.U16s(0x2, unlockItemCount, 2),
			ItemAmounts: f.Bytes(0x8, unlockItemCount),
		}
		return u, f.Err()
	},
}
