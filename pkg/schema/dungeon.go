package schema

import (
	"github.com/shiroemons/go-etrian/pkg/binutil"
	"github.com/shiroemons/go-etrian/pkg/table"
)

// FloorSystemMetadata はフロアの管理情報（dungeonsystemtable.tbl）
type FloorSystemMetadata struct {
	Exists           int32
	InternalID1      int32
	InternalID2      int32
	IdentifierString string
	StratumID        int32
	DisplayedFloor   int32
	Width            int32
	Height           int32
	Unk1             int32
	Unk2             int32
	Unk3             int32
	Unk4             int32
	Unk5             int32
}

// FloorSystemMetadataTable はFloorSystemMetadataのテーブル
var FloorSystemMetadataTable = table.Descriptor[FloorSystemMetadata]{
	Name:   "floorsystem",
	Length: 0x58,
	Decode: func(data []byte) (FloorSystemMetadata, error) {
		f := binutil.NewFields(data)
		m := FloorSystemMetadata{
			Exists:           f.S32(0x00),
			InternalID1:      f.S32(0x04),
			InternalID2:      f.S32(0x08),
			IdentifierString: f.ASCIIFixed(0x0C, 4),
			StratumID:        f.S32(0x14),
			DisplayedFloor:   f.S32(0x18),
			Width:            f.S32(0x1C),
			Height:           f.S32(0x20),
			Unk1:             f.S32(0x24),
			Unk2:             f.S32(0x44),
			Unk3:             f.S32(0x48),
			Unk4:             f.S32(0x4C),
			Unk5:             f.S32(0x50),
		}
		return m, f.Err()
	},
}

const itemFinderSlots = 9

// ItemFinderPassiveFloor はフロアごとのアイテム発見パッシブの抽選表
type ItemFinderPassiveFloor struct {
	FloorID uint32
	Weights []uint32
	Items   []uint32
}

// ItemFinderPassiveFloorTable はItemFinderPassiveFloorのテーブル
var ItemFinderPassiveFloorTable = table.Descriptor[ItemFinderPassiveFloor]{
	Name:   "itemfinder",
	Length: 0x50,
	Decode: func(data []byte) (ItemFinderPassiveFloor, error) {
		f := binutil.NewFields(data)
		p := ItemFinderPassiveFloor{
			FloorID: f.U32(0x00),
			Weights: f.U32s(0x08, itemFinderSlots, 4),
			Items:   f.U32s(0x2C, itemFinderSlots, 4),
		}
		return p, f.Err()
	},
}
