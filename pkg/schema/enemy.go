package schema

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shiroemons/go-etrian/pkg/binutil"
	"github.com/shiroemons/go-etrian/pkg/games"
	"github.com/shiroemons/go-etrian/pkg/table"
)

// EnemyDataV1 は敵の基本データ（enemydata.tbl）
type EnemyDataV1 struct {
	Level           uint16
	InternalOrder   uint16
	Exp             int32
	Flags           int32
	Unk2            int16
	Unk3            int16
	Stats           StatBlock
	DamageType      uint16
	BaseAccuracy    uint16
	Vulnerabilities VulnerabilityBlock
	Drops           [3]Drop
}

// EnemyDataV1Table はEnemyDataV1のテーブル
var EnemyDataV1Table = table.Descriptor[EnemyDataV1]{
	Name:   "enemydata_v1",
	Length: 0x64,
	Decode: DecodeEnemyDataV1,
}

// DecodeEnemyDataV1 は1レコードを読み込みます
func DecodeEnemyDataV1(data []byte) (EnemyDataV1, error) {
	f := binutil.NewFields(data)
	e := EnemyDataV1{
		Level:         f.U16(0x00),
		InternalOrder: f.U16(0x02),
		Exp:           f.S32(0x04),
		Flags:         f.S32(0x08),
		Unk2:          f.S16(0x0C),
		Unk3:          f.S16(0x0E),
		DamageType:    f.U16(0x24),
		BaseAccuracy:  f.U16(0x26),
	}
	e.Stats, _ = readStatBlock(f, 0x10)
	e.Vulnerabilities = readVulnerabilities(f, 0x28)
	for i := range e.Drops {
		e.Drops[i] = readDrop(f, 0x50+i*dropLength)
	}
	return e, f.Err()
}

const modelFilenameLength = 0x40

// EnemyGraphicEntry は敵グラフィックテーブル（enemygraphic.tbl）の1レコード
type EnemyGraphicEntry struct {
	ModelFilename string
	Unknown       []byte `yaml:"-"`
}

// EnemyGraphicV2Table はEO4のレイアウト
var EnemyGraphicV2Table = table.Descriptor[EnemyGraphicEntry]{
	Name:   "enemygraphic_v2",
	Length: 0x84,
	Decode: DecodeEnemyGraphicEntry,
}

// EnemyGraphicV3Table はEOU以降のレイアウト
var EnemyGraphicV3Table = table.Descriptor[EnemyGraphicEntry]{
	Name:   "enemygraphic_v3",
	Length: 0x88,
	Decode: DecodeEnemyGraphicEntry,
}

// DecodeEnemyGraphicEntry は1レコードを読み込みます。
// ファイル名に .bam が含まれない場合はレコードが壊れているとみなします。
func DecodeEnemyGraphicEntry(data []byte) (EnemyGraphicEntry, error) {
	f := binutil.NewFields(data)
	name := f.Bytes(0, modelFilenameLength)
	if err := f.Err(); err != nil {
		return EnemyGraphicEntry{}, err
	}
	filename := string(bytes.ReplaceAll(name, []byte{0}, nil))
	if !strings.Contains(filename, ".bam") {
		return EnemyGraphicEntry{}, fmt.Errorf("%w: %q", ErrMissingModelExtension, filename)
	}
	return EnemyGraphicEntry{
		ModelFilename: filename,
		Unknown:       f.Bytes(modelFilenameLength, len(data)-modelFilenameLength),
	}, f.Err()
}

// EnemyGraphicTable はゲームに対応する敵グラフィックテーブルの定義を返します
func EnemyGraphicTable(game games.Game) (table.Descriptor[EnemyGraphicEntry], error) {
	length, err := game.Profile().RequireEnemyGraphic()
	if err != nil {
		return table.Descriptor[EnemyGraphicEntry]{}, err
	}
	if length == EnemyGraphicV2Table.Length {
		return EnemyGraphicV2Table, nil
	}
	return EnemyGraphicV3Table, nil
}

// EncounterGroupV1 はEO3のエンカウントグループ。先頭4バイト以降の敵の並び
type EncounterGroupV1 struct {
	Enemies []uint8
}

// EncounterGroupV1Table はEncounterGroupV1のテーブル
var EncounterGroupV1Table = table.Descriptor[EncounterGroupV1]{
	Name:   "encountergroup_v1",
	Length: 0x0C,
	Decode: func(data []byte) (EncounterGroupV1, error) {
		f := binutil.NewFields(data)
		enemies := f.Bytes(4, len(data)-4)
		return EncounterGroupV1{Enemies: enemies}, f.Err()
	},
}

// EncounterGroupV3 はEO2U以降のエンカウントグループ
type EncounterGroupV3 struct {
	FrontRow []int32
	BackRow  []int32
}

// EncounterGroupV3Table はEncounterGroupV3のテーブル
var EncounterGroupV3Table = table.Descriptor[EncounterGroupV3]{
	Name:   "encountergroup_v3",
	Length: 0x68,
	Decode: DecodeEncounterGroupV3,
}

const (
	encounterSlotLength = 0x06
	encounterRowLength  = 0x18
)

// DecodeEncounterGroupV3 は1レコードを読み込みます。
// 6バイトのスロットの先頭バイトが敵のIDです。
func DecodeEncounterGroupV3(data []byte) (EncounterGroupV3, error) {
	f := binutil.NewFields(data)
	row := func(offset int) []int32 {
		slots := binutil.Split(f.Bytes(offset, encounterRowLength), encounterSlotLength, 0)
		ids := make([]int32, 0, len(slots))
		for _, s := range slots {
			ids = append(ids, int32(s[0]))
		}
		return ids
	}
	g := EncounterGroupV3{
		FrontRow: row(0x06),
		BackRow:  row(0x1E),
	}
	return g, f.Err()
}

// FoeParamV2 はFOEのパラメータ。モデル名の後ろのヌル文字は切り捨てます
type FoeParamV2 struct {
	ModelName string
	EnemyID   int32
}

// FoeParamV2Table はFoeParamV2のテーブル
var FoeParamV2Table = table.Descriptor[FoeParamV2]{
	Name:   "foeparam_v2",
	Length: 0x38,
	Decode: func(data []byte) (FoeParamV2, error) {
		f := binutil.NewFields(data)
		p := FoeParamV2{
			ModelName: f.ASCIIFixed(0x00, 0x10),
			EnemyID:   f.S32(0x14),
		}
		return p, f.Err()
	},
}
