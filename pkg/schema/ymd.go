package schema

import (
	"fmt"
	"os"

	"github.com/shiroemons/go-etrian/pkg/binutil"
	"github.com/shiroemons/go-etrian/pkg/table"
)

// YMD v3（EO3のフロアマップ）
const (
	YmdVersion     = "YGMD3003"
	TilesPerRow    = 35
	RowsPerFloor   = 30
	ymdTileLength  = 0x08
	ymdStairLength = 0x08
)

// TileType はタイルの種類
type TileType uint8

const (
	TileWall            TileType = 0x00
	TileWalkable        TileType = 0x01
	TileDamage          TileType = 0x02
	TileIce             TileType = 0x03
	TileHole            TileType = 0x04
	TilePush1           TileType = 0x05
	TilePush2           TileType = 0x06
	TilePush3           TileType = 0x07
	TilePush4           TileType = 0x08
	TileMud             TileType = 0x0A
	TileNoMap           TileType = 0x0B
	TileSpinner         TileType = 0x0C
	TileCampsite        TileType = 0x0D
	TileInvisibleOob    TileType = 0x0E
	TileVisibleOob      TileType = 0x0F
	TileDoor            TileType = 0x10
	TileGeomagneticPole TileType = 0x11
	TileStairs          TileType = 0x12
	TileChest           TileType = 0x13
	TileOneWay          TileType = 0x14
	TileTwoWay          TileType = 0x15
	TileShutter         TileType = 0x16
	TileLockedDoor      TileType = 0x17
	TileTeleporter      TileType = 0x18
	TileButton          TileType = 0x19
	TileSeaWhirlpool    TileType = 0x1A
	TileSeaShallows     TileType = 0x1B
	TileSeaReef         TileType = 0x1C
	TileMudNoMap        TileType = 0x1D
	TileEye             TileType = 0x1E
)

// Tile はフロアの1マス
type Tile struct {
	Type           TileType
	ID             int8
	EncounterGroup uint8
	Danger         int16
	Unk1           int16
}

// TileTable はTileのテーブル
var TileTable = table.Descriptor[Tile]{
	Name:   "ymd_tile",
	Length: ymdTileLength,
	Decode: func(data []byte) (Tile, error) {
		f := binutil.NewFields(data)
		t := Tile{
			Type:           TileType(f.U8(0)),
			ID:             f.S8(1),
			EncounterGroup: f.U8(2),
			Danger:         f.S16(4),
			Unk1:           f.S16(6),
		}
		return t, f.Err()
	},
}

// TownFloor は街に戻る階段の行き先
const TownFloor = 30

// Stairs は階段などフロア間の移動地点
type Stairs struct {
	DestinationFloor uint8
	DestinationX     uint8
	DestinationY     uint8
	AngleInfo        uint8
	Sfx              uint8
	Prompt           uint8
	Unk1             uint8
	Unk2             uint8
}

// StairsTable はStairsのテーブル
var StairsTable = table.Descriptor[Stairs]{
	Name:   "ymd_stairs",
	Length: ymdStairLength,
	Decode: func(data []byte) (Stairs, error) {
		f := binutil.NewFields(data)
		s := Stairs{
			DestinationFloor: f.U8(0),
			DestinationX:     f.U8(1),
			DestinationY:     f.U8(2),
			AngleInfo:        f.U8(3),
			Sfx:              f.U8(4),
			Prompt:           f.U8(5),
			Unk1:             f.U8(6),
			Unk2:             f.U8(7),
		}
		return s, f.Err()
	},
}

func (s Stairs) String() string {
	if s.DestinationFloor == TownFloor {
		return "Town"
	}
	return fmt.Sprintf("%dF @ (%d, %d)", s.DestinationFloor, int(s.DestinationX)+1, int(s.DestinationY)+1)
}

// YmdHeader はYMDのヘッダのうち読み込みに使う部分
type YmdHeader struct {
	Version        string
	TileDataOffset int32
	StairsCount    int32
	StairsOffset   int32
}

// Valid はバージョン文字列が YmdVersion かどうかを返します
func (h YmdHeader) Valid() bool {
	return h.Version == YmdVersion
}

// Ymd はフロアマップ
type Ymd struct {
	Header YmdHeader
	Tiles  []Tile
	Stairs []Stairs
}

// DecodeYmd はYMDファイル全体を読み込みます。
// バージョン文字列は検証せず Header.Valid で確認できます。
func DecodeYmd(data []byte) (*Ymd, error) {
	f := binutil.NewFields(data)
	h := YmdHeader{
		Version:        f.ASCIIFixed(0x00, len(YmdVersion)),
		TileDataOffset: f.S32(0x08),
		StairsCount:    f.S32(0x10),
		StairsOffset:   f.S32(0x14),
	}
	if err := f.Err(); err != nil {
		return nil, err
	}

	tiles, err := table.DecodeRegion(data, TilesPerRow*RowsPerFloor, int(h.TileDataOffset), TileTable)
	if err != nil {
		return nil, fmt.Errorf("tiles: %w", err)
	}
	stairs, err := table.DecodeRegion(data, int(h.StairsCount), int(h.StairsOffset), StairsTable)
	if err != nil {
		return nil, fmt.Errorf("stairs: %w", err)
	}
	return &Ymd{Header: h, Tiles: tiles, Stairs: stairs}, nil
}

// OpenYmd はファイルを読み込んで DecodeYmd します
func OpenYmd(path string) (*Ymd, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	y, err := DecodeYmd(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return y, nil
}

// Tile は (x, y) のタイルを返します。座標は0始まりです。
func (y *Ymd) Tile(x, row int) (Tile, error) {
	if x < 0 || x >= TilesPerRow || row < 0 || row >= RowsPerFloor {
		return Tile{}, fmt.Errorf("%w: (%d, %d)", ErrInvalidCoordinate, x, row)
	}
	i := row*TilesPerRow + x
	if i >= len(y.Tiles) {
		return Tile{}, fmt.Errorf("%w: (%d, %d) tile data has %d tiles", ErrInvalidCoordinate, x, row, len(y.Tiles))
	}
	return y.Tiles[i], nil
}
