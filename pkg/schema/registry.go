package schema

import (
	"github.com/shiroemons/go-etrian/pkg/table"
)

// NewRegistry は固定長のレコード定義をすべて名前で登録したRegistryを返します
func NewRegistry() *table.Registry {
	r := table.NewRegistry()
	must(table.Register(r, StatBlockTable))
	must(table.Register(r, EnemyDataV1Table))
	must(table.Register(r, EnemyGraphicV2Table))
	must(table.Register(r, EnemyGraphicV3Table))
	must(table.Register(r, EncounterGroupV1Table))
	must(table.Register(r, EncounterGroupV3Table))
	must(table.Register(r, FoeParamV2Table))
	must(table.Register(r, UseItemTable))
	must(table.Register(r, UnlockEntryV1Table))
	must(table.Register(r, UnlockEntryV2Table))
	must(table.Register(r, FloorSystemMetadataTable))
	must(table.Register(r, ItemFinderPassiveFloorTable))
	must(table.Register(r, TileTable))
	must(table.Register(r, StairsTable))
	return r
}

// must は組み込みの定義の登録に失敗した場合に panic します
func must(err error) {
	if err != nil {
		panic(err)
	}
}
