package tbl

import (
	"fmt"
	"strings"

	"github.com/shiroemons/go-etrian/pkg/games"
)

// 名前テーブルの合成に使うキー
const (
	EquipItemNameKey      = "Equip"
	UseItemNameKey        = "Use"
	IngredientItemNameKey = "Ingredient"
)

const dummyNameCount = 100

var requiredKeys = map[games.Game][]string{
	games.EO2U: {EquipItemNameKey, UseItemNameKey, IngredientItemNameKey},
}

// GlobalNameTable はゲームが実行時に使うアイテム名の通し番号テーブルを組み立てます。
// paths はキーごとの .tbl ファイルのパスです。
//
// EO2U: 装備品名 + 消費アイテム名（先頭を除く） + "Dummy"×100 + 素材名
func GlobalNameTable(paths map[string]string, game games.Game, opts ...Option) ([]string, error) {
	keys, ok := requiredKeys[game]
	if !ok {
		return nil, fmt.Errorf("%w: global name table for %v", games.ErrUnsupported, game)
	}

	var missing []string
	for _, key := range keys {
		if _, ok := paths[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingNameTable, strings.Join(missing, ", "))
	}

	tables := make(map[string]*Table, len(keys))
	for _, key := range keys {
		t, err := Open(paths[key], opts...)
		if err != nil {
			return nil, err
		}
		tables[key] = t
	}

	var names []string
	names = append(names, tables[EquipItemNameKey].Entries...)
	if use := tables[UseItemNameKey].Entries; len(use) > 0 {
		names = append(names, use[1:]...)
	}
	for i := 0; i < dummyNameCount; i++ {
		names = append(names, "Dummy")
	}
	names = append(names, tables[IngredientItemNameKey].Entries...)
	return names, nil
}
