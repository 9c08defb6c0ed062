package schema

import (
	"fmt"
	"os"

	"github.com/shiroemons/go-etrian/pkg/binutil"
	"github.com/shiroemons/go-etrian/pkg/games"
	"github.com/shiroemons/go-etrian/pkg/table"
)

// StatGrowthTable はクラスまたは種族ごとのレベル別能力値
// （GrowthTable.tbl, GrowthKindTable.tbl）。
// StatGrowthTable[i][level] がi番目のクラスのそのレベルでの能力値です。
type StatGrowthTable [][]StatBlock

// DecodeStatGrowthTable はバイト列を (最大レベル+1) 件ずつのサブテーブルに分けて読み込みます。
// 末尾の端数は切り捨てます。
func DecodeStatGrowthTable(data []byte, game games.Game) (StatGrowthTable, error) {
	p, err := games.ProfileOf(game)
	if err != nil {
		return nil, err
	}
	subTables := binutil.Split(data, p.StatGrowthLevels()*StatBlockLength, 0)
	growth := make(StatGrowthTable, 0, len(subTables))
	for i, sub := range subTables {
		levels, err := table.Decode(sub, StatBlockTable)
		if err != nil {
			return nil, fmt.Errorf("sub table %d: %w", i, err)
		}
		growth = append(growth, levels)
	}
	return growth, nil
}

// OpenStatGrowthTable はファイルを読み込んで DecodeStatGrowthTable します
func OpenStatGrowthTable(path string, game games.Game) (StatGrowthTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeStatGrowthTable(data, game)
}
