// Package games は対応するゲームの種類と、ゲームごとに異なるレイアウトの値を扱います
package games

import (
	"errors"
	"fmt"
	"strings"
)

// Game はゲームの種類
type Game int

const (
	EO3  Game = iota // 世界樹の迷宮III
	EO4              // 世界樹の迷宮IV
	EOU              // 新・世界樹の迷宮
	EO2U             // 新・世界樹の迷宮2
	EO5              // 世界樹の迷宮V
	EON              // 世界樹の迷宮X
)

// ErrUnknownGame はゲーム名が不明な場合のエラー
var ErrUnknownGame = errors.New("不明なゲームです")

// ErrUnsupported はゲームがその形式に対応していない場合のエラー
var ErrUnsupported = errors.New("このゲームには対応していません")

var names = map[Game]string{
	EO3:  "EO3",
	EO4:  "EO4",
	EOU:  "EOU",
	EO2U: "EO2U",
	EO5:  "EO5",
	EON:  "EON",
}

// All は対応するすべてのゲームを発売順に返します
func All() []Game {
	return []Game{EO3, EO4, EOU, EO2U, EO5, EON}
}

func (g Game) String() string {
	if name, ok := names[g]; ok {
		return name
	}
	return fmt.Sprintf("Game(%d)", int(g))
}

// Parse はゲーム名（大文字小文字は区別しない）から Game を返します
func Parse(s string) (Game, error) {
	for g, name := range names {
		if strings.EqualFold(s, name) {
			return g, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownGame, s)
}

// Profile はゲームごとに異なるレイアウトの値
type Profile struct {
	Game Game

	// MaxLevel はキャラクターの最大レベル
	MaxLevel int

	// SkillLength はスキルテーブル1レコードのバイト数
	SkillLength int

	// SkillLevels はスキルのデータ区画1つあたりのレベル数
	SkillLevels int

	// EnemyGraphicLength は敵グラフィックテーブル1レコードのバイト数。
	// 対応していない場合は0
	EnemyGraphicLength int

	// NullEntriesWriteIndex はMBMの空きスロットにもインデックスが書かれるかどうか
	NullEntriesWriteIndex bool
}

var profiles = map[Game]Profile{
	EO3:  {Game: EO3, MaxLevel: 99, SkillLength: 0x178, SkillLevels: 10},
	EO4:  {Game: EO4, MaxLevel: 99, SkillLength: 0x178, SkillLevels: 10, EnemyGraphicLength: 0x84},
	EOU:  {Game: EOU, MaxLevel: 99, SkillLength: 0x298, SkillLevels: 15, EnemyGraphicLength: 0x88},
	EO2U: {Game: EO2U, MaxLevel: 99, SkillLength: 0x408, SkillLevels: 20, EnemyGraphicLength: 0x88},
	EO5:  {Game: EO5, MaxLevel: 99, SkillLength: 0x260, SkillLevels: 11, EnemyGraphicLength: 0x88, NullEntriesWriteIndex: true},
	EON:  {Game: EON, MaxLevel: 130, SkillLength: 0x264, SkillLevels: 11, EnemyGraphicLength: 0x88, NullEntriesWriteIndex: true},
}

// ProfileOf はゲームのプロファイルを返します
func ProfileOf(g Game) (Profile, error) {
	p, ok := profiles[g]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %v", ErrUnknownGame, g)
	}
	return p, nil
}

// Profile はゲームのプロファイルを返します。不明なゲームの場合はゼロ値です。
func (g Game) Profile() Profile {
	return profiles[g]
}

// StatGrowthLevels は成長テーブル1クラス分のレベル数（レベル0を含む）を返します
func (p Profile) StatGrowthLevels() int {
	return p.MaxLevel + 1
}

// RequireEnemyGraphic は敵グラフィックテーブルのレコード長を返します
func (p Profile) RequireEnemyGraphic() (int, error) {
	if p.EnemyGraphicLength == 0 {
		return 0, fmt.Errorf("%w: enemy graphic table for %v", ErrUnsupported, p.Game)
	}
	return p.EnemyGraphicLength, nil
}
