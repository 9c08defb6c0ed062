package schema

import (
	"fmt"

	"github.com/shiroemons/go-etrian/pkg/binutil"
	"github.com/shiroemons/go-etrian/pkg/games"
	"github.com/shiroemons/go-etrian/pkg/table"
)

// SkillDataSection はスキルのデータ区画。Values はレベルごとの値
type SkillDataSection struct {
	Type   uint32
	Values []int32
}

// Skill はスキルテーブル（skilltable.tbl）の1レコード
type Skill struct {
	MaxLevel           uint8
	SkillType          uint8
	UseRequirements    uint16
	StatusRequirements uint16
	Unk1               uint32 // EO5とEONのみ
	TargetType         uint8
	TargetTeam         uint8
	Locations          uint8
	ModifierStatus     uint8
	ModifierType       uint16
	ModifierElement    uint16
	DamageElement      uint16
	InflictionStatus   uint16
	InflictionElement  uint16
	Flags              uint32
	DataSections       []SkillDataSection
}

// skillHeader はゲームごとのヘッダ内のオフセット。unk1 が負の場合はフィールドなし
type skillHeader struct {
	use, status, unk1 int
	target            int // TargetType から ModifierStatus までの4バイト
	modifier          int // ModifierType から InflictionElement までの10バイト
	flags             int
	end               int
}

var eo3SkillHeader = skillHeader{use: 0x02, status: 0x04, unk1: -1, target: 0x06, modifier: 0x0A, flags: 0x14, end: 0x18}

var skillHeaders = map[games.Game]skillHeader{
	games.EO3:  eo3SkillHeader,
	games.EO4:  eo3SkillHeader,
	games.EOU:  eo3SkillHeader,
	games.EO2U: eo3SkillHeader,
	games.EO5:  {use: 0x02, status: 0x04, unk1: 0x08, target: 0x0C, modifier: 0x10, flags: 0x1C, end: 0x20},
	games.EON:  {use: 0x04, status: 0x08, unk1: 0x0C, target: 0x10, modifier: 0x14, flags: 0x20, end: 0x24},
}

// SkillTable はゲームに対応するスキルテーブルの定義を返します
func SkillTable(game games.Game) (table.Descriptor[Skill], error) {
	p, err := games.ProfileOf(game)
	if err != nil {
		return table.Descriptor[Skill]{}, err
	}
	h := skillHeaders[game]
	return table.Descriptor[Skill]{
		Name:   fmt.Sprintf("skill_%v", game),
		Length: p.SkillLength,
		Decode: func(data []byte) (Skill, error) {
			return decodeSkill(data, h, p.SkillLevels)
		},
	}, nil
}

func decodeSkill(data []byte, h skillHeader, levels int) (Skill, error) {
	f := binutil.NewFields(data)
	s := Skill{
		MaxLevel:           f.U8(0x000),
		SkillType:          f.U8(0x001),
		UseRequirements:    f.U16(h.use),
		StatusRequirements: f.U16(h.status),
		TargetType:         f.U8(h.target),
		TargetTeam:         f.U8(h.target + 1),
		Locations:          f.U8(h.target + 2),
		ModifierStatus:     f.U8(h.target + 3),
		ModifierType:       f.U16(h.modifier),
		ModifierElement:    f.U16(h.modifier + 2),
		DamageElement:      f.U16(h.modifier + 4),
		InflictionStatus:   f.U16(h.modifier + 6),
		InflictionElement:  f.U16(h.modifier + 8),
		Flags:              f.U32(h.flags),
	}
	if h.unk1 >= 0 {
		s.Unk1 = f.U32(h.unk1)
	}
	if err := f.Err(); err != nil {
		return Skill{}, err
	}

	// 区画は種類4バイトとレベルごとの4バイト値
	for _, chunk := range binutil.Split(data, 4+levels*4, h.end) {
		c := binutil.NewFields(chunk)
		section := SkillDataSection{Type: c.U32(0), Values: make([]int32, levels)}
		for i := range section.Values {
			section.Values[i] = c.S32(4 + i*4)
		}
		if err := c.Err(); err != nil {
			return Skill{}, err
		}
		s.DataSections = append(s.DataSections, section)
	}
	return s, nil
}
