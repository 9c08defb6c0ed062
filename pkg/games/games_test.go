package games

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Game
		wantErr bool
	}{
		{"大文字", "EO5", EO5, false},
		{"小文字", "eo2u", EO2U, false},
		{"混在", "EoN", EON, false},
		{"不明", "EO6", 0, true},
		{"空", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownGame) {
					t.Errorf("Parse(%q) error = %v, want ErrUnknownGame", tt.input, err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	for _, g := range All() {
		parsed, err := Parse(g.String())
		if err != nil || parsed != g {
			t.Errorf("Parse(%q) = %v, %v", g.String(), parsed, err)
		}
	}
	if got := Game(42).String(); got != "Game(42)" {
		t.Errorf("String() = %q", got)
	}
}

func TestProfile(t *testing.T) {
	tests := []struct {
		game          Game
		maxLevel      int
		skillLength   int
		skillLevels   int
		graphicLength int
		nullIndex     bool
	}{
		{EO3, 99, 0x178, 10, 0, false},
		{EO4, 99, 0x178, 10, 0x84, false},
		{EOU, 99, 0x298, 15, 0x88, false},
		{EO2U, 99, 0x408, 20, 0x88, false},
		{EO5, 99, 0x260, 11, 0x88, true},
		{EON, 130, 0x264, 11, 0x88, true},
	}

	for _, tt := range tests {
		t.Run(tt.game.String(), func(t *testing.T) {
			p, err := ProfileOf(tt.game)
			if err != nil {
				t.Fatalf("ProfileOf() error = %v", err)
			}
			if p.MaxLevel != tt.maxLevel || p.SkillLength != tt.skillLength || p.SkillLevels != tt.skillLevels ||
				p.EnemyGraphicLength != tt.graphicLength || p.NullEntriesWriteIndex != tt.nullIndex {
				t.Errorf("ProfileOf(%v) = %+v", tt.game, p)
			}
			if p.StatGrowthLevels() != tt.maxLevel+1 {
				t.Errorf("StatGrowthLevels() = %d", p.StatGrowthLevels())
			}
			if tt.game.Profile() != p {
				t.Errorf("Game.Profile() = %+v, want %+v", tt.game.Profile(), p)
			}
		})
	}

	if _, err := ProfileOf(Game(42)); !errors.Is(err, ErrUnknownGame) {
		t.Errorf("ProfileOf(42) error = %v", err)
	}
}

func TestRequireEnemyGraphic(t *testing.T) {
	if _, err := EO3.Profile().RequireEnemyGraphic(); !errors.Is(err, ErrUnsupported) {
		t.Errorf("EO3 error = %v, want ErrUnsupported", err)
	}
	n, err := EO4.Profile().RequireEnemyGraphic()
	if err != nil || n != 0x84 {
		t.Errorf("EO4 = 0x%X, %v", n, err)
	}
}
