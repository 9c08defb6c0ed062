package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shiroemons/go-etrian/internal/etrian/config"
	etrianerrors "github.com/shiroemons/go-etrian/internal/etrian/errors"
	"github.com/shiroemons/go-etrian/internal/etrian/models"
	"github.com/shiroemons/go-etrian/pkg/games"
	"github.com/shiroemons/go-etrian/pkg/mbm"
	"github.com/shiroemons/go-etrian/pkg/save"
	"github.com/shiroemons/go-etrian/pkg/schema"
	"github.com/shiroemons/go-etrian/pkg/table"
	"github.com/shiroemons/go-etrian/pkg/tbl"
)

// 個別の処理を持つレコード名
const (
	schemaEnemyGraphic = "enemygraphic"
	schemaSkill        = "skill"
	schemaStatGrowth   = "statgrowth"
	schemaYmd          = "ymd"
)

// decode は設定された種類でデータをデコードします
func (a *App) decode(data []byte) (*models.Document, error) {
	doc := &models.Document{
		Source: filepath.Base(a.config.InputPath),
		Kind:   a.config.Kind,
		Schema: a.config.Schema,
		Game:   a.config.Game,
	}

	var err error
	switch a.config.Kind {
	case config.KindMBM:
		err = a.decodeMBM(data, doc)
	case config.KindTBL:
		err = a.decodeTBL(data, doc)
	case config.KindTable:
		err = a.decodeTable(data, doc)
	case config.KindSave:
		err = a.decodeSave(data, doc)
	default:
		err = fmt.Errorf("%w: %q", config.ErrInvalidKind, a.config.Kind)
	}
	if err != nil {
		return nil, etrianerrors.NewDecodeError("decode "+a.config.Kind, a.config.InputPath, err)
	}
	return doc, nil
}

// game は指定されたゲームを返します
func (a *App) game() (games.Game, error) {
	if a.config.Game == "" {
		return 0, etrianerrors.ErrMissingGame
	}
	return games.Parse(a.config.Game)
}

func (a *App) decodeMBM(data []byte, doc *models.Document) error {
	archive, err := mbm.Parse(data, mbm.WithLogger(a.logger))
	if err != nil {
		return err
	}
	if !archive.Header.Valid() {
		doc.Notes = append(doc.Notes, "header identifier or version differs from MSG2 0x00010000")
	}
	if a.config.Game != "" {
		g, err := a.game()
		if err != nil {
			return err
		}
		if want := g.Profile().NullEntriesWriteIndex; len(archive.Entries) > 0 && archive.NullEntriesWriteIndex != want {
			doc.Notes = append(doc.Notes, fmt.Sprintf("null entries write index = %v, %v expects %v", archive.NullEntriesWriteIndex, g, want))
		}
	}
	for _, w := range archive.Warnings {
		doc.Notes = append(doc.Notes, fmt.Sprintf("unknown control code 0x%02X in entry %d at 0x%X", w.Type, w.Index, w.Position))
	}

	for i, entry := range archive.Entries {
		if entry == nil {
			doc.Items = append(doc.Items, models.Item{Index: i, Null: true})
			continue
		}
		text, err := entry.Text()
		if err != nil {
			return fmt.Errorf("entry %d: %w", entry.Index, err)
		}
		doc.Items = append(doc.Items, models.Item{
			Index: i,
			Label: fmt.Sprintf("%d", entry.Index),
			Text:  text,
		})
	}
	return nil
}

func (a *App) decodeTBL(data []byte, doc *models.Document) error {
	t, err := tbl.Parse(data, tbl.WithLongPointers(a.config.LongPointers))
	if err != nil {
		return err
	}
	if int(t.Count) != t.Len() {
		doc.Notes = append(doc.Notes, fmt.Sprintf("header declares %d entries, found %d", t.Count, t.Len()))
	}
	for i, s := range t.Entries {
		doc.Items = append(doc.Items, models.Item{Index: i, Text: s})
	}
	return nil
}

func (a *App) decodeTable(data []byte, doc *models.Document) error {
	switch a.config.Schema {
	case schemaEnemyGraphic:
		g, err := a.game()
		if err != nil {
			return err
		}
		d, err := schema.EnemyGraphicTable(g)
		if err != nil {
			return err
		}
		records, err := table.Decode(data, d)
		if err != nil {
			return err
		}
		for i, r := range records {
			doc.Items = append(doc.Items, models.Item{Index: i, Text: r.ModelFilename})
		}

	case schemaSkill:
		g, err := a.game()
		if err != nil {
			return err
		}
		d, err := schema.SkillTable(g)
		if err != nil {
			return err
		}
		skills, err := table.Decode(data, d)
		if err != nil {
			return err
		}
		for i, s := range skills {
			doc.Items = append(doc.Items, models.Item{Index: i, Value: s})
		}

	case schemaStatGrowth:
		g, err := a.game()
		if err != nil {
			return err
		}
		growth, err := schema.DecodeStatGrowthTable(data, g)
		if err != nil {
			return err
		}
		for i, levels := range growth {
			doc.Items = append(doc.Items, models.Item{Index: i, Value: levels})
		}

	case schemaYmd:
		y, err := schema.DecodeYmd(data)
		if err != nil {
			return err
		}
		if !y.Header.Valid() {
			doc.Notes = append(doc.Notes, fmt.Sprintf("version %q differs from %s", y.Header.Version, schema.YmdVersion))
		}
		for row := 0; row < schema.RowsPerFloor; row++ {
			var b strings.Builder
			for x := 0; x < schema.TilesPerRow; x++ {
				tile, err := y.Tile(x, row)
				if err != nil {
					return err
				}
				fmt.Fprintf(&b, "%02X", uint8(tile.Type))
			}
			doc.Items = append(doc.Items, models.Item{Index: row, Label: "row", Text: b.String()})
		}
		for i, s := range y.Stairs {
			doc.Items = append(doc.Items, models.Item{Index: i, Label: "stairs", Text: s.String(), Value: s})
		}

	default:
		d, err := a.registry.Lookup(a.config.Schema)
		if err != nil {
			return fmt.Errorf("%w: %s (known: %s)", etrianerrors.ErrUnknownSchema, a.config.Schema, strings.Join(a.knownSchemas(), ", "))
		}
		records, err := d.Decode(data)
		if err != nil {
			return err
		}
		for i, r := range records {
			doc.Items = append(doc.Items, models.Item{Index: i, Value: r})
		}
	}
	return nil
}

// knownSchemas は -s に指定できるレコード名を返します
func (a *App) knownSchemas() []string {
	return append([]string{schemaEnemyGraphic, schemaSkill, schemaStatGrowth, schemaYmd}, a.registry.Names()...)
}

func (a *App) decodeSave(data []byte, doc *models.Document) error {
	if a.config.Decrypt {
		plain, err := save.Decrypt(data)
		if err != nil {
			return err
		}
		data = plain
	}
	s, err := save.Decode(data)
	if err != nil {
		return err
	}
	doc.Notes = append(doc.Notes,
		fmt.Sprintf("guild %s, day %d %02d:%02d, %d en", s.GuildName, s.Day, s.Hour, s.Minute, s.Ental),
		fmt.Sprintf("hound %s, hawk %s", s.HoundName, s.HawkName),
	)
	for i, c := range s.Characters {
		if !c.Active() {
			continue
		}
		doc.Items = append(doc.Items, models.Item{Index: i, Text: c.String(), Value: c})
	}
	return nil
}
