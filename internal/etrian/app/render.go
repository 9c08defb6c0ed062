package app

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/shiroemons/go-etrian/internal/etrian/config"
	"github.com/shiroemons/go-etrian/internal/etrian/models"
)

// render は設定された形式で出力内容を生成します
func (a *App) render(doc *models.Document) (string, error) {
	if a.config.Format == config.FormatYAML {
		out, err := yaml.Marshal(doc)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
	return renderText(doc), nil
}

// renderText は1件1行のテキストを生成します。改行は \n と表記します。
func renderText(doc *models.Document) string {
	var builder strings.Builder

	// ヘッダー情報
	builder.WriteString(fmt.Sprintf("#%s (%s", doc.Source, doc.Kind))
	if doc.Schema != "" {
		builder.WriteString(", " + doc.Schema)
	}
	if doc.Game != "" {
		builder.WriteString(", " + doc.Game)
	}
	builder.WriteString(")\n")
	for _, note := range doc.Notes {
		builder.WriteString("#" + note + "\n")
	}

	for _, item := range doc.Items {
		fields := []string{fmt.Sprintf("%d", item.Index)}
		if item.Label != "" {
			fields = append(fields, item.Label)
		}
		switch {
		case item.Null:
			fields = append(fields, "(null)")
		case item.Text != "" || item.Value == nil:
			fields = append(fields, strings.ReplaceAll(item.Text, "\n", `\n`))
		default:
			fields = append(fields, fmt.Sprintf("%+v", item.Value))
		}
		builder.WriteString(strings.Join(fields, "\t") + "\n")
	}
	return builder.String()
}
