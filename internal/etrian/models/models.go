// Package models はetrianコマンドで使用するデータモデルを定義します
package models

// Document はデコードしたファイル1つ分の出力内容
type Document struct {
	Source string   `yaml:"source"`
	Kind   string   `yaml:"kind"`
	Schema string   `yaml:"schema,omitempty"`
	Game   string   `yaml:"game,omitempty"`
	Notes  []string `yaml:"notes,omitempty"`
	Items  []Item   `yaml:"items"`
}

// Item はテーブルのエントリやレコード1件
type Item struct {
	Index int    `yaml:"index"`
	Label string `yaml:"label,omitempty"` // MBMのエントリ番号など
	Null  bool   `yaml:"null,omitempty"`  // MBMの空きスロット
	Text  string `yaml:"text,omitempty"`
	Value any    `yaml:"value,omitempty"`
}
