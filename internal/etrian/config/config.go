// Package config はetrianコマンドの設定管理を行います
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
)

const Version = "0.1.0"

// 読み込むファイルの種類
const (
	KindMBM   = "mbm"
	KindTBL   = "tbl"
	KindTable = "table"
	KindSave  = "save"
)

// 出力形式
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

var (
	// ErrMissingInput は入力ファイルが指定されていない場合のエラー
	ErrMissingInput = errors.New("入力ファイルを -i で指定してください")

	// ErrInvalidKind はファイルの種類が不正な場合のエラー
	ErrInvalidKind = errors.New("ファイルの種類は mbm, tbl, table, save のいずれかです")

	// ErrInvalidFormat は出力形式が不正な場合のエラー
	ErrInvalidFormat = errors.New("出力形式は text, yaml のいずれかです")

	// ErrMissingSchema はテーブルのレコード名が指定されていない場合のエラー
	ErrMissingSchema = errors.New("-k table ではレコード名を -s で指定してください")
)

// Config はアプリケーションの設定を保持します
type Config struct {
	InputPath    string
	Kind         string
	Schema       string
	Game         string
	LongPointers bool
	Decrypt      bool
	Format       string
	OutputDir    string
	DebugMode    bool
	DryRun       bool
	ShowVersion  bool
}

// ParseFlags はコマンドライン引数を解析して設定を返します
func ParseFlags() *Config {
	config := &Config{}

	// カスタムUsage関数を設定（ダブルハイフン表示）
	flag.Usage = func() {
		w := flag.CommandLine.Output()
		fmt.Fprintf(w, "Usage of %s:\n", os.Args[0])
		fmt.Fprintln(w, "  --input string")
		fmt.Fprintln(w, "    \tpath to the file to decode (e.g. msg_item.mbm)")
		fmt.Fprintln(w, "  -i string")
		fmt.Fprintln(w, "    \tpath to the file to decode (shorthand)")
		fmt.Fprintln(w, "  --kind string")
		fmt.Fprintln(w, "    \tfile kind: mbm, tbl, table or save (default \"mbm\")")
		fmt.Fprintln(w, "  -k string")
		fmt.Fprintln(w, "    \tfile kind (shorthand)")
		fmt.Fprintln(w, "  --schema string")
		fmt.Fprintln(w, "    \trecord name for -k table (e.g. useitem, enemygraphic, skill, statgrowth, ymd)")
		fmt.Fprintln(w, "  -s string")
		fmt.Fprintln(w, "    \trecord name for -k table (shorthand)")
		fmt.Fprintln(w, "  --game string")
		fmt.Fprintln(w, "    \tgame: EO3, EO4, EOU, EO2U, EO5 or EON")
		fmt.Fprintln(w, "  -g string")
		fmt.Fprintln(w, "    \tgame (shorthand)")
		fmt.Fprintln(w, "  --long-pointers")
		fmt.Fprintln(w, "    \ttbl uses 32-bit entry count and pointers")
		fmt.Fprintln(w, "  --decrypt")
		fmt.Fprintln(w, "    \tdecrypt the save file before decoding")
		fmt.Fprintln(w, "  --format string")
		fmt.Fprintln(w, "    \toutput format: text or yaml (default \"text\")")
		fmt.Fprintln(w, "  -f string")
		fmt.Fprintln(w, "    \toutput format (shorthand)")
		fmt.Fprintln(w, "  -o string")
		fmt.Fprintln(w, "    \toutput directory for the generated files (default \".\")")
		fmt.Fprintln(w, "  --debug")
		fmt.Fprintln(w, "    \tenable debug output")
		fmt.Fprintln(w, "  -d\tenable debug output (shorthand)")
		fmt.Fprintln(w, "  --dry-run")
		fmt.Fprintln(w, "    \tperform a dry run without writing output files")
		fmt.Fprintln(w, "  -n\tperform a dry run without writing output files (shorthand)")
		fmt.Fprintln(w, "  --version")
		fmt.Fprintln(w, "    \tshow version information")
		fmt.Fprintln(w, "  -v\tshow version information (shorthand)")
	}

	// 入力ファイル
	flag.StringVar(&config.InputPath, "input", "", "path to the file to decode (e.g. msg_item.mbm)")
	flag.StringVar(&config.InputPath, "i", "", "path to the file to decode (shorthand)")

	// ファイルの種類
	flag.StringVar(&config.Kind, "kind", KindMBM, "file kind: mbm, tbl, table or save")
	flag.StringVar(&config.Kind, "k", KindMBM, "file kind (shorthand)")

	// テーブルのレコード名
	flag.StringVar(&config.Schema, "schema", "", "record name for -k table")
	flag.StringVar(&config.Schema, "s", "", "record name for -k table (shorthand)")

	// ゲーム
	flag.StringVar(&config.Game, "game", "", "game: EO3, EO4, EOU, EO2U, EO5 or EON")
	flag.StringVar(&config.Game, "g", "", "game (shorthand)")

	// TBLのポインタ幅
	flag.BoolVar(&config.LongPointers, "long-pointers", false, "tbl uses 32-bit entry count and pointers")

	// セーブデータの復号
	flag.BoolVar(&config.Decrypt, "decrypt", false, "decrypt the save file before decoding")

	// 出力形式
	flag.StringVar(&config.Format, "format", FormatText, "output format: text or yaml")
	flag.StringVar(&config.Format, "f", FormatText, "output format (shorthand)")

	// 出力ディレクトリ
	flag.StringVar(&config.OutputDir, "o", ".", "output directory for the generated files")

	// デバッグモード
	flag.BoolVar(&config.DebugMode, "debug", false, "enable debug output")
	flag.BoolVar(&config.DebugMode, "d", false, "enable debug output (shorthand)")

	// ドライランモード
	flag.BoolVar(&config.DryRun, "dry-run", false, "perform a dry run without writing output files")
	flag.BoolVar(&config.DryRun, "n", false, "perform a dry run without writing output files (shorthand)")

	// バージョン表示
	flag.BoolVar(&config.ShowVersion, "version", false, "show version information")
	flag.BoolVar(&config.ShowVersion, "v", false, "show version information (shorthand)")

	flag.Parse()

	return config
}

// Validate は設定の組み合わせを検証します
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return ErrMissingInput
	}
	switch c.Kind {
	case KindMBM, KindTBL, KindSave:
	case KindTable:
		if c.Schema == "" {
			return ErrMissingSchema
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidKind, c.Kind)
	}
	switch c.Format {
	case FormatText, FormatYAML:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Format)
	}
	return nil
}

// HandleVersion はバージョン表示を処理します
func HandleVersion(showVersion bool) {
	if showVersion {
		fmt.Printf("etrian version %s\n", Version)
		os.Exit(0)
	}
}

// DebugLogger はデバッグ出力を管理します
type DebugLogger struct {
	enabled bool
}

// NewDebugLogger は新しいDebugLoggerを作成します
func NewDebugLogger(enabled bool) *DebugLogger {
	return &DebugLogger{enabled: enabled}
}

// Printf はデバッグモードが有効な場合のみメッセージを表示します
func (d *DebugLogger) Printf(format string, a ...any) {
	if d.enabled {
		fmt.Fprintf(os.Stderr, format, a...)
	}
}
