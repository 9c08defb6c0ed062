package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/shiroemons/go-etrian/internal/etrian/config"
	"github.com/shiroemons/go-etrian/pkg/games"
	"github.com/shiroemons/go-etrian/pkg/tbl"
)

var (
	extractFlag  = flag.Bool("x", false, "dump files as text")
	listFlag     = flag.Bool("l", false, "list files")
	outputDir    = flag.String("o", ".", "output directory")
	formatFlag   = flag.String("f", config.FormatText, "output format (text or yaml)")
	debugFlag    = flag.Bool("d", false, "debug mode (show more info)")
	parallelFlag = flag.Bool("p", false, "use parallel dumping")
	workerCount  = flag.Int("w", 4, "number of worker threads for parallel dumping")
	longFlag     = flag.Bool("long", false, "string tables use 32-bit entry count and pointers")
	gameFlag     = flag.String("g", "", "game (eo3, eo4, eou, eo2u, eo5, eon) for game-dependent tables and the item name table")
	equipTable   = flag.String("equip", "", "equipment name .tbl for the item name table")
	useTable     = flag.String("use", "", "use item name .tbl for the item name table")
	ingrTable    = flag.String("ingredient", "", "ingredient name .tbl for the item name table")

	// tableRules は -table で指定したファイル名パターンとレコード名の組
	tableRules []tableRule
)

func init() {
	flag.Func("table", "decode .tbl files matching `pattern=schema` as fixed-record tables (repeatable, e.g. useitemtable.tbl=useitem)", func(s string) error {
		rule, err := parseTableRule(s)
		if err != nil {
			return err
		}
		tableRules = append(tableRules, rule)
		return nil
	})
}

// nameTableRequested はアイテム名テーブルの表示が指定されたかどうかを返します
func nameTableRequested() bool {
	return *equipTable != "" || *useTable != "" || *ingrTable != ""
}

func main() {
	flag.Parse()

	// 引数チェック
	args := flag.Args()
	if len(args) < 1 && !nameTableRequested() {
		fmt.Println("使用方法: etrian-dump [オプション] <ディレクトリ> [ファイル...]")
		fmt.Println("オプション:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// アイテム名の通し番号テーブル
	if nameTableRequested() {
		if err := printNameTable(*gameFlag); err != nil {
			fmt.Fprintf(os.Stderr, "エラー: %v\n", err)
			os.Exit(1)
		}
		if len(args) < 1 {
			return
		}
	}

	root := args[0]
	files, err := findFiles(root, tableRules)
	if err != nil {
		fmt.Fprintf(os.Stderr, "エラー: %v\n", err)
		os.Exit(1)
	}
	if *debugFlag {
		fmt.Printf("%s から %d 個のファイルを見つけました\n", root, len(files))
	}

	// リストを表示する
	if *listFlag {
		listFiles(files)
	}

	// 対象ファイル名を取得 (ディレクトリの後の引数)
	filesToDump := []string{}
	if len(args) > 1 {
		filesToDump = args[1:]
	}

	if !*extractFlag && len(filesToDump) == 0 {
		return
	}

	if len(filesToDump) > 0 {
		fmt.Printf("%d 個の指定されたファイルを変換中...\n", len(filesToDump))
	} else {
		fmt.Println("ディレクトリ内の全ファイルを変換中...")
	}

	var summary dumpSummary
	var dumpErr error

	if *parallelFlag {
		summary, dumpErr = dumpParallel(ctx, files, *outputDir, *workerCount, filesToDump)
	} else {
		summary, dumpErr = dumpSequential(ctx, files, *outputDir, filesToDump)
	}

	if dumpErr != nil {
		fmt.Fprintf(os.Stderr, "変換中にエラーが発生しました: %v\n", dumpErr)
	}

	if len(summary.notFound) > 0 {
		fmt.Fprintf(os.Stderr, "\n警告: 指定されたファイルのうち、以下は見つかりませんでした:\n")
		for _, f := range summary.notFound {
			fmt.Fprintf(os.Stderr, "- %s\n", f)
		}
	}

	fmt.Printf("\n%d 個のファイルを変換しました\n", summary.success)
	if summary.skipped > 0 {
		fmt.Printf("文字列テーブルとして読めない %d 個の .tbl をスキップしました (-table で指定できます)\n", summary.skipped)
	}
	if dumpErr != nil && summary.success == 0 {
		os.Exit(1)
	}
}

// printNameTable はアイテム名の通し番号テーブルを表示します
func printNameTable(name string) error {
	game, err := games.Parse(name)
	if err != nil {
		return err
	}

	paths := map[string]string{}
	for key, path := range map[string]string{
		tbl.EquipItemNameKey:      *equipTable,
		tbl.UseItemNameKey:        *useTable,
		tbl.IngredientItemNameKey: *ingrTable,
	} {
		if path != "" {
			paths[key] = path
		}
	}

	names, err := tbl.GlobalNameTable(paths, game, tbl.WithLongPointers(*longFlag))
	if err != nil {
		return err
	}
	var builder strings.Builder
	for i, n := range names {
		fmt.Fprintf(&builder, "%d\t%s\n", i, n)
	}
	fmt.Print(builder.String())
	return nil
}
