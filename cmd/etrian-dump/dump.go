package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/shiroemons/go-etrian/internal/etrian/app"
	"github.com/shiroemons/go-etrian/internal/etrian/config"
	etrianerrors "github.com/shiroemons/go-etrian/internal/etrian/errors"
)

// errSkipped は文字列テーブルとして読めない .tbl を飛ばしたことを表します
var errSkipped = errors.New("文字列テーブルとして読めないためスキップしました")

// 変換対象のファイル
type dumpFile struct {
	path   string // root からの相対パス
	full   string
	kind   string
	schema string // kind が table の場合のレコード名
	size   int64
}

// 変換ジョブ
type dumpJob struct {
	file   dumpFile
	outDir string
}

// 変換結果
type dumpResult struct {
	name    string
	success bool
	skipped bool
	err     error
}

// dumpSummary は変換全体の集計
type dumpSummary struct {
	success  int
	skipped  int
	notFound []string
}

// tableRule はファイル名パターンに一致する .tbl をレコード表として読む指定
type tableRule struct {
	pattern string
	schema  string
}

// parseTableRule は pattern=schema 形式の指定を解析します
func parseTableRule(s string) (tableRule, error) {
	pattern, schema, ok := strings.Cut(s, "=")
	if !ok || pattern == "" || schema == "" {
		return tableRule{}, fmt.Errorf("-table は pattern=schema の形式で指定してください: %q", s)
	}
	if _, err := path.Match(strings.ToLower(pattern), ""); err != nil {
		return tableRule{}, fmt.Errorf("不正なパターンです %q: %w", pattern, err)
	}
	return tableRule{pattern: strings.ToLower(pattern), schema: schema}, nil
}

// 拡張子ごとの種類
var kindByExt = map[string]string{
	".mbm": config.KindMBM,
	".tbl": config.KindTBL,
}

// classify はファイル名から種類とレコード名を決めます
func classify(name string, rules []tableRule) (kind, schema string, ok bool) {
	kind, ok = kindByExt[strings.ToLower(filepath.Ext(name))]
	if !ok || kind != config.KindTBL {
		return kind, "", ok
	}
	base := strings.ToLower(filepath.Base(name))
	for _, r := range rules {
		if matched, _ := path.Match(r.pattern, base); matched {
			return config.KindTable, r.schema, true
		}
	}
	return kind, "", true
}

// findFiles は root 以下の .mbm と .tbl を探します
func findFiles(root string, rules []tableRule) ([]dumpFile, error) {
	var files []dumpFile
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		kind, schema, ok := classify(p, rules)
		if !ok {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		files = append(files, dumpFile{path: filepath.ToSlash(rel), full: p, kind: kind, schema: schema, size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("ディレクトリに .mbm と .tbl がありません")
	}
	return files, nil
}

// listFiles はファイルの一覧を表示します
func listFiles(files []dumpFile) {
	fmt.Println("ディレクトリ内のファイル一覧:")
	fmt.Println("----------------------------")
	fmt.Printf("%-40s %-20s %10s\n", "ファイル名", "種類", "サイズ")
	fmt.Println("----------------------------")
	for _, f := range files {
		kind := f.kind
		if f.schema != "" {
			kind += ":" + f.schema
		}
		fmt.Printf("%-40s %-20s %10d\n", f.path, kind, f.size)
	}
	fmt.Println("----------------------------")
}

// selectFiles は指定されたファイルだけを選び、見つからなかったものを返します
func selectFiles(files []dumpFile, filesToDump []string) (selected []dumpFile, notFound []string) {
	if len(filesToDump) == 0 {
		return files, nil
	}
	dumpSet := make(map[string]bool, len(filesToDump))
	for _, f := range filesToDump {
		dumpSet[filepath.ToSlash(f)] = true
	}
	found := make(map[string]bool)
	for _, f := range files {
		if dumpSet[f.path] {
			selected = append(selected, f)
			found[f.path] = true
		}
	}
	for _, f := range filesToDump {
		if !found[filepath.ToSlash(f)] {
			notFound = append(notFound, f)
		}
	}
	return selected, notFound
}

// dumpOne は1ファイルを変換して outDir 以下に保存します。
// レコード名の指定がない .tbl が文字列テーブルとして読めない場合は errSkipped を返します。
func dumpOne(ctx context.Context, job dumpJob) error {
	outDir := filepath.Join(job.outDir, filepath.Dir(job.file.path))
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("ディレクトリを作成できません %s: %w", outDir, err)
	}

	cfg := &config.Config{
		InputPath:    job.file.full,
		Kind:         job.file.kind,
		Schema:       job.file.schema,
		Game:         *gameFlag,
		LongPointers: *longFlag,
		Format:       *formatFlag,
		OutputDir:    outDir,
		DebugMode:    *debugFlag,
	}
	a := app.NewWithOptions(cfg, app.Options{Output: io.Discard})
	err := a.Run(ctx)

	var decodeErr *etrianerrors.DecodeError
	if job.file.kind == config.KindTBL && errors.As(err, &decodeErr) {
		return fmt.Errorf("%w: %w", errSkipped, err)
	}
	return err
}

// tally は1ファイル分の結果を集計します。失敗の場合はエラーを返します。
func (s *dumpSummary) tally(result dumpResult) error {
	switch {
	case result.success:
		s.success++
		if *debugFlag {
			fmt.Printf("成功: %s\n", result.name)
		}
	case result.skipped:
		s.skipped++
		if *debugFlag {
			fmt.Printf("スキップ: %s - %v\n", result.name, result.err)
		}
	default:
		fmt.Fprintf(os.Stderr, "変換に失敗しました: %s - %v\n", result.name, result.err)
		return fmt.Errorf("変換エラー: %s (%w)", result.name, result.err)
	}
	return nil
}

func newDumpResult(name string, err error) dumpResult {
	return dumpResult{
		name:    name,
		success: err == nil,
		skipped: errors.Is(err, errSkipped),
		err:     err,
	}
}

// dumpSequential は順番に変換します
func dumpSequential(ctx context.Context, files []dumpFile, outDir string, filesToDump []string) (dumpSummary, error) {
	var summary dumpSummary
	selected, notFound := selectFiles(files, filesToDump)
	summary.notFound = notFound

	var firstError error
	for _, f := range selected {
		errDump := dumpOne(ctx, dumpJob{file: f, outDir: outDir})
		if errors.Is(errDump, context.Canceled) {
			return summary, errDump
		}
		if err := summary.tally(newDumpResult(f.path, errDump)); err != nil && firstError == nil {
			firstError = err
		}
	}
	return summary, firstError
}

// dumpParallel はワーカーを使って並列に変換します
func dumpParallel(ctx context.Context, files []dumpFile, outDir string, numWorkers int, filesToDump []string) (dumpSummary, error) {
	if numWorkers <= 0 {
		numWorkers = 4 // デフォルトのワーカー数
	}
	var summary dumpSummary
	selected, notFound := selectFiles(files, filesToDump)
	summary.notFound = notFound

	jobs := make(chan dumpJob, numWorkers*2)
	results := make(chan dumpResult, numWorkers*2)
	var wg sync.WaitGroup

	// ワーカーを起動
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				results <- newDumpResult(job.file.path, dumpOne(ctx, job))
			}
		}()
	}

	// 結果は1つのgoroutineだけで集計する
	var resultErr error
	resultDone := make(chan struct{})
	go func() {
		for result := range results {
			if err := summary.tally(result); err != nil && resultErr == nil {
				resultErr = err // 最初のエラーを保持
			}
		}
		close(resultDone)
	}()

	// ジョブを投入
submit:
	for _, f := range selected {
		select {
		case jobs <- dumpJob{file: f, outDir: outDir}:
		case <-ctx.Done():
			break submit
		}
	}
	close(jobs)

	wg.Wait()
	close(results)
	<-resultDone

	if resultErr == nil {
		resultErr = ctx.Err()
	}
	return summary, resultErr
}
