// Package app はアプリケーションのメインロジックを実装します
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/shiroemons/go-etrian/internal/etrian/config"
	"github.com/shiroemons/go-etrian/internal/etrian/fileutil"
	"github.com/shiroemons/go-etrian/internal/etrian/interfaces"
	"github.com/shiroemons/go-etrian/pkg/schema"
	"github.com/shiroemons/go-etrian/pkg/table"
)

// App はアプリケーションのメインロジックを管理します
type App struct {
	config   *config.Config
	logger   interfaces.Logger
	fs       interfaces.FileSystem
	registry *table.Registry
	out      io.Writer
}

// Options はAppの設定オプション
type Options struct {
	FileSystem interfaces.FileSystem
	Output     io.Writer
	Logger     interfaces.Logger
}

// New は新しいAppを作成します
func New(cfg *config.Config) *App {
	return NewWithOptions(cfg, Options{})
}

// NewWithOptions は新しいAppをオプション付きで作成します
func NewWithOptions(cfg *config.Config, opts Options) *App {
	// デフォルトのファイルシステムを設定
	fs := opts.FileSystem
	if fs == nil {
		fs = fileutil.NewOSFileSystem()
	}

	// デフォルトの出力先を設定
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	// デフォルトのロガーを設定
	var logger interfaces.Logger = config.NewDebugLogger(cfg.DebugMode)
	if opts.Logger != nil {
		logger = opts.Logger
	}

	return &App{
		config:   cfg,
		logger:   logger,
		fs:       fs,
		registry: schema.NewRegistry(),
		out:      out,
	}
}

// Run はアプリケーションを実行します
func (a *App) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := a.config.Validate(); err != nil {
		return err
	}

	a.logger.Printf("%s を %s として読み込みます...\n", a.config.InputPath, a.config.Kind)
	if !a.fs.FileExists(a.config.InputPath) {
		return fmt.Errorf("%w: %s: %w", ErrReadFile, a.config.InputPath, os.ErrNotExist)
	}
	data, err := a.fs.ReadFile(a.config.InputPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadFile, err)
	}

	// デコード
	if err := ctx.Err(); err != nil {
		return err
	}
	doc, err := a.decode(data)
	if err != nil {
		return err
	}
	a.logger.Printf("%d 件をデコードしました\n", len(doc.Items))

	// 出力の生成
	if err := ctx.Err(); err != nil {
		return err
	}
	output, err := a.render(doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}

	// 標準出力に表示
	fmt.Fprintln(a.out, output)

	if a.config.DryRun {
		a.logger.Printf("ドライランのためファイルは保存しません\n")
		return nil
	}

	// ファイル名の生成と保存
	outputFilename := fileutil.GenerateOutputFilename(a.config.InputPath, a.config.Kind, a.config.Format)
	outputPath := filepath.Join(a.config.OutputDir, outputFilename)
	if err := fileutil.SaveToFileWithBOM(a.fs, outputPath, output); err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFile, err)
	}
	a.logger.Printf("データを %s に保存しました\n", outputPath)

	return nil
}
