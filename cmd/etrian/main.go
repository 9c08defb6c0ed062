package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shiroemons/go-etrian/internal/etrian/app"
	"github.com/shiroemons/go-etrian/internal/etrian/config"
)

func main() {
	// コマンドライン引数の解析
	cfg := config.ParseFlags()

	// バージョン表示の処理
	config.HandleVersion(cfg.ShowVersion)

	// Ctrl+C で中断できるようにする
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// アプリケーションの実行
	application := app.New(cfg)
	if err := application.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "エラー: %v\n", err)
		os.Exit(1)
	}
}
