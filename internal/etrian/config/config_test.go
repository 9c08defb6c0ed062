package config

import (
	"errors"
	"flag"
	"io"
	"os"
	"strings"
	"testing"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Config
	}{
		{
			name: "長いフラグ",
			args: []string{"cmd", "--input", "msg.mbm", "--kind", "tbl", "--game", "EO5", "--long-pointers", "--format", "yaml", "-o", "/tmp", "--debug", "--dry-run"},
			want: Config{InputPath: "msg.mbm", Kind: KindTBL, Game: "EO5", LongPointers: true, Format: FormatYAML, OutputDir: "/tmp", DebugMode: true, DryRun: true},
		},
		{
			name: "短いフラグ",
			args: []string{"cmd", "-i", "useitem.tbl", "-k", "table", "-s", "useitem", "-g", "EO2U", "-f", "text", "-d", "-n"},
			want: Config{InputPath: "useitem.tbl", Kind: KindTable, Schema: "useitem", Game: "EO2U", Format: FormatText, OutputDir: ".", DebugMode: true, DryRun: true},
		},
		{
			name: "デフォルト値",
			args: []string{"cmd", "-i", "save.dat", "--decrypt"},
			want: Config{InputPath: "save.dat", Kind: KindMBM, Format: FormatText, OutputDir: ".", Decrypt: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// フラグをリセット
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
			os.Args = tt.args

			cfg := ParseFlags()
			if *cfg != tt.want {
				t.Errorf("ParseFlags() = %+v, want %+v", *cfg, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{"MBM", Config{InputPath: "a.mbm", Kind: KindMBM, Format: FormatText}, nil},
		{"テーブル", Config{InputPath: "a.tbl", Kind: KindTable, Schema: "useitem", Format: FormatYAML}, nil},
		{"入力なし", Config{Kind: KindMBM, Format: FormatText}, ErrMissingInput},
		{"不明な種類", Config{InputPath: "a", Kind: "zip", Format: FormatText}, ErrInvalidKind},
		{"レコード名なし", Config{InputPath: "a", Kind: KindTable, Format: FormatText}, ErrMissingSchema},
		{"不明な出力形式", Config{InputPath: "a", Kind: KindTBL, Format: "json"}, ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stderr = w
	fn()
	w.Close()
	os.Stderr = old

	out, _ := io.ReadAll(r)
	return string(out)
}

func TestDebugLogger(t *testing.T) {
	// デバッグモード有効
	output := captureStderr(t, func() {
		NewDebugLogger(true).Printf("test message %d\n", 123)
	})
	if !strings.Contains(output, "test message 123") {
		t.Errorf("Expected debug output to contain 'test message 123', got '%s'", output)
	}

	// デバッグモード無効
	output = captureStderr(t, func() {
		NewDebugLogger(false).Printf("should not appear\n")
	})
	if strings.Contains(output, "should not appear") {
		t.Error("Debug output should not appear when debug mode is disabled")
	}
}
