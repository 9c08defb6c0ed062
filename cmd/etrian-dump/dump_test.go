package main

import (
	"context"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFixture(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

// testTBL は「A」「b」の2件を持つTBLを返します
func testTBL() []byte {
	return []byte{0x02, 0x00, 0x00, 0x00, 0x02, 0x00, 'A', 0x00, 'b', 0x00}
}

// testLongTBL は32ビットポインタで「A」「b」の2件を持つTBLを返します
func testLongTBL() []byte {
	return []byte{
		0x02, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x02, 0x00, 0x00, 0x00,
		'A', 0x00, 'b', 0x00,
	}
}

// testUseItems は消費アイテム2件分のレコード表を返します
func testUseItems() []byte {
	data := make([]byte, 0x20)
	binary.LittleEndian.PutUint16(data[0x00:], 12)
	binary.LittleEndian.PutUint16(data[0x10:], 34)
	return data
}

// setFlag はテスト中だけフラグの値を差し替えます
func setFlag[T any](t *testing.T, p *T, v T) {
	t.Helper()
	old := *p
	*p = v
	t.Cleanup(func() { *p = old })
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("%s was not written: %v", path, err)
	}
	return strings.TrimPrefix(string(data), "\uFEFF")
}

func TestFindFiles(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "Text/msg.mbm", make([]byte, 0x20))
	writeFixture(t, dir, "Data/item.TBL", testTBL())
	writeFixture(t, dir, "readme.txt", []byte("x"))

	files, err := findFiles(dir, nil)
	if err != nil {
		t.Fatalf("findFiles() error = %v", err)
	}

	got := map[string]string{}
	for _, f := range files {
		got[f.path] = f.kind
	}
	want := map[string]string{
		"Text/msg.mbm":  "mbm",
		"Data/item.TBL": "tbl",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("findFiles() = %v, want %v", got, want)
	}

	if _, err := findFiles(t.TempDir(), nil); err == nil {
		t.Error("findFiles() on empty directory should fail")
	}
}

func TestSelectFiles(t *testing.T) {
	files := []dumpFile{{path: "a.mbm"}, {path: "sub/b.tbl"}}

	tests := []struct {
		name         string
		filesToDump  []string
		wantSelected int
		wantNotFound []string
	}{
		{"指定なしは全ファイル", nil, 2, nil},
		{"指定したファイルのみ", []string{"sub/b.tbl"}, 1, nil},
		{"見つからないファイル", []string{"a.mbm", "c.mbm"}, 1, []string{"c.mbm"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selected, notFound := selectFiles(files, tt.filesToDump)
			if len(selected) != tt.wantSelected {
				t.Errorf("selected = %v, want %d files", selected, tt.wantSelected)
			}
			if !reflect.DeepEqual(notFound, tt.wantNotFound) {
				t.Errorf("notFound = %v, want %v", notFound, tt.wantNotFound)
			}
		})
	}
}

func TestParseTableRule(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    tableRule
		wantErr bool
	}{
		{"パターンとレコード名", "UseItemTable.tbl=useitem", tableRule{pattern: "useitemtable.tbl", schema: "useitem"}, false},
		{"ワイルドカード", "skill*.tbl=skill", tableRule{pattern: "skill*.tbl", schema: "skill"}, false},
		{"区切りなし", "useitem", tableRule{}, true},
		{"レコード名が空", "a.tbl=", tableRule{}, true},
		{"不正なパターン", "[a.tbl=useitem", tableRule{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTableRule(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseTableRule() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseTableRule() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFindFiles_TableRules(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "Data/UseItemTable.tbl", testUseItems())
	writeFixture(t, dir, "Data/itemname.tbl", testTBL())
	writeFixture(t, dir, "Text/useitemtable.mbm", make([]byte, 0x20))

	rules := []tableRule{{pattern: "useitem*.tbl", schema: "useitem"}}
	files, err := findFiles(dir, rules)
	if err != nil {
		t.Fatalf("findFiles() error = %v", err)
	}

	got := map[string][2]string{}
	for _, f := range files {
		got[f.path] = [2]string{f.kind, f.schema}
	}
	want := map[string][2]string{
		"Data/UseItemTable.tbl": {"table", "useitem"},
		"Data/itemname.tbl":     {"tbl", ""},
		"Text/useitemtable.mbm": {"mbm", ""},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("findFiles() = %v, want %v", got, want)
	}
}

func TestDump(t *testing.T) {
	tests := []struct {
		name     string
		parallel bool
	}{
		{"順次処理", false},
		{"並列処理", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := t.TempDir()
			out := t.TempDir()
			writeFixture(t, src, "Data/a.tbl", testTBL())
			writeFixture(t, src, "Data/b.tbl", testTBL())
			writeFixture(t, src, "broken.tbl", []byte{0x01})

			files, err := findFiles(src, nil)
			if err != nil {
				t.Fatal(err)
			}

			var summary dumpSummary
			if tt.parallel {
				summary, err = dumpParallel(testContext(t), files, out, 2, nil)
			} else {
				summary, err = dumpSequential(testContext(t), files, out, nil)
			}
			if err != nil {
				t.Errorf("文字列テーブルとして読めない .tbl は失敗にしない: %v", err)
			}
			if summary.success != 2 {
				t.Errorf("success = %d, want 2", summary.success)
			}
			if summary.skipped != 1 {
				t.Errorf("skipped = %d, want 1", summary.skipped)
			}

			for _, name := range []string{"a_tbl.txt", "b_tbl.txt"} {
				if _, err := os.Stat(filepath.Join(out, "Data", name)); err != nil {
					t.Errorf("%s was not written: %v", name, err)
				}
			}
			if _, err := os.Stat(filepath.Join(out, "broken_tbl.txt")); !os.IsNotExist(err) {
				t.Errorf("broken_tbl.txt should not be written: %v", err)
			}
		})
	}
}

func TestDump_TableRules(t *testing.T) {
	tests := []struct {
		name     string
		parallel bool
	}{
		{"順次処理", false},
		{"並列処理", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := t.TempDir()
			out := t.TempDir()
			writeFixture(t, src, "useitemtable.tbl", testUseItems())
			writeFixture(t, src, "useitembroken.tbl", make([]byte, 0x11))

			rules := []tableRule{{pattern: "useitem*.tbl", schema: "useitem"}}
			files, err := findFiles(src, rules)
			if err != nil {
				t.Fatal(err)
			}

			var summary dumpSummary
			if tt.parallel {
				summary, err = dumpParallel(testContext(t), files, out, 2, nil)
			} else {
				summary, err = dumpSequential(testContext(t), files, out, nil)
			}
			if err == nil {
				t.Error("レコード表として指定したファイルの失敗は報告する")
			}
			if errors.Is(err, errSkipped) {
				t.Errorf("error = %v, should not be skipped", err)
			}
			if summary.success != 1 || summary.skipped != 0 {
				t.Errorf("summary = %+v, want 1 success and no skips", summary)
			}

			content := readOutput(t, filepath.Join(out, "useitemtable_table.txt"))
			if !strings.HasPrefix(content, "#useitemtable.tbl (table, useitem)\n") {
				t.Errorf("output header = %q", content)
			}
		})
	}
}

func TestDump_LongPointers(t *testing.T) {
	setFlag(t, longFlag, true)

	src := t.TempDir()
	out := t.TempDir()
	writeFixture(t, src, "name.tbl", testLongTBL())

	files, err := findFiles(src, nil)
	if err != nil {
		t.Fatal(err)
	}
	summary, err := dumpSequential(testContext(t), files, out, nil)
	if err != nil {
		t.Fatalf("dumpSequential() error = %v", err)
	}
	if summary.success != 1 {
		t.Fatalf("success = %d, want 1", summary.success)
	}

	want := "#name.tbl (tbl)\n0\tA\n1\tb\n"
	if got := readOutput(t, filepath.Join(out, "name_tbl.txt")); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestDump_Game(t *testing.T) {
	setFlag(t, gameFlag, "eo5")

	src := t.TempDir()
	out := t.TempDir()
	writeFixture(t, src, "skilltable.tbl", make([]byte, 0x260))

	files, err := findFiles(src, []tableRule{{pattern: "skilltable.tbl", schema: "skill"}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := dumpSequential(testContext(t), files, out, nil); err != nil {
		t.Fatalf("dumpSequential() error = %v", err)
	}

	content := readOutput(t, filepath.Join(out, "skilltable_table.txt"))
	if !strings.HasPrefix(content, "#skilltable.tbl (table, skill, eo5)\n") {
		t.Errorf("output header = %q", content)
	}
}

// testContext は Go 1.24 の t.Context() 相当: テスト終了時にキャンセルされる。
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
