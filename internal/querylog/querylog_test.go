package querylog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestAppendWritesDailyFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PORTFOLIO_LOG_DIR", dir)

	err := Append(Entry{Query: "what is my xirr", Intent: "MATH", DurationMs: 12})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	day := time.Now().In(time.FixedZone("IST", 19800)).Format("2006-01-02")
	b, err := os.ReadFile(filepath.Join(dir, "queries", day+".txt"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(b)
	if !strings.Contains(line, `"Intent":"MATH"`) {
		t.Errorf("entry missing intent: %s", line)
	}
	if !strings.Contains(line, "what is my xirr") {
		t.Errorf("entry missing query: %s", line)
	}
}

func TestCompressOlderGzipsStaleFiles(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PORTFOLIO_LOG_DIR", dir)

	qdir := filepath.Join(dir, "queries")
	if err := os.MkdirAll(qdir, 0o755); err != nil {
		t.Fatal(err)
	}
	stale := filepath.Join(qdir, "2024-01-01.txt")
	if err := os.WriteFile(stale, []byte("{}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	old := time.Now().AddDate(0, 0, -10)
	if err := os.Chtimes(stale, old, old); err != nil {
		t.Fatal(err)
	}

	if err := CompressOlder(7); err != nil {
		t.Fatalf("CompressOlder: %v", err)
	}

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale file should have been removed after compression")
	}
	if _, err := os.Stat(stale + ".gz"); err != nil {
		t.Errorf("compressed file missing: %v", err)
	}
}

func TestCompressOlderDisabled(t *testing.T) {
	if err := CompressOlder(0); err != nil {
		t.Fatalf("CompressOlder(0) should be a no-op, got %v", err)
	}
}
