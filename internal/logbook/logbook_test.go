package logbook

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestTailReturnsRecentLinesAndTotal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.log")
	book, err := New(path)
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	for i := 0; i < 5; i++ {
		book.Info("entry-%d", i)
	}
	lines, total := book.Tail(3)
	if total != 5 {
		t.Fatalf("total lines = %d, want 5", total)
	}
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}
	for idx, want := range []string{"entry-2", "entry-3", "entry-4"} {
		if !strings.Contains(lines[idx], want) {
			t.Fatalf("line %d = %q, missing %s", idx, lines[idx], want)
		}
	}
}

func TestWithRunTagsEntriesAndSharesFile(t *testing.T) {
	book, err := Open(filepath.Join(t.TempDir(), "logs"))
	if err != nil {
		t.Fatalf("open logbook: %v", err)
	}
	run := book.WithRun("0123456789abcdef")
	run.Warn("case %s exists", "F__a_1")
	book.Error("untagged")

	lines, total := book.Tail(10)
	if total != 2 {
		t.Fatalf("total lines = %d, want 2", total)
	}
	if !strings.Contains(lines[0], "WARN  run=01234567 case F__a_1 exists") {
		t.Fatalf("unexpected tagged line %q", lines[0])
	}
	if strings.Contains(lines[1], "run=") || !strings.Contains(lines[1], "ERROR untagged") {
		t.Fatalf("unexpected untagged line %q", lines[1])
	}
	if filepath.Base(run.Path()) != FileName {
		t.Fatalf("unexpected path %s", run.Path())
	}
}

func TestNilLogbookIsSafe(t *testing.T) {
	var book *Logbook
	book.Info("ignored")
	if lines, total := book.Tail(1); lines != nil || total != 0 {
		t.Fatalf("nil logbook returned %v, %d", lines, total)
	}
	if book.WithRun("x") != nil {
		t.Fatalf("expected nil run logbook")
	}
}
