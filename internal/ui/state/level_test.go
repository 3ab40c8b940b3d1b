package state

import (
	"testing"

	"github.com/atomicstack/tmux-layout-control/internal/ident"
)

func newTestLevel(labels ...string) *Level {
	items := make([]Item, len(labels))
	for i, label := range labels {
		items[i] = Item{Ident: ident.Str(label), Label: label, Path: "main/" + label}
	}
	return NewLevel(items)
}

func TestSetFilterTracksCursorAndRestoresPosition(t *testing.T) {
	level := newTestLevel("one", "two", "three")
	level.Cursor = 2
	level.SetFilter("two", len("two"))
	if level.Cursor != 0 {
		t.Fatalf("expected filtered cursor at 0, got %d", level.Cursor)
	}
	if len(level.Items) != 1 || level.Items[0].Label != "two" {
		t.Fatalf("expected only 'two', got %#v", level.Items)
	}
	level.SetFilter("", 0)
	if level.Cursor != 2 {
		t.Fatalf("expected cursor restored to 2, got %d", level.Cursor)
	}
	if level.LastCursor != -1 {
		t.Fatalf("expected last cursor reset, got %d", level.LastCursor)
	}
}

func TestInsertAndDeleteFilterText(t *testing.T) {
	level := newTestLevel("alpha")
	if !level.InsertFilterText("ab") {
		t.Fatal("expected insert to succeed")
	}
	level.FilterCursor = 1
	level.InsertFilterText("z")
	if level.Filter != "azb" || level.FilterCursor != 2 {
		t.Fatalf("unexpected filter state %q/%d", level.Filter, level.FilterCursor)
	}
	if !level.DeleteFilterRuneBackward() {
		t.Fatal("expected rune deletion to succeed")
	}
	if level.Filter != "ab" || level.FilterCursor != 1 {
		t.Fatalf("unexpected filter state after delete %q/%d", level.Filter, level.FilterCursor)
	}
	level.SetFilter("abc def", len("abc def"))
	if !level.DeleteFilterWordBackward() || level.Filter != "abc " {
		t.Fatalf("expected trailing word removed, got %q", level.Filter)
	}
	level.SetFilter("abc", 0)
	if level.DeleteFilterRuneBackward() {
		t.Fatal("expected delete at start to fail")
	}
}

func TestFilterMatchesPath(t *testing.T) {
	items := []Item{
		{Label: "editor", Path: "main/editor"},
		{Label: "shell", Path: "main/tools/shell"},
		{Label: "logs", Path: "main/tools/logs"},
	}
	got := FilterItems(items, "tools")
	if len(got) != 2 || got[0].Label != "shell" || got[1].Label != "logs" {
		t.Fatalf("expected both tools panes in order, got %#v", got)
	}
	if len(FilterItems(items, "nomatch")) != 0 {
		t.Fatal("expected empty results when nothing matches")
	}
}

func TestBestMatchIndex(t *testing.T) {
	items := []Item{
		{Label: "editor", Path: "main/editor"},
		{Label: "shell", Path: "main/tools/shell"},
		{Label: "shell-2", Path: "main/tools/shell-2"},
	}
	if idx := BestMatchIndex(items, "shell-2"); idx != 2 {
		t.Fatalf("expected exact label match 2, got %d", idx)
	}
	if idx := BestMatchIndex(items, "ed"); idx != 0 {
		t.Fatalf("expected prefix match 0, got %d", idx)
	}
	if idx := BestMatchIndex(nil, "x"); idx != -1 {
		t.Fatalf("expected -1 for empty list, got %d", idx)
	}
}

func TestCursorMovesAndViewport(t *testing.T) {
	level := newTestLevel("a", "b", "c", "d", "e")
	if level.MoveCursor(-1) {
		t.Fatal("cursor should not move above the first item")
	}
	level.MoveCursor(4)
	level.EnsureCursorVisible(2)
	if level.ViewportOffset != 3 {
		t.Fatalf("expected offset 3, got %d", level.ViewportOffset)
	}
	visible := level.Visible(2)
	if len(visible) != 2 || visible[1].Label != "e" {
		t.Fatalf("unexpected visible items %#v", visible)
	}
}

func TestUpdateItemsKeepsCursorOnPane(t *testing.T) {
	level := newTestLevel("a", "b", "c")
	level.Cursor = 1
	level.UpdateItems([]Item{{Label: "x", Path: "x"}, {Label: "a", Path: "a"}, {Label: "b", Path: "b"}})
	if cur, _ := level.Current(); cur.Label != "b" {
		t.Fatalf("expected cursor to follow b, got %q", cur.Label)
	}
}
