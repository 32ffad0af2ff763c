package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/squarify/pkg/layout"
)

func browserLayout() layout.Layout {
	rects := []layout.Rect{
		{ID: 0, Label: "wide", Value: 4, X: 0, Y: 0, Width: 8, Height: 1},
		{ID: 1, Label: "square", Value: 2, X: 0, Y: 1, Width: 2, Height: 2},
		{ID: 2, Value: 1, X: 2, Y: 1, Width: 1, Height: 1.5},
	}
	return layout.Layout{
		Canvas: layout.Canvas{Width: 8, Height: 3},
		Rects:  rects,
		Stats:  layout.ComputeStats(rects),
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m RectBrowserModel, keys ...string) RectBrowserModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(RectBrowserModel)
	}
	return m
}

func TestRectBrowserNavigation(t *testing.T) {
	m := NewRectBrowserModel(browserLayout())

	tests := []struct {
		keys []string
		want int
	}{
		{nil, 0},
		{[]string{"down"}, 1},
		{[]string{"down", "down", "down", "down"}, 2},
		{[]string{"down", "up", "up"}, 0},
		{[]string{"end"}, 2},
		{[]string{"j", "j", "k"}, 1},
	}
	for _, tt := range tests {
		if got := press(m, tt.keys...).Cursor; got != tt.want {
			t.Errorf("keys %v: Cursor = %d, want %d", tt.keys, got, tt.want)
		}
	}
}

func TestRectBrowserScrolls(t *testing.T) {
	m := NewRectBrowserModel(browserLayout())
	m.Height = 2

	m = press(m, "down", "down")
	if m.Offset != 1 {
		t.Errorf("Offset = %d, want 1", m.Offset)
	}
	m = press(m, "up", "up")
	if m.Offset != 0 {
		t.Errorf("Offset = %d, want 0", m.Offset)
	}
}

func TestRectBrowserSortByRatio(t *testing.T) {
	l := browserLayout()
	m := press(NewRectBrowserModel(l), "down", "s")

	if m.Cursor != 0 {
		t.Errorf("Cursor = %d after sort, want 0", m.Cursor)
	}
	var got []int
	for _, r := range m.Rects {
		got = append(got, r.ID)
	}
	if got[0] != 0 || got[1] != 2 || got[2] != 1 {
		t.Errorf("ratio order = %v, want [0 2 1]", got)
	}
	if l.Rects[1].ID != 1 {
		t.Error("sorting modified the layout")
	}

	m = press(m, "s")
	if m.Rects[1].ID != 1 {
		t.Errorf("second toggle did not restore layout order: %v", m.Rects)
	}
}

func TestRectBrowserQuit(t *testing.T) {
	m := NewRectBrowserModel(browserLayout())
	if _, cmd := m.Update(key("q")); cmd == nil {
		t.Error("q should return a quit command")
	}
	if _, cmd := m.Update(key("down")); cmd != nil {
		t.Error("down should not return a command")
	}
}

func TestRectBrowserView(t *testing.T) {
	view := NewRectBrowserModel(browserLayout()).View()
	for _, want := range []string{"Treemap Layout", "wide", "square", "8.00", "[1/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestRenderRectTable(t *testing.T) {
	out := renderRectTable(browserLayout())
	for _, want := range []string{"Label", "Ratio", "wide", "3 rects", "—"} {
		if !strings.Contains(out, want) {
			t.Errorf("renderRectTable() missing %q", want)
		}
	}
}

func TestRectRows(t *testing.T) {
	rows := rectRows(browserLayout().Rects)
	if len(rows) != 3 {
		t.Fatalf("got %d rows", len(rows))
	}
	want := []string{"0", "wide", "4.00", "0.00", "0.00", "8.00", "1.00", "8.00"}
	for i, cell := range want {
		if rows[0][i] != cell {
			t.Errorf("rows[0][%d] = %q, want %q", i, rows[0][i], cell)
		}
	}
}
