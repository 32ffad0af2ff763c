package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/squarify/pkg/layout"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// skewedRatio marks tiles whose aspect ratio is far from square.
const skewedRatio = 3.0

var rectHeaders = []string{"#", "Label", "Value", "X", "Y", "Width", "Height", "Ratio"}

// =============================================================================
// RectBrowserModel - Interactive layout browser
// =============================================================================

// rectOrder selects how the browser sorts tiles.
type rectOrder int

const (
	orderLayout rectOrder = iota // as laid out, largest value first
	orderRatio                   // worst aspect ratio first
)

// RectBrowserModel is the bubbletea model for browsing the tiles of a layout.
type RectBrowserModel struct {
	Layout layout.Layout
	Rects  []layout.Rect
	Cursor int
	Height int
	Offset int

	order rectOrder
}

// NewRectBrowserModel creates a browser over the tiles of l.
func NewRectBrowserModel(l layout.Layout) RectBrowserModel {
	return RectBrowserModel{
		Layout: l,
		Rects:  append([]layout.Rect(nil), l.Rects...),
		Height: 15,
	}
}

func (m RectBrowserModel) Init() tea.Cmd {
	return nil
}

func (m RectBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.Height)
		case "pgdown", " ":
			m.move(m.Height)
		case "home", "g":
			m.move(-len(m.Rects))
		case "end", "G":
			m.move(len(m.Rects))
		case "s":
			m.toggleOrder()
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
		m.move(0)
	}
	return m, nil
}

// move shifts the cursor by delta, clamped to the tiles, and scrolls the
// window to keep it visible.
func (m *RectBrowserModel) move(delta int) {
	if len(m.Rects) == 0 {
		return
	}
	m.Cursor = max(0, min(len(m.Rects)-1, m.Cursor+delta))
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m *RectBrowserModel) toggleOrder() {
	m.Rects = append(m.Rects[:0], m.Layout.Rects...)
	if m.order == orderLayout {
		m.order = orderRatio
		sort.SliceStable(m.Rects, func(i, j int) bool {
			return m.Rects[i].AspectRatio() > m.Rects[j].AspectRatio()
		})
	} else {
		m.order = orderLayout
	}
	m.Cursor, m.Offset = 0, 0
}

func (m RectBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Treemap Layout"))
	b.WriteString("  ")
	b.WriteString(summaryLine(m.Layout))
	b.WriteString("\n")
	sortHint := "s sort by ratio"
	if m.order == orderRatio {
		sortHint = "s layout order"
	}
	b.WriteString(listDimStyle.Render("↑/↓ navigate  " + sortHint + "  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Rects))
	rows := rectRows(m.Rects[m.Offset:end])
	for i := range rows {
		if m.Offset+i == m.Cursor {
			rows[i][0] = "▸ " + rows[i][0]
		} else {
			rows[i][0] = "  " + rows[i][0]
		}
	}

	t := rectTable(rows, func(row int) (layout.Rect, bool) {
		return m.Rects[m.Offset+row], m.Offset+row == m.Cursor
	})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	if len(m.Rects) > 0 {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rects))))
	}

	return b.String()
}

// =============================================================================
// Static Rendering
// =============================================================================

// renderRectTable renders every tile of l as a static table.
func renderRectTable(l layout.Layout) string {
	rows := rectRows(l.Rects)
	t := rectTable(rows, func(row int) (layout.Rect, bool) {
		return l.Rects[row], false
	})
	return StyleTitle.Render("Treemap Layout") + "  " + summaryLine(l) + "\n" + t.Render()
}

// rectTable styles rows; rectAt resolves a row to its tile and whether the
// cursor is on it.
func rectTable(rows [][]string, rectAt func(row int) (layout.Rect, bool)) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(rectHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return listHeaderStyle
			}
			if row < 0 || row >= len(rows) {
				return lipgloss.NewStyle()
			}
			r, current := rectAt(row)

			base := lipgloss.NewStyle().Padding(0, 1)
			if col >= 2 {
				base = base.Align(lipgloss.Right)
			}
			if col == len(rectHeaders)-1 && r.AspectRatio() > skewedRatio {
				base = base.Foreground(colorYellow)
			} else if current {
				base = base.Foreground(colorCyan)
			} else if col >= 3 {
				base = base.Foreground(colorGray)
			}
			if current {
				base = base.Bold(true)
			}
			return base
		})
}

// rectRows formats tiles as table rows.
func rectRows(rects []layout.Rect) [][]string {
	rows := make([][]string, len(rects))
	for i, r := range rects {
		label := r.Label
		if label == "" {
			label = "—"
		}
		rows[i] = []string{
			strconv.Itoa(r.ID),
			label,
			formatNumber(r.Value),
			formatNumber(r.X),
			formatNumber(r.Y),
			formatNumber(r.Width),
			formatNumber(r.Height),
			formatNumber(r.AspectRatio()),
		}
	}
	return rows
}

// summaryLine describes the canvas and stats of l on one line.
func summaryLine(l layout.Layout) string {
	parts := []string{
		fmt.Sprintf("%s×%s canvas", formatNumber(l.Canvas.Width), formatNumber(l.Canvas.Height)),
		fmt.Sprintf("%d rects", l.Stats.Count),
	}
	if l.Stats.Count > 0 {
		parts = append(parts,
			"worst "+StyleNumber.Render(formatNumber(l.Stats.WorstRatio)),
			"mean "+StyleNumber.Render(formatNumber(l.Stats.MeanRatio)))
	}
	return StyleDim.Render(strings.Join(parts, " · "))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
