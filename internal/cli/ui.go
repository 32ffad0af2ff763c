package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// stdout receives all user-facing output. Logs go to the logger on stderr.
var stdout io.Writer = os.Stdout

// Palette
var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleTitle for headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)
	// StyleValue for values and paths.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)
	// StyleNumber for layout statistics.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)
	// StyleWarning for warnings.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed    = lipgloss.NewStyle().Foreground(colorGray)
)

// status icons with their colors
var (
	iconSuccess = lipgloss.NewStyle().Foreground(colorGreen).Render("✓")
	iconError   = lipgloss.NewStyle().Foreground(colorRed).Render("✗")
	iconWarning = lipgloss.NewStyle().Foreground(colorYellow).Render("!")
	iconInfo    = lipgloss.NewStyle().Foreground(colorGray).Render("›")
	iconArrow   = StyleDim.Render("→")
	separator   = StyleDim.Render(" · ")
)

func printStatus(icon, format string, args ...any) {
	fmt.Fprintln(stdout, icon+" "+fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { printStatus(iconSuccess, format, args...) }
func printError(format string, args ...any)   { printStatus(iconError, format, args...) }
func printInfo(format string, args ...any)    { printStatus(iconInfo, format, args...) }

func printWarning(format string, args ...any) {
	printStatus(iconWarning, "%s", StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output path.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+iconArrow+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printStats prints the size of a layout, its worst aspect ratio and whether
// it came from the cache, e.g. "  7 rects · worst ratio 1.56 · cached".
func printStats(rectCount int, worstRatio float64, cached bool) {
	parts := []string{StyleDim.Render(fmt.Sprintf("%d rects", rectCount))}
	if rectCount > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("worst ratio %.2f", worstRatio)))
	}
	if cached {
		parts = append(parts, styleCached.Render("cached"))
	} else {
		parts = append(parts, styleComputed.Render("fresh"))
	}
	fmt.Fprintln(stdout, "  "+strings.Join(parts, separator))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Fprintln(stdout)
}
