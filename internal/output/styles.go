package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Lipgloss styles for the human-readable renderings. Mirrors the color
// scheme of the original scheckbl CLI: green for hits/success, red for
// misses/errors, yellow for warnings, cyan for headings.
var (
	styleFound    = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	styleNotFound = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	styleWarn     = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	styleHeading  = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	styleScoreHi  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleScoreMid = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleScoreLow = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

var colorMode = "auto"

// SetColorMode sets the color policy from the output.color setting:
// "never" disables styling, "always" forces it even when piped, "auto"
// follows NO_COLOR and terminal detection.
func SetColorMode(mode string) {
	colorMode = mode
	if mode == "always" {
		lipgloss.SetColorProfile(termenv.ANSI)
	}
}

// colorEnabled reports whether styled output should be used. In auto mode
// colors are dropped when stdout is not a terminal or NO_COLOR is set.
func colorEnabled() bool {
	switch colorMode {
	case "never":
		return false
	case "always":
		return true
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func render(s lipgloss.Style, text string) string {
	if !colorEnabled() {
		return text
	}
	return s.Render(text)
}

// SuccessMark returns the styled check mark used for success lines.
func SuccessMark() string {
	return render(styleFound, "✓")
}

// ErrorMark returns the styled cross used for error lines.
func ErrorMark() string {
	return render(styleNotFound, "✗")
}

// FoundLabel renders the FOUND / NOT FOUND verdict line.
func FoundLabel(found bool) string {
	if found {
		return render(styleFound, "✓ FOUND")
	}
	return render(styleNotFound, "✗ NOT FOUND")
}

// WarnLabel renders a warning prefix.
func WarnLabel(text string) string {
	return render(styleWarn, "⚠ "+text)
}

// Heading renders a section heading.
func Heading(text string) string {
	return render(styleHeading, text)
}

// ScoreLabel colors a similarity score by strength: green above 0.8,
// yellow above 0.6, red otherwise.
func ScoreLabel(text string, score float64) string {
	switch {
	case score > 0.8:
		return render(styleScoreHi, text)
	case score > 0.6:
		return render(styleScoreMid, text)
	default:
		return render(styleScoreLow, text)
	}
}
