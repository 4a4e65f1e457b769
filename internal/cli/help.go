package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	cardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("1")).
			MarginBottom(1)

	cardSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("6")).
				MarginTop(1)

	cardCommandStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("2"))

	cardMutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	cardBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("1")).
			Padding(1, 2)
)

// showQuickReference renders the card shown when scheckbl runs without a
// subcommand.
func showQuickReference() {
	width := clampWidth(detectWidth())

	title := cardTitleStyle.Width(width - 6).Align(lipgloss.Center).
		Render("scheckbl — Search & Filter Tool for SCheck Blocklist")

	lookups := renderSection("LOOKUPS", []string{
		bullet(`scheckbl check phrases vulgarisms "idiot"`, "exact keyword check (exit 1 when absent)"),
		bullet(`scheckbl find phrases vulgarisms "some text"`, "scan text for blocklist hits"),
		bullet(`scheckbl similar phrases vulgarisms "idio" --stdout`, "fuzzy similarity ranking"),
	})

	retrieval := renderSection("RETRIEVAL", []string{
		bullet("scheckbl list", "show available types and categories"),
		bullet("scheckbl get urls nsfw --stdout", "print a full list"),
		bullet(`scheckbl get urls nsfw -r '\.example$' -o out.txt`, "regex filter, custom file"),
	})

	settings := renderSection("SETTINGS", []string{
		bullet("scheckbl config get", "show effective configuration"),
		bullet("scheckbl config set similar.threshold 0.7", "persist a default"),
		bullet("scheckbl --json find ...", "machine-readable output"),
	})

	footer := cardMutedStyle.Render("Help: scheckbl <command> --help    Site: https://scheck-blocklist.vercel.app")

	content := lipgloss.JoinVertical(lipgloss.Left, title, lookups, retrieval, settings, "", footer)
	fmt.Println(cardBoxStyle.Width(width).Render(content))
}

func renderSection(heading string, lines []string) string {
	parts := []string{cardSectionStyle.Render(heading)}
	parts = append(parts, lines...)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func bullet(command, note string) string {
	return "  " + cardCommandStyle.Render(command) + "\n    " + cardMutedStyle.Render(note)
}

func clampWidth(w int) int {
	if w < 72 {
		return 72
	}
	if w > 100 {
		return 100
	}
	return w
}

func detectWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	if cols := os.Getenv("COLUMNS"); cols != "" {
		if v, err := strconv.Atoi(cols); err == nil && v > 0 {
			return v
		}
	}
	return 80
}
