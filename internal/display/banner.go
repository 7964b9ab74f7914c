package display

import (
	_ "embed"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

//go:embed banner.txt
var bannerArt string

const tagline = "search · scale · shop"

// RenderBanner returns the logo and tagline centred for the current
// terminal width.
func RenderBanner() string {
	return renderBanner(termWidth())
}

func renderBanner(width int) string {
	art := strings.TrimRight(bannerArt, "\n")
	if art == "" {
		return ""
	}
	block := lipgloss.JoinVertical(lipgloss.Center,
		BannerStyle.Render(art),
		"",
		hintStyle.Render(tagline),
	)
	if lipgloss.Width(block) >= width {
		return block
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}

// termWidth returns the terminal column count, or 80.
func termWidth() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return 80
}
