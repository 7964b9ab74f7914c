package display

import "github.com/charmbracelet/lipgloss"

// Kitchen palette: warm neutrals with tomato, basil and butter accents.
const (
	colorCrust   = lipgloss.Color("#2b2118")
	colorFlour   = lipgloss.Color("#e7e0d6")
	colorOat     = lipgloss.Color("#b8aa98")
	colorAsh     = lipgloss.Color("#7c7064")
	colorCharred = lipgloss.Color("#4a3f35")
	colorButter  = lipgloss.Color("#f4d58d")
	colorTomato  = lipgloss.Color("#e76f51")
	colorBasil   = lipgloss.Color("#8ab17d")
	colorSage    = lipgloss.Color("#a8c5b0")
)

var (
	barStyle     = lipgloss.NewStyle().Background(colorCrust).Foreground(colorOat)
	titleStyle   = lipgloss.NewStyle().Foreground(colorButter)
	heartStyle   = lipgloss.NewStyle().Foreground(colorTomato)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorAsh).Italic(true)
	countStyle   = lipgloss.NewStyle().Foreground(colorOat)
	dividerStyle = lipgloss.NewStyle().Foreground(colorCharred)
	promptStyle  = lipgloss.NewStyle().Foreground(colorSage)
	chatStyle    = lipgloss.NewStyle().Foreground(colorSage)
	headingStyle = lipgloss.NewStyle().Foreground(colorBasil).Bold(true)
	bodyStyle    = lipgloss.NewStyle().Foreground(colorFlour)
	hintStyle    = lipgloss.NewStyle().Foreground(colorAsh)
	errorStyle   = lipgloss.NewStyle().Foreground(colorTomato)
	echoStyle    = lipgloss.NewStyle().Foreground(colorOat)

	// BannerStyle renders the startup logo.
	BannerStyle = lipgloss.NewStyle().Foreground(colorButter)
)
