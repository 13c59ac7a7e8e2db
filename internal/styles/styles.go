// Package styles holds the lipgloss color palette and shared styles.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette colors. Kept as lipgloss.Color so callers can use them directly
// in Foreground/Background/BorderForeground calls.
var (
	Primary   = lipgloss.Color("#7aa2f7")
	Secondary = lipgloss.Color("#bb9af7")
	Success   = lipgloss.Color("#9ece6a")
	Warning   = lipgloss.Color("#e0af68")
	Error     = lipgloss.Color("#f7768e")
	Info      = lipgloss.Color("#7dcfff")

	TextPrimary   = lipgloss.Color("#c0caf5")
	TextSecondary = lipgloss.Color("#a9b1d6")
	TextMuted     = lipgloss.Color("#565f89")

	BgPrimary   = lipgloss.Color("#1a1b26")
	BgSecondary = lipgloss.Color("#24283b")
	BgSelection = lipgloss.Color("#364a82")

	BorderNormal = lipgloss.Color("#3b4261")
	BorderActive = lipgloss.Color("#7aa2f7")
)

// Shared styles.
var (
	Body  = lipgloss.NewStyle().Foreground(TextPrimary)
	Muted = lipgloss.NewStyle().Foreground(TextMuted)

	Title = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	StatusBar = lipgloss.NewStyle().
			Foreground(TextSecondary).
			Background(BgSecondary)

	StatusError = lipgloss.NewStyle().
			Foreground(Error).
			Background(BgSecondary).
			Bold(true)

	MenuItem = lipgloss.NewStyle().
			Foreground(TextPrimary)

	MenuItemSelected = lipgloss.NewStyle().
				Foreground(TextPrimary).
				Background(BgSelection).
				Bold(true)

	MenuChevron = lipgloss.NewStyle().
			Foreground(TextMuted)
)

// SyntaxTheme is the chroma style used for highlighted metadata output.
const SyntaxTheme = "tokyonight-night"

// MarkdownTheme is the glamour style used by the help overlay.
const MarkdownTheme = "dark"
