package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	AccentBlue  = lipgloss.Color("#3B82F6")
	DimGray     = lipgloss.Color("#6B7280")
	LightGray   = lipgloss.Color("#9CA3AF")
	White       = lipgloss.Color("#F9FAFB")
	Red         = lipgloss.Color("#EF4444")
	ProgressRed = lipgloss.Color("#DC2626")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(AccentBlue)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(AccentBlue).
			Padding(0, 1)

	ProgressStyle = lipgloss.NewStyle().
			Foreground(ProgressRed)
)

// Row glyphs per item kind
const (
	FolderChar   = "▸"
	VideoChar    = "▶"
	ImageChar    = "◩"
	DocumentChar = "≡"
)
