package tui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary     = lipgloss.Color("#00BFFF") // Cyan, primary accent
	colorAccent      = lipgloss.Color("#FFD700") // Gold, dragging
	colorSuccess     = lipgloss.Color("#00E676") // Green, playing
	colorDanger      = lipgloss.Color("#FF5252") // Red, playhead, errors
	colorMuted       = lipgloss.Color("#636363") // Gray, de-emphasized
	colorMutedLight  = lipgloss.Color("#8C8C8C") // Lighter gray, ruler text
	colorWhite       = lipgloss.Color("#EEEEEE") // Off-white, primary text
	colorSurface     = lipgloss.Color("#1E1E2E") // Dark surface, status bar bg
	colorSurfaceDim  = lipgloss.Color("#181825") // Darkest surface, footer bg
	colorBlue        = lipgloss.Color("#5B8DEF") // Blue, video clips
	colorViolet      = lipgloss.Color("#9D7CD8") // Violet, audio clips
	colorBrightWhite = lipgloss.Color("#FFFFFF") // Pure white, clip labels
)

// Status bar styles, visually dominant with solid background.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorWhite).
			Bold(true).
			Padding(0, 1)

	styleStatusLabel = lipgloss.NewStyle().
				Background(colorSurface).
				Foreground(colorPrimary).
				Bold(true)

	styleStatusValue = lipgloss.NewStyle().
				Background(colorSurface).
				Foreground(colorWhite)

	styleStatusPlaying = lipgloss.NewStyle().
				Background(colorSurface).
				Foreground(colorSuccess).
				Bold(true)

	styleStatusDrag = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorAccent).
			Bold(true)
)

// Timeline cell styles, indexed by cellStyle.
var cellStyles = [...]lipgloss.Style{
	cellBlank:      lipgloss.NewStyle(),
	cellTick:       lipgloss.NewStyle().Foreground(colorMuted),
	cellLabel:      lipgloss.NewStyle().Foreground(colorMutedLight),
	cellVideo:      lipgloss.NewStyle().Background(colorBlue).Foreground(colorBrightWhite),
	cellAudio:      lipgloss.NewStyle().Background(colorViolet).Foreground(colorBrightWhite),
	cellDragging:   lipgloss.NewStyle().Background(colorAccent).Foreground(colorSurface).Bold(true),
	cellPlayhead:   lipgloss.NewStyle().Foreground(colorDanger).Bold(true),
}

// Message line styles.
var (
	styleMessage = lipgloss.NewStyle().
			Foreground(colorMutedLight)

	styleMessageError = lipgloss.NewStyle().
				Foreground(colorDanger).
				Bold(true)
)

// Footer styles, top border, clear key/desc contrast.
var (
	styleFooter = lipgloss.NewStyle().
			Foreground(colorMuted).
			Background(colorSurfaceDim).
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(colorMuted)

	styleFooterKey = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleFooterSep = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleFooterDesc = lipgloss.NewStyle().
			Foreground(colorMutedLight)
)
