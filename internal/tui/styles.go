package tui

import "github.com/charmbracelet/lipgloss"

// Brand colors
var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#22D3EE"}
	ColorAccent  = lipgloss.AdaptiveColor{Light: "#5B21B6", Dark: "#7D56F4"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#04B575"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#F59E0B"}
	ColorError   = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#FF5F5F"}
	ColorText    = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F3F4F6"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#888888"}
)

// Styles holds the line styles of a Terminal, bound to one renderer so that
// color support follows the destination writer
type Styles struct {
	// Banner is the intro title, black on cyan
	Banner lipgloss.Style

	// Bar is the vertical guide between lines
	Bar lipgloss.Style

	Step    lipgloss.Style
	Info    lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Spinner lipgloss.Style
}

// NewStyles builds the styles for r
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Banner: r.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#22D3EE")),
		Bar:     r.NewStyle().Foreground(ColorMuted),
		Step:    r.NewStyle().Foreground(ColorSuccess),
		Info:    r.NewStyle().Foreground(ColorPrimary),
		Warning: r.NewStyle().Foreground(ColorWarning),
		Error:   r.NewStyle().Foreground(ColorError).Bold(true),
		Success: r.NewStyle().Foreground(ColorSuccess).Bold(true),
		Spinner: r.NewStyle().Foreground(ColorAccent),
	}
}
