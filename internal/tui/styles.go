package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles of the storefront.  Colors are ANSI 256
// codes for broad terminal compatibility.
type Styles struct {
	Header       lipgloss.Style
	Menu         lipgloss.Style
	MenuItem     lipgloss.Style
	MenuCursor   lipgloss.Style
	MenuSoldOut  lipgloss.Style
	Card         lipgloss.Style
	CardTitle    lipgloss.Style
	CardFaint    lipgloss.Style
	BuyButton    lipgloss.Style
	SoldOutLabel lipgloss.Style
	Footer       lipgloss.Style
	Notice       lipgloss.Style
	ErrorNotice  lipgloss.Style
}

const (
	menuWidth = 34
	cardWidth = 48
)

// DefaultStyles is the built-in dark-terminal scheme.
func DefaultStyles() Styles {
	border := lipgloss.Color("240")
	return Styles{
		Header:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).MarginBottom(1),
		Menu:         lipgloss.NewStyle().Width(menuWidth).Border(lipgloss.NormalBorder(), false, true, false, false).BorderForeground(border).PaddingRight(1),
		MenuItem:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuCursor:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
		MenuSoldOut:  lipgloss.NewStyle().Faint(true).Strikethrough(true),
		Card:         lipgloss.NewStyle().Width(cardWidth).Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1).MarginLeft(1),
		CardTitle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		CardFaint:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		BuyButton:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Padding(0, 1),
		SoldOutLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Background(lipgloss.Color("236")).Padding(0, 1),
		Footer:       lipgloss.NewStyle().MarginTop(1),
		Notice:       lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		ErrorNotice:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
}
