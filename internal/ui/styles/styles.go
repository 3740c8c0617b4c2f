// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#2D3436", Dark: "#CCCCCC"}
	TextSecondaryColor   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"}
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"}
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#777777"}

	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	StatusInfoColor    = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	// Saved-search list
	TagColor         = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#89B4FA"}
	TagSelectedColor = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}
	QueryColor       = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}

	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(TagSelectedColor)
	TagStyle                = lipgloss.NewStyle().Foreground(TagColor)
	TagSelectedStyle        = lipgloss.NewStyle().Foreground(TagSelectedColor).Bold(true)
	QueryStyle              = lipgloss.NewStyle().Foreground(QueryColor)
	MutedStyle              = lipgloss.NewStyle().Foreground(TextMutedColor)
	HelpStyle               = lipgloss.NewStyle().Foreground(TextMutedColor).Padding(0, 1)

	// Buttons
	ButtonTextColor             = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	ButtonPrimaryBgColor        = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#1A5276"}
	ButtonPrimaryFocusBgColor   = lipgloss.AdaptiveColor{Light: "#3498DB", Dark: "#3498DB"}
	ButtonSecondaryBgColor      = lipgloss.AdaptiveColor{Light: "#2D3436", Dark: "#2D3436"}
	ButtonSecondaryFocusBgColor = lipgloss.AdaptiveColor{Light: "#636E72", Dark: "#636E72"}
	ButtonDangerBgColor         = lipgloss.AdaptiveColor{Light: "#922B21", Dark: "#922B21"}
	ButtonDangerFocusBgColor    = lipgloss.AdaptiveColor{Light: "#E74C3C", Dark: "#E74C3C"}

	baseButtonStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true)

	PrimaryButtonStyle        = baseButtonStyle.Foreground(ButtonTextColor).Background(ButtonPrimaryBgColor)
	PrimaryButtonFocusedStyle = baseButtonStyle.Foreground(ButtonTextColor).Background(ButtonPrimaryFocusBgColor).
					Underline(true).UnderlineSpaces(true)
	SecondaryButtonStyle        = baseButtonStyle.Foreground(ButtonTextColor).Background(ButtonSecondaryBgColor)
	SecondaryButtonFocusedStyle = baseButtonStyle.Foreground(ButtonTextColor).Background(ButtonSecondaryFocusBgColor).
					Underline(true).UnderlineSpaces(true)
	DangerButtonStyle        = baseButtonStyle.Foreground(ButtonTextColor).Background(ButtonDangerBgColor)
	DangerButtonFocusedStyle = baseButtonStyle.Foreground(ButtonTextColor).Background(ButtonDangerFocusBgColor).
					Underline(true).UnderlineSpaces(true)

	// Overlays
	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#2D3436", Dark: "#C9C9C9"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#8C8C8C"}

	StatusBarStyle = lipgloss.NewStyle().Foreground(TextSecondaryColor).Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().Foreground(StatusErrorColor).Bold(true).Padding(1, 2)
)
