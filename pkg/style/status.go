package style

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/fthomys/update-alternatives/pkg/types"
)

// StatusStyle returns the appropriate pterm style for a link state
func StatusStyle(state types.LinkState) *pterm.Style {
	switch state {
	case types.LinkCreated:
		return pterm.NewStyle(pterm.BgGreen, pterm.FgWhite)
	case types.LinkUpdated:
		return pterm.NewStyle(pterm.BgCyan, pterm.FgBlack)
	case types.LinkRemoved:
		return pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	case types.LinkFailed:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// StatusBadge renders a fixed-width colored badge for a link state
func StatusBadge(state types.LinkState) string {
	return StatusStyle(state).Sprint(fmt.Sprintf(" %-9s", string(state)))
}

// Indicator returns the one-glyph marker for a link state
func Indicator(state types.LinkState) string {
	switch state {
	case types.LinkCreated, types.LinkUpdated, types.LinkRemoved:
		return GetStyle("Success").Render("✓")
	case types.LinkFailed:
		return GetStyle("Error").Render("✗")
	default:
		return GetStyle("Muted").Render("○")
	}
}

// SelectedMarker marks the winning record in a listing
func SelectedMarker(selected bool) string {
	if selected {
		return GetStyle("Selected").Render("*")
	}
	return " "
}
