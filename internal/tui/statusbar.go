package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func hintsFor(focus focusArea) string {
	switch focus {
	case focusSearch:
		return " enter search  tab next  esc leave  ctrl+c quit "
	case focusResults:
		return " j/k move  o open  / search  tab next  q quit "
	case focusTrending:
		return " j/k move  o open  r refresh  tab next  q quit "
	case focusHistory:
		return " r refresh  R refresh all  tab next  q quit "
	}
	return " q quit "
}

func renderStatusBar(left string, focus focusArea, width int) string {
	right := hintsFor(focus)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}
