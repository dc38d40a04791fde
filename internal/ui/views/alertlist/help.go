package alertlist

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/willibrandon/ruledeck/internal/ui"
	"github.com/willibrandon/ruledeck/internal/ui/components"
)

// HelpView is the help overlay of the rule list.
type HelpView struct {
	overlay *components.HelpOverlay
}

// NewHelpView builds the overlay from the view's key map.
func NewHelpView(keys ui.KeyMap) *HelpView {
	return &HelpView{
		overlay: components.NewHelpOverlay("Alert Rules Help",
			components.HelpSection{
				Title:    "Navigation",
				Bindings: []key.Binding{keys.Down, keys.Up, keys.PageDown, keys.PageUp, keys.Home, keys.End},
			},
			components.HelpSection{
				Title:    "Rules",
				Note:     "Pausing an alert rule prevents it from executing",
				Bindings: []key.Binding{keys.Toggle, keys.CopyLink, keys.Refresh},
			},
			components.HelpSection{
				Title:    "Filter",
				Bindings: []key.Binding{keys.NextFilter, keys.PrevFilter, keys.PickFilter},
			},
			components.HelpSection{
				Title:    "General",
				Bindings: []key.Binding{keys.HowTo, keys.Help, keys.CloseDialog, keys.Quit},
			},
		),
	}
}

// SetSize sets the overlay area.
func (h *HelpView) SetSize(width, height int) {
	h.overlay.SetSize(width, height)
}

// View renders the overlay.
func (h *HelpView) View() string {
	return h.overlay.View()
}
